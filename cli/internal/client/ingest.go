package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type IngestClient struct {
	baseURL string
	client  *http.Client
}

func NewIngestClient(baseURL string) *IngestClient {
	return &IngestClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SubmitResponse is the accepted-submission body returned by the API.
type SubmitResponse struct {
	Status string `json:"status"`
	LogID  string `json:"log_id"`
}

// SubmitJSON sends a fully-identified record.
func (c *IngestClient) SubmitJSON(tenantID, logID, text string) (*SubmitResponse, error) {
	payload := map[string]string{
		"tenant_id": tenantID,
		"log_id":    logID,
		"text":      text,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/ingest", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.submit(req)
}

// SubmitText sends a raw log line; the API assigns the log_id.
func (c *IngestClient) SubmitText(tenantID, text string) (*SubmitResponse, error) {
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/ingest", strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("X-Tenant-ID", tenantID)

	return c.submit(req)
}

func (c *IngestClient) submit(req *http.Request) (*SubmitResponse, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("submission failed with status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("submission failed with status %d", resp.StatusCode)
	}

	var sr SubmitResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &sr, nil
}

// Health fetches a service health body from baseURL.
func Health(baseURL string) (map[string]string, error) {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("health check failed with status %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode health body: %w", err)
	}
	return body, nil
}
