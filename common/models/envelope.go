package models

// PushEnvelope is the push-delivery wrapper the worker receives over HTTP.
// The layout follows the Pub/Sub push format: the record bytes travel
// base64-encoded in message.data, everything else is delivery metadata.
type PushEnvelope struct {
	Message      *PushMessage `json:"message"`
	Subscription string       `json:"subscription,omitempty"`
}

// PushMessage carries the encoded record plus broker metadata. MessageID
// and PublishTime are informational; core logic only reads Data.
type PushMessage struct {
	Data        string `json:"data"`
	MessageID   string `json:"messageId,omitempty"`
	PublishTime string `json:"publishTime,omitempty"`
}
