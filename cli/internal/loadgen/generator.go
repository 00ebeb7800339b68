// Package loadgen produces synthetic log submissions against the API.
package loadgen

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// Submitter is the slice of the ingest client the runner needs.
type Submitter interface {
	SubmitJSON(tenantID, logID, text string) error
	SubmitText(tenantID, text string) error
}

// Config controls the generated load shape.
type Config struct {
	Tenants        []string
	Rate           int           // submissions per second
	Duration       time.Duration // total run time
	Concurrency    int           // parallel submitters
	SensitiveRatio float64       // fraction of records carrying the sensitive token
	TextRatio      float64       // fraction submitted as text/plain
	Seed           int64
}

// Stats counts the outcome of one run.
type Stats struct {
	Submitted uint64
	Failed    uint64
}

// Generator builds fake log lines, salting a configurable fraction with
// the sensitive phone fragment so redaction downstream has work to do.
type Generator struct {
	faker          *gofakeit.Faker
	rng            *rand.Rand
	tenants        []string
	sensitiveRatio float64
	textRatio      float64
	mu             sync.Mutex
}

func NewGenerator(cfg Config) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		faker:          gofakeit.New(seed),
		rng:            rand.New(rand.NewSource(seed)),
		tenants:        cfg.Tenants,
		sensitiveRatio: cfg.SensitiveRatio,
		textRatio:      cfg.TextRatio,
	}
}

// Record is one synthetic submission.
type Record struct {
	TenantID string
	LogID    string
	Text     string
	AsText   bool
}

func (g *Generator) Next() Record {
	g.mu.Lock()
	defer g.mu.Unlock()

	text := fmt.Sprintf("%s user=%s ip=%s %s",
		g.faker.HackerVerb(), g.faker.Username(), g.faker.IPv4Address(), g.faker.HackerPhrase())

	if g.rng.Float64() < g.sensitiveRatio {
		text = fmt.Sprintf("%s callback 555-0199 requested", text)
	}

	return Record{
		TenantID: g.tenants[g.rng.Intn(len(g.tenants))],
		LogID:    uuid.NewString(),
		Text:     text,
		AsText:   g.rng.Float64() < g.textRatio,
	}
}

// Runner drives submissions at the configured rate until the duration
// elapses or ctx is cancelled.
type Runner struct {
	gen       *Generator
	submitter Submitter
	cfg       Config
}

func NewRunner(cfg Config, submitter Submitter) (*Runner, error) {
	if len(cfg.Tenants) == 0 {
		return nil, fmt.Errorf("at least one tenant is required")
	}
	if cfg.Rate <= 0 {
		return nil, fmt.Errorf("rate must be positive")
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &Runner{
		gen:       NewGenerator(cfg),
		submitter: submitter,
		cfg:       cfg,
	}, nil
}

func (r *Runner) Run(ctx context.Context) Stats {
	var stats Stats

	if r.cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Duration)
		defer cancel()
	}

	work := make(chan Record)

	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rec := range work {
				var err error
				if rec.AsText {
					err = r.submitter.SubmitText(rec.TenantID, rec.Text)
				} else {
					err = r.submitter.SubmitJSON(rec.TenantID, rec.LogID, rec.Text)
				}
				if err != nil {
					atomic.AddUint64(&stats.Failed, 1)
				} else {
					atomic.AddUint64(&stats.Submitted, 1)
				}
			}
		}()
	}

	ticker := time.NewTicker(time.Second / time.Duration(r.cfg.Rate))
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			select {
			case work <- r.gen.Next():
			case <-ctx.Done():
				break loop
			}
		}
	}

	close(work)
	wg.Wait()
	return stats
}
