package publish

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/scrubline/scrubline/common/logging"
	"github.com/scrubline/scrubline/common/messaging"
	"github.com/scrubline/scrubline/common/models"
)

type fakeFuture struct {
	ok  chan *jetstream.PubAck
	err chan error
	msg *nats.Msg
}

func (f *fakeFuture) Ok() <-chan *jetstream.PubAck { return f.ok }
func (f *fakeFuture) Err() <-chan error            { return f.err }
func (f *fakeFuture) Msg() *nats.Msg               { return f.msg }

type fakeStream struct {
	published []*nats.Msg
	future    *fakeFuture
	err       error
}

func (f *fakeStream) PublishMsgAsync(msg *nats.Msg) (jetstream.PubAckFuture, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.published = append(f.published, msg)
	if f.future == nil {
		f.future = &fakeFuture{ok: make(chan *jetstream.PubAck, 1), err: make(chan error, 1)}
	}
	f.future.msg = msg
	return f.future, nil
}

func ackedFuture() *fakeFuture {
	f := &fakeFuture{ok: make(chan *jetstream.PubAck, 1), err: make(chan error, 1)}
	f.ok <- &jetstream.PubAck{Stream: messaging.StreamLogs, Sequence: 1}
	return f
}

func testLogger() *logging.Logger {
	return logging.New(slog.LevelError, "text")
}

func TestPublish_SerializesAndRoutes(t *testing.T) {
	stream := &fakeStream{future: ackedFuture()}
	p := New(stream, messaging.SubjectLogsIngest, testLogger())

	rec := &models.CanonicalRecord{TenantID: "acme", LogID: "log-1", Text: "ping", Source: models.SourceJSON}
	if err := p.Publish(context.Background(), rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stream.published) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(stream.published))
	}
	msg := stream.published[0]

	if msg.Subject != "logs.ingest.acme" {
		t.Errorf("unexpected subject %q", msg.Subject)
	}
	if got := msg.Header.Get(messaging.HeaderTenantID); got != "acme" {
		t.Errorf("expected tenant header acme, got %q", got)
	}
	if got := msg.Header.Get(messaging.HeaderLogID); got != "log-1" {
		t.Errorf("expected log header log-1, got %q", got)
	}

	var decoded models.CanonicalRecord
	if err := json.Unmarshal(msg.Data, &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if decoded != *rec {
		t.Errorf("round-tripped record differs: %+v", decoded)
	}
}

func TestPublish_SubjectNotConfigured(t *testing.T) {
	stream := &fakeStream{}
	p := New(stream, "", testLogger())

	err := p.Publish(context.Background(), &models.CanonicalRecord{TenantID: "acme", LogID: "log-1", Text: "x"})
	if !errors.Is(err, ErrSubjectNotConfigured) {
		t.Fatalf("expected ErrSubjectNotConfigured, got %v", err)
	}
	if len(stream.published) != 0 {
		t.Error("expected no publish on misconfiguration")
	}
}

func TestPublish_InitiationFailure(t *testing.T) {
	stream := &fakeStream{err: errors.New("buffer full")}
	p := New(stream, messaging.SubjectLogsIngest, testLogger())

	err := p.Publish(context.Background(), &models.CanonicalRecord{TenantID: "acme", LogID: "log-1", Text: "x"})
	if err == nil {
		t.Fatal("expected initiation error")
	}
}

func TestPublish_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stream := &fakeStream{}
	p := New(stream, messaging.SubjectLogsIngest, testLogger())
	if err := p.Publish(ctx, &models.CanonicalRecord{TenantID: "acme", LogID: "log-1", Text: "x"}); err == nil {
		t.Fatal("expected context error")
	}
}

// The completion watcher must terminate on either channel; a failed ack is
// logged, not retried.
func TestWatch_DrainsOutcome(t *testing.T) {
	p := New(&fakeStream{}, messaging.SubjectLogsIngest, testLogger())

	okFut := ackedFuture()
	done := make(chan struct{})
	go func() {
		p.watch(okFut, "log-ok")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watch did not return on ack")
	}

	errFut := &fakeFuture{ok: make(chan *jetstream.PubAck, 1), err: make(chan error, 1)}
	errFut.err <- errors.New("stream unavailable")
	done = make(chan struct{})
	go func() {
		p.watch(errFut, "log-err")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watch did not return on publish failure")
	}
}
