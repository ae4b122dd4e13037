// Package audit captures structured events from issuance and verification.
// Append-only; the sink decides durability so tests can swap it easily.
package audit

import (
	"context"
	"log/slog"
	"time"
)

// Sink receives audit events in order of emission.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Publisher stamps and forwards events. A nil Publisher is a valid no-op so
// callers never branch on whether auditing is configured.
type Publisher struct {
	sink Sink
}

func NewPublisher(sink Sink) *Publisher {
	return &Publisher{sink: sink}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if p == nil || p.sink == nil {
		return nil
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return p.sink.Append(ctx, event)
}

// LogSink writes events to the structured log. The default sink when no
// broker is configured.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Append(ctx context.Context, event Event) error {
	s.Logger.InfoContext(ctx, "audit event",
		"action", event.Action,
		"cert_id", event.CertID,
		"batch_code", event.BatchCode,
		"verdict", event.Verdict,
		"request_id", event.RequestID,
	)
	return nil
}
