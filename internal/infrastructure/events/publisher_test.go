package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"autoshop_billing/internal/domain/entities"
	"autoshop_billing/internal/infrastructure/config"

	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, topic: "estimate-events"}
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), entities.AuditEvent{
		ID:        "evt-1",
		Entity:    entities.AuditEntityEstimate,
		EntityID:  "est-1",
		Action:    entities.AuditActionApprovalRevoked,
		Actor:     entities.AuditActorAdmin,
		Meta:      map[string]any{"reason": "edited"},
		CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}
	if string(w.msgs[0].Key) != "est-1" {
		t.Fatalf("expected key est-1, got %q", w.msgs[0].Key)
	}

	var got EstimateEvent
	if err := json.Unmarshal(w.msgs[0].Value, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Type != EventTypeEstimateApprovalRevoked || got.EstimateID != "est-1" || got.Meta["reason"] != "edited" {
		t.Fatalf("unexpected event: %+v", got)
	}
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	p := &KafkaPublisher{writer: &fakeWriter{err: errors.New("broker down")}, topic: "t"}
	err := p.Publish(context.Background(), entities.AuditEvent{ID: "evt-1", EntityID: "est-1"})
	if err == nil || err.Error() != "broker down" {
		t.Fatalf("expected broker error, got %v", err)
	}
}

func TestKafkaPublisher_PublishNothing(t *testing.T) {
	w := &fakeWriter{err: errors.New("must not be called")}
	p := &KafkaPublisher{writer: w, topic: "t"}
	if err := p.Publish(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewPublisher(t *testing.T) {
	if _, ok := NewPublisher(config.KafkaConfig{}).(NoopPublisher); !ok {
		t.Fatalf("expected noop publisher without brokers")
	}
	p, ok := NewPublisher(config.KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "estimate-events"}).(*KafkaPublisher)
	if !ok {
		t.Fatalf("expected kafka publisher with brokers")
	}
	_ = p.Close()
}
