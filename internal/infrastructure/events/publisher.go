package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"autoshop_billing/internal/domain/entities"
	"autoshop_billing/internal/infrastructure/config"
	"autoshop_billing/internal/usecase/interfaces"

	"github.com/segmentio/kafka-go"
)

var (
	_ interfaces.IEventPublisher = (*KafkaPublisher)(nil)
	_ interfaces.IEventPublisher = NoopPublisher{}
)

// EventType is the Kafka-facing name of an audit action.
type EventType string

const (
	EventTypeEstimateCreated         EventType = "estimate.created"
	EventTypeEstimateUpdated         EventType = "estimate.updated"
	EventTypeEstimateStatusChanged   EventType = "estimate.status_changed"
	EventTypeEstimateApprovalRevoked EventType = "estimate.approval_revoked"
)

// EstimateEvent is the message envelope written to the estimate events topic.
type EstimateEvent struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	EstimateID string         `json:"estimate_id"`
	Actor      string         `json:"actor"`
	Meta       map[string]any `json:"meta,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

func eventType(e entities.AuditEvent) EventType {
	return EventType(e.Entity + "." + e.Action)
}

func NewEstimateEvent(e entities.AuditEvent) EstimateEvent {
	return EstimateEvent{
		ID:         e.ID,
		Type:       eventType(e),
		EstimateID: e.EntityID,
		Actor:      e.Actor,
		Meta:       e.Meta,
		Timestamp:  e.CreatedAt,
	}
}

// messageWriter is the subset of *kafka.Writer used by the publisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes committed estimate audit events to Kafka, keyed by
// estimate id so events of one estimate stay ordered within a partition.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaPublisher{writer: writer, topic: cfg.Topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, events ...entities.AuditEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		body, err := json.Marshal(NewEstimateEvent(e))
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(e.EntityID),
			Value: body,
			Time:  e.CreatedAt,
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		log.Printf("[estimate][events] publish failed topic=%s count=%d err=%v", p.topic, len(msgs), err)
		return err
	}
	log.Printf("[estimate][events] published topic=%s count=%d", p.topic, len(msgs))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops events; used when no Kafka brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, ...entities.AuditEvent) error { return nil }

// NewPublisher returns a Kafka publisher when brokers are configured.
func NewPublisher(cfg config.KafkaConfig) interfaces.IEventPublisher {
	if !cfg.Enabled() {
		log.Printf("[estimate][events] kafka disabled; audit events will not be published")
		return NoopPublisher{}
	}
	log.Printf("[estimate][events] kafka publisher brokers=%v topic=%s", cfg.Brokers, cfg.Topic)
	return NewKafkaPublisher(cfg)
}
