package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/DragosStezar/FitTrack/internal/nutrition"
)

const publishTimeout = 3 * time.Second

// profileUpdatedEvent is emitted after a profile is saved so downstream
// consumers (meal planning, reminders) can react to new targets.
type profileUpdatedEvent struct {
	Type                string           `json:"type"`
	UserID              uuid.UUID        `json:"userId"`
	Created             bool             `json:"created"`
	Goal                string           `json:"goal"`
	CalculatedNutrition nutrition.Result `json:"calculatedNutrition"`
	OccurredAt          time.Time        `json:"occurredAt"`
}

// eventPublisher delivers profile events. Implementations must be safe for
// concurrent use.
type eventPublisher interface {
	PublishProfileUpdated(ctx context.Context, evt profileUpdatedEvent) error
	Close() error
}

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer messageWriter
}

func newKafkaPublisher(brokers []string, topic string) *kafkaPublisher {
	return &kafkaPublisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}}
}

// PublishProfileUpdated writes evt keyed by user id so a user's events stay
// ordered within a partition.
func (p *kafkaPublisher) PublishProfileUpdated(ctx context.Context, evt profileUpdatedEvent) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode profile event: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.UserID.String()),
		Value: value,
		Time:  evt.OccurredAt,
	})
}

func (p *kafkaPublisher) Close() error { return p.writer.Close() }

// noopPublisher is used when no brokers are configured.
type noopPublisher struct{}

func (noopPublisher) PublishProfileUpdated(context.Context, profileUpdatedEvent) error { return nil }
func (noopPublisher) Close() error { return nil }

// publishProfileUpdated sends the event and only logs failures; a saved
// profile is never rolled back because the broker is down.
func (h *Handler) publishProfileUpdated(ctx context.Context, p userProfile, result nutrition.Result, created bool) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	evt := profileUpdatedEvent{
		Type:                "profile.updated",
		UserID:              p.UserID,
		Created:             created,
		Goal:                result.Goal.String(),
		CalculatedNutrition: result,
		OccurredAt:          time.Now().UTC(),
	}
	if err := h.events.PublishProfileUpdated(ctx, evt); err != nil {
		profileEvents.WithLabelValues("failed").Inc()
		h.log.WithError(err).WithField("user_id", p.UserID).Warn("[publishProfileUpdated] event not delivered")
		return
	}
	profileEvents.WithLabelValues("published").Inc()
}
