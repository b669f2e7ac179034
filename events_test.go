package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DragosStezar/FitTrack/internal/nutrition"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_KeysByUser(t *testing.T) {
	w := &recordingWriter{}
	p := &kafkaPublisher{writer: w}

	evt := profileUpdatedEvent{
		Type:                "profile.updated",
		UserID:              uuid.New(),
		Created:             true,
		Goal:                nutrition.WeightLoss.String(),
		CalculatedNutrition: nutrition.Result{MaintenanceCalories: 2759, GoalCalories: 2469},
		OccurredAt:          time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.PublishProfileUpdated(context.Background(), evt))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, evt.UserID.String(), string(msg.Key))
	assert.Equal(t, evt.OccurredAt, msg.Time)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "profile.updated", decoded["type"])
	assert.Equal(t, "WeightLoss", decoded["goal"])
	assert.Equal(t, true, decoded["created"])
	assert.Equal(t, 2469.0, decoded["calculatedNutrition"].(map[string]any)["goalCalories"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_PropagatesWriteError(t *testing.T) {
	p := &kafkaPublisher{writer: &recordingWriter{err: errors.New("broker down")}}
	err := p.PublishProfileUpdated(context.Background(), profileUpdatedEvent{UserID: uuid.New()})
	assert.EqualError(t, err, "broker down")
}

func TestNoopPublisher(t *testing.T) {
	var p eventPublisher = noopPublisher{}
	assert.NoError(t, p.PublishProfileUpdated(context.Background(), profileUpdatedEvent{}))
	assert.NoError(t, p.Close())
}

func TestNewKafkaPublisher(t *testing.T) {
	p := newKafkaPublisher([]string{"localhost:9092"}, "fittrack.profile-updated")
	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "fittrack.profile-updated", w.Topic)
	assert.Equal(t, kafka.RequireAll, w.RequiredAcks)
	require.NoError(t, p.Close())
}
