// Package events publishes migration outcome events to Kafka for downstream
// audit tooling. The emitter is optional; without brokers it is a no-op.
package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"storemigrate/internal/logger"

	"github.com/segmentio/kafka-go"
)

type Event struct {
	Type      string                 `json:"type"`
	Kind      string                 `json:"kind"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}

type Emitter struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewEmitter(brokers string, logger *logger.Logger) *Emitter {
	if brokers == "" {
		return &Emitter{logger: logger}
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(brokers, ",")...),
		Topic:    "migration-events",
		Balancer: &kafka.LeastBytes{},
	}

	return &Emitter{writer: writer, logger: logger}
}

// Emit publishes one event. Publish failures are logged, never fatal; the
// migration outcome itself is already recorded in the run ledger.
func (e *Emitter) Emit(event Event) {
	if e.writer == nil {
		return
	}

	event.Timestamp = time.Now()
	value, err := json.Marshal(event)
	if err != nil {
		e.logger.Error("failed to marshal event: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.writer.WriteMessages(ctx, kafka.Message{Value: value}); err != nil {
		e.logger.Error("failed to publish event: %v", err)
	}
}

func (e *Emitter) Close() {
	if e.writer != nil {
		e.writer.Close()
	}
}
