// Package kafka emits todo mutation events for the audit log consumer.
package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event is the payload written for every successful mutation.
type Event struct {
	Action string    `json:"action"` // "created", "updated", "deleted"
	TaskID string    `json:"task_id"`
	At     time.Time `json:"at"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(broker, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(broker),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// SendEvent publishes a mutation event. Failures are logged and
// swallowed; the event stream is best-effort and never blocks a
// storage operation from succeeding.
func (p *Producer) SendEvent(action, taskID string) {
	event := Event{Action: action, TaskID: taskID, At: time.Now().UTC()}
	value, err := json.Marshal(event)
	if err != nil {
		log.Println("failed to marshal todo event:", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(taskID),
		Value: value,
		Time:  event.At,
	}
	if err := p.writer.WriteMessages(context.Background(), msg); err != nil {
		log.Println("failed to write todo event:", err)
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
