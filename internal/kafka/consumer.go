package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/segmentio/kafka-go"
)

// Consumer reads reservation events from a topic as part of a consumer group.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: groupID,
		}),
	}
}

// Consume blocks, handing each decoded event to handler until ctx is
// cancelled. Messages that fail to decode are logged and skipped.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, *ReservationEvent) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		var event ReservationEvent
		if err = json.Unmarshal(msg.Value, &event); err != nil {
			log.Printf("kafka: skipping undecodable message at offset %d: %v", msg.Offset, err)
			continue
		}
		if err = handler(ctx, &event); err != nil {
			log.Printf("kafka: handler failed for %s reservation %d: %v", event.Type, event.ReservationID, err)
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
