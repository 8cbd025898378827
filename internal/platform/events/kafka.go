// Package events delivers catalog domain events to downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"refdata/internal/catalog/core"
)

// KafkaPublisher writes domain events to a Kafka topic. Events are
// transport-agnostic; this is the only place that knows the wire format.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &KafkaPublisher{client: client, topic: topic}, nil
}

// Publish delivers the events synchronously. A partial failure returns an
// error; callers treat publishing as best effort after a committed write.
func (p *KafkaPublisher) Publish(ctx context.Context, evts []core.Event) error {
	records := make([]*kgo.Record, 0, len(evts))
	for _, e := range evts {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal event: %w", err)
		}
		records = append(records, &kgo.Record{
			Key:   []byte(e.AggregateID.String()),
			Value: payload,
			Topic: p.topic,
		})
	}
	if err := p.client.ProduceSync(ctx, records...).FirstErr(); err != nil {
		return fmt.Errorf("produce events: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() {
	p.client.Close()
}
