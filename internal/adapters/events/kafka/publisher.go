package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
	"github.com/SscSPs/ledger_books/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_books/internal/core/ports/services"
	"github.com/SscSPs/ledger_books/internal/platform/logging"
)

// NewProducerConfig returns the producer settings used for payment events:
// every in-sync replica acknowledges, three retries, successes reported.
func NewProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true
	return cfg
}

// Publisher sends payment-posted events to a Kafka topic, keyed by
// obligation id so events for one obligation stay ordered.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisher connects a sync producer to the brokers.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka publisher: no brokers configured")
	}
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("kafka publisher: create producer: %w", err)
	}
	return NewPublisherWithProducer(producer, topic), nil
}

// NewPublisherWithProducer wraps an existing producer.
func NewPublisherWithProducer(producer sarama.SyncProducer, topic string) *Publisher {
	return &Publisher{producer: producer, topic: topic}
}

var _ portssvc.EventPublisher = (*Publisher)(nil)

func (p *Publisher) PublishPaymentPosted(ctx context.Context, evt domain.PaymentPostedEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("kafka publisher: encode event: %w", err)
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(string(evt.ObligationKind) + ":" + evt.ObligationID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte("payment.posted")},
		},
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("kafka publisher: send %s: %w", evt.SettlementID, err)
	}
	logging.FromContextOrDefault(ctx).Debug("Payment event published",
		slog.String("topic", p.topic),
		slog.String("settlement_id", evt.SettlementID),
		slog.Int("partition", int(partition)),
		slog.Int64("offset", offset))
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher drops every event. It is used when no brokers are configured.
type NoopPublisher struct{}

var _ portssvc.EventPublisher = NoopPublisher{}

func (NoopPublisher) PublishPaymentPosted(context.Context, domain.PaymentPostedEvent) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
