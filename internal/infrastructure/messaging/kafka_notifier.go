package messaging

import (
	"context"
	"encoding/json"

	"github.com/seribro/escrow-service/internal/domain/entities"
	"github.com/seribro/escrow-service/internal/usecase/interfaces"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

const defaultEventsTopic = "payment-events"

// KafkaNotifier publishes payment lifecycle events for the notification and
// socket push services. Delivery is at-least-once; consumers deduplicate on
// payment id + event type. A broker outage is logged and swallowed: event
// delivery must never fail a committed transition.

type KafkaNotifier struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

var _ interfaces.IEventNotifier = (*KafkaNotifier)(nil)

func NewKafkaNotifier(brokers []string, topic string, logger *zap.Logger) (*KafkaNotifier, error) {
	if topic == "" {
		topic = defaultEventsTopic
	}

	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}
	return &KafkaNotifier{producer: producer, topic: topic, logger: logger}, nil
}

func (n *KafkaNotifier) Publish(_ context.Context, event entities.PaymentEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("failed to marshal payment event",
			zap.String("type", event.Type),
			zap.String("payment_id", event.PaymentID),
			zap.Error(err))
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: n.topic,
		// Keying on payment id keeps one payment's events in order.
		Key:   sarama.StringEncoder(event.PaymentID),
		Value: sarama.ByteEncoder(data),
	}

	partition, offset, err := n.producer.SendMessage(msg)
	if err != nil {
		n.logger.Error("failed to publish payment event",
			zap.String("type", event.Type),
			zap.String("payment_id", event.PaymentID),
			zap.Error(err))
		return
	}

	n.logger.Debug("payment event published",
		zap.String("type", event.Type),
		zap.String("payment_id", event.PaymentID),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset))
}

func (n *KafkaNotifier) Close() error {
	return n.producer.Close()
}
