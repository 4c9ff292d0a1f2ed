package pubsub

import (
	"context"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/sirupsen/logrus"
)

type Publisher interface {
	Publish(ctx context.Context, topic string, key string, headers map[string]string, message []byte) error
	Close()
}

type confluentKafkaPublisher struct {
	logger   *logrus.Logger
	producer *kafka.Producer
}

// PublisherFromConfluentKafkaProducer adapts a confluent producer to the
// Publisher interface, waiting for per-message delivery reports.
func PublisherFromConfluentKafkaProducer(logger *logrus.Logger, producer *kafka.Producer) Publisher {
	return &confluentKafkaPublisher{
		logger:   logger,
		producer: producer,
	}
}

func (p *confluentKafkaPublisher) Publish(ctx context.Context, topic string, key string, headers map[string]string, message []byte) error {
	kafkaHeaders := make([]kafka.Header, 0, len(headers))
	for k, v := range headers {
		kafkaHeaders = append(kafkaHeaders, kafka.Header{Key: k, Value: []byte(v)})
	}

	deliveryChan := make(chan kafka.Event, 1)

	err := p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(key),
		Value:          message,
		Headers:        kafkaHeaders,
	}, deliveryChan)
	if err != nil {
		p.logger.WithContext(ctx).WithError(err).WithField("topic", topic).Error("an error occurred while producing message")
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case e := <-deliveryChan:
		m, ok := e.(*kafka.Message)
		if !ok {
			return nil
		}
		if m.TopicPartition.Error != nil {
			p.logger.WithContext(ctx).WithError(m.TopicPartition.Error).WithField("topic", topic).Error("an error occurred while delivering message")
			return m.TopicPartition.Error
		}
	}

	return nil
}

func (p *confluentKafkaPublisher) Close() {
	p.producer.Flush(5000)
	p.producer.Close()
}
