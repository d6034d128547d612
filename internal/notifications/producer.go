package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ticketforge/internal/shared/config"
	"ticketforge/pkg/logger"

	"github.com/IBM/sarama"
)

// Publisher emits ledger notifications after successful mutations
type Publisher interface {
	Publish(ctx context.Context, record Record) error
	Close() error
}

type kafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

func NewKafkaPublisher(cfg config.KafkaConfig, log *logger.Logger) (Publisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.RequiredAcks(cfg.RequiredAcks)
	saramaConfig.Producer.Retry.Max = cfg.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(cfg.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.MaxMessageBytes = cfg.MaxMessageBytes
	saramaConfig.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &kafkaPublisher{
		producer: producer,
		topic:    cfg.LedgerTopic,
		log:      log,
	}, nil
}

func (p *kafkaPublisher) Publish(ctx context.Context, record Record) error {
	if record.At.IsZero() {
		record.At = time.Now().UTC()
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(record.Key),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("name"), Value: []byte(record.Name)},
			{Key: []byte("content-type"), Value: []byte("application/json")},
		},
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		p.log.Error("Failed to publish notification",
			"name", record.Name,
			"key", record.Key,
			"error", err)
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	p.log.Debug("Notification published",
		"name", record.Name,
		"key", record.Key,
		"partition", partition,
		"offset", offset)

	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}
