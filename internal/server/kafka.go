package server

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

//go:generate mockgen -source=kafka.go -destination=mock_kafka_test.go -package=server

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink mirrors every published frame onto a Kafka topic, keyed by
// the hub topic. Write failures are logged and dropped.
type KafkaSink struct {
	writer KafkaWriter
	log    *zap.SugaredLogger
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
	}
}

func NewKafkaSink(writer KafkaWriter, log *zap.SugaredLogger) *KafkaSink {
	return &KafkaSink{writer: writer, log: log}
}

func (k *KafkaSink) Mirror(topic string, data []byte) {
	msg := kafka.Message{
		Key:   []byte(topic),
		Value: data,
	}

	if err := k.writer.WriteMessages(context.Background(), msg); err != nil {
		k.log.Errorw("failed to mirror event to kafka", "topic", topic, "error", err)
	}
}

func (k *KafkaSink) Close() error {
	return k.writer.Close()
}
