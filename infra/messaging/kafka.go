package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type KafkaConfig struct {
	Brokers           []string
	MatchTopic        string
	UserTopic         string
	GroupID           string
	ConnectionTimeout time.Duration
	MaxRetries        int
}

func NewDefaultConfig(brokers []string) KafkaConfig {
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}
	return KafkaConfig{
		Brokers:           brokers,
		MatchTopic:        "match-events",
		UserTopic:         "user-events",
		GroupID:           "match-service",
		ConnectionTimeout: 10 * time.Second,
		MaxRetries:        3,
	}
}

// Message is the envelope carried on both topics.
type Message struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	MatchID   *uuid.UUID      `json:"match_id,omitempty"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// Handler processes one consumed message. A returned error leaves the offset
// uncommitted so the message is redelivered.
type Handler func(ctx context.Context, msg *Message) error

type KafkaClient struct {
	config KafkaConfig
	writer *kafka.Writer

	mu      sync.Mutex
	readers []*kafka.Reader
}

func NewKafkaClient(config KafkaConfig) (*KafkaClient, error) {
	if len(config.Brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = 3
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ConnectionTimeout)
	defer cancel()
	conn, err := kafka.DialContext(ctx, "tcp", config.Brokers[0])
	if err != nil {
		return nil, fmt.Errorf("kafka: dial %s: %w", config.Brokers[0], err)
	}
	conn.Close()

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(config.Brokers...),
		Topic:                  config.MatchTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		MaxAttempts:            config.MaxRetries,
		AllowAutoTopicCreation: true,
	}

	return &KafkaClient{config: config, writer: writer}, nil
}

// PublishMessage writes a lifecycle event keyed by match id so every event
// of one match lands on the same partition in order.
func (k *KafkaClient) PublishMessage(ctx context.Context, matchID uuid.UUID, msgType string, dataContent interface{}) {
	data, err := json.Marshal(dataContent)
	if err != nil {
		zap.L().Error("Failed to marshal kafka payload", zap.String("type", msgType), zap.Error(err))
		return
	}

	payload, err := json.Marshal(Message{
		ID:        uuid.New(),
		Type:      msgType,
		MatchID:   &matchID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		zap.L().Error("Failed to marshal kafka envelope", zap.Error(err))
		return
	}

	if err := k.writer.WriteMessages(ctx, kafka.Message{Key: []byte(matchID.String()), Value: payload}); err != nil {
		zap.L().Error("Failed to publish kafka message",
			zap.String("topic", k.config.MatchTopic),
			zap.String("match_id", matchID.String()),
			zap.String("type", msgType),
			zap.Error(err))
	}
}

// ConsumeMessages reads topic with the configured consumer group until ctx
// is done. Malformed messages are logged and committed.
func (k *KafkaClient) ConsumeMessages(ctx context.Context, topic string, handler Handler) error {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  k.config.Brokers,
		GroupID:  k.config.GroupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	k.mu.Lock()
	k.readers = append(k.readers, reader)
	k.mu.Unlock()

	for {
		m, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("kafka: fetch from %s: %w", topic, err)
		}

		var msg Message
		if err := json.Unmarshal(m.Value, &msg); err != nil {
			zap.L().Warn("Dropping malformed kafka message",
				zap.String("topic", topic),
				zap.Int64("offset", m.Offset),
				zap.Error(err))
		} else if err := k.handleWithRetry(ctx, &msg, handler); err != nil {
			zap.L().Error("Kafka handler failed, leaving offset uncommitted",
				zap.String("topic", topic),
				zap.String("type", msg.Type),
				zap.Error(err))
			continue
		}

		if err := reader.CommitMessages(ctx, m); err != nil && ctx.Err() == nil {
			zap.L().Error("Failed to commit kafka offset", zap.String("topic", topic), zap.Error(err))
		}
	}
}

func (k *KafkaClient) handleWithRetry(ctx context.Context, msg *Message, handler Handler) error {
	var err error
	for attempt := 1; attempt <= k.config.MaxRetries; attempt++ {
		if err = handler(ctx, msg); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
		}
	}
	return err
}

func (k *KafkaClient) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	errs := []error{k.writer.Close()}
	for _, reader := range k.readers {
		errs = append(errs, reader.Close())
	}
	return errors.Join(errs...)
}
