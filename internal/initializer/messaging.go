package initializer

import (
	"context"
	"log"

	"match-service/config"
	"match-service/infra/messaging"

	"go.uber.org/zap"
)

// InitMessaging connects to Kafka and starts the user-events consumer. The
// consumer stops when ctx is done.
func InitMessaging(ctx context.Context, appConfig config.Config, handler messaging.Handler) *messaging.KafkaClient {
	kafkaConfig := messaging.NewDefaultConfig(appConfig.Kafka.Brokers)
	if appConfig.Kafka.MatchTopic != "" {
		kafkaConfig.MatchTopic = appConfig.Kafka.MatchTopic
	}
	if appConfig.Kafka.UserTopic != "" {
		kafkaConfig.UserTopic = appConfig.Kafka.UserTopic
	}
	if appConfig.Kafka.GroupID != "" {
		kafkaConfig.GroupID = appConfig.Kafka.GroupID
	}
	if appConfig.Kafka.DialTimeout > 0 {
		kafkaConfig.ConnectionTimeout = appConfig.Kafka.DialTimeout
	}

	kafkaClient, err := messaging.NewKafkaClient(kafkaConfig)
	if err != nil {
		log.Fatalf("Kafka connection failed: %v", err)
	}
	zap.L().Info("Kafka client initialized",
		zap.Strings("brokers", kafkaConfig.Brokers),
		zap.String("match_topic", kafkaConfig.MatchTopic))

	go func() {
		zap.L().Info("Starting Kafka consumer", zap.String("topic", kafkaConfig.UserTopic))
		if err := kafkaClient.ConsumeMessages(ctx, kafkaConfig.UserTopic, handler); err != nil {
			zap.L().Error("Kafka consumer stopped", zap.String("topic", kafkaConfig.UserTopic), zap.Error(err))
		}
	}()

	return kafkaClient
}
