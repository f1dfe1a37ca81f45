package kafka

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// LoanEventsTopic carries borrow/return facts for downstream consumers.
	LoanEventsTopic = "loan-events"
	// InventorySyncTopic carries copy totals pushed by the catalog pipeline.
	InventorySyncTopic = "inventory-sync"

	BorrowingConsumerGroup = "borrowing-service"
)

type Config struct {
	Addrs []string `yaml:"addrs" envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
}

// CreateTopics makes sure the service topics exist before producers and
// consumers attach. Topics that already exist are left as they are.
func CreateTopics(cfg Config) error {
	admin, err := sarama.NewClusterAdmin(cfg.Addrs, sarama.NewConfig())
	if err != nil {
		return errors.WithMessage(err, "new cluster admin")
	}
	defer admin.Close()

	detail := &sarama.TopicDetail{NumPartitions: 1, ReplicationFactor: 1}
	for _, topic := range []string{LoanEventsTopic, InventorySyncTopic} {
		if err := admin.CreateTopic(topic, detail, false); err != nil {
			var topicErr *sarama.TopicError
			if errors.As(err, &topicErr) && topicErr.Err == sarama.ErrTopicAlreadyExists {
				continue
			}
			return errors.WithMessagef(err, "create topic %s", topic)
		}
	}
	return nil
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func NewConsumer(cfg Config, group string) (sarama.ConsumerGroup, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	return sarama.NewConsumerGroup(cfg.Addrs, group, defaultCfg)
}

// Consume runs the consumer-group session loop until the group is closed.
// Sarama ends a session on every rebalance, so the handler is re-entered in
// a loop.
func Consume(ctx context.Context, consumer sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler, log *zap.Logger, topics ...string) {
	for {
		if err := consumer.Consume(ctx, topics, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return
			}
			log.Error("consumer group session", zap.Error(err))
		}
		if ctx.Err() != nil {
			return
		}
	}
}
