package kafka

import (
	"fmt"

	"github.com/IBM/sarama"
)

type ConsumerConfig struct {
	Brokers  []string
	GroupID  string
	ClientID string
	// FromOldest makes a new group start at the beginning of each partition
	// instead of only seeing events produced after it joined.
	FromOldest bool
}

func NewConsumer(cfg ConsumerConfig) (sarama.ConsumerGroup, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.Version = sarama.V2_8_0_0
	if cfg.ClientID != "" {
		saramaCfg.ClientID = cfg.ClientID
	}
	saramaCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategySticky()}
	saramaCfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	if cfg.FromOldest {
		saramaCfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	}
	saramaCfg.Consumer.Return.Errors = true

	consGroup, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka consumer group %q: %w", cfg.GroupID, err)
	}

	return consGroup, nil
}
