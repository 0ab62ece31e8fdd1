package kafka

import (
	"fmt"

	"github.com/IBM/sarama"
)

type ProducerConfig struct {
	Brokers      []string
	ClientID     string
	RetryMax     int
	RequiredAcks int
}

// NewProducer builds a synchronous producer. Counter events are keyed by
// operational date, so the hash partitioner keeps one day on one partition.
func NewProducer(cfg ProducerConfig) (sarama.SyncProducer, error) {
	saramaCfg := sarama.NewConfig()
	if cfg.ClientID != "" {
		saramaCfg.ClientID = cfg.ClientID
	}
	saramaCfg.Producer.RequiredAcks = sarama.RequiredAcks(cfg.RequiredAcks)
	saramaCfg.Producer.Retry.Max = cfg.RetryMax
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.Partitioner = sarama.NewHashPartitioner
	saramaCfg.Producer.Compression = sarama.CompressionSnappy

	prod, err := sarama.NewSyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return prod, nil
}
