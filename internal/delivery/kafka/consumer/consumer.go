package consumer

import (
	"context"
	"sync"

	"github.com/IBM/sarama"
	"github.com/vogiaan1904/ticketbottle-counter/internal/delivery/kafka"
	"github.com/vogiaan1904/ticketbottle-counter/internal/service"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/logger"
)

// Consumer feeds upstream events into the counter. Appointment check-ins
// become appointment priority tickets.
type Consumer struct {
	consGr sarama.ConsumerGroup
	svc    service.CounterService
	l      logger.Logger
	wg     sync.WaitGroup
}

func NewConsumer(
	consGr sarama.ConsumerGroup,
	svc service.CounterService,
	l logger.Logger,
) *Consumer {
	return &Consumer{
		consGr: consGr,
		svc:    svc,
		l:      l,
	}
}

func (c *Consumer) processMessage(ctx context.Context, msg *sarama.ConsumerMessage) error {
	switch msg.Topic {
	case kafka.TopicAppointmentCheckedIn:
		return c.HandleAppointmentCheckedIn(ctx, msg)
	default:
		c.l.Warn(ctx, "Unknown topic", "topic", msg.Topic)
		return nil
	}
}

func (c *Consumer) Start(ctx context.Context) error {
	topics := []string{kafka.TopicAppointmentCheckedIn}
	c.wg.Go(func() {
		for {
			if err := c.consGr.Consume(ctx, topics, c); err != nil {
				c.l.Errorf(ctx, "delivery.kafka.consumer.Start: %v", err)
			}

			if ctx.Err() != nil {
				c.l.Infof(ctx, "delivery.kafka.consumer.Start: %v", ctx.Err())
				return
			}
		}
	})

	c.wg.Go(func() {
		for err := range c.consGr.Errors() {
			c.l.Errorf(ctx, "delivery.kafka.consumer.Start: %v", err)
		}
	})

	c.l.Infof(ctx, "Consumer is consuming topics: %v", topics)
	return nil
}

func (c *Consumer) Close() error {
	if err := c.consGr.Close(); err != nil {
		return err
	}

	c.wg.Wait()
	return nil
}

func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	c.l.Debug(context.Background(), "Consumer group session started")
	return nil
}

func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	c.l.Debug(context.Background(), "Consumer group session ended")
	return nil
}

func (c *Consumer) ConsumeClaim(ss sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}

			if err := c.processMessage(ss.Context(), message); err != nil {
				c.l.Error(ss.Context(), "Failed to process message",
					"error", err,
					"topic", message.Topic,
					"offset", message.Offset,
				)
				continue
			}

			ss.MarkMessage(message, "")

		case <-ss.Context().Done():
			return nil
		}
	}
}
