package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	kafka "github.com/vogiaan1904/ticketbottle-counter/internal/delivery/kafka"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/logger"
)

type Producer interface {
	PublishTicketIssued(ctx context.Context, event kafka.TicketIssuedEvent) error
	PublishTicketCalled(ctx context.Context, event kafka.TicketCalledEvent) error
	PublishCallCancelled(ctx context.Context, event kafka.CallCancelledEvent) error
	PublishTicketSkipped(ctx context.Context, event kafka.TicketSkippedEvent) error
	PublishTicketWithdrawn(ctx context.Context, event kafka.TicketWithdrawnEvent) error
	PublishSessionCompleted(ctx context.Context, event kafka.SessionCompletedEvent) error
	PublishDayClosed(ctx context.Context, event kafka.DayClosedEvent) error
	Close() error
}

type implProducer struct {
	l    logger.Logger
	prod sarama.SyncProducer
}

func NewProducer(prod sarama.SyncProducer, l logger.Logger) Producer {
	return &implProducer{
		l:    l,
		prod: prod,
	}
}

func (p *implProducer) PublishTicketIssued(ctx context.Context, event kafka.TicketIssuedEvent) error {
	event.Timestamp = time.Now()
	return p.send(ctx, kafka.TopicTicketIssued, event.Date, event)
}

func (p *implProducer) PublishTicketCalled(ctx context.Context, event kafka.TicketCalledEvent) error {
	event.Timestamp = time.Now()
	return p.send(ctx, kafka.TopicTicketCalled, event.Date, event)
}

func (p *implProducer) PublishCallCancelled(ctx context.Context, event kafka.CallCancelledEvent) error {
	event.Timestamp = time.Now()
	return p.send(ctx, kafka.TopicCallCancelled, event.Date, event)
}

func (p *implProducer) PublishTicketSkipped(ctx context.Context, event kafka.TicketSkippedEvent) error {
	event.Timestamp = time.Now()
	return p.send(ctx, kafka.TopicTicketSkipped, event.Date, event)
}

func (p *implProducer) PublishTicketWithdrawn(ctx context.Context, event kafka.TicketWithdrawnEvent) error {
	event.Timestamp = time.Now()
	return p.send(ctx, kafka.TopicTicketWithdrawn, event.Date, event)
}

func (p *implProducer) PublishSessionCompleted(ctx context.Context, event kafka.SessionCompletedEvent) error {
	event.Timestamp = time.Now()
	return p.send(ctx, kafka.TopicSessionCompleted, event.Date, event)
}

func (p *implProducer) PublishDayClosed(ctx context.Context, event kafka.DayClosedEvent) error {
	event.Timestamp = time.Now()
	return p.send(ctx, kafka.TopicDayClosed, event.Date, event)
}

func (p *implProducer) send(ctx context.Context, topic, key string, event any) error {
	val, err := json.Marshal(event)
	if err != nil {
		p.l.Errorf(ctx, "delivery.kafka.producer.send: %v", err)
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(val),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("timestamp"),
				Value: []byte(time.Now().Format(time.RFC3339)),
			},
		},
	}

	partition, offset, err := p.prod.SendMessage(msg)
	if err != nil {
		p.l.Errorf(ctx, "delivery.kafka.producer.send: topic=%s: %v", topic, err)
		return err
	}

	p.l.Debug(ctx, "Published event",
		"topic", topic,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

func (p *implProducer) Close() error {
	if err := p.prod.Close(); err != nil {
		return err
	}

	return nil
}
