package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	kafka "github.com/vogiaan1904/ticketbottle-counter/internal/delivery/kafka"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/logger"
)

func newMockProducer(t *testing.T) *mocks.SyncProducer {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true
	return mocks.NewSyncProducer(t, cfg)
}

func TestPublishTicketCalled(t *testing.T) {
	mp := newMockProducer(t)
	mp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != kafka.TopicTicketCalled {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != "2026-03-02" {
			return errors.New("unexpected key " + string(key))
		}
		raw, _ := msg.Value.Encode()
		var e kafka.TicketCalledEvent
		if err := json.Unmarshal(raw, &e); err != nil {
			return err
		}
		if e.Number != 4 || e.SeatID != "seat-1" || e.Timestamp.IsZero() {
			return errors.New("unexpected payload " + string(raw))
		}
		return nil
	})

	p := NewProducer(mp, logger.NewNop())
	err := p.PublishTicketCalled(context.Background(), kafka.TicketCalledEvent{
		Date:     "2026-03-02",
		Number:   4,
		SeatID:   "seat-1",
		CalledAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestPublishFailure(t *testing.T) {
	mp := newMockProducer(t)
	mp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewProducer(mp, logger.NewNop())
	err := p.PublishDayClosed(context.Background(), kafka.DayClosedEvent{Date: "2026-03-02"})
	if !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Fatalf("expected ErrOutOfBrokers, got %v", err)
	}
	_ = p.Close()
}
