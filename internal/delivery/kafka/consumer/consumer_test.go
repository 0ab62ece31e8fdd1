package consumer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/vogiaan1904/ticketbottle-counter/internal/broadcast"
	"github.com/vogiaan1904/ticketbottle-counter/internal/counter"
	"github.com/vogiaan1904/ticketbottle-counter/internal/delivery/kafka"
	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
	"github.com/vogiaan1904/ticketbottle-counter/internal/service"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/clock"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/logger"
)

type fakeSession struct {
	sarama.ConsumerGroupSession
	ctx context.Context

	mu     sync.Mutex
	marked []int64
}

func (s *fakeSession) Context() context.Context { return s.ctx }

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked = append(s.marked, msg.Offset)
}

type fakeClaim struct {
	sarama.ConsumerGroupClaim
	msgs chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.msgs }

func newTestConsumer(t *testing.T) (*Consumer, service.CounterService) {
	t.Helper()
	l := logger.NewNop()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	engine := counter.New(counter.Config{
		Seats:            []string{"Room 1"},
		SessionMinutes:   5,
		WaitMinutes:      5,
		CallHistoryLimit: 10,
		Location:         time.UTC,
		Settings:         models.DefaultSettings(),
	}, now)
	svc := service.NewCounterService(engine, clock.NewFake(now), broadcast.NewHub(l), nil, nil, nil, l, 8)
	return NewConsumer(nil, svc, l), svc
}

func TestConsumeClaim(t *testing.T) {
	c, svc := newTestConsumer(t)

	// An urgent walk-in is already waiting.
	if _, err := svc.IssueTicket(context.Background(), service.IssueTicketInput{Priority: "urgent"}); err != nil {
		t.Fatal(err)
	}

	claim := &fakeClaim{msgs: make(chan *sarama.ConsumerMessage, 4)}
	claim.msgs <- &sarama.ConsumerMessage{Topic: kafka.TopicAppointmentCheckedIn, Offset: 1, Value: []byte(`{"appointment_id":"apt-1"}`)}
	claim.msgs <- &sarama.ConsumerMessage{Topic: kafka.TopicAppointmentCheckedIn, Offset: 2, Value: []byte(`not json`)}
	claim.msgs <- &sarama.ConsumerMessage{Topic: "other.topic", Offset: 3, Value: []byte(`{}`)}
	close(claim.msgs)

	sess := &fakeSession{ctx: context.Background()}
	if err := c.ConsumeClaim(sess, claim); err != nil {
		t.Fatalf("consume claim: %v", err)
	}

	if len(sess.marked) != 2 || sess.marked[0] != 1 || sess.marked[1] != 3 {
		t.Fatalf("expected offsets 1 and 3 to be marked, got %v", sess.marked)
	}

	snap := svc.Snapshot(context.Background())
	if len(snap.Tickets) != 2 {
		t.Fatalf("expected 2 queued tickets, got %d", len(snap.Tickets))
	}
	if got := snap.Tickets[1]; got.Number != 2 || got.Priority != models.PriorityAppointment {
		t.Fatalf("expected appointment ticket 2 behind the urgent one, got %+v", got)
	}
}

func TestConsumeClaimStopsOnContextDone(t *testing.T) {
	c, _ := newTestConsumer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	claim := &fakeClaim{msgs: make(chan *sarama.ConsumerMessage)}
	if err := c.ConsumeClaim(&fakeSession{ctx: ctx}, claim); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
