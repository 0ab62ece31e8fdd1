package grpc

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/vogiaan1904/ticketbottle-counter/internal/broadcast"
	"github.com/vogiaan1904/ticketbottle-counter/internal/counter"
	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
	"github.com/vogiaan1904/ticketbottle-counter/internal/service"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/clock"
	pkgGrpc "github.com/vogiaan1904/ticketbottle-counter/pkg/grpc"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type testAck struct {
	Command   string          `json:"command"`
	RequestID string          `json:"requestId"`
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
}

type testMessage struct {
	Type string          `json:"type"`
	Data models.Snapshot `json:"data"`
}

func newTestClient(t *testing.T) *pkgGrpc.CounterClient {
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

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterCounterServiceServer(srv, NewGrpcService(svc, l))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	cli, closeFn, err := pkgGrpc.NewCounterClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(closeFn)
	return cli
}

func TestDispatchAndWatch(t *testing.T) {
	cli := newTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	recv, err := cli.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	next := func() testMessage {
		t.Helper()
		raw, err := recv()
		if err != nil {
			t.Fatalf("recv: %v", err)
		}
		var msg testMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return msg
	}

	if msg := next(); msg.Type != "init" || msg.Data.Version != 0 {
		t.Fatalf("expected init at version 0, got %s/%d", msg.Type, msg.Data.Version)
	}

	var ack testAck
	err = cli.Dispatch(ctx, service.Command{
		Type:      service.CmdIssueTicket,
		RequestID: "g1",
		Payload:   json.RawMessage(`{"priority":"urgent"}`),
	}, &ack)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !ack.Success || ack.RequestID != "g1" {
		t.Fatalf("unexpected ack %+v", ack)
	}

	msg := next()
	if msg.Type != "update" || msg.Data.Version != 1 || len(msg.Data.Tickets) != 1 {
		t.Fatalf("unexpected update %+v", msg)
	}
	if msg.Data.Tickets[0].Priority != models.PriorityUrgent {
		t.Fatalf("expected urgent ticket, got %s", msg.Data.Tickets[0].Priority)
	}

	var snap models.Snapshot
	if err := cli.GetSnapshot(ctx, &snap); err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	if snap.Version != 1 || len(snap.Tickets) != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestDispatchFailureStatus(t *testing.T) {
	cli := newTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tests := []struct {
		name string
		cmd  service.Command
		want codes.Code
	}{
		{"no active call", service.Command{Type: service.CmdCancelCall}, codes.FailedPrecondition},
		{"unknown ticket", service.Command{Type: service.CmdCallNumber, Payload: json.RawMessage(`{"number":4,"seatId":"seat-1"}`)}, codes.NotFound},
		{"not queued", service.Command{Type: service.CmdSkipTicket, Payload: json.RawMessage(`{"number":4}`)}, codes.FailedPrecondition},
		{"unknown command", service.Command{Type: "reboot"}, codes.InvalidArgument},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var ack testAck
			err := cli.Dispatch(ctx, tc.cmd, &ack)
			if status.Code(err) != tc.want {
				t.Fatalf("expected %s, got %v", tc.want, err)
			}
		})
	}
}
