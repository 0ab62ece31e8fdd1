package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	flag "github.com/spf13/pflag"
	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
	"github.com/vogiaan1904/ticketbottle-counter/internal/service"
	pkgGrpc "github.com/vogiaan1904/ticketbottle-counter/pkg/grpc"
)

var (
	addr            = flag.String("addr", "localhost:50057", "Counter gRPC address (host:port)")
	numPatients     = flag.Int("patients", 40, "Number of patients arriving at reception")
	arrivalRate     = flag.Duration("arrival-rate", 500*time.Millisecond, "Time between arrivals (0 for all at once)")
	urgentRate      = flag.Float64("urgent-rate", 0.1, "Probability a patient is urgent (0.0-1.0)")
	appointmentRate = flag.Float64("appointment-rate", 0.25, "Probability a patient has an appointment (0.0-1.0)")
	skipRate        = flag.Float64("skip-rate", 0.05, "Probability the head of the queue is skipped instead of called")
	sessionLength   = flag.Duration("session", 3*time.Second, "How long a patient stays in a seat")
	staffInterval   = flag.Duration("staff-interval", time.Second, "How often staff look at the board")
)

type ack struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type observerMessage struct {
	Type string          `json:"type"`
	Data models.Snapshot `json:"data"`
}

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cli, closeFn, err := pkgGrpc.NewCounterClient(*addr)
	if err != nil {
		fmt.Printf("Failed to create counter client: %v\n", err)
		os.Exit(1)
	}
	defer closeFn()

	var snap models.Snapshot
	if err := cli.GetSnapshot(ctx, &snap); err != nil {
		fmt.Printf("Failed to reach counter at %s: %v\n", *addr, err)
		os.Exit(1)
	}
	fmt.Printf("✅ Connected to counter at %s (%d seats, day %s)\n", *addr, len(snap.Seats), snap.OperationalDate)

	board := &boardState{}
	go watch(ctx, cli, board)

	var wg sync.WaitGroup
	wg.Go(func() { arrive(ctx, cli) })
	wg.Go(func() { staff(ctx, cli, board) })

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-sigChan:
			fmt.Println("\n\n🛑 Simulation stopped")
			cancel()
			wg.Wait()
			printFinalStats(board.get())
			return
		case <-ticker.C:
			s := board.get()
			busy := 0
			for _, seat := range s.Seats {
				if !seat.IsAvailable() {
					busy++
				}
			}
			fmt.Printf("[%s] Waiting: %d | Busy seats: %d/%d | Called today: %d | Avg wait: %.1f min\n",
				time.Now().Format("15:04:05"),
				len(s.Tickets),
				busy,
				len(s.Seats),
				s.Statistics.CalledToday,
				s.Statistics.AverageWaitMinutes,
			)
		}
	}
}

type boardState struct {
	mu   sync.Mutex
	snap models.Snapshot
}

func (b *boardState) set(s models.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snap = s
}

func (b *boardState) get() models.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snap
}

func watch(ctx context.Context, cli *pkgGrpc.CounterClient, board *boardState) {
	recv, err := cli.Watch(ctx)
	if err != nil {
		fmt.Printf("❌ Failed to watch counter: %v\n", err)
		return
	}
	for {
		raw, err := recv()
		if err != nil {
			if ctx.Err() == nil {
				fmt.Printf("❌ Watch stream ended: %v\n", err)
			}
			return
		}
		var msg observerMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		board.set(msg.Data)
	}
}

func dispatch(ctx context.Context, cli *pkgGrpc.CounterClient, typ string, payload any) (ack, error) {
	cmd := service.Command{Type: typ, RequestID: uuid.NewString()}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return ack{}, err
		}
		cmd.Payload = raw
	}
	var out ack
	err := cli.Dispatch(ctx, cmd, &out)
	return out, err
}

func randomPriority() models.Priority {
	r := rand.Float64()
	switch {
	case r < *urgentRate:
		return models.PriorityUrgent
	case r < *urgentRate+*appointmentRate:
		return models.PriorityAppointment
	default:
		return models.PriorityNormal
	}
}

func arrive(ctx context.Context, cli *pkgGrpc.CounterClient) {
	fmt.Printf("\n🚀 %d patients arriving every %v...\n", *numPatients, *arrivalRate)
	for i := 0; i < *numPatients; i++ {
		if ctx.Err() != nil {
			return
		}

		p := randomPriority()
		res, err := dispatch(ctx, cli, service.CmdIssueTicket, service.IssueTicketInput{Priority: string(p)})
		if err != nil {
			fmt.Printf("❌ Failed to issue ticket: %v\n", err)
		} else {
			var out service.IssueTicketOutput
			_ = json.Unmarshal(res.Data, &out)
			fmt.Printf("🎫 #%d issued (%s, ~%d min)\n", out.Number, out.Priority, out.EstimatedWaitMinutes)
		}

		if *arrivalRate > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(*arrivalRate):
			}
		}
	}
}

func staff(ctx context.Context, cli *pkgGrpc.CounterClient, board *boardState) {
	ticker := time.NewTicker(*staffInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := board.get()
			now := time.Now()

			for _, seat := range s.Seats {
				if seat.IsAvailable() || seat.OccupiedSince == nil || now.Sub(*seat.OccupiedSince) < *sessionLength {
					continue
				}
				if _, err := dispatch(ctx, cli, service.CmdCompleteSession, service.CompleteSessionInput{SeatID: seat.ID}); err == nil {
					fmt.Printf("✅ %s finished with #%d\n", seat.Label, *seat.OccupantTicket)
				}
			}

			queue := s.Tickets
			for _, seat := range s.Seats {
				if !seat.IsAvailable() || len(queue) == 0 {
					continue
				}
				head := queue[0]
				queue = queue[1:]

				if rand.Float64() < *skipRate {
					if _, err := dispatch(ctx, cli, service.CmdSkipTicket, service.SkipTicketInput{Number: head.Number}); err == nil {
						fmt.Printf("⏭️  #%d did not show up and was skipped\n", head.Number)
					}
					continue
				}
				if _, err := dispatch(ctx, cli, service.CmdCallNumber, service.CallNumberInput{Number: head.Number, SeatID: seat.ID}); err == nil {
					fmt.Printf("📣 #%d please go to %s\n", head.Number, seat.Label)
				}
			}
		}
	}
}

func printFinalStats(s models.Snapshot) {
	fmt.Println("\n📊 Final Statistics:")
	fmt.Printf("   Issued today: %d\n", s.Statistics.IssuedToday)
	fmt.Printf("   Called today: %d\n", s.Statistics.CalledToday)
	fmt.Printf("   Completed today: %d\n", s.Statistics.CompletedToday)
	fmt.Printf("   Still waiting: %d\n", len(s.Tickets))
	fmt.Printf("   Average session: %.1f min\n", s.Statistics.AverageSessionMinutes)
	fmt.Printf("   Average wait: %.1f min\n", s.Statistics.AverageWaitMinutes)
}
