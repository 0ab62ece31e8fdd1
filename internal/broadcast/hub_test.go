package broadcast

import (
	"testing"

	"github.com/vogiaan1904/ticketbottle-counter/pkg/logger"
)

func TestBroadcastInOrder(t *testing.T) {
	h := NewHub(logger.NewNop())
	a := NewClient("a", "board", 4)
	b := NewClient("b", "staff", 4)
	h.Register(a)
	h.Register(b)

	h.Broadcast([]byte("1"))
	h.Broadcast([]byte("2"))

	for _, c := range []*Client{a, b} {
		if got := string(<-c.Send); got != "1" {
			t.Fatalf("%s: expected 1, got %s", c.ID, got)
		}
		if got := string(<-c.Send); got != "2" {
			t.Fatalf("%s: expected 2, got %s", c.ID, got)
		}
	}
}

func TestSlowClientKeepsNewest(t *testing.T) {
	tests := []struct {
		name     string
		buffer   int
		payloads []string
		want     []string
	}{
		{"buffer of one", 1, []string{"v1", "v2", "v3"}, []string{"v3"}},
		{"buffer of two", 2, []string{"v1", "v2", "v3", "v4"}, []string{"v3", "v4"}},
		{"room to spare", 3, []string{"v1", "v2"}, []string{"v1", "v2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHub(logger.NewNop())
			slow := NewClient("slow", "board", tt.buffer)
			h.Register(slow)

			for _, p := range tt.payloads {
				h.Broadcast([]byte(p))
			}

			var got []string
		drain:
			for {
				select {
				case msg := <-slow.Send:
					got = append(got, string(msg))
				default:
					break drain
				}
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
			if last := got[len(got)-1]; last != tt.payloads[len(tt.payloads)-1] {
				t.Fatalf("last delivered %s, last broadcast %s", last, tt.payloads[len(tt.payloads)-1])
			}
		})
	}
}

func TestUnregisterTwice(t *testing.T) {
	h := NewHub(logger.NewNop())
	c := NewClient("c", "admin", 1)
	h.Register(c)
	h.Unregister(c)
	h.Unregister(c)

	if _, ok := <-c.Send; ok {
		t.Fatal("channel should be closed")
	}
	if h.Len() != 0 {
		t.Fatalf("expected no clients, got %d", h.Len())
	}
	h.Broadcast([]byte("x"))
}

func TestClose(t *testing.T) {
	h := NewHub(logger.NewNop())
	c := NewClient("c", "admin", 1)
	h.Register(c)
	h.Close()
	if _, ok := <-c.Send; ok {
		t.Fatal("channel should be closed")
	}
	h.Unregister(c)
}
