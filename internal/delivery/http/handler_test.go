package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vogiaan1904/ticketbottle-counter/internal/broadcast"
	"github.com/vogiaan1904/ticketbottle-counter/internal/counter"
	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
	"github.com/vogiaan1904/ticketbottle-counter/internal/service"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/clock"
	pkgErrors "github.com/vogiaan1904/ticketbottle-counter/pkg/errors"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/logger"
)

type ackBody struct {
	Type      string          `json:"type"`
	Command   string          `json:"command"`
	RequestID string          `json:"requestId"`
	Success   bool            `json:"success"`
	Error     *struct{ Code string } `json:"error"`
	Data      json.RawMessage `json:"data"`
}

type observerBody struct {
	Type string          `json:"type"`
	Data models.Snapshot `json:"data"`
}

func newTestServer(t *testing.T) *httptest.Server {
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

	srv := httptest.NewServer(NewRouter(NewHTTPHandler(svc, nil, l), l))
	t.Cleanup(srv.Close)
	return srv
}

func postCommand(t *testing.T, srv *httptest.Server, body string) (int, ackBody) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/v1/commands", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var ack ackBody
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		t.Fatalf("decode ack: %v", err)
	}
	return resp.StatusCode, ack
}

func TestPostCommand(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"issue", `{"type":"issueTicket","requestId":"r1","payload":{"priority":"appointment"}}`, http.StatusOK, ""},
		{"call", `{"type":"callNumber","payload":{"number":1,"seatId":"seat-1"}}`, http.StatusOK, ""},
		{"seat busy", `{"type":"issueTicket"}`, http.StatusOK, ""},
		{"call busy seat", `{"type":"callNumber","payload":{"number":2,"seatId":"seat-1"}}`, http.StatusConflict, pkgErrors.CodeSeatUnavailable},
		{"missing number", `{"type":"skipTicket","payload":{}}`, http.StatusBadRequest, pkgErrors.CodeConfigurationError},
		{"bad envelope", `{"type":`, http.StatusBadRequest, pkgErrors.CodeConfigurationError},
		{"unknown ticket", `{"type":"callNumber","payload":{"number":9,"seatId":"seat-1"}}`, http.StatusNotFound, pkgErrors.CodeTicketNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, ack := postCommand(t, srv, tc.body)
			if status != tc.wantStatus {
				t.Fatalf("expected status %d, got %d (%+v)", tc.wantStatus, status, ack)
			}
			if ack.Type != "ack" {
				t.Fatalf("unexpected type %q", ack.Type)
			}
			if tc.wantCode == "" && !ack.Success {
				t.Fatalf("expected success, got %+v", ack.Error)
			}
			if tc.wantCode != "" && (ack.Error == nil || ack.Error.Code != tc.wantCode) {
				t.Fatalf("expected %s, got %+v", tc.wantCode, ack.Error)
			}
		})
	}

	resp, err := http.Get(srv.URL + "/api/v1/snapshot")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var snap models.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if snap.CurrentCall == nil || snap.CurrentCall.Number != 1 || len(snap.Tickets) != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
}

func dial(t *testing.T, srv *httptest.Server, role string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?role=" + role
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	return conn
}

func readJSON(t *testing.T, conn *websocket.Conn) map[string]json.RawMessage {
	t.Helper()
	var msg map[string]json.RawMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func msgType(msg map[string]json.RawMessage) string {
	var s string
	_ = json.Unmarshal(msg["type"], &s)
	return s
}

func TestWebsocketObserversAndAcks(t *testing.T) {
	srv := newTestServer(t)

	staff := dial(t, srv, "staff")
	board := dial(t, srv, "board")
	if got := msgType(readJSON(t, staff)); got != "init" {
		t.Fatalf("staff: expected init, got %s", got)
	}
	if got := msgType(readJSON(t, board)); got != "init" {
		t.Fatalf("board: expected init, got %s", got)
	}

	if err := staff.WriteJSON(map[string]any{"type": "issueTicket", "requestId": "w1"}); err != nil {
		t.Fatal(err)
	}

	var gotAck, gotUpdate bool
	for i := 0; i < 2; i++ {
		msg := readJSON(t, staff)
		switch msgType(msg) {
		case "ack":
			gotAck = true
			var rid string
			_ = json.Unmarshal(msg["requestId"], &rid)
			if rid != "w1" {
				t.Fatalf("unexpected request id %q", rid)
			}
		case "update":
			gotUpdate = true
		}
	}
	if !gotAck || !gotUpdate {
		t.Fatalf("staff expected ack and update, ack=%v update=%v", gotAck, gotUpdate)
	}

	raw := readJSON(t, board)
	if msgType(raw) != "update" {
		t.Fatalf("board: expected update, got %s", msgType(raw))
	}
	var snap models.Snapshot
	if err := json.Unmarshal(raw["data"], &snap); err != nil {
		t.Fatal(err)
	}
	if len(snap.Tickets) != 1 || snap.Version != 1 {
		t.Fatalf("unexpected board snapshot %+v", snap)
	}

	// A failed command is acked to its originator only.
	if err := staff.WriteJSON(map[string]any{"type": "cancelCall"}); err != nil {
		t.Fatal(err)
	}
	msg := readJSON(t, staff)
	if msgType(msg) != "ack" {
		t.Fatalf("expected ack, got %s", msgType(msg))
	}
	_ = board.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	if _, _, err := board.ReadMessage(); err == nil {
		t.Fatal("board received a message for a failed command")
	}
}
