package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vogiaan1904/ticketbottle-counter/internal/service"
	pkgErrors "github.com/vogiaan1904/ticketbottle-counter/pkg/errors"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/response"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// ServeWS upgrades the connection and turns it into an observer. Snapshots
// from the hub and acks for commands sent on this connection share one
// writer, so each observer sees snapshots in production order.
func (h *HTTPHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn(r.Context(), "Websocket upgrade failed", "error", err)
		return
	}

	kind := r.URL.Query().Get("role")
	if kind == "" {
		kind = "observer"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := h.svc.Observe(ctx, kind)
	acks := make(chan response.Ack, 8)

	go h.readLoop(ctx, cancel, conn, acks)
	h.writeLoop(ctx, conn, client.Send, acks)

	h.svc.Forget(client)
	_ = conn.Close()
}

func (h *HTTPHandler) readLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, acks chan<- response.Ack) {
	defer cancel()

	conn.SetReadLimit(maxCommandBytes)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn(ctx, "Websocket read failed", "error", err)
			}
			return
		}

		var cmd service.Command
		var ack response.Ack
		if err := json.Unmarshal(data, &cmd); err != nil {
			ack = response.Failure("", "", pkgErrors.NewBusinessError(pkgErrors.CodeConfigurationError, "invalid command envelope"))
		} else {
			ack = h.svc.Dispatch(ctx, cmd)
		}

		select {
		case acks <- ack:
		case <-ctx.Done():
			return
		}
	}
}

func (h *HTTPHandler) writeLoop(ctx context.Context, conn *websocket.Conn, snapshots <-chan []byte, acks <-chan response.Ack) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case payload, ok := <-snapshots:
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case ack := <-acks:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ack); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
