package http

import (
	"encoding/json"
	"net/http"

	"github.com/vogiaan1904/ticketbottle-counter/internal/service"
	pkgErrors "github.com/vogiaan1904/ticketbottle-counter/pkg/errors"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/logger"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/response"
)

// maxCommandBytes bounds the body of a command request.
const maxCommandBytes = 64 << 10

type HTTPHandler struct {
	svc    service.CounterService
	sched  service.RolloverScheduler
	logger logger.Logger
}

func NewHTTPHandler(svc service.CounterService, sched service.RolloverScheduler, l logger.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		sched:  sched,
		logger: l,
	}
}

// HealthCheck handles health check requests
func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":  "healthy",
		"service": "counter-service",
	}
	if h.sched != nil {
		body["rollover"] = h.sched.GetStatus()
	}
	h.respondJSON(w, r, http.StatusOK, body)
}

// GetSnapshot returns the current state without subscribing to updates.
func (h *HTTPHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusOK, h.svc.Snapshot(r.Context()))
}

// PostCommand runs one command envelope and replies with its ack.
func (h *HTTPHandler) PostCommand(w http.ResponseWriter, r *http.Request) {
	var cmd service.Command
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCommandBytes)).Decode(&cmd); err != nil {
		ack := response.Failure("", "", pkgErrors.NewBusinessError(pkgErrors.CodeConfigurationError, "invalid command envelope"))
		h.respondJSON(w, r, http.StatusBadRequest, ack)
		return
	}

	ack := h.svc.Dispatch(r.Context(), cmd)
	status := http.StatusOK
	if !ack.Success {
		status = pkgErrors.HTTPStatus(ack.Error.Code)
	}
	h.respondJSON(w, r, status, ack)
}

// Helper functions

func (h *HTTPHandler) respondJSON(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error(r.Context(), "Failed to encode JSON response", "error", err)
	}
}
