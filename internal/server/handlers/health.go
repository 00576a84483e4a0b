package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/unobits/website/internal/responses"
)

const readinessTimeout = 2 * time.Second

type healthResponse struct {
	Status string `json:"status"`
}

// HandleLiveness reports that the process is running
func (h *HandlerService) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	responses.RespondWithJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// HandleReadiness reports whether the contact store can accept submissions
func (h *HandlerService) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if err := h.Store.Ping(ctx); err != nil {
		responses.RespondWithJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	responses.RespondWithJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
