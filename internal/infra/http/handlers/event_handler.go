package handlers

import (
	"log"
	"net/http"

	"github.com/xavierca1/linkedin-tracker/internal/entity"
)

type EventHandler struct {
	EventRepo entity.EventRepositoryInterface
}

func NewEventHandler(eventRepo entity.EventRepositoryInterface) *EventHandler {
	return &EventHandler{EventRepo: eventRepo}
}

func (h *EventHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	eventType := r.URL.Query().Get("event_type")
	limit := clampLimit(r.URL.Query().Get("limit"), 100, 500)
	offset := parseOffset(r.URL.Query().Get("offset"))

	events, total, err := h.EventRepo.List(r.Context(), eventType, limit, offset)
	if err != nil {
		log.Printf("events: list failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to list events"})
		return
	}

	writeJSON(w, http.StatusOK, EventsListResponse{Events: events, Total: total})
}
