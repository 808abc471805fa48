package handlers

import (
	"log"
	"net/http"

	"github.com/xavierca1/linkedin-tracker/internal/entity"
)

type StatsHandler struct {
	ProspectRepo entity.ProspectRepositoryInterface
	EventRepo    entity.EventRepositoryInterface
}

func NewStatsHandler(prospectRepo entity.ProspectRepositoryInterface, eventRepo entity.EventRepositoryInterface) *StatsHandler {
	return &StatsHandler{ProspectRepo: prospectRepo, EventRepo: eventRepo}
}

func (h *StatsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	byStatus, err := h.ProspectRepo.CountByStatus(ctx)
	if err != nil {
		log.Printf("stats: status counts failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to compute stats"})
		return
	}

	totalProspects := 0
	for _, count := range byStatus {
		totalProspects += count
	}

	totalEvents, err := h.EventRepo.CountAll(ctx)
	if err != nil {
		log.Printf("stats: event count failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to compute stats"})
		return
	}

	lastEvent, err := h.EventRepo.LastEventAt(ctx)
	if err != nil {
		log.Printf("stats: last event lookup failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to compute stats"})
		return
	}

	// Acceptance rate over everyone a request ever went out to: prospects
	// still at connection_sent plus those already connected.
	connected := byStatus[entity.StatusConnected]
	reachedOut := byStatus[entity.StatusConnectionSent] + connected
	rate := 0.0
	if reachedOut > 0 {
		rate = float64(connected) / float64(reachedOut)
	}

	writeJSON(w, http.StatusOK, StatsResponse{
		TotalProspects:      totalProspects,
		ByStatus:            byStatus,
		TotalEvents:         totalEvents,
		AcceptanceRate:      rate,
		LastWebhookReceived: lastEvent,
	})
}
