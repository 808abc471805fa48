package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/xavierca1/linkedin-tracker/internal/entity"
)

type ProspectsListResponse struct {
	Prospects []entity.Prospect `json:"prospects"`
	Total     int               `json:"total"`
}

type ProspectDetailResponse struct {
	Prospect entity.Prospect `json:"prospect"`
	Events   []entity.Event  `json:"events"`
}

type EventsListResponse struct {
	Events []entity.Event `json:"events"`
	Total  int            `json:"total"`
}

type StatsResponse struct {
	TotalProspects      int            `json:"total_prospects"`
	ByStatus            map[string]int `json:"by_status"`
	TotalEvents         int            `json:"total_events"`
	AcceptanceRate      float64        `json:"acceptance_rate"`
	LastWebhookReceived *time.Time     `json:"last_webhook_received,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// clampLimit folds a raw limit query value into [1, max], falling back to the
// route default when absent or unparseable.
func clampLimit(raw string, def, max int) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

func parseOffset(raw string) int {
	offset, err := strconv.Atoi(raw)
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}
