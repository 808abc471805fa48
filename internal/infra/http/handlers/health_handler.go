package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"time"
)

type HealthHandler struct {
	DB *sql.DB
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{DB: db}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	database := "connected"
	if err := h.DB.PingContext(r.Context()); err != nil {
		log.Printf("health: database ping failed: %v", err)
		database = "error"
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Database:  database,
		Timestamp: time.Now().UTC(),
	})
}
