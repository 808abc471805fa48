package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/linkedin-tracker/internal/entity"
)

type ProspectHandler struct {
	ProspectRepo entity.ProspectRepositoryInterface
	EventRepo    entity.EventRepositoryInterface
}

func NewProspectHandler(prospectRepo entity.ProspectRepositoryInterface, eventRepo entity.EventRepositoryInterface) *ProspectHandler {
	return &ProspectHandler{ProspectRepo: prospectRepo, EventRepo: eventRepo}
}

func (h *ProspectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	limit := clampLimit(r.URL.Query().Get("limit"), 50, 100)
	offset := parseOffset(r.URL.Query().Get("offset"))

	prospects, total, err := h.ProspectRepo.List(r.Context(), status, limit, offset)
	if err != nil {
		log.Printf("prospects: list failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to list prospects"})
		return
	}

	writeJSON(w, http.StatusOK, ProspectsListResponse{Prospects: prospects, Total: total})
}

func (h *ProspectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "prospect not found"})
		return
	}

	prospect, err := h.ProspectRepo.FindByID(r.Context(), id)
	if errors.Is(err, entity.ErrProspectNotFound) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "prospect not found"})
		return
	}
	if err != nil {
		log.Printf("prospects: lookup %d failed: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to load prospect"})
		return
	}

	events, err := h.EventRepo.ListByProspect(r.Context(), id)
	if err != nil {
		log.Printf("prospects: events for %d failed: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to load events"})
		return
	}

	writeJSON(w, http.StatusOK, ProspectDetailResponse{Prospect: *prospect, Events: events})
}
