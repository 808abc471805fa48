package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/xavierca1/linkedin-tracker/internal/infra/http/middleware"
	"github.com/xavierca1/linkedin-tracker/internal/usecase"
)

type WebhookHandler struct {
	Pipeline *usecase.IngestEventUseCase
}

func NewWebhookHandler(pipeline *usecase.IngestEventUseCase) *WebhookHandler {
	return &WebhookHandler{Pipeline: pipeline}
}

type webhookAck struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Handle receives a HeyReach delivery. Policy: the response is always 200,
// success or failure reported only in the body. HeyReach retries aggressively
// on non-2xx, and a redelivery storm is worse than a logged failure.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deliveryID := uuid.New().String()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("webhook %s: failed to read body: %v", deliveryID, err)
		middleware.RecordWebhook("unknown", "error")
		writeJSON(w, http.StatusOK, webhookAck{Status: "error", Message: "failed to read body"})
		return
	}

	log.Printf("webhook %s: received %d bytes", deliveryID, len(body))

	input, err := usecase.ParseWebhook(body)
	if err != nil {
		log.Printf("webhook %s: rejected payload: %v", deliveryID, err)
		middleware.RecordWebhook("unknown", "invalid")
		writeJSON(w, http.StatusOK, webhookAck{Status: "error", Message: err.Error()})
		return
	}

	result, err := h.Pipeline.Execute(r.Context(), input)
	if err != nil {
		log.Printf("webhook %s: processing failed for %s: %v", deliveryID, input.EventType, err)
		middleware.RecordWebhook(input.EventType, "error")
		writeJSON(w, http.StatusOK, webhookAck{Status: "error", Message: "webhook logged with error"})
		return
	}

	middleware.RecordWebhook(input.EventType, "success")
	if result.Created {
		middleware.RecordProspectCreated()
	}
	log.Printf("webhook %s: processed %s for prospect %d (created=%t status_changed=%t)",
		deliveryID, input.EventType, result.Prospect.ID, result.Created, result.StatusChanged)

	writeJSON(w, http.StatusOK, webhookAck{Status: "success", Message: "Webhook processed"})
}
