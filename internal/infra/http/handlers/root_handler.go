package handlers

import "net/http"

func HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "LinkedIn Webhook Tracker API",
		"health":  "/health",
	})
}
