package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/solacejournal/solace-backend/internal/journal"
	"github.com/solacejournal/solace-backend/internal/services"
	"github.com/solacejournal/solace-backend/internal/validation"
)

// extractBearerToken pulls the token out of an Authorization header.
func extractBearerToken(header string) string {
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// requireAuth validates the session and returns the authenticated user's ID.
// Returns ("", false) if not authenticated.
func requireAuth(r *http.Request) (string, bool) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return "", false
	}
	userID, ok, err := services.ValidateSession(r.Context(), token)
	if err != nil || !ok {
		return "", false
	}
	return userID.String(), true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, success bool, message string) {
	writeJSON(w, status, map[string]interface{}{"success": success, "message": message})
}

func writeUnauthorized(w http.ResponseWriter) {
	writeMessage(w, http.StatusUnauthorized, false, "Authentication required")
}

// writeServiceError maps journal service errors onto HTTP statuses. Store
// failures are logged and surface as a plain 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *validation.Error
	switch {
	case errors.Is(err, journal.ErrNotFound):
		writeMessage(w, http.StatusNotFound, false, err.Error())
	case errors.Is(err, journal.ErrForbidden):
		writeMessage(w, http.StatusForbidden, false, err.Error())
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": validationErr.Message,
			"field":   validationErr.Field,
		})
	default:
		log.Printf("[journal] internal error: %v", err)
		writeMessage(w, http.StatusInternalServerError, false, "Internal server error")
	}
}
