package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// ParseUserID extracts and validates the user ID from the request path.
// Returns the ID and true on success, or "" and false on error (after
// writing an error response).
// Expects path parameter: uid
func ParseUserID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (string, bool) {
	userID := strings.TrimSpace(r.PathValue("uid"))
	if userID == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_user_id", "User ID is required"); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return "", false
	}
	return userID, true
}
