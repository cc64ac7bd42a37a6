package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AnshRaj112/mindjournal-backend/internal/middleware"
	"github.com/AnshRaj112/mindjournal-backend/internal/services"
	"go.uber.org/zap"
)

// ErrorResponse is the body written for every failed request. Error is only
// populated for server-side failures.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Message: message})
}

// writeServiceError maps a service error kind onto an HTTP status.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		logger.Error("unexpected handler error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Server error", Error: err.Error()})
		return
	}

	switch svcErr.Kind {
	case services.KindValidation:
		writeMessage(w, http.StatusBadRequest, svcErr.Message)
	case services.KindNotFound:
		writeMessage(w, http.StatusNotFound, svcErr.Message)
	case services.KindForbidden:
		writeMessage(w, http.StatusForbidden, svcErr.Message)
	default:
		logger.Warn("request failed", zap.Stringer("kind", svcErr.Kind), zap.Error(err))
		resp := ErrorResponse{Message: svcErr.Message}
		if svcErr.Err != nil {
			resp.Error = svcErr.Err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, resp)
	}
}

// requireUser returns the caller set by the auth middleware, writing 401 when absent.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
		return "", false
	}
	return userID, true
}

// decodeJSON reads a JSON body into dst, writing 400 on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
