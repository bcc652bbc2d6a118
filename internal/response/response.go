package response

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	appErrors "github.com/unclebandit/adboost-backend/internal/errors"
)

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to write response", zap.Error(err))
	}
}

func Message(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, map[string]string{"error": message})
}

// Error writes err with the status its type maps to. Unexpected errors are
// logged and hidden from the client.
func Error(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Error(err))
		if !appErrors.IsNotConfigured(err) {
			Message(w, status, "internal server error")
			return
		}
	}
	Message(w, status, err.Error())
}

func StatusFor(err error) int {
	switch {
	case appErrors.IsInvalidInput(err):
		return http.StatusBadRequest
	case appErrors.IsNotFound(err):
		return http.StatusNotFound
	case appErrors.IsConflict(err), appErrors.IsAdNotPaid(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
