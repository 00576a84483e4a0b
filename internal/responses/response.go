package responses

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/unobits/website/internal/apperrors"
	"github.com/unobits/website/internal/logger"
)

// ErrorResponse is the body of the error responses sent by the website.
// The field names match the error responses of the unobits API so browser code can handle both the same way.
type ErrorResponse struct {
	ErrorCode apperrors.ErrorCode `json:"error"`
	Message   string              `json:"message"`
}

// RespondWithError logs the error at a level based on the status and writes a JSON error response
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, errorCode apperrors.ErrorCode, message string) {
	reqLogger := logger.RequestLogger(r.Context())

	reqLogger.LogAttrs(r.Context(), logger.StatusLevel(statusCode), "request failed",
		slog.Int("status", statusCode),
		slog.String("error_code", string(errorCode)),
		slog.String("error_message", message),
	)

	dat, err := json.Marshal(ErrorResponse{
		ErrorCode: errorCode,
		Message:   message,
	})
	if err != nil {
		reqLogger.Error("error marshaling error response", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal_error","message":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(dat)
}

func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal_error","message":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
