package respond

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/aiqa-platform/user-service/internal/apperr"
)

// ErrorBody is the wire shape of every failure response.
type ErrorBody struct {
	Success      bool   `json:"success"`
	ErrorCode    int    `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
	Timestamp    int64  `json:"timestamp"`
}

// JSON writes a success payload.
func JSON(w http.ResponseWriter, status int, payload any) {
	write(w, status, payload)
}

// Error converts err to the failure envelope. Typed business errors keep
// their code and message and map to HTTP status through the fixed
// apperr table; anything else is logged server-side and masked as a
// generic 500 so internals never leak to clients.
func Error(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		log.Printf("internal error: %v", err)
		appErr = &apperr.Error{Code: apperr.CodeInternalError, Message: "internal server error"}
	}
	write(w, apperr.HTTPStatus(appErr.Code), ErrorBody{
		Success:      false,
		ErrorCode:    appErr.Code,
		ErrorMessage: appErr.Message,
		Timestamp:    time.Now().UnixMilli(),
	})
}

func write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("respond: encode payload failed: %v", err)
	}
}
