package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/zhouzirui/medjourney/backend/internal/apperror"
)

// Envelope is the response body shared by every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RespondJSON 发送JSON响应
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

// RespondSuccess 发送成功响应
func RespondSuccess(w http.ResponseWriter, status int, data any, message string) {
	RespondJSON(w, status, Envelope{Success: true, Data: data, Message: message})
}

// RespondError 发送错误响应
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, Envelope{Success: false, Error: message})
}

// StatusFromError maps an error kind to an HTTP status code.
func StatusFromError(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// RespondAppError writes err with the status matching its kind. prefix is
// prepended to the reason, e.g. "生成报告失败".
func RespondAppError(w http.ResponseWriter, err error, prefix string) {
	reason := apperror.Reason(err)
	if prefix != "" {
		reason = prefix + ": " + reason
	}
	RespondError(w, StatusFromError(err), reason)
}
