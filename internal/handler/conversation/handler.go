package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zhouzirui/medjourney/backend/internal/model/chat"
	"github.com/zhouzirui/medjourney/backend/pkg/utils"
)

// Store 会话与消息的持久化接口。
type Store interface {
	UpsertSession(ctx context.Context, session chat.Session) (*chat.Session, error)
	GetSession(ctx context.Context, sessionID string) (*chat.Session, error)
	AppendMessage(ctx context.Context, message chat.Message) (*chat.Message, error)
	ListMessages(ctx context.Context, sessionID string) ([]*chat.Message, error)
}

// Handler 会话与消息的HTTP处理器
type Handler struct {
	store Store
	log   *zap.Logger
}

// New 创建会话处理器
func New(store Store, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{store: store, log: log.Named("conversation")}
}

// RegisterRoutes 注册会话相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/conversations", func(r chi.Router) {
		r.Post("/sessions", h.handleCreateSession)
		r.Get("/sessions/{sessionID}", h.handleGetSession)
		r.Get("/sessions/{sessionID}/messages", h.handleListMessages)
		r.Post("/messages", h.handleSaveMessage)
	})
}

type createSessionRequest struct {
	SessionID   string         `json:"session_id"`
	UserID      string         `json:"user_id"`
	SessionType string         `json:"session_type"`
	Status      string         `json:"status"`
	CreatedAt   string         `json:"created_at"`
	Metadata    map[string]any `json:"metadata"`
}

// handleCreateSession 创建或覆盖会话
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var payload createSessionRequest
	if err := decodeBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.UserID) == "" {
		utils.RespondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	createdAt, err := parseTimestamp(payload.CreatedAt)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessionID := strings.TrimSpace(payload.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	session, err := h.store.UpsertSession(r.Context(), chat.Session{
		ID:          sessionID,
		UserID:      payload.UserID,
		SessionType: payload.SessionType,
		Status:      payload.Status,
		CreatedAt:   createdAt,
		Metadata:    payload.Metadata,
	})
	if err != nil {
		h.log.Error("create session failed", zap.String("session_id", sessionID), zap.Error(err))
		utils.RespondAppError(w, err, "创建会话失败")
		return
	}

	h.log.Info("session saved", zap.String("session_id", session.ID))
	utils.RespondSuccess(w, http.StatusOK, map[string]string{
		"session_id": session.ID,
		"user_id":    session.UserID,
		"status":     "created",
	}, "会话创建成功")
}

// handleGetSession 查询会话
func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		utils.RespondAppError(w, err, "获取会话失败")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, session, "获取会话成功")
}

type saveMessageRequest struct {
	SessionID       string         `json:"session_id"`
	UserID          string         `json:"user_id"`
	Role            string         `json:"role"`
	Content         string         `json:"content"`
	Timestamp       string         `json:"timestamp"`
	EmotionAnalysis map[string]any `json:"emotion_analysis"`
	Metadata        map[string]any `json:"metadata"`
}

// handleSaveMessage 保存消息
func (h *Handler) handleSaveMessage(w http.ResponseWriter, r *http.Request) {
	var payload saveMessageRequest
	if err := decodeBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.SessionID) == "" {
		utils.RespondError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	ts, err := parseTimestamp(payload.Timestamp)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	message, err := h.store.AppendMessage(r.Context(), chat.Message{
		SessionID:       payload.SessionID,
		Role:            chat.Role(payload.Role),
		Content:         payload.Content,
		Timestamp:       ts,
		EmotionAnalysis: payload.EmotionAnalysis,
		Metadata:        payload.Metadata,
	})
	if err != nil {
		h.log.Error("save message failed", zap.String("session_id", payload.SessionID), zap.Error(err))
		utils.RespondAppError(w, err, "保存消息失败")
		return
	}

	h.log.Info("message saved",
		zap.String("session_id", message.SessionID),
		zap.String("role", string(message.Role)),
		zap.Int64("id", message.ID),
	)
	utils.RespondSuccess(w, http.StatusOK, map[string]any{
		"id":         message.ID,
		"message_id": fmt.Sprintf("msg-%d", message.ID),
		"session_id": message.SessionID,
		"status":     "saved",
	}, "消息保存成功")
}

// handleListMessages 获取会话的所有消息
func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	messages, err := h.store.ListMessages(r.Context(), sessionID)
	if err != nil {
		h.log.Error("list messages failed", zap.String("session_id", sessionID), zap.Error(err))
		utils.RespondAppError(w, err, "获取消息失败")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]any{
		"session_id":  sessionID,
		"messages":    messages,
		"total_count": len(messages),
	}, "获取消息成功")
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// parseTimestamp accepts RFC3339 and zone-less ISO timestamps; the latter are
// read in local time. An empty value yields the zero time.
func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
}

// decodeBody 解析请求体，数字保留为 json.Number。
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(v)
}
