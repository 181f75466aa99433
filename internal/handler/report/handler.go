package report

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	reportModel "github.com/zhouzirui/medjourney/backend/internal/model/report"
	reportService "github.com/zhouzirui/medjourney/backend/internal/service/report"
	"github.com/zhouzirui/medjourney/backend/pkg/utils"
)

// Handler 报告服务的HTTP处理器
type Handler struct {
	reports *reportService.Service
	log     *zap.Logger
}

// New 创建报告处理器
func New(reports *reportService.Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{reports: reports, log: log.Named("report")}
}

// RegisterRoutes 注册报告相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/reports/generate", h.handleGenerate)
	r.Get("/reports/{sessionID}", h.handleList)
}

type generateRequest struct {
	SessionID       string `json:"session_id"`
	ReportType      string `json:"report_type"`
	Format          string `json:"format"`
	IncludeAnalysis *bool  `json:"include_analysis"`
}

// handleGenerate 生成并保存报告
func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var payload generateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.SessionID) == "" {
		utils.RespondError(w, http.StatusBadRequest, "session_id is required")
		return
	}
	if payload.ReportType == "" {
		payload.ReportType = string(reportModel.KindDoctor)
	}

	saved, err := h.reports.Generate(r.Context(), reportService.Request{
		SessionID:       payload.SessionID,
		ReportType:      payload.ReportType,
		Format:          payload.Format,
		IncludeAnalysis: payload.IncludeAnalysis,
	})
	if err != nil {
		h.log.Warn("generate report failed",
			zap.String("session_id", payload.SessionID),
			zap.String("report_type", payload.ReportType),
			zap.Error(err),
		)
		utils.RespondAppError(w, err, "生成报告失败")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, saved.Content, "报告生成成功")
}

// handleList 获取会话的报告列表
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	reports, err := h.reports.List(r.Context(), sessionID, r.URL.Query().Get("report_type"))
	if err != nil {
		h.log.Error("list reports failed", zap.String("session_id", sessionID), zap.Error(err))
		utils.RespondAppError(w, err, "获取报告失败")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]any{
		"session_id":  sessionID,
		"reports":     reports,
		"total_count": len(reports),
	}, "获取报告成功")
}
