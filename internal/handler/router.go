package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/zhouzirui/medjourney/backend/internal/handler/conversation"
	"github.com/zhouzirui/medjourney/backend/internal/handler/report"
	middlewarePkg "github.com/zhouzirui/medjourney/backend/internal/middleware"
	reportService "github.com/zhouzirui/medjourney/backend/internal/service/report"
	"github.com/zhouzirui/medjourney/backend/pkg/utils"
)

const (
	ServiceName    = "MedJourney Conversation Storage Service"
	ServiceVersion = "1.0.0"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(store conversation.Store, reports *reportService.Service, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(log.Named("http")))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	conversationHandler := conversation.New(store, log)
	reportHandler := report.New(reports, log)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{
			"message": "MedJourney 对话存储服务",
			"version": ServiceVersion,
			"status":  "running",
		})
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/health", handleHealth)

		conversationHandler.RegisterRoutes(api)
		reportHandler.RegisterRoutes(api)
	})

	return r
}

// handleHealth 存活探针
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   ServiceName,
	})
}
