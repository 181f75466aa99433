// Package report generates, persists and lists session reports.
package report

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/zhouzirui/medjourney/backend/internal/apperror"
	"github.com/zhouzirui/medjourney/backend/internal/model/chat"
	reportModel "github.com/zhouzirui/medjourney/backend/internal/model/report"
	"github.com/zhouzirui/medjourney/backend/internal/store"
)

const DefaultFormat = "json"

// Store is the subset of the record store the report service needs.
type Store interface {
	GetSession(ctx context.Context, sessionID string) (*chat.Session, error)
	ListMessages(ctx context.Context, sessionID string) ([]*chat.Message, error)
	AppendReport(ctx context.Context, create reportModel.Report) (*reportModel.Report, error)
	ListReports(ctx context.Context, find store.FindReport) ([]*reportModel.Report, error)
}

// Request describes a report generation call.
type Request struct {
	SessionID  string
	ReportType string
	Format     string
	// IncludeAnalysis defaults to true when nil.
	IncludeAnalysis *bool
}

// Service 负责报告的生成与查询。
type Service struct {
	store    Store
	composer *Composer
	log      *zap.Logger
}

// NewService wires the report service. A nil logger disables logging.
func NewService(s Store, composer *Composer, log *zap.Logger) *Service {
	if composer == nil {
		composer = NewComposer(nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: s, composer: composer, log: log.Named("report")}
}

// Compose builds the document for the session without persisting it.
func (s *Service) Compose(ctx context.Context, sessionID, reportType string) (any, error) {
	_, doc, err := s.compose(ctx, "report.Compose", sessionID, reportType)
	return doc, err
}

// compose 返回校验后的报告类型及对应文档，Generate 持久化时使用同一个类型。
func (s *Service) compose(ctx context.Context, op, sessionID, reportType string) (reportModel.Kind, any, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return "", nil, err
	}
	messages, err := s.store.ListMessages(ctx, sessionID)
	if err != nil {
		return "", nil, err
	}
	if len(messages) == 0 {
		return "", nil, apperror.NotFound(op, "session %s has no messages", sessionID)
	}

	kind := reportModel.Kind(strings.TrimSpace(reportType))
	if !kind.Valid() {
		return "", nil, apperror.Validation(op, "unsupported report type %q", reportType)
	}
	return kind, s.composer.Compose(kind, session, messages), nil
}

// Generate composes the requested report and stores it as a new snapshot.
func (s *Service) Generate(ctx context.Context, req Request) (*reportModel.Report, error) {
	const op = "report.Generate"

	kind, doc, err := s.compose(ctx, op, req.SessionID, req.ReportType)
	if err != nil {
		return nil, err
	}
	content, err := json.Marshal(doc)
	if err != nil {
		return nil, apperror.Storage(op, err)
	}

	format := strings.TrimSpace(req.Format)
	if format == "" {
		format = DefaultFormat
	}
	includeAnalysis := true
	if req.IncludeAnalysis != nil {
		includeAnalysis = *req.IncludeAnalysis
	}

	saved, err := s.store.AppendReport(ctx, reportModel.Report{
		SessionID: req.SessionID,
		Kind:      kind,
		Content:   content,
		Metadata: map[string]any{
			"format":           format,
			"include_analysis": includeAnalysis,
		},
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("report generated",
		zap.String("session_id", req.SessionID),
		zap.String("report_type", string(saved.Kind)),
		zap.Int64("id", saved.ID),
	)
	return saved, nil
}

// List returns the stored reports of a session, newest first. An empty kind
// matches every kind.
func (s *Service) List(ctx context.Context, sessionID, kind string) ([]*reportModel.Report, error) {
	find := store.FindReport{SessionID: sessionID}
	if kind = strings.TrimSpace(kind); kind != "" {
		k := reportModel.Kind(kind)
		find.Kind = &k
	}
	return s.store.ListReports(ctx, find)
}
