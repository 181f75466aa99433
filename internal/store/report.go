package store

import (
	"context"

	"github.com/zhouzirui/medjourney/backend/internal/apperror"
	"github.com/zhouzirui/medjourney/backend/internal/model/report"
)

// AppendReport persists an immutable report snapshot.
func (s *Store) AppendReport(ctx context.Context, create report.Report) (*report.Report, error) {
	const op = "store.AppendReport"
	if create.SessionID == "" {
		return nil, apperror.Validation(op, "session_id is required")
	}
	if len(create.Content) == 0 {
		return nil, apperror.Validation(op, "report content is empty")
	}
	if create.GeneratedAt.IsZero() {
		create.GeneratedAt = s.clock()
	} else {
		create.GeneratedAt = create.GeneratedAt.UTC()
	}
	if err := checkTimestamp(op, "generated_at", create.GeneratedAt); err != nil {
		return nil, err
	}

	saved, err := s.driver.CreateReport(ctx, &create)
	if err != nil {
		return nil, apperror.Storage(op, err)
	}
	return saved, nil
}

// ListReports returns the matching reports, newest first.
func (s *Store) ListReports(ctx context.Context, find FindReport) ([]*report.Report, error) {
	reports, err := s.driver.ListReports(ctx, &find)
	if err != nil {
		return nil, apperror.Storage("store.ListReports", err)
	}
	if reports == nil {
		reports = []*report.Report{}
	}
	return reports, nil
}
