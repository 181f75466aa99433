package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/zhouzirui/medjourney/backend/internal/model/report"
	"github.com/zhouzirui/medjourney/backend/internal/store"
)

func (d *DB) CreateReport(ctx context.Context, create *report.Report) (*report.Report, error) {
	metadata, err := store.EncodeJSONField(create.Metadata)
	if err != nil {
		return nil, err
	}

	stmt := d.rebind(`INSERT INTO generated_reports
		(session_id, report_type, content, generated_ts, metadata)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`)

	saved := *create
	if err := d.db.QueryRowContext(ctx, stmt,
		create.SessionID, string(create.Kind), string(create.Content), toUnix(create.GeneratedAt), metadata,
	).Scan(&saved.ID); err != nil {
		return nil, errors.Wrapf(err, "%s: insert %s report for session %s", d.dialect.Name, create.Kind, create.SessionID)
	}
	return &saved, nil
}

func (d *DB) ListReports(ctx context.Context, find *store.FindReport) ([]*report.Report, error) {
	where, args := []string{"session_id = ?"}, []any{find.SessionID}
	if v := find.Kind; v != nil {
		where, args = append(where, "report_type = ?"), append(args, string(*v))
	}
	query := d.rebind(`SELECT id, session_id, report_type, content, generated_ts, metadata
		FROM generated_reports
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY generated_ts DESC, id DESC`)

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: list reports for session %s", d.dialect.Name, find.SessionID)
	}
	defer rows.Close()

	var list []*report.Report
	for rows.Next() {
		var (
			r        report.Report
			kind     string
			content  string
			ts       int64
			metadata sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.SessionID, &kind, &content, &ts, &metadata); err != nil {
			return nil, errors.Wrapf(err, "%s: scan report", d.dialect.Name)
		}
		r.Kind = report.Kind(kind)
		r.Content = json.RawMessage(content)
		r.GeneratedAt = fromUnix(ts)
		if r.Metadata, err = store.DecodeJSONField(metadata); err != nil {
			return nil, err
		}
		list = append(list, &r)
	}
	return list, rows.Err()
}
