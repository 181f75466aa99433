package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	reportModel "github.com/zhouzirui/medjourney/backend/internal/model/report"
)

// 报告内容在表格视图中只展示前 200 个字符。
const contentPreviewRunes = 200

func newSessionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List sessions, most recently created first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions, err := a.store.ListSessions(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), sessions)
			}

			tw := newTable(cmd.OutOrStdout(), "SESSION", "USER", "TYPE", "STATUS", "CREATED", "UPDATED")
			for _, s := range sessions {
				row(tw, s.ID, s.UserID, s.SessionType, s.Status, formatTime(s.CreatedAt), formatTime(s.UpdatedAt))
			}
			return tw.Flush()
		},
	}
}

func newMessagesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "messages <session-id>",
		Short: "Print the transcript of a session in chronological order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			messages, err := a.store.ListMessages(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), messages)
			}

			tw := newTable(cmd.OutOrStdout(), "ID", "ROLE", "TIME", "CONTENT")
			for _, m := range messages {
				row(tw, fmt.Sprint(m.ID), strings.ToUpper(string(m.Role)), formatTime(m.Timestamp), m.Content)
			}
			return tw.Flush()
		},
	}
}

func newReportsCmd(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "reports <session-id>",
		Short: "List stored reports of a session, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := a.reports.List(cmd.Context(), args[0], kind)
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), reports)
			}

			tw := newTable(cmd.OutOrStdout(), "ID", "TYPE", "GENERATED", "CONTENT")
			for _, r := range reports {
				row(tw, fmt.Sprint(r.ID), string(r.Kind), formatTime(r.GeneratedAt), truncate(string(r.Content), contentPreviewRunes))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&kind, "type", "", "only list reports of this type (doctor|family)")
	return cmd
}

func newPreviewCmd(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "preview <session-id>",
		Short: "Compose a report for a session without storing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.reports.Compose(cmd.Context(), args[0], kind)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), doc)
		},
	}
	cmd.Flags().StringVar(&kind, "type", string(reportModel.KindDoctor), "report type (doctor|family)")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	row(tw, headers...)
	return tw
}

func row(tw *tabwriter.Writer, cols ...string) {
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
