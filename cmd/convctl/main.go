// Command convctl inspects the conversation store from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/zhouzirui/medjourney/backend/internal/config"
	reportService "github.com/zhouzirui/medjourney/backend/internal/service/report"
	"github.com/zhouzirui/medjourney/backend/internal/store"
	"github.com/zhouzirui/medjourney/backend/internal/store/db"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app 持有一次命令执行期间打开的存储。
type app struct {
	v       *viper.Viper
	store   *store.Store
	reports *reportService.Service
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:          "convctl",
		Short:        "Inspect stored conversations and reports",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.String("driver", config.DriverSQLite, "storage driver (sqlite|postgres)")
	flags.String("db-path", "data/conversations.db", "sqlite database file")
	flags.String("dsn", "", "postgres connection string")
	flags.Duration("busy-timeout", 10*time.Second, "sqlite busy timeout")
	flags.Bool("json", false, "print JSON instead of a table")

	for key, env := range map[string]string{
		"driver":       "DB_DRIVER",
		"db-path":      "DB_PATH",
		"dsn":          "DB_DSN",
		"busy-timeout": "",
		"json":         "",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(key))
		if env != "" {
			_ = a.v.BindEnv(key, env)
		}
	}

	root.AddCommand(
		newSessionsCmd(a),
		newMessagesCmd(a),
		newReportsCmd(a),
		newPreviewCmd(a),
	)
	return root
}

func (a *app) storageConfig() config.StorageConfig {
	return config.StorageConfig{
		Driver:      a.v.GetString("driver"),
		Path:        a.v.GetString("db-path"),
		DSN:         a.v.GetString("dsn"),
		BusyTimeout: a.v.GetDuration("busy-timeout"),
	}
}

func (a *app) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := a.storageConfig()
	if cfg.Driver == config.DriverSQLite {
		if _, err := os.Stat(cfg.Path); err != nil {
			return fmt.Errorf("database %s not found: %w", cfg.Path, err)
		}
	}

	st, err := db.Open(ctx, cfg)
	if err != nil {
		return err
	}
	a.store = st
	a.reports = reportService.NewService(st, nil, zap.NewNop())
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

func (a *app) jsonOutput() bool {
	return a.v.GetBool("json")
}
