package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/openregs/docketsync/internal/attachments"
	"github.com/openregs/docketsync/internal/comments"
	"github.com/openregs/docketsync/internal/logging"
	"github.com/openregs/docketsync/internal/regsapi"
	"github.com/openregs/docketsync/internal/storage/csvfile"
	"github.com/openregs/docketsync/internal/storage/sqlite"
	"github.com/openregs/docketsync/internal/syncer"
	"github.com/openregs/docketsync/pkg/config"
)

// newSyncCmd creates and configures the 'sync' subcommand, which runs one
// synchronization pass over a docket.
func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Runs one synchronization pass over a docket",
		Long: `Pages through the docket's public comment listing, fetching detail and
attachments for every comment not already present in the loaded table.
Partial progress is persisted even when the run fails.`,
		RunE: runSyncCommand,
	}

	flags := cmd.Flags()
	flags.String("docket", "", "docket id to synchronize (required)")
	flags.String("posted-date", "", `posted date or range filter, e.g. "01/01/21" or "01/01/21-02/01/21"`)
	flags.Int("rpp", 25, "records per listing page")
	flags.Int("page-offset", 0, "starting page offset")
	flags.Duration("delay", 2*time.Second, "minimum delay between API requests")
	flags.String("attachments-dir", "attachments", "directory for downloaded attachments")
	flags.Bool("describe-docket", false, "log docket metadata before syncing (one extra API call)")
	flags.String("table", "comments", "table name in the SQLite database")
	flags.String("sqlite", "", "SQLite database file to save the table to")
	flags.Bool("load", false, "load previously saved comments from the SQLite database first")
	flags.String("csv", "", "CSV file to save the table to")
	flags.String("logfile", "", "also write logs to this file")

	for key, flag := range map[string]string{
		"sync.docket":          "docket",
		"sync.posted_date":     "posted-date",
		"sync.rpp":             "rpp",
		"sync.page_offset":     "page-offset",
		"api.delay":            "delay",
		"sync.attachments_dir": "attachments-dir",
		"sync.describe_docket": "describe-docket",
		"store.table":          "table",
		"store.sqlite":         "sqlite",
		"store.load":           "load",
		"store.csv":            "csv",
		"log.file":             "logfile",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}
	return cmd
}

func runSyncCommand(cmd *cobra.Command, _ []string) error {
	if err := config.Init(); err != nil {
		return err
	}

	logger, err := logging.New(false, viper.GetString("log.file"))
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush

	// Fail fast before any network activity.
	apiKey := viper.GetString("api.key")
	if apiKey == "" {
		return errors.New("api key not set: export DOCKETSYNC_API_KEY (or REGS_API_KEY)")
	}

	logger = logger.With(zap.String("run_id", uuid.NewString()))

	syncCfg, err := syncer.LoadConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("load sync config: %w", err)
	}

	client, err := regsapi.New(regsapi.Config{
		BaseURL:  viper.GetString("api.base_url"),
		APIKey:   apiKey,
		Delay:    viper.GetDuration("api.delay"),
		Cooldown: viper.GetDuration("api.cooldown"),
	}, nil, nil, logger)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	resolver, err := attachments.New(client, viper.GetString("sync.attachments_dir"), logger)
	if err != nil {
		return fmt.Errorf("init attachment resolver: %w", err)
	}

	ctx := cmd.Context()
	table := comments.NewTable()
	tableName := viper.GetString("store.table")

	var store *sqlite.Store
	if path := viper.GetString("store.sqlite"); path != "" {
		store, err = sqlite.New(path, logger)
		if err != nil {
			return fmt.Errorf("init sqlite store: %w", err)
		}
	}
	if store != nil && viper.GetBool("store.load") {
		rows, err := store.Load(ctx, tableName)
		if err != nil {
			return fmt.Errorf("load saved comments: %w", err)
		}
		if err := table.Replace(rows); err != nil {
			return fmt.Errorf("index saved comments: %w", err)
		}
		logger.Info("previous comments loaded", zap.Int("rows", table.Len()))
	}

	if viper.GetBool("sync.describe_docket") {
		if docket, derr := client.Docket(ctx, syncCfg.DocketID); derr != nil {
			logger.Warn("docket lookup failed", zap.Error(derr))
		} else if title, ok := docket["title"].(string); ok {
			logger.Info("docket", zap.String("title", title))
		}
	}

	engine := syncer.New(client, resolver, table, syncCfg, logger)

	start := time.Now()
	runErr := engine.Run(ctx)

	// Persist whatever accumulated, success or failure; a canceled run must
	// not lose its partial table.
	persistCtx := context.WithoutCancel(ctx)
	if store != nil {
		if serr := store.Save(persistCtx, tableName, table.Rows()); serr != nil {
			logger.Error("saving comments to sqlite failed", zap.Error(serr))
			if runErr == nil {
				runErr = serr
			}
		}
	}
	if path := viper.GetString("store.csv"); path != "" {
		if serr := csvfile.Write(path, table.Rows()); serr != nil {
			logger.Error("saving comments to csv failed", zap.Error(serr))
			if runErr == nil {
				runErr = serr
			}
		}
	}

	logger.Info("sync finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("api_calls", client.Calls()),
		zap.Int("comments", table.Len()))
	if runErr != nil {
		logger.Error("sync failed", zap.Error(runErr))
	}
	return runErr
}
