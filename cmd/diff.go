package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skylane/rosterops/app"
	"github.com/skylane/rosterops/config"
	"github.com/skylane/rosterops/infra/logger"
	"github.com/skylane/rosterops/pkg/export"
)

var diffFormat string

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare the baseline roster against the current one",
	RunE:  runDiff,
}

func init() {
	diffCmd.Flags().StringVarP(&diffFormat, "format", "f", "json", "output format: json or csv")
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("diff-command").Errorf("service close: %v", err)
		}
	}()

	res, err := svc.Compare(ctx)
	if err != nil {
		return fmt.Errorf("compare rosters: %w", err)
	}
	switch diffFormat {
	case "csv":
		return export.WriteChangesCSV(os.Stdout, res.CrewChanges)
	case "json":
		return export.WriteChangesJSON(os.Stdout, res.CrewChanges)
	default:
		return fmt.Errorf("unknown format %q", diffFormat)
	}
}
