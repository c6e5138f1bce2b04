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

var overtimeFormat string

var overtimeCmd = &cobra.Command{
	Use:   "overtime",
	Short: "Print the per-crew overtime breakdown for the current roster",
	RunE:  runOvertime,
}

func init() {
	overtimeCmd.Flags().StringVarP(&overtimeFormat, "format", "f", "json", "output format: json or csv")
	rootCmd.AddCommand(overtimeCmd)
}

func runOvertime(cmd *cobra.Command, args []string) error {
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
			logger.New("overtime-command").Errorf("service close: %v", err)
		}
	}()

	rep, err := svc.OvertimeReport(ctx)
	if err != nil {
		return fmt.Errorf("overtime report: %w", err)
	}
	switch overtimeFormat {
	case "csv":
		return export.WriteOvertimeCSV(os.Stdout, rep.ByCrew)
	case "json":
		return export.WriteOvertimeJSON(os.Stdout, rep.ByCrew)
	default:
		return fmt.Errorf("unknown format %q", overtimeFormat)
	}
}
