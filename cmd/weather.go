package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/skylane/rosterops/app"
	"github.com/skylane/rosterops/config"
	"github.com/skylane/rosterops/infra/logger"
)

var (
	weatherStart string
	weatherEnd   string
)

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Print the weather risk summary for a date range",
	RunE:  runWeather,
}

func init() {
	weatherCmd.Flags().StringVar(&weatherStart, "start", "", "range start (YYYY-MM-DD, default today)")
	weatherCmd.Flags().StringVar(&weatherEnd, "end", "", "range end (YYYY-MM-DD, default start+6d)")
	rootCmd.AddCommand(weatherCmd)
}

func runWeather(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now().UTC().Truncate(24 * time.Hour)
	if weatherStart != "" {
		var err error
		start, err = time.Parse("2006-01-02", weatherStart)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
	}
	end := start.AddDate(0, 0, 6)
	if weatherEnd != "" {
		var err error
		end, err = time.Parse("2006-01-02", weatherEnd)
		if err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
	}

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
			logger.New("weather-command").Errorf("service close: %v", err)
		}
	}()

	summaries, err := svc.Weather.MonthSummary(ctx, start, end)
	if err != nil {
		return fmt.Errorf("weather summary: %w", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(summaries)
}
