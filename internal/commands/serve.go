package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"monthcal/internal/capture"
	"monthcal/internal/config"
	appLog "monthcal/internal/log"
	"monthcal/internal/model"
	"monthcal/internal/scheduler"
	"monthcal/internal/web"
)

func addServe(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the month calendar web UI and JSON API.",
		Example: `
monthcal serve --config /etc/monthcal/config.yaml
MONTHCAL_LISTEN=:8080 monthcal serve
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	topLevel.AddCommand(cmd)
}

func serve(ctx context.Context, cfg *config.Config) error {
	appLog.Info("effective config",
		"listen", cfg.Listen,
		"timezone", cfg.Timezone,
		"week_start", cfg.WeekStart,
		"locale", cfg.Locale,
		"refresh", cfg.RefreshCron,
		"sources", len(cfg.Sources),
		"capture", cfg.Capture.Enabled,
		"basic_auth", cfg.BasicAuth != nil,
	)

	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}

	sched := scheduler.New(cfg.Location())
	if err := sched.Every(cfg.RefreshCron, "refresh", store.Refresh); err != nil {
		return err
	}
	if cfg.Capture.Enabled {
		err := sched.Every(cfg.Capture.Cron, "capture", func(ctx context.Context) error {
			return capture.CalendarPNG(ctx, captureOptions(cfg, model.YearMonth{}, "", ""))
		})
		if err != nil {
			return err
		}
	}

	// The first load runs in the background; until it lands the pages
	// show the loading state.
	go func() {
		if err := store.Refresh(ctx); err != nil {
			appLog.Warn("initial refresh incomplete", "error", err.Error())
		}
	}()

	sched.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		sched.Stop(stopCtx)
	}()

	return web.NewServer(cfg, store).ListenAndServe(ctx)
}

func captureOptions(cfg *config.Config, ym model.YearMonth, calendarID, pageURL string) capture.Options {
	if pageURL == "" {
		pageURL = capture.PageURL(cfg.Listen, ym, calendarID)
	}
	opts := capture.Options{
		URL:        pageURL,
		OutputPath: cfg.Capture.OutputPath,
		Width:      cfg.Capture.Width,
		Height:     cfg.Capture.Height,
		Timeout:    time.Duration(cfg.Capture.TimeoutSec) * time.Second,
	}
	if cfg.BasicAuth != nil {
		opts.Username = cfg.BasicAuth.Username
		opts.Password = cfg.BasicAuth.Password
	}
	return opts
}
