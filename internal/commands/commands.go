// Package commands holds the monthcal command line.
package commands

import (
	"context"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"monthcal/internal/commands/options"
	"monthcal/internal/config"
	appLog "monthcal/internal/log"
	"monthcal/internal/model"
	"monthcal/internal/source"
)

var (
	oo       = &options.OutputOptions{}
	settings = viper.New()

	// now is replaced in tests.
	now = time.Now
)

func New() *cobra.Command {
	settings = viper.New()

	cmd := &cobra.Command{
		Use:   "monthcal",
		Short: "Month calendar of Google, ICS and API event sources.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "./config.yaml", "Path to the YAML config file. Created with defaults if missing.")
	pf.String("listen", "", "HTTP listen address, overrides the config file.")
	pf.String("log-level", "", "One of debug, info, warn, error. Overrides the config file.")

	settings.SetEnvPrefix("MONTHCAL")
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()
	for _, name := range []string{"config", "listen", "log-level"} {
		_ = settings.BindPFlag(name, pf.Lookup(name))
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addServe(topLevel)
	addPrint(topLevel)
	addCalendars(topLevel)
	addCapture(topLevel)
	addVersion(topLevel)
}

// loadConfig reads the config file named by --config / MONTHCAL_CONFIG and
// applies the flag and environment overrides on top.
func loadConfig() (*config.Config, error) {
	path, err := homedir.Expand(settings.GetString("config"))
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if listen := settings.GetString("listen"); listen != "" {
		cfg.Listen = listen
	}
	if level := settings.GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	appLog.SetLevel(appLog.ParseLevel(cfg.LogLevel))
	return cfg, nil
}

func newStore(ctx context.Context, cfg *config.Config) (*source.Store, error) {
	providers, err := source.FromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	loc := cfg.Location()
	return source.NewStore(providers, func() source.Range {
		return source.RangeAround(model.MonthOf(now().In(loc)), cfg.MonthsBack, cfg.MonthsAhead, loc)
	}), nil
}

// fetchSnapshot refreshes a fresh store once. A partial failure is logged
// and the merged events are still returned.
func fetchSnapshot(ctx context.Context, cfg *config.Config) (source.Snapshot, error) {
	store, err := newStore(ctx, cfg)
	if err != nil {
		return source.Snapshot{}, err
	}
	err = store.Refresh(ctx)
	snap := store.Snapshot()
	if snap.Status != source.StatusReady {
		return snap, err
	}
	if err != nil {
		appLog.Warn("some sources failed", "failed", strings.Join(snap.Failed, ","))
	}
	return snap, nil
}
