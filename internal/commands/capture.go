package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"monthcal/internal/capture"
	"monthcal/internal/commands/options"
	"monthcal/internal/model"
)

func addCapture(topLevel *cobra.Command) {
	mo := &options.MonthOptions{}
	var pageURL, output string

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Take one PNG screenshot of a running calendar page.",
		Long: `Loads the /calendar page of a running "monthcal serve" in headless
Chromium and writes a PNG of it. Without --url the page is looked up on
the configured listen address.`,
		Example: `
monthcal capture
monthcal capture --year 2024 --month 3 --output march.png
monthcal capture --url http://calendar.local:8080/calendar
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var ym model.YearMonth
			if mo.Year != 0 || mo.Month != 0 {
				if ym, err = mo.Window(model.MonthOf(now().In(cfg.Location()))); err != nil {
					return err
				}
			}
			if output != "" {
				cfg.Capture.OutputPath = output
			}

			opts := captureOptions(cfg, ym, mo.Calendar, pageURL)
			if err := capture.CalendarPNG(cmd.Context(), opts); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), opts.OutputPath)
			return nil
		},
	}

	options.AddMonthArgs(cmd, mo)
	cmd.Flags().StringVar(&pageURL, "url", "", "Page to capture, overrides the listen address lookup.")
	cmd.Flags().StringVarP(&output, "output", "o", "", "PNG path, overrides capture.output_path.")

	topLevel.AddCommand(cmd)
}
