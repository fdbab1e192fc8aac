package commands

import (
	"github.com/spf13/cobra"

	"monthcal/internal/commands/options"
	"monthcal/internal/layout"
	"monthcal/internal/model"
	"monthcal/internal/printers"
)

// filterChoices matches the number of filter buttons on the web page.
const filterChoices = 3

func addCalendars(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "calendars",
		Short: "List the calendars found in the configured sources.",
		Example: `
monthcal calendars
monthcal calendars --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := loadConfig()
			if err != nil {
				return oo.HandleError(out, err)
			}
			snap, err := fetchSnapshot(cmd.Context(), cfg)
			if err != nil {
				return oo.HandleError(out, err)
			}

			cals := layout.Calendars(snap.Events)
			if oo.JSON {
				if cals == nil {
					cals = []model.CalendarRef{}
				}
				return options.PrintJSON(out, map[string][]model.CalendarRef{
					"calendars": cals,
					"choices":   layout.FilterChoices(cals, filterChoices),
				})
			}

			pp := &printers.PrettyPrint{Out: out}
			pp.Calendars(cals, snap.Events, filterChoices)
			return nil
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
