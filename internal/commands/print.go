package commands

import (
	"github.com/spf13/cobra"

	"monthcal/internal/commands/options"
	"monthcal/internal/layout"
	"monthcal/internal/model"
	"monthcal/internal/printers"
)

type printResult struct {
	Window      model.YearMonth              `json:"window"`
	Calendar    string                       `json:"calendar,omitempty"`
	Days        map[int][]model.DisplayEntry `json:"days"`
	Count       int                          `json:"count"`
	CanPrevious bool                         `json:"can_previous"`
	CanNext     bool                         `json:"can_next"`
	Bounds      layout.Bounds                `json:"bounds"`
}

func addPrint(topLevel *cobra.Command) {
	mo := &options.MonthOptions{}
	agenda := true

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print a month of events to the terminal.",
		Example: `
monthcal print
monthcal print --year 2024 --month 3 --calendar work
monthcal print --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := loadConfig()
			if err != nil {
				return oo.HandleError(out, err)
			}
			loc := cfg.Location()
			today := model.DateOf(now().In(loc))

			window, err := mo.Window(today.YearMonth())
			if err != nil {
				return oo.HandleError(out, err)
			}

			snap, err := fetchSnapshot(cmd.Context(), cfg)
			if err != nil {
				return oo.HandleError(out, err)
			}

			nav := layout.NewNavigator(today.YearMonth())
			nav.SetBounds(layout.ResolveBounds(snap.Events, today.YearMonth(), loc))
			nav.Seek(window)
			m := layout.Build(snap.Events, nav.Current(), mo.Filter(), loc)

			if oo.JSON {
				days := m.Days
				if days == nil {
					days = map[int][]model.DisplayEntry{}
				}
				calendar, _ := mo.Filter().ID()
				return options.PrintJSON(out, printResult{
					Window:      m.Window,
					Calendar:    calendar,
					Days:        days,
					Count:       m.Count(),
					CanPrevious: nav.CanGoPrevious(),
					CanNext:     nav.CanGoNext(),
					Bounds:      nav.Bounds(),
				})
			}

			pp := &printers.PrettyPrint{Out: out, WeekStart: cfg.FirstWeekday(), Today: today}
			pp.Grid(m)
			if agenda {
				pp.Agenda(m)
			}
			return nil
		},
	}

	options.AddMonthArgs(cmd, mo)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&agenda, "agenda", true, "Print the day by day event list below the grid.")

	topLevel.AddCommand(cmd)
}
