package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"monthcal/internal/layout"
	"monthcal/internal/model"
)

// MonthOptions selects a month and an optional calendar filter.
type MonthOptions struct {
	Year     int
	Month    int
	Calendar string
}

func AddMonthArgs(cmd *cobra.Command, mo *MonthOptions) {
	cmd.Flags().IntVar(&mo.Year, "year", 0,
		"Year to show. Defaults to the current one.")
	cmd.Flags().IntVar(&mo.Month, "month", 0,
		"Month to show (1-12). Defaults to the current one.")
	cmd.Flags().StringVar(&mo.Calendar, "calendar", "",
		"Only show events of this calendar id.")
}

// Window returns the requested month. Missing parts come from today.
func (mo *MonthOptions) Window(today model.YearMonth) (model.YearMonth, error) {
	ym := today
	if mo.Year != 0 {
		ym.Year = mo.Year
	}
	if mo.Month != 0 {
		if mo.Month < 1 || mo.Month > 12 {
			return model.YearMonth{}, fmt.Errorf("invalid month %d", mo.Month)
		}
		ym.Month = time.Month(mo.Month)
	}
	return ym, nil
}

// Filter maps --calendar to a layout filter. "" and "all" mean everything.
func (mo *MonthOptions) Filter() layout.CalendarFilter {
	if mo.Calendar == "" || mo.Calendar == "all" {
		return layout.AllCalendars()
	}
	return layout.OnlyCalendar(mo.Calendar)
}
