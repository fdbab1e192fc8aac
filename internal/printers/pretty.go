// Package printers renders months and calendar lists for the terminal.
package printers

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"monthcal/internal/layout"
	"monthcal/internal/model"
)

type PrettyPrint struct {
	Out       io.Writer
	WeekStart time.Weekday
	Today     model.Date
}

// New returns a printer writing to color.Output.
func New(weekStart time.Weekday, today model.Date) *PrettyPrint {
	return &PrettyPrint{Out: color.Output, WeekStart: weekStart, Today: today}
}

const width = len("11 12 13 14 15 16 17") // an example week

var tokenColors = map[model.ColorToken]color.Attribute{
	model.ColorBlue:   color.FgBlue,
	model.ColorPurple: color.FgMagenta,
	model.ColorGreen:  color.FgGreen,
	model.ColorOrange: color.FgHiRed,
	model.ColorPink:   color.FgHiMagenta,
	model.ColorIndigo: color.FgHiBlue,
	model.ColorTeal:   color.FgCyan,
	model.ColorRed:    color.FgRed,
	model.ColorYellow: color.FgYellow,
	model.ColorCyan:   color.FgHiCyan,
}

func colorFor(token model.ColorToken) *color.Color {
	if a, ok := tokenColors[token]; ok {
		return color.New(a)
	}
	return color.New()
}

// Grid prints a compact month: days with events in bold, today inverted.
func (pp *PrettyPrint) Grid(m layout.Month) {
	tf := color.New(color.FgWhite, color.Italic)

	title := m.Window.Month.String() + " " + fmt.Sprint(m.Window.Year)
	mid := (width - len(title)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(pp.Out, "%s%s\n", strings.Repeat(" ", mid), title)

	hdr := color.New(color.Faint)
	names := make([]string, 0, 7)
	for _, d := range layout.Weekdays(pp.WeekStart) {
		names = append(names, d.String()[:2])
	}
	_, _ = hdr.Fprintln(pp.Out, strings.Join(names, " "))

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	today := color.New(color.ReverseVideo, color.Bold)

	for _, row := range layout.Grid(m.Window, pp.WeekStart, pp.Today) {
		cells := make([]string, 0, len(row))
		for _, c := range row {
			switch {
			case c.Blank:
				cells = append(cells, "  ")
			case c.IsToday:
				cells = append(cells, today.Sprintf("%2d", c.Day))
			case len(m.Entries(c.Day)) > 0:
				cells = append(cells, l2.Sprintf("%2d", c.Day))
			default:
				cells = append(cells, l1.Sprintf("%2d", c.Day))
			}
		}
		_, _ = fmt.Fprintln(pp.Out, strings.TrimRight(strings.Join(cells, " "), " "))
	}
	_, _ = fmt.Fprintln(pp.Out)
}

// Agenda prints every day that has entries, in day order.
func (pp *PrettyPrint) Agenda(m layout.Month) {
	if m.Count() == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.Out, " none\n\n")
		return
	}

	days := make([]int, 0, len(m.Days))
	for d := range m.Days {
		days = append(days, d)
	}
	sort.Ints(days)

	b := color.New(color.Bold)
	u := color.New(color.Bold, color.Underline)
	faint := color.New(color.Faint)

	for _, day := range days {
		date := time.Date(m.Window.Year, m.Window.Month, day, 0, 0, 0, 0, time.UTC)
		printer := b
		if model.DateOf(date) == pp.Today {
			printer = u
		}
		_, _ = printer.Fprintf(pp.Out, "%2d %s\n", day, date.Weekday().String()[:3])

		for _, e := range m.Entries(day) {
			at := e.Time
			if e.IsAllDay() {
				at = "all day"
			}
			title := e.Title
			if title == "" {
				title = "(untitled)"
			}
			_, _ = fmt.Fprintf(pp.Out, "   %-7s ", at)
			_, _ = colorFor(e.Color).Fprint(pp.Out, title)
			if e.IsMultiDay {
				_, _ = faint.Fprint(pp.Out, " "+multiDayMark(e))
			}
			if e.Location != "" {
				_, _ = faint.Fprintf(pp.Out, " @ %s", e.Location)
			}
			_, _ = fmt.Fprintln(pp.Out)
		}
	}
	_, _ = fmt.Fprintln(pp.Out)
}

func multiDayMark(e model.DisplayEntry) string {
	switch {
	case e.IsFirstDay:
		return "[starts]"
	case e.IsLastDay:
		return "[ends]"
	default:
		return "[continues]"
	}
}

// Calendars prints the calendars of the snapshot with their event counts.
// The first filterChoices rows are the ones offered as filter buttons.
func (pp *PrettyPrint) Calendars(cals []model.CalendarRef, events []model.RawEvent, filterChoices int) {
	counts := make(map[string]int)
	for _, ev := range events {
		counts[ev.CalendarID]++
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("ID", "NAME", "EVENTS", "FILTER")
	for i, c := range cals {
		filter := ""
		if i < filterChoices {
			filter = "yes"
		}
		tbl.AddRow(c.ID, c.Name, counts[c.ID], filter)
	}
	_, _ = fmt.Fprintln(pp.Out, tbl)
}
