package web

import (
	"strconv"
	"time"

	"monthcal/internal/model"
)

// labels holds the user-facing strings of one locale.
type labels struct {
	Lang         string
	Subtitle     string
	AllDay       string
	Untitled     string
	Loading      string
	LoadError    string
	Filter       string
	All          string
	Previous     string
	Next         string
	MultiDay     string
	Location     string
	Description  string
	NoDetails    string
	Back         string
	Today        string
	Scheduled    string
	Stale        string
	NotFound     string
	Months       [12]string
	WeekdayShort [7]string // indexed by time.Weekday
}

var locales = map[string]labels{
	"es": {
		Lang:         "es",
		Subtitle:     "Tus eventos del mes",
		AllDay:       "Todo el día",
		Untitled:     "Sin título",
		Loading:      "Cargando eventos...",
		LoadError:    "Error al cargar los eventos.",
		Filter:       "Filtrar:",
		All:          "Todos",
		Previous:     "Anterior",
		Next:         "Siguiente",
		MultiDay:     "Evento de varios días",
		Location:     "Ubicación",
		Description:  "Descripción",
		NoDetails:    "No hay información adicional disponible para este evento.",
		Back:         "Volver al calendario",
		Today:        "Día actual",
		Scheduled:    "Evento programado",
		Stale:        "Mostrando datos anteriores: la última actualización falló.",
		NotFound:     "Evento no encontrado.",
		Months:       [12]string{"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio", "Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"},
		WeekdayShort: [7]string{"Dom", "Lun", "Mar", "Mié", "Jue", "Vie", "Sáb"},
	},
	"en": {
		Lang:         "en",
		Subtitle:     "Your events this month",
		AllDay:       "All day",
		Untitled:     "Untitled",
		Loading:      "Loading events...",
		LoadError:    "Failed to load events.",
		Filter:       "Filter:",
		All:          "All",
		Previous:     "Previous",
		Next:         "Next",
		MultiDay:     "Multi-day event",
		Location:     "Location",
		Description:  "Description",
		NoDetails:    "No additional information is available for this event.",
		Back:         "Back to calendar",
		Today:        "Today",
		Scheduled:    "Scheduled event",
		Stale:        "Showing previous data: the last refresh failed.",
		NotFound:     "Event not found.",
		Months:       [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		WeekdayShort: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	},
}

func labelsFor(locale string) labels {
	if l, ok := locales[locale]; ok {
		return l
	}
	return locales["es"]
}

func (l labels) monthTitle(ym model.YearMonth) string {
	return l.Months[ym.Month-1] + " " + strconv.Itoa(ym.Year)
}

func (l labels) weekdayHeaders(days []time.Weekday) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = l.WeekdayShort[d]
	}
	return out
}

func (l labels) timeLabel(t string) string {
	if t == model.AllDay {
		return l.AllDay
	}
	return t
}

func (l labels) title(t string) string {
	if t == "" {
		return l.Untitled
	}
	return t
}
