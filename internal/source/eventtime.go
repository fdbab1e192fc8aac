package source

import (
	"strings"
	"time"

	"monthcal/internal/model"
)

// parseWhen converts the Google-style {date | dateTime} pair into a boundary.
// dateTime wins when both are present. Values that do not parse yield the
// zero When, which the layout treats as missing.
func parseWhen(date, dateTime string) model.When {
	if s := strings.TrimSpace(dateTime); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return model.At(t)
		}
		return model.When{}
	}
	if s := strings.TrimSpace(date); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			return model.OnDate(t.Date())
		}
	}
	return model.When{}
}
