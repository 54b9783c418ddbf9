package handlers

import (
	"time"

	"github.com/marcou-app/marcou/internal/timezone"
)

func parseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(),
	)
}

// parseStart aceita um instante RFC3339 ou o par date ("2006-01-02") +
// time ("15:04"), sempre no fuso do deployment.
func parseStart(startStr, dateStr, timeStr string) (time.Time, error) {
	if startStr != "" {
		t, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return time.Time{}, err
		}
		return t.In(timezone.Location()), nil
	}

	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		timezone.Location(),
	)
}
