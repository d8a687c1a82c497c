package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var phrasePattern = regexp.MustCompile(`^(today|tomorrow) at (\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)

// ParsePhrase maps a free-text phrase like "today at 3pm" or "tomorrow
// at 10:30" onto a one-time descriptor in now's location. It is
// best-effort: anything it cannot understand falls back to tomorrow at
// 10:00.
func ParsePhrase(input string, now time.Time) Descriptor {
	text := strings.ToLower(strings.TrimSpace(input))

	if m := phrasePattern.FindStringSubmatch(text); m != nil {
		day := now
		if m[1] == "tomorrow" {
			day = day.AddDate(0, 0, 1)
		}
		hour, _ := strconv.Atoi(m[2])
		minute := 0
		if m[3] != "" {
			minute, _ = strconv.Atoi(m[3])
		}
		// Noon stays 12; "12am" is left alone as well, matching the
		// historical front-end behavior.
		if m[4] == "pm" && hour != 12 {
			hour += 12
		}
		if hour <= 23 && minute <= 59 {
			return OneTimeAt(time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location()))
		}
	}

	fallback := now.AddDate(0, 0, 1)
	return OneTimeAt(time.Date(fallback.Year(), fallback.Month(), fallback.Day(), 10, 0, 0, 0, now.Location()))
}
