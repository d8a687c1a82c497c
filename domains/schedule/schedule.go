package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	pkgError "github.com/linkforge/linkforge/pkg/error"
)

// Kind selects how a post's publication moment is expressed. The values
// double as the schedule_type strings sent to the backend.
type Kind string

const (
	KindImmediate Kind = "immediate"
	KindOneTime   Kind = "one-time"
	KindDaily     Kind = "daily"
	KindWeekly    Kind = "weekly"
	KindMonthly   Kind = "monthly"
	KindCron      Kind = "custom-cron"
)

// Form field names accepted by FromFormFields.
const (
	FieldDate       = "date"
	FieldTime       = "time"
	FieldDayOfWeek  = "day_of_week"
	FieldDayOfMonth = "day_of_month"
	FieldCron       = "cron_expression"
)

// TimeOfDay is an hour:minute pair on the 24-hour clock.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Descriptor is the canonical representation of "when to publish".
// Exactly the fields relevant to Kind are populated; a Descriptor is
// never mutated, a new one replaces the old on every change.
type Descriptor struct {
	Kind       Kind
	At         time.Time // one-time only, local wall clock
	TimeOfDay  TimeOfDay // daily, weekly and monthly
	DayOfWeek  int       // weekly only, 0=Sunday
	DayOfMonth int       // monthly only, 1-31
	CronExpr   string    // custom cron only, raw 5-field expression
}

var weekdayNames = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// Immediate returns the descriptor for "publish as soon as submitted".
func Immediate() Descriptor {
	return Descriptor{Kind: KindImmediate}
}

// OneTimeAt returns a one-time descriptor for the given local instant.
func OneTimeAt(at time.Time) Descriptor {
	return Descriptor{Kind: KindOneTime, At: at}
}

// IsImmediate reports whether the descriptor means immediate publishing.
// The zero Descriptor counts as immediate so an unset schedule behaves
// like an explicit "post now".
func (d Descriptor) IsImmediate() bool {
	return d.Kind == KindImmediate || d.Kind == ""
}

// FromFormFields validates raw form input for the chosen kind and builds
// a well-formed Descriptor. Fields are checked left to right (date and
// time before recurrence fields before cron) and the first missing or
// invalid one is reported as a ValidationError; it never panics on
// malformed input.
func FromFormFields(kind Kind, fields map[string]string) (Descriptor, error) {
	switch kind {
	case KindImmediate, "":
		return Immediate(), nil

	case KindOneTime:
		rawDate, err := requireField(fields, FieldDate)
		if err != nil {
			return Descriptor{}, err
		}
		day, err := time.ParseInLocation("2006-01-02", rawDate, time.Local)
		if err != nil {
			return Descriptor{}, pkgError.ValidationError(FieldDate + " must be a valid YYYY-MM-DD date")
		}
		tod, err := parseTimeOfDay(fields)
		if err != nil {
			return Descriptor{}, err
		}
		at := time.Date(day.Year(), day.Month(), day.Day(), tod.Hour, tod.Minute, 0, 0, time.Local)
		return Descriptor{Kind: KindOneTime, At: at}, nil

	case KindDaily:
		tod, err := parseTimeOfDay(fields)
		if err != nil {
			return Descriptor{}, err
		}
		return Descriptor{Kind: KindDaily, TimeOfDay: tod}, nil

	case KindWeekly:
		tod, err := parseTimeOfDay(fields)
		if err != nil {
			return Descriptor{}, err
		}
		dow, err := requireInt(fields, FieldDayOfWeek, 0, 6)
		if err != nil {
			return Descriptor{}, err
		}
		return Descriptor{Kind: KindWeekly, TimeOfDay: tod, DayOfWeek: dow}, nil

	case KindMonthly:
		tod, err := parseTimeOfDay(fields)
		if err != nil {
			return Descriptor{}, err
		}
		// Day 31 in shorter months is allowed; the cron dispatcher
		// simply skips months without that day.
		dom, err := requireInt(fields, FieldDayOfMonth, 1, 31)
		if err != nil {
			return Descriptor{}, err
		}
		return Descriptor{Kind: KindMonthly, TimeOfDay: tod, DayOfMonth: dom}, nil

	case KindCron:
		expr, err := requireField(fields, FieldCron)
		if err != nil {
			return Descriptor{}, err
		}
		// The expression is opaque here; the backend scheduler owns
		// its interpretation.
		return Descriptor{Kind: KindCron, CronExpr: expr}, nil

	default:
		return Descriptor{}, pkgError.ValidationError(fmt.Sprintf("unknown schedule kind %q", kind))
	}
}

// WireFormat encodes the descriptor into the schedule_time string the
// backend scheduler consumes. Immediate and custom cron schedules encode
// to the empty string: immediate posts omit schedule_time entirely and
// raw cron expressions travel in the dedicated cron_expression field.
// The encoder trusts the descriptor and performs no re-validation.
func (d Descriptor) WireFormat() string {
	switch d.Kind {
	case KindOneTime:
		// Seconds are forced to zero.
		return d.At.Format("2006-01-02T15:04") + ":00"
	case KindDaily:
		return fmt.Sprintf("cron:%02d %d * * *", d.TimeOfDay.Minute, d.TimeOfDay.Hour)
	case KindWeekly:
		return fmt.Sprintf("cron:%02d %d * * %d", d.TimeOfDay.Minute, d.TimeOfDay.Hour, d.DayOfWeek)
	case KindMonthly:
		return fmt.Sprintf("cron:%02d %d %d * *", d.TimeOfDay.Minute, d.TimeOfDay.Hour, d.DayOfMonth)
	default:
		return ""
	}
}

// DisplayString renders the descriptor for UI confirmation, 12-hour
// clock with AM/PM and weekday names spelled out.
func (d Descriptor) DisplayString() string {
	switch d.Kind {
	case KindOneTime:
		return d.At.Format("Monday, January 2, 2006 at 3:04 PM")
	case KindDaily:
		return "Every day at " + d.TimeOfDay.Clock()
	case KindWeekly:
		return fmt.Sprintf("Every %s at %s", weekdayNames[d.DayOfWeek], d.TimeOfDay.Clock())
	case KindMonthly:
		return fmt.Sprintf("Every month on day %d at %s", d.DayOfMonth, d.TimeOfDay.Clock())
	case KindCron:
		return "Custom cron (" + d.CronExpr + ")"
	default:
		return "Immediately"
	}
}

// Clock renders the pair as e.g. "3:04 PM".
func (t TimeOfDay) Clock() string {
	suffix := "AM"
	hour := t.Hour
	if hour >= 12 {
		suffix = "PM"
	}
	hour = hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute, suffix)
}

func requireField(fields map[string]string, name string) (string, error) {
	value := strings.TrimSpace(fields[name])
	if value == "" {
		return "", pkgError.ValidationError(name + " is required")
	}
	return value, nil
}

func requireInt(fields map[string]string, name string, min, max int) (int, error) {
	raw, err := requireField(fields, name)
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(raw)
	if convErr != nil || n < min || n > max {
		return 0, pkgError.ValidationError(fmt.Sprintf("%s must be a number between %d and %d", name, min, max))
	}
	return n, nil
}

func parseTimeOfDay(fields map[string]string) (TimeOfDay, error) {
	raw, err := requireField(fields, FieldTime)
	if err != nil {
		return TimeOfDay{}, err
	}
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, pkgError.ValidationError(FieldTime + " must be in HH:MM 24-hour format")
	}
	hour, hourErr := strconv.Atoi(parts[0])
	minute, minErr := strconv.Atoi(parts[1])
	if hourErr != nil || minErr != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, pkgError.ValidationError(FieldTime + " must be in HH:MM 24-hour format")
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}
