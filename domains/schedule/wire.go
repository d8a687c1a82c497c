package schedule

import (
	"strings"
	"time"

	pkgError "github.com/linkforge/linkforge/pkg/error"
	"github.com/robfig/cron/v3"
)

// WireSchedule is the backend-side view of a schedule after decoding the
// create-post request: either nothing (immediate), a one-time instant, or
// a 5-field cron spec ready for the dispatcher.
type WireSchedule struct {
	Kind     Kind
	At       time.Time
	CronSpec string
}

// cronParser accepts the standard 5-field layout the wire format uses.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// DecodeWire turns the schedule_time / cron_expression pair from a
// create-post request back into a dispatchable schedule. cron_expression
// is the authoritative channel for raw cron posts; schedule_time is
// ignored when it is set.
func DecodeWire(scheduleTime, cronExpr string) (WireSchedule, error) {
	if expr := strings.TrimSpace(cronExpr); expr != "" {
		if _, err := cronParser.Parse(expr); err != nil {
			return WireSchedule{}, pkgError.ValidationError("cron_expression is not a valid 5-field cron expression")
		}
		return WireSchedule{Kind: KindCron, CronSpec: expr}, nil
	}

	raw := strings.TrimSpace(scheduleTime)
	if raw == "" {
		return WireSchedule{Kind: KindImmediate}, nil
	}

	if spec, ok := strings.CutPrefix(raw, "cron:"); ok {
		spec = strings.TrimSpace(spec)
		if _, err := cronParser.Parse(spec); err != nil {
			return WireSchedule{}, pkgError.ValidationError("schedule_time carries an invalid cron expression")
		}
		return WireSchedule{Kind: recurringKind(spec), CronSpec: spec}, nil
	}

	at, err := time.ParseInLocation("2006-01-02T15:04:05", raw, time.Local)
	if err != nil {
		return WireSchedule{}, pkgError.ValidationError("schedule_time must be YYYY-MM-DDTHH:MM:SS or a cron: expression")
	}
	return WireSchedule{Kind: KindOneTime, At: at}, nil
}

// NextAfter returns the next firing instant of a recurring schedule.
func (w WireSchedule) NextAfter(t time.Time) (time.Time, error) {
	sched, err := cronParser.Parse(w.CronSpec)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(t), nil
}

// recurringKind reverses the WireFormat encoding: a pinned weekday means
// weekly, a pinned day of month means monthly, otherwise daily.
func recurringKind(spec string) Kind {
	fields := strings.Fields(spec)
	if len(fields) != 5 {
		return KindCron
	}
	switch {
	case fields[4] != "*":
		return KindWeekly
	case fields[2] != "*":
		return KindMonthly
	case fields[0] != "*" && fields[1] != "*":
		return KindDaily
	default:
		return KindCron
	}
}
