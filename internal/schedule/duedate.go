package schedule

import (
	"time"

	"github.com/verdant/plantcare/internal/domain"
)

// WeatherHint carries the weather signal that may defer a watering task.
// How the signal is obtained is not this package's concern.
type WeatherHint struct {
	RainExpected bool
	// MaxDeferDays caps the deferral; values below 1 defer by a single day.
	MaxDeferDays int
}

// NextDue computes the next due timestamp for a reminder.
//
// The candidate is base + intervalDays with its time of day replaced by
// preferred, then adjusted in order: weekend suppression, quiet hours, and
// at most one capped weather deferral. The weekend and quiet adjustments are
// re-applied after a weather deferral so the final timestamp still honors
// both. An interval of zero or less means "due immediately" and clamps to
// now. The result depends only on the arguments.
func NextDue(now, base time.Time, intervalDays int, preferred domain.ClockTime, settings domain.ReminderSettings, weather WeatherHint) time.Time {
	if intervalDays <= 0 {
		return now
	}

	candidate := preferred.On(base.AddDate(0, 0, intervalDays))
	overdue := !candidate.After(now)

	candidate = adjust(candidate, settings)

	// Overdue tasks are never pushed further out by weather.
	if weather.RainExpected && settings.WeatherAdjustment && !overdue {
		days := weather.MaxDeferDays
		if days < 1 {
			days = 1
		}
		candidate = adjust(candidate.AddDate(0, 0, days), settings)
	}

	return candidate
}

// adjust applies weekend suppression and the quiet-hours shift. The quiet
// shift can move the candidate to the next day, so the weekend pass runs
// again afterwards; the quiet-window end itself is never inside the window,
// so a second quiet pass cannot move the result further.
func adjust(t time.Time, settings domain.ReminderSettings) time.Time {
	t = skipWeekend(t, settings)
	t = shiftOutOfQuietHours(t, settings)
	return skipWeekend(t, settings)
}

func skipWeekend(t time.Time, settings domain.ReminderSettings) time.Time {
	if settings.WeekendReminders {
		return t
	}
	for t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// shiftOutOfQuietHours moves t to the end of the quiet window when its time
// of day falls strictly inside it. For a window that wraps past midnight the
// pre-midnight stretch resolves to the window end on the following day.
func shiftOutOfQuietHours(t time.Time, settings domain.ReminderSettings) time.Time {
	if !settings.QuietConfigured() {
		return t
	}
	start, end := *settings.QuietStart, *settings.QuietEnd
	c := domain.ClockOf(t)

	if start < end {
		if c > start && c < end {
			return end.On(t)
		}
		return t
	}

	// Window wraps midnight, e.g. 22:00-07:00.
	switch {
	case c > start:
		return end.On(t.AddDate(0, 0, 1))
	case c < end:
		return end.On(t)
	default:
		return t
	}
}
