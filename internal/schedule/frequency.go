// Package schedule holds the pure scheduling logic: frequency resolution,
// due-date computation, and reminder suggestions. Nothing in this package
// touches the store or the notification subsystem.
package schedule

import "github.com/verdant/plantcare/internal/domain"

// Interval maps a frequency descriptor to an interval in whole days and
// reports whether the frequency recurs. One-time frequencies return (0, false).
//
// Twice-weekly is approximated as a fixed 3-day interval rather than a 3/4
// alternation; the alternating form would make recomputation depend on
// completion parity.
//
// A custom interval below 1 is clamped rather than rejected: the API layer
// validates user input, so a non-positive value here is a caller bug and the
// clamp just keeps the schedule sane.
func Interval(f domain.Frequency) (days int, recurring bool) {
	switch f.Kind {
	case domain.FrequencyDaily:
		return 1, true
	case domain.FrequencyEveryOtherDay:
		return 2, true
	case domain.FrequencyTwiceWeekly:
		return 3, true
	case domain.FrequencyWeekly:
		return 7, true
	case domain.FrequencyBiweekly:
		return 14, true
	case domain.FrequencyMonthly:
		return 30, true
	case domain.FrequencyCustom:
		if f.CustomDays < 1 {
			return 1, true
		}
		return f.CustomDays, true
	default:
		return 0, false
	}
}
