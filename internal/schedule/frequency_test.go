package schedule

import (
	"testing"

	"github.com/verdant/plantcare/internal/domain"
)

func TestInterval(t *testing.T) {
	tests := []struct {
		name      string
		freq      domain.Frequency
		wantDays  int
		recurring bool
	}{
		{"daily", domain.Frequency{Kind: domain.FrequencyDaily}, 1, true},
		{"every other day", domain.Frequency{Kind: domain.FrequencyEveryOtherDay}, 2, true},
		{"twice weekly", domain.Frequency{Kind: domain.FrequencyTwiceWeekly}, 3, true},
		{"weekly", domain.Frequency{Kind: domain.FrequencyWeekly}, 7, true},
		{"biweekly", domain.Frequency{Kind: domain.FrequencyBiweekly}, 14, true},
		{"monthly", domain.Frequency{Kind: domain.FrequencyMonthly}, 30, true},
		{"custom", domain.Frequency{Kind: domain.FrequencyCustom, CustomDays: 5}, 5, true},
		{"custom clamped", domain.Frequency{Kind: domain.FrequencyCustom, CustomDays: 0}, 1, true},
		{"custom negative clamped", domain.Frequency{Kind: domain.FrequencyCustom, CustomDays: -3}, 1, true},
		{"once", domain.Frequency{Kind: domain.FrequencyOnce}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, recurring := Interval(tt.freq)
			if days != tt.wantDays || recurring != tt.recurring {
				t.Errorf("Interval(%v) = (%d, %v), want (%d, %v)",
					tt.freq, days, recurring, tt.wantDays, tt.recurring)
			}
		})
	}
}

func TestIntervalAlwaysPositiveForRecurring(t *testing.T) {
	kinds := []domain.FrequencyKind{
		domain.FrequencyDaily, domain.FrequencyEveryOtherDay, domain.FrequencyTwiceWeekly,
		domain.FrequencyWeekly, domain.FrequencyBiweekly, domain.FrequencyMonthly,
		domain.FrequencyCustom,
	}
	for _, kind := range kinds {
		days, recurring := Interval(domain.Frequency{Kind: kind, CustomDays: 1})
		if !recurring {
			t.Errorf("%s should recur", kind)
		}
		if days < 1 {
			t.Errorf("%s interval = %d, want >= 1", kind, days)
		}
	}
}
