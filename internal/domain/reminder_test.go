package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in      string
		want    ClockTime
		wantErr bool
	}{
		{"09:00", NewClockTime(9, 0), false},
		{"00:00", NewClockTime(0, 0), false},
		{"23:59", NewClockTime(23, 59), false},
		{"24:00", 0, true},
		{"9am", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClockTime(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClockTime(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClockTime(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClockTime(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestClockTimeOn(t *testing.T) {
	day := time.Date(2024, 6, 3, 17, 45, 12, 9, time.UTC)
	got := NewClockTime(9, 30).On(day)
	want := time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("On = %v, want %v", got, want)
	}
}

func TestReminderStateDerivation(t *testing.T) {
	now := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	base := Reminder{
		ID:        uuid.New(),
		Enabled:   true,
		Recurring: true,
		NextDueAt: future,
	}

	tests := []struct {
		name   string
		mutate func(*Reminder)
		want   ReminderState
	}{
		{"future due date", func(r *Reminder) {}, StateActive},
		{"due date reached", func(r *Reminder) { r.NextDueAt = past }, StateDue},
		{"snoozed", func(r *Reminder) {
			r.NextDueAt = past
			r.SnoozedUntil = &future
		}, StateSnoozed},
		{"snooze elapsed", func(r *Reminder) {
			r.NextDueAt = past
			r.SnoozedUntil = &past
		}, StateDue},
		{"disabled wins over due", func(r *Reminder) {
			r.NextDueAt = past
			r.Enabled = false
		}, StateDisabled},
		{"recurring completion is not terminal", func(r *Reminder) {
			r.CompletedAt = &past
		}, StateActive},
		{"one-time completion is terminal", func(r *Reminder) {
			r.CompletedAt = &past
			r.Recurring = false
			r.Enabled = false
		}, StateCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			tt.mutate(&r)
			if got := r.State(now); got != tt.want {
				t.Fatalf("State = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEffectiveDueAt(t *testing.T) {
	due := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	snooze := due.Add(-time.Hour)

	r := Reminder{NextDueAt: due}
	if got := r.EffectiveDueAt(); !got.Equal(due) {
		t.Fatalf("EffectiveDueAt = %v, want %v", got, due)
	}
	r.SnoozedUntil = &snooze
	if got := r.EffectiveDueAt(); !got.Equal(snooze) {
		t.Fatalf("EffectiveDueAt = %v, want snooze deadline %v", got, snooze)
	}
}
