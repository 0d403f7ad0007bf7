package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/verdant/plantcare/internal/domain"
)

type mockSettingsWriter struct {
	mockSettingsStore
}

func (m *mockSettingsWriter) Upsert(_ context.Context, s domain.ReminderSettings) (*domain.ReminderSettings, error) {
	m.settings[s.UserID] = s
	cp := s
	return &cp, nil
}

func TestSettingsGetFallsBackToDefaults(t *testing.T) {
	store := &mockSettingsWriter{mockSettingsStore{settings: make(map[uuid.UUID]domain.ReminderSettings)}}
	svc := NewSettingsService(store)
	userID := uuid.New()

	got, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.UserID != userID {
		t.Errorf("UserID = %s, want %s", got.UserID, userID)
	}
	if !got.WateringEnabled || !got.WeekendReminders {
		t.Error("defaults should enable reminders")
	}
}

func TestSettingsUpdateValidation(t *testing.T) {
	quietStart := domain.NewClockTime(22, 0)
	quietEnd := domain.NewClockTime(7, 0)
	bad := domain.ClockTime(24*60 + 1)

	tests := []struct {
		name    string
		mutate  func(*domain.ReminderSettings)
		wantErr bool
	}{
		{"valid quiet window", func(s *domain.ReminderSettings) {
			s.QuietStart, s.QuietEnd = &quietStart, &quietEnd
		}, false},
		{"no quiet window", func(s *domain.ReminderSettings) {}, false},
		{"start without end", func(s *domain.ReminderSettings) {
			s.QuietStart = &quietStart
		}, true},
		{"end without start", func(s *domain.ReminderSettings) {
			s.QuietEnd = &quietEnd
		}, true},
		{"quiet hour out of range", func(s *domain.ReminderSettings) {
			s.QuietStart, s.QuietEnd = &bad, &quietEnd
		}, true},
		{"preferred time out of range", func(s *domain.ReminderSettings) {
			s.PreferredTime = bad
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockSettingsWriter{mockSettingsStore{settings: make(map[uuid.UUID]domain.ReminderSettings)}}
			svc := NewSettingsService(store)

			settings := domain.DefaultSettings(uuid.New())
			tt.mutate(&settings)

			_, err := svc.Update(context.Background(), settings)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidInput) {
					t.Fatalf("err = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Update: %v", err)
			}
		})
	}
}
