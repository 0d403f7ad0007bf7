package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", cfg.TokenTTL)
	}
	if cfg.WeatherAdjustMaxDays != 1 {
		t.Errorf("WeatherAdjustMaxDays = %d, want 1", cfg.WeatherAdjustMaxDays)
	}
	if cfg.WeatherRainExpected {
		t.Error("WeatherRainExpected should default to false")
	}
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port not a number", "PORT", "eighty"},
		{"token ttl not a duration", "TOKEN_TTL", "soon"},
		{"rain flag not a bool", "WEATHER_RAIN_EXPECTED", "maybe"},
		{"resync not a duration", "BADGE_RESYNC_INTERVAL", "15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "test-secret")
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("Load accepted %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted an empty JWT_SECRET")
	}
}
