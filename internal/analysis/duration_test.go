package analysis

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"PT1H2M3S", 3723},
		{"PT15M33S", 933},
		{"PT45S", 45},
		{"PT2H", 7200},
		{"PT1H5S", 3605},
		{"PT10M", 600},
		{"PT", 0},
		{"P1DT2H", 0},
		{"1H2M", 0},
		{"", 0},
		{"PT1M2H", 0},
		{"garbage", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseDuration(tt.input); got != tt.want {
				t.Errorf("ParseDuration(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestAgeDays(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		publishedAt time.Time
		want        int64
	}{
		{"published just now", now, 1},
		{"a few hours ago", now.Add(-5 * time.Hour), 1},
		{"in the future", now.Add(48 * time.Hour), 1},
		{"exactly one day", now.Add(-24 * time.Hour), 1},
		{"just under two days", now.Add(-47 * time.Hour), 1},
		{"exactly ten days", now.AddDate(0, 0, -10), 10},
		{"ten and a half days", now.Add(-252 * time.Hour), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AgeDays(tt.publishedAt, now); got != tt.want {
				t.Errorf("AgeDays() = %d, want %d", got, tt.want)
			}
		})
	}
}
