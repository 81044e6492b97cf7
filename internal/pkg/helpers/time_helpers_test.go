package helpers

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Duration
	}{
		{"valid hours", "2h", 2 * time.Hour},
		{"valid mixed", "1h30m", 90 * time.Minute},
		{"invalid string falls back", "soon", 15 * time.Minute},
		{"empty string falls back", "", 15 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDuration(tt.in, 15*time.Minute); got != tt.want {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
