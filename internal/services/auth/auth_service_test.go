package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationEnv(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback time.Duration
		want     time.Duration
	}{
		{name: "unset falls back", value: "", fallback: 15 * time.Minute, want: 15 * time.Minute},
		{name: "valid duration", value: "30m", fallback: 15 * time.Minute, want: 30 * time.Minute},
		{name: "garbage falls back", value: "soon", fallback: time.Hour, want: time.Hour},
		{name: "non-positive falls back", value: "-1h", fallback: time.Hour, want: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SESSION_TTL_UNDER_TEST", tt.value)
			assert.Equal(t, tt.want, durationEnv("SESSION_TTL_UNDER_TEST", tt.fallback))
		})
	}
}
