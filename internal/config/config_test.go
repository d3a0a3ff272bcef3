package config

import (
	"testing"
	"time"
)

func TestEnvBool(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"false", true, false},
		{"0", true, false},
		{"", true, true},
		{"maybe", false, false},
	}

	for _, tt := range tests {
		t.Setenv("INGEST_ON_START", tt.value)
		got := envBool("INGEST_ON_START", tt.def)
		if got != tt.want {
			t.Errorf("envBool(%q, %v) = %v, want %v", tt.value, tt.def, got, tt.want)
		}
	}
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "6h")
	got := envDuration("REFRESH_INTERVAL", 0)
	if got != 6*time.Hour {
		t.Errorf("got %v, want 6h", got)
	}

	t.Setenv("REFRESH_INTERVAL", "soon")
	got = envDuration("REFRESH_INTERVAL", time.Minute)
	if got != time.Minute {
		t.Errorf("got %v, want the 1m default", got)
	}
}
