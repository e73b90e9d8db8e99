package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestNewRespectsLogLevelEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	if got := New().GetLevel(); got != zerolog.DebugLevel {
		t.Fatalf("want debug, got %s", got)
	}

	t.Setenv("LOG_LEVEL", "warn")
	if got := New().GetLevel(); got != zerolog.WarnLevel {
		t.Fatalf("want warn, got %s", got)
	}
}

func TestNewDefaultsToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	if got := New().GetLevel(); got != zerolog.InfoLevel {
		t.Fatalf("unset: want info, got %s", got)
	}

	t.Setenv("LOG_LEVEL", "shouting")
	if got := New().GetLevel(); got != zerolog.InfoLevel {
		t.Fatalf("garbage: want info, got %s", got)
	}
}
