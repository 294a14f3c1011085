package logging_test

import (
	"testing"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/luafmt/internal/logging"
)

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"DEBUG", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"nonsense", log.InfoLevel},
	}

	for _, testCase := range tests {
		t.Run("level "+testCase.level, func(t *testing.T) {
			t.Parallel()

			logger := logging.New(testCase.level)
			if logger == nil {
				t.Fatal("New returned nil logger")
			}
			if logger.GetLevel() != testCase.want {
				t.Errorf("level = %v, want %v", logger.GetLevel(), testCase.want)
			}
		})
	}
}

func TestDefault_Stable(t *testing.T) {
	t.Parallel()

	first := logging.Default()
	if first == nil {
		t.Fatal("Default returned nil")
	}
	if logging.Default() != first {
		t.Error("Default must return the same logger on every call")
	}
}

func TestSetLevel(t *testing.T) {
	// Not parallel: mutates the default logger.
	defer logging.SetLevel("info")

	logging.SetLevel("debug")
	if logging.Default().GetLevel() != log.DebugLevel {
		t.Error("SetLevel to debug failed")
	}

	logging.SetLevel("error")
	if logging.Default().GetLevel() != log.ErrorLevel {
		t.Error("SetLevel to error failed")
	}
}
