package config_test

import (
	"testing"

	"github.com/yaklabco/luafmt/pkg/config"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	if cfg.ColumnWidth != 120 {
		t.Errorf("ColumnWidth = %d, want 120", cfg.ColumnWidth)
	}
	if cfg.LineEndings != config.LineEndingsUnix {
		t.Errorf("LineEndings = %q, want unix", cfg.LineEndings)
	}
	if cfg.IndentType != config.IndentTypeTabs {
		t.Errorf("IndentType = %q, want tabs", cfg.IndentType)
	}
	if cfg.IndentWidth != 4 {
		t.Errorf("IndentWidth = %d, want 4", cfg.IndentWidth)
	}
	if cfg.QuoteStyle != config.QuoteStyleAutoPreferDouble {
		t.Errorf("QuoteStyle = %q, want auto_prefer_double", cfg.QuoteStyle)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"defaults", func(*config.Config) {}, false},
		{"zero column width", func(c *config.Config) { c.ColumnWidth = 0 }, true},
		{"negative indent width", func(c *config.Config) { c.IndentWidth = -1 }, true},
		{"bad line endings", func(c *config.Config) { c.LineEndings = "mixed" }, true},
		{"bad indent type", func(c *config.Config) { c.IndentType = "elastic" }, true},
		{"bad quote style", func(c *config.Config) { c.QuoteStyle = "backtick" }, true},
		{"spaces indent", func(c *config.Config) { c.IndentType = config.IndentTypeSpaces }, false},
		{"windows endings", func(c *config.Config) { c.LineEndings = config.LineEndingsWindows }, false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			testCase.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != testCase.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, testCase.wantErr)
			}
		})
	}
}

func TestLineEndings_Sequence(t *testing.T) {
	t.Parallel()

	if got := config.LineEndingsUnix.Sequence(); got != "\n" {
		t.Errorf("unix sequence = %q", got)
	}
	if got := config.LineEndingsWindows.Sequence(); got != "\r\n" {
		t.Errorf("windows sequence = %q", got)
	}
}
