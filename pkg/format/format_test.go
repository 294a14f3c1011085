package format_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/yaklabco/luafmt/pkg/config"
	"github.com/yaklabco/luafmt/pkg/format"
)

func fmtDefault(t *testing.T, source string) string {
	t.Helper()
	got, err := format.Format(source, config.NewConfig(), nil)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	return got
}

func TestFormat_Empty(t *testing.T) {
	t.Parallel()

	if got := fmtDefault(t, ""); got != "" {
		t.Errorf("Format(\"\") = %q, want empty", got)
	}
}

func TestFormat_Reindent(t *testing.T) {
	t.Parallel()

	source := "local function greet(name)\nprint(name)\nend\n"
	want := "local function greet(name)\n\tprint(name)\nend\n"

	if got := fmtDefault(t, source); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormat_NestedBlocks(t *testing.T) {
	t.Parallel()

	source := strings.Join([]string{
		"if ready then",
		"for i = 1, 3 do",
		"print(i)",
		"end",
		"else",
		"print('no')",
		"end",
		"",
	}, "\n")
	want := strings.Join([]string{
		"if ready then",
		"\tfor i = 1, 3 do",
		"\t\tprint(i)",
		"\tend",
		"else",
		"\tprint(\"no\")",
		"end",
		"",
	}, "\n")

	if got := fmtDefault(t, source); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormat_ElseifLevel(t *testing.T) {
	t.Parallel()

	source := "if a then\nf()\nelseif b then\ng()\nend\n"
	want := "if a then\n\tf()\nelseif b then\n\tg()\nend\n"

	if got := fmtDefault(t, source); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormat_SpacesIndent(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.IndentType = config.IndentTypeSpaces
	cfg.IndentWidth = 2

	got, err := format.Format("do\nx = 1\nend\n", cfg, nil)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	want := "do\n  x = 1\nend\n"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormat_TrailingWhitespace(t *testing.T) {
	t.Parallel()

	if got := fmtDefault(t, "x = 1   \n"); got != "x = 1\n" {
		t.Errorf("Format() = %q, want trailing whitespace removed", got)
	}
}

func TestFormat_LongStringUntouched(t *testing.T) {
	t.Parallel()

	source := "local s = [[\n  keep   this\n\t and this\n]]\n"

	if got := fmtDefault(t, source); got != source {
		t.Errorf("Format() = %q, long string content must pass through", got)
	}
}

func TestFormat_LongCommentUntouched(t *testing.T) {
	t.Parallel()

	source := "--[=[\npreserve  spacing   here\n]=]\nx = 1\n"

	if got := fmtDefault(t, source); got != source {
		t.Errorf("Format() = %q, long comment content must pass through", got)
	}
}

func TestFormat_QuoteStyles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		style  config.QuoteStyle
		source string
		want   string
	}{
		{"prefer double", config.QuoteStyleAutoPreferDouble, "s = 'hi'\n", "s = \"hi\"\n"},
		{"prefer single", config.QuoteStyleAutoPreferSingle, "s = \"hi\"\n", "s = 'hi'\n"},
		{"force double keeps conflicting", config.QuoteStyleForceDouble, "s = 'say \"hi\"'\n", "s = 'say \"hi\"'\n"},
		{"escape skipped", config.QuoteStyleAutoPreferDouble, "s = 'a\\nb'\n", "s = 'a\\nb'\n"},
		{"comment not rewritten", config.QuoteStyleAutoPreferDouble, "-- don't touch 'this'\n", "-- don't touch 'this'\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			cfg.QuoteStyle = testCase.style

			got, err := format.Format(testCase.source, cfg, nil)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got != testCase.want {
				t.Errorf("Format() = %q, want %q", got, testCase.want)
			}
		})
	}
}

func TestFormat_LineEndings(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.LineEndings = config.LineEndingsWindows

	got, err := format.Format("a = 1\nb = 2\n", cfg, nil)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if got != "a = 1\r\nb = 2\r\n" {
		t.Errorf("Format() = %q, want CRLF endings", got)
	}

	// CRLF input normalizes to LF under the default config.
	if got := fmtDefault(t, "a = 1\r\nb = 2\r\n"); got != "a = 1\nb = 2\n" {
		t.Errorf("Format() = %q, want LF endings", got)
	}
}

func TestFormat_BlankLineCollapse(t *testing.T) {
	t.Parallel()

	source := "a = 1\n\n\n\nb = 2\n"
	want := "a = 1\n\nb = 2\n"

	if got := fmtDefault(t, source); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormat_FinalNewline(t *testing.T) {
	t.Parallel()

	if got := fmtDefault(t, "x = 1"); got != "x = 1\n" {
		t.Errorf("Format() = %q, want trailing newline added", got)
	}
}

func TestFormat_Range(t *testing.T) {
	t.Parallel()

	// Offsets: line 1 "function f()" spans [0,12), line 2 starts at 13.
	source := "function f()\nreturn 1\nend\n"

	start := 13
	end := 21
	rng := format.RangeFromValues(&start, &end)

	got, err := format.Format(source, config.NewConfig(), rng)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	want := "function f()\n\treturn 1\nend\n"
	if got != want {
		t.Errorf("Format() = %q, want only line 2 rewritten: %q", got, want)
	}
}

func TestFormat_RangeLeavesOutsideAlone(t *testing.T) {
	t.Parallel()

	source := "x   =   1   \ny = 2\n"

	// Range covering only the second line: first line keeps its mess.
	start := 13
	rng := format.RangeFromValues(&start, nil)

	got, err := format.Format(source, config.NewConfig(), rng)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.HasPrefix(got, "x   =   1   \n") {
		t.Errorf("Format() = %q, out-of-range line must pass through", got)
	}
}

func TestFormat_RangeKeepsForeignLineEndings(t *testing.T) {
	t.Parallel()

	// CRLF input, unix config: the out-of-range second line must stay
	// byte-identical, carriage return and all.
	source := "x  =  1   \r\ny  =  2   \r\n"
	start, end := 0, 10
	rng := format.RangeFromValues(&start, &end)

	got, err := format.Format(source, config.NewConfig(), rng)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	want := "x  =  1\ny  =  2   \r\n"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormat_Errors(t *testing.T) {
	t.Parallel()

	if _, err := format.Format("s = 'oops\n", config.NewConfig(), nil); !errors.Is(err, format.ErrUnterminatedString) {
		t.Errorf("unterminated string error = %v", err)
	}
	if _, err := format.Format("s = [[never closed\n", config.NewConfig(), nil); !errors.Is(err, format.ErrUnterminatedLong) {
		t.Errorf("unterminated long bracket error = %v", err)
	}
}

func TestFormat_Idempotent(t *testing.T) {
	t.Parallel()

	source := strings.Join([]string{
		"local M = {}",
		"",
		"function M.add(a, b)",
		"  if a == nil then",
		"    return b",
		"  end",
		"  return a + b   ",
		"end",
		"",
		"return M",
		"",
	}, "\n")

	once := fmtDefault(t, source)
	twice := fmtDefault(t, once)
	if once != twice {
		t.Errorf("Format not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestRange_Contains(t *testing.T) {
	t.Parallel()

	if !format.RangeFromValues(nil, nil).Contains(0, 100) {
		t.Error("nil range should contain everything")
	}

	start, end := 10, 20
	rng := format.RangeFromValues(&start, &end)

	if !rng.Contains(10, 20) {
		t.Error("exact span should be contained")
	}
	if rng.Contains(9, 15) || rng.Contains(15, 21) {
		t.Error("overlapping spans should not be contained")
	}
}
