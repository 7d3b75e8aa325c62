package output

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 80); got != "short" {
		t.Errorf("no-op: %q", got)
	}
	got := Truncate(strings.Repeat("x", 100), 10)
	if len([]rune(got)) != 10 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncated: %q", got)
	}
	// Width too small to carry an ellipsis: leave alone.
	if got := Truncate("abcdef", 3); got != "abcdef" {
		t.Errorf("tiny width: %q", got)
	}
}

func TestFormatIDMarksProvisional(t *testing.T) {
	if got := FormatID(42); !strings.Contains(got, "42") || strings.Contains(got, "~") {
		t.Errorf("server id: %q", got)
	}
	if got := FormatID(1750000000000); !strings.Contains(got, "~1750000000000") {
		t.Errorf("provisional id: %q", got)
	}
}
