package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFromInt(t *testing.T) {
	tests := []struct {
		in   int
		want Level
	}{
		{in: -1, want: Off},
		{in: 0, want: Off},
		{in: 1, want: Basic},
		{in: 2, want: Detailed},
		{in: 3, want: Trace},
		{in: 4, want: Wire},
		{in: 9, want: Wire},
	}

	for _, tc := range tests {
		if got := LevelFromInt(tc.in); got != tc.want {
			t.Fatalf("LevelFromInt(%d) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Basic, &buf)

	l.Basicf("visible %d", 1)
	l.Detailedf("hidden")

	out := buf.String()
	if !strings.Contains(out, "visible 1") {
		t.Fatalf("expected basic message in output, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("detailed message leaked at basic level: %q", out)
	}
}

func TestNilLoggerIsSilent(t *testing.T) {
	var l *Logger
	l.Basicf("should not panic")
	if l.Level() != Off {
		t.Fatalf("nil logger level = %v, want Off", l.Level())
	}
}
