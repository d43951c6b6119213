package formatting_test

import (
	"testing"

	"github.com/JaimeStill/signet/pkg/formatting"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"512", 512},
		{"0", 0},
		{"1KB", 1024},
		{"1 kb", 1024},
		{"50MB", 50 * 1024 * 1024},
		{"1.5GiB", 1536 * 1024 * 1024},
		{"2g", 2 * 1024 * 1024 * 1024},
		{" 10 B ", 10},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.in)
			if err != nil {
				t.Fatalf("parse %q: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseBytesErrors(t *testing.T) {
	for _, in := range []string{"", "MB", "-1KB", "10 XB", "1.2.3MB", "lots"} {
		t.Run(in, func(t *testing.T) {
			if _, err := formatting.ParseBytes(in); err == nil {
				t.Errorf("expected error for %q", in)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n         int64
		precision int
		want      string
	}{
		{0, 2, "0 B"},
		{1023, 2, "1023 B"},
		{1024, 2, "1 KB"},
		{1536, 1, "1.5 KB"},
		{50 * 1024 * 1024, 0, "50 MB"},
		{1610612736, 2, "1.5 GB"},
		{1536, -1, "2 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
				t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
			}
		})
	}
}
