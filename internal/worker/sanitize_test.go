package worker

import (
	"strings"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain", "Cloud9", "Cloud9"},
		{"Punctuation kept", "Team^1 Liquid", "Team^1 Liquid"},
		{"Collapse whitespace", "  Team \t Liquid  ", "Team Liquid"},
		{"Control characters", "G2\x00 Esports\n", "G2 Esports"},
		{"Only whitespace", " \t\n ", ""},
		{"Unicode kept", "Ninjas in Pyjamas Ω", "Ninjas in Pyjamas Ω"},
		{"Mixed", "\x07Natus \r\n Vincere\x7f", "Natus Vincere"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeName(tt.input)
			if got != tt.expected {
				t.Errorf("sanitizeName(%q) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizeName_Truncates(t *testing.T) {
	got := sanitizeName(strings.Repeat("x", 200))
	if len([]rune(got)) != maxNameLength {
		t.Errorf("len = %d, want %d", len([]rune(got)), maxNameLength)
	}
}

func BenchmarkSanitizeName(b *testing.B) {
	input := "  Natus \t Vincere\x00 Academy  "
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sanitizeName(input)
	}
}
