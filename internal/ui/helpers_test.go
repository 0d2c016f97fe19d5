package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly ten chars!", 18, "exactly ten chars!"},
		{"this is far too long", 10, "this is f…"},
		{"x", 1, "x"},
		{"xy", 1, "…"},
		{"anything", 0, ""},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 5); got != "ab   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("abcdef", 3); got != "abcdef" {
		t.Errorf("padRight should not trim, got %q", got)
	}
}

func TestParseConditions(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"hypertension, diabetes", []string{"hypertension", "diabetes"}},
		{" asthma ", []string{"asthma"}},
		{"a,,b,", []string{"a", "b"}},
		{"", nil},
		{", ,", nil},
	}

	for _, tt := range tests {
		got := parseConditions(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("parseConditions(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseConditions(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
