package commands

import "testing"

func TestFormatInts(t *testing.T) {
	tests := []struct {
		in   []int
		want string
	}{
		{nil, "[]"},
		{[]int{1}, "[1]"},
		{[]int{1, 3}, "[1, 3]"},
	}
	for _, tt := range tests {
		if got := formatInts(tt.in); got != tt.want {
			t.Errorf("formatInts(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatQuoted(t *testing.T) {
	if got := formatQuoted(nil); got != "[]" {
		t.Errorf("formatQuoted(nil) = %q", got)
	}
	if got := formatQuoted([]string{"abstract", "results"}); got != "['abstract', 'results']" {
		t.Errorf("formatQuoted() = %q", got)
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"150,000", 150000, true},
		{"42", 42, true},
		{"1,", 1, true},
		{"౧౫౦,౦౦౦", 150000, true},
		{"५", 5, true},
		{"١٢", 12, true},
		{"", 0, false},
		{"99999999999999999999999", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseCount(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseCount(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
