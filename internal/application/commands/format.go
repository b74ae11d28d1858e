package commands

import (
	"strconv"
	"strings"
	"unicode"
)

// formatInts renders numbers as a bracketed list, e.g. [1, 2, 3]
func formatInts(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.Itoa(n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// formatQuoted renders words as a bracketed list of quoted names, e.g. ['a', 'b']
func formatQuoted(words []string) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = "'" + w + "'"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// parseCount converts a captured number that may contain thousands
// separators. Decimal digits of any script are accepted, e.g. ౧౫౦.
func parseCount(s string) (int, bool) {
	s = strings.Map(func(r rune) rune {
		switch {
		case r == ',':
			return -1
		case r > unicode.MaxASCII && unicode.IsDigit(r):
			return '0' + digitValue(r)
		}
		return r
	}, s)

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// digitValue returns the value of a decimal digit. Unicode encodes every
// script's digits as contiguous runs of 0 through 9.
func digitValue(r rune) rune {
	start := r
	for unicode.IsDigit(start - 1) {
		start--
	}
	return (r - start) % 10
}
