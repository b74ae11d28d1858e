package commands

import (
	"bytes"
	"encoding/json"
	"fmt"

	"storyaudit/internal/domain"
)

// EncodeReport serializes a finalized accumulator as the JSON validation
// report: two-space indentation, UTF-8 text left unescaped
func EncodeReport(acc *domain.Accumulator) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(acc); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeReport parses a JSON validation report
func DecodeReport(data []byte) (*domain.Accumulator, error) {
	acc := domain.NewAccumulator()
	if err := json.Unmarshal(data, acc); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	if acc.IssuesFound == nil {
		acc.IssuesFound = []domain.Issue{}
	}
	return acc, nil
}
