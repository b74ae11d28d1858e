package domain

import (
	"encoding/json"
	"testing"
)

func issuesOfType(n int, t IssueType) []Issue {
	issues := make([]Issue, n)
	for i := range issues {
		issues[i] = Issue{File: "x.md", Type: t}
	}
	return issues
}

func TestComputeScores(t *testing.T) {
	tests := []struct {
		name   string
		issues []Issue
		words  int
		want   Scores
	}{
		{
			name: "empty run",
			want: Scores{Overall: 100, ContentCompleteness: 0, StructureConsistency: 100, CrossFileConsistency: 95},
		},
		{
			name:   "two issues keep high cross file score",
			issues: issuesOfType(2, IssueLowCitations),
			words:  50000,
			want:   Scores{Overall: 90, ContentCompleteness: 50, StructureConsistency: 100, CrossFileConsistency: 95},
		},
		{
			name:   "three structural issues",
			issues: issuesOfType(3, IssueMissingSections),
			words:  250000,
			want:   Scores{Overall: 85, ContentCompleteness: 100, StructureConsistency: 70, CrossFileConsistency: 80},
		},
		{
			name:   "scores floor at zero",
			issues: issuesOfType(21, IssueInsufficientAcademicStructure),
			words:  12345,
			want:   Scores{Overall: 0, ContentCompleteness: 12.3, StructureConsistency: 0, CrossFileConsistency: 80},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeScores(tt.issues, tt.words, 100000)
			if got != tt.want {
				t.Errorf("ComputeScores() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeScores_ZeroExpectedWords(t *testing.T) {
	if got := ComputeScores(nil, 10, 0).ContentCompleteness; got != 0 {
		t.Errorf("expected 0 content completeness, got %v", got)
	}
}

func TestRoundScore(t *testing.T) {
	tests := []struct {
		in   float64
		want Score
	}{
		{12.345, 12.3},
		{0.25, 0.2},
		{0.35, 0.3},
		{1.05, 1.1},
		{1.15, 1.1},
		{99.99, 100},
	}
	for _, tt := range tests {
		if got := RoundScore(tt.in); got != tt.want {
			t.Errorf("RoundScore(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestComputeScores_ContentCompletenessRounding(t *testing.T) {
	tests := []struct {
		words int
		want  Score
	}{
		{150, 0.1},
		{1050, 1.1},
		{1150, 1.1},
		{12345, 12.3},
		{250000, 100},
	}
	for _, tt := range tests {
		if got := ComputeScores(nil, tt.words, 100000).ContentCompleteness; got != tt.want {
			t.Errorf("ContentCompleteness(%d words) = %v, want %v", tt.words, got, tt.want)
		}
	}
}

func TestScoreMarshalJSON(t *testing.T) {
	data, err := json.Marshal(map[string]Score{"a": 100, "b": 12.3})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"a":100.0,"b":12.3}` {
		t.Errorf("unexpected JSON %s", data)
	}
}

func TestLightFor(t *testing.T) {
	tests := []struct {
		score Score
		want  Light
	}{
		{100, LightGreen},
		{90, LightGreen},
		{89.9, LightYellow},
		{70, LightYellow},
		{69.9, LightRed},
		{0, LightRed},
	}
	for _, tt := range tests {
		if got := LightFor(tt.score); got != tt.want {
			t.Errorf("LightFor(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestHealthFor(t *testing.T) {
	if HealthFor(95) != HealthExcellent || HealthFor(85) != HealthGood || HealthFor(84.9) != HealthNeedsAttention {
		t.Error("unexpected health bands")
	}
}
