package report

import (
	"bytes"
	"strings"
	"testing"

	"storyaudit/internal/domain"
)

func finalized(t *testing.T, issues []domain.Issue, words int) *domain.Accumulator {
	t.Helper()

	acc := domain.NewAccumulator()
	acc.RecordDocument(words)
	for _, issue := range issues {
		acc.AddIssue(issue.File, issue.Type, issue.Message)
	}
	if err := acc.Finalize(domain.ComputeScores(acc.IssuesFound, acc.TotalWordCount, 100000)); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	return acc
}

func TestPrinter_NoIssues(t *testing.T) {
	acc := finalized(t, nil, 123456)
	acc.SetConsistencyCheck(domain.CheckStorytellerCount, domain.ConsistencyCheck{Actual: 2, Files: []string{"01_a.md", "02_b.md"}})

	var buf bytes.Buffer
	NewPrinter(&buf).Print(acc, "/repo/validation_report.json")
	out := buf.String()

	for _, want := range []string{
		"📊 COMPREHENSIVE VALIDATION REPORT",
		"   Files Validated: 1\n",
		"   Total Word Count: 123,456\n",
		"   Issues Found: 0\n",
		"   🟢 Overall: 100.0%\n",
		"   🟢 Content Completeness: 100.0%\n",
		"   🟢 Cross File Consistency: 95.0%\n",
		"✅ NO ISSUES FOUND - Repository is fully validated!",
		"   • Storyteller Count: 2 files (01_a.md, 02_b.md)\n",
		"✅ Repository is in excellent condition!",
		"💾 Detailed report saved to: /repo/validation_report.json",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("non-terminal output must not contain escape sequences")
	}
}

func TestPrinter_IssuesHistogramAndDetails(t *testing.T) {
	issues := []domain.Issue{
		{File: "a.md", Type: domain.IssueLowCitations, Message: "Only 4 citations found, expected 10+"},
		{File: "b.md", Type: domain.IssueMissingSections, Message: "Missing sections: x"},
		{File: "c.md", Type: domain.IssueLowCitations, Message: "Only 2 citations found, expected 10+"},
	}
	acc := finalized(t, issues, 5000)

	var buf bytes.Buffer
	NewPrinter(&buf).Print(acc, "")
	out := buf.String()

	for _, want := range []string{
		"   🟡 Overall: 85.0%\n",
		"   🔴 Content Completeness: 5.0%\n",
		"   🟢 Structure Consistency: 90.0%\n",
		"   • Low Citations: 2\n",
		"   • Missing Sections: 1\n",
		"   3. c.md\n      Type: low_citations\n      Message: Only 2 citations found, expected 10+\n",
		"🟡 Repository is in good condition with minor issues",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if strings.Index(out, "Low Citations") > strings.Index(out, "Missing Sections") {
		t.Error("histogram should list issue types in first-seen order")
	}
	if strings.Contains(out, "Detailed report saved") {
		t.Error("report path line should be omitted when empty")
	}
	if strings.Contains(out, "CONSISTENCY CHECKS") {
		t.Error("consistency section should be omitted when there are no checks")
	}
}

func TestRecommendation(t *testing.T) {
	tests := []struct {
		overall domain.Score
		prefix  string
	}{
		{100, "✅"},
		{95, "✅"},
		{94.9, "🟡"},
		{85, "🟡"},
		{84.9, "🔴"},
		{0, "🔴"},
	}
	for _, tt := range tests {
		lines := Recommendation(domain.HealthFor(tt.overall))
		if len(lines) == 0 || !strings.HasPrefix(lines[0], tt.prefix) {
			t.Errorf("Recommendation(%v) = %v, want prefix %s", tt.overall, lines, tt.prefix)
		}
	}
}

func TestFormatCheck(t *testing.T) {
	if got := FormatCheck(domain.ConsistencyCheck{Actual: 0, Files: []string{}}); got != "0 files" {
		t.Errorf("FormatCheck(empty) = %q", got)
	}
	if got := FormatCheck(domain.ConsistencyCheck{Actual: 1, Files: []string{"01_a.md"}}); got != "1 file (01_a.md)" {
		t.Errorf("FormatCheck(one) = %q", got)
	}
}
