package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"storyaudit/internal/domain"
)

const ruleWidth = 60

// Printer renders the human-readable validation summary
type Printer struct {
	w     io.Writer
	title cases.Caser

	heading lipgloss.Style
	muted   lipgloss.Style
	good    lipgloss.Style
	warn    lipgloss.Style
	bad     lipgloss.Style
}

// NewPrinter creates a Printer writing to w. Colors are used only when w is
// a terminal that supports them.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		title:   cases.Title(language.English),
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		good:    r.NewStyle().Foreground(lipgloss.Color("#10B981")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		bad:     r.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
	}
}

// Print writes the full summary of a finalized accumulator. reportPath is
// where the JSON report was saved, omitted when empty.
func (p *Printer) Print(acc *domain.Accumulator, reportPath string) {
	p.printHeader()
	p.printSummary(acc)
	p.printScores(acc)
	p.printIssues(acc.IssuesFound)
	p.printConsistency(acc)
	p.printRecommendation(acc.Score(domain.AspectOverall))

	if reportPath != "" {
		fmt.Fprintf(p.w, "\n💾 Detailed report saved to: %s\n", reportPath)
	}
}

func (p *Printer) printHeader() {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, rule)
	fmt.Fprintln(p.w, p.heading.Render("📊 COMPREHENSIVE VALIDATION REPORT"))
	fmt.Fprintln(p.w, rule)
}

func (p *Printer) printSummary(acc *domain.Accumulator) {
	fmt.Fprintf(p.w, "\n%s\n", p.heading.Render("📈 SUMMARY STATISTICS:"))
	fmt.Fprintf(p.w, "   Files Validated: %d\n", acc.FilesChecked)
	fmt.Fprintf(p.w, "   Total Word Count: %s\n", humanize.Comma(int64(acc.TotalWordCount)))
	fmt.Fprintf(p.w, "   Issues Found: %d\n", len(acc.IssuesFound))
}

func (p *Printer) printScores(acc *domain.Accumulator) {
	fmt.Fprintf(p.w, "\n%s\n", p.heading.Render("🎯 CONFIDENCE SCORES:"))
	for pair := acc.ConfidenceScores.Oldest(); pair != nil; pair = pair.Next() {
		fmt.Fprintf(p.w, "   %s %s: %s\n", LightMarker(domain.LightFor(pair.Value)), p.Label(pair.Key), p.scoreStyle(pair.Value).Render(pair.Value.String()+"%"))
	}
}

func (p *Printer) printIssues(issues []domain.Issue) {
	if len(issues) == 0 {
		fmt.Fprintf(p.w, "\n%s\n", p.good.Render("✅ NO ISSUES FOUND - Repository is fully validated!"))
		return
	}

	fmt.Fprintf(p.w, "\n%s\n", p.heading.Render("⚠️  ISSUES FOUND:"))
	for _, count := range domain.CountByType(issues) {
		fmt.Fprintf(p.w, "   • %s: %d\n", p.Label(string(count.Type)), count.Count)
	}

	fmt.Fprintf(p.w, "\n%s\n", p.heading.Render("📋 DETAILED ISSUES:"))
	for i, issue := range issues {
		fmt.Fprintf(p.w, "   %d. %s\n", i+1, issue.File)
		fmt.Fprintf(p.w, "      Type: %s\n", p.muted.Render(string(issue.Type)))
		fmt.Fprintf(p.w, "      Message: %s\n", issue.Message)
		fmt.Fprintln(p.w)
	}
}

func (p *Printer) printConsistency(acc *domain.Accumulator) {
	if acc.ConsistencyChecks.Len() == 0 {
		return
	}

	fmt.Fprintf(p.w, "\n%s\n", p.heading.Render("🔄 CONSISTENCY CHECKS:"))
	for pair := acc.ConsistencyChecks.Oldest(); pair != nil; pair = pair.Next() {
		fmt.Fprintf(p.w, "   • %s: %s\n", p.Label(pair.Key), FormatCheck(pair.Value))
	}
}

func (p *Printer) printRecommendation(overall domain.Score) {
	fmt.Fprintf(p.w, "\n%s\n", p.heading.Render("💡 RECOMMENDATIONS:"))
	for _, line := range Recommendation(domain.HealthFor(overall)) {
		fmt.Fprintf(p.w, "   %s\n", line)
	}
}

func (p *Printer) scoreStyle(s domain.Score) lipgloss.Style {
	switch domain.LightFor(s) {
	case domain.LightGreen:
		return p.good
	case domain.LightYellow:
		return p.warn
	default:
		return p.bad
	}
}

// Label turns a snake_case key into a title-cased label
func (p *Printer) Label(key string) string {
	return p.title.String(strings.ReplaceAll(key, "_", " "))
}

// LightMarker returns the traffic-light glyph for a band
func LightMarker(l domain.Light) string {
	switch l {
	case domain.LightGreen:
		return "🟢"
	case domain.LightYellow:
		return "🟡"
	default:
		return "🔴"
	}
}

// Recommendation returns the advice lines for a health band
func Recommendation(h domain.Health) []string {
	switch h {
	case domain.HealthExcellent:
		return []string{
			"✅ Repository is in excellent condition!",
			"✅ All files meet quality standards",
			"✅ Statistics are consistent across files",
		}
	case domain.HealthGood:
		return []string{
			"🟡 Repository is in good condition with minor issues",
			"🟡 Consider addressing the issues listed above",
		}
	default:
		return []string{
			"🔴 Repository needs attention",
			"🔴 Multiple issues require resolution",
		}
	}
}

// FormatCheck renders a consistency record as "N files (a, b)"
func FormatCheck(check domain.ConsistencyCheck) string {
	noun := "files"
	if check.Actual == 1 {
		noun = "file"
	}
	if len(check.Files) == 0 {
		return fmt.Sprintf("%d %s", check.Actual, noun)
	}
	return fmt.Sprintf("%d %s (%s)", check.Actual, noun, strings.Join(check.Files, ", "))
}
