package commands

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"storyaudit/internal/domain"
	"storyaudit/internal/ports"
)

// validator runs the per-document checks during traversal and the
// cross-document audits afterwards, writing into one accumulator
type validator struct {
	repo   ports.ContentRepository
	rules  *domain.Rules
	logger *zap.Logger
	acc    *domain.Accumulator

	visited    map[string]bool
	readFailed map[string]bool

	storytellerReadme       string
	storytellerReadmeLoaded bool
	storytellerReadmeOK     bool
}

func newValidator(repo ports.ContentRepository, rules *domain.Rules, logger *zap.Logger, acc *domain.Accumulator) *validator {
	return &validator{
		repo:       repo,
		rules:      rules,
		logger:     logger,
		acc:        acc,
		visited:    make(map[string]bool),
		readFailed: make(map[string]bool),
	}
}

// visit reads, counts and validates one Markdown document
func (v *validator) visit(relPath string) error {
	v.visited[relPath] = true

	content, err := v.repo.ReadDocument(relPath)
	if err != nil {
		v.readFailed[relPath] = true
		v.acc.RecordDocument(0)
		v.acc.AddIssue(relPath, domain.IssueFileError, fmt.Sprintf("Error reading file: %v", err))
		v.logger.Warn("cannot read document", zap.String("path", relPath), zap.Error(err))
		return nil
	}

	doc := domain.NewDocument(relPath, content)
	v.acc.RecordDocument(doc.Words)

	if relPath == v.rules.StorytellerReadmePath() {
		v.storytellerReadme = content
		v.storytellerReadmeLoaded = true
		v.storytellerReadmeOK = true
	}

	profile := domain.Classify(relPath, v.rules)
	switch profile {
	case domain.ProfileMasterStoryteller:
		v.checkStorytellerProfile(doc)
	case domain.ProfileReadmeIndex:
		v.acc.SetStatistics(relPath, extractStatistics(doc.Content, v.rules))
	case domain.ProfileResearchModule:
		v.checkResearchModule(doc)
	}

	v.logger.Debug("validated document",
		zap.String("path", relPath),
		zap.Stringer("profile", profile),
		zap.Int("words", doc.Words),
	)
	return nil
}

// checkStorytellerProfile checks required sections, citation density and length
func (v *validator) checkStorytellerProfile(doc domain.Document) {
	var missing []string
	for _, section := range v.rules.RequiredSections {
		if !section.Pattern.MatchString(doc.Content) {
			missing = append(missing, section.Source)
		}
	}
	if len(missing) > 0 {
		v.acc.AddIssue(doc.Path, domain.IssueMissingSections, "Missing sections: "+strings.Join(missing, ", "))
	}

	citations := len(v.rules.Citation.FindAllStringIndex(doc.Content, -1))
	if citations < v.rules.MinCitations {
		v.acc.AddIssue(doc.Path, domain.IssueLowCitations,
			fmt.Sprintf("Only %d citations found, expected %d+", citations, v.rules.MinCitations))
	}

	if doc.Words < v.rules.MinProfileWords {
		v.acc.AddIssue(doc.Path, domain.IssueInsufficientContent,
			fmt.Sprintf("Word count %d below expected %d+ for master storyteller", doc.Words, v.rules.MinProfileWords))
	}
}

// checkResearchModule checks that enough academic structure markers appear
func (v *validator) checkResearchModule(doc domain.Document) {
	var found []string
	for _, indicator := range v.rules.AcademicIndicators {
		if indicator.Pattern.MatchString(doc.Content) {
			found = append(found, indicator.Name)
		}
	}

	if len(found) < v.rules.MinAcademicIndicators {
		v.acc.AddIssue(doc.Path, domain.IssueInsufficientAcademicStructure,
			fmt.Sprintf("Only found %d academic indicators: %s", len(found), formatQuoted(found)))
	}
}

// extractStatistics collects every numeric claim of each statistic pattern.
// Statistics with no match are omitted from the record.
func extractStatistics(content string, rules *domain.Rules) *domain.StatisticsRecord {
	record := domain.NewStatisticsRecord()

	for _, stat := range rules.Statistics {
		var numbers []int
		for _, match := range stat.Pattern.FindAllStringSubmatch(content, -1) {
			if n, ok := parseCount(match[1]); ok {
				numbers = append(numbers, n)
			}
		}
		if len(numbers) > 0 {
			record.Set(stat.Name, numbers)
		}
	}

	return record
}
