package domain

import (
	"path"
	"regexp"
)

// README statistic names
const (
	StatWordCount    = "word_count"
	StatCitations    = "citations"
	StatStorytellers = "storytellers"
	StatProfiles     = "profiles"
)

// PatternRule is a labeled regular expression
type PatternRule struct {
	Name    string
	Source  string // pattern text as written in the rule set
	Pattern *regexp.Regexp
}

// Rules is the compiled rule set driving classification and validation.
// Build it with config.LoadRules or config.DefaultRules.
type Rules struct {
	// Classification
	ProfileSegment string   // path segment marking storyteller profiles
	ReadmeName     string   // exact file name of README indexes
	ModulePrefixes []string // file name prefixes of research modules

	// Storyteller profiles
	RequiredSections []PatternRule
	Citation         *regexp.Regexp
	MinCitations     int
	MinProfileWords  int

	// README indexes, in extraction order
	Statistics []PatternRule

	// Research modules
	AcademicIndicators    []PatternRule
	MinAcademicIndicators int

	// Cross-document audits
	StorytellerDir      string // slash-separated, relative to the root
	NumberedFile        *regexp.Regexp
	ClaimedProfiles     *regexp.Regexp
	WordCountTolerance  int
	ExpectedCorpusWords int
}

// StorytellerReadmePath returns the slash-separated path of the storyteller README
func (r *Rules) StorytellerReadmePath() string {
	return r.StorytellerDir + "/" + r.ReadmeName
}

// StorytellerDirLabel is the file label of issues about the storyteller directory
func (r *Rules) StorytellerDirLabel() string {
	return path.Base(r.StorytellerDir) + "/"
}

// StorytellerReadmeLabel is the file label of issues about the storyteller README
func (r *Rules) StorytellerReadmeLabel() string {
	return path.Base(r.StorytellerDir) + "/" + r.ReadmeName
}

// IssuePath maps an issue to the repository path it is about. Synthetic
// labels resolve to the README or directory they describe.
func (r *Rules) IssuePath(issue Issue) string {
	switch issue.File {
	case FileCrossValidation:
		return r.ReadmeName
	case r.StorytellerReadmeLabel():
		return r.StorytellerReadmePath()
	case r.StorytellerDirLabel():
		return r.StorytellerDir
	default:
		return issue.File
	}
}
