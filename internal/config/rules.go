package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"storyaudit/internal/domain"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// ErrInvalidRules is returned when a rule set cannot be loaded or compiled
var ErrInvalidRules = errors.New("invalid rule set")

// RuleError describes the rule that failed to load or compile
type RuleError struct {
	Field string
	Err   error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %s: %v", e.Field, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

func (e *RuleError) Is(target error) bool {
	return target == ErrInvalidRules
}

// NamedPattern is a labeled pattern as written in a rule file
type NamedPattern struct {
	Name    string `yaml:"name" toml:"name"`
	Pattern string `yaml:"pattern" toml:"pattern"`
}

// RuleSet is the file form of the validation rules. Rule files are YAML,
// or TOML when the file name ends in .toml.
type RuleSet struct {
	Classification ClassificationRules `yaml:"classification" toml:"classification"`
	Profiles       ProfileRules        `yaml:"profiles" toml:"profiles"`
	Readme         ReadmeRules         `yaml:"readme" toml:"readme"`
	Research       ResearchRules       `yaml:"research" toml:"research"`
	CrossFile      CrossFileRules      `yaml:"cross_file" toml:"cross_file"`
}

type ClassificationRules struct {
	ProfileSegment string   `yaml:"profile_segment" toml:"profile_segment"`
	ReadmeName     string   `yaml:"readme_name" toml:"readme_name"`
	ModulePrefixes []string `yaml:"module_prefixes" toml:"module_prefixes"`
}

type ProfileRules struct {
	RequiredSections []NamedPattern `yaml:"required_sections" toml:"required_sections"`
	CitationPattern  string         `yaml:"citation_pattern" toml:"citation_pattern"`
	MinCitations     int            `yaml:"min_citations" toml:"min_citations"`
	MinWords         int            `yaml:"min_words" toml:"min_words"`
}

type ReadmeRules struct {
	Statistics []NamedPattern `yaml:"statistics" toml:"statistics"`
}

type ResearchRules struct {
	AcademicIndicators []string `yaml:"academic_indicators" toml:"academic_indicators"`
	MinIndicators      int      `yaml:"min_indicators" toml:"min_indicators"`
}

type CrossFileRules struct {
	StorytellerDir         string `yaml:"storyteller_dir" toml:"storyteller_dir"`
	NumberedFilePattern    string `yaml:"numbered_file_pattern" toml:"numbered_file_pattern"`
	ClaimedProfilesPattern string `yaml:"claimed_profiles_pattern" toml:"claimed_profiles_pattern"`
	WordCountTolerance     int    `yaml:"word_count_tolerance" toml:"word_count_tolerance"`
	ExpectedCorpusWords    int    `yaml:"expected_corpus_words" toml:"expected_corpus_words"`
}

// DefaultRuleSet returns the embedded rule set
func DefaultRuleSet() (*RuleSet, error) {
	var set RuleSet
	if err := decodeRules(defaultRulesYAML, &set); err != nil {
		return nil, &RuleError{Field: "embedded", Err: err}
	}
	return &set, nil
}

// LoadRuleSet reads the rule file at path on top of the embedded defaults.
// Keys absent from the file keep their default values. An empty path
// returns the defaults.
func LoadRuleSet(path string) (*RuleSet, error) {
	set, err := DefaultRuleSet()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return set, nil
	}

	data, err := os.ReadFile(ExpandHome(path))
	if err != nil {
		return nil, &RuleError{Field: "file", Err: err}
	}
	decode := decodeRules
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		decode = decodeTOMLRules
	}
	if err := decode(data, set); err != nil {
		return nil, &RuleError{Field: "file", Err: fmt.Errorf("%s: %w", path, err)}
	}
	return set, nil
}

// LoadRules loads and compiles the rule set at path (defaults when empty)
func LoadRules(path string) (*domain.Rules, error) {
	set, err := LoadRuleSet(path)
	if err != nil {
		return nil, err
	}
	return set.Compile()
}

var (
	defaultRulesOnce sync.Once
	defaultRules     *domain.Rules
)

// DefaultRules returns the compiled embedded rule set. It panics if the
// embedded file is broken, which is a build defect.
func DefaultRules() *domain.Rules {
	defaultRulesOnce.Do(func() {
		rules, err := LoadRules("")
		if err != nil {
			panic(err)
		}
		defaultRules = rules
	})
	return defaultRules
}

// Marshal renders the rule set as YAML
func (s *RuleSet) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalTOML renders the rule set as TOML
func (s *RuleSet) MarshalTOML() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = "  "
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Compile validates the rule set and compiles every pattern
func (s *RuleSet) Compile() (*domain.Rules, error) {
	if s.Classification.ProfileSegment == "" {
		return nil, &RuleError{Field: "classification.profile_segment", Err: errors.New("must not be empty")}
	}
	if s.Classification.ReadmeName == "" {
		return nil, &RuleError{Field: "classification.readme_name", Err: errors.New("must not be empty")}
	}
	if s.CrossFile.StorytellerDir == "" {
		return nil, &RuleError{Field: "cross_file.storyteller_dir", Err: errors.New("must not be empty")}
	}

	rules := &domain.Rules{
		ProfileSegment:        s.Classification.ProfileSegment,
		ReadmeName:            s.Classification.ReadmeName,
		ModulePrefixes:        append([]string(nil), s.Classification.ModulePrefixes...),
		MinCitations:          s.Profiles.MinCitations,
		MinProfileWords:       s.Profiles.MinWords,
		MinAcademicIndicators: s.Research.MinIndicators,
		StorytellerDir:        strings.Trim(path.Clean(s.CrossFile.StorytellerDir), "/"),
		WordCountTolerance:    s.CrossFile.WordCountTolerance,
		ExpectedCorpusWords:   s.CrossFile.ExpectedCorpusWords,
	}

	for i, section := range s.Profiles.RequiredSections {
		re, err := compile(fmt.Sprintf("profiles.required_sections[%d]", i), section.Pattern, false, 0)
		if err != nil {
			return nil, err
		}
		rules.RequiredSections = append(rules.RequiredSections, domain.PatternRule{
			Name:    section.Name,
			Source:  section.Pattern,
			Pattern: re,
		})
	}

	var err error
	if rules.Citation, err = compile("profiles.citation_pattern", s.Profiles.CitationPattern, false, 0); err != nil {
		return nil, err
	}

	for i, stat := range s.Readme.Statistics {
		re, err := compile(fmt.Sprintf("readme.statistics[%d]", i), stat.Pattern, true, 1)
		if err != nil {
			return nil, err
		}
		rules.Statistics = append(rules.Statistics, domain.PatternRule{
			Name:    stat.Name,
			Source:  stat.Pattern,
			Pattern: re,
		})
	}

	for i, indicator := range s.Research.AcademicIndicators {
		re, err := compile(fmt.Sprintf("research.academic_indicators[%d]", i), indicator, true, 0)
		if err != nil {
			return nil, err
		}
		rules.AcademicIndicators = append(rules.AcademicIndicators, domain.PatternRule{
			Name:    indicator,
			Source:  indicator,
			Pattern: re,
		})
	}

	if rules.NumberedFile, err = compile("cross_file.numbered_file_pattern", s.CrossFile.NumberedFilePattern, false, 1); err != nil {
		return nil, err
	}
	if rules.ClaimedProfiles, err = compile("cross_file.claimed_profiles_pattern", s.CrossFile.ClaimedProfilesPattern, true, 1); err != nil {
		return nil, err
	}

	return rules, nil
}

// compile compiles a non-empty pattern, optionally case-insensitive, and
// checks it has at least minGroups capture groups
func compile(field, pattern string, foldCase bool, minGroups int) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, &RuleError{Field: field, Err: errors.New("pattern must not be empty")}
	}
	if foldCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &RuleError{Field: field, Err: err}
	}
	if re.NumSubexp() < minGroups {
		return nil, &RuleError{Field: field, Err: fmt.Errorf("needs %d capture group(s)", minGroups)}
	}
	return re, nil
}

func decodeRules(data []byte, set *RuleSet) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(set); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func decodeTOMLRules(data []byte, set *RuleSet) error {
	md, err := toml.Decode(string(data), set)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %s", undecoded[0])
	}
	return nil
}
