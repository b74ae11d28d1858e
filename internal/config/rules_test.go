package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	return writeRulesFile(t, "rules.yaml", content)
}

func writeRulesFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write rules: %v", err)
	}
	return path
}

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()

	if rules.ProfileSegment != "master_storytellers" || rules.ReadmeName != "README.md" {
		t.Errorf("unexpected classification rules %q / %q", rules.ProfileSegment, rules.ReadmeName)
	}
	if len(rules.RequiredSections) != 6 {
		t.Errorf("expected 6 required sections, got %d", len(rules.RequiredSections))
	}
	if len(rules.AcademicIndicators) != 7 {
		t.Errorf("expected 7 academic indicators, got %d", len(rules.AcademicIndicators))
	}
	if rules.MinCitations != 10 || rules.MinProfileWords != 1500 || rules.MinAcademicIndicators != 3 {
		t.Errorf("unexpected thresholds %d / %d / %d", rules.MinCitations, rules.MinProfileWords, rules.MinAcademicIndicators)
	}
	if rules.StorytellerDir != "research/master_storytellers" {
		t.Errorf("unexpected storyteller dir %q", rules.StorytellerDir)
	}
	if rules.WordCountTolerance != 10000 || rules.ExpectedCorpusWords != 100000 {
		t.Errorf("unexpected cross file limits %d / %d", rules.WordCountTolerance, rules.ExpectedCorpusWords)
	}
	if DefaultRules() != rules {
		t.Error("DefaultRules should be compiled once")
	}
}

func TestDefaultRules_Patterns(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name    string
		matches bool
		got     bool
	}{
		{"impact heading", true, rules.RequiredSections[4].Pattern.MatchString("## 🏆 Global Impact")},
		{"techniques heading", true, rules.RequiredSections[2].Pattern.MatchString("## 🏗️ Signature Storytelling Techniques")},
		{"section is case sensitive", false, rules.RequiredSections[0].Pattern.MatchString("📋 profile overview")},
		{"citation", true, rules.Citation.MatchString("**Source**: Journal")},
		{"citation needs colon", false, rules.Citation.MatchString("**bold** text")},
		{"indicator folds case", true, rules.AcademicIndicators[0].Pattern.MatchString("ABSTRACT")},
		{"numbered file", true, rules.NumberedFile.MatchString("12_name.md")},
		{"numbered file anchored", false, rules.NumberedFile.MatchString("a12_name.md")},
		{"claimed profiles folds case", true, rules.ClaimedProfiles.MatchString("5 Comprehensive Profiles")},
		{"claimed profiles in telugu digits", true, rules.ClaimedProfiles.MatchString("౫ comprehensive profiles")},
		{"numbered file in telugu digits", true, rules.NumberedFile.MatchString("౧౨_name.md")},
		{"word count after no-break space", true, rules.Statistics[0].Pattern.MatchString("౧౫౦,౦౦౦\u00a0words")},
	}
	for _, tt := range tests {
		if tt.got != tt.matches {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.matches)
		}
	}

	match := rules.Statistics[0].Pattern.FindStringSubmatch("about 1,234+ Words")
	if match == nil || match[1] != "1,234" {
		t.Errorf("unexpected word_count match %v", match)
	}
}

func TestLoadRules_OverlaysDefaults(t *testing.T) {
	path := writeRules(t, `
profiles:
  min_citations: 3
cross_file:
  storyteller_dir: docs/profiles/
`)

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if rules.MinCitations != 3 {
		t.Errorf("expected overridden min_citations 3, got %d", rules.MinCitations)
	}
	if rules.StorytellerDir != "docs/profiles" {
		t.Errorf("expected cleaned storyteller dir, got %q", rules.StorytellerDir)
	}
	if rules.MinProfileWords != 1500 || len(rules.RequiredSections) != 6 {
		t.Error("keys absent from the file should keep their defaults")
	}
}

func TestLoadRules_EmptyFile(t *testing.T) {
	rules, err := LoadRules(writeRules(t, ""))
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if rules.MinCitations != 10 {
		t.Errorf("expected defaults, got min_citations %d", rules.MinCitations)
	}
}

func TestLoadRules_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{
			name:    "unknown key",
			content: "profiles:\n  min_citation: 3\n",
			field:   "file",
		},
		{
			name:    "bad regexp",
			content: "profiles:\n  citation_pattern: '('\n",
			field:   "profiles.citation_pattern",
		},
		{
			name:    "statistic without capture group",
			content: "readme:\n  statistics:\n    - name: words\n      pattern: '\\d+ words'\n",
			field:   "readme.statistics[0]",
		},
		{
			name:    "empty readme name",
			content: "classification:\n  readme_name: ''\n",
			field:   "classification.readme_name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRules(writeRules(t, tt.content))
			if !errors.Is(err, ErrInvalidRules) {
				t.Fatalf("expected ErrInvalidRules, got %v", err)
			}
			var ruleErr *RuleError
			if !errors.As(err, &ruleErr) {
				t.Fatalf("expected RuleError, got %T", err)
			}
			if ruleErr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, ruleErr.Field)
			}
		})
	}

	if _, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestRuleSetMarshal_RoundTrip(t *testing.T) {
	set, err := DefaultRuleSet()
	if err != nil {
		t.Fatalf("DefaultRuleSet failed: %v", err)
	}
	data, err := set.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), "storyteller_dir: research/master_storytellers") {
		t.Errorf("marshaled rules missing storyteller_dir:\n%s", data)
	}

	rules, err := LoadRules(writeRules(t, string(data)))
	if err != nil {
		t.Fatalf("marshaled rules do not load: %v", err)
	}
	if len(rules.Statistics) != 4 {
		t.Errorf("expected 4 statistics, got %d", len(rules.Statistics))
	}
}

func TestLoadRules_TOML(t *testing.T) {
	path := writeRulesFile(t, "rules.toml", `
[profiles]
min_citations = 4

[[readme.statistics]]
name = "words"
pattern = '(\d+)\s*words'
`)

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if rules.MinCitations != 4 {
		t.Errorf("expected min_citations 4, got %d", rules.MinCitations)
	}
	if len(rules.Statistics) != 1 || rules.Statistics[0].Name != "words" {
		t.Errorf("expected the statistics list to be replaced, got %d entries", len(rules.Statistics))
	}
	if rules.MinProfileWords != 1500 {
		t.Error("keys absent from the file should keep their defaults")
	}

	_, err = LoadRules(writeRulesFile(t, "bad.toml", "[profiles]\nmin_citation = 3\n"))
	if !errors.Is(err, ErrInvalidRules) || !strings.Contains(err.Error(), "profiles.min_citation") {
		t.Errorf("expected unknown key error, got %v", err)
	}
}

func TestRuleSetMarshalTOML_RoundTrip(t *testing.T) {
	set, err := DefaultRuleSet()
	if err != nil {
		t.Fatalf("DefaultRuleSet failed: %v", err)
	}
	data, err := set.MarshalTOML()
	if err != nil {
		t.Fatalf("MarshalTOML failed: %v", err)
	}
	if !strings.Contains(string(data), "[cross_file]") {
		t.Errorf("marshaled rules missing [cross_file]:\n%s", data)
	}

	rules, err := LoadRules(writeRulesFile(t, "rules.toml", string(data)))
	if err != nil {
		t.Fatalf("marshaled rules do not load: %v", err)
	}
	if len(rules.RequiredSections) != 6 || rules.RequiredSections[4].Source != "🏆.*Impact" {
		t.Errorf("required sections did not survive the round trip: %+v", rules.RequiredSections)
	}
}
