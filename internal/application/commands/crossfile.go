package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"go.uber.org/zap"

	"storyaudit/internal/domain"
)

// crossCheck runs the cross-document audits once traversal is complete
func (v *validator) crossCheck() {
	files, ok := v.storytellerFiles()
	if ok {
		v.checkStorytellerCount(files)
	}
	v.checkStatistics()
	if ok {
		v.checkNumbering(files)
	}
}

// storytellerFiles lists the numbered profile files of the storyteller
// directory. It reports false when the directory does not exist.
func (v *validator) storytellerFiles() ([]string, bool) {
	names, err := v.repo.ListMarkdown(v.rules.StorytellerDir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			v.logger.Warn("cannot list storyteller directory",
				zap.String("dir", v.rules.StorytellerDir), zap.Error(err))
		}
		return nil, false
	}

	var files []string
	for _, name := range names {
		if name == v.rules.ReadmeName || !v.rules.NumberedFile.MatchString(name) {
			continue
		}
		files = append(files, name)
	}
	return files, true
}

// loadStorytellerReadme returns the storyteller README content, reading it
// at most once. A failed read is reported as a file_error.
func (v *validator) loadStorytellerReadme() (string, bool) {
	if v.storytellerReadmeLoaded {
		return v.storytellerReadme, v.storytellerReadmeOK
	}
	v.storytellerReadmeLoaded = true

	relPath := v.rules.StorytellerReadmePath()
	if v.readFailed[relPath] || !v.repo.Exists(relPath) {
		return "", false
	}

	content, err := v.repo.ReadDocument(relPath)
	if err != nil {
		v.acc.AddIssue(v.rules.StorytellerReadmeLabel(), domain.IssueFileError, fmt.Sprintf("Error reading file: %v", err))
		return "", false
	}
	v.storytellerReadme = content
	v.storytellerReadmeOK = true
	return content, true
}

// checkStorytellerCount compares the number of profile files with the
// count claimed by the storyteller README
func (v *validator) checkStorytellerCount(files []string) {
	v.acc.SetConsistencyCheck(domain.CheckStorytellerCount, domain.ConsistencyCheck{
		Actual: len(files),
		Files:  files,
	})

	content, ok := v.loadStorytellerReadme()
	if !ok {
		return
	}

	match := v.rules.ClaimedProfiles.FindStringSubmatch(content)
	if match == nil {
		return
	}
	claimed, ok := parseCount(match[1])
	if !ok {
		return
	}
	if claimed != len(files) {
		v.acc.AddIssue(v.rules.StorytellerReadmeLabel(), domain.IssueCountMismatch,
			fmt.Sprintf("Claims %d profiles but found %d files", claimed, len(files)))
	}
}

// checkStatistics compares the word volume claimed by the root README with
// the one claimed by the storyteller README
func (v *validator) checkStatistics() {
	modulePath := v.rules.StorytellerReadmePath()

	if _, ok := v.acc.Statistics.Get(modulePath); !ok && v.visited[modulePath] {
		if content, ok := v.loadStorytellerReadme(); ok {
			v.acc.SetStatistics(modulePath, extractStatistics(content, v.rules))
		}
	}

	mainClaims := v.acc.WordCountClaims(v.rules.ReadmeName)
	moduleClaims := v.acc.WordCountClaims(modulePath)
	if len(mainClaims) == 0 || len(moduleClaims) == 0 {
		return
	}

	mainWords := slices.Max(mainClaims)
	moduleWords := slices.Max(moduleClaims)
	if diff := mainWords - moduleWords; diff > v.rules.WordCountTolerance || -diff > v.rules.WordCountTolerance {
		v.acc.AddIssue(domain.FileCrossValidation, domain.IssueStatisticsMismatch,
			fmt.Sprintf("Word count mismatch: main README claims %d, module claims %d", mainWords, moduleWords))
	}
}

// checkNumbering verifies the profile files are numbered 1..N without gaps
// or duplicates
func (v *validator) checkNumbering(files []string) {
	numbers := make([]int, 0, len(files))
	for _, name := range files {
		match := v.rules.NumberedFile.FindStringSubmatch(name)
		if match == nil {
			continue
		}
		if n, ok := parseCount(match[1]); ok {
			numbers = append(numbers, n)
		}
	}
	slices.Sort(numbers)

	expected := make([]int, len(numbers))
	for i := range expected {
		expected[i] = i + 1
	}

	if !slices.Equal(numbers, expected) {
		v.acc.AddIssue(v.rules.StorytellerDirLabel(), domain.IssueNumberingGaps,
			fmt.Sprintf("Expected %s, found %s", formatInts(expected), formatInts(numbers)))
	}
}
