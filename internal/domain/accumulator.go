package domain

import (
	"errors"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrScoresFinalized is returned when confidence scores are set a second time
var ErrScoresFinalized = errors.New("confidence scores already finalized")

// Confidence aspects, in report order
const (
	AspectOverall              = "overall"
	AspectContentCompleteness  = "content_completeness"
	AspectStructureConsistency = "structure_consistency"
	AspectCrossFileConsistency = "cross_file_consistency"
)

// CheckStorytellerCount names the storyteller-count consistency record
const CheckStorytellerCount = "storyteller_count"

// StatisticsRecord maps a statistic name to the values extracted from one README
type StatisticsRecord = orderedmap.OrderedMap[string, []int]

// NewStatisticsRecord returns an empty record
func NewStatisticsRecord() *StatisticsRecord {
	return orderedmap.New[string, []int]()
}

// ConsistencyCheck is the result of a named cross-document audit
type ConsistencyCheck struct {
	Actual int      `json:"actual"`
	Files  []string `json:"files"`
}

// Score is a confidence value in [0, 100] serialized with one decimal
type Score float64

// MarshalJSON renders the score with exactly one decimal place
func (s Score) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(s), 'f', 1, 64)), nil
}

// String formats the score the same way it is serialized
func (s Score) String() string {
	return strconv.FormatFloat(float64(s), 'f', 1, 64)
}

// RoundScore rounds the exact binary value of v to one decimal place,
// halves to even
func RoundScore(v float64) Score {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return Score(v)
	}
	return Score(rounded)
}

// Accumulator collects every output of a validation run
type Accumulator struct {
	FilesChecked      int                                               `json:"files_checked"`
	TotalWordCount    int                                               `json:"total_word_count"`
	IssuesFound       []Issue                                           `json:"issues_found"`
	Statistics        *orderedmap.OrderedMap[string, *StatisticsRecord] `json:"statistics"`
	ConsistencyChecks *orderedmap.OrderedMap[string, ConsistencyCheck]  `json:"consistency_checks"`
	ConfidenceScores  *orderedmap.OrderedMap[string, Score]             `json:"confidence_scores"`
}

// NewAccumulator creates an empty accumulator with initialized collections
func NewAccumulator() *Accumulator {
	return &Accumulator{
		IssuesFound:       []Issue{},
		Statistics:        orderedmap.New[string, *StatisticsRecord](),
		ConsistencyChecks: orderedmap.New[string, ConsistencyCheck](),
		ConfidenceScores:  orderedmap.New[string, Score](),
	}
}

// AddIssue appends a finding
func (a *Accumulator) AddIssue(file string, t IssueType, message string) {
	a.IssuesFound = append(a.IssuesFound, Issue{File: file, Type: t, Message: message})
}

// RecordDocument counts a visited document and its words
func (a *Accumulator) RecordDocument(words int) {
	a.FilesChecked++
	a.TotalWordCount += words
}

// SetStatistics stores the statistics extracted from the README at path
func (a *Accumulator) SetStatistics(path string, record *StatisticsRecord) {
	a.Statistics.Set(path, record)
}

// WordCountClaims returns the word_count values extracted for path, if any
func (a *Accumulator) WordCountClaims(path string) []int {
	record, ok := a.Statistics.Get(path)
	if !ok || record == nil {
		return nil
	}
	values, _ := record.Get(StatWordCount)
	return values
}

// SetConsistencyCheck stores a named cross-document audit result
func (a *Accumulator) SetConsistencyCheck(name string, check ConsistencyCheck) {
	if check.Files == nil {
		check.Files = []string{}
	}
	a.ConsistencyChecks.Set(name, check)
}

// Finalize pins the confidence scores. It may only be called once per run.
func (a *Accumulator) Finalize(scores Scores) error {
	if a.ConfidenceScores.Len() > 0 {
		return ErrScoresFinalized
	}
	a.ConfidenceScores.Set(AspectOverall, scores.Overall)
	a.ConfidenceScores.Set(AspectContentCompleteness, scores.ContentCompleteness)
	a.ConfidenceScores.Set(AspectStructureConsistency, scores.StructureConsistency)
	a.ConfidenceScores.Set(AspectCrossFileConsistency, scores.CrossFileConsistency)
	return nil
}

// Score returns the confidence score for aspect, or 0 if not finalized
func (a *Accumulator) Score(aspect string) Score {
	s, _ := a.ConfidenceScores.Get(aspect)
	return s
}
