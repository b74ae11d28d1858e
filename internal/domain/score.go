package domain

// Scores holds the four confidence aspects of a run
type Scores struct {
	Overall              Score
	ContentCompleteness  Score
	StructureConsistency Score
	CrossFileConsistency Score
}

// ComputeScores derives the confidence scores from the accumulated issues and
// word volume. expectedWords is the corpus size considered complete.
func ComputeScores(issues []Issue, totalWords, expectedWords int) Scores {
	total := len(issues)

	structural := 0
	for _, issue := range issues {
		if issue.Type == IssueMissingSections || issue.Type == IssueInsufficientAcademicStructure {
			structural++
		}
	}

	content := 0.0
	if expectedWords > 0 {
		content = min(100, float64(totalWords)/float64(expectedWords)*100)
	}

	crossFile := 80.0
	if total < 3 {
		crossFile = 95.0
	}

	return Scores{
		Overall:              RoundScore(float64(max(0, 100-5*total))),
		ContentCompleteness:  RoundScore(content),
		StructureConsistency: RoundScore(float64(max(0, 100-10*structural))),
		CrossFileConsistency: RoundScore(crossFile),
	}
}

// Light is the traffic-light band of a score
type Light int

const (
	LightRed Light = iota
	LightYellow
	LightGreen
)

// LightFor returns green at 90 and above, yellow at 70 and above, red otherwise
func LightFor(s Score) Light {
	switch {
	case s >= 90:
		return LightGreen
	case s >= 70:
		return LightYellow
	default:
		return LightRed
	}
}

// Health is the recommendation band chosen from the overall score
type Health int

const (
	HealthNeedsAttention Health = iota
	HealthGood
	HealthExcellent
)

// HealthFor returns excellent at 95 and above, good at 85 and above
func HealthFor(overall Score) Health {
	switch {
	case overall >= 95:
		return HealthExcellent
	case overall >= 85:
		return HealthGood
	default:
		return HealthNeedsAttention
	}
}
