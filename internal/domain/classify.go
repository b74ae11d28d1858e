package domain

import (
	"path"
	"strings"
)

// Profile is the validation regime selected for a document
type Profile int

const (
	ProfileNone Profile = iota
	ProfileMasterStoryteller
	ProfileReadmeIndex
	ProfileResearchModule
)

func (p Profile) String() string {
	switch p {
	case ProfileMasterStoryteller:
		return "master_storyteller"
	case ProfileReadmeIndex:
		return "readme_index"
	case ProfileResearchModule:
		return "research_module"
	default:
		return "none"
	}
}

// Classify selects the profile for a slash-separated relative path.
// The first matching rule wins: storyteller segment, README name, module prefix.
func Classify(relPath string, rules *Rules) Profile {
	for _, segment := range strings.Split(relPath, "/") {
		if segment == rules.ProfileSegment {
			return ProfileMasterStoryteller
		}
	}

	name := path.Base(relPath)
	if name == rules.ReadmeName {
		return ProfileReadmeIndex
	}

	for _, prefix := range rules.ModulePrefixes {
		if strings.HasPrefix(name, prefix) {
			return ProfileResearchModule
		}
	}

	return ProfileNone
}
