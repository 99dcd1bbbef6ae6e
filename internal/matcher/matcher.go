package matcher

import (
	"slices"
	"strings"
	"unicode"
)

// Neutral scores used when a factor has nothing to judge.
const (
	neutralLocation   = 0.5
	neutralExperience = 0.7
	neutralJobType    = 0.7
	neutralSalary     = 0.7
)

var remoteKeywords = []string{"remote", "work from home", "anywhere", "online"}

// SkillMatch returns the share of required skills the subject has.
// Returns 0.0 when either side is empty.
func SkillMatch(subject, required []string) float64 {
	have := skillSet(subject)
	need := skillSet(required)
	if len(have) == 0 || len(need) == 0 {
		return 0.0
	}

	matched := 0
	for skill := range need {
		if have[skill] {
			matched++
		}
	}

	return float64(matched) / float64(len(need))
}

// MatchedSkills lists the required skills the subject has, in required order.
func MatchedSkills(subject, required []string) []string {
	have := skillSet(subject)
	matched := []string{}
	for _, skill := range NormalizeSkills(required) {
		if have[skill] {
			matched = append(matched, skill)
		}
	}
	return matched
}

func skillSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, skill := range NormalizeSkills(skills) {
		set[skill] = true
	}
	return set
}

// Location compares two location strings.
// Checked in order: missing side, exact match, shared token, remote target.
func Location(subject, target string) float64 {
	subjectLoc := NormalizeTerm(subject)
	targetLoc := NormalizeTerm(target)

	if subjectLoc == "" || targetLoc == "" {
		return neutralLocation
	}

	if subjectLoc == targetLoc {
		return 1.0
	}

	subjectTokens := make(map[string]bool)
	for _, token := range wordTokens(subjectLoc) {
		subjectTokens[token] = true
	}
	for _, token := range wordTokens(targetLoc) {
		if subjectTokens[token] {
			return 0.8
		}
	}

	for _, keyword := range remoteKeywords {
		if strings.Contains(targetLoc, keyword) {
			return 0.9
		}
	}

	return 0.2
}

// locationTokens splits on anything that is not a letter or digit so
// "Bangalore, India" and "bangalore" share a token.
func wordTokens(loc string) []string {
	return strings.FieldsFunc(loc, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// JobType scores a posting's job type against the subject's preferences.
func JobType(preferred []string, jobType string) float64 {
	prefs := NormalizeSkills(preferred)
	if len(prefs) == 0 {
		return neutralJobType
	}

	target := NormalizeTerm(jobType)
	for _, pref := range prefs {
		if pref == target {
			return 1.0
		}
	}

	// "full-time" is satisfied by anything with a "full" token. Whole
	// tokens only, so "on-site" does not match "contract".
	targetTokens := wordTokens(target)
	for _, pref := range prefs {
		keyword := leadingKeyword(pref)
		if keyword != "" && slices.Contains(targetTokens, keyword) {
			return 0.9
		}
	}

	return 0.3
}

func leadingKeyword(pref string) string {
	fields := wordTokens(pref)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
