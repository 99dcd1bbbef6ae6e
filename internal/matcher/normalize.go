package matcher

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/khrees2412/talentmatch/pkg/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// NormalizeTerm folds case, strips accents and collapses whitespace.
// "  Node.JS " and "node.js" normalize to the same term.
func NormalizeTerm(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// Transformers and casers carry state, so build them per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = cases.Fold().String(folded)
	return strings.Join(strings.Fields(folded), " ")
}

// NormalizeSkills normalizes every entry and removes blanks and duplicates,
// keeping first-seen order.
func NormalizeSkills(skills []string) []string {
	if len(skills) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		term := NormalizeTerm(skill)
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true
		out = append(out, term)
	}
	return out
}

// NormalizeProfile returns a copy of p with comparable skill sets,
// trimmed free text and a non-negative experience figure.
func NormalizeProfile(p models.Profile) models.Profile {
	p.Skills = NormalizeSkills(p.Skills)
	p.PreferredJobTypes = NormalizeSkills(p.PreferredJobTypes)
	p.Location = collapseSpaces(p.Location)
	p.Bio = strings.TrimSpace(p.Bio)
	p.SalaryExpectation = strings.TrimSpace(p.SalaryExpectation)
	if p.ExperienceYears < 0 {
		p.ExperienceYears = 0
	}
	return p
}

// NormalizePosting is the Posting counterpart of NormalizeProfile.
func NormalizePosting(p models.Posting) models.Posting {
	p.SkillsRequired = NormalizeSkills(p.SkillsRequired)
	p.Location = collapseSpaces(p.Location)
	p.ExperienceLevel = NormalizeTerm(p.ExperienceLevel)
	p.Description = strings.TrimSpace(p.Description)
	p.JobType = NormalizeTerm(p.JobType)
	p.SalaryRange = strings.TrimSpace(p.SalaryRange)
	return p
}

// ParseYears extracts a whole number of years from strings such as
// "3", "5+ years" or "2.5 yrs". Fractions are truncated and negative
// amounts such as "-4" are rejected.
func ParseYears(s string) Option[int] {
	if strings.HasPrefix(strings.TrimSpace(s), "-") {
		return None[int]()
	}
	m := numberPattern.FindString(s)
	if m == "" {
		return None[int]()
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || f < 0 {
		return None[int]()
	}
	return Some(int(f))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
