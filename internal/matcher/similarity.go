package matcher

import (
	"math"
	"strings"
	"unicode"
)

// Common English words that carry no signal for matching.
var stopWords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true, "all": true,
	"also": true, "am": true, "an": true, "and": true, "any": true, "are": true,
	"as": true, "at": true, "be": true, "been": true, "before": true, "being": true,
	"between": true, "both": true, "but": true, "by": true, "can": true, "could": true,
	"did": true, "do": true, "does": true, "doing": true, "during": true, "each": true,
	"etc": true, "few": true, "for": true, "from": true, "further": true, "had": true,
	"has": true, "have": true, "having": true, "he": true, "her": true, "here": true,
	"hers": true, "him": true, "his": true, "how": true, "i": true, "if": true,
	"in": true, "into": true, "is": true, "it": true, "its": true, "just": true,
	"me": true, "more": true, "most": true, "my": true, "no": true, "nor": true,
	"not": true, "of": true, "off": true, "on": true, "once": true, "only": true,
	"or": true, "other": true, "our": true, "ours": true, "out": true, "over": true,
	"own": true, "same": true, "she": true, "should": true, "so": true, "some": true,
	"such": true, "than": true, "that": true, "the": true, "their": true, "them": true,
	"then": true, "there": true, "these": true, "they": true, "this": true, "those": true,
	"through": true, "to": true, "too": true, "under": true, "until": true, "up": true,
	"very": true, "was": true, "we": true, "were": true, "what": true, "when": true,
	"where": true, "which": true, "while": true, "who": true, "whom": true, "why": true,
	"will": true, "with": true, "would": true, "you": true, "your": true, "yours": true,
}

// TextSimilarity is the cosine similarity of the tf-idf vectors of a and b,
// with idf computed over just these two documents. Returns 0.0 when either
// text has no usable terms.
func TextSimilarity(a, b string) float64 {
	docA := termCounts(a)
	docB := termCounts(b)
	if len(docA) == 0 || len(docB) == 0 {
		return 0.0
	}

	vecA := weigh(docA, docB)
	vecB := weigh(docB, docA)

	dot := 0.0
	for term, wa := range vecA {
		dot += wa * vecB[term]
	}
	sim := dot / (norm2(vecA) * norm2(vecB))
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0.0
	}
	return clamp01(sim)
}

// termCounts tokenizes on non-alphanumerics and drops single characters and stop words.
func termCounts(text string) map[string]int {
	counts := make(map[string]int)
	tokens := strings.FieldsFunc(NormalizeTerm(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, token := range tokens {
		if len([]rune(token)) < 2 || stopWords[token] {
			continue
		}
		counts[token]++
	}
	return counts
}

// weigh applies smoothed idf for a two-document corpus: a term present in
// both documents gets idf 1, a term unique to one gets 1+ln(3/2).
func weigh(doc, other map[string]int) map[string]float64 {
	const n = 2.0
	vec := make(map[string]float64, len(doc))
	for term, tf := range doc {
		df := 1.0
		if other[term] > 0 {
			df = 2.0
		}
		idf := math.Log((1+n)/(1+df)) + 1
		vec[term] = float64(tf) * idf
	}
	return vec
}

func norm2(vec map[string]float64) float64 {
	sum := 0.0
	for _, w := range vec {
		sum += w * w
	}
	return math.Sqrt(sum)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
