package ingredient

import (
	"Cucina-Backend/domain"
	"Cucina-Backend/entities"
	"strings"
)

type matchResult struct {
	kind  string // domain.MatchNew, domain.MatchUpdate or domain.MatchSimilar
	entry *entities.Ingredient
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// levenshtein computes the unit-cost edit distance between two strings,
// operating on runes so multibyte characters count as single edits.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			deletion := prev[j] + 1
			insertion := curr[j-1] + 1
			substitution := prev[j-1] + cost

			min := deletion
			if insertion < min {
				min = insertion
			}
			if substitution < min {
				min = substitution
			}
			curr[j] = min
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// similarityThreshold scales with name length so short names are not
// over-matched while longer names tolerate more typos.
func similarityThreshold(a, b string) int {
	la := len([]rune(a))
	lb := len([]rune(b))
	shorter := la
	if lb < la {
		shorter = lb
	}

	threshold := int(float64(shorter) * 0.35)
	if threshold < 2 {
		threshold = 2
	}
	return threshold
}

// classifyName matches an incoming name against the catalog snapshot. An
// exact match (case-insensitive, trimmed) short-circuits to an update;
// otherwise the closest candidate within threshold becomes a similar
// suggestion. Ties keep the first candidate in catalog order, which the
// repository keeps stable by sorting on id.
func classifyName(name string, catalog []*entities.Ingredient) matchResult {
	normalized := normalizeName(name)

	for _, entry := range catalog {
		if normalizeName(entry.Name) == normalized {
			return matchResult{kind: domain.MatchUpdate, entry: entry}
		}
	}

	var best *entities.Ingredient
	bestDistance := 0
	for _, entry := range catalog {
		candidate := normalizeName(entry.Name)
		distance := levenshtein(normalized, candidate)
		if distance > similarityThreshold(normalized, candidate) {
			continue
		}
		if best == nil || distance < bestDistance {
			best = entry
			bestDistance = distance
		}
	}

	if best != nil {
		return matchResult{kind: domain.MatchSimilar, entry: best}
	}
	return matchResult{kind: domain.MatchNew}
}
