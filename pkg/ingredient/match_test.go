package ingredient

import (
	"Cucina-Backend/domain"
	"Cucina-Backend/entities"
	"testing"
)

func TestLevenshteinIdentity(t *testing.T) {
	for _, s := range []string{"", "a", "pomodoro", "crème fraîche", "日本語"} {
		if d := levenshtein(s, s); d != 0 {
			t.Errorf("levenshtein(%q, %q) = %d, want 0", s, s, d)
		}
	}
}

func TestLevenshteinSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"pomodoro", "pomodori"},
		{"", "basilico"},
		{"crème", "creme"},
	}
	for _, pair := range pairs {
		ab := levenshtein(pair[0], pair[1])
		ba := levenshtein(pair[1], pair[0])
		if ab != ba {
			t.Errorf("levenshtein(%q, %q) = %d but reversed = %d", pair[0], pair[1], ab, ba)
		}
	}
}

func TestLevenshteinEmptyString(t *testing.T) {
	// Distance from the empty string is the rune count, not the byte count.
	cases := map[string]int{
		"basilico": 8,
		"crème":    5,
		"日本語":      3,
	}
	for s, want := range cases {
		if d := levenshtein("", s); d != want {
			t.Errorf("levenshtein(\"\", %q) = %d, want %d", s, d, want)
		}
	}
}

func TestLevenshteinKnownDistances(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"pomodoro", "pomodori", 1},
		{"flaw", "lawn", 2},
		{"crème", "creme", 1},
	}
	for _, tc := range cases {
		if d := levenshtein(tc.a, tc.b); d != tc.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, d, tc.want)
		}
	}
}

func TestClassifyExactMatchShortCircuits(t *testing.T) {
	pomodoro := &entities.Ingredient{Name: "Pomodoro"}
	pomodori := &entities.Ingredient{Name: "Pomodori"}
	catalog := []*entities.Ingredient{pomodori, pomodoro}

	// Case and surrounding whitespace are ignored; the near-duplicate
	// earlier in the catalog must not demote the exact match to similar.
	result := classifyName("  POMODORO ", catalog)
	if result.kind != domain.MatchUpdate {
		t.Fatalf("classifyName returned %q, want %q", result.kind, domain.MatchUpdate)
	}
	if result.entry != pomodoro {
		t.Errorf("classifyName matched %q, want %q", result.entry.Name, pomodoro.Name)
	}
}

func TestClassifyNewWhenNothingClose(t *testing.T) {
	catalog := []*entities.Ingredient{
		{Name: "Pomodoro"},
		{Name: "Basilico"},
	}
	result := classifyName("Zafferano", catalog)
	if result.kind != domain.MatchNew {
		t.Errorf("classifyName returned %q, want %q", result.kind, domain.MatchNew)
	}
}

func TestClassifyThresholdBoundary(t *testing.T) {
	// Two 4-character names: threshold = max(2, floor(4*0.35)) = 2.
	catalog := []*entities.Ingredient{{Name: "abcd"}}

	if result := classifyName("abzz", catalog); result.kind != domain.MatchSimilar {
		t.Errorf("distance-2 pair classified %q, want %q", result.kind, domain.MatchSimilar)
	}
	if result := classifyName("azzz", catalog); result.kind != domain.MatchNew {
		t.Errorf("distance-3 pair classified %q, want %q", result.kind, domain.MatchNew)
	}
}

func TestClassifySimilarPicksSmallestDistance(t *testing.T) {
	far := &entities.Ingredient{Name: "pomidori"}
	near := &entities.Ingredient{Name: "pomodori"}
	catalog := []*entities.Ingredient{far, near}

	result := classifyName("pomodoro", catalog)
	if result.kind != domain.MatchSimilar {
		t.Fatalf("classifyName returned %q, want %q", result.kind, domain.MatchSimilar)
	}
	if result.entry != near {
		t.Errorf("classifyName picked %q, want closer %q", result.entry.Name, near.Name)
	}
}

func TestClassifyTieKeepsFirstInCatalogOrder(t *testing.T) {
	first := &entities.Ingredient{Name: "abce"}
	second := &entities.Ingredient{Name: "abcf"}
	catalog := []*entities.Ingredient{first, second}

	// Both candidates are distance 1 from the incoming name; catalog order
	// (id-sorted by the repository) breaks the tie.
	result := classifyName("abcd", catalog)
	if result.kind != domain.MatchSimilar {
		t.Fatalf("classifyName returned %q, want %q", result.kind, domain.MatchSimilar)
	}
	if result.entry != first {
		t.Errorf("tie resolved to %q, want first candidate %q", result.entry.Name, first.Name)
	}
}
