package usecase

import (
	"strings"

	"github.com/yourusername/quotation-ai-bot/internal/domain/entity"
)

// fuzzyCutoff is the minimum normalized similarity a fuzzy candidate
// needs before we accept it. Customer input is casual prose, so exact
// matching alone misses real traffic; 0.7 tolerates a one or two
// character misspelling without pulling in unrelated words.
const fuzzyCutoff = 0.7

// ResolveKey maps noisy customer text to a canonical catalog key.
// Three tiers, first hit wins:
//  1. the key appears inside the text, or the text inside the key
//  2. the same containment test against every alias
//  3. fuzzy match of the whole trimmed input against keys and
//     aliases, mapping a winning alias back to its owning key
func ResolveKey(text string, entries []entity.AliasEntry) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return "", false
	}

	for _, e := range entries {
		if strings.Contains(needle, e.Key) || strings.Contains(e.Key, needle) {
			return e.Key, true
		}
	}

	for _, e := range entries {
		for _, alias := range e.Aliases {
			if strings.Contains(needle, alias) || strings.Contains(alias, needle) {
				return e.Key, true
			}
		}
	}

	return fuzzyResolve(needle, entries)
}

// fuzzyResolve compares the whole trimmed input against every key and
// alias and keeps the best candidate at or above the cutoff. Only the
// whole input is compared: matching individual words would put common
// English words within the cutoff of catalog keys ("need" is one edit
// from "neem"). In-sentence typos still resolve through the
// containment tiers.
func fuzzyResolve(needle string, entries []entity.AliasEntry) (string, bool) {
	if len(needle) < 3 {
		return "", false
	}

	bestKey := ""
	bestScore := 0.0
	for _, e := range entries {
		if score := similarity(needle, e.Key); score >= fuzzyCutoff && score > bestScore {
			bestKey, bestScore = e.Key, score
		}
		for _, alias := range e.Aliases {
			if score := similarity(needle, alias); score >= fuzzyCutoff && score > bestScore {
				bestKey, bestScore = e.Key, score
			}
		}
	}

	return bestKey, bestKey != ""
}

// similarity is a normalized edit-distance ratio in [0, 1]:
// 1 means identical, 0 means nothing in common.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	return 1 - float64(editDistance(a, b))/float64(longest)
}

// editDistance is the classic Levenshtein distance with a two-row table.
func editDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
