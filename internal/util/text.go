package util

import (
	"regexp"
	"sort"
	"strings"
)

var (
	reSlugStrip    = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	reSlugCollapse = regexp.MustCompile(`[\s_-]+`)
	reSpaces       = regexp.MustCompile(`\s+`)
)

// Slugify derives a stable identifier from a display name: lowercase, strip
// everything outside word/space/hyphen characters, collapse runs of
// whitespace, underscores and hyphens to a single hyphen, trim hyphens.
func Slugify(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = reSlugStrip.ReplaceAllString(s, "")
	s = reSlugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizeText folds a free-text string for matching: lowercase with
// single spaces, hyphens treated as spaces.
func NormalizeText(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.ReplaceAll(s, "-", " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func Tokenize(input string) []string {
	norm := NormalizeText(input)
	if norm == "" {
		return nil
	}
	parts := strings.Split(norm, " ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if len([]rune(p)) >= 2 {
			out = append(out, p)
		}
	}
	return out
}

// DiceCoefficient scores bigram similarity of two strings in [0,1].
func DiceCoefficient(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	pairs := func(s string) []string {
		r := []rune(s)
		if len(r) < 2 {
			return nil
		}
		out := make([]string, 0, len(r)-1)
		for i := 0; i < len(r)-1; i++ {
			out = append(out, string(r[i:i+2]))
		}
		return out
	}

	aPairs := pairs(a)
	bPairs := pairs(b)
	if len(aPairs) == 0 || len(bPairs) == 0 {
		return 0
	}

	bCount := map[string]int{}
	for _, p := range bPairs {
		bCount[p]++
	}
	inter := 0
	for _, p := range aPairs {
		if bCount[p] > 0 {
			inter++
			bCount[p]--
		}
	}

	return float64(2*inter) / float64(len(aPairs)+len(bPairs))
}

// UniqueSorted trims the inputs, drops empties, removes duplicates and
// returns the rest in sorted order.
func UniqueSorted(values []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
