package utils

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PlaceholderExerciseName replaces empty exercise names so lookups always key on a non-empty string.
const PlaceholderExerciseName = "Ejercicio"

// Default matching thresholds, overridable through config.
const (
	DefaultDiceThreshold    = 0.65
	DefaultContainmentRatio = 0.7
)

// connectors stay lower-case unless they start the name.
var connectors = map[string]bool{
	"de": true, "del": true, "con": true, "a": true, "la": true,
	"el": true, "en": true, "y": true, "e": true, "al": true,
}

const trailingPunctuation = ".,;:!?"

// NormalizeName cleans an exercise name into its display form: trimmed, single-spaced,
// trailing punctuation removed and title-cased with Spanish connectors left lower-case.
func NormalizeName(name string) string {
	cleaned := strings.Join(strings.Fields(name), " ")
	cleaned = strings.ToLower(strings.TrimRight(cleaned, trailingPunctuation+" "))
	if cleaned == "" {
		return PlaceholderExerciseName
	}

	// Casers are stateful, so each call gets its own.
	title := cases.Title(language.Spanish, cases.NoLower)
	words := strings.Split(cleaned, " ")
	for i, w := range words {
		if i > 0 && connectors[w] {
			continue
		}
		words[i] = title.String(w)
	}
	return strings.Join(words, " ")
}

// bigrams returns the rune bigrams of s with their multiplicity.
func bigrams(s string) (map[string]int, int) {
	runes := []rune(s)
	if len(runes) < 2 {
		return nil, 0
	}
	out := make(map[string]int, len(runes)-1)
	for i := 0; i < len(runes)-1; i++ {
		out[string(runes[i:i+2])]++
	}
	return out, len(runes) - 1
}

// DiceCoefficient is the Sørensen-Dice similarity of the character bigrams of a and b.
func DiceCoefficient(a, b string) float64 {
	ba, na := bigrams(a)
	bb, nb := bigrams(b)
	if na == 0 && nb == 0 {
		if a == b {
			return 1
		}
		return 0
	}
	if na == 0 || nb == 0 {
		return 0
	}
	shared := 0
	for bg, ca := range ba {
		if cb, ok := bb[bg]; ok {
			shared += min(ca, cb)
		}
	}
	return 2 * float64(shared) / float64(na+nb)
}

// Matcher maps names onto a catalog of canonical exercise names.
type Matcher struct {
	DiceThreshold    float64
	ContainmentRatio float64
}

// NewMatcher builds a Matcher, falling back to the default thresholds for non-positive values.
func NewMatcher(diceThreshold, containmentRatio float64) *Matcher {
	if diceThreshold <= 0 {
		diceThreshold = DefaultDiceThreshold
	}
	if containmentRatio <= 0 {
		containmentRatio = DefaultContainmentRatio
	}
	return &Matcher{DiceThreshold: diceThreshold, ContainmentRatio: containmentRatio}
}

func matchKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Match returns the canonical catalog spelling for name, or false when nothing clears the thresholds.
// Exact matches win, then containment above the length ratio, then the best Dice score.
func (m *Matcher) Match(name string, catalog []string) (string, bool) {
	if len(catalog) == 0 {
		return "", false
	}
	target := matchKey(NormalizeName(name))
	keys := make([]string, len(catalog))
	for i, entry := range catalog {
		keys[i] = matchKey(entry)
		if keys[i] == target {
			return entry, true
		}
	}

	targetLen := utf8.RuneCountInString(target)
	for i, key := range keys {
		if key == "" || !(strings.Contains(target, key) || strings.Contains(key, target)) {
			continue
		}
		keyLen := utf8.RuneCountInString(key)
		ratio := float64(min(targetLen, keyLen)) / float64(max(targetLen, keyLen))
		if ratio >= m.ContainmentRatio {
			return catalog[i], true
		}
	}

	best, bestScore := -1, 0.0
	for i, key := range keys {
		if score := DiceCoefficient(target, key); score > bestScore {
			best, bestScore = i, score
		}
	}
	if best >= 0 && bestScore >= m.DiceThreshold {
		return catalog[best], true
	}
	return "", false
}

// Normalize returns the catalog spelling for name when one matches, otherwise its normalized display form.
func (m *Matcher) Normalize(name string, catalog []string) string {
	normalized := NormalizeName(name)
	if canonical, ok := m.Match(normalized, catalog); ok {
		return canonical
	}
	return normalized
}
