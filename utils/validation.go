package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samuelurones28/Proyecto/models"
)

// Range is an inclusive numeric bound used by input validation.
type Range struct {
	Min, Max float64
	Label    string
	Unit     string
}

// Input ranges accepted from forms and the API.
var (
	WeightRange     = Range{20, 300, "weight", "kg"}
	BodyFatRange    = Range{3, 60, "body fat", "%"}
	MuscleRange     = Range{10, 100, "muscle mass", "kg"}
	AgeRange        = Range{13, 120, "age", "years"}
	HeightRange     = Range{100, 250, "height", "cm"}
	CaloriesRange   = Range{500, 10000, "calories", "kcal"}
	MacroRange      = Range{0, 1000, "macro", "g"}
	RepsRange       = Range{1, 500, "reps", ""}
	LiftWeightRange = Range{0, 500, "lift weight", "kg"}
)

// Check returns an ErrValidation-wrapped error when v falls outside r.
func (r Range) Check(v float64) error {
	if v < r.Min || v > r.Max {
		return fmt.Errorf("%w: %s must be between %g and %g %s", models.ErrValidation, r.Label, r.Min, r.Max, r.Unit)
	}
	return nil
}

// ParseDecimal parses user input that may use a decimal comma.
func ParseDecimal(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", models.ErrValidation, s)
	}
	return v, nil
}

// ValidateText trims s and checks it is non-empty and at most maxLen characters.
func ValidateText(s string, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("%w: field cannot be empty", models.ErrValidation)
	}
	if maxLen <= 0 {
		maxLen = 100
	}
	if utf8.RuneCountInString(trimmed) > maxLen {
		return "", fmt.Errorf("%w: at most %d characters", models.ErrValidation, maxLen)
	}
	return trimmed, nil
}

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// SanitizeISODate returns s when it is a real YYYY-MM-DD calendar date.
func SanitizeISODate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !isoDate.MatchString(s) {
		return "", false
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", false
	}
	return s, true
}

var searchUnsafe = regexp.MustCompile(`['"\\;%_]`)

// SanitizeSearchText strips LIKE wildcards and quoting characters from a search term.
func SanitizeSearchText(s string) string {
	cleaned := searchUnsafe.ReplaceAllString(strings.TrimSpace(s), "")
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if utf8.RuneCountInString(cleaned) > 100 {
		cleaned = string([]rune(cleaned)[:100])
	}
	return cleaned
}
