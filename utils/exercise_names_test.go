package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testCatalog = []string{
	"Press de Banca",
	"Sentadilla",
	"Remo con Barra Z",
	"Peso Muerto Rumano",
	"Dominadas",
}

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  press    de   banca.  ", "Press de Banca"},
		{"REMO CON BARRA", "Remo con Barra"},
		{"de pie: curl", "De Pie: Curl"},
		{"elevaciones laterales!!", "Elevaciones Laterales"},
		{"extensión de tríceps", "Extensión de Tríceps"},
		{"", PlaceholderExerciseName},
		{"   \t ", PlaceholderExerciseName},
		{"...", PlaceholderExerciseName},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeName(tc.in))
		})
	}
}

func TestDiceCoefficient(t *testing.T) {
	assert.Equal(t, 1.0, DiceCoefficient("sentadilla", "sentadilla"))
	assert.InDelta(t, 0.25, DiceCoefficient("night", "nacht"), 1e-9)
	assert.Equal(t, 0.0, DiceCoefficient("a", "press"))
	assert.Equal(t, 1.0, DiceCoefficient("", ""))
	assert.Equal(t, 0.0, DiceCoefficient("a", "b"))
	// Repeated bigrams count once per occurrence on each side.
	assert.InDelta(t, 0.5, DiceCoefficient("aaaa", "aa"), 1e-9)
}

func TestMatcher_Normalize(t *testing.T) {
	m := NewMatcher(0, 0)

	t.Run("exact match returns catalog spelling", func(t *testing.T) {
		assert.Equal(t, "Press de Banca", m.Normalize("PRESS DE BANCA", testCatalog))
		assert.Equal(t, "Remo con Barra Z", m.Normalize("remo con barra z", testCatalog))
	})

	t.Run("containment above ratio", func(t *testing.T) {
		assert.Equal(t, "Remo con Barra Z", m.Normalize("remo con barra", testCatalog))
	})

	t.Run("containment below ratio falls through", func(t *testing.T) {
		got, ok := m.Match("Sentadilla Frontal con Pausa", testCatalog)
		assert.False(t, ok)
		assert.Empty(t, got)
	})

	t.Run("dice similarity catches misspellings", func(t *testing.T) {
		assert.Equal(t, "Press de Banca", m.Normalize("press banca", testCatalog))
		assert.Equal(t, "Press de Banca", m.Normalize("Press de vanca", testCatalog))
	})

	t.Run("no false match keeps normalized input", func(t *testing.T) {
		assert.Equal(t, "Hip Thrust", m.Normalize("hip   thrust", testCatalog))
		assert.Equal(t, "Curl de Bíceps", m.Normalize("curl de bíceps", testCatalog))
	})

	t.Run("empty catalog only normalizes", func(t *testing.T) {
		assert.Equal(t, "Press de Banca", m.Normalize("press de banca", nil))
	})

	t.Run("empty name yields placeholder", func(t *testing.T) {
		assert.Equal(t, PlaceholderExerciseName, m.Normalize("  ", testCatalog))
	})
}

func TestMatcher_Thresholds(t *testing.T) {
	strict := NewMatcher(0.95, 0.99)
	assert.Equal(t, "Press Banca", strict.Normalize("press banca", testCatalog))
	assert.Equal(t, "Remo con Barra", strict.Normalize("remo con barra", testCatalog))

	loose := NewMatcher(0.3, 0.3)
	assert.Equal(t, "Sentadilla", loose.Normalize("sentadilla frontal", testCatalog))
}

func TestMatcher_Idempotent(t *testing.T) {
	m := NewMatcher(DefaultDiceThreshold, DefaultContainmentRatio)
	inputs := []string{
		"press banca", "  REMO con barra  ", "hip thrust.", "", "dominadas lastradas",
		"peso muerto", "Sentadilla búlgara", "a", "press de banca inclinado con mancuernas",
	}
	for _, in := range inputs {
		once := m.Normalize(in, testCatalog)
		assert.Equal(t, once, m.Normalize(once, testCatalog), "input %q", in)

		plain := NormalizeName(in)
		assert.Equal(t, plain, NormalizeName(plain), "input %q", in)
	}
}
