package services

import (
	"fmt"
	"testing"

	"github.com/samuelurones28/Proyecto/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateOneRepMax(t *testing.T) {
	assert.Equal(t, 101, EstimateOneRepMax(80, 8))
	assert.Equal(t, 103, EstimateOneRepMax(100, 1))
	assert.Equal(t, 0, EstimateOneRepMax(0, 10))
	assert.Equal(t, 0, EstimateOneRepMax(60, 0))
}

func TestHistoryService(t *testing.T) {
	repos := newTestRepos(t)
	seedCatalog(t, repos.catalog, "Press Banca", "Sentadilla")
	svc := NewHistoryService(repos.series, repos.catalog, nil)

	var logs []*models.SeriesLog
	for i := 1; i <= 12; i++ {
		fecha := fmt.Sprintf("2025-01-%02d", i)
		logs = append(logs,
			&models.SeriesLog{UserID: "u1", Fecha: fecha, Ejercicio: "Press Banca", SerieIndex: 1, Kg: float64(60 + i), Reps: 6},
			&models.SeriesLog{UserID: "u1", Fecha: fecha, Ejercicio: "Press Banca", SerieIndex: 2, Kg: 50, Reps: 12},
		)
	}
	require.NoError(t, repos.series.CreateBatch(logs))

	t.Run("PreviousSeries returns the latest date's sets via the catalog name", func(t *testing.T) {
		prev, err := svc.PreviousSeries("u1", "press banca")
		require.NoError(t, err)
		require.Len(t, prev, 2)
		for _, l := range prev {
			assert.Equal(t, "2025-01-12", l.Fecha)
		}
	})

	t.Run("ExerciseStats", func(t *testing.T) {
		stats, err := svc.ExerciseStats("u1", "Press Banca")
		require.NoError(t, err)
		assert.Equal(t, "Press Banca", stats.Ejercicio)
		assert.Equal(t, 72.0, stats.PRKg)
		assert.Equal(t, 86, stats.Max1RM)
		require.Len(t, stats.Daily, StatsWindowDays)
		assert.Equal(t, "2025-01-03", stats.Daily[0].Fecha)
		assert.Equal(t, "2025-01-12", stats.Daily[9].Fecha)
		// 63x6 estimates 76, above the 50x12 back-off set at 70.
		assert.Equal(t, 76, stats.Daily[0].RM)
	})

	t.Run("unknown exercise has empty stats", func(t *testing.T) {
		stats, err := svc.ExerciseStats("u1", "Sentadilla")
		require.NoError(t, err)
		assert.Zero(t, stats.Max1RM)
		assert.Empty(t, stats.Daily)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		_, err := svc.PreviousSeries("u1", "  ")
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}
