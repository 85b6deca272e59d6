package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/samuelurones28/Proyecto/models"
	"github.com/samuelurones28/Proyecto/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func planRoutine() models.Routine {
	return models.Routine{
		Titulo: "Torso A",
		Source: models.RoutineFromPlan,
		Ejercicios: []models.ExerciseSpec{
			{Nombre: "Press Banca", Series: 3},
			{Nombre: "Remo con Barra", Series: 3},
		},
	}
}

func TestWorkoutService_SingleActiveSession(t *testing.T) {
	repos := newTestRepos(t)
	clock := newFakeClock("2025-01-06T18:00:00Z")
	svc := NewWorkoutService(repository.NewSessionRepository(), repos.series, NewCalendarService(repos.calendar, repos.series), clock)

	first, err := svc.Start("u1", planRoutine(), false)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	existing, err := svc.Start("u1", models.Routine{Titulo: "Brazos", Ejercicios: []models.ExerciseSpec{{Nombre: "Curl Martillo"}}}, false)
	assert.ErrorIs(t, err, models.ErrSessionActive)
	assert.Equal(t, first.ID, existing.ID)

	second, err := svc.Start("u1", models.Routine{Titulo: "Brazos", Ejercicios: []models.ExerciseSpec{{Nombre: "Curl Martillo"}}}, true)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, models.RoutineCustom, second.Routine.Source)

	current, err := svc.Current("u1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)

	_, err = svc.Current("u2")
	assert.ErrorIs(t, err, models.ErrNoActiveSession)

	require.NoError(t, svc.Discard("u1"))
	assert.ErrorIs(t, svc.Discard("u1"), models.ErrNoActiveSession)

	_, err = svc.Start("u1", models.Routine{Titulo: "Vacía"}, false)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestWorkoutService_Finish(t *testing.T) {
	t.Run("plan routine saves series and marks the day completed", func(t *testing.T) {
		repos := newTestRepos(t)
		clock := newFakeClock("2025-01-06T18:00:00Z")
		svc := NewWorkoutService(repository.NewSessionRepository(), repos.series, NewCalendarService(repos.calendar, repos.series), clock)

		_, err := svc.Start("u1", planRoutine(), false)
		require.NoError(t, err)
		_, err = svc.LogSets("u1", "Press Banca", []models.SetEntry{{Kg: 80, Reps: 8}, {Kg: 80, Reps: 7}, {}})
		require.NoError(t, err)
		_, err = svc.LogSets("u1", "Remo con Barra", []models.SetEntry{{Kg: 70, Reps: 10}})
		require.NoError(t, err)

		clock.Advance(47 * time.Minute)
		summary, err := svc.Finish("u1", true)
		require.NoError(t, err)
		assert.Equal(t, 3, summary.SetsSaved)
		assert.True(t, summary.MarkedTrained)
		assert.Equal(t, "2025-01-06", summary.Fecha)
		assert.Equal(t, 47*time.Minute, summary.Duration)

		logs, err := repos.series.ListForExercise("u1", "Press Banca")
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.ElementsMatch(t, []int{1, 2}, []int{logs[0].SerieIndex, logs[1].SerieIndex})

		action, err := repos.calendar.GetByDate("u1", "2025-01-06")
		require.NoError(t, err)
		require.NotNil(t, action)
		assert.Equal(t, models.CalendarCompleted, action.Estado)
		assert.Equal(t, "Torso A", action.Nota)

		_, err = svc.Current("u1")
		assert.ErrorIs(t, err, models.ErrNoActiveSession)
	})

	t.Run("custom routine does not mark the calendar", func(t *testing.T) {
		repos := newTestRepos(t)
		svc := NewWorkoutService(repository.NewSessionRepository(), repos.series, NewCalendarService(repos.calendar, repos.series), newFakeClock("2025-01-06T18:00:00Z"))

		_, err := svc.Start("u1", models.Routine{Titulo: "Brazos", Source: models.RoutineCustom, Ejercicios: []models.ExerciseSpec{{Nombre: "Curl Martillo"}}}, false)
		require.NoError(t, err)
		_, err = svc.LogSets("u1", "Curl Martillo", []models.SetEntry{{Kg: 14, Reps: 12}})
		require.NoError(t, err)

		summary, err := svc.Finish("u1", true)
		require.NoError(t, err)
		assert.False(t, summary.MarkedTrained)
		assert.Equal(t, 1, summary.SetsSaved)

		action, err := repos.calendar.GetByDate("u1", "2025-01-06")
		require.NoError(t, err)
		assert.Nil(t, action)
	})

	t.Run("finish without saving writes nothing", func(t *testing.T) {
		series := new(MockSeriesRepository)
		calendar := new(MockCalendarRepository)
		svc := NewWorkoutService(repository.NewSessionRepository(), series, NewCalendarService(calendar, series), newFakeClock("2025-01-06T18:00:00Z"))

		_, err := svc.Start("u1", planRoutine(), false)
		require.NoError(t, err)
		_, err = svc.LogSets("u1", "Press Banca", []models.SetEntry{{Kg: 80, Reps: 8}})
		require.NoError(t, err)

		summary, err := svc.Finish("u1", false)
		require.NoError(t, err)
		assert.Zero(t, summary.SetsSaved)
		series.AssertNotCalled(t, "CreateBatch", mock.Anything)
		calendar.AssertNotCalled(t, "Upsert", mock.Anything)
	})

	t.Run("persistence failure keeps the session", func(t *testing.T) {
		series := new(MockSeriesRepository)
		series.On("CreateBatch", mock.Anything).Return(errors.New("db down")).Once()
		calendar := new(MockCalendarRepository)
		svc := NewWorkoutService(repository.NewSessionRepository(), series, NewCalendarService(calendar, series), newFakeClock("2025-01-06T18:00:00Z"))

		_, err := svc.Start("u1", planRoutine(), false)
		require.NoError(t, err)
		_, err = svc.LogSets("u1", "Press Banca", []models.SetEntry{{Kg: 80, Reps: 8}})
		require.NoError(t, err)

		_, err = svc.Finish("u1", true)
		assert.ErrorIs(t, err, models.ErrPersistence)
		_, err = svc.Current("u1")
		assert.NoError(t, err)
		series.AssertExpectations(t)
	})

	t.Run("calendar failure rolls back series so a retry saves them once", func(t *testing.T) {
		repos := newTestRepos(t)
		calendar := new(MockCalendarRepository)
		calendar.On("Upsert", mock.Anything).Return(errors.New("db down")).Once()
		calendar.On("Upsert", mock.Anything).Return(nil).Once()
		svc := NewWorkoutService(repository.NewSessionRepository(), repos.series, NewCalendarService(calendar, repos.series), newFakeClock("2025-01-06T18:00:00Z"))

		_, err := svc.Start("u1", planRoutine(), false)
		require.NoError(t, err)
		_, err = svc.LogSets("u1", "Press Banca", []models.SetEntry{{Kg: 80, Reps: 8}, {Kg: 80, Reps: 7}})
		require.NoError(t, err)

		_, err = svc.Finish("u1", true)
		assert.ErrorIs(t, err, models.ErrPersistence)
		logs, err := repos.series.ListForExercise("u1", "Press Banca")
		require.NoError(t, err)
		assert.Empty(t, logs)
		_, err = svc.Current("u1")
		require.NoError(t, err, "session is kept for a retry")

		summary, err := svc.Finish("u1", true)
		require.NoError(t, err)
		assert.Equal(t, 2, summary.SetsSaved)
		assert.True(t, summary.MarkedTrained)
		logs, err = repos.series.ListForExercise("u1", "Press Banca")
		require.NoError(t, err)
		assert.Len(t, logs, 2)
		calendar.AssertExpectations(t)
	})

	t.Run("invalid reps are rejected", func(t *testing.T) {
		svc := NewWorkoutService(repository.NewSessionRepository(), nil, nil, newFakeClock("2025-01-06T18:00:00Z"))
		_, err := svc.Start("u1", planRoutine(), false)
		require.NoError(t, err)
		_, err = svc.LogSets("u1", "Press Banca", []models.SetEntry{{Kg: 80, Reps: 900}})
		assert.ErrorIs(t, err, models.ErrValidation)
		_, err = svc.LogSets("u2", "Press Banca", nil)
		assert.ErrorIs(t, err, models.ErrNoActiveSession)
	})
}

func TestWorkoutService_ConcurrentLogSets(t *testing.T) {
	svc := NewWorkoutService(repository.NewSessionRepository(), nil, nil, newFakeClock("2025-01-06T18:00:00Z"))
	_, err := svc.Start("u1", planRoutine(), false)
	require.NoError(t, err)

	names := []string{"Press Banca", "Remo con Barra", "Curl Martillo", "Dominadas", "Sentadilla", "Peso Muerto"}
	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_, err := svc.LogSets("u1", name, []models.SetEntry{{Kg: 50, Reps: 10}})
			assert.NoError(t, err)
		}(name)
	}
	wg.Wait()

	session, err := svc.Current("u1")
	require.NoError(t, err)
	for _, name := range names {
		assert.Len(t, session.Sets[name], 1, name)
	}
}

func TestCalendarService_ClearAction(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewCalendarService(repos.calendar, repos.series)

	require.NoError(t, svc.RecordCompleted("u1", day("2025-01-06"), "Torso"))
	require.NoError(t, repos.series.CreateBatch([]*models.SeriesLog{{UserID: "u1", Fecha: "2025-01-06", Ejercicio: "Press Banca", SerieIndex: 1, Kg: 80, Reps: 8}}))
	require.NoError(t, repos.calendar.Upsert(&models.CalendarAction{UserID: "u1", Fecha: "2025-01-07", Estado: models.CalendarForcedRest}))
	require.NoError(t, repos.series.CreateBatch([]*models.SeriesLog{{UserID: "u1", Fecha: "2025-01-07", Ejercicio: "Sentadilla", SerieIndex: 1, Kg: 100, Reps: 5}}))

	cleared, err := svc.ClearAction("u1", "2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, models.CalendarCompleted, cleared.Estado)
	logs, err := repos.series.ListForExercise("u1", "Press Banca")
	require.NoError(t, err)
	assert.Empty(t, logs, "clearing a completed day drops its series")

	_, err = svc.ClearAction("u1", "2025-01-07")
	require.NoError(t, err)
	logs, err = repos.series.ListForExercise("u1", "Sentadilla")
	require.NoError(t, err)
	assert.Len(t, logs, 1, "clearing forced rest keeps series")

	_, err = svc.ClearAction("u1", "2025-01-07")
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = svc.ClearAction("u1", "ayer")
	assert.ErrorIs(t, err, models.ErrValidation)

	actions, err := svc.ListActions("u1", "", "")
	require.NoError(t, err)
	assert.Empty(t, actions)
}
