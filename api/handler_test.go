package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samuelurones28/Proyecto/config"
	"github.com/samuelurones28/Proyecto/database"
	"github.com/samuelurones28/Proyecto/middleware"
	"github.com/samuelurones28/Proyecto/models"
	"github.com/samuelurones28/Proyecto/repository"
	"github.com/samuelurones28/Proyecto/services"
	"github.com/samuelurones28/Proyecto/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

// MockLLMClient is a mock type for the LLMClient interface
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) Complete(ctx context.Context, systemPrompt string, history []models.ChatMessage, userMessage string) (string, error) {
	args := m.Called(ctx, systemPrompt, history, userMessage)
	return args.String(0), args.Error(1)
}

// MockFoodClient is a mock type for the FoodClient interface
type MockFoodClient struct {
	mock.Mock
}

func (m *MockFoodClient) LookupBarcode(ctx context.Context, barcode string) (*models.FoodProduct, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FoodProduct), args.Error(1)
}

type testServer struct {
	router    *gin.Engine
	llm       *MockLLMClient
	food      *MockFoodClient
	planRepo  repository.PlanRepository
	clock     *fixedClock
	calendars repository.CalendarRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := database.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	// 2025-01-06 is a Monday.
	clock := &fixedClock{now: time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)}
	llm := new(MockLLMClient)
	food := new(MockFoodClient)

	planRepo := repository.NewPlanRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	measurementRepo := repository.NewMeasurementRepository(db)
	seriesRepo := repository.NewSeriesRepository(db)
	mealRepo := repository.NewMealRepository(db)
	chatRepo := repository.NewChatRepository(db)
	matcher := utils.NewMatcher(utils.DefaultDiceThreshold, utils.DefaultContainmentRatio)

	catalog := services.NewCatalogService(catalogRepo)
	require.NoError(t, catalog.SeedDefaults())
	plans := services.NewPlanService(planRepo, calendarRepo, profileRepo)
	calendar := services.NewCalendarService(calendarRepo, seriesRepo)
	coach := services.NewCoachService(services.CoachDeps{
		ProfileRepo:  profileRepo,
		CalendarRepo: calendarRepo,
		CatalogRepo:  catalogRepo,
		ChatRepo:     chatRepo,
		Plans:        plans,
		Commands:     services.NewCommandService(planRepo, calendarRepo, catalogRepo, matcher, clock),
		LLM:          llm,
		Clock:        clock,
		HistoryLimit: 20,
	})

	h := NewAPIHandler(Services{
		Coach:        coach,
		Plans:        plans,
		Calendar:     calendar,
		Nutrition:    services.NewNutritionService(plans, profileRepo, measurementRepo, mealRepo, food),
		Measurements: services.NewMeasurementService(measurementRepo, clock),
		Profiles:     services.NewProfileService(profileRepo),
		Catalog:      catalog,
		Workouts:     services.NewWorkoutService(repository.NewSessionRepository(), seriesRepo, calendar, clock),
		History:      services.NewHistoryService(seriesRepo, catalogRepo, matcher),
		Timers:       services.NewTimerService(clock, services.NewLocalNotifier(nil), config.TimerConfig{DefaultRestSeconds: 60}),
		Clock:        clock,
	})
	r := gin.New()
	r.Use(middleware.Cors())
	RegisterRoutes(r, h)
	return &testServer{router: r, llm: llm, food: food, planRepo: planRepo, clock: clock, calendars: calendarRepo}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Details string          `json:"details"`
}

func (s *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.UserIDHeader, "u1")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestUserIDIsRequired(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodOptions, "/api/profile", nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestChatHandler(t *testing.T) {
	s := newTestServer(t)
	raw := "Hecho.\n@@JSON_START@@{\"accion\":\"BLOQUEAR_DIA\",\"datos\":{\"fecha\":\"2025-01-10\",\"motivo\":\"dolor\"}}@@JSON_END@@"
	s.llm.On("Complete", mock.Anything, mock.Anything, mock.Anything, "Bloquea el viernes").Return(raw, nil).Once()

	w, env := s.do(t, http.MethodPost, "/api/chat", gin.H{"message": "Bloquea el viernes"})
	require.Equal(t, http.StatusOK, w.Code)
	reply := decode[models.CoachReply](t, env.Data)
	assert.True(t, reply.CommandApplied)
	assert.NotContains(t, reply.Reply, "@@JSON_START@@")

	w, env = s.do(t, http.MethodGet, "/api/calendar?from=2025-01-06&to=2025-01-12", nil)
	require.Equal(t, http.StatusOK, w.Code)
	marks := decode[[]models.DayStatus](t, env.Data)
	require.Len(t, marks, 7)
	assert.Equal(t, models.DayForcedRest, marks[4].Kind)

	w, env = s.do(t, http.MethodGet, "/api/chat/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.ChatMessage](t, env.Data), 2)

	w, _ = s.do(t, http.MethodPost, "/api/chat", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	s.llm.AssertExpectations(t)
}

func TestPlanAndCalendarHandlers(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.planRepo.CreatePlan(&models.WeeklyPlan{UserID: "u1", Nombre: "Base", DatosSemana: datatypes.JSON(`{"lunes":{"titulo":"Torso","ejercicios":[{"nombre":"Press Banca","series":3}]}}`)}))

	w, env := s.do(t, http.MethodGet, "/api/plan/day", nil)
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[models.DayStatus](t, env.Data)
	assert.Equal(t, models.DayTraining, status.Kind)
	assert.Equal(t, "Torso", status.Entry.Titulo)

	w, env = s.do(t, http.MethodGet, "/api/plan/active?date=2025-01-07", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"lunes"`)

	w, env = s.do(t, http.MethodGet, "/api/plan/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.WeeklyPlan](t, env.Data), 1)

	w, env = s.do(t, http.MethodGet, "/api/plan/day?date=mañana", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, env.Error)

	require.NoError(t, s.calendars.Upsert(&models.CalendarAction{UserID: "u1", Fecha: "2025-01-06", Estado: models.CalendarForcedRest}))
	w, env = s.do(t, http.MethodGet, "/api/calendar/actions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.CalendarAction](t, env.Data), 1)

	w, _ = s.do(t, http.MethodDelete, "/api/calendar/2025-01-06", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodDelete, "/api/calendar/2025-01-06", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWorkoutFlow(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.planRepo.CreatePlan(&models.WeeklyPlan{UserID: "u1", DatosSemana: datatypes.JSON(`{"lunes":{"titulo":"Torso","ejercicios":[{"nombre":"Press Banca","series":3}]}}`)}))

	w, env := s.do(t, http.MethodPost, "/api/workout/start", gin.H{"from_plan": true})
	require.Equal(t, http.StatusOK, w.Code)
	session := decode[models.WorkoutSession](t, env.Data)
	assert.Equal(t, models.RoutineFromPlan, session.Routine.Source)

	w, _ = s.do(t, http.MethodPost, "/api/workout/start", gin.H{"routine": gin.H{"titulo": "Brazos", "ejercicios": []gin.H{{"nombre": "Curl Martillo"}}}})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/workout/sets", gin.H{"ejercicio": "Press Banca", "sets": []gin.H{{"kg": 80, "reps": 8}, {"kg": 82.5, "reps": 6}}})
	require.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(t, http.MethodGet, "/api/workout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"elapsed_ms"`)

	w, env = s.do(t, http.MethodPost, "/api/workout/finish", gin.H{"save": true})
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode[models.SessionSummary](t, env.Data)
	assert.Equal(t, 2, summary.SetsSaved)
	assert.True(t, summary.MarkedTrained)

	w, env = s.do(t, http.MethodGet, "/api/exercises/press%20banca/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[models.ExerciseStats](t, env.Data)
	assert.Equal(t, 82.5, stats.PRKg)
	assert.Equal(t, 101, stats.Max1RM)

	w, env = s.do(t, http.MethodGet, "/api/exercises/Press%20Banca/previous", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.SeriesLog](t, env.Data), 2)

	w, _ = s.do(t, http.MethodGet, "/api/workout", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = s.do(t, http.MethodPost, "/api/workout/discard", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/workout/start", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNutritionHandlers(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodPost, "/api/measurements", gin.H{"peso": 78, "grasa_porc": 20})
	require.Equal(t, http.StatusOK, w.Code)
	w, env := s.do(t, http.MethodGet, "/api/measurements", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Measurement](t, env.Data), 1)

	w, env = s.do(t, http.MethodGet, "/api/nutrition/targets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	targets := decode[models.NutritionTargets](t, env.Data)
	assert.Equal(t, models.TargetsComputed, targets.Source)
	assert.False(t, targets.TrainingDay, "no plan means a rest day")
	assert.Positive(t, targets.Calories)

	w, _ = s.do(t, http.MethodPost, "/api/nutrition/meals", gin.H{"nombre": "Arroz", "cantidad": 200, "macros_100g": gin.H{"kcal": 130, "p": 2.7, "c": 28, "f": 0.3}})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodPost, "/api/nutrition/meals", gin.H{"nombre": "Arroz", "cantidad": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(t, http.MethodGet, "/api/nutrition/recent", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Meal](t, env.Data), 1)

	s.food.On("LookupBarcode", mock.Anything, "8410000").Return(&models.FoodProduct{Barcode: "8410000", Nombre: "Galletas", Cantidad: 30}, nil).Once()
	s.food.On("LookupBarcode", mock.Anything, "0000").Return(nil, models.ErrNotFound).Once()
	w, env = s.do(t, http.MethodGet, "/api/nutrition/barcode/8410000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Galletas", decode[models.FoodProduct](t, env.Data).Nombre)
	w, _ = s.do(t, http.MethodGet, "/api/nutrition/barcode/0000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(t, http.MethodPut, "/api/profile", gin.H{"meta_kcal": 2000, "meta_proteinas": 150})
	require.Equal(t, http.StatusOK, w.Code)
	w, env = s.do(t, http.MethodGet, "/api/nutrition/targets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.TargetsManual, decode[models.NutritionTargets](t, env.Data).Source)

	w, _ = s.do(t, http.MethodPut, "/api/profile", gin.H{"edad": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(t, http.MethodGet, "/api/catalog", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode[[]models.CatalogExercise](t, env.Data))
	s.food.AssertExpectations(t)
}

func TestTimerHandlers(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodPost, "/api/timer/start", gin.H{"seconds": 60})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(60000), decode[models.TimerSnapshot](t, env.Data).RemainingMs)

	s.clock.now = s.clock.now.Add(10 * time.Second)
	w, env = s.do(t, http.MethodPost, "/api/timer/adjust", gin.H{"delta": 15})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(65000), decode[models.TimerSnapshot](t, env.Data).RemainingMs)

	w, _ = s.do(t, http.MethodPost, "/api/timer/background", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, env = s.do(t, http.MethodPost, "/api/timer/resume", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.TimerRunning, decode[models.TimerSnapshot](t, env.Data).Phase)

	w, env = s.do(t, http.MethodPost, "/api/timer/stop", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.TimerIdle, decode[models.TimerSnapshot](t, env.Data).Phase)

	w, _ = s.do(t, http.MethodPost, "/api/timer/adjust", gin.H{"delta": 15})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = s.do(t, http.MethodGet, "/api/timer", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.TimerIdle, decode[models.TimerSnapshot](t, env.Data).Phase)
}
