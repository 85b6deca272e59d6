package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samuelurones28/Proyecto/database"
	"github.com/samuelurones28/Proyecto/models"
	"github.com/samuelurones28/Proyecto/repository"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens an isolated in-memory SQLite database with every table migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// testRepos bundles real repositories over one test database.
type testRepos struct {
	plans        repository.PlanRepository
	calendar     repository.CalendarRepository
	profiles     repository.ProfileRepository
	catalog      repository.CatalogRepository
	measurements repository.MeasurementRepository
	series       repository.SeriesRepository
	meals        repository.MealRepository
	chat         repository.ChatRepository
}

func newTestRepos(t *testing.T) testRepos {
	db := newTestDB(t)
	return testRepos{
		plans:        repository.NewPlanRepository(db),
		calendar:     repository.NewCalendarRepository(db),
		profiles:     repository.NewProfileRepository(db),
		catalog:      repository.NewCatalogRepository(db),
		measurements: repository.NewMeasurementRepository(db),
		series:       repository.NewSeriesRepository(db),
		meals:        repository.NewMealRepository(db),
		chat:         repository.NewChatRepository(db),
	}
}

// fakeClock is a Clock tests move by hand.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(s string) *fakeClock {
	t, err := time.ParseInLocation(time.RFC3339, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeNotifier records scheduled and cancelled handles without firing anything.
type fakeNotifier struct {
	mu        sync.Mutex
	seq       int
	live      map[string]time.Duration
	cancelled []string
	failNext  bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{live: make(map[string]time.Duration)}
}

func (n *fakeNotifier) Schedule(body string, delay time.Duration) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failNext {
		n.failNext = false
		return "", fmt.Errorf("notifications disabled")
	}
	n.seq++
	handle := fmt.Sprintf("n%d", n.seq)
	n.live[handle] = delay
	return handle, nil
}

func (n *fakeNotifier) Cancel(handle string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.live[handle]; ok {
		delete(n.live, handle)
		n.cancelled = append(n.cancelled, handle)
	}
}

func (n *fakeNotifier) Live() map[string]time.Duration {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make(map[string]time.Duration, len(n.live))
	for k, v := range n.live {
		out[k] = v
	}
	return out
}

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

// MockCalendarRepository is a mock type for the CalendarRepository interface
type MockCalendarRepository struct {
	mock.Mock
}

func (m *MockCalendarRepository) Upsert(action *models.CalendarAction) error {
	args := m.Called(action)
	return args.Error(0)
}

func (m *MockCalendarRepository) GetByDate(userID, fecha string) (*models.CalendarAction, error) {
	args := m.Called(userID, fecha)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CalendarAction), args.Error(1)
}

func (m *MockCalendarRepository) ListRange(userID, from, to string, state models.CalendarState) ([]*models.CalendarAction, error) {
	args := m.Called(userID, from, to, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CalendarAction), args.Error(1)
}

func (m *MockCalendarRepository) Delete(userID, fecha string) error {
	args := m.Called(userID, fecha)
	return args.Error(0)
}

// MockSeriesRepository is a mock type for the SeriesRepository interface
type MockSeriesRepository struct {
	mock.Mock
}

func (m *MockSeriesRepository) CreateBatch(logs []*models.SeriesLog) error {
	args := m.Called(logs)
	return args.Error(0)
}

func (m *MockSeriesRepository) LatestForExercise(userID, ejercicio string) ([]*models.SeriesLog, error) {
	args := m.Called(userID, ejercicio)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SeriesLog), args.Error(1)
}

func (m *MockSeriesRepository) ListForExercise(userID, ejercicio string) ([]*models.SeriesLog, error) {
	args := m.Called(userID, ejercicio)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SeriesLog), args.Error(1)
}

func (m *MockSeriesRepository) DeleteByDate(userID, fecha string) error {
	args := m.Called(userID, fecha)
	return args.Error(0)
}

func (m *MockSeriesRepository) DeleteBatch(logs []*models.SeriesLog) error {
	args := m.Called(logs)
	return args.Error(0)
}

func seedCatalog(t *testing.T, repo repository.CatalogRepository, names ...string) {
	t.Helper()
	entries := make([]models.CatalogExercise, 0, len(names))
	for _, n := range names {
		entries = append(entries, models.CatalogExercise{Nombre: n})
	}
	require.NoError(t, repo.Seed(entries))
}
