package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/samuelurones28/Proyecto/models"
	"github.com/samuelurones28/Proyecto/repository"
	"github.com/samuelurones28/Proyecto/utils"
)

// StatsWindowDays is how many logged dates ExerciseStats reports.
const StatsWindowDays = 10

// HistoryService answers questions about logged series of an exercise.
type HistoryService interface {
	PreviousSeries(userID, exercise string) ([]*models.SeriesLog, error)
	ExerciseStats(userID, exercise string) (*models.ExerciseStats, error)
}

type historyService struct {
	seriesRepo  repository.SeriesRepository
	catalogRepo repository.CatalogRepository
	matcher     *utils.Matcher
}

// NewHistoryService creates a new instance of HistoryService.
func NewHistoryService(seriesRepo repository.SeriesRepository, catalogRepo repository.CatalogRepository, matcher *utils.Matcher) HistoryService {
	if matcher == nil {
		matcher = utils.NewMatcher(utils.DefaultDiceThreshold, utils.DefaultContainmentRatio)
	}
	return &historyService{seriesRepo: seriesRepo, catalogRepo: catalogRepo, matcher: matcher}
}

// EstimateOneRepMax is the Epley estimate, rounded to whole kilograms.
func EstimateOneRepMax(kg, reps float64) int {
	if kg <= 0 || reps <= 0 {
		return 0
	}
	return int(math.Round(kg * (1 + reps/30)))
}

// canonical maps a user-typed exercise name to the name series are stored under.
func (s *historyService) canonical(exercise string) (string, error) {
	if strings.TrimSpace(exercise) == "" {
		return "", fmt.Errorf("%w: exercise name is empty", models.ErrValidation)
	}
	names, err := s.catalogRepo.Names()
	if err != nil {
		return "", fmt.Errorf("%w: load catalog: %v", models.ErrPersistence, err)
	}
	return s.matcher.Normalize(exercise, names), nil
}

// PreviousSeries returns the sets from the most recent date the exercise was logged.
func (s *historyService) PreviousSeries(userID, exercise string) ([]*models.SeriesLog, error) {
	name, err := s.canonical(exercise)
	if err != nil {
		return nil, err
	}
	logs, err := s.seriesRepo.LatestForExercise(userID, name)
	if err != nil {
		return nil, fmt.Errorf("%w: load previous series: %v", models.ErrPersistence, err)
	}
	return logs, nil
}

func (s *historyService) ExerciseStats(userID, exercise string) (*models.ExerciseStats, error) {
	name, err := s.canonical(exercise)
	if err != nil {
		return nil, err
	}
	logs, err := s.seriesRepo.ListForExercise(userID, name)
	if err != nil {
		return nil, fmt.Errorf("%w: load series: %v", models.ErrPersistence, err)
	}

	stats := &models.ExerciseStats{Ejercicio: name, Daily: []models.DailyBest1RM{}}
	bestByDate := make(map[string]int)
	for _, l := range logs {
		if l.Kg > stats.PRKg {
			stats.PRKg = l.Kg
		}
		rm := EstimateOneRepMax(l.Kg, l.Reps)
		if rm > stats.Max1RM {
			stats.Max1RM = rm
		}
		if best, ok := bestByDate[l.Fecha]; !ok || rm > best {
			bestByDate[l.Fecha] = rm
		}
	}

	dates := make([]string, 0, len(bestByDate))
	for d := range bestByDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	if len(dates) > StatsWindowDays {
		dates = dates[len(dates)-StatsWindowDays:]
	}
	for _, d := range dates {
		stats.Daily = append(stats.Daily, models.DailyBest1RM{Fecha: d, RM: bestByDate[d]})
	}
	return stats, nil
}
