package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/samuelurones28/Proyecto/models"
	"github.com/samuelurones28/Proyecto/repository"
	"github.com/samuelurones28/Proyecto/utils"
)

// ActivePlan is the plan in effect on a given date.
type ActivePlan struct {
	Date      string             `json:"date"`
	Permanent *models.WeeklyPlan `json:"permanent,omitempty"`
	Exception *models.WeeklyPlan `json:"exception,omitempty"`
	Week      models.Week        `json:"week"`
}

// PlanService answers "what does the user train on a date" from plans, calendar and profile.
type PlanService interface {
	ActivePlan(userID string, date time.Time) (*ActivePlan, error)
	ResolveDay(userID string, date time.Time) (models.DayStatus, error)
	MonthMarks(userID string, from, to time.Time) ([]models.DayStatus, error)
	PlanHistory(userID string, limit int) ([]*models.WeeklyPlan, error)
}

type planService struct {
	planRepo     repository.PlanRepository
	calendarRepo repository.CalendarRepository
	profileRepo  repository.ProfileRepository
}

// NewPlanService creates a new instance of PlanService.
func NewPlanService(planRepo repository.PlanRepository, calendarRepo repository.CalendarRepository, profileRepo repository.ProfileRepository) PlanService {
	return &planService{
		planRepo:     planRepo,
		calendarRepo: calendarRepo,
		profileRepo:  profileRepo,
	}
}

// maxMarkDays bounds MonthMarks so a bad range cannot resolve years of dates.
const maxMarkDays = 62

func (s *planService) ActivePlan(userID string, date time.Time) (*ActivePlan, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty")
	}
	permanent, err := s.planRepo.LatestPermanent(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	exception, err := s.planRepo.LatestExceptionCovering(userID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	week, err := EffectiveWeek(permanent, exception)
	if err != nil {
		log.Printf("ERROR: [PlanService] Stored plan for userID %s is unreadable: %v", userID, err)
		return nil, err
	}
	return &ActivePlan{Date: utils.FormatDate(date), Permanent: permanent, Exception: exception, Week: week}, nil
}

func (s *planService) ResolveDay(userID string, date time.Time) (models.DayStatus, error) {
	if userID == "" {
		return models.DayStatus{}, errors.New("userID cannot be empty")
	}
	fecha := utils.FormatDate(date)
	action, err := s.calendarRepo.GetByDate(userID, fecha)
	if err != nil {
		return models.DayStatus{}, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	profile, err := s.profileRepo.GetOrCreate(userID)
	if err != nil {
		return models.DayStatus{}, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	permanent, err := s.planRepo.LatestPermanent(userID)
	if err != nil {
		return models.DayStatus{}, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	exception, err := s.planRepo.LatestExceptionCovering(userID, date)
	if err != nil {
		return models.DayStatus{}, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return ResolveDay(DayInputs{Date: date, Action: action, Profile: profile, Exception: exception, Permanent: permanent}), nil
}

// MonthMarks resolves every date in [from, to] for a calendar view.
func (s *planService) MonthMarks(userID string, from, to time.Time) ([]models.DayStatus, error) {
	from, to = utils.StartOfDay(from), utils.StartOfDay(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end %s is before start %s", models.ErrValidation, utils.FormatDate(to), utils.FormatDate(from))
	}
	if to.Sub(from) > maxMarkDays*24*time.Hour {
		return nil, fmt.Errorf("%w: range is longer than %d days", models.ErrValidation, maxMarkDays)
	}

	profile, err := s.profileRepo.GetOrCreate(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	permanent, err := s.planRepo.LatestPermanent(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	actions, err := s.calendarRepo.ListRange(userID, utils.FormatDate(from), utils.FormatDate(to), "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	byDate := make(map[string]*models.CalendarAction, len(actions))
	for _, a := range actions {
		byDate[a.Fecha] = a
	}

	var marks []models.DayStatus
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		exception, err := s.planRepo.LatestExceptionCovering(userID, d)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
		}
		marks = append(marks, ResolveDay(DayInputs{
			Date:      d,
			Action:    byDate[utils.FormatDate(d)],
			Profile:   profile,
			Exception: exception,
			Permanent: permanent,
		}))
	}
	return marks, nil
}

func (s *planService) PlanHistory(userID string, limit int) ([]*models.WeeklyPlan, error) {
	plans, err := s.planRepo.ListPlans(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return plans, nil
}
