package repository

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/samuelurones28/Proyecto/models"

	"gorm.io/gorm"
)

// PlanRepository stores insert-only weekly plan versions and temporary exceptions.
type PlanRepository interface {
	CreatePlan(plan *models.WeeklyPlan) error
	LatestPermanent(userID string) (*models.WeeklyPlan, error)
	LatestExceptionCovering(userID string, date time.Time) (*models.WeeklyPlan, error)
	ListPlans(userID string, limit int) ([]*models.WeeklyPlan, error)
}

type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new instance of PlanRepository.
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

// CreatePlan inserts a new plan row. Existing rows are never updated.
func (r *planRepository) CreatePlan(plan *models.WeeklyPlan) error {
	if plan == nil {
		log.Printf("ERROR: [PlanRepository] CreatePlan: plan cannot be nil")
		return errors.New("plan cannot be nil")
	}
	plan.ID = 0
	if err := r.db.Create(plan).Error; err != nil {
		log.Printf("ERROR: [PlanRepository] Failed to create plan for userID %s: %v", plan.UserID, err)
		return fmt.Errorf("failed to create plan for userID %s: %w", plan.UserID, err)
	}
	log.Printf("INFO: [PlanRepository] Created %s plan ID %d for userID %s.", plan.Kind(), plan.ID, plan.UserID)
	return nil
}

// LatestPermanent returns the most recent non-temporary plan, or nil if the user has none.
func (r *planRepository) LatestPermanent(userID string) (*models.WeeklyPlan, error) {
	var plan models.WeeklyPlan
	err := r.db.Where("user_id = ? AND es_temporal = ?", userID, false).
		Order("created_at desc, id desc").
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: [PlanRepository] Failed to retrieve permanent plan for userID %s: %v", userID, err)
		return nil, fmt.Errorf("failed to retrieve permanent plan for userID %s: %w", userID, err)
	}
	return &plan, nil
}

// LatestExceptionCovering returns the most recently created exception whose window contains date.
func (r *planRepository) LatestExceptionCovering(userID string, date time.Time) (*models.WeeklyPlan, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	upper := day.Format("2006-01-02")
	lower := day.AddDate(0, 0, -(models.ExceptionWindowDays - 1)).Format("2006-01-02")

	var plan models.WeeklyPlan
	err := r.db.Where("user_id = ? AND es_temporal = ? AND fecha_inicio >= ? AND fecha_inicio <= ?", userID, true, lower, upper).
		Order("created_at desc, id desc").
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: [PlanRepository] Failed to retrieve exception for userID %s on %s: %v", userID, upper, err)
		return nil, fmt.Errorf("failed to retrieve exception for userID %s: %w", userID, err)
	}
	return &plan, nil
}

// ListPlans returns plan versions newest first. A non-positive limit returns all of them.
func (r *planRepository) ListPlans(userID string, limit int) ([]*models.WeeklyPlan, error) {
	var plans []*models.WeeklyPlan
	q := r.db.Where("user_id = ?", userID).Order("created_at desc, id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&plans).Error; err != nil {
		log.Printf("ERROR: [PlanRepository] Failed to list plans for userID %s: %v", userID, err)
		return nil, fmt.Errorf("failed to list plans for userID %s: %w", userID, err)
	}
	return plans, nil
}
