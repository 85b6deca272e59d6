package repository

import (
	"fmt"
	"log"
	"time"

	"github.com/samuelurones28/Proyecto/models"

	"gorm.io/gorm"
)

// MealRepository stores logged food entries.
type MealRepository interface {
	Create(meal *models.Meal) error
	ListBetween(userID string, from, to time.Time) ([]*models.Meal, error)
	Recent(userID string, limit int) ([]*models.Meal, error)
}

type mealRepository struct {
	db *gorm.DB
}

// NewMealRepository creates a new instance of MealRepository.
func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

func (r *mealRepository) Create(meal *models.Meal) error {
	if err := r.db.Create(meal).Error; err != nil {
		log.Printf("ERROR: [MealRepository] Failed to log meal '%s' for userID %s: %v", meal.Nombre, meal.UserID, err)
		return fmt.Errorf("failed to log meal: %w", err)
	}
	return nil
}

// ListBetween returns meals logged in [from, to), oldest first.
func (r *mealRepository) ListBetween(userID string, from, to time.Time) ([]*models.Meal, error) {
	var meals []*models.Meal
	err := r.db.Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Order("created_at asc").
		Find(&meals).Error
	if err != nil {
		log.Printf("ERROR: [MealRepository] Failed to list meals for userID %s: %v", userID, err)
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	return meals, nil
}

// Recent returns the latest meals, newest first.
func (r *mealRepository) Recent(userID string, limit int) ([]*models.Meal, error) {
	var meals []*models.Meal
	q := r.db.Where("user_id = ?", userID).Order("created_at desc, id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&meals).Error; err != nil {
		log.Printf("ERROR: [MealRepository] Failed to list recent meals for userID %s: %v", userID, err)
		return nil, fmt.Errorf("failed to list recent meals: %w", err)
	}
	return meals, nil
}
