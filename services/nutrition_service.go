package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/samuelurones28/Proyecto/models"
	"github.com/samuelurones28/Proyecto/repository"
	"github.com/samuelurones28/Proyecto/utils"
	"gorm.io/datatypes"
)

// MealInput is a food entry as submitted by the nutrition screen.
type MealInput struct {
	Nombre      string        `json:"nombre"`
	Cantidad    float64       `json:"cantidad"` // grams
	PesoPorcion float64       `json:"peso_porcion"`
	Macros100g  models.Macros `json:"macros_100g"`
}

// NutritionService exposes daily targets, meal logging and barcode lookups.
type NutritionService interface {
	DailyTargets(userID string, date time.Time) (models.NutritionTargets, error)
	LogMeal(userID string, in MealInput) (*models.Meal, error)
	DailySummary(userID string, date time.Time) (*models.DailyNutrition, error)
	RecentFoods(userID string, limit int) ([]*models.Meal, error)
	LookupBarcode(ctx context.Context, barcode string) (*models.FoodProduct, error)
}

type nutritionService struct {
	plans           PlanService
	profileRepo     repository.ProfileRepository
	measurementRepo repository.MeasurementRepository
	mealRepo        repository.MealRepository
	food            FoodClient
}

// NewNutritionService creates a new instance of NutritionService.
func NewNutritionService(
	plans PlanService,
	profileRepo repository.ProfileRepository,
	measurementRepo repository.MeasurementRepository,
	mealRepo repository.MealRepository,
	food FoodClient,
) NutritionService {
	return &nutritionService{
		plans:           plans,
		profileRepo:     profileRepo,
		measurementRepo: measurementRepo,
		mealRepo:        mealRepo,
		food:            food,
	}
}

func (s *nutritionService) DailyTargets(userID string, date time.Time) (models.NutritionTargets, error) {
	profile, err := s.profileRepo.GetOrCreate(userID)
	if err != nil {
		return models.NutritionTargets{}, fmt.Errorf("%w: load profile: %v", models.ErrPersistence, err)
	}
	latest, err := s.measurementRepo.Latest(userID)
	if err != nil {
		return models.NutritionTargets{}, fmt.Errorf("%w: load measurement: %v", models.ErrPersistence, err)
	}
	status, err := s.plans.ResolveDay(userID, date)
	if err != nil {
		return models.NutritionTargets{}, err
	}
	return CalculateTargets(latest, profile, status), nil
}

func (s *nutritionService) LogMeal(userID string, in MealInput) (*models.Meal, error) {
	name, err := utils.ValidateText(in.Nombre, 100)
	if err != nil {
		return nil, err
	}
	if in.Cantidad <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", models.ErrValidation)
	}
	for _, v := range []float64{in.Macros100g.P, in.Macros100g.C, in.Macros100g.F} {
		if err := utils.MacroRange.Check(v); err != nil {
			return nil, err
		}
	}
	if in.Macros100g.Kcal < 0 {
		return nil, fmt.Errorf("%w: calories cannot be negative", models.ErrValidation)
	}

	eaten := ScaleMacros(in.Macros100g, in.Cantidad)
	meal := &models.Meal{
		UserID:      userID,
		Nombre:      name,
		Cantidad:    in.Cantidad,
		PesoPorcion: in.PesoPorcion,
		Unidad:      "g",
		DatosBase:   datatypes.NewJSONType(in.Macros100g),
		Calorias:    eaten.Kcal,
		Proteinas:   eaten.P,
		Carbos:      eaten.C,
		Grasas:      eaten.F,
	}
	if err := s.mealRepo.Create(meal); err != nil {
		return nil, fmt.Errorf("%w: save meal: %v", models.ErrPersistence, err)
	}
	log.Printf("INFO: [NutritionService] Logged %.0fg of '%s' for userID %s.", in.Cantidad, name, userID)
	return meal, nil
}

func (s *nutritionService) DailySummary(userID string, date time.Time) (*models.DailyNutrition, error) {
	targets, err := s.DailyTargets(userID, date)
	if err != nil {
		return nil, err
	}
	from := utils.StartOfDay(date)
	meals, err := s.mealRepo.ListBetween(userID, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("%w: list meals: %v", models.ErrPersistence, err)
	}

	var consumed models.Macros
	for _, m := range meals {
		consumed.Kcal += m.Calorias
		consumed.P += m.Proteinas
		consumed.C += m.Carbos
		consumed.F += m.Grasas
	}
	round1 := func(v float64) float64 { return math.Round(v*10) / 10 }
	consumed = models.Macros{Kcal: round1(consumed.Kcal), P: round1(consumed.P), C: round1(consumed.C), F: round1(consumed.F)}

	return &models.DailyNutrition{
		Date:     utils.FormatDate(date),
		Targets:  targets,
		Consumed: consumed,
		Meals:    meals,
	}, nil
}

// RecentFoods returns the latest distinct foods, newest first, deduplicated by lower-cased name.
func (s *nutritionService) RecentFoods(userID string, limit int) ([]*models.Meal, error) {
	if limit <= 0 {
		limit = 20
	}
	meals, err := s.mealRepo.Recent(userID, limit*5)
	if err != nil {
		return nil, fmt.Errorf("%w: list recent meals: %v", models.ErrPersistence, err)
	}
	seen := make(map[string]bool, len(meals))
	out := make([]*models.Meal, 0, limit)
	for _, m := range meals {
		key := strings.ToLower(strings.TrimSpace(m.Nombre))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *nutritionService) LookupBarcode(ctx context.Context, barcode string) (*models.FoodProduct, error) {
	return s.food.LookupBarcode(ctx, barcode)
}
