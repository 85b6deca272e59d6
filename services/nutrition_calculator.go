package services

import (
	"math"

	"github.com/samuelurones28/Proyecto/models"
)

var activityMultipliers = map[models.ActivityLevel]float64{
	models.ActivitySedentary:  1.2,
	models.ActivityLight:      1.375,
	models.ActivityModerate:   1.55,
	models.ActivityActive:     1.725,
	models.ActivityVeryActive: 1.9,
}

var goalAdjustments = map[models.Goal]float64{
	models.GoalDefinition:    -400,
	models.GoalRecomposition: 0,
	models.GoalVolume:        300,
}

const (
	trainingDayKcal    = 200
	proteinPerKg       = 2.2
	fatPerKg           = 0.9
	katchMcArdleBase   = 370
	katchMcArdleFactor = 21.6
)

// CalculateTargets computes a day's calorie and macro budget.
// Manual targets on the profile are returned verbatim; otherwise Katch-McArdle BMR is
// scaled by activity, adjusted for goal and training day, and carbs take the remaining energy.
func CalculateTargets(m *models.Measurement, profile *models.Profile, day models.DayStatus) models.NutritionTargets {
	training := day.IsTraining()
	if profile.HasManualTargets() {
		return models.NutritionTargets{
			Calories:    profile.MetaKcal,
			Protein:     profile.MetaProteinas,
			Carbs:       profile.MetaCarbos,
			Fat:         profile.MetaGrasas,
			Source:      models.TargetsManual,
			TrainingDay: training,
			Level:       "Manual",
		}
	}

	bc := m.Composition()
	activity, goal := models.ActivityModerate, models.GoalRecomposition
	if profile != nil {
		activity = models.ParseActivityLevel(string(profile.NivelActividad))
		goal = models.ParseGoal(string(profile.Objetivo))
	}
	multiplier, ok := activityMultipliers[activity]
	if !ok {
		multiplier = activityMultipliers[models.ActivityModerate]
	}

	leanMass := bc.WeightKg * (1 - bc.BodyFatPct/100)
	bmr := katchMcArdleBase + katchMcArdleFactor*leanMass
	calories := math.Round(bmr*multiplier) + goalAdjustments[goal]
	level := "Descanso"
	if training {
		calories += trainingDayKcal
		level = "Entreno"
	} else {
		calories -= trainingDayKcal
	}

	protein := math.Round(bc.WeightKg * proteinPerKg)
	fat := math.Round(bc.WeightKg * fatPerKg)
	carbs := math.Max(0, math.Round((calories-(protein*4+fat*9))/4))

	return models.NutritionTargets{
		Calories:    calories,
		Protein:     protein,
		Carbs:       carbs,
		Fat:         fat,
		Source:      models.TargetsComputed,
		TrainingDay: training,
		Level:       level,
	}
}

// ScaleMacros converts per-100 g macros to the amount eaten, rounded to one decimal.
func ScaleMacros(per100g models.Macros, grams float64) models.Macros {
	f := grams / 100
	r := func(v float64) float64 { return math.Round(v*f*10) / 10 }
	return models.Macros{Kcal: r(per100g.Kcal), P: r(per100g.P), C: r(per100g.C), F: r(per100g.F)}
}
