package models

// TargetSource says whether targets were computed or taken from the profile.
type TargetSource string

const (
	TargetsComputed TargetSource = "computed"
	TargetsManual   TargetSource = "manual"
)

// NutritionTargets is a day's calorie and macro budget.
type NutritionTargets struct {
	Calories    float64      `json:"calories"`
	Protein     float64      `json:"protein"`
	Carbs       float64      `json:"carbs"`
	Fat         float64      `json:"fat"`
	Source      TargetSource `json:"source"`
	TrainingDay bool         `json:"training_day"`
	Level       string       `json:"level"` // Human-readable origin of the day status
}
