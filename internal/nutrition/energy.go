// internal/nutrition/energy.go
package nutrition

import (
	"math"

	"mcp-meal-plan/internal/models"
)

// Plausible human ranges, inclusive. Values outside are rejected, not clamped.
const (
	MinAge      = 10
	MaxAge      = 120
	MinWeightKg = 30.0
	MaxWeightKg = 300.0
	MinHeightCm = 100.0
	MaxHeightCm = 250.0
)

// activityMultipliers is the single source of truth for valid activity levels.
var activityMultipliers = map[models.ActivityLevel]float64{
	models.Sedentary:   1.2,
	models.Light:       1.375,
	models.Moderate:    1.55,
	models.Intense:     1.725,
	models.VeryIntense: 1.9,
}

var goalAdjustments = map[models.Goal]int{
	models.Maintenance: 0,
	models.WeightLoss:  -500,
	models.MuscleGain:  300,
	models.Health:      0,
}

const (
	proteinPerKg           = 1.8
	proteinPerKgMuscleGain = 2.0
	fatShare               = 0.27
	kcalPerGramProtein     = 4
	kcalPerGramCarb        = 4
	kcalPerGramFat         = 9
)

// ActivityMultiplier reports the expenditure factor for an activity level.
func ActivityMultiplier(level models.ActivityLevel) (float64, bool) {
	m, ok := activityMultipliers[level]
	return m, ok
}

// GoalAdjustment reports the kcal added to total expenditure for a goal.
func GoalAdjustment(goal models.Goal) (int, bool) {
	adj, ok := goalAdjustments[goal]
	return adj, ok
}

// ValidateProfile checks every field the formulas depend on.
func ValidateProfile(p models.ClientProfile) error {
	if p.Age < MinAge || p.Age > MaxAge {
		return invalid("age", "%d outside %d-%d", p.Age, MinAge, MaxAge)
	}
	if math.IsNaN(p.WeightKg) || p.WeightKg < MinWeightKg || p.WeightKg > MaxWeightKg {
		return invalid("weight_kg", "%g outside %g-%g", p.WeightKg, MinWeightKg, MaxWeightKg)
	}
	if math.IsNaN(p.HeightCm) || p.HeightCm < MinHeightCm || p.HeightCm > MaxHeightCm {
		return invalid("height_cm", "%g outside %g-%g", p.HeightCm, MinHeightCm, MaxHeightCm)
	}
	if p.Gender != models.Male && p.Gender != models.Female {
		return invalid("gender", "unrecognized value %q", p.Gender)
	}
	if _, ok := activityMultipliers[p.ActivityLevel]; !ok {
		return invalid("activity_level", "unrecognized value %q", p.ActivityLevel)
	}
	if _, ok := goalAdjustments[p.Goal]; !ok {
		return invalid("goal", "unrecognized value %q", p.Goal)
	}
	return nil
}

// BasalExpenditure returns kcal/day by the Mifflin-St Jeor formula. The
// result is not rounded.
func BasalExpenditure(p models.ClientProfile) (float64, error) {
	if err := ValidateProfile(p); err != nil {
		return 0, err
	}
	return basal(p), nil
}

func basal(p models.ClientProfile) float64 {
	age := float64(p.Age)
	if p.Gender == models.Male {
		return 88.362 + 13.397*p.WeightKg + 4.799*p.HeightCm - 5.677*age
	}
	return 447.593 + 9.247*p.WeightKg + 3.098*p.HeightCm - 4.330*age
}

// TotalExpenditure scales the basal rate by the activity multiplier.
func TotalExpenditure(p models.ClientProfile) (int, error) {
	if err := ValidateProfile(p); err != nil {
		return 0, err
	}
	return total(p), nil
}

func total(p models.ClientProfile) int {
	return round(basal(p) * activityMultipliers[p.ActivityLevel])
}

// TargetCalories applies the goal adjustment to total expenditure. It does
// not enforce any safety floor; see planner.ValidatePlan for that.
func TargetCalories(p models.ClientProfile) (int, error) {
	if err := ValidateProfile(p); err != nil {
		return 0, err
	}
	return target(p), nil
}

func target(p models.ClientProfile) int {
	return total(p) + goalAdjustments[p.Goal]
}

// MacroDistribution fixes protein and fat first and gives carbohydrate the
// remainder. Carbohydrate grams can come out negative for low targets and
// heavy clients; the value is returned as computed.
func MacroDistribution(targetCalories int, p models.ClientProfile) (models.Macros, error) {
	if err := ValidateProfile(p); err != nil {
		return models.Macros{}, err
	}
	return macros(targetCalories, p), nil
}

func macros(targetCalories int, p models.ClientProfile) models.Macros {
	perKg := proteinPerKg
	if p.Goal == models.MuscleGain {
		perKg = proteinPerKgMuscleGain
	}
	protein := round(p.WeightKg * perKg)
	fat := round(float64(targetCalories) * fatShare / kcalPerGramFat)
	remainder := targetCalories - protein*kcalPerGramProtein - fat*kcalPerGramFat
	carb := round(float64(remainder) / kcalPerGramCarb)
	return models.Macros{ProteinG: protein, CarbG: carb, FatG: fat}
}

// Calculate runs the whole energy chain for a profile. Profiles whose macro
// split leaves negative carbohydrate grams are rejected as invalid input.
func Calculate(p models.ClientProfile) (models.EnergyTargets, error) {
	if err := ValidateProfile(p); err != nil {
		return models.EnergyTargets{}, err
	}
	kcal := target(p)
	m := macros(kcal, p)
	if m.CarbG < 0 {
		return models.EnergyTargets{}, invalid("carb_g",
			"target of %d kcal cannot cover %d g protein and %d g fat", kcal, m.ProteinG, m.FatG)
	}
	return models.EnergyTargets{
		BasalExpenditure: basal(p),
		TotalExpenditure: total(p),
		TargetCalories:   kcal,
		Macros:           m,
	}, nil
}

func round(v float64) int {
	return int(math.Round(v))
}
