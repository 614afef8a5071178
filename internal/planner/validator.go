// internal/planner/validator.go
package planner

import (
	"fmt"

	"mcp-meal-plan/internal/models"
)

const (
	// MinDailyKcal is an absolute floor, independent of the plan's target.
	MinDailyKcal     = 1200
	maxKcalOvershoot = 1.2
	minProteinShare  = 0.8
	MinFilledMeals   = 3
)

// ValidatePlan checks the aggregate sanity of a plan whose items have been
// filled in. Findings are returned as warnings for a professional to review;
// it never fails.
func ValidatePlan(plan *models.GeneratedMealPlan) models.ValidationResult {
	warnings := []string{}

	var meals []models.PlannedMeal
	var target, proteinTarget int
	if plan != nil {
		meals = plan.Meals
		target = plan.TargetCalories
		proteinTarget = plan.Macros.ProteinG
	}

	var kcal, protein float64
	filled := 0
	for _, meal := range meals {
		if len(meal.Items) > 0 {
			filled++
		}
		for _, item := range meal.Items {
			kcal += item.Kcal
			protein += item.Protein
		}
	}

	if kcal < MinDailyKcal {
		warnings = append(warnings, fmt.Sprintf(
			"total calories %.1f kcal/day are below the %d kcal/day safety floor", kcal, MinDailyKcal))
	}
	if limit := float64(target) * maxKcalOvershoot; kcal > limit {
		warnings = append(warnings, fmt.Sprintf(
			"total calories %.1f kcal/day exceed the %d kcal/day target by more than 20%%", kcal, target))
	}
	if floor := float64(proteinTarget) * minProteinShare; protein < floor {
		warnings = append(warnings, fmt.Sprintf(
			"total protein %.1f g is below 80%% of the %d g target", protein, proteinTarget))
	}
	if filled < MinFilledMeals {
		warnings = append(warnings, fmt.Sprintf(
			"only %d meals have food items; at least %d are expected", filled, MinFilledMeals))
	}

	return models.ValidationResult{
		Valid:    len(warnings) == 0,
		Warnings: warnings,
	}
}
