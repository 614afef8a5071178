// internal/planner/external.go
package planner

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"mcp-meal-plan/internal/models"
	"mcp-meal-plan/internal/nutrition"
)

var ErrMalformedPlan = errors.New("malformed plan")

// ExternalPlanSource produces a complete plan outside this engine, typically
// a generative model behind a gateway. Implementations own transport,
// authentication and timeouts.
type ExternalPlanSource interface {
	Generate(ctx context.Context, req models.ExternalPlanRequest) (*models.ExternalPlan, error)
}

func NewExternalPlanRequest(p models.ClientProfile, targets models.EnergyTargets) models.ExternalPlanRequest {
	return models.ExternalPlanRequest{
		Profile: p,
		CalculatedData: models.CalculatedData{
			BMR:            targets.BasalExpenditure,
			TDEE:           targets.TotalExpenditure,
			TargetCalories: targets.TargetCalories,
			Macros:         targets.Macros,
		},
	}
}

// CheckExternalShape rejects plans that cannot be validated at all.
func CheckExternalShape(raw *models.ExternalPlan) error {
	if raw == nil || len(raw.Meals) == 0 {
		return fmt.Errorf("%w: no meals", ErrMalformedPlan)
	}
	for i, meal := range raw.Meals {
		if strings.TrimSpace(meal.Name) == "" {
			return fmt.Errorf("%w: meal %d has no name", ErrMalformedPlan, i+1)
		}
		for j, item := range meal.Items {
			if strings.TrimSpace(item.FoodName) == "" {
				return fmt.Errorf("%w: %s item %d has no food name", ErrMalformedPlan, meal.Name, j+1)
			}
			for _, v := range []float64{item.Quantity, item.EstimatedKcal, item.EstimatedProtein, item.EstimatedCarb, item.EstimatedFat} {
				if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
					return fmt.Errorf("%w: %s item %q has an invalid amount", ErrMalformedPlan, meal.Name, item.FoodName)
				}
			}
		}
	}
	return nil
}

// FromExternal converts an externally generated plan into the engine's plan
// type, carrying the engine's own targets rather than any the source claims.
func FromExternal(p models.ClientProfile, targets models.EnergyTargets, raw *models.ExternalPlan) *models.GeneratedMealPlan {
	meals := make([]models.PlannedMeal, 0, len(raw.Meals))
	for _, m := range raw.Meals {
		items := make([]models.PlanItem, 0, len(m.Items))
		for _, it := range m.Items {
			items = append(items, models.PlanItem{
				FoodName: it.FoodName,
				Quantity: it.Quantity,
				Measure:  it.Measure,
				Kcal:     it.EstimatedKcal,
				Protein:  it.EstimatedProtein,
				Carb:     it.EstimatedCarb,
				Fat:      it.EstimatedFat,
			})
		}
		meals = append(meals, models.PlannedMeal{
			Name:           m.Name,
			MealType:       nutrition.InferMealType(m.Name),
			Time:           m.Time,
			TargetCalories: m.TargetCalories,
			Items:          items,
		})
	}

	return &models.GeneratedMealPlan{
		Profile:          p,
		TargetCalories:   targets.TargetCalories,
		Macros:           targets.Macros,
		Meals:            meals,
		Reasoning:        raw.Reasoning,
		EducationalNotes: raw.EducationalNotes,
		Source:           models.SourceExternal,
	}
}

type ExternalResult struct {
	Plan       *models.GeneratedMealPlan `json:"plan"`
	Validation models.ValidationResult   `json:"validation"`
}

// GenerateExternal computes targets for the profile, asks src for a plan and
// validates what comes back against those targets.
func GenerateExternal(ctx context.Context, src ExternalPlanSource, p models.ClientProfile) (*ExternalResult, error) {
	targets, err := nutrition.Calculate(p)
	if err != nil {
		return nil, err
	}

	raw, err := src.Generate(ctx, NewExternalPlanRequest(p, targets))
	if err != nil {
		return nil, fmt.Errorf("external plan source failed: %w", err)
	}
	if err := CheckExternalShape(raw); err != nil {
		return nil, err
	}

	plan := FromExternal(p, targets, raw)
	return &ExternalResult{
		Plan:       plan,
		Validation: ValidatePlan(plan),
	}, nil
}
