// internal/models/plan.go
package models

import (
	"time"
)

// MealSlot is one named slot of a day's calorie allocation.
type MealSlot struct {
	Name     string   `json:"name"`
	MealType MealType `json:"meal_type"`
	Calories int      `json:"calories"`
}

type PlanItem struct {
	FoodName string  `json:"food_name"`
	Quantity float64 `json:"quantity"`
	Measure  string  `json:"measure"`
	Kcal     float64 `json:"kcal"`
	Protein  float64 `json:"protein"`
	Carb     float64 `json:"carb"`
	Fat      float64 `json:"fat"`
}

type PlannedMeal struct {
	Name           string        `json:"name"`
	MealType       MealType      `json:"meal_type"`
	Time           string        `json:"time,omitempty"`
	TargetCalories int           `json:"target_calories"`
	Template       *MealTemplate `json:"template"`
	Items          []PlanItem    `json:"items"`
}

type PlanSource string

const (
	SourceTemplate PlanSource = "template"
	SourceExternal PlanSource = "external"
)

type GeneratedMealPlan struct {
	ID               string        `json:"id,omitempty"`
	Profile          ClientProfile `json:"profile"`
	TargetCalories   int           `json:"target_calories"`
	Macros           Macros        `json:"macros"`
	Meals            []PlannedMeal `json:"meals"`
	Reasoning        string        `json:"reasoning"`
	EducationalNotes string        `json:"educational_notes,omitempty"`
	Source           PlanSource    `json:"source"`
	CreatedAt        time.Time     `json:"created_at"`
}

// ValidationResult is advisory. Valid is true iff Warnings is empty.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings"`
}
