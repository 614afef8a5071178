// internal/models/external.go
package models

// CalculatedData is what an external plan generator receives alongside the
// profile so it plans against the same targets the engine computed.
type CalculatedData struct {
	BMR            float64 `json:"bmr"`
	TDEE           int     `json:"tdee"`
	TargetCalories int     `json:"targetCalories"`
	Macros         Macros  `json:"macros"`
}

type ExternalPlanRequest struct {
	Profile        ClientProfile  `json:"profile"`
	CalculatedData CalculatedData `json:"calculatedData"`
}

type ExternalItem struct {
	FoodName         string  `json:"food_name"`
	Quantity         float64 `json:"quantity"`
	Measure          string  `json:"measure"`
	EstimatedKcal    float64 `json:"estimated_kcal"`
	EstimatedProtein float64 `json:"estimated_protein"`
	EstimatedCarb    float64 `json:"estimated_carb"`
	EstimatedFat     float64 `json:"estimated_fat"`
}

type ExternalMeal struct {
	Name           string         `json:"name"`
	Time           string         `json:"time"`
	TargetCalories int            `json:"targetCalories"`
	Items          []ExternalItem `json:"items"`
}

// ExternalPlan is the raw, unvalidated plan returned by a generative service.
type ExternalPlan struct {
	Meals            []ExternalMeal `json:"meals"`
	Reasoning        string         `json:"reasoning"`
	EducationalNotes string         `json:"educationalNotes"`
}
