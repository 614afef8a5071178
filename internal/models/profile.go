// internal/models/profile.go
package models

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

type ActivityLevel string

const (
	Sedentary   ActivityLevel = "sedentary"
	Light       ActivityLevel = "light"
	Moderate    ActivityLevel = "moderate"
	Intense     ActivityLevel = "intense"
	VeryIntense ActivityLevel = "very_intense"
)

type Goal string

const (
	Maintenance Goal = "maintenance"
	WeightLoss  Goal = "weight_loss"
	MuscleGain  Goal = "muscle_gain"
	Health      Goal = "health"
)

// ClientProfile is the input to every energy calculation. It is treated as
// immutable; nothing in the engine writes to it.
type ClientProfile struct {
	Age                 int           `json:"age"`
	Gender              Gender        `json:"gender"`
	HeightCm            float64       `json:"height_cm"`
	WeightKg            float64       `json:"weight_kg"`
	ActivityLevel       ActivityLevel `json:"activity_level"`
	Goal                Goal          `json:"goal"`
	DietaryRestrictions []string      `json:"dietary_restrictions,omitempty"`
}

type Macros struct {
	ProteinG int `json:"protein_g"`
	CarbG    int `json:"carb_g"`
	FatG     int `json:"fat_g"`
}

// EnergyTargets is derived from a ClientProfile on every call and never cached.
type EnergyTargets struct {
	BasalExpenditure float64 `json:"basal_expenditure"`
	TotalExpenditure int     `json:"total_expenditure"`
	TargetCalories   int     `json:"target_calories"`
	Macros           Macros  `json:"macros"`
}
