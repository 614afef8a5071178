// internal/nutrition/allocation.go
package nutrition

import (
	"fmt"
	"strings"

	"mcp-meal-plan/internal/models"
)

// DefaultSlotCount is the canonical five-meal day.
const DefaultSlotCount = 5

// MaxAllocationDrift bounds how far the sum of the five independently
// rounded parts can land from the target: five roundings of at most 0.5 kcal.
const MaxAllocationDrift = 2

type slotShare struct {
	name     string
	mealType models.MealType
	share    float64
}

var fiveMealDay = []slotShare{
	{"Breakfast", models.Breakfast, 0.20},
	{"Morning Snack", models.MorningSnack, 0.10},
	{"Lunch", models.Lunch, 0.35},
	{"Afternoon Snack", models.AfternoonSnack, 0.10},
	{"Dinner", models.Dinner, 0.25},
}

// evenSplitTypes assigns meal types to "Meal N" slots for the even-split layouts.
var evenSplitTypes = map[int][]models.MealType{
	1: {models.Lunch},
	2: {models.Lunch, models.Dinner},
	3: {models.Breakfast, models.Lunch, models.Dinner},
	4: {models.Breakfast, models.Lunch, models.AfternoonSnack, models.Dinner},
	6: models.MealTypes,
}

// DistributeMealCalories splits a daily target across meal slots. Five slots
// use fixed shares; any other count is an even split. Parts are rounded
// independently and never reconciled against the total.
func DistributeMealCalories(targetCalories, slotCount int) ([]models.MealSlot, error) {
	if slotCount < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlotCount, slotCount)
	}

	if slotCount == DefaultSlotCount {
		slots := make([]models.MealSlot, 0, len(fiveMealDay))
		for _, s := range fiveMealDay {
			slots = append(slots, models.MealSlot{
				Name:     s.name,
				MealType: s.mealType,
				Calories: round(float64(targetCalories) * s.share),
			})
		}
		return slots, nil
	}

	per := round(float64(targetCalories) / float64(slotCount))
	types := evenSplitTypes[slotCount]
	slots := make([]models.MealSlot, slotCount)
	for i := range slots {
		mt := models.MorningSnack
		if i < len(types) {
			mt = types[i]
		}
		slots[i] = models.MealSlot{
			Name:     fmt.Sprintf("Meal %d", i+1),
			MealType: mt,
			Calories: per,
		}
	}
	return slots, nil
}

// SumCalories totals the allocated kcal of a set of slots.
func SumCalories(slots []models.MealSlot) int {
	sum := 0
	for _, s := range slots {
		sum += s.Calories
	}
	return sum
}

// AllocationDrift returns sum(slots) - target.
func AllocationDrift(targetCalories int, slots []models.MealSlot) int {
	return SumCalories(slots) - targetCalories
}

var mealTypeKeywords = []struct {
	mealType models.MealType
	words    []string
}{
	{models.Breakfast, []string{"breakfast", "café", "cafe", "manhã"}},
	{models.Lunch, []string{"lunch", "almoço", "almoco"}},
	{models.Dinner, []string{"dinner", "jantar"}},
}

// InferMealType guesses a meal type from a free-text meal name. Slots built
// by DistributeMealCalories already carry their type; this is for names
// coming back from external generators.
func InferMealType(name string) models.MealType {
	n := strings.ToLower(strings.TrimSpace(name))

	if strings.Contains(n, "snack") || strings.Contains(n, "lanche") || strings.Contains(n, "ceia") {
		switch {
		case strings.Contains(n, "afternoon") || strings.Contains(n, "tarde"):
			return models.AfternoonSnack
		case strings.Contains(n, "evening") || strings.Contains(n, "night") ||
			strings.Contains(n, "noite") || strings.Contains(n, "ceia"):
			return models.EveningSnack
		default:
			return models.MorningSnack
		}
	}

	for _, kw := range mealTypeKeywords {
		for _, w := range kw.words {
			if strings.Contains(n, w) {
				return kw.mealType
			}
		}
	}
	return models.MorningSnack
}
