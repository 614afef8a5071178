// internal/planner/matcher.go
package planner

import (
	"fmt"
	"sort"
	"strings"

	"mcp-meal-plan/internal/catalog"
	"mcp-meal-plan/internal/models"
	"mcp-meal-plan/internal/nutrition"
)

// KcalTolerance is the exclusive band around a slot's allocation inside
// which a template is considered a fit.
const KcalTolerance = 150

// Matcher picks catalog templates for meal slots. It holds no mutable state
// and can be shared between goroutines.
type Matcher struct {
	catalog *catalog.Catalog
}

func NewMatcher(c *catalog.Catalog) *Matcher {
	return &Matcher{catalog: c}
}

// Match returns the template of the slot's meal type closest in kcal to the
// allocation that carries every restriction as a tag, or nil when none is
// within KcalTolerance. Equidistant templates resolve to catalog order.
func (m *Matcher) Match(slot models.MealSlot, restrictions []string) *models.MealTemplate {
	required := normalizeTags(restrictions)

	type candidate struct {
		template models.MealTemplate
		diff     int
	}
	var candidates []candidate
	for _, t := range m.catalog.ByMealType(slot.MealType) {
		if !hasAllTags(t.Tags, required) {
			continue
		}
		diff := abs(t.TargetKcal - slot.Calories)
		if diff >= KcalTolerance {
			continue
		}
		candidates = append(candidates, candidate{template: t, diff: diff})
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].diff < candidates[j].diff
	})
	best := candidates[0].template
	return &best
}

// GenerateMealPlan builds a five-meal draft plan for the profile.
func (m *Matcher) GenerateMealPlan(p models.ClientProfile) (*models.GeneratedMealPlan, error) {
	return m.GenerateMealPlanWithSlots(p, nutrition.DefaultSlotCount)
}

// GenerateMealPlanWithSlots builds a draft plan over slotCount meals. Slot
// items are left empty for the caller to fill; slots without a template need
// manual composition.
func (m *Matcher) GenerateMealPlanWithSlots(p models.ClientProfile, slotCount int) (*models.GeneratedMealPlan, error) {
	targets, err := nutrition.Calculate(p)
	if err != nil {
		return nil, err
	}
	slots, err := nutrition.DistributeMealCalories(targets.TargetCalories, slotCount)
	if err != nil {
		return nil, err
	}

	meals := make([]models.PlannedMeal, 0, len(slots))
	for _, slot := range slots {
		meals = append(meals, models.PlannedMeal{
			Name:           slot.Name,
			MealType:       slot.MealType,
			TargetCalories: slot.Calories,
			Template:       m.Match(slot, p.DietaryRestrictions),
			Items:          []models.PlanItem{},
		})
	}

	return &models.GeneratedMealPlan{
		Profile:        p,
		TargetCalories: targets.TargetCalories,
		Macros:         targets.Macros,
		Meals:          meals,
		Reasoning:      reasoning(p, targets, meals),
		Source:         models.SourceTemplate,
	}, nil
}

func reasoning(p models.ClientProfile, targets models.EnergyTargets, meals []models.PlannedMeal) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Client: %d years, %s, %.0f cm, %.1f kg, activity %s, goal %s.\n",
		p.Age, p.Gender, p.HeightCm, p.WeightKg, p.ActivityLevel, p.Goal)
	fmt.Fprintf(&b, "Basal expenditure (Mifflin-St Jeor): %.0f kcal/day.\n", targets.BasalExpenditure)
	factor, _ := nutrition.ActivityMultiplier(p.ActivityLevel)
	fmt.Fprintf(&b, "Total expenditure (activity factor %.3g): %d kcal/day.\n", factor, targets.TotalExpenditure)
	adj, _ := nutrition.GoalAdjustment(p.Goal)
	fmt.Fprintf(&b, "Target intake: %d kcal/day (%+d kcal for %s).\n", targets.TargetCalories, adj, p.Goal)
	fmt.Fprintf(&b, "Macros: %d g protein, %d g carbohydrate, %d g fat.\n",
		targets.Macros.ProteinG, targets.Macros.CarbG, targets.Macros.FatG)

	if len(p.DietaryRestrictions) == 0 {
		b.WriteString("Dietary restrictions: none.\n")
	} else {
		fmt.Fprintf(&b, "Dietary restrictions: %s.\n", strings.Join(p.DietaryRestrictions, ", "))
	}

	var unmatched []string
	for _, meal := range meals {
		if meal.Template == nil {
			unmatched = append(unmatched, meal.Name)
		}
	}
	fmt.Fprintf(&b, "Meals: %d slots, %d matched to templates", len(meals), len(meals)-len(unmatched))
	if len(unmatched) > 0 {
		fmt.Fprintf(&b, "; needs manual composition: %s", strings.Join(unmatched, ", "))
	}
	b.WriteString(".")

	return b.String()
}

// normalizeTag folds case and separators so "low_carb" and "Low-Carb" agree.
func normalizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return strings.NewReplacer("_", "-", " ", "-").Replace(tag)
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, t := range tags {
		n := normalizeTag(t)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func hasAllTags(tags, required []string) bool {
	if len(required) == 0 {
		return true
	}
	have := make(map[string]bool, len(tags))
	for _, t := range tags {
		have[normalizeTag(t)] = true
	}
	for _, r := range required {
		if !have[r] {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
