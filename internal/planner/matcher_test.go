package planner

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"mcp-meal-plan/internal/catalog"
	"mcp-meal-plan/internal/models"
	"mcp-meal-plan/internal/nutrition"
)

// femaleProfile targets 1903 kcal/day, which allocates 381/190/666/190/476.
func femaleProfile() models.ClientProfile {
	return models.ClientProfile{
		Age:           30,
		Gender:        models.Female,
		HeightCm:      165,
		WeightKg:      60,
		ActivityLevel: models.Light,
		Goal:          models.Maintenance,
	}
}

func newTestMatcher(t *testing.T, templates ...models.MealTemplate) *Matcher {
	t.Helper()
	c, err := catalog.New(templates)
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	return NewMatcher(c)
}

func templateIDs(plan *models.GeneratedMealPlan) []string {
	ids := make([]string, len(plan.Meals))
	for i, m := range plan.Meals {
		if m.Template != nil {
			ids[i] = m.Template.ID
		}
	}
	return ids
}

func TestMatch_ClosestWins(t *testing.T) {
	m := newTestMatcher(t,
		models.MealTemplate{ID: "far", MealType: models.Breakfast, TargetKcal: 500},
		models.MealTemplate{ID: "near", MealType: models.Breakfast, TargetKcal: 410},
		models.MealTemplate{ID: "other-type", MealType: models.Lunch, TargetKcal: 400},
	)
	got := m.Match(models.MealSlot{Name: "Breakfast", MealType: models.Breakfast, Calories: 400}, nil)
	if got == nil || got.ID != "near" {
		t.Fatalf("expected near, got %+v", got)
	}
}

func TestMatch_EquidistantResolvesToCatalogOrder(t *testing.T) {
	slot := models.MealSlot{Name: "Breakfast", MealType: models.Breakfast, Calories: 400}
	low := models.MealTemplate{ID: "kcal-380", MealType: models.Breakfast, TargetKcal: 380}
	high := models.MealTemplate{ID: "kcal-420", MealType: models.Breakfast, TargetKcal: 420}

	// Both are 20 kcal away; there is no secondary key, so the template
	// listed first in the catalog is selected.
	if got := newTestMatcher(t, low, high).Match(slot, nil); got == nil || got.ID != "kcal-380" {
		t.Errorf("expected kcal-380 when listed first, got %+v", got)
	}
	if got := newTestMatcher(t, high, low).Match(slot, nil); got == nil || got.ID != "kcal-420" {
		t.Errorf("expected kcal-420 when listed first, got %+v", got)
	}
}

func TestMatch_ToleranceIsExclusive(t *testing.T) {
	slot := models.MealSlot{Name: "Lunch", MealType: models.Lunch, Calories: 700}

	m := newTestMatcher(t, models.MealTemplate{ID: "edge", MealType: models.Lunch, TargetKcal: 850})
	if got := m.Match(slot, nil); got != nil {
		t.Errorf("expected no match at exactly %d kcal away, got %s", KcalTolerance, got.ID)
	}

	m = newTestMatcher(t, models.MealTemplate{ID: "inside", MealType: models.Lunch, TargetKcal: 849})
	if got := m.Match(slot, nil); got == nil || got.ID != "inside" {
		t.Errorf("expected inside, got %+v", got)
	}
}

func TestMatch_NoTemplateForLowAllocation(t *testing.T) {
	m := NewMatcher(catalog.Default())
	for _, mt := range models.MealTypes {
		got := m.Match(models.MealSlot{Name: string(mt), MealType: mt, Calories: 50}, nil)
		if got != nil {
			t.Errorf("%s: expected nil for a 50 kcal slot, got %s (%d kcal)", mt, got.ID, got.TargetKcal)
		}
	}
}

func TestMatch_RestrictionsAreConjunctive(t *testing.T) {
	m := newTestMatcher(t,
		models.MealTemplate{ID: "veg", MealType: models.Dinner, TargetKcal: 500, Tags: []string{"vegetarian"}},
		models.MealTemplate{ID: "low", MealType: models.Dinner, TargetKcal: 500, Tags: []string{"low-carb"}},
		models.MealTemplate{ID: "both", MealType: models.Dinner, TargetKcal: 600, Tags: []string{"Vegetarian", "low-carb"}},
	)
	slot := models.MealSlot{Name: "Dinner", MealType: models.Dinner, Calories: 500}

	tests := []struct {
		restrictions []string
		want         string
	}{
		{nil, "veg"},
		{[]string{"vegetarian"}, "veg"},
		{[]string{"low_carb"}, "low"},
		{[]string{"vegetarian", "low_carb"}, "both"},
		{[]string{"vegetarian", "gluten_free"}, ""},
	}
	for _, tt := range tests {
		got := m.Match(slot, tt.restrictions)
		id := ""
		if got != nil {
			id = got.ID
		}
		if id != tt.want {
			t.Errorf("%v: expected %q, got %q", tt.restrictions, tt.want, id)
		}
	}
}

func TestGenerateMealPlan_DefaultCatalog(t *testing.T) {
	m := NewMatcher(catalog.Default())

	plan, err := m.GenerateMealPlan(femaleProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.TargetCalories != 1903 {
		t.Errorf("expected 1903 kcal, got %d", plan.TargetCalories)
	}
	if plan.Macros != (models.Macros{ProteinG: 108, CarbG: 240, FatG: 57}) {
		t.Errorf("unexpected macros %+v", plan.Macros)
	}
	if plan.Source != models.SourceTemplate {
		t.Errorf("expected template source, got %s", plan.Source)
	}

	wantKcal := []int{381, 190, 666, 190, 476}
	wantIDs := []string{"bf-pao-ovos", "ms-castanhas", "lu-arroz-feijao-omelete", "as-iogurte-fruta", "di-wrap-vegetariano"}
	got := templateIDs(plan)
	for i, meal := range plan.Meals {
		if meal.TargetCalories != wantKcal[i] {
			t.Errorf("%s: expected %d kcal, got %d", meal.Name, wantKcal[i], meal.TargetCalories)
		}
		if got[i] != wantIDs[i] {
			t.Errorf("%s: expected %s, got %q", meal.Name, wantIDs[i], got[i])
		}
		if meal.Items == nil || len(meal.Items) != 0 {
			t.Errorf("%s: expected empty items, got %v", meal.Name, meal.Items)
		}
	}

	for _, want := range []string{"1903 kcal/day", "108 g protein", "Dietary restrictions: none", "5 matched"} {
		if !strings.Contains(plan.Reasoning, want) {
			t.Errorf("reasoning missing %q:\n%s", want, plan.Reasoning)
		}
	}
}

func TestGenerateMealPlan_VegetarianNeverSelectsUntagged(t *testing.T) {
	m := NewMatcher(catalog.Default())
	profiles := []models.ClientProfile{femaleProfile()}
	for _, goal := range []models.Goal{models.WeightLoss, models.MuscleGain} {
		p := femaleProfile()
		p.Goal = goal
		profiles = append(profiles, p)
	}
	heavy := femaleProfile()
	heavy.Gender, heavy.WeightKg, heavy.HeightCm, heavy.ActivityLevel = models.Male, 95, 185, models.Intense
	profiles = append(profiles, heavy)

	for _, p := range profiles {
		p.DietaryRestrictions = []string{"vegetarian"}
		plan, err := m.GenerateMealPlan(p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, meal := range plan.Meals {
			if meal.Template == nil {
				continue
			}
			if !hasAllTags(meal.Template.Tags, []string{catalog.TagVegetarian}) {
				t.Errorf("%s: selected non-vegetarian template %s", meal.Name, meal.Template.ID)
			}
		}
	}
}

func TestGenerateMealPlan_Restrictions(t *testing.T) {
	m := NewMatcher(catalog.Default())

	tests := []struct {
		restrictions []string
		want         []string
	}{
		{[]string{"vegetarian"}, []string{"bf-tapioca-queijo", "ms-castanhas", "lu-arroz-feijao-omelete", "as-iogurte-fruta", "di-wrap-vegetariano"}},
		{[]string{"low_carb"}, []string{"bf-omelete-legumes", "ms-castanhas", "lu-peixe-legumes", "as-ovos-cozidos", "di-omelete-salada"}},
		{[]string{"vegetarian", "low_carb"}, []string{"bf-omelete-legumes", "ms-castanhas", "", "as-ovos-cozidos", "di-omelete-salada"}},
	}
	for _, tt := range tests {
		p := femaleProfile()
		p.DietaryRestrictions = tt.restrictions
		plan, err := m.GenerateMealPlan(p)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", tt.restrictions, err)
		}
		got := templateIDs(plan)
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("%v slot %d: expected %q, got %q", tt.restrictions, i, tt.want[i], got[i])
			}
		}
	}

	p := femaleProfile()
	p.DietaryRestrictions = []string{"vegetarian", "low_carb"}
	plan, _ := m.GenerateMealPlan(p)
	if !strings.Contains(plan.Reasoning, "needs manual composition: Lunch") {
		t.Errorf("reasoning should flag the unmatched lunch:\n%s", plan.Reasoning)
	}
}

func TestGenerateMealPlan_InvalidProfile(t *testing.T) {
	m := NewMatcher(catalog.Default())
	p := femaleProfile()
	p.Gender = "other"
	if _, err := m.GenerateMealPlan(p); !errors.Is(err, nutrition.ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile, got %v", err)
	}
	if _, err := m.GenerateMealPlanWithSlots(femaleProfile(), 0); !errors.Is(err, nutrition.ErrInvalidSlotCount) {
		t.Errorf("expected ErrInvalidSlotCount, got %v", err)
	}
}

func TestGenerateMealPlanWithSlots(t *testing.T) {
	m := NewMatcher(catalog.Default())
	plan, err := m.GenerateMealPlanWithSlots(femaleProfile(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Meals) != 3 {
		t.Fatalf("expected 3 meals, got %d", len(plan.Meals))
	}
	// 634 kcal each, typed breakfast, lunch, dinner.
	got := templateIDs(plan)
	if got[0] != "bf-cuscuz-ovo" || got[1] != "lu-arroz-feijao-omelete" || got[2] != "di-carne-legumes" {
		t.Errorf("unexpected matches %v", got)
	}
}

func TestGenerateMealPlan_ConcurrentCallers(t *testing.T) {
	m := NewMatcher(catalog.Default())
	want, err := m.GenerateMealPlan(femaleProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			plan, err := m.GenerateMealPlan(femaleProfile())
			if err != nil {
				errs <- err.Error()
				return
			}
			if plan.Reasoning != want.Reasoning || plan.TargetCalories != want.TargetCalories {
				errs <- "plan differs between concurrent calls"
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}
