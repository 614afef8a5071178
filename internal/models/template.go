// internal/models/template.go
package models

type MealType string

const (
	Breakfast      MealType = "breakfast"
	MorningSnack   MealType = "morning_snack"
	Lunch          MealType = "lunch"
	AfternoonSnack MealType = "afternoon_snack"
	Dinner         MealType = "dinner"
	EveningSnack   MealType = "evening_snack"
)

// MealTypes lists every meal type in day order.
var MealTypes = []MealType{Breakfast, MorningSnack, Lunch, AfternoonSnack, Dinner, EveningSnack}

func (t MealType) Valid() bool {
	for _, mt := range MealTypes {
		if t == mt {
			return true
		}
	}
	return false
}

type TemplateItem struct {
	FoodName  string   `json:"food_name" yaml:"food_name"`
	Aliases   []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Quantity  float64  `json:"quantity" yaml:"quantity"`
	Measure   string   `json:"measure" yaml:"measure"`
	FoodGroup string   `json:"food_group" yaml:"food_group"`
	Optional  bool     `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// MealTemplate is read-only reference data. Catalogs hand out copies.
type MealTemplate struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	MealType    MealType       `json:"meal_type" yaml:"meal_type"`
	TargetKcal  int            `json:"target_kcal" yaml:"target_kcal"`
	Items       []TemplateItem `json:"items" yaml:"items"`
	Tags        []string       `json:"tags" yaml:"tags"`
}

// Clone returns a deep copy of the template.
func (t MealTemplate) Clone() MealTemplate {
	out := t
	out.Tags = append([]string(nil), t.Tags...)
	out.Items = make([]TemplateItem, len(t.Items))
	for i, item := range t.Items {
		item.Aliases = append([]string(nil), item.Aliases...)
		out.Items[i] = item
	}
	return out
}
