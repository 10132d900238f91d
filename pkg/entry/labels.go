package entry

import (
	"fmt"
	"strings"
)

// MealType is one of the four fixed meal slots of a day.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Snack     MealType = "snack"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
)

// MealTypes lists the slots in the order they happen during a day.
var MealTypes = []MealType{Breakfast, Snack, Lunch, Dinner}

var mealAliases = map[string]MealType{
	"breakfast": Breakfast,
	"snack":     Snack,
	"bio-snack": Snack,
	"biosnack":  Snack,
	"lunch":     Lunch,
	"dinner":    Dinner,
	"supper":    Dinner,
}

// ParseMealType resolves a meal slot by name or alias.
func ParseMealType(s string) (MealType, error) {
	if t, ok := mealAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return "", fmt.Errorf("entry: unknown meal type %q", s)
}

// Label is the human readable slot name.
func (t MealType) Label() string {
	switch t {
	case Breakfast:
		return "Breakfast"
	case Snack:
		return "Snack"
	case Lunch:
		return "Lunch"
	case Dinner:
		return "Dinner"
	default:
		return string(t)
	}
}

// Label is the human readable category name.
func (c Category) Label() string {
	switch c {
	case Mood:
		return "Mood"
	case Focus:
		return "Focus"
	case Irritability:
		return "Irritability"
	case Restlessness:
		return "Restlessness"
	default:
		return string(c)
	}
}

// MedicationLabel names intakes in the activity feed.
const MedicationLabel = "Medication"

// FormatDose renders "10 mg, with food" style text.
func FormatDose(dose Dose, withFood bool) string {
	food := "without food"
	if withFood {
		food = "with food"
	}
	return fmt.Sprintf("%d mg, %s", dose, food)
}

// FormatRatings joins the set ratings as "<Label><sep><v>/5", comma
// separated, for example "Mood: 4/5, Focus: 3/5" with sep ": ".
func FormatRatings(r Ratings, sep string) string {
	parts := make([]string, 0, len(Categories))
	r.Each(func(c Category, v int) {
		parts = append(parts, fmt.Sprintf("%s%s%d/%d", c.Label(), sep, v, MaxRating))
	})
	return strings.Join(parts, ", ")
}
