package entry

import (
	"fmt"
	"strings"
)

// Category is one of the four check-in scales.
type Category string

const (
	Mood         Category = "mood"
	Focus        Category = "focus"
	Irritability Category = "irritability"
	Restlessness Category = "restlessness"
)

// Categories lists every category in display order.
var Categories = []Category{Mood, Focus, Irritability, Restlessness}

const (
	MinRating = 1
	MaxRating = 5
)

// ParseCategory resolves a category name, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("entry: unknown check-in category %q", s)
}

// Ratings holds one optional 1-5 value per category. Zero means unset.
type Ratings struct {
	Mood         int `json:"mood,omitempty"`
	Focus        int `json:"focus,omitempty"`
	Irritability int `json:"irritability,omitempty"`
	Restlessness int `json:"restlessness,omitempty"`
}

func validRating(v int) bool {
	return v >= MinRating && v <= MaxRating
}

func (r *Ratings) slot(c Category) *int {
	switch c {
	case Mood:
		return &r.Mood
	case Focus:
		return &r.Focus
	case Irritability:
		return &r.Irritability
	case Restlessness:
		return &r.Restlessness
	}
	return nil
}

// Get returns the rating for c and whether it is set.
func (r Ratings) Get(c Category) (int, bool) {
	p := r.slot(c)
	if p == nil || !validRating(*p) {
		return 0, false
	}
	return *p, true
}

// Set stores v for c. Values outside 1-5 clear the category.
func (r *Ratings) Set(c Category, v int) {
	p := r.slot(c)
	if p == nil {
		return
	}
	if !validRating(v) {
		v = 0
	}
	*p = v
}

// Clean returns a copy with every out-of-range value cleared.
func (r Ratings) Clean() Ratings {
	var out Ratings
	for _, c := range Categories {
		if v, ok := r.Get(c); ok {
			out.Set(c, v)
		}
	}
	return out
}

// Empty reports whether no category is set.
func (r Ratings) Empty() bool {
	for _, c := range Categories {
		if _, ok := r.Get(c); ok {
			return false
		}
	}
	return true
}

// Each calls fn for every set category in display order.
func (r Ratings) Each(fn func(c Category, v int)) {
	for _, c := range Categories {
		if v, ok := r.Get(c); ok {
			fn(c, v)
		}
	}
}
