package meal

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// DietType represents a dietary classification of a recipe or a person
type DietType string

const (
	DietTypeOmnivore    DietType = "OMNIVORE"
	DietTypePescatarian DietType = "PESCATARIAN"
	DietTypeVegetarian  DietType = "VEGETARIAN"
	DietTypeVegan       DietType = "VEGAN"
)

// compatibilityLevels orders diet types from least to most restrictive.
// A recipe may be served to anyone whose level is lower or equal.
var compatibilityLevels = map[DietType]int{
	DietTypeOmnivore:    0,
	DietTypePescatarian: 1,
	DietTypeVegetarian:  2,
	DietTypeVegan:       3,
}

// ParseDietType normalises and validates a diet type name
func ParseDietType(s string) (DietType, error) {
	dt := DietType(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := compatibilityLevels[dt]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDietType, s)
	}
	return dt, nil
}

// Level returns the compatibility level, or -1 for unknown types
func (d DietType) Level() int {
	if lvl, ok := compatibilityLevels[d]; ok {
		return lvl
	}
	return -1
}

// SatisfiesDiet reports whether a recipe tagged d can be served on a plan for want
func (d DietType) SatisfiesDiet(want DietType) bool {
	return d.Level() >= 0 && want.Level() >= 0 && d.Level() >= want.Level()
}

// LevelResolver resolves compatible diet types using the built-in level ordering
type LevelResolver struct{}

// NewLevelResolver creates a resolver over the built-in compatibility levels
func NewLevelResolver() *LevelResolver {
	return &LevelResolver{}
}

// ResolveCompatibleDietTypes returns every diet type substitutable into dietType,
// ordered from the type itself to the most restrictive.
func (r *LevelResolver) ResolveCompatibleDietTypes(ctx context.Context, dietType DietType) ([]DietType, error) {
	if dietType.Level() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDietType, dietType)
	}

	compatible := make([]DietType, 0, len(compatibilityLevels))
	for dt := range compatibilityLevels {
		if dt.SatisfiesDiet(dietType) {
			compatible = append(compatible, dt)
		}
	}
	sort.Slice(compatible, func(i, j int) bool {
		return compatible[i].Level() < compatible[j].Level()
	})
	return compatible, nil
}

// DietNames joins diet types for log fields and messages
func DietNames(diets []DietType) []string {
	names := make([]string, len(diets))
	for i, d := range diets {
		names[i] = string(d)
	}
	return names
}
