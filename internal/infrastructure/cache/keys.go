package cache

import (
	"sort"
	"strings"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
)

// KeyBuilder provides consistent cache key generation
type KeyBuilder struct {
	prefix    string
	separator string
}

// NewKeyBuilder creates a new key builder
func NewKeyBuilder() *KeyBuilder {
	return &KeyBuilder{
		prefix:    "mealplan:v1",
		separator: ":",
	}
}

// BuildKey constructs a cache key from components
func (kb *KeyBuilder) BuildKey(components ...string) string {
	parts := make([]string, 0, len(components)+1)
	parts = append(parts, kb.prefix)
	parts = append(parts, components...)
	return strings.Join(parts, kb.separator)
}

// BuildCandidatesKey keys a candidate list by meal type and diet set. The
// diet set is order-insensitive.
func (kb *KeyBuilder) BuildCandidatesKey(mealType meal.MealType, diets []meal.DietType) string {
	names := meal.DietNames(diets)
	sort.Strings(names)
	return kb.BuildKey("candidates", string(mealType), strings.Join(names, ","))
}

// BuildFactsKey keys a recipe's nutrition facts
func (kb *KeyBuilder) BuildFactsKey(id meal.RecipeID) string {
	return kb.BuildKey("facts", string(id))
}

// BuildIngredientsKey keys a recipe's ingredient list
func (kb *KeyBuilder) BuildIngredientsKey(id meal.RecipeID) string {
	return kb.BuildKey("ingredients", string(id))
}
