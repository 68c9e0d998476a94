package plan

import (
	"sort"
	"strings"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/google/uuid"
)

// ShoppingItem is an ingredient quantity summed across a week
type ShoppingItem struct {
	Name   string  `json:"name"`
	Unit   string  `json:"unit"`
	Amount float64 `json:"amount"`
}

// ShoppingList aggregates every ingredient of a week plan
type ShoppingList struct {
	PlanID    uuid.UUID      `json:"plan_id"`
	OwnerID   uuid.UUID      `json:"owner_id"`
	Items     []ShoppingItem `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewShoppingList sums ingredient lines by name and unit. Names compare
// case-insensitively; items come out sorted by name then unit.
func NewShoppingList(planID, ownerID uuid.UUID, lines []meal.Ingredient) *ShoppingList {
	type key struct{ name, unit string }
	totals := make(map[key]*ShoppingItem)

	for _, line := range lines {
		name := strings.TrimSpace(line.Name)
		if name == "" {
			continue
		}
		k := key{strings.ToLower(name), strings.ToLower(strings.TrimSpace(line.Unit))}
		item, ok := totals[k]
		if !ok {
			item = &ShoppingItem{Name: strings.ToLower(name), Unit: k.unit}
			totals[k] = item
		}
		item.Amount += line.Amount
	}

	items := make([]ShoppingItem, 0, len(totals))
	for _, item := range totals {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].Unit < items[j].Unit
	})

	return &ShoppingList{
		PlanID:    planID,
		OwnerID:   ownerID,
		Items:     items,
		CreatedAt: time.Now().UTC(),
	}
}
