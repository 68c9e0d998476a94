package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/alchemorsel/mealplan/internal/domain/plan"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/google/uuid"
)

// ProfileRepository keeps nutrition targets keyed by user
type ProfileRepository struct {
	mu      sync.RWMutex
	targets map[uuid.UUID]meal.Target
}

var _ outbound.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository creates an empty profile store
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{targets: make(map[uuid.UUID]meal.Target)}
}

func (r *ProfileRepository) GetNutritionTargetForUser(ctx context.Context, userID uuid.UUID) (meal.Target, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.targets[userID]
	if !ok {
		return meal.Target{}, outbound.ErrProfileNotFound
	}
	return t, nil
}

func (r *ProfileRepository) SaveNutritionTarget(ctx context.Context, userID uuid.UUID, target meal.Target) error {
	if err := target.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets[userID] = target
	return nil
}

// WeekPlanRepository keeps week plans in insertion order
type WeekPlanRepository struct {
	mu    sync.RWMutex
	plans map[uuid.UUID]*plan.WeekPlan
}

var _ outbound.WeekPlanRepository = (*WeekPlanRepository)(nil)

// NewWeekPlanRepository creates an empty plan store
func NewWeekPlanRepository() *WeekPlanRepository {
	return &WeekPlanRepository{plans: make(map[uuid.UUID]*plan.WeekPlan)}
}

func (r *WeekPlanRepository) Save(ctx context.Context, wp *plan.WeekPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[wp.ID()] = wp
	return nil
}

func (r *WeekPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*plan.WeekPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wp, ok := r.plans[id]
	if !ok {
		return nil, plan.ErrPlanNotFound
	}
	return wp, nil
}

// FindByOwner returns the owner's plans, newest start date first
func (r *WeekPlanRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*plan.WeekPlan, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := make([]*plan.WeekPlan, 0)
	for _, wp := range r.plans {
		if wp.OwnerID() == ownerID {
			owned = append(owned, wp)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].StartDate().Equal(owned[j].StartDate()) {
			return owned[i].StartDate().After(owned[j].StartDate())
		}
		return owned[i].CreatedAt().After(owned[j].CreatedAt())
	})

	total := len(owned)
	if offset >= total {
		return []*plan.WeekPlan{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return owned[offset:end], total, nil
}

// ShoppingListRepository keeps one list per plan
type ShoppingListRepository struct {
	mu    sync.RWMutex
	lists map[uuid.UUID]*plan.ShoppingList
}

var _ outbound.ShoppingListRepository = (*ShoppingListRepository)(nil)

// NewShoppingListRepository creates an empty shopping list store
func NewShoppingListRepository() *ShoppingListRepository {
	return &ShoppingListRepository{lists: make(map[uuid.UUID]*plan.ShoppingList)}
}

func (r *ShoppingListRepository) Save(ctx context.Context, list *plan.ShoppingList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists[list.PlanID] = list
	return nil
}

func (r *ShoppingListRepository) FindByPlanID(ctx context.Context, planID uuid.UUID) (*plan.ShoppingList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list, ok := r.lists[planID]
	if !ok {
		return nil, plan.ErrPlanNotFound
	}
	return list, nil
}
