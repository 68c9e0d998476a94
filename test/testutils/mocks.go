// Package testutils provides mock implementations for testing
package testutils

import (
	"context"
	"sync"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/alchemorsel/mealplan/internal/domain/plan"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProfileService provides a mock implementation of ProfileService
type MockProfileService struct {
	mock.Mock
}

var _ outbound.ProfileService = (*MockProfileService)(nil)

// GetNutritionTargetForUser returns the stubbed target
func (m *MockProfileService) GetNutritionTargetForUser(ctx context.Context, userID uuid.UUID) (meal.Target, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(meal.Target), args.Error(1)
}

// MockDietResolver provides a mock implementation of DietCompatibilityResolver
type MockDietResolver struct {
	mock.Mock
}

var _ outbound.DietCompatibilityResolver = (*MockDietResolver)(nil)

// ResolveCompatibleDietTypes returns the stubbed diet list
func (m *MockDietResolver) ResolveCompatibleDietTypes(ctx context.Context, dietType meal.DietType) ([]meal.DietType, error) {
	args := m.Called(ctx, dietType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]meal.DietType), args.Error(1)
}

// MockRecipeCatalogue provides a mock implementation of RecipeCatalogue
type MockRecipeCatalogue struct {
	mock.Mock
}

var _ outbound.RecipeCatalogue = (*MockRecipeCatalogue)(nil)

// FindCandidateRecipes returns the stubbed candidates
func (m *MockRecipeCatalogue) FindCandidateRecipes(ctx context.Context, mealType meal.MealType, diets []meal.DietType) ([]meal.RecipeID, error) {
	args := m.Called(ctx, mealType, diets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]meal.RecipeID), args.Error(1)
}

// GetNutritionFacts returns the stubbed facts
func (m *MockRecipeCatalogue) GetNutritionFacts(ctx context.Context, id meal.RecipeID) (meal.Facts, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(meal.Facts), args.Error(1)
}

// MockIngredientSource provides a mock implementation of IngredientSource
type MockIngredientSource struct {
	mock.Mock
}

var _ outbound.IngredientSource = (*MockIngredientSource)(nil)

// GetIngredients returns the stubbed ingredient list
func (m *MockIngredientSource) GetIngredients(ctx context.Context, id meal.RecipeID) ([]meal.Ingredient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]meal.Ingredient), args.Error(1)
}

// MockWeekPlanRepository provides a mock implementation of WeekPlanRepository.
// Saved plans are kept so FindByID can serve them without a stub.
type MockWeekPlanRepository struct {
	mock.Mock
	plans map[uuid.UUID]*plan.WeekPlan
	mu    sync.RWMutex
}

var _ outbound.WeekPlanRepository = (*MockWeekPlanRepository)(nil)

// NewMockWeekPlanRepository creates a new mock week plan repository
func NewMockWeekPlanRepository() *MockWeekPlanRepository {
	return &MockWeekPlanRepository{
		plans: make(map[uuid.UUID]*plan.WeekPlan),
	}
}

// Save saves a week plan
func (m *MockWeekPlanRepository) Save(ctx context.Context, wp *plan.WeekPlan) error {
	args := m.Called(ctx, wp)

	if args.Error(0) == nil {
		m.mu.Lock()
		m.plans[wp.ID()] = wp
		m.mu.Unlock()
	}

	return args.Error(0)
}

// FindByID finds a week plan by ID
func (m *MockWeekPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*plan.WeekPlan, error) {
	args := m.Called(ctx, id)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if wp, exists := m.plans[id]; exists {
		return wp, nil
	}

	return args.Get(0).(*plan.WeekPlan), args.Error(1)
}

// FindByOwner returns the stubbed page
func (m *MockWeekPlanRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*plan.WeekPlan, int, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*plan.WeekPlan), args.Int(1), args.Error(2)
}

// MockShoppingListRepository provides a mock implementation of ShoppingListRepository
type MockShoppingListRepository struct {
	mock.Mock
}

var _ outbound.ShoppingListRepository = (*MockShoppingListRepository)(nil)

// Save saves a shopping list
func (m *MockShoppingListRepository) Save(ctx context.Context, list *plan.ShoppingList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

// FindByPlanID returns the stubbed list
func (m *MockShoppingListRepository) FindByPlanID(ctx context.Context, planID uuid.UUID) (*plan.ShoppingList, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plan.ShoppingList), args.Error(1)
}

// MockPlanNotifier records every generated-plan event it receives
type MockPlanNotifier struct {
	mock.Mock
	events []plan.PlanGeneratedEvent
	mu     sync.Mutex
}

var _ outbound.PlanNotifier = (*MockPlanNotifier)(nil)

// NewMockPlanNotifier creates a new mock notifier
func NewMockPlanNotifier() *MockPlanNotifier {
	return &MockPlanNotifier{}
}

// NotifyPlanGenerated records the event
func (m *MockPlanNotifier) NotifyPlanGenerated(ctx context.Context, event plan.PlanGeneratedEvent) error {
	args := m.Called(ctx, event)

	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()

	return args.Error(0)
}

// Events returns the received events
func (m *MockPlanNotifier) Events() []plan.PlanGeneratedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]plan.PlanGeneratedEvent, len(m.events))
	copy(out, m.events)
	return out
}

// MockCacheRepository provides a mock implementation of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

var _ outbound.CacheRepository = (*MockCacheRepository)(nil)

// Get retrieves a cached value
func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Set stores a value
func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// Delete removes a value
func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
