package gorm

import (
	"context"
	"errors"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/alchemorsel/mealplan/internal/domain/plan"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WeekPlanRepository implements week plan persistence using GORM
type WeekPlanRepository struct {
	db *gorm.DB
}

var _ outbound.WeekPlanRepository = (*WeekPlanRepository)(nil)

// NewWeekPlanRepository creates a new week plan repository
func NewWeekPlanRepository(db *gorm.DB) *WeekPlanRepository {
	return &WeekPlanRepository{db: db}
}

// Save writes the plan with its days and meals in one transaction
func (r *WeekPlanRepository) Save(ctx context.Context, wp *plan.WeekPlan) error {
	model := WeekPlanToModel(wp)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Create(model).Error
	})
}

// FindByID finds a week plan by ID
func (r *WeekPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*plan.WeekPlan, error) {
	var model WeekPlanModel
	result := preloadDays(r.db.WithContext(ctx)).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, plan.ErrPlanNotFound
		}
		return nil, result.Error
	}
	return ModelToWeekPlan(&model)
}

// FindByOwner lists an owner's plans with pagination, latest week first
func (r *WeekPlanRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*plan.WeekPlan, int, error) {
	var models []WeekPlanModel
	var total int64

	// Count total
	countResult := r.db.WithContext(ctx).Model(&WeekPlanModel{}).
		Where("owner_id = ?", ownerID).
		Count(&total)
	if countResult.Error != nil {
		return nil, 0, countResult.Error
	}

	// Get plans
	result := preloadDays(r.db.WithContext(ctx)).
		Where("owner_id = ?", ownerID).
		Order("start_date DESC").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	plans := make([]*plan.WeekPlan, len(models))
	for i := range models {
		wp, err := ModelToWeekPlan(&models[i])
		if err != nil {
			return nil, 0, err
		}
		plans[i] = wp
	}

	return plans, int(total), nil
}

func preloadDays(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Days", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		Preload("Days.Meals", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") })
}

// ProfileRepository implements nutrition profile persistence using GORM
type ProfileRepository struct {
	db *gorm.DB
}

var _ outbound.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetNutritionTargetForUser loads a user's daily target
func (r *ProfileRepository) GetNutritionTargetForUser(ctx context.Context, userID uuid.UUID) (meal.Target, error) {
	var model NutritionProfileModel
	result := r.db.WithContext(ctx).First(&model, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return meal.Target{}, outbound.ErrProfileNotFound
		}
		return meal.Target{}, result.Error
	}

	diet, err := meal.ParseDietType(model.DietType)
	if err != nil {
		return meal.Target{}, err
	}

	return meal.Target{
		DailyCalories:     model.DailyCalories,
		DailyCarbsGrams:   model.DailyCarbsGrams,
		DailyProteinGrams: model.DailyProteinGrams,
		DailyFatGrams:     model.DailyFatGrams,
		DietType:          diet,
	}, nil
}

// SaveNutritionTarget creates or replaces a user's target
func (r *ProfileRepository) SaveNutritionTarget(ctx context.Context, userID uuid.UUID, target meal.Target) error {
	if err := target.Validate(); err != nil {
		return err
	}

	model := &NutritionProfileModel{
		UserID:            userID,
		DailyCalories:     target.DailyCalories,
		DailyCarbsGrams:   target.DailyCarbsGrams,
		DailyProteinGrams: target.DailyProteinGrams,
		DailyFatGrams:     target.DailyFatGrams,
		DietType:          string(target.DietType),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"daily_calories", "daily_carbs_grams", "daily_protein_grams", "daily_fat_grams", "diet_type", "updated_at"}),
		}).
		Create(model).Error
}

// ShoppingListRepository implements shopping list persistence using GORM
type ShoppingListRepository struct {
	db *gorm.DB
}

var _ outbound.ShoppingListRepository = (*ShoppingListRepository)(nil)

// NewShoppingListRepository creates a new shopping list repository
func NewShoppingListRepository(db *gorm.DB) *ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

// Save creates or replaces the list of a plan
func (r *ShoppingListRepository) Save(ctx context.Context, list *plan.ShoppingList) error {
	model := ShoppingListToModel(list)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "plan_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"items", "created_at"}),
		}).
		Create(model).Error
}

// FindByPlanID loads the list of a plan
func (r *ShoppingListRepository) FindByPlanID(ctx context.Context, planID uuid.UUID) (*plan.ShoppingList, error) {
	var model ShoppingListModel
	result := r.db.WithContext(ctx).First(&model, "plan_id = ?", planID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, plan.ErrPlanNotFound
		}
		return nil, result.Error
	}
	return ModelToShoppingList(&model), nil
}
