// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the use cases the planner exposes to a presentation layer
package inbound

import (
	"context"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/alchemorsel/mealplan/internal/domain/plan"
	"github.com/google/uuid"
)

// MealPlanService defines the week planning use cases
type MealPlanService interface {
	// Commands
	GenerateWeekPlan(ctx context.Context, cmd GenerateWeekPlanCommand) (*WeekPlanDTO, error)
	CreateManualWeekPlan(ctx context.Context, cmd CreateManualWeekPlanCommand) (*WeekPlanDTO, error)

	// Queries
	GetWeekPlan(ctx context.Context, planID uuid.UUID) (*WeekPlanDTO, error)
	ListWeekPlans(ctx context.Context, ownerID uuid.UUID, params PaginationParams) (*WeekPlanList, error)
}

// GenerateWeekPlanCommand requests an engine-built week
type GenerateWeekPlanCommand struct {
	UserID    uuid.UUID
	AuthorID  uuid.UUID // defaults to UserID
	StartDate time.Time
	Seed      *uint64 // fixed seed for reproducible plans
}

// CreateManualWeekPlanCommand contains a hand-authored week
type CreateManualWeekPlanCommand struct {
	UserID    uuid.UUID
	AuthorID  uuid.UUID
	StartDate time.Time
	Days      []ManualDayCommand
}

// ManualDayCommand lists the recipes chosen for one date
type ManualDayCommand struct {
	Date  time.Time
	Meals []ManualMealCommand
}

// ManualMealCommand assigns a recipe to a slot
type ManualMealCommand struct {
	MealType meal.MealType
	Position int
	RecipeID meal.RecipeID
}

// PaginationParams for paginated queries
type PaginationParams struct {
	Page     int
	PageSize int
}

// NutritionDTO for nutrition totals
type NutritionDTO struct {
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
}

// MealDTO for a slot assignment
type MealDTO struct {
	MealType  meal.MealType `json:"meal_type"`
	Position  int           `json:"position"`
	RecipeID  meal.RecipeID `json:"recipe_id"`
	Nutrition NutritionDTO  `json:"nutrition"`
}

// DayPlanDTO for a planned day
type DayPlanDTO struct {
	Date    string       `json:"date"`
	Meals   []MealDTO    `json:"meals"`
	Totals  NutritionDTO `json:"totals"`
	Fitness float64      `json:"fitness"`
}

// WeekPlanDTO is the data transfer object for week plans
type WeekPlanDTO struct {
	ID         uuid.UUID       `json:"id"`
	OwnerID    uuid.UUID       `json:"owner_id"`
	AuthorID   uuid.UUID       `json:"author_id"`
	StartDate  string          `json:"start_date"`
	Provenance plan.Provenance `json:"provenance"`
	Seed       uint64          `json:"seed,omitempty"`
	Days       []DayPlanDTO    `json:"days"`
	Totals     NutritionDTO    `json:"totals"`
	CreatedAt  string          `json:"created_at"`
}

// WeekPlanList for paginated results
type WeekPlanList struct {
	Plans      []WeekPlanDTO `json:"plans"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}
