// Package gorm provides GORM model definitions and repositories for the
// recipe catalogue, nutrition profiles and week plans
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeModel represents the GORM model for catalogue recipes
type RecipeModel struct {
	ID       string `gorm:"type:varchar(64);primaryKey"`
	Title    string `gorm:"type:varchar(255);not null"`
	MealType string `gorm:"type:varchar(20);not null;index:idx_recipes_meal_diet,priority:1"`
	DietType string `gorm:"type:varchar(20);not null;index:idx_recipes_meal_diet,priority:2"`

	// Nutrition per serving
	Calories float64 `gorm:"not null;default:0"`
	Carbs    float64 `gorm:"not null;default:0"`
	Protein  float64 `gorm:"not null;default:0"`
	Fat      float64 `gorm:"not null;default:0"`

	Ingredients IngredientList `gorm:"type:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name
func (RecipeModel) TableName() string { return "recipes" }

// NutritionProfileModel stores a user's daily nutrition target
type NutritionProfileModel struct {
	UserID            uuid.UUID `gorm:"type:char(36);primaryKey"`
	DailyCalories     float64   `gorm:"not null"`
	DailyCarbsGrams   float64   `gorm:"not null;default:0"`
	DailyProteinGrams float64   `gorm:"not null;default:0"`
	DailyFatGrams     float64   `gorm:"not null;default:0"`
	DietType          string    `gorm:"type:varchar(20);not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the table name
func (NutritionProfileModel) TableName() string { return "nutrition_profiles" }

// WeekPlanModel represents the GORM model for week plans
type WeekPlanModel struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey"`
	OwnerID    uuid.UUID `gorm:"type:char(36);not null;index:idx_week_plans_owner_start,priority:1"`
	AuthorID   uuid.UUID `gorm:"type:char(36);not null"`
	StartDate  time.Time `gorm:"not null;index:idx_week_plans_owner_start,priority:2"`
	Provenance string    `gorm:"type:varchar(20);not null"`
	Seed       int64     // bit pattern of the uint64 seed

	// Denormalised week totals for reporting queries
	TotalCalories float64
	TotalCarbs    float64
	TotalProtein  float64
	TotalFat      float64

	CreatedAt time.Time

	// Relationships
	Days []DayPlanModel `gorm:"foreignKey:WeekPlanID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (WeekPlanModel) TableName() string { return "week_plans" }

// DayPlanModel represents one day of a week plan
type DayPlanModel struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	WeekPlanID uuid.UUID `gorm:"type:char(36);not null;index"`
	Date       time.Time `gorm:"not null"`
	Fitness    float64

	Calories float64
	Carbs    float64
	Protein  float64
	Fat      float64

	Meals []DayMealModel `gorm:"foreignKey:DayPlanID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (DayPlanModel) TableName() string { return "day_plans" }

// DayMealModel is one slot assignment of a day
type DayMealModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	DayPlanID uint   `gorm:"not null;index"`
	Position  int    `gorm:"not null"`
	MealType  string `gorm:"type:varchar(20);not null"`
	RecipeID  string `gorm:"type:varchar(64);not null;index"`

	Calories float64
	Carbs    float64
	Protein  float64
	Fat      float64
}

// TableName specifies the table name
func (DayMealModel) TableName() string { return "day_meals" }

// ShoppingListModel stores the aggregated ingredients of a plan
type ShoppingListModel struct {
	PlanID    uuid.UUID    `gorm:"type:char(36);primaryKey"`
	OwnerID   uuid.UUID    `gorm:"type:char(36);not null;index"`
	Items     ShoppingRows `gorm:"type:json"`
	CreatedAt time.Time
}

// TableName specifies the table name
func (ShoppingListModel) TableName() string { return "shopping_lists" }

// AllModels lists every model for AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&RecipeModel{},
		&NutritionProfileModel{},
		&WeekPlanModel{},
		&DayPlanModel{},
		&DayMealModel{},
		&ShoppingListModel{},
	}
}

// IngredientRow is the stored form of one ingredient line
type IngredientRow struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// IngredientList custom type for handling JSON ingredient arrays
type IngredientList []IngredientRow

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	return scanJSON(value, l, "IngredientList")
}

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// ShoppingRow is the stored form of one shopping list item
type ShoppingRow struct {
	Name   string  `json:"name"`
	Unit   string  `json:"unit"`
	Amount float64 `json:"amount"`
}

// ShoppingRows custom type for handling JSON shopping items
type ShoppingRows []ShoppingRow

// Scan implements the sql.Scanner interface
func (r *ShoppingRows) Scan(value interface{}) error {
	return scanJSON(value, r, "ShoppingRows")
}

// Value implements the driver.Valuer interface
func (r ShoppingRows) Value() (driver.Value, error) {
	if len(r) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func scanJSON(value interface{}, dest interface{}, name string) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("cannot scan %T into %s", value, name)
	}
}

// BeforeCreate hook for WeekPlanModel
func (w *WeekPlanModel) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
