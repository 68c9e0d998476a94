// Package plan contains the day and week plan aggregates produced by the
// planner. These are the only planning objects that cross into persistence.
package plan

import (
	"sort"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/alchemorsel/mealplan/internal/domain/shared"
	"github.com/google/uuid"
)

// DaysPerWeek is the fixed length of a week plan
const DaysPerWeek = 7

// Provenance records how a week plan was authored
type Provenance string

const (
	ProvenanceGenerated Provenance = "GENERATED"
	ProvenanceManual    Provenance = "MANUAL"
)

// Meal is one recipe assigned to one slot of a day
type Meal struct {
	MealType meal.MealType
	Position int
	RecipeID meal.RecipeID
	Facts    meal.Facts
}

// DayPlan is the persisted record of a single calendar day
type DayPlan struct {
	Date    time.Time
	Meals   []Meal
	Totals  meal.Facts
	Fitness float64 // deviation score of the winning genome, zero for manual days
}

// NewDayPlan builds a day from its meals, computing totals from the meal facts
func NewDayPlan(date time.Time, meals []Meal) (DayPlan, error) {
	if err := validateMeals(meals); err != nil {
		return DayPlan{}, err
	}

	facts := make([]meal.Facts, len(meals))
	for i, m := range meals {
		facts[i] = m.Facts
	}

	return DayPlan{
		Date:   CalendarDate(date),
		Meals:  sortedMeals(meals),
		Totals: meal.Sum(facts...),
	}, nil
}

// NewGeneratedDayPlan builds a day from an engine result, taking the totals
// and fitness the engine already computed
func NewGeneratedDayPlan(date time.Time, meals []Meal, totals meal.Facts, fitness float64) (DayPlan, error) {
	if err := validateMeals(meals); err != nil {
		return DayPlan{}, err
	}
	return DayPlan{
		Date:    CalendarDate(date),
		Meals:   sortedMeals(meals),
		Totals:  totals,
		Fitness: fitness,
	}, nil
}

// RecipeIDs lists the recipes of the day in slot order
func (d DayPlan) RecipeIDs() []meal.RecipeID {
	ids := make([]meal.RecipeID, len(d.Meals))
	for i, m := range d.Meals {
		ids[i] = m.RecipeID
	}
	return ids
}

// WeekPlan is the aggregate root for a week of meals
type WeekPlan struct {
	shared.AggregateRoot

	id         uuid.UUID
	ownerID    uuid.UUID
	authorID   uuid.UUID
	startDate  time.Time
	provenance Provenance
	seed       uint64
	days       []DayPlan
	totals     meal.Facts
	createdAt  time.Time
}

// NewGeneratedWeekPlan assembles seven engine-generated days into a plan
// and raises PlanGeneratedEvent
func NewGeneratedWeekPlan(ownerID, authorID uuid.UUID, startDate time.Time, seed uint64, days []DayPlan) (*WeekPlan, error) {
	if len(days) != DaysPerWeek {
		return nil, ErrIncompleteWeek
	}

	wp, err := newWeekPlan(ownerID, authorID, startDate, ProvenanceGenerated, days)
	if err != nil {
		return nil, err
	}
	wp.seed = seed

	wp.AddEvent(PlanGeneratedEvent{
		PlanID:      wp.id,
		OwnerID:     ownerID,
		Plan:        wp,
		GeneratedAt: wp.createdAt,
	})

	return wp, nil
}

// NewManualWeekPlan builds a hand-authored plan. Manual plans may leave days empty.
func NewManualWeekPlan(ownerID, authorID uuid.UUID, startDate time.Time, days []DayPlan) (*WeekPlan, error) {
	if len(days) == 0 || len(days) > DaysPerWeek {
		return nil, ErrInvalidDayCount
	}
	return newWeekPlan(ownerID, authorID, startDate, ProvenanceManual, days)
}

func newWeekPlan(ownerID, authorID uuid.UUID, startDate time.Time, provenance Provenance, days []DayPlan) (*WeekPlan, error) {
	if ownerID == uuid.Nil {
		return nil, ErrMissingOwner
	}
	if authorID == uuid.Nil {
		authorID = ownerID
	}

	start := CalendarDate(startDate)
	if err := validateDays(start, days); err != nil {
		return nil, err
	}

	ordered := make([]DayPlan, len(days))
	copy(ordered, days)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	return &WeekPlan{
		id:         uuid.New(),
		ownerID:    ownerID,
		authorID:   authorID,
		startDate:  start,
		provenance: provenance,
		days:       ordered,
		totals:     WeekTotals(ordered),
		createdAt:  time.Now().UTC(),
	}, nil
}

// Reconstitute rebuilds a plan loaded from storage without raising events
func Reconstitute(
	id, ownerID, authorID uuid.UUID,
	startDate time.Time,
	provenance Provenance,
	seed uint64,
	days []DayPlan,
	createdAt time.Time,
) *WeekPlan {
	return &WeekPlan{
		id:         id,
		ownerID:    ownerID,
		authorID:   authorID,
		startDate:  CalendarDate(startDate),
		provenance: provenance,
		seed:       seed,
		days:       days,
		totals:     WeekTotals(days),
		createdAt:  createdAt,
	}
}

// ID returns the plan's unique identifier
func (w *WeekPlan) ID() uuid.UUID { return w.id }

// OwnerID returns the user the plan was made for
func (w *WeekPlan) OwnerID() uuid.UUID { return w.ownerID }

// AuthorID returns the user who requested or wrote the plan
func (w *WeekPlan) AuthorID() uuid.UUID { return w.authorID }

// StartDate returns the first calendar day of the plan
func (w *WeekPlan) StartDate() time.Time { return w.startDate }

// Provenance returns whether the plan was generated or written by hand
func (w *WeekPlan) Provenance() Provenance { return w.provenance }

// Seed returns the random seed used to generate the plan
func (w *WeekPlan) Seed() uint64 { return w.seed }

// Days returns the day records ordered by date
func (w *WeekPlan) Days() []DayPlan { return w.days }

// Totals returns the sum of all day totals
func (w *WeekPlan) Totals() meal.Facts { return w.totals }

// CreatedAt returns when the plan was built
func (w *WeekPlan) CreatedAt() time.Time { return w.createdAt }

// RecipeIDs lists every recipe served during the week, repeats included
func (w *WeekPlan) RecipeIDs() []meal.RecipeID {
	var ids []meal.RecipeID
	for _, d := range w.days {
		ids = append(ids, d.RecipeIDs()...)
	}
	return ids
}

// WeekTotals sums day totals with the same arithmetic used for every aggregate
func WeekTotals(days []DayPlan) meal.Facts {
	facts := make([]meal.Facts, len(days))
	for i, d := range days {
		facts[i] = d.Totals
	}
	return meal.Sum(facts...)
}

// CalendarDate truncates t to midnight UTC of its calendar day
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validateMeals(meals []Meal) error {
	if len(meals) == 0 {
		return ErrEmptyDay
	}
	seen := make(map[int]bool, len(meals))
	for _, m := range meals {
		if seen[m.Position] {
			return ErrDuplicateSlot
		}
		seen[m.Position] = true
		if m.RecipeID == "" {
			return ErrMissingRecipe
		}
		if err := m.Facts.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func validateDays(start time.Time, days []DayPlan) error {
	end := start.AddDate(0, 0, DaysPerWeek)
	seen := make(map[time.Time]bool, len(days))
	for _, d := range days {
		date := CalendarDate(d.Date)
		if date.Before(start) || !date.Before(end) {
			return ErrDayOutsideWeek
		}
		if seen[date] {
			return ErrDuplicateDay
		}
		seen[date] = true
	}
	return nil
}

func sortedMeals(meals []Meal) []Meal {
	out := make([]Meal, len(meals))
	copy(out, meals)
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}
