package plan

import "errors"

// Domain errors for plan construction

var (
	// Day validation errors
	ErrEmptyDay      = errors.New("day plan must contain at least one meal")
	ErrDuplicateSlot = errors.New("day plan assigns the same slot twice")
	ErrMissingRecipe = errors.New("meal must reference a recipe")

	// Week validation errors
	ErrIncompleteWeek  = errors.New("generated week plan must contain exactly seven days")
	ErrInvalidDayCount = errors.New("week plan must contain between one and seven days")
	ErrDayOutsideWeek  = errors.New("day falls outside the plan's week")
	ErrDuplicateDay    = errors.New("week plan contains the same date twice")
	ErrMissingOwner    = errors.New("week plan requires an owner")

	ErrPlanNotFound = errors.New("week plan not found")
)
