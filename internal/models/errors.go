package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Constraint violations, translated by the create/update callback.
var (
	ErrCategoryNameNotUnique  = errors.New("the category name is already in use")
	ErrRecurringNotUnique     = errors.New("a recurring transaction for this description and frequency already exists")
	ErrProgressEntryNotUnique = errors.New("you can not create multiple progress log entries for the same goal and week")
	ErrReportWeekNotUnique    = errors.New("a weekly report for this week already exists")
)

// Transaction errors
var ErrTransactionTypeInvalid = errors.New("the transaction type must be one of income, expense, transfer")

// Budget errors
var (
	ErrBudgetTargetInvalid    = errors.New("a budget must reference exactly one of a category, a goal, or an uncategorized group")
	ErrBudgetLimitNegative    = errors.New("the weekly limit of a budget must not be negative")
	ErrBudgetRecurringInvalid = errors.New("the referenced recurring transaction does not exist")
)

// Goal errors
var (
	ErrGoalAmountNotPositive     = errors.New("goal amounts must be larger than zero")
	ErrGoalSavedAmountOutOfRange = errors.New("the saved amount of a goal must be between zero and the goal amount")
	ErrGoalContributionNegative  = errors.New("the weekly contribution of a goal must not be negative")
)

// Recurring transaction errors
var ErrRecurringFrequencyInvalid = errors.New("the frequency must be one of weekly, monthly")

// Progress log errors
var ErrProgressStatusInvalid = errors.New("the progress status must be one of pending, skipped, manual, credited")
