package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/pennyflow/backend/internal/models"
	"github.com/pennyflow/backend/internal/types"
	"github.com/shopspring/decimal"
)

// ComparisonStatus classifies a budget target against its trailing average.
type ComparisonStatus string

const (
	ComparisonOverBudget  ComparisonStatus = "over-budget"
	ComparisonUnderBudget ComparisonStatus = "under-budget"
	ComparisonOnTrack     ComparisonStatus = "on-track"
)

// The ±15% band is deliberate hysteresis: ordinary week-to-week variance
// should not be reported as a persistent problem.
var (
	overBudgetFactor  = decimal.NewFromFloat(1.15)
	underBudgetFactor = decimal.NewFromFloat(0.85)
)

// BudgetComparison compares one merged budget target's spend in the target
// week against its trailing four-week average.
type BudgetComparison struct {
	Kind           models.ReportLineKind `json:"kind"`
	Name           string                `json:"name"`
	CategoryID     *uuid.UUID            `json:"categoryId,omitempty"`
	GoalID         *uuid.UUID            `json:"goalId,omitempty"`
	Key            string                `json:"key,omitempty"`
	Limit          decimal.Decimal       `json:"limit"`
	ThisWeekSpend  decimal.Decimal       `json:"thisWeekSpend"`
	WeeklyAvgSpend decimal.Decimal       `json:"weeklyAvgSpend"`
	Status         ComparisonStatus      `json:"status"`
}

// CompareBudgets computes the week-over-week comparison for every merged
// budget target. Targets without spend in the target week and the trailing
// window are skipped.
func (s *Service) CompareBudgets(week types.Week) ([]BudgetComparison, error) {
	var budgets []models.Budget
	err := s.db.Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	err = s.db.Find(&categories).Error
	if err != nil {
		return nil, err
	}

	var goals []models.Goal
	err = s.db.Find(&goals).Error
	if err != nil {
		return nil, err
	}

	var recurring []models.RecurringTransaction
	err = s.db.Find(&recurring).Error
	if err != nil {
		return nil, err
	}

	targets := s.mergeBudgetTargets(budgets, categories, goals, recurring)

	thisWeekCategory, thisWeekUncategorized, err := s.spendByTarget(categories, week.Start(), week.End())
	if err != nil {
		return nil, err
	}

	// The trailing window covers the four complete weeks before the target
	// week
	trailingCategory, trailingUncategorized, err := s.spendByTarget(categories, week.AddWeeks(-4).Start(), week.Start())
	if err != nil {
		return nil, err
	}

	four := decimal.NewFromInt(4)
	var comparisons []BudgetComparison

	for _, target := range targets {
		var thisWeek, trailing decimal.Decimal

		switch target.kind {
		case models.ReportLineCategory:
			thisWeek = thisWeekCategory[*target.categoryID]
			trailing = trailingCategory[*target.categoryID]
		case models.ReportLineUncategorized:
			thisWeek = thisWeekUncategorized[target.key]
			trailing = trailingUncategorized[target.key]
		default:
			// Goal targets carry no transaction spend
			continue
		}

		if thisWeek.LessThanOrEqual(s.config.Epsilon) && trailing.LessThanOrEqual(s.config.Epsilon) {
			continue
		}

		average := trailing.Div(four).Round(2)

		status := ComparisonOnTrack
		switch {
		case average.GreaterThan(target.limit.Mul(overBudgetFactor)):
			status = ComparisonOverBudget
		case average.LessThan(target.limit.Mul(underBudgetFactor)):
			status = ComparisonUnderBudget
		}

		comparisons = append(comparisons, BudgetComparison{
			Kind:           target.kind,
			Name:           target.name,
			CategoryID:     target.categoryID,
			GoalID:         target.goalID,
			Key:            target.key,
			Limit:          target.limit,
			ThisWeekSpend:  thisWeek,
			WeeklyAvgSpend: average,
			Status:         status,
		})
	}

	return comparisons, nil
}

// spendByTarget attributes expense spend in [from, to) to category IDs and
// uncategorized description keys, the same way the report generator does.
func (s *Service) spendByTarget(categories []models.Category, from, to time.Time) (map[uuid.UUID]decimal.Decimal, map[string]decimal.Decimal, error) {
	uncategorizedIDs := make(map[uuid.UUID]bool)
	for _, category := range categories {
		if category.IsUncategorized() {
			uncategorizedIDs[category.ID] = true
		}
	}

	expenses, err := models.TransactionsInRange(s.db, models.TransactionTypeExpense, from, to)
	if err != nil {
		return nil, nil, err
	}

	categorySpend := make(map[uuid.UUID]decimal.Decimal)
	uncategorizedSpend := make(map[string]decimal.Decimal)
	for _, transaction := range expenses {
		amount := transaction.Amount.Abs()

		if transaction.CategoryID != nil && !uncategorizedIDs[*transaction.CategoryID] {
			categorySpend[*transaction.CategoryID] = categorySpend[*transaction.CategoryID].Add(amount)
			continue
		}

		key := NormalizeDescription(transaction.Description)
		uncategorizedSpend[key] = uncategorizedSpend[key].Add(amount)
	}

	return categorySpend, uncategorizedSpend, nil
}
