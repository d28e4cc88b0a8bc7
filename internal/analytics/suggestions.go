package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/pennyflow/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// BudgetSuggestion is a proposed weekly budget for a category or an
// uncategorized spend group.
type BudgetSuggestion struct {
	Name                   string          `json:"name"`
	CategoryID             *uuid.UUID      `json:"categoryId,omitempty"`
	Uncategorized          bool            `json:"uncategorized"`
	UncategorizedKey       string          `json:"uncategorizedKey,omitempty"`
	UsageCount             uint            `json:"usageCount"`
	WeeklyAmount           decimal.Decimal `json:"weeklyAmount"`
	RecurringTransactionID *uuid.UUID      `json:"recurringTransactionId,omitempty"`
}

// SuggestBudgets proposes weekly budget amounts normalized to the observed
// data window. Suggestions below the minimum weekly threshold are dropped,
// except for categories with a recurring transaction: a known bill is
// always worth surfacing.
//
// Uncategorized groups come first in the result, then categories with an
// active recurring match, then categories by usage count, then by the
// suggested amount.
func (s *Service) SuggestBudgets() ([]BudgetSuggestion, error) {
	from, to, ok, err := models.TransactionDateRange(s.db)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []BudgetSuggestion{}, nil
	}

	// The window end is exclusive, so the latest day must be included whole
	end := to.AddDate(0, 0, 1)

	// The weeks denominator floors at 1 so a window shorter than a week
	// does not inflate the suggestions
	weeks := decimal.NewFromInt(int64(dayGap(from, end))).Div(decimal.NewFromInt(7))
	if weeks.LessThan(decimal.NewFromInt(1)) {
		weeks = decimal.NewFromInt(1)
	}

	var categories []models.Category
	err = s.db.Find(&categories).Error
	if err != nil {
		return nil, err
	}

	var recurring []models.RecurringTransaction
	err = s.db.Find(&recurring).Error
	if err != nil {
		return nil, err
	}

	recurringByCategory := make(map[uuid.UUID]uuid.UUID)
	recurringByKey := make(map[string]uuid.UUID)
	for _, row := range recurring {
		if row.CategoryID != nil {
			recurringByCategory[*row.CategoryID] = row.ID
		}
		recurringByKey[row.Description] = row.ID
	}

	categorySums, err := models.ExpenseSumsByCategory(s.db, from, end)
	if err != nil {
		return nil, err
	}

	var suggestions []BudgetSuggestion

	// Uncategorized spend is grouped by normalized description, not by
	// category
	uncategorizedSums, err := s.uncategorizedSums(categories, from, end)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(uncategorizedSums))
	for key := range uncategorizedSums {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		weekly := uncategorizedSums[key].Div(weeks).Round(2)

		recurringID, hasRecurring := recurringByKey[key]
		bypass := hasRecurring && s.config.UncategorizedRecurringBypass
		if weekly.LessThan(s.config.MinWeeklySuggestion) && !bypass {
			continue
		}

		suggestion := BudgetSuggestion{
			Name:             key,
			Uncategorized:    true,
			UncategorizedKey: key,
			WeeklyAmount:     weekly,
		}
		if hasRecurring {
			id := recurringID
			suggestion.RecurringTransactionID = &id
		}

		suggestions = append(suggestions, suggestion)
	}

	for _, category := range categories {
		if category.IsUncategorized() {
			continue
		}

		total, ok := categorySums[category.ID]
		if !ok {
			continue
		}

		weekly := total.Div(weeks).Round(2)

		recurringID, hasRecurring := recurringByCategory[category.ID]
		if weekly.LessThan(s.config.MinWeeklySuggestion) && !hasRecurring {
			continue
		}

		suggestion := BudgetSuggestion{
			Name:         category.Name,
			CategoryID:   &category.ID,
			UsageCount:   category.UsageCount,
			WeeklyAmount: weekly,
		}
		if hasRecurring {
			id := recurringID
			suggestion.RecurringTransactionID = &id
		}

		suggestions = append(suggestions, suggestion)
	}

	slices.SortStableFunc(suggestions, compareSuggestions)

	return suggestions, nil
}

// uncategorizedSums sums expense spend per normalized description for all
// transactions that have no category or the reserved uncategorized one.
func (s *Service) uncategorizedSums(categories []models.Category, from, to time.Time) (map[string]decimal.Decimal, error) {
	uncategorizedIDs := make(map[uuid.UUID]bool)
	for _, category := range categories {
		if category.IsUncategorized() {
			uncategorizedIDs[category.ID] = true
		}
	}

	expenses, err := models.TransactionsInRange(s.db, models.TransactionTypeExpense, from, to)
	if err != nil {
		return nil, err
	}

	sums := make(map[string]decimal.Decimal)
	for _, transaction := range expenses {
		if transaction.CategoryID != nil && !uncategorizedIDs[*transaction.CategoryID] {
			continue
		}

		key := NormalizeDescription(transaction.Description)
		if key == "" {
			continue
		}

		sums[key] = sums[key].Add(transaction.Amount.Abs())
	}

	return sums, nil
}

// compareSuggestions orders the suggestions so the most actionable ones
// come first.
func compareSuggestions(a, b BudgetSuggestion) int {
	if a.Uncategorized != b.Uncategorized {
		if a.Uncategorized {
			return -1
		}
		return 1
	}

	aRecurring := a.RecurringTransactionID != nil
	bRecurring := b.RecurringTransactionID != nil
	if !a.Uncategorized && aRecurring != bRecurring {
		if aRecurring {
			return -1
		}
		return 1
	}

	if a.UsageCount != b.UsageCount {
		if a.UsageCount > b.UsageCount {
			return -1
		}
		return 1
	}

	return b.WeeklyAmount.Cmp(a.WeeklyAmount)
}
