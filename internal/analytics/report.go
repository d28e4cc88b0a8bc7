package analytics

import (
	"github.com/google/uuid"
	"github.com/pennyflow/backend/internal/models"
	"github.com/pennyflow/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// ReportOptions control one report generation run.
type ReportOptions struct {
	// Commit persists the report and the goal ledger entries. Without it
	// the run is a preview: the same numbers, no writes.
	Commit bool

	// PreviousWeekIncome reports the prior week's income instead of the
	// report week's own. Used while a week is still running, so a partial
	// income total is not mistaken for a low-income week.
	PreviousWeekIncome bool
}

// mergedTarget is the result of combining all budget rows that resolve to
// the same category, goal or uncategorized key, so spend is attributed
// exactly once.
type mergedTarget struct {
	kind                   models.ReportLineKind
	name                   string
	categoryID             *uuid.UUID
	goalID                 *uuid.UUID
	key                    string
	limit                  decimal.Decimal
	recurringTransactionID *uuid.UUID
}

// GenerateWeeklyReport reconciles budgets, spend, income and goal progress
// for one week.
//
// In commit mode the goal ledger writes and the report upsert run inside a
// single database transaction: either the whole week is recorded or none of
// it. Committing the same week again yields an identical report and no
// duplicate ledger entries.
func (s *Service) GenerateWeeklyReport(week types.Week, opts ReportOptions) (models.WeeklyReport, error) {
	var budgets []models.Budget
	err := s.db.Find(&budgets).Error
	if err != nil {
		return models.WeeklyReport{}, err
	}

	var categories []models.Category
	err = s.db.Find(&categories).Error
	if err != nil {
		return models.WeeklyReport{}, err
	}

	var goals []models.Goal
	err = s.db.Order("name asc").Find(&goals).Error
	if err != nil {
		return models.WeeklyReport{}, err
	}

	var recurring []models.RecurringTransaction
	err = s.db.Find(&recurring).Error
	if err != nil {
		return models.WeeklyReport{}, err
	}

	targets := s.mergeBudgetTargets(budgets, categories, goals, recurring)

	// Attribute the week's spend
	categorySpend, uncategorizedSpend, err := s.spendByTarget(categories, week.Start(), week.End())
	if err != nil {
		return models.WeeklyReport{}, err
	}

	totalSpent := decimal.Zero
	for _, amount := range categorySpend {
		totalSpent = totalSpent.Add(amount)
	}
	for _, amount := range uncategorizedSpend {
		totalSpent = totalSpent.Add(amount)
	}

	income, err := models.IncomeSum(s.db, week.Start(), week.End())
	if err != nil {
		return models.WeeklyReport{}, err
	}

	displayIncome := income
	if opts.PreviousWeekIncome {
		displayIncome, err = models.IncomeSum(s.db, week.Previous().Start(), week.Previous().End())
		if err != nil {
			return models.WeeklyReport{}, err
		}
	}

	// The goal ledger decides on leftover cash of the report week itself,
	// independent of the income display mode
	leftover := income.GreaterThan(totalSpent)

	entries, err := s.plannedEntries(goals, week, leftover)
	if err != nil {
		return models.WeeklyReport{}, err
	}

	report := s.assembleReport(week, targets, goals, entries, categories, categorySpend, uncategorizedSpend, totalSpent, displayIncome)

	if !opts.Commit {
		return report, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i := range goals {
			_, err := s.recordWeeklyEvaluation(tx, &goals[i], week, leftover)
			if err != nil {
				return err
			}
		}

		return upsertReport(tx, report)
	})
	if err != nil {
		return models.WeeklyReport{}, err
	}

	return report, nil
}

// mergeBudgetTargets groups budget rows by their effective target so spend
// is attributed exactly once. A budget pointing at the reserved
// uncategorized category that carries a recurring transaction reference is
// re-keyed to that recurring transaction's normalized description: it
// tracks one specific bill, not the aggregate uncategorized bucket.
func (s *Service) mergeBudgetTargets(budgets []models.Budget, categories []models.Category, goals []models.Goal, recurring []models.RecurringTransaction) []mergedTarget {
	categoryNames := make(map[uuid.UUID]string, len(categories))
	uncategorizedIDs := make(map[uuid.UUID]bool)
	for _, category := range categories {
		categoryNames[category.ID] = category.Name
		if category.IsUncategorized() {
			uncategorizedIDs[category.ID] = true
		}
	}

	goalNames := make(map[uuid.UUID]string, len(goals))
	for _, goal := range goals {
		goalNames[goal.ID] = goal.Name
	}

	recurringByID := make(map[uuid.UUID]models.RecurringTransaction, len(recurring))
	for _, row := range recurring {
		recurringByID[row.ID] = row
	}

	merged := make(map[string]*mergedTarget)
	var order []string

	add := func(mapKey string, target mergedTarget) {
		existing, ok := merged[mapKey]
		if !ok {
			order = append(order, mapKey)
			copied := target
			merged[mapKey] = &copied
			return
		}

		existing.limit = existing.limit.Add(target.limit)
		if existing.recurringTransactionID == nil {
			existing.recurringTransactionID = target.recurringTransactionID
		}
	}

	for _, budget := range budgets {
		switch {
		case budget.GoalID != nil:
			add("goal/"+budget.GoalID.String(), mergedTarget{
				kind:                   models.ReportLineGoal,
				name:                   goalNames[*budget.GoalID],
				goalID:                 budget.GoalID,
				limit:                  budget.WeeklyLimit,
				recurringTransactionID: budget.RecurringTransactionID,
			})

		case budget.UncategorizedKey != nil:
			add("uncategorized/"+*budget.UncategorizedKey, mergedTarget{
				kind:                   models.ReportLineUncategorized,
				name:                   *budget.UncategorizedKey,
				key:                    *budget.UncategorizedKey,
				limit:                  budget.WeeklyLimit,
				recurringTransactionID: budget.RecurringTransactionID,
			})

		case budget.CategoryID != nil:
			// A budget on the reserved uncategorized category that tracks a
			// specific recurring bill is re-keyed to that bill
			if uncategorizedIDs[*budget.CategoryID] && budget.RecurringTransactionID != nil {
				if row, ok := recurringByID[*budget.RecurringTransactionID]; ok {
					add("uncategorized/"+row.Description, mergedTarget{
						kind:                   models.ReportLineUncategorized,
						name:                   row.Description,
						key:                    row.Description,
						limit:                  budget.WeeklyLimit,
						recurringTransactionID: budget.RecurringTransactionID,
					})
					continue
				}
			}

			add("category/"+budget.CategoryID.String(), mergedTarget{
				kind:                   models.ReportLineCategory,
				name:                   categoryNames[*budget.CategoryID],
				categoryID:             budget.CategoryID,
				limit:                  budget.WeeklyLimit,
				recurringTransactionID: budget.RecurringTransactionID,
			})
		}
	}

	targets := make([]mergedTarget, 0, len(order))
	for _, mapKey := range order {
		targets = append(targets, *merged[mapKey])
	}

	slices.SortStableFunc(targets, func(a, b mergedTarget) int {
		if a.kind != b.kind {
			return kindRank(a.kind) - kindRank(b.kind)
		}
		if a.name != b.name {
			if a.name < b.name {
				return -1
			}
			return 1
		}
		return 0
	})

	return targets
}

func kindRank(kind models.ReportLineKind) int {
	switch kind {
	case models.ReportLineCategory:
		return 0
	case models.ReportLineUncategorized:
		return 1
	default:
		return 2
	}
}

// assembleReport builds the report struct from the attributed spend and the
// planned ledger entries. Every expense dollar of the week lands in exactly
// one non-goal line; goal lines carry this week's ledger credits.
func (s *Service) assembleReport(
	week types.Week,
	targets []mergedTarget,
	goals []models.Goal,
	entries map[uuid.UUID]models.GoalProgressLogEntry,
	categories []models.Category,
	categorySpend map[uuid.UUID]decimal.Decimal,
	uncategorizedSpend map[string]decimal.Decimal,
	totalSpent decimal.Decimal,
	displayIncome decimal.Decimal,
) models.WeeklyReport {
	var lines []models.WeeklyReportLine

	claimedCategories := make(map[uuid.UUID]bool)
	claimedKeys := make(map[string]bool)
	budgetedGoals := make(map[uuid.UUID]bool)

	totalBudget := decimal.Zero
	goalBudget := decimal.Zero
	discretionarySpend := decimal.Zero

	for _, target := range targets {
		totalBudget = totalBudget.Add(target.limit)

		line := models.WeeklyReportLine{
			Kind:                   target.kind,
			Name:                   target.name,
			Limit:                  target.limit,
			Budgeted:               true,
			RecurringTransactionID: target.recurringTransactionID,
		}

		switch target.kind {
		case models.ReportLineCategory:
			line.CategoryID = target.categoryID
			line.Spent = categorySpend[*target.categoryID]
			claimedCategories[*target.categoryID] = true

		case models.ReportLineUncategorized:
			line.Key = target.key
			line.Spent = uncategorizedSpend[target.key]
			claimedKeys[target.key] = true

		case models.ReportLineGoal:
			goalBudget = goalBudget.Add(target.limit)
			budgetedGoals[*target.goalID] = true
			// Goal lines are filled from the ledger below
			continue
		}

		// Only the overage above the limit counts against the money left
		// to spend for budgeted targets
		discretionarySpend = discretionarySpend.Add(decimal.Max(line.Spent.Sub(line.Limit), decimal.Zero))

		lines = append(lines, line)
	}

	// Categorized spend without a budget counts in full
	for _, category := range categories {
		spent, ok := categorySpend[category.ID]
		if !ok || claimedCategories[category.ID] {
			continue
		}

		lines = append(lines, models.WeeklyReportLine{
			Kind:       models.ReportLineCategory,
			Name:       category.Name,
			CategoryID: &category.ID,
			Spent:      spent,
		})

		discretionarySpend = discretionarySpend.Add(spent)
	}

	// Whatever uncategorized spend no specific group claimed lands in a
	// single catch-all line
	otherUncategorized := decimal.Zero
	for key, spent := range uncategorizedSpend {
		if claimedKeys[key] {
			continue
		}
		otherUncategorized = otherUncategorized.Add(spent)
	}

	if otherUncategorized.GreaterThan(s.config.Epsilon) {
		lines = append(lines, models.WeeklyReportLine{
			Kind:  models.ReportLineUncategorized,
			Name:  "Other Uncategorized",
			Spent: otherUncategorized,
		})

		discretionarySpend = discretionarySpend.Add(otherUncategorized)
	}

	// Goal lines carry this week's ledger credit
	goalSpend := decimal.Zero
	for _, goal := range goals {
		entry := entries[goal.ID]
		goalSpend = goalSpend.Add(entry.Amount)

		limit := decimal.Zero
		for _, target := range targets {
			if target.kind == models.ReportLineGoal && *target.goalID == goal.ID {
				limit = target.limit
			}
		}

		lines = append(lines, models.WeeklyReportLine{
			Kind:     models.ReportLineGoal,
			Name:     goal.Name,
			GoalID:   &goal.ID,
			Limit:    limit,
			Spent:    entry.Amount,
			Budgeted: budgetedGoals[goal.ID],
		})
	}

	nonGoalBudget := totalBudget.Sub(goalBudget)
	nonGoalSpend := decimal.Max(totalSpent.Sub(goalSpend), decimal.Zero)
	discretionaryBudget := displayIncome.Sub(nonGoalBudget)
	discretionaryLeft := discretionaryBudget.Sub(nonGoalSpend)

	// The headline figure. The same formula runs for previews and for the
	// persisted report, so the dashboard and the history never disagree.
	leftToSpend := displayIncome.Sub(totalBudget).Sub(discretionarySpend)

	return models.WeeklyReport{
		Week:                week,
		TotalBudget:         totalBudget,
		TotalSpent:          totalSpent,
		TotalIncome:         displayIncome,
		MetBudget:           totalBudget.IsPositive() && totalSpent.LessThanOrEqual(totalBudget),
		GoalBudget:          goalBudget,
		NonGoalBudget:       nonGoalBudget,
		GoalSpend:           goalSpend,
		NonGoalSpend:        nonGoalSpend,
		DiscretionaryBudget: discretionaryBudget,
		DiscretionaryLeft:   discretionaryLeft,
		DiscretionarySpend:  discretionarySpend,
		LeftToSpend:         leftToSpend,
		Lines:               lines,
	}
}

// upsertReport stores the report for its week, updating an existing row in
// place instead of replacing it.
func upsertReport(tx *gorm.DB, report models.WeeklyReport) error {
	var existing models.WeeklyReport
	err := tx.First(&existing, "week = ?", report.Week).Error
	if err == nil {
		return tx.Model(&existing).Select(
			"TotalBudget", "TotalSpent", "TotalIncome", "MetBudget",
			"GoalBudget", "NonGoalBudget", "GoalSpend", "NonGoalSpend",
			"DiscretionaryBudget", "DiscretionaryLeft", "DiscretionarySpend",
			"LeftToSpend", "Lines",
		).Updates(report).Error
	}

	if errorIsNotFound(err) {
		return tx.Create(&report).Error
	}

	return err
}
