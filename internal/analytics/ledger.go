package analytics

import (
	"errors"

	"github.com/google/uuid"
	"github.com/pennyflow/backend/internal/models"
	"github.com/pennyflow/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrContributionNotPositive is returned for manual contributions of zero
// or negative amounts.
var ErrContributionNotPositive = errors.New("the contribution amount must be larger than zero")

// planEntry decides the ledger outcome for a goal and week without writing
// anything. The credited amount is capped so the saved amount never exceeds
// the goal target.
func (s *Service) planEntry(goal models.Goal, week types.Week, leftover bool) models.GoalProgressLogEntry {
	entry := models.GoalProgressLogEntry{
		GoalID: goal.ID,
		Week:   week,
		Amount: decimal.Zero,
	}

	switch {
	case !s.config.AutoCreditGoals:
		entry.Status = models.ProgressStatusPending
		entry.Note = "automatic crediting is disabled"

	case goal.Complete():
		entry.Status = models.ProgressStatusSkipped
		entry.Note = "goal is already complete"

	case !goal.WeeklyContribution.IsPositive():
		entry.Status = models.ProgressStatusSkipped
		entry.Note = "no weekly contribution configured"

	case !leftover:
		entry.Status = models.ProgressStatusSkipped
		entry.Note = "no leftover cash this week"

	default:
		entry.Status = models.ProgressStatusCredited
		entry.Amount = decimal.Min(goal.WeeklyContribution, goal.Remaining())
	}

	return entry
}

// plannedEntries returns the ledger entry per goal for the week: the stored
// entry where one exists, the planned outcome otherwise.
func (s *Service) plannedEntries(goals []models.Goal, week types.Week, leftover bool) (map[uuid.UUID]models.GoalProgressLogEntry, error) {
	entries := make(map[uuid.UUID]models.GoalProgressLogEntry, len(goals))

	for _, goal := range goals {
		var existing models.GoalProgressLogEntry
		err := s.db.First(&existing, "goal_id = ? AND week = ?", goal.ID, week).Error
		if err == nil {
			entries[goal.ID] = existing
			continue
		}
		if !errorIsNotFound(err) {
			return nil, err
		}

		entries[goal.ID] = s.planEntry(goal, week, leftover)
	}

	return entries, nil
}

// recordWeeklyEvaluation writes the weekly ledger entry for a goal. An
// existing entry for the week is terminal and returned unchanged, so
// re-running a week never credits twice.
func (s *Service) recordWeeklyEvaluation(tx *gorm.DB, goal *models.Goal, week types.Week, leftover bool) (models.GoalProgressLogEntry, error) {
	var existing models.GoalProgressLogEntry
	err := tx.First(&existing, "goal_id = ? AND week = ?", goal.ID, week).Error
	if err == nil {
		return existing, nil
	}
	if !errorIsNotFound(err) {
		return models.GoalProgressLogEntry{}, err
	}

	entry := s.planEntry(*goal, week, leftover)

	if entry.Status == models.ProgressStatusCredited && entry.Amount.IsPositive() {
		goal.SavedAmount = goal.SavedAmount.Add(entry.Amount)
		err = tx.Model(goal).Select("SavedAmount").Updates(map[string]any{"saved_amount": goal.SavedAmount}).Error
		if err != nil {
			return models.GoalProgressLogEntry{}, err
		}
	}

	err = tx.Create(&entry).Error
	if err != nil {
		return models.GoalProgressLogEntry{}, err
	}

	return entry, nil
}

// ContributeToGoal credits a manual contribution toward a goal for the
// given week.
//
// The credit is capped at the amount still missing, merges into an already
// existing entry for the week by summing the amounts, and becomes a no-op
// once the goal is complete. Replaying the call therefore converges instead
// of overcrediting.
func (s *Service) ContributeToGoal(goalID uuid.UUID, week types.Week, amount decimal.Decimal) (models.GoalProgressLogEntry, error) {
	if !amount.IsPositive() {
		return models.GoalProgressLogEntry{}, ErrContributionNotPositive
	}

	var entry models.GoalProgressLogEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var goal models.Goal
		err := tx.First(&goal, "id = ?", goalID).Error
		if err != nil {
			return err
		}

		credit := decimal.Min(amount, goal.Remaining())

		var existing models.GoalProgressLogEntry
		err = tx.First(&existing, "goal_id = ? AND week = ?", goalID, week).Error
		switch {
		case err == nil:
			if credit.IsZero() {
				entry = existing
				return nil
			}

			// The entry state is terminal, manual top-ups only grow the
			// amount in place. A credited status survives the merge.
			status := existing.Status
			if status != models.ProgressStatusCredited {
				status = models.ProgressStatusManual
			}

			existing.Amount = existing.Amount.Add(credit)
			existing.Status = status
			err = tx.Model(&existing).
				Where("goal_id = ? AND week = ?", goalID, week).
				Select("Amount", "Status").
				Updates(map[string]any{"amount": existing.Amount, "status": status}).Error
			if err != nil {
				return err
			}
			entry = existing

		case errorIsNotFound(err):
			entry = models.GoalProgressLogEntry{
				GoalID: goalID,
				Week:   week,
				Status: models.ProgressStatusManual,
				Amount: credit,
				Note:   "manual contribution",
			}
			err = tx.Create(&entry).Error
			if err != nil {
				return err
			}

		default:
			return err
		}

		if credit.IsPositive() {
			goal.SavedAmount = goal.SavedAmount.Add(credit)
			return tx.Model(&goal).Select("SavedAmount").Updates(map[string]any{"saved_amount": goal.SavedAmount}).Error
		}

		return nil
	})
	if err != nil {
		return models.GoalProgressLogEntry{}, err
	}

	return entry, nil
}

// SetWeeklyContribution updates the scheduled weekly contribution of a goal
// and keeps the mirrored budget row in sync: the row is created or updated
// while the contribution is positive and deleted when it drops to zero.
func (s *Service) SetWeeklyContribution(goalID uuid.UUID, amount decimal.Decimal) (models.Goal, error) {
	if amount.IsNegative() {
		return models.Goal{}, models.ErrGoalContributionNegative
	}

	var goal models.Goal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&goal, "id = ?", goalID).Error
		if err != nil {
			return err
		}

		goal.WeeklyContribution = amount
		err = tx.Model(&goal).Select("WeeklyContribution").Updates(map[string]any{"weekly_contribution": amount}).Error
		if err != nil {
			return err
		}

		var budget models.Budget
		err = tx.First(&budget, "goal_id = ?", goalID).Error

		switch {
		case err == nil && amount.IsPositive():
			return tx.Model(&budget).Select("WeeklyLimit").Updates(map[string]any{"weekly_limit": amount}).Error

		case err == nil:
			return tx.Delete(&models.Budget{}, "id = ?", budget.ID).Error

		case errorIsNotFound(err) && amount.IsPositive():
			id := goalID
			budget = models.Budget{
				WeeklyLimit: amount,
				PeriodStart: types.WeekOf(tx.NowFunc()),
				GoalID:      &id,
			}
			return tx.Create(&budget).Error

		case errorIsNotFound(err):
			return nil

		default:
			return err
		}
	})
	if err != nil {
		return models.Goal{}, err
	}

	return goal, nil
}
