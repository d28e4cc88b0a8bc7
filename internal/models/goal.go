package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Goal is a savings target.
//
// SavedAmount is only mutated by the goal progress ledger and by manual
// contributions, both of which cap it at Amount.
type Goal struct {
	DefaultModel
	Name               string          `json:"name"`
	Amount             decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`             // The target for the goal
	SavedAmount        decimal.Decimal `json:"savedAmount" gorm:"type:DECIMAL(20,8)"`        // How much has been saved so far
	WeeklyContribution decimal.Decimal `json:"weeklyContribution" gorm:"type:DECIMAL(20,8)"` // The scheduled amount per week
}

func (g *Goal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	return nil
}

func (g *Goal) AfterSave(_ *gorm.DB) error {
	if !g.Amount.IsPositive() {
		return ErrGoalAmountNotPositive
	}

	if g.SavedAmount.IsNegative() || g.SavedAmount.GreaterThan(g.Amount) {
		return ErrGoalSavedAmountOutOfRange
	}

	if g.WeeklyContribution.IsNegative() {
		return ErrGoalContributionNegative
	}

	return nil
}

// Complete reports whether the goal has reached its target.
func (g Goal) Complete() bool {
	return g.SavedAmount.GreaterThanOrEqual(g.Amount)
}

// Remaining returns the amount still missing to reach the target.
func (g Goal) Remaining() decimal.Decimal {
	remaining := g.Amount.Sub(g.SavedAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}

	return remaining
}
