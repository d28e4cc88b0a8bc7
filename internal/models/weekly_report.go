package models

import (
	"github.com/google/uuid"
	"github.com/pennyflow/backend/internal/types"
	"github.com/shopspring/decimal"
)

// ReportLineKind describes what a report line is about.
type ReportLineKind string

const (
	ReportLineCategory      ReportLineKind = "category"
	ReportLineGoal          ReportLineKind = "goal"
	ReportLineUncategorized ReportLineKind = "uncategorized"
)

// WeeklyReportLine is one spend line of a weekly report.
//
// Category and uncategorized lines carry transaction spend, goal lines
// carry the amount credited toward the goal this week.
type WeeklyReportLine struct {
	Kind                   ReportLineKind  `json:"kind"`
	Name                   string          `json:"name"`
	CategoryID             *uuid.UUID      `json:"categoryId,omitempty"`
	GoalID                 *uuid.UUID      `json:"goalId,omitempty"`
	Key                    string          `json:"key,omitempty"` // Normalized description for uncategorized lines
	Limit                  decimal.Decimal `json:"limit"`
	Spent                  decimal.Decimal `json:"spent"`
	Budgeted               bool            `json:"budgeted"`
	RecurringTransactionID *uuid.UUID      `json:"recurringTransactionId,omitempty"`
}

// WeeklyReport is the persisted snapshot of one week's reconciliation.
//
// There is exactly one report per week. Regenerating a week overwrites the
// stored report instead of appending a second one.
type WeeklyReport struct {
	Timestamps
	Week                types.Week         `json:"week" gorm:"primaryKey"`
	TotalBudget         decimal.Decimal    `json:"totalBudget" gorm:"type:DECIMAL(20,8)"`
	TotalSpent          decimal.Decimal    `json:"totalSpent" gorm:"type:DECIMAL(20,8)"`
	TotalIncome         decimal.Decimal    `json:"totalIncome" gorm:"type:DECIMAL(20,8)"`
	MetBudget           bool               `json:"metBudget"`
	GoalBudget          decimal.Decimal    `json:"goalBudget" gorm:"type:DECIMAL(20,8)"`
	NonGoalBudget       decimal.Decimal    `json:"nonGoalBudget" gorm:"type:DECIMAL(20,8)"`
	GoalSpend           decimal.Decimal    `json:"goalSpend" gorm:"type:DECIMAL(20,8)"`
	NonGoalSpend        decimal.Decimal    `json:"nonGoalSpend" gorm:"type:DECIMAL(20,8)"`
	DiscretionaryBudget decimal.Decimal    `json:"discretionaryBudget" gorm:"type:DECIMAL(20,8)"`
	DiscretionaryLeft   decimal.Decimal    `json:"discretionaryLeft" gorm:"type:DECIMAL(20,8)"`
	DiscretionarySpend  decimal.Decimal    `json:"discretionarySpend" gorm:"type:DECIMAL(20,8)"`
	LeftToSpend         decimal.Decimal    `json:"leftToSpend" gorm:"type:DECIMAL(20,8)"`
	Lines               []WeeklyReportLine `json:"lines" gorm:"serializer:json"`
}
