package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pennyflow/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProgressStatus is the terminal state of a goal for one week.
type ProgressStatus string

const (
	ProgressStatusPending  ProgressStatus = "pending"
	ProgressStatusSkipped  ProgressStatus = "skipped"
	ProgressStatusManual   ProgressStatus = "manual"
	ProgressStatusCredited ProgressStatus = "credited"
)

// GoalProgressLogEntry records what happened to a goal in one week.
//
// There is at most one entry per goal and week, entries are never deleted.
// Manual top-ups within the same week update the amount in place.
type GoalProgressLogEntry struct {
	Timestamps
	GoalID uuid.UUID       `json:"goalId" gorm:"primaryKey"`
	Week   types.Week      `json:"week" gorm:"primaryKey"`
	Status ProgressStatus  `json:"status"`
	Amount decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"` // Amount credited toward the goal this week
	Note   string          `json:"note"`
}

func (e *GoalProgressLogEntry) BeforeSave(_ *gorm.DB) error {
	e.Note = strings.TrimSpace(e.Note)

	switch e.Status {
	case ProgressStatusPending, ProgressStatusSkipped, ProgressStatusManual, ProgressStatusCredited:
	default:
		return ErrProgressStatusInvalid
	}

	return nil
}
