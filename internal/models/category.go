package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents a spending category.
//
// Names are unique without regard to case. The usage count tracks how often
// the category has been assigned to transactions and orders the budget
// suggestions.
type Category struct {
	DefaultModel
	Name       string `json:"name" gorm:"uniqueIndex;type:TEXT COLLATE NOCASE"`
	UsageCount uint   `json:"usageCount"`
}

// UncategorizedName is the reserved name for the category the presentation
// layer shows for transactions without a category. A budget that references
// this category together with a recurring transaction tracks that one bill,
// not the aggregate uncategorized bucket.
const UncategorizedName = "Uncategorized"

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}

// IsUncategorized reports whether this is the reserved uncategorized category.
func (c Category) IsUncategorized() bool {
	return strings.EqualFold(c.Name, UncategorizedName)
}

// adjustUsageCount shifts the usage count of a category. The counter never
// drops below zero, even when an assignment is removed more often than it
// was added.
func adjustUsageCount(db *gorm.DB, id uuid.UUID, delta int) error {
	var category Category
	err := db.First(&category, "id = ?", id).Error
	if err != nil {
		return err
	}

	count := int(category.UsageCount) + delta
	if count < 0 {
		count = 0
	}

	return db.Model(&category).Select("UsageCount").Updates(map[string]any{"usage_count": uint(count)}).Error
}
