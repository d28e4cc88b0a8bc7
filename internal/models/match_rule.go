package models

import (
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// MatchRule automatically assigns a category to synced transactions whose
// description matches a glob pattern.
type MatchRule struct {
	DefaultModel
	Priority   uint      `json:"priority"`
	Match      string    `json:"match"`
	CategoryID uuid.UUID `json:"categoryId"`
	Category   *Category `json:"-"`
}

// matchCategory returns the category ID of the first rule matching the
// description, nil if no rule matches. Rules are evaluated in priority
// order, ties are broken by the match pattern to keep evaluation
// deterministic.
func matchCategory(db *gorm.DB, description string) (*uuid.UUID, error) {
	var rules []MatchRule
	err := db.Order("priority asc, match asc").Find(&rules).Error
	if err != nil {
		return nil, err
	}

	for _, rule := range rules {
		if glob.Glob(rule.Match, description) {
			id := rule.CategoryID
			return &id, nil
		}
	}

	return nil, nil
}
