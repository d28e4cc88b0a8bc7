package importer

import (
	"gorm.io/gorm"

	"github.com/pennyflow/backend/internal/models"
)

// Result summarizes an import run.
type Result struct {
	Created   []models.Transaction `json:"created"`   // Transactions that were created
	Skipped   int                  `json:"skipped"`   // Number of lines skipped because they were already imported
	Malformed []SkippedLine        `json:"malformed"` // Lines skipped because they could not be parsed
}

// Create persists parsed transactions.
//
// Lines whose import hash already exists in the database are skipped so
// that re-importing an export file is idempotent. All inserts happen in
// one database transaction, a failing line rolls back the whole import.
func Create(db *gorm.DB, transactions []models.Transaction) (Result, error) {
	result := Result{Created: []models.Transaction{}, Malformed: []SkippedLine{}}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, transaction := range transactions {
			var count int64
			err := tx.Model(&models.Transaction{}).Where("import_hash = ?", transaction.ImportHash).Count(&count).Error
			if err != nil {
				return err
			}

			if count > 0 {
				result.Skipped++
				continue
			}

			if err := tx.Create(&transaction).Error; err != nil {
				return err
			}

			result.Created = append(result.Created, transaction)
		}

		return nil
	})
	if err != nil {
		return Result{}, err
	}

	return result, nil
}
