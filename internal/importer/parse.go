// Package importer reads bank export CSV files and turns them into
// transactions.
package importer

import (
	"crypto/sha256"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pennyflow/backend/internal/models"
)

// Column indices of the bank export CSV format.
const (
	Date = iota
	Description
	Amount
)

// SkippedLine describes a line of the input that could not be turned
// into a transaction.
type SkippedLine struct {
	Line   int    `json:"line" example:"4"`
	Reason string `json:"reason" example:"the date could not be parsed"`
}

// Parse parses a bank export CSV file.
//
// The expected format is a header line followed by one line per
// transaction with the columns date (YYYY-MM-DD), description and a
// signed decimal amount. Positive amounts are income, negative amounts
// are expenses.
//
// A malformed line is skipped and reported, it does not abort the rest
// of the file. Only a broken reader fails the whole parse.
func Parse(f io.Reader) ([]models.Transaction, []SkippedLine, error) {
	reader := csv.NewReader(f)

	// We can reuse the array in the background to improve performance
	reader.ReuseRecord = true
	reader.FieldsPerRecord = 3

	transactions := []models.Transaction{}
	skipped := []SkippedLine{}

	// Skip the first line
	_, err := reader.Read()
	if err == io.EOF {
		return transactions, skipped, nil
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, nil, fmt.Errorf("could not read line in CSV: %w", err)
			}

			skipped = append(skipped, SkippedLine{Line: parseErr.Line, Reason: "the line could not be read"})
			continue
		}

		date, err := time.Parse("2006-01-02", record[Date])
		if err != nil {
			skipped = append(skipped, skippedLine(reader, "the date could not be parsed"))
			continue
		}

		amount, err := decimal.NewFromString(record[Amount])
		if err != nil {
			skipped = append(skipped, skippedLine(reader, "the amount could not be parsed to a decimal"))
			continue
		}

		if amount.IsZero() {
			skipped = append(skipped, skippedLine(reader, "the amount for a transaction must not be 0"))
			continue
		}

		transactionType := models.TransactionTypeExpense
		if amount.IsPositive() {
			transactionType = models.TransactionTypeIncome
		}

		transactions = append(transactions, models.Transaction{
			Date:        date,
			Amount:      amount,
			Type:        transactionType,
			Description: record[Description],
			ImportHash:  importHash(record),
		})
	}

	return transactions, skipped, nil
}

// importHash fingerprints a CSV line so that importing the same file
// twice does not duplicate its transactions.
func importHash(record []string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(strings.Join(record, ","))))
}

// skippedLine reports the reason, including the line of the input it
// occurred in.
func skippedLine(r *csv.Reader, reason string) SkippedLine {
	// always use the first field, we are only interested in the line
	line, _ := r.FieldPos(1)

	return SkippedLine{Line: line, Reason: reason}
}
