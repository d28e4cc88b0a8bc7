package analytics

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pennyflow/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Cluster size and gap thresholds for cadence classification. A cluster
// classifies as weekly when the average gap between occurrences is 5 to 9
// days, as monthly when it is 26 to 32 days. Every single gap must stay
// within three days of the average, otherwise the cluster is discarded.
const (
	weeklyMinMembers  = 4
	monthlyMinMembers = 3

	weeklyMinGap  = 5.0
	weeklyMaxGap  = 9.0
	monthlyMinGap = 26.0
	monthlyMaxGap = 32.0

	gapVarianceDays = 3.0
)

// DetectRecurring scans all expense transactions for recurring bills and
// upserts the detected rows by their natural key (normalized description,
// frequency). Rows that share a natural key with a detected row but have a
// different ID are removed.
//
// Detection is order independent: the input is sorted before clustering, so
// permuting the stored transactions yields the same result set.
func (s *Service) DetectRecurring() ([]models.RecurringTransaction, error) {
	expenses, err := models.AllExpenses(s.db)
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	err = s.db.Find(&categories).Error
	if err != nil {
		return nil, err
	}

	categoryNames := make(map[uuid.UUID]string, len(categories))
	for _, category := range categories {
		categoryNames[category.ID] = category.Name
	}

	slices.SortStableFunc(expenses, func(a, b models.Transaction) int {
		if !a.Date.Equal(b.Date) {
			return a.Date.Compare(b.Date)
		}
		if cmp := a.Amount.Cmp(b.Amount); cmp != 0 {
			return cmp
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})

	// Group by the assigned category name if there is one, else by the
	// normalized description
	groups := make(map[string][]models.Transaction)
	var labels []string
	for _, transaction := range expenses {
		label := NormalizeDescription(transaction.Description)
		if transaction.CategoryID != nil {
			if name, ok := categoryNames[*transaction.CategoryID]; ok {
				label = name
			}
		}

		if _, ok := groups[label]; !ok {
			labels = append(labels, label)
		}
		groups[label] = append(groups[label], transaction)
	}
	slices.Sort(labels)

	var detected []models.RecurringTransaction
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, label := range labels {
			group := groups[label]

			for _, cluster := range clusterByAmount(group, s.config.AmountTolerance) {
				if len(cluster) < 2 {
					continue
				}

				candidate, ok := classifyCluster(group, cluster)
				if !ok {
					continue
				}

				row, err := upsertRecurring(tx, candidate)
				if err != nil {
					return err
				}

				detected = append(detected, row)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return detected, nil
}

// clusterByAmount greedily clusters transactions by amount similarity. A
// transaction joins the first cluster whose representative amount is within
// the relative tolerance of its own amount, else it starts a new cluster.
// Zero amounts never match anything.
//
// The function is pure: it returns index groupings into the input slice and
// mutates nothing.
func clusterByAmount(transactions []models.Transaction, tolerance decimal.Decimal) [][]int {
	var clusters [][]int
	var representatives []decimal.Decimal

	for i, transaction := range transactions {
		amount := transaction.Amount.Abs()

		joined := false
		if !amount.IsZero() {
			for c, representative := range representatives {
				if representative.IsZero() {
					continue
				}

				if amount.Sub(representative).Abs().LessThanOrEqual(representative.Mul(tolerance)) {
					clusters[c] = append(clusters[c], i)
					joined = true
					break
				}
			}
		}

		if !joined {
			clusters = append(clusters, []int{i})
			representatives = append(representatives, amount)
		}
	}

	return clusters
}

// classifyCluster checks whether the cluster members form a weekly or
// monthly cadence and builds the recurring transaction candidate from them.
// Clusters without a clean cadence are discarded, this is not an error.
func classifyCluster(group []models.Transaction, cluster []int) (models.RecurringTransaction, bool) {
	dates := make([]time.Time, 0, len(cluster))
	total := decimal.Zero
	var categoryID *uuid.UUID

	for _, i := range cluster {
		dates = append(dates, group[i].Date)
		total = total.Add(group[i].Amount.Abs())
		if categoryID == nil && group[i].CategoryID != nil {
			id := *group[i].CategoryID
			categoryID = &id
		}
	}

	slices.SortFunc(dates, func(a, b time.Time) int { return a.Compare(b) })

	average, ok := gapAverage(dates)
	if !ok {
		return models.RecurringTransaction{}, false
	}

	var frequency models.RecurringFrequency
	switch {
	case average >= weeklyMinGap && average <= weeklyMaxGap && len(cluster) >= weeklyMinMembers:
		frequency = models.RecurringFrequencyWeekly
	case average >= monthlyMinGap && average <= monthlyMaxGap && len(cluster) >= monthlyMinMembers:
		frequency = models.RecurringFrequencyMonthly
	default:
		return models.RecurringTransaction{}, false
	}

	last := dates[len(dates)-1]

	return models.RecurringTransaction{
		Description: NormalizeDescription(group[cluster[len(cluster)-1]].Description),
		Frequency:   frequency,
		Amount:      total.Div(decimal.NewFromInt(int64(len(cluster)))).Round(2),
		NextDueDate: nextDueDate(last, frequency),
		CategoryID:  categoryID,
	}, true
}

// gapAverage returns the average day gap between consecutive dates. ok is
// false when there are fewer than two dates or any gap strays more than
// gapVarianceDays from the average.
func gapAverage(dates []time.Time) (float64, bool) {
	if len(dates) < 2 {
		return 0, false
	}

	gaps := make([]float64, 0, len(dates)-1)
	sum := 0.0
	for i := 1; i < len(dates); i++ {
		gap := float64(dayGap(dates[i-1], dates[i]))
		gaps = append(gaps, gap)
		sum += gap
	}

	average := sum / float64(len(gaps))
	for _, gap := range gaps {
		if gap < average-gapVarianceDays || gap > average+gapVarianceDays {
			return 0, false
		}
	}

	return average, true
}

// dayGap returns the number of calendar days between two instants.
func dayGap(from, to time.Time) int {
	from = from.In(time.UTC)
	to = to.In(time.UTC)
	fromDate := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDate := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)

	return int(toDate.Sub(fromDate).Hours() / 24)
}

// nextDueDate projects the next occurrence after the last one. Weekly bills
// are due seven days later, monthly bills on the same calendar day of the
// next month. time.Date normalizes a December overflow into January of the
// following year.
func nextDueDate(last time.Time, frequency models.RecurringFrequency) time.Time {
	last = last.In(time.UTC)

	if frequency == models.RecurringFrequencyWeekly {
		return last.AddDate(0, 0, 7)
	}

	return time.Date(last.Year(), last.Month()+1, last.Day(), 0, 0, 0, 0, time.UTC)
}

// upsertRecurring finds the row for the candidate's natural key and updates
// it in place, or inserts a new row. Stale rows with the same key but a
// different ID are removed so the key stays unique.
func upsertRecurring(tx *gorm.DB, candidate models.RecurringTransaction) (models.RecurringTransaction, error) {
	var existing []models.RecurringTransaction
	err := tx.
		Where("description = ? AND frequency = ?", candidate.Description, candidate.Frequency).
		Order("created_at asc").
		Find(&existing).Error
	if err != nil {
		return models.RecurringTransaction{}, err
	}

	if len(existing) == 0 {
		err = tx.Create(&candidate).Error
		return candidate, err
	}

	row := existing[0]
	for _, stale := range existing[1:] {
		err = tx.Delete(&models.RecurringTransaction{}, "id = ?", stale.ID).Error
		if err != nil {
			return models.RecurringTransaction{}, err
		}
	}

	row.Amount = candidate.Amount
	row.NextDueDate = candidate.NextDueDate
	row.CategoryID = candidate.CategoryID

	err = tx.Model(&row).Select("Amount", "NextDueDate", "CategoryID").Updates(map[string]any{
		"amount":        candidate.Amount,
		"next_due_date": candidate.NextDueDate,
		"category_id":   candidate.CategoryID,
	}).Error
	if err != nil {
		return models.RecurringTransaction{}, err
	}

	return row, nil
}
