// Package finance aggregates a user's transactions and goals into the
// compact summary injected into coach prompts.
package finance

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"moneypal-go-be/database"
	"moneypal-go-be/models"
)

// Summary is the financial context for one user.
type Summary struct {
	Income      float64 `json:"income"`
	Expenses    float64 `json:"expenses"`
	Balance     float64 `json:"balance"`
	GoalSummary string  `json:"goal_summary"`
}

const (
	cacheTTL     = 5 * time.Minute
	queryTimeout = 5 * time.Second
)

// Summarize computes a Summary from in-memory records. Credits sum into
// income, debits into expenses. With no goals the summary is the explicit
// "None" marker, never an empty string.
func Summarize(txs []models.Transaction, goals []models.Goal) Summary {
	var income, expenses float64
	for _, t := range txs {
		switch t.TransactionType {
		case models.TypeCredit:
			income += t.Amount
		case models.TypeDebit:
			expenses += t.Amount
		}
	}
	return Summary{
		Income:      income,
		Expenses:    expenses,
		Balance:     income - expenses,
		GoalSummary: FormatGoals(goals),
	}
}

// FormatGoals renders goals as `"<title> (₹<current>/₹<target>)"` joined by
// commas, or "None" when there are no goals.
func FormatGoals(goals []models.Goal) string {
	if len(goals) == 0 {
		return "None"
	}
	parts := make([]string, 0, len(goals))
	for _, g := range goals {
		parts = append(parts, fmt.Sprintf("%s (₹%s/₹%s)", g.Title, fmtAmount(g.CurrentAmount), fmtAmount(g.TargetAmount)))
	}
	return strings.Join(parts, ", ")
}

func fmtAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BuildContext produces the Summary for one user. The income/expense sums are
// pushed down to SQL, and the result is cached per user when a cache is
// configured. Cache failures are ignored; they never fail the request.
func BuildContext(ctx context.Context, db *gorm.DB, cache *database.Cache, userID uuid.UUID) (Summary, error) {
	ctx, cancel := boundQuery(ctx)
	defer cancel()

	if cache != nil {
		if raw, err := cache.Get(ctx, cacheKey(userID)); err == nil {
			var s Summary
			if err := json.Unmarshal([]byte(raw), &s); err == nil {
				return s, nil
			}
		}
	}

	type totalRow struct {
		TransactionType string
		Total           float64
	}
	var rows []totalRow
	err := db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("transaction_type, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ?", userID).
		Group("transaction_type").
		Scan(&rows).Error
	if err != nil {
		return Summary{}, fmt.Errorf("failed to aggregate transactions: %w", err)
	}

	var goals []models.Goal
	if err := db.WithContext(ctx).Where("user_id = ?", userID).Find(&goals).Error; err != nil {
		return Summary{}, fmt.Errorf("failed to fetch goals: %w", err)
	}

	s := Summary{GoalSummary: FormatGoals(goals)}
	for _, row := range rows {
		switch row.TransactionType {
		case models.TypeCredit:
			s.Income = row.Total
		case models.TypeDebit:
			s.Expenses = row.Total
		}
	}
	s.Balance = s.Income - s.Expenses

	if cache != nil {
		if raw, err := json.Marshal(s); err == nil {
			_ = cache.Set(ctx, cacheKey(userID), string(raw), cacheTTL)
		}
	}

	return s, nil
}

// InvalidateContext drops the cached summary for a user. Call after any
// transaction or goal write.
func InvalidateContext(ctx context.Context, cache *database.Cache, userID uuid.UUID) {
	if cache == nil {
		return
	}
	_ = cache.Delete(ctx, cacheKey(userID))
}

func cacheKey(userID uuid.UUID) string {
	return "finctx:" + userID.String()
}

// boundQuery caps the wait on database reads so a hung connection cannot
// stall a chat turn. An earlier parent deadline is kept as-is.
func boundQuery(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}
