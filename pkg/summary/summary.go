package summary

import (
	"strings"

	"github.com/mcclellann/branchdesk/pkg/models"
	"github.com/shopspring/decimal"
)

// Summarize reduces transactions to cash-in, cash-out, net position and count.
// Amounts are added as given; validation belongs to the caller.
func Summarize(transactions []models.Transaction) models.DailySummary {
	s := models.DailySummary{
		TotalCashIn:  decimal.Zero,
		TotalCashOut: decimal.Zero,
		NetPosition:  decimal.Zero,
	}
	for _, tx := range transactions {
		if tx.Type.IsCashIn() {
			s.TotalCashIn = s.TotalCashIn.Add(tx.Amount)
		} else {
			s.TotalCashOut = s.TotalCashOut.Add(tx.Amount)
		}
	}
	s.NetPosition = s.TotalCashIn.Sub(s.TotalCashOut)
	s.TransactionCount = len(transactions)
	return s
}

// ForDate summarizes the transactions whose timestamp starts with prefix
// ("2024-05-01", or "2024-05" for a whole month).
func ForDate(transactions []models.Transaction, prefix string) models.DailySummary {
	var matched []models.Transaction
	for _, tx := range transactions {
		if strings.HasPrefix(tx.DateKey(), prefix) {
			matched = append(matched, tx)
		}
	}
	return Summarize(matched)
}
