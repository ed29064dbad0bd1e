package summary

import (
	"github.com/mcclellann/branchdesk/pkg/models"
	"github.com/shopspring/decimal"
)

const DefaultWindow = 7

// Average is the mean daily summary over a window of days.
type Average struct {
	Days             int             `json:"days"`
	TotalCashIn      decimal.Decimal `json:"totalCashIn"`
	TotalCashOut     decimal.Decimal `json:"totalCashOut"`
	NetPosition      decimal.Decimal `json:"netPosition"`
	TransactionCount decimal.Decimal `json:"transactionCount"`
}

type Trends struct {
	CashIn  string `json:"cashIn"`
	CashOut string `json:"cashOut"`
	Net     string `json:"net"`
	Count   string `json:"count"`
}

// Overview feeds the dashboard cards: the day itself, the day before, the
// average of the preceding window and the trend of each figure.
type Overview struct {
	Date     models.Date         `json:"date"`
	Today    models.DailySummary `json:"today"`
	Previous models.DailySummary `json:"previous"`
	Average  Average             `json:"average"`
	Trends   Trends              `json:"trends"`
}

// Build computes the Overview for day. Days without transactions count as
// zero in the average.
func Build(transactions []models.Transaction, day models.Date, window int) Overview {
	if window <= 0 {
		window = DefaultWindow
	}

	byDay := make(map[string][]models.Transaction)
	for _, tx := range transactions {
		key := models.DateOf(tx.Timestamp).String()
		byDay[key] = append(byDay[key], tx)
	}
	dayOffset := func(n int) models.DailySummary {
		return Summarize(byDay[models.DateOf(day.AddDate(0, 0, -n)).String()])
	}

	today := dayOffset(0)
	previous := dayOffset(1)

	avg := Average{
		Days:             window,
		TotalCashIn:      decimal.Zero,
		TotalCashOut:     decimal.Zero,
		NetPosition:      decimal.Zero,
		TransactionCount: decimal.Zero,
	}
	for i := 1; i <= window; i++ {
		s := dayOffset(i)
		avg.TotalCashIn = avg.TotalCashIn.Add(s.TotalCashIn)
		avg.TotalCashOut = avg.TotalCashOut.Add(s.TotalCashOut)
		avg.NetPosition = avg.NetPosition.Add(s.NetPosition)
		avg.TransactionCount = avg.TransactionCount.Add(decimal.NewFromInt(int64(s.TransactionCount)))
	}
	n := decimal.NewFromInt(int64(window))
	avg.TotalCashIn = avg.TotalCashIn.Div(n)
	avg.TotalCashOut = avg.TotalCashOut.Div(n)
	avg.NetPosition = avg.NetPosition.Div(n)
	avg.TransactionCount = avg.TransactionCount.Div(n)

	return Overview{
		Date:     day,
		Today:    today,
		Previous: previous,
		Average:  avg,
		Trends: Trends{
			CashIn:  Trend(today.TotalCashIn, previous.TotalCashIn, avg.TotalCashIn),
			CashOut: Trend(today.TotalCashOut, previous.TotalCashOut, avg.TotalCashOut),
			Net:     Trend(today.NetPosition, previous.NetPosition, avg.NetPosition),
			Count: Trend(
				decimal.NewFromInt(int64(today.TransactionCount)),
				decimal.NewFromInt(int64(previous.TransactionCount)),
				avg.TransactionCount,
			),
		},
	}
}
