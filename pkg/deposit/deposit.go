// Package deposit derives the computed fields of fixed (FDR) and recurring
// (DPS) deposits: interest rate tier, maturity date and DPS principal.
package deposit

import (
	"strings"
	"time"

	"github.com/mcclellann/branchdesk/pkg/models"
	"github.com/shopspring/decimal"
)

// TaraMarker flags the DPS product line with its own rate table.
const TaraMarker = "TARA"

var (
	fdrBase  = decimal.RequireFromString("8.25")
	fdrMid   = decimal.RequireFromString("8.5")
	fdrLong  = decimal.RequireFromString("9.0")
	dpsBase  = decimal.RequireFromString("8.5")
	dpsMid   = decimal.RequireFromString("8.75")
	dpsLong  = decimal.RequireFromString("9.0")
	taraBase = decimal.RequireFromString("9.25")
	taraLong = decimal.RequireFromString("9.5")
)

// Draft carries the inputs the derived fields depend on.
type Draft struct {
	Type              models.DepositType
	ProductName       string
	Tenor             int
	InstallmentAmount decimal.Decimal
	OpeningDate       models.Date
}

// Projection is the set of derived fields. PrincipalAmount is only
// meaningful for DPS.
type Projection struct {
	InterestRate    decimal.Decimal `json:"interestRate"`
	PrincipalAmount decimal.Decimal `json:"principalAmount"`
	MaturityDate    models.Date     `json:"maturityDate"`
}

// InterestRate returns the annual percentage rate for the product. Each tier
// starts at its lower tenor bound (inclusive).
func InterestRate(typ models.DepositType, productName string, tenor int) decimal.Decimal {
	if typ == models.DepositTypeDPS {
		if strings.Contains(productName, TaraMarker) {
			if tenor >= 60 {
				return taraLong
			}
			return taraBase
		}
		switch {
		case tenor >= 60:
			return dpsLong
		case tenor >= 24:
			return dpsMid
		}
		return dpsBase
	}

	switch {
	case tenor >= 60:
		return fdrLong
	case tenor >= 36:
		return fdrMid
	}
	return fdrBase
}

// AddMonths moves t forward by months calendar months. A day that does not
// exist in the target month is clamped to that month's last day.
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// Derive computes every derived field from the draft.
func Derive(d Draft) Projection {
	p := Projection{
		InterestRate:    InterestRate(d.Type, d.ProductName, d.Tenor),
		PrincipalAmount: decimal.Zero,
		MaturityDate:    models.DateOf(AddMonths(d.OpeningDate.Time, d.Tenor)),
	}
	if d.Type == models.DepositTypeDPS {
		p.PrincipalAmount = d.InstallmentAmount.Mul(decimal.NewFromInt(int64(d.Tenor)))
	}
	return p
}

func DraftOf(f models.FdrDps) Draft {
	return Draft{
		Type:              f.Type,
		ProductName:       f.ProductName,
		Tenor:             f.Tenor,
		InstallmentAmount: f.InstallmentAmount,
		OpeningDate:       f.OpeningDate,
	}
}

// Apply overwrites the derived fields of f. FDR principal is entered by the
// officer and left alone.
func Apply(f *models.FdrDps) {
	p := Derive(DraftOf(*f))
	f.InterestRate = p.InterestRate
	f.MaturityDate = p.MaturityDate
	if f.Type == models.DepositTypeDPS {
		f.PrincipalAmount = p.PrincipalAmount
	}
}

// StatusAt reports whether the deposit has matured by asOf.
func StatusAt(f models.FdrDps, asOf models.Date) models.DepositStatus {
	if f.MaturityDate.IsZero() || asOf.Before(f.MaturityDate) {
		return models.DepositStatusActive
	}
	return models.DepositStatusMatured
}
