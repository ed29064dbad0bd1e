package summary

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Trend compares current against a baseline and renders a signed percentage
// with one decimal, e.g. "+12.3%" or "-4.0%".
//
// The baseline is previous when positive, else average when positive, else
// 70% of current. The output is shaped for summary cards: it never reaches
// ±100%, and "0%" is reserved for a zero current value.
func Trend(current, previous, average decimal.Decimal) string {
	cur := current.InexactFloat64()
	if cur == 0 {
		return "0%"
	}

	baseline := cur * 0.7
	switch {
	case previous.IsPositive():
		baseline = previous.InexactFloat64()
	case average.IsPositive():
		baseline = average.InexactFloat64()
	}
	if baseline == 0 {
		baseline = 1
	}

	pct := (cur - baseline) / baseline * 100
	if pct >= 100 {
		pct = 99.9 - 1000/(math.Abs(pct)+10)
	} else if pct <= -100 {
		pct = -(99.9 - 1000/(math.Abs(pct)+10))
	}
	pct = math.Max(-99.8, math.Min(99.8, pct))

	pct = math.Round(pct*10) / 10
	if pct == 0 && cur > 0 {
		pct = 0.5
	}

	if pct >= 0 {
		return fmt.Sprintf("+%.1f%%", pct)
	}
	return fmt.Sprintf("%.1f%%", pct)
}
