// Package currency renders taka amounts for display.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// Symbol is the taka glyph. It always follows the sign.
const Symbol = "৳"

var bengaliDigits = [10]rune{'০', '১', '২', '৩', '৪', '৫', '৬', '৭', '৮', '৯'}

// Formatter formats whole-unit amounts with lakh/crore grouping
// (12,34,567). Bengali locales get Bengali numerals.
type Formatter struct {
	tag     language.Tag
	bengali bool
}

func NewFormatter(tag language.Tag) Formatter {
	base, _ := tag.Base()
	bn, _ := language.Bengali.Base()
	return Formatter{tag: tag, bengali: base == bn}
}

// ParseFormatter builds a Formatter from a BCP 47 tag such as "en-IN" or "bn".
// Unknown tags fall back to English.
func ParseFormatter(s string) Formatter {
	tag, err := language.Parse(s)
	if err != nil {
		tag = language.English
	}
	return NewFormatter(tag)
}

func (f Formatter) Tag() language.Tag { return f.tag }

func (f Formatter) Format(amount decimal.Decimal) string {
	digits := group(amount.Abs().Round(0).StringFixed(0))
	if f.bengali {
		digits = toBengali(digits)
	}
	out := Symbol + digits
	if amount.IsNegative() {
		out = "-" + out
	}
	return out
}

var english = NewFormatter(language.English)

// Format renders amount as e.g. "-৳1,234" using English numerals.
func Format(amount decimal.Decimal) string {
	return english.Format(amount)
}

// group inserts separators into a run of digits: the last three digits form
// one group, every group before that has two.
func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var b strings.Builder
	lead := len(head) % 2
	if lead > 0 {
		b.WriteString(head[:lead])
	}
	for i := lead; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}

func toBengali(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(bengaliDigits[r-'0'])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
