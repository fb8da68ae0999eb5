package rendering

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// groupPrinter formats integers with thousands separators.
var groupPrinter = message.NewPrinter(language.English)

// FormatCurrency formats a numeric value (or numeric string) with
// thousands separators and no decimal places: 1234567 -> "1,234,567".
// Formatting is best-effort: non-numeric input is returned unchanged
// rather than failing, so a bad amount never blocks document
// generation.
func FormatCurrency(v any) string {
	var raw string
	switch x := v.(type) {
	case nil:
		return ""
	case decimal.Decimal:
		return groupPrinter.Sprintf("%d", x.Round(0).IntPart())
	case string:
		raw = x
	default:
		raw = fmt.Sprint(x)
	}

	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	return groupPrinter.Sprintf("%d", d.Round(0).IntPart())
}
