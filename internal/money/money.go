// Package money parses and formats expense amounts.
//
// Users type amounts inconsistently: with currency symbols, thousands
// grouping, stray spaces. Parse is forgiving of cosmetic noise but
// rejects the two classic typo classes (comma used as the decimal
// separator, malformed grouping) with distinct errors so the caller
// can tell the user exactly what to fix.
package money

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/homeease/homeease/internal/common"
)

var (
	// Digits, one comma, then 1-2 digits: the user almost certainly
	// meant a decimal separator, not thousands grouping (e.g. "45,7").
	commaAsDecimalPattern = regexp.MustCompile(`^\d+,\d{1,2}$`)

	// Strict thousands grouping: 1-3 leading digits, comma-separated
	// groups of exactly 3, optional fraction (e.g. "5,000.00", "12,345").
	groupedPattern = regexp.MustCompile(`^\d{1,3}(,\d{3})*(\.\d+)?$`)

	// Everything that is not a digit, dot, or comma is cosmetic noise.
	noisePattern = regexp.MustCompile(`[^0-9.,]`)
)

var printer = message.NewPrinter(language.English)

// Parse validates free-form numeric text and returns a positive decimal.
// Checks run in order and short-circuit on the first failure.
func Parse(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)

	if strings.HasPrefix(trimmed, "-") {
		return decimal.Zero, common.ErrNegativeAmount
	}

	if commaAsDecimalPattern.MatchString(trimmed) {
		return decimal.Zero, common.ErrCommaAsDecimal
	}

	cleaned := noisePattern.ReplaceAllString(trimmed, "")

	if strings.Contains(cleaned, ",") {
		if !groupedPattern.MatchString(cleaned) {
			return decimal.Zero, common.ErrMalformedNumber
		}
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, common.ErrNotANumber
	}

	if !value.IsPositive() {
		return decimal.Zero, common.ErrNonPositiveAmount
	}

	return value, nil
}

// Format renders an amount in display form: thousands separators and
// exactly two fraction digits, e.g. 1234.5 -> "1,234.56" style output.
// This is the form persisted in the ledger file.
func Format(value decimal.Decimal) string {
	f, _ := value.Round(2).Float64()
	return printer.Sprint(number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
