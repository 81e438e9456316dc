// internal/domain/money/price.go
// Responsibility: 価格文字列と数値の相互変換（BRL 表示・マスク入力のパース）を一元化する。
package money

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ErrInvalidPriceFormat is returned by ParsePriceStrict when the input
// cannot be read as a price.
var ErrInvalidPriceFormat = errors.New("money: invalid price format")

// printer renders numbers with pt-BR separators ("." thousands, "," decimal).
var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatAmount formats a numeric value as Brazilian Real, two decimals:
//
//	FormatAmount(15.99)   => "R$ 15,99"
//	FormatAmount(1234.5)  => "R$ 1.234,50"
func FormatAmount(v float64) string {
	return "R$ " + printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// FormatPrice masks a raw input string as BRL currency.
// 数値として読めない入力は空文字を返す（エラーにはしない）。
func FormatPrice(raw string) string {
	v, err := parse(raw)
	if err != nil {
		return ""
	}
	return FormatAmount(v)
}

// ParsePrice reads a price out of a raw or masked string.
// Unparseable input yields 0, matching the form controller contract
// (see ParsePriceStrict for the failing variant).
func ParsePrice(raw string) float64 {
	v, err := parse(raw)
	if err != nil {
		return 0
	}
	return v
}

// ParsePriceStrict is ParsePrice that refuses bad input instead of
// coercing it to zero.
func ParsePriceStrict(raw string) (float64, error) {
	v, err := parse(raw)
	if err != nil {
		return 0, ErrInvalidPriceFormat
	}
	return v, nil
}

// parse strips everything but digits, separators and a leading minus,
// then decides which separator is the decimal mark.
//
// 対応例:
//   - "1234.56"     (plain)
//   - "R$ 1.234,56" (masked BRL)
//   - "15,99"       (comma decimal)
func parse(raw string) (float64, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" || s == "-" || s == "." || s == "," {
		return 0, ErrInvalidPriceFormat
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastComma > lastDot:
		// comma is the decimal mark; dots are thousands separators
		s = strings.ReplaceAll(s, ".", "")
		last := strings.LastIndex(s, ",")
		s = strings.ReplaceAll(s[:last], ",", "") + "." + s[last+1:]
	case lastDot > lastComma:
		// dot is the decimal mark; commas are thousands separators
		s = strings.ReplaceAll(s, ",", "")
		// "1.234.567" style: keep only the last dot as decimal mark
		if first := strings.Index(s, "."); first != lastDot {
			s = strings.ReplaceAll(s[:strings.LastIndex(s, ".")], ".", "") + s[strings.LastIndex(s, "."):]
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidPriceFormat
	}
	return v, nil
}
