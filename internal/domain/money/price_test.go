// internal/domain/money/price_test.go
package money

import (
	"math"
	"testing"
)

func TestFormatAmount(t *testing.T) {
	cases := map[string]struct {
		in   float64
		want string
	}{
		"simple":           {15.99, "R$ 15,99"},
		"thousands":        {1234.56, "R$ 1.234,56"},
		"pads decimals":    {1234.5, "R$ 1.234,50"},
		"integer":          {7, "R$ 7,00"},
		"zero":             {0, "R$ 0,00"},
		"million grouping": {1234567.89, "R$ 1.234.567,89"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := FormatAmount(tc.in); got != tc.want {
				t.Fatalf("FormatAmount(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	cases := map[string]struct {
		in   string
		want float64
	}{
		"plain":             {"1234.56", 1234.56},
		"masked brl":        {"R$ 1.234,56", 1234.56},
		"comma decimal":     {"15,99", 15.99},
		"integer":           {"42", 42},
		"currency no group": {"R$ 15,99", 15.99},
		"dot thousands only": {"1.234,00", 1234},
		"unparseable yields zero": {"abc", 0},
		"empty yields zero":       {"", 0},
		"symbols only":            {"R$ ", 0},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := ParsePrice(tc.in); math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("ParsePrice(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParsePriceStrict(t *testing.T) {
	if _, err := ParsePriceStrict("abc"); err != ErrInvalidPriceFormat {
		t.Fatalf("ParsePriceStrict(abc) err = %v, want ErrInvalidPriceFormat", err)
	}
	if v, err := ParsePriceStrict("R$ 9,90"); err != nil || math.Abs(v-9.9) > 1e-9 {
		t.Fatalf("ParsePriceStrict(R$ 9,90) = %v, %v", v, err)
	}
}

// 表示→再パースで値が保存されること（フォームのマスク入力と同じ往復）。
func TestFormatParseRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.5, 15.99, 1234.56, 99999.01, 1234567.89} {
		got := ParsePrice(FormatAmount(v))
		if math.Abs(got-v) > 0.005 {
			t.Fatalf("round trip %v -> %q -> %v", v, FormatAmount(v), got)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice("1234,5"); got != "R$ 1.234,50" {
		t.Fatalf("FormatPrice = %q", got)
	}
	if got := FormatPrice("not a price"); got != "" {
		t.Fatalf("FormatPrice(bad) = %q, want empty", got)
	}
}
