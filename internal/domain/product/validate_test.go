// internal/domain/product/validate_test.go
package product

import "testing"

func strPtr(s string) *string    { return &s }
func f64Ptr(v float64) *float64  { return &v }

func validProduct() Product {
	return Product{
		Name:     "Racao Premium",
		Supplier: "PetFood Ltda",
		Variations: []Variation{
			{Name: "1kg", Stock: 10, Price: 59.9},
		},
	}
}

func TestValidateAccepts(t *testing.T) {
	p := validProduct()
	p.Description = strPtr("  alimento completo  ")
	p.Variations[0].Barcode = strPtr(" 789000000 ")

	got, fe := Validate(p)
	if len(fe) != 0 {
		t.Fatalf("unexpected field errors: %v", fe)
	}
	if *got.Description != "alimento completo" {
		t.Fatalf("description not trimmed: %q", *got.Description)
	}
	if *got.Variations[0].Barcode != "789000000" {
		t.Fatalf("barcode not trimmed: %q", *got.Variations[0].Barcode)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]struct {
		mutate func(*Product)
		path   string
		msg    string
	}{
		"missing name": {
			mutate: func(p *Product) { p.Name = "   " },
			path:   "name", msg: MsgNameRequired,
		},
		"missing supplier": {
			mutate: func(p *Product) { p.Supplier = "" },
			path:   "supplier", msg: MsgSupplierRequired,
		},
		"no variations": {
			mutate: func(p *Product) { p.Variations = nil },
			path:   "variations", msg: MsgVariationsEmpty,
		},
		"missing variation name": {
			mutate: func(p *Product) { p.Variations[0].Name = "" },
			path:   "variations[0].name", msg: MsgVariationNameRequired,
		},
		"negative stock": {
			mutate: func(p *Product) { p.Variations[0].Stock = -1 },
			path:   "variations[0].stock", msg: MsgStockNegative,
		},
		"negative price": {
			mutate: func(p *Product) { p.Variations[0].Price = -0.01 },
			path:   "variations[0].price", msg: MsgPriceNegative,
		},
		"negative promo price": {
			mutate: func(p *Product) {
				p.Variations[0].Promotion = &Promotion{NewPrice: f64Ptr(-5)}
			},
			path: "variations[0].promotion.newPrice", msg: MsgNewPriceNegative,
		},
		"bad promo date": {
			mutate: func(p *Product) {
				p.Variations[0].Promotion = &Promotion{StartDate: strPtr("01/02/2026")}
			},
			path: "variations[0].promotion.startDate", msg: MsgBadDate,
		},
		"inverted promo range": {
			mutate: func(p *Product) {
				p.Variations[0].Promotion = &Promotion{
					StartDate: strPtr("2026-03-10"),
					EndDate:   strPtr("2026-03-01"),
				}
			},
			path: "variations[0].promotion.endDate", msg: MsgDateRangeInverted,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p := validProduct()
			tc.mutate(&p)
			_, fe := Validate(p)
			if got := fe[tc.path]; got != tc.msg {
				t.Fatalf("fe[%q] = %q, want %q (all: %v)", tc.path, got, tc.msg, fe)
			}
		})
	}
}

func TestValidatePromotionSameDayRange(t *testing.T) {
	p := validProduct()
	p.Variations[0].Promotion = &Promotion{
		NewPrice:  f64Ptr(49.9),
		StartDate: strPtr("2026-03-01"),
		EndDate:   strPtr("2026-03-01"),
	}
	if _, fe := Validate(p); len(fe) != 0 {
		t.Fatalf("same-day range must be valid, got %v", fe)
	}
}

func TestValidateReportsSecondVariationPath(t *testing.T) {
	p := validProduct()
	p.Variations = append(p.Variations, Variation{Name: "", Stock: -3, Price: 10})
	_, fe := Validate(p)
	if fe["variations[1].name"] != MsgVariationNameRequired {
		t.Fatalf("missing variations[1].name error: %v", fe)
	}
	if fe["variations[1].stock"] != MsgStockNegative {
		t.Fatalf("missing variations[1].stock error: %v", fe)
	}
}
