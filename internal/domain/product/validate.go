// internal/domain/product/validate.go
// Responsibility: 登録フォーム送信の同期バリデーション（field path -> message）を担う。
package product

import (
	"fmt"
	"strings"
)

// FieldErrors maps a field path (e.g. "variations[2].stock") to a
// human-readable message. Empty map means the submission is valid.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "product: valid"
	}
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	return fmt.Sprintf("product: %d invalid field(s): %s", len(fe), strings.Join(keys, ", "))
}

// Validation messages. 文言はフォーム側の表示contractなので変更しないこと。
const (
	MsgNameRequired          = "Product name is required"
	MsgSupplierRequired      = "Supplier name is required"
	MsgVariationNameRequired = "Variation name is required"
	MsgStockNegative         = "Quantity in stock must be positive"
	MsgPriceNegative         = "Price must be positive"
	MsgNewPriceNegative      = "New price must be positive"
	MsgVariationsEmpty       = "There must be at least one variation."
	MsgBadDate               = "Invalid date"
	MsgDateRangeInverted     = "End date must not be before start date"
)

// Validate checks a candidate Product field by field and returns either
// the normalized (trimmed) value with an empty error map, or the
// original value with one message per offending field path.
//
// Validation is synchronous and side-effect free; it runs before any
// image upload or persistence call.
func Validate(p Product) (Product, FieldErrors) {
	fe := FieldErrors{}

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		fe["name"] = MsgNameRequired
	}

	p.Supplier = strings.TrimSpace(p.Supplier)
	if p.Supplier == "" {
		fe["supplier"] = MsgSupplierRequired
	}

	p.Description = trimPtr(p.Description)

	if len(p.Variations) == 0 {
		fe["variations"] = MsgVariationsEmpty
	}

	for i := range p.Variations {
		v := &p.Variations[i]
		path := fmt.Sprintf("variations[%d]", i)

		v.Name = strings.TrimSpace(v.Name)
		if v.Name == "" {
			fe[path+".name"] = MsgVariationNameRequired
		}
		v.Description = trimPtr(v.Description)
		v.Barcode = trimPtr(v.Barcode)
		v.SKU = trimPtr(v.SKU)

		if v.Stock < 0 {
			fe[path+".stock"] = MsgStockNegative
		}
		if v.Price < 0 {
			fe[path+".price"] = MsgPriceNegative
		}

		if v.Promotion != nil {
			validatePromotion(v.Promotion, path+".promotion", fe)
		}
	}

	if len(fe) > 0 {
		return p, fe
	}
	return p, FieldErrors{}
}

func validatePromotion(pr *Promotion, path string, fe FieldErrors) {
	if pr.NewPrice != nil && *pr.NewPrice < 0 {
		fe[path+".newPrice"] = MsgNewPriceNegative
	}

	pr.StartDate = trimPtr(pr.StartDate)
	pr.EndDate = trimPtr(pr.EndDate)

	var start, end *string = pr.StartDate, pr.EndDate

	if start != nil {
		if _, err := ParsePromotionDate(*start); err != nil {
			fe[path+".startDate"] = MsgBadDate
			start = nil
		}
	}
	if end != nil {
		if _, err := ParsePromotionDate(*end); err != nil {
			fe[path+".endDate"] = MsgBadDate
			end = nil
		}
	}

	// inclusive range: start == end is valid
	if start != nil && end != nil {
		s, _ := ParsePromotionDate(*start)
		e, _ := ParsePromotionDate(*end)
		if e.Before(s) {
			fe[path+".endDate"] = MsgDateRangeInverted
		}
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
