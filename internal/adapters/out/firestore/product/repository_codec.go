// internal/adapters/out/firestore/product/repository_codec.go
// Responsibility: Firestore ドキュメントとドメイン Product の相互変換（docToProduct / productToDoc）を担い、保存形式を一元化する。
package product

import (
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"

	proddom "petshow/internal/domain/product"
)

// ========================
// Helpers: Codec (doc <-> domain)
// ========================

func docToProduct(doc *firestore.DocumentSnapshot) (proddom.Product, error) {
	data := doc.Data()
	if data == nil {
		return proddom.Product{}, fmt.Errorf("empty products document: %s", doc.Ref.ID)
	}

	p := proddom.Product{
		ID:          doc.Ref.ID,
		Name:        getStr(data, "name"),
		Description: getStrPtr(data, "description"),
		Supplier:    getStr(data, "supplier"),
	}

	if raw, ok := data["variations"]; ok && raw != nil {
		if xs, ok := raw.([]interface{}); ok {
			vars := make([]proddom.Variation, 0, len(xs))
			for _, it := range xs {
				m, ok := it.(map[string]interface{})
				if !ok || m == nil {
					continue
				}
				vars = append(vars, mapToVariation(m))
			}
			p.Variations = vars
		}
	}
	if p.Variations == nil {
		p.Variations = []proddom.Variation{}
	}

	return p, nil
}

func mapToVariation(m map[string]interface{}) proddom.Variation {
	v := proddom.Variation{
		Name:        getStr(m, "name"),
		Description: getStrPtr(m, "description"),
		Barcode:     getStrPtr(m, "barcode"),
		SKU:         getStrPtr(m, "sku"),
		Stock:       getInt(m, "stock"),
		Price:       getFloat(m, "price"),
		MainImage:   getStr(m, "mainImage"),
	}

	if b, ok := m["inPromotion"].(bool); ok {
		v.InPromotion = b
	}

	if raw, ok := m["promotion"]; ok && raw != nil {
		if pm, ok := raw.(map[string]interface{}); ok {
			pr := proddom.Promotion{
				StartDate: getStrPtr(pm, "startDate"),
				EndDate:   getStrPtr(pm, "endDate"),
			}
			if np, ok := floatVal(pm["newPrice"]); ok {
				pr.NewPrice = &np
			}
			v.Promotion = &pr
		}
	}

	v.SecondaryImages = getStringSlice(m, "secondaryImages")
	return v
}

func productToDoc(p proddom.Product) map[string]interface{} {
	vars := make([]map[string]interface{}, 0, len(p.Variations))
	for _, v := range p.Variations {
		vars = append(vars, variationToMap(v))
	}

	data := map[string]interface{}{
		"name":       strings.TrimSpace(p.Name),
		"supplier":   strings.TrimSpace(p.Supplier),
		"variations": vars,
	}
	if p.Description != nil {
		data["description"] = strings.TrimSpace(*p.Description)
	}
	return data
}

func variationToMap(v proddom.Variation) map[string]interface{} {
	m := map[string]interface{}{
		"name":            strings.TrimSpace(v.Name),
		"stock":           v.Stock,
		"price":           v.Price,
		"inPromotion":     v.InPromotion,
		"mainImage":       strings.TrimSpace(v.MainImage),
		"secondaryImages": append([]string{}, v.SecondaryImages...),
	}
	if v.Description != nil {
		m["description"] = strings.TrimSpace(*v.Description)
	}
	if v.Barcode != nil {
		m["barcode"] = strings.TrimSpace(*v.Barcode)
	}
	if v.SKU != nil {
		m["sku"] = strings.TrimSpace(*v.SKU)
	}

	// promotion は active なもののみ永続化する（inert な入力値は落とす）
	if pr := v.ActivePromotion(); pr != nil {
		pm := map[string]interface{}{}
		if pr.NewPrice != nil {
			pm["newPrice"] = *pr.NewPrice
		}
		if pr.StartDate != nil {
			pm["startDate"] = strings.TrimSpace(*pr.StartDate)
		}
		if pr.EndDate != nil {
			pm["endDate"] = strings.TrimSpace(*pr.EndDate)
		}
		m["promotion"] = pm
	}
	return m
}

// ========================
// Helpers: typed map access
// ========================

func getStr(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func getStrPtr(m map[string]interface{}, key string) *string {
	if v, ok := m[key].(string); ok {
		s := strings.TrimSpace(v)
		if s != "" {
			return &s
		}
	}
	return nil
}

func getInt(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func getFloat(m map[string]interface{}, key string) float64 {
	f, _ := floatVal(m[key])
	return f
}

func floatVal(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func getStringSlice(m map[string]interface{}, key string) []string {
	raw, ok := m[key]
	if !ok || raw == nil {
		return []string{}
	}
	switch vv := raw.(type) {
	case []interface{}:
		out := make([]string, 0, len(vv))
		for _, x := range vv {
			if s, ok := x.(string); ok {
				s = strings.TrimSpace(s)
				if s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(vv))
		for _, s := range vv {
			s = strings.TrimSpace(s)
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}
