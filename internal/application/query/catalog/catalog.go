// internal/application/query/catalog/catalog.go
// Responsibility: 一覧画面向けの表示用projection（価格整形・プロモ表示判定）を担う。
package catalog

import (
	"context"
	"errors"

	"petshow/internal/domain/money"
	proddom "petshow/internal/domain/product"
)

// Lister is the read side the catalog projects from. Satisfied by
// usecase.ProductUsecase.
type Lister interface {
	List(ctx context.Context) ([]proddom.Product, error)
}

// VariationCard is one variation as the list page renders it. Prices
// are pre-formatted in BRL. When the promotion is active the base
// price is struck through and PromoPriceDisplay carries the discounted
// price; an inert promotion (flag off or no new price) renders the
// base price only.
type VariationCard struct {
	Name       string   `json:"name"`
	ImageURL   string   `json:"imageUrl"`
	Thumbnails []string `json:"thumbnails,omitempty"`
	Stock      int      `json:"stock"`

	Price        float64 `json:"price"`
	PriceDisplay string  `json:"priceDisplay"`

	BasePriceStruck   bool   `json:"basePriceStruck"`
	PromoPriceDisplay string `json:"promoPriceDisplay,omitempty"`
	PromoStart        string `json:"promoStart,omitempty"`
	PromoEnd          string `json:"promoEnd,omitempty"`
}

// ProductCard is one product row on the list page. Selected is the
// variation index the card opens on (always 0 for now; the client
// moves it).
type ProductCard struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Supplier    string          `json:"supplier"`
	Variations  []VariationCard `json:"variations"`
	Selected    int             `json:"selected"`
}

// Query builds catalog cards from the product read side.
type Query struct {
	lister Lister
}

func NewQuery(l Lister) *Query {
	return &Query{lister: l}
}

// Cards lists every product projected for display. An empty catalog is
// an empty slice, not an error.
func (q *Query) Cards(ctx context.Context) ([]ProductCard, error) {
	if q == nil || q.lister == nil {
		return nil, errors.New("catalog query is not wired")
	}
	list, err := q.lister.List(ctx)
	if err != nil {
		return nil, err
	}
	cards := make([]ProductCard, 0, len(list))
	for _, p := range list {
		cards = append(cards, Card(p))
	}
	return cards, nil
}

// Card projects a single product.
func Card(p proddom.Product) ProductCard {
	c := ProductCard{
		ID:         p.ID,
		Name:       p.Name,
		Supplier:   p.Supplier,
		Variations: make([]VariationCard, 0, len(p.Variations)),
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	for _, v := range p.Variations {
		c.Variations = append(c.Variations, variationCard(v))
	}
	return c
}

func variationCard(v proddom.Variation) VariationCard {
	vc := VariationCard{
		Name:         v.Name,
		ImageURL:     v.MainImage,
		Thumbnails:   v.SecondaryImages,
		Stock:        v.Stock,
		Price:        v.Price,
		PriceDisplay: money.FormatAmount(v.Price),
	}

	// 値だけ残っていてフラグが落ちている行はプロモ扱いしない。
	pr := v.ActivePromotion()
	if pr == nil {
		return vc
	}

	vc.BasePriceStruck = true
	vc.PromoPriceDisplay = money.FormatAmount(*pr.NewPrice)
	if pr.StartDate != nil {
		vc.PromoStart = *pr.StartDate
	}
	if pr.EndDate != nil {
		vc.PromoEnd = *pr.EndDate
	}
	return vc
}
