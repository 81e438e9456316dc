// internal/domain/product/entity.go
package product

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// 汎用エラー（ドメイン共通）
var (
	ErrNotFound  = errors.New("product: not found")
	ErrConflict  = errors.New("product: conflict")
	ErrInvalid   = errors.New("product: invalid")
	ErrInvalidID = errors.New("product: invalid id")

	// Transport-layer failures (repository boundary)
	ErrFetch  = errors.New("product: fetch failed")
	ErrCreate = errors.New("product: create failed")
	ErrDelete = errors.New("product: delete failed")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
func IsInvalid(err error) bool  { return errors.Is(err, ErrInvalid) }
func IsFetch(err error) bool    { return errors.Is(err, ErrFetch) }
func IsCreate(err error) bool   { return errors.Is(err, ErrCreate) }

func WrapInvalid(err error, msg string) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrInvalid, msg)
	}
	return fmt.Errorf("%w: %s: %v", ErrInvalid, msg, err)
}

func WrapFetch(err error) error {
	if err == nil {
		return ErrFetch
	}
	return fmt.Errorf("%w: %v", ErrFetch, err)
}

func WrapCreate(err error) error {
	if err == nil {
		return ErrCreate
	}
	return fmt.Errorf("%w: %v", ErrCreate, err)
}

func WrapDelete(err error) error {
	if err == nil {
		return ErrDelete
	}
	return fmt.Errorf("%w: %v", ErrDelete, err)
}

// ======================================
// Entity
// ======================================

// Product is a catalog entry with at least one purchasable Variation.
// ID is assigned by the repository at creation time and is empty before.
type Product struct {
	ID          string      `json:"id,omitempty"`
	Name        string      `json:"name"`
	Description *string     `json:"description,omitempty"`
	Supplier    string      `json:"supplier"`
	Variations  []Variation `json:"variations"`
}

// Variation is one purchasable configuration (size etc.) of a Product.
//
// MainImage / SecondaryImages hold durable object-storage URLs once the
// product is persisted; the record must never contain raw file handles.
type Variation struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Barcode     *string `json:"barcode,omitempty"`
	SKU         *string `json:"sku,omitempty"`

	Stock int     `json:"stock"`
	Price float64 `json:"price"`

	InPromotion bool       `json:"inPromotion"`
	Promotion   *Promotion `json:"promotion,omitempty"`

	MainImage       string   `json:"mainImage"`
	SecondaryImages []string `json:"secondaryImages"`
}

// Promotion is a time-bounded discounted price overlay on a Variation.
// Both dates are calendar dates ("2006-01-02"); the range is inclusive.
type Promotion struct {
	NewPrice  *float64 `json:"newPrice,omitempty"`
	StartDate *string  `json:"startDate,omitempty"`
	EndDate   *string  `json:"endDate,omitempty"`
}

// ActivePromotion returns the promotion only when it should be applied:
// inPromotion must be set and a newPrice must be present. A variation
// with InPromotion=false never has its promotion fields interpreted as
// active, even if populated.
func (v Variation) ActivePromotion() *Promotion {
	if !v.InPromotion || v.Promotion == nil || v.Promotion.NewPrice == nil {
		return nil
	}
	return v.Promotion
}

// ImageURLs returns main + secondary image URLs in cascade-delete order.
func (v Variation) ImageURLs() []string {
	out := make([]string, 0, 1+len(v.SecondaryImages))
	if u := strings.TrimSpace(v.MainImage); u != "" {
		out = append(out, u)
	}
	for _, u := range v.SecondaryImages {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// ImageURLs collects every image URL of every variation, in order.
func (p Product) ImageURLs() []string {
	var out []string
	for _, v := range p.Variations {
		out = append(out, v.ImageURLs()...)
	}
	return out
}

const dateLayout = "2006-01-02"

// ParsePromotionDate parses a promotion calendar date.
func ParsePromotionDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse date: %q", s)
	}
	return t.UTC(), nil
}
