// internal/application/registration/draft.go
package registration

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"petshow/internal/domain/money"
	proddom "petshow/internal/domain/product"
	imgdom "petshow/internal/domain/productimage"
)

// State is the lifecycle phase of a registration draft.
type State string

const (
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateUploading  State = "uploading"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// InFlight reports whether a submit is currently running for the draft.
func (s State) InFlight() bool {
	return s == StateValidating || s == StateUploading || s == StateSubmitting
}

// ============================================================
// Draft / Row
// ============================================================

// Row is one variation being edited. RowID identifies the row across
// edits (追加・削除で index がずれても同じ行を指す), independent of the
// variation's eventual position in the persisted product.
type Row struct {
	RowID string `json:"rowId"`

	Name        string `json:"name"`
	Description string `json:"description"`
	Barcode     string `json:"barcode"`
	SKU         string `json:"sku"`

	Stock int     `json:"stock"`
	Price float64 `json:"price"`

	InPromotion bool `json:"inPromotion"`
	// Promotion input is kept even while InPromotion is false, so
	// toggling the flag back on restores what the user typed. Only
	// the toggle decides whether it is persisted.
	PromoNewPrice  *float64 `json:"promoNewPrice,omitempty"`
	PromoStartDate string   `json:"promoStartDate,omitempty"`
	PromoEndDate   string   `json:"promoEndDate,omitempty"`

	MainFile       *imgdom.File  `json:"-"`
	SecondaryFiles []imgdom.File `json:"-"`
}

// PriceDisplay renders the row's price for the form ("R$ 1.234,56").
func (r Row) PriceDisplay() string {
	return money.FormatAmount(r.Price)
}

// Draft is an in-progress product registration. It is owned by a
// DraftStore and mutated only through its methods while State is
// editable.
type Draft struct {
	ID    string `json:"id"`
	State State  `json:"state"`

	Name        string `json:"name"`
	Description string `json:"description"`
	Supplier    string `json:"supplier"`

	Rows []Row `json:"rows"`

	// Set when State reaches Succeeded / Failed.
	ProductID string                `json:"productId,omitempty"`
	Errors    proddom.FieldErrors   `json:"errors,omitempty"`
	FailedAt  string                `json:"failedAt,omitempty"` // phase name on failure
}

// NewDraft starts a draft with a single empty variation row, matching
// the registration form's initial state.
func NewDraft() *Draft {
	return &Draft{
		ID:    newID(),
		State: StateEditing,
		Rows:  []Row{{RowID: newID()}},
	}
}

// Clone returns a deep copy of the draft. The copy can be read and
// JSON-encoded after the store lock is released while the stored draft
// keeps changing. File payload bytes are shared; attached files are
// never mutated in place.
func (d *Draft) Clone() *Draft {
	c := *d
	c.Rows = make([]Row, len(d.Rows))
	copy(c.Rows, d.Rows)
	for i := range c.Rows {
		r := &c.Rows[i]
		if r.PromoNewPrice != nil {
			v := *r.PromoNewPrice
			r.PromoNewPrice = &v
		}
		if r.MainFile != nil {
			f := *r.MainFile
			r.MainFile = &f
		}
		if r.SecondaryFiles != nil {
			r.SecondaryFiles = append([]imgdom.File(nil), r.SecondaryFiles...)
		}
	}
	if d.Errors != nil {
		c.Errors = make(proddom.FieldErrors, len(d.Errors))
		for k, v := range d.Errors {
			c.Errors[k] = v
		}
	}
	return &c
}

// ============================================================
// Mutations (valid only while editing)
// ============================================================

// ResumeEditing clears a failed submission's outcome so the draft can
// be edited again. No-op unless the draft is in Failed.
func (d *Draft) ResumeEditing() {
	if d.State == StateFailed {
		d.State = StateEditing
		d.Errors = nil
		d.FailedAt = ""
	}
}

// SetProduct updates the product-level fields.
func (d *Draft) SetProduct(name, description, supplier string) {
	d.Name = strings.TrimSpace(name)
	d.Description = strings.TrimSpace(description)
	d.Supplier = strings.TrimSpace(supplier)
}

// AddRow appends an empty variation row and returns its RowID.
func (d *Draft) AddRow() string {
	r := Row{RowID: newID()}
	d.Rows = append(d.Rows, r)
	return r.RowID
}

// RemoveRow deletes the row with the given RowID. Removing the last
// row is allowed; validation rejects a rowless submit.
func (d *Draft) RemoveRow(rowID string) bool {
	for i, r := range d.Rows {
		if r.RowID == rowID {
			d.Rows = append(d.Rows[:i], d.Rows[i+1:]...)
			return true
		}
	}
	return false
}

// Row returns a pointer to the row with the given RowID, or nil.
func (d *Draft) Row(rowID string) *Row {
	for i := range d.Rows {
		if d.Rows[i].RowID == rowID {
			return &d.Rows[i]
		}
	}
	return nil
}

// SetInPromotion toggles the promotion flag on a row. The typed
// promotion values are never cleared here; they simply become inert
// while the flag is off.
func (d *Draft) SetInPromotion(rowID string, on bool) bool {
	r := d.Row(rowID)
	if r == nil {
		return false
	}
	r.InPromotion = on
	return true
}

// ============================================================
// Projection to the domain entity
// ============================================================

// toProduct builds the domain product from the draft. Image fields are
// left empty; the submit pipeline fills them in after uploading.
func (d *Draft) toProduct() proddom.Product {
	p := proddom.Product{
		Name:        d.Name,
		Description: optional(d.Description),
		Supplier:    d.Supplier,
	}
	for _, r := range d.Rows {
		v := proddom.Variation{
			Name:        r.Name,
			Description: optional(r.Description),
			Barcode:     optional(r.Barcode),
			SKU:         optional(r.SKU),
			Stock:       r.Stock,
			Price:       r.Price,
			InPromotion: r.InPromotion,
		}
		// Inert promotion input stays on the row but is neither
		// validated nor persisted.
		if r.InPromotion {
			v.Promotion = &proddom.Promotion{
				NewPrice:  r.PromoNewPrice,
				StartDate: optional(r.PromoStartDate),
				EndDate:   optional(r.PromoEndDate),
			}
		}
		p.Variations = append(p.Variations, v)
	}
	return p
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func newID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
