// internal/adapters/out/rtdb/product_repository_rtdb.go
// Responsibility: Firebase Realtime Database を用いた Product リポジトリ（push/get/remove）を提供する。
package rtdb

import (
	"context"
	"errors"
	"sort"
	"strings"

	"firebase.google.com/go/v4/db"

	proddom "petshow/internal/domain/product"
)

// ProductRepositoryRTDB implements product.Repository backed by the
// Firebase Realtime Database. Records live under "products/<pushKey>";
// the push key is the identity key.
//
// Firestore 実装（adapters/out/firestore/product）と差し替え可能。
// PRODUCTS_DB=realtime で選択される（di 側参照）。
type ProductRepositoryRTDB struct {
	Client *db.Client
}

func NewProductRepositoryRTDB(client *db.Client) *ProductRepositoryRTDB {
	return &ProductRepositoryRTDB{Client: client}
}

// Compile-time check: ensure this satisfies the domain port
var _ proddom.Repository = (*ProductRepositoryRTDB)(nil)

func (r *ProductRepositoryRTDB) ref() *db.Ref {
	return r.Client.NewRef("products")
}

// record is the persisted shape. ID は含めない（キーが identity）。
type record struct {
	Name        string              `json:"name"`
	Description *string             `json:"description,omitempty"`
	Supplier    string              `json:"supplier"`
	Variations  []proddom.Variation `json:"variations"`
}

func toRecord(p proddom.Product) record {
	vars := make([]proddom.Variation, 0, len(p.Variations))
	for _, v := range p.Variations {
		// promotion は active なもののみ永続化する
		v.Promotion = v.ActivePromotion()
		if v.SecondaryImages == nil {
			v.SecondaryImages = []string{}
		}
		vars = append(vars, v)
	}
	return record{
		Name:        strings.TrimSpace(p.Name),
		Description: p.Description,
		Supplier:    strings.TrimSpace(p.Supplier),
		Variations:  vars,
	}
}

func (rec record) toProduct(id string) proddom.Product {
	vars := rec.Variations
	if vars == nil {
		vars = []proddom.Variation{}
	}
	return proddom.Product{
		ID:          id,
		Name:        rec.Name,
		Description: rec.Description,
		Supplier:    rec.Supplier,
		Variations:  vars,
	}
}

// List returns every product under "products", ordered by push key
// (chronological for RTDB push IDs). 空なら空スライス。
func (r *ProductRepositoryRTDB) List(ctx context.Context) ([]proddom.Product, error) {
	if r.Client == nil {
		return nil, proddom.WrapFetch(errors.New("rtdb client is nil"))
	}

	var all map[string]record
	if err := r.ref().Get(ctx, &all); err != nil {
		return nil, proddom.WrapFetch(err)
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]proddom.Product, 0, len(keys))
	for _, k := range keys {
		out = append(out, all[k].toProduct(k))
	}
	return out, nil
}

// Get fetches a single product by its push key.
func (r *ProductRepositoryRTDB) Get(ctx context.Context, id string) (proddom.Product, error) {
	if r.Client == nil {
		return proddom.Product{}, proddom.WrapFetch(errors.New("rtdb client is nil"))
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return proddom.Product{}, proddom.ErrInvalidID
	}

	var rec record
	if err := r.ref().Child(id).Get(ctx, &rec); err != nil {
		return proddom.Product{}, proddom.WrapFetch(err)
	}
	// RTDB は欠損キーをエラーにしないため、ゼロ値で判定する
	if rec.Name == "" && rec.Supplier == "" && len(rec.Variations) == 0 {
		return proddom.Product{}, proddom.ErrNotFound
	}
	return rec.toProduct(id), nil
}

// Create pushes a new record and returns the generated push key.
func (r *ProductRepositoryRTDB) Create(ctx context.Context, p proddom.Product) (string, error) {
	if r.Client == nil {
		return "", proddom.WrapCreate(errors.New("rtdb client is nil"))
	}

	newRef, err := r.ref().Push(ctx, toRecord(p))
	if err != nil {
		return "", proddom.WrapCreate(err)
	}
	return newRef.Key, nil
}

// Delete removes the record. 画像のカスケード削除は usecase 側の責務。
func (r *ProductRepositoryRTDB) Delete(ctx context.Context, id string) error {
	if r.Client == nil {
		return proddom.WrapDelete(errors.New("rtdb client is nil"))
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return proddom.ErrInvalidID
	}

	if err := r.ref().Child(id).Delete(ctx); err != nil {
		return proddom.WrapDelete(err)
	}
	return nil
}
