// internal/adapters/out/firestore/product/repository_getters.go
// Responsibility: Product の参照系（List/Get）を提供する。
package product

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	proddom "petshow/internal/domain/product"
)

// List returns every product in the collection.
// 空コレクションはエラーではなく空スライスを返す。
func (r *ProductRepositoryFS) List(ctx context.Context) ([]proddom.Product, error) {
	if r.Client == nil {
		return nil, proddom.WrapFetch(errors.New("firestore client is nil"))
	}

	it := r.col().Documents(ctx)
	defer it.Stop()

	out := make([]proddom.Product, 0)
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, proddom.WrapFetch(err)
		}
		p, err := docToProduct(snap)
		if err != nil {
			return nil, proddom.WrapFetch(err)
		}
		out = append(out, p)
	}
	return out, nil
}

// Get fetches a single product by its identity key.
func (r *ProductRepositoryFS) Get(ctx context.Context, id string) (proddom.Product, error) {
	if r.Client == nil {
		return proddom.Product{}, proddom.WrapFetch(errors.New("firestore client is nil"))
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return proddom.Product{}, proddom.ErrInvalidID
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return proddom.Product{}, proddom.ErrNotFound
		}
		return proddom.Product{}, proddom.WrapFetch(err)
	}
	return docToProduct(snap)
}
