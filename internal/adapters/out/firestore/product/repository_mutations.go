// internal/adapters/out/firestore/product/repository_mutations.go
// Responsibility: Product の変更系（Create/Delete）を提供する。
package product

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	proddom "petshow/internal/domain/product"
)

// Create inserts a new Product (no upsert) and returns its identity key.
// ID は Firestore 採番（NewDoc）。作成直後から List で可視となる。
func (r *ProductRepositoryFS) Create(ctx context.Context, p proddom.Product) (string, error) {
	if r.Client == nil {
		return "", proddom.WrapCreate(errors.New("firestore client is nil"))
	}

	docRef := r.col().NewDoc()
	p.ID = docRef.ID

	data := productToDoc(p)
	data["id"] = p.ID

	if _, err := docRef.Create(ctx, data); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return "", proddom.ErrConflict
		}
		return "", proddom.WrapCreate(err)
	}
	return p.ID, nil
}

// Delete removes a Product record by ID (physical delete).
// 画像のカスケード削除は usecase 側の責務。
func (r *ProductRepositoryFS) Delete(ctx context.Context, id string) error {
	if r.Client == nil {
		return proddom.WrapDelete(errors.New("firestore client is nil"))
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return proddom.ErrInvalidID
	}

	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return proddom.ErrNotFound
		}
		return proddom.WrapDelete(err)
	}
	return nil
}
