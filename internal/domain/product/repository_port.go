// internal/domain/product/repository_port.go
package product

import "context"

// Repository is the outbound port for the products collection.
//
// List returns an empty slice (not an error) when no products exist.
// Create assigns and returns the identity key; the record is durably
// stored and immediately visible to subsequent List calls.
// Delete removes the record only — cascading image deletion is the
// caller's concern (see usecase.ProductUsecase.Delete).
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (Product, error)
	Create(ctx context.Context, p Product) (string, error)
	Delete(ctx context.Context, id string) error
}
