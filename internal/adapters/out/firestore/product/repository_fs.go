// internal/adapters/out/firestore/product/repository_fs.go
// Responsibility: Firestore を用いた Product リポジトリの本体（コレクション参照・生成・ポート適合）を提供する。
package product

import (
	"cloud.google.com/go/firestore"

	proddom "petshow/internal/domain/product"
)

// ProductRepositoryFS implements product.Repository using Firestore.
type ProductRepositoryFS struct {
	Client *firestore.Client
}

func NewProductRepositoryFS(client *firestore.Client) *ProductRepositoryFS {
	return &ProductRepositoryFS{Client: client}
}

func (r *ProductRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("products")
}

// Compile-time check: ensure this satisfies the domain port
var _ proddom.Repository = (*ProductRepositoryFS)(nil)
