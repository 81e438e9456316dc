// internal/platform/di/register.go
package di

import (
	"net/http"

	"petshow/internal/adapters/in/http/handlers"
)

// Register registers application routes onto mux.
// Pure DI: construct handlers and mount. No method/path branching here;
// ハンドラ側で method/path を振り分ける。
func Register(mux *http.ServeMux, cont *Container) {
	if mux == nil || cont == nil {
		return
	}

	productH := handlers.NewProductHandler(cont.ProductUC, cont.CatalogQ, cont.DraftStore, cont.Submitter)
	draftH := handlers.NewDraftHandler(cont.DraftStore, cont.Submitter)

	mux.Handle("/products", productH)
	mux.Handle("/products/", productH)
	mux.Handle("/drafts", draftH)
	mux.Handle("/drafts/", draftH)
}
