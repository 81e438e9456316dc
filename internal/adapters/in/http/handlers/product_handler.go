// internal/adapters/in/http/handlers/product_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"petshow/internal/application/query/catalog"
	"petshow/internal/application/registration"
	"petshow/internal/application/usecase"
	imgdom "petshow/internal/domain/productimage"
)

// ProductHandler は /products 関連のエンドポイントを担当します。
type ProductHandler struct {
	uc        *usecase.ProductUsecase
	catalogQ  *catalog.Query
	store     *registration.DraftStore
	submitter *registration.Submitter
}

// NewProductHandler はHTTPハンドラを初期化します。
func NewProductHandler(
	uc *usecase.ProductUsecase,
	catalogQ *catalog.Query,
	store *registration.DraftStore,
	submitter *registration.Submitter,
) http.Handler {
	return &ProductHandler{
		uc:        uc,
		catalogQ:  catalogQ,
		store:     store,
		submitter: submitter,
	}
}

// ServeHTTP はHTTPルーティングの入口です。
func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log.Printf("[ProductHandler] method=%s path=%s", r.Method, r.URL.Path)

	switch {

	// ------------------------------------------------------------
	// GET /products — 一覧（catalog card 形式）
	// ------------------------------------------------------------
	case r.Method == http.MethodGet && r.URL.Path == "/products":
		h.list(w, r)

	// ------------------------------------------------------------
	// POST /products — multipart 一括登録（draft なしの one-shot）
	// ------------------------------------------------------------
	case r.Method == http.MethodPost && r.URL.Path == "/products":
		h.create(w, r)

	// ------------------------------------------------------------
	// GET /products/{id}
	// ------------------------------------------------------------
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/products/"):
		h.get(w, r, strings.TrimPrefix(r.URL.Path, "/products/"))

	// ------------------------------------------------------------
	// DELETE /products/{id} — 画像込みのカスケード削除
	// ------------------------------------------------------------
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/products/"):
		h.delete(w, r, strings.TrimPrefix(r.URL.Path, "/products/"))

	case r.URL.Path == "/products" || strings.HasPrefix(r.URL.Path, "/products/"):
		methodNotAllowed(w)

	default:
		writeErr(w, http.StatusNotFound, "not_found")
	}
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	cards, err := h.catalogQ.Cards(r.Context())
	if err != nil {
		log.Printf("[ProductHandler] list failed: %v", err)
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (h *ProductHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.uc.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("[ProductHandler] get failed id=%s: %v", id, err)
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog.Card(p))
}

func (h *ProductHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	res, err := h.uc.Delete(r.Context(), id)
	if err != nil && !res.RecordDeleted {
		log.Printf("[ProductHandler] delete failed id=%s: %v", id, err)
		writeDomainErr(w, err)
		return
	}
	if err != nil {
		// レコードは消えたが画像が残った（部分失敗）。結果をそのまま返す。
		log.Printf("[ProductHandler] delete partial id=%s: %v", id, err)
	}
	writeJSON(w, http.StatusOK, res)
}

// ------------------------------------------------------------
// POST /products
//   multipart/form-data:
//     product                       ... JSON（name/description/supplier/variations）
//     variations[i].mainImage       ... file（必須）
//     variations[i].secondaryImages ... file（複数可）
// ------------------------------------------------------------

// createPayload は one-shot 登録の JSON part。
type createPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Supplier    string `json:"supplier"`
	Variations  []struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Barcode     string   `json:"barcode"`
		SKU         string   `json:"sku"`
		Stock       int      `json:"stock"`
		Price       float64  `json:"price"`
		InPromotion bool     `json:"inPromotion"`
		Promotion   *struct {
			NewPrice  *float64 `json:"newPrice"`
			StartDate string   `json:"startDate"`
			EndDate   string   `json:"endDate"`
		} `json:"promotion"`
	} `json:"variations"`
}

func (h *ProductHandler) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var payload createPayload
	if err := json.Unmarshal([]byte(r.FormValue("product")), &payload); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid product JSON part")
		return
	}

	// ファイル part はロック外で読み切る（store.Update 内では I/O しない）
	type rowFiles struct {
		main        *imgdom.File
		secondaries []imgdom.File
	}
	files := make([]rowFiles, len(payload.Variations))
	for i := range payload.Variations {
		if fhs := r.MultipartForm.File[fmt.Sprintf("variations[%d].mainImage", i)]; len(fhs) > 0 {
			f, err := readFilePart(fhs[0])
			if err != nil {
				writeErr(w, http.StatusBadRequest, "unreadable main image part")
				return
			}
			files[i].main = &f
		}
		for _, fh := range r.MultipartForm.File[fmt.Sprintf("variations[%d].secondaryImages", i)] {
			f, err := readFilePart(fh)
			if err != nil {
				writeErr(w, http.StatusBadRequest, "unreadable secondary image part")
				return
			}
			files[i].secondaries = append(files[i].secondaries, f)
		}
	}

	// one-shot でも draft パイプラインをそのまま使う（使い捨て draft）。
	d := h.store.Create()
	defer h.store.Discard(d.ID)

	if err := h.store.Update(d.ID, func(d *registration.Draft) error {
		d.SetProduct(payload.Name, payload.Description, payload.Supplier)
		d.Rows = d.Rows[:0]
		for i, v := range payload.Variations {
			rowID := d.AddRow()
			row := d.Row(rowID)
			row.Name = v.Name
			row.Description = v.Description
			row.Barcode = v.Barcode
			row.SKU = v.SKU
			row.Stock = v.Stock
			row.Price = v.Price
			row.InPromotion = v.InPromotion
			if v.Promotion != nil {
				row.PromoNewPrice = v.Promotion.NewPrice
				row.PromoStartDate = v.Promotion.StartDate
				row.PromoEndDate = v.Promotion.EndDate
			}
			row.MainFile = files[i].main
			row.SecondaryFiles = files[i].secondaries
		}
		return nil
	}); err != nil {
		log.Printf("[ProductHandler] create draft lost: %v", err)
		writeErr(w, http.StatusInternalServerError, "internal server error")
		return
	}

	res, err := h.submitter.Submit(ctx, d.ID)
	if err != nil {
		if res != nil && len(res.Errors) > 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":  "validation_failed",
				"fields": res.Errors,
			})
			return
		}
		log.Printf("[ProductHandler] create failed: %v", err)
		writeDomainErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": res.ProductID})
}
