// internal/adapters/in/http/handlers/draft_handler.go
package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"petshow/internal/application/registration"
	imgdom "petshow/internal/domain/productimage"
)

// DraftHandler は /drafts 以下（登録フォームのドラフト操作）を担当します。
type DraftHandler struct {
	store     *registration.DraftStore
	submitter *registration.Submitter
}

func NewDraftHandler(store *registration.DraftStore, submitter *registration.Submitter) http.Handler {
	return &DraftHandler{store: store, submitter: submitter}
}

// ServeHTTP はHTTPルーティングの入口です。
//
//	POST   /drafts
//	GET    /drafts/{id}
//	PATCH  /drafts/{id}
//	POST   /drafts/{id}/variations
//	PATCH  /drafts/{id}/variations/{rowId}
//	DELETE /drafts/{id}/variations/{rowId}
//	POST   /drafts/{id}/variations/{rowId}/images
//	POST   /drafts/{id}/submit
func (h *DraftHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log.Printf("[DraftHandler] method=%s path=%s", r.Method, r.URL.Path)

	if r.Method == http.MethodPost && r.URL.Path == "/drafts" {
		d := h.store.Create()
		writeJSON(w, http.StatusCreated, d)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/drafts/")
	if rest == r.URL.Path || rest == "" {
		writeErr(w, http.StatusNotFound, "not_found")
		return
	}
	parts := strings.Split(rest, "/")
	draftID := parts[0]

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.get(w, draftID)

	case len(parts) == 1 && r.Method == http.MethodPatch:
		h.patchProduct(w, r, draftID)

	case len(parts) == 2 && parts[1] == "submit" && r.Method == http.MethodPost:
		h.submit(w, r, draftID)

	case len(parts) == 2 && parts[1] == "variations" && r.Method == http.MethodPost:
		h.addRow(w, draftID)

	case len(parts) == 3 && parts[1] == "variations" && r.Method == http.MethodPatch:
		h.patchRow(w, r, draftID, parts[2])

	case len(parts) == 3 && parts[1] == "variations" && r.Method == http.MethodDelete:
		h.removeRow(w, draftID, parts[2])

	case len(parts) == 4 && parts[1] == "variations" && parts[3] == "images" && r.Method == http.MethodPost:
		h.attachImages(w, r, draftID, parts[2])

	default:
		methodNotAllowed(w)
	}
}

func (h *DraftHandler) get(w http.ResponseWriter, draftID string) {
	d, err := h.store.Get(draftID)
	if err != nil {
		writeErr(w, http.StatusNotFound, "draft not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// mutate runs fn on an editable draft. In-flight / succeeded drafts
// reject mutation; a failed draft resumes editing first.
func (h *DraftHandler) mutate(w http.ResponseWriter, draftID string, fn func(*registration.Draft) error) {
	err := h.store.Update(draftID, func(d *registration.Draft) error {
		if d.State.InFlight() {
			return registration.ErrSubmitInFlight
		}
		if d.State == registration.StateSucceeded {
			return registration.ErrAlreadySubmitted
		}
		d.ResumeEditing()
		return fn(d)
	})
	switch {
	case err == nil:
		h.get(w, draftID)
	case errors.Is(err, registration.ErrDraftNotFound):
		writeErr(w, http.StatusNotFound, "draft not found")
	case errors.Is(err, registration.ErrSubmitInFlight):
		writeErr(w, http.StatusConflict, "submission in flight")
	case errors.Is(err, registration.ErrAlreadySubmitted):
		writeErr(w, http.StatusConflict, "draft already submitted")
	default:
		writeErr(w, http.StatusBadRequest, err.Error())
	}
}

func (h *DraftHandler) patchProduct(w http.ResponseWriter, r *http.Request, draftID string) {
	var body struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Supplier    *string `json:"supplier"`
	}
	if err := readJSON(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	h.mutate(w, draftID, func(d *registration.Draft) error {
		name, desc, sup := d.Name, d.Description, d.Supplier
		if body.Name != nil {
			name = *body.Name
		}
		if body.Description != nil {
			desc = *body.Description
		}
		if body.Supplier != nil {
			sup = *body.Supplier
		}
		d.SetProduct(name, desc, sup)
		return nil
	})
}

func (h *DraftHandler) addRow(w http.ResponseWriter, draftID string) {
	h.mutate(w, draftID, func(d *registration.Draft) error {
		d.AddRow()
		return nil
	})
}

func (h *DraftHandler) removeRow(w http.ResponseWriter, draftID, rowID string) {
	h.mutate(w, draftID, func(d *registration.Draft) error {
		if !d.RemoveRow(rowID) {
			return errors.New("variation row not found")
		}
		return nil
	})
}

func (h *DraftHandler) patchRow(w http.ResponseWriter, r *http.Request, draftID, rowID string) {
	var body struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Barcode     *string  `json:"barcode"`
		SKU         *string  `json:"sku"`
		Stock       *int     `json:"stock"`
		Price       *float64 `json:"price"`

		InPromotion    *bool    `json:"inPromotion"`
		PromoNewPrice  *float64 `json:"promoNewPrice"`
		PromoStartDate *string  `json:"promoStartDate"`
		PromoEndDate   *string  `json:"promoEndDate"`
	}
	if err := readJSON(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	h.mutate(w, draftID, func(d *registration.Draft) error {
		row := d.Row(rowID)
		if row == nil {
			return errors.New("variation row not found")
		}
		if body.Name != nil {
			row.Name = *body.Name
		}
		if body.Description != nil {
			row.Description = *body.Description
		}
		if body.Barcode != nil {
			row.Barcode = *body.Barcode
		}
		if body.SKU != nil {
			row.SKU = *body.SKU
		}
		if body.Stock != nil {
			row.Stock = *body.Stock
		}
		if body.Price != nil {
			row.Price = *body.Price
		}
		// プロモ値はフラグと独立に保持する（OFF でも消さない）
		if body.PromoNewPrice != nil {
			row.PromoNewPrice = body.PromoNewPrice
		}
		if body.PromoStartDate != nil {
			row.PromoStartDate = *body.PromoStartDate
		}
		if body.PromoEndDate != nil {
			row.PromoEndDate = *body.PromoEndDate
		}
		if body.InPromotion != nil {
			d.SetInPromotion(rowID, *body.InPromotion)
		}
		return nil
	})
}

// POST /drafts/{id}/variations/{rowId}/images
//
//	multipart/form-data:
//	  mainImage       ... file（任意、1枚）
//	  secondaryImages ... file（複数可、追記）
func (h *DraftHandler) attachImages(w http.ResponseWriter, r *http.Request, draftID, rowID string) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	// ファイル part はロック外で読み切ってから store に入る
	var mainFile *imgdom.File
	if fhs := r.MultipartForm.File["mainImage"]; len(fhs) > 0 {
		f, err := readFilePart(fhs[0])
		if err != nil {
			writeErr(w, http.StatusBadRequest, "unreadable main image part")
			return
		}
		mainFile = &f
	}
	var secondaries []imgdom.File
	for _, fh := range r.MultipartForm.File["secondaryImages"] {
		f, err := readFilePart(fh)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "unreadable secondary image part")
			return
		}
		secondaries = append(secondaries, f)
	}

	h.mutate(w, draftID, func(d *registration.Draft) error {
		row := d.Row(rowID)
		if row == nil {
			return errors.New("variation row not found")
		}
		if mainFile != nil {
			row.MainFile = mainFile
		}
		row.SecondaryFiles = append(row.SecondaryFiles, secondaries...)
		return nil
	})
}

func (h *DraftHandler) submit(w http.ResponseWriter, r *http.Request, draftID string) {
	d, err := h.submitter.Submit(r.Context(), draftID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, d)
	case errors.Is(err, registration.ErrDraftNotFound):
		writeErr(w, http.StatusNotFound, "draft not found")
	case errors.Is(err, registration.ErrSubmitInFlight):
		writeErr(w, http.StatusConflict, "submission in flight")
	case errors.Is(err, registration.ErrAlreadySubmitted):
		writeErr(w, http.StatusConflict, "draft already submitted")
	case d != nil && len(d.Errors) > 0:
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation_failed",
			"fields": d.Errors,
		})
	default:
		log.Printf("[DraftHandler] submit failed draft=%s: %v", draftID, err)
		writeJSON(w, http.StatusInternalServerError, d)
	}
}
