// internal/adapters/in/http/handlers/draft_handler_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"petshow/internal/application/registration"
)

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, registration.Draft) {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	var d registration.Draft
	_ = json.Unmarshal(rec.Body.Bytes(), &d)
	return rec, d
}

func attachImage(t *testing.T, h http.Handler, draftID, rowID, field, name string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, name)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write([]byte("png-bytes"))
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/drafts/"+draftID+"/variations/"+rowID+"/images", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestDraftLifecycle(t *testing.T) {
	env := newTestEnv()

	// create
	rec, d := doJSON(t, env.drafts, http.MethodPost, "/drafts", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	if d.State != registration.StateEditing || len(d.Rows) != 1 {
		t.Fatalf("fresh draft: %+v", d)
	}
	draftID := d.ID
	rowID := d.Rows[0].RowID

	// product fields
	rec, d = doJSON(t, env.drafts, http.MethodPatch, "/drafts/"+draftID,
		`{"name":"Racao Premium","supplier":"PetFood Ltda"}`)
	if rec.Code != http.StatusOK || d.Name != "Racao Premium" {
		t.Fatalf("patch product: %d %+v", rec.Code, d)
	}

	// variation fields
	rec, d = doJSON(t, env.drafts, http.MethodPatch, "/drafts/"+draftID+"/variations/"+rowID,
		`{"name":"1kg","stock":5,"price":59.9}`)
	if rec.Code != http.StatusOK || d.Rows[0].Name != "1kg" {
		t.Fatalf("patch row: %d %+v", rec.Code, d)
	}

	// add + remove a second row
	rec, d = doJSON(t, env.drafts, http.MethodPost, "/drafts/"+draftID+"/variations", "")
	if rec.Code != http.StatusOK || len(d.Rows) != 2 {
		t.Fatalf("add row: %d %+v", rec.Code, d)
	}
	secondRowID := d.Rows[1].RowID
	rec, d = doJSON(t, env.drafts, http.MethodDelete, "/drafts/"+draftID+"/variations/"+secondRowID, "")
	if rec.Code != http.StatusOK || len(d.Rows) != 1 {
		t.Fatalf("remove row: %d %+v", rec.Code, d)
	}

	// images
	if rec := attachImage(t, env.drafts, draftID, rowID, "mainImage", "main.png"); rec.Code != http.StatusOK {
		t.Fatalf("attach main: %d %s", rec.Code, rec.Body)
	}
	if rec := attachImage(t, env.drafts, draftID, rowID, "secondaryImages", "side.png"); rec.Code != http.StatusOK {
		t.Fatalf("attach secondary: %d %s", rec.Code, rec.Body)
	}

	// submit
	rec, d = doJSON(t, env.drafts, http.MethodPost, "/drafts/"+draftID+"/submit", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: %d %s", rec.Code, rec.Body)
	}
	if d.State != registration.StateSucceeded || d.ProductID == "" {
		t.Fatalf("after submit: %+v", d)
	}
	if len(env.repo.products) != 1 {
		t.Fatalf("products = %v", env.repo.products)
	}

	// mutations after success are rejected
	rec, _ = doJSON(t, env.drafts, http.MethodPatch, "/drafts/"+draftID, `{"name":"x"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("mutation after success: %d", rec.Code)
	}
	rec, _ = doJSON(t, env.drafts, http.MethodPost, "/drafts/"+draftID+"/submit", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("resubmit after success: %d", rec.Code)
	}
}

func TestDraftSubmitValidationFailure(t *testing.T) {
	env := newTestEnv()

	_, d := doJSON(t, env.drafts, http.MethodPost, "/drafts", "")
	rowID := d.Rows[0].RowID

	// name/supplier/main image が欠けたまま submit
	_, _ = doJSON(t, env.drafts, http.MethodPatch, "/drafts/"+d.ID+"/variations/"+rowID, `{"name":"1kg"}`)
	rec, _ := doJSON(t, env.drafts, http.MethodPost, "/drafts/"+d.ID+"/submit", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Fields) == 0 {
		t.Fatalf("missing field errors: %s", rec.Body)
	}

	rec, got := doJSON(t, env.drafts, http.MethodGet, "/drafts/"+d.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get after failed submit: %d", rec.Code)
	}
	if got.State != registration.StateFailed || got.FailedAt != "validating" {
		t.Fatalf("draft after invalid submit: %+v", got)
	}

	// 失敗した draft は編集再開できる
	rec, got = doJSON(t, env.drafts, http.MethodPatch, "/drafts/"+d.ID, `{"name":"Racao","supplier":"Pet"}`)
	if rec.Code != http.StatusOK || got.State != registration.StateEditing {
		t.Fatalf("resume editing: %d %+v", rec.Code, got)
	}
}

func TestDraftMutationsWhileInFlight(t *testing.T) {
	env := newTestEnv()

	_, d := doJSON(t, env.drafts, http.MethodPost, "/drafts", "")
	_ = env.store.Update(d.ID, func(cur *registration.Draft) error {
		cur.State = registration.StateUploading
		return nil
	})

	rec, _ := doJSON(t, env.drafts, http.MethodPatch, "/drafts/"+d.ID, `{"name":"x"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestDraftNotFound(t *testing.T) {
	env := newTestEnv()
	rec, _ := doJSON(t, env.drafts, http.MethodGet, "/drafts/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAttachImagesUnknownRow(t *testing.T) {
	env := newTestEnv()

	_, d := doJSON(t, env.drafts, http.MethodPost, "/drafts", "")
	draftID := d.ID
	rowID := d.Rows[0].RowID

	if rec := attachImage(t, env.drafts, draftID, "no-such-row", "mainImage", "main.png"); rec.Code != http.StatusBadRequest {
		t.Fatalf("attach to unknown row status = %d", rec.Code)
	}

	// the failed attach leaves the draft editable; the real row still accepts files
	rec, d := doJSON(t, env.drafts, http.MethodGet, "/drafts/"+draftID, "")
	if rec.Code != http.StatusOK || d.State != registration.StateEditing {
		t.Fatalf("draft after failed attach: %d %+v", rec.Code, d)
	}
	if rec := attachImage(t, env.drafts, draftID, rowID, "mainImage", "main.png"); rec.Code != http.StatusOK {
		t.Fatalf("attach status = %d", rec.Code)
	}
}
