// internal/application/usecase/product_usecase_test.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	proddom "petshow/internal/domain/product"
	imgdom "petshow/internal/domain/productimage"
	"petshow/internal/platform/cache"
)

// ------------------------------------------------------------
// fakes
// ------------------------------------------------------------

type fakeRepo struct {
	products   map[string]proddom.Product
	listCalls  int
	getCalls   int
	deleted    []string
	failDelete error
}

func newFakeRepo(ps ...proddom.Product) *fakeRepo {
	r := &fakeRepo{products: map[string]proddom.Product{}}
	for _, p := range ps {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeRepo) List(ctx context.Context) ([]proddom.Product, error) {
	r.listCalls++
	out := []proddom.Product{}
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeRepo) Get(ctx context.Context, id string) (proddom.Product, error) {
	r.getCalls++
	p, ok := r.products[id]
	if !ok {
		return proddom.Product{}, proddom.ErrNotFound
	}
	return p, nil
}

func (r *fakeRepo) Create(ctx context.Context, p proddom.Product) (string, error) {
	id := fmt.Sprintf("id-%d", len(r.products)+1)
	p.ID = id
	r.products[id] = p
	return id, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if r.failDelete != nil {
		return r.failDelete
	}
	if _, ok := r.products[id]; !ok {
		return proddom.ErrNotFound
	}
	delete(r.products, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeGateway struct {
	removed []string
	failOn  map[string]error
}

func (g *fakeGateway) Upload(ctx context.Context, f imgdom.File, folder string) (string, error) {
	return "https://cdn/" + folder + "/" + f.FileName, nil
}

func (g *fakeGateway) Remove(ctx context.Context, url string) error {
	if err, ok := g.failOn[url]; ok {
		return err
	}
	g.removed = append(g.removed, url)
	return nil
}

func (g *fakeGateway) ResolveURL(ctx context.Context, folder, fileName string) (string, error) {
	return "https://cdn/" + folder + "/" + fileName, nil
}

func productWithImages(id string) proddom.Product {
	return proddom.Product{
		ID:   id,
		Name: "Racao",
		Variations: []proddom.Variation{
			{
				Name:            "1kg",
				MainImage:       "https://cdn/main-images/a.png",
				SecondaryImages: []string{"https://cdn/secondary-images/b.png", "https://cdn/secondary-images/c.png"},
			},
		},
	}
}

// ------------------------------------------------------------
// List / cache
// ------------------------------------------------------------

func TestListUsesCache(t *testing.T) {
	repo := newFakeRepo(productWithImages("p1"))
	uc := NewProductUsecase(repo, &fakeGateway{}, cache.New())

	if _, err := uc.List(context.Background()); err != nil {
		t.Fatalf("first list: %v", err)
	}
	if _, err := uc.List(context.Background()); err != nil {
		t.Fatalf("second list: %v", err)
	}
	if repo.listCalls != 1 {
		t.Fatalf("repo hit %d times, want 1 (second read from cache)", repo.listCalls)
	}
}

func TestCreateInvalidatesListCache(t *testing.T) {
	repo := newFakeRepo()
	uc := NewProductUsecase(repo, &fakeGateway{}, cache.New())
	ctx := context.Background()

	if _, err := uc.List(ctx); err != nil {
		t.Fatalf("warm list: %v", err)
	}

	if _, err := uc.Create(ctx, proddom.Product{Name: "New", Supplier: "S", Variations: []proddom.Variation{{Name: "v"}}}); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list after create: %v", err)
	}
	if repo.listCalls != 2 {
		t.Fatalf("repo hit %d times, want 2 (cache invalidated by create)", repo.listCalls)
	}
	if len(list) != 1 {
		t.Fatalf("list has %d products, want 1", len(list))
	}
}

// ------------------------------------------------------------
// Cascade delete
// ------------------------------------------------------------

func TestDeleteCascadesAllImages(t *testing.T) {
	repo := newFakeRepo(productWithImages("p1"))
	gw := &fakeGateway{}
	uc := NewProductUsecase(repo, gw, cache.New())

	res, err := uc.Delete(context.Background(), "p1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !res.RecordDeleted {
		t.Fatal("record must be deleted")
	}
	if res.DeletedImages != 3 || len(gw.removed) != 3 {
		t.Fatalf("deleted %d images (gateway saw %d), want 3", res.DeletedImages, len(gw.removed))
	}
	// main が先、secondary は宣言順
	want := []string{
		"https://cdn/main-images/a.png",
		"https://cdn/secondary-images/b.png",
		"https://cdn/secondary-images/c.png",
	}
	for i := range want {
		if gw.removed[i] != want[i] {
			t.Fatalf("removed[%d] = %q, want %q", i, gw.removed[i], want[i])
		}
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "p1" {
		t.Fatalf("record delete calls: %v", repo.deleted)
	}
}

func TestDeleteProceedsPastImageFailure(t *testing.T) {
	repo := newFakeRepo(productWithImages("p1"))
	gw := &fakeGateway{failOn: map[string]error{
		"https://cdn/secondary-images/b.png": imgdom.WrapDelete(errors.New("boom")),
	}}
	uc := NewProductUsecase(repo, gw, cache.New())

	res, err := uc.Delete(context.Background(), "p1")
	if err == nil {
		t.Fatal("partial failure must surface an error")
	}
	if !res.RecordDeleted {
		t.Fatal("record must still be deleted despite image failure")
	}
	if !res.PartialFailure() {
		t.Fatal("result must report partial failure")
	}
	if res.DeletedImages != 2 {
		t.Fatalf("deleted %d images, want 2 (one failed)", res.DeletedImages)
	}
	if len(res.FailedImages) != 1 || res.FailedImages[0].URL != "https://cdn/secondary-images/b.png" {
		t.Fatalf("failed images: %+v", res.FailedImages)
	}
	// 後続の画像（c.png）も試行されていること
	if gw.removed[len(gw.removed)-1] != "https://cdn/secondary-images/c.png" {
		t.Fatalf("later images must still be attempted: %v", gw.removed)
	}
}

func TestDeleteToleratesMissingImage(t *testing.T) {
	repo := newFakeRepo(productWithImages("p1"))
	gw := &fakeGateway{failOn: map[string]error{
		"https://cdn/main-images/a.png": imgdom.ErrNotFound,
	}}
	uc := NewProductUsecase(repo, gw, cache.New())

	res, err := uc.Delete(context.Background(), "p1")
	if err != nil {
		t.Fatalf("missing object must not fail the cascade: %v", err)
	}
	if res.DeletedImages != 3 || len(res.FailedImages) != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestDeleteUnknownProduct(t *testing.T) {
	uc := NewProductUsecase(newFakeRepo(), &fakeGateway{}, cache.New())
	if _, err := uc.Delete(context.Background(), "nope"); !proddom.IsNotFound(err) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteKeepsResultWhenRecordDeleteFails(t *testing.T) {
	repo := newFakeRepo(productWithImages("p1"))
	repo.failDelete = proddom.WrapDelete(errors.New("backend down"))
	uc := NewProductUsecase(repo, &fakeGateway{}, cache.New())

	res, err := uc.Delete(context.Background(), "p1")
	if err == nil {
		t.Fatal("expected error")
	}
	if res.RecordDeleted {
		t.Fatal("record was not deleted")
	}
	if res.DeletedImages != 3 {
		t.Fatalf("image deletions before record failure = %d, want 3", res.DeletedImages)
	}
}

func TestDeleteInvalidatesListCache(t *testing.T) {
	repo := newFakeRepo(productWithImages("p1"))
	uc := NewProductUsecase(repo, &fakeGateway{}, cache.New())
	ctx := context.Background()

	if _, err := uc.List(ctx); err != nil {
		t.Fatalf("warm list: %v", err)
	}
	if _, err := uc.Delete(ctx, "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if repo.listCalls != 2 {
		t.Fatalf("repo hit %d times, want 2", repo.listCalls)
	}
	if len(list) != 0 {
		t.Fatalf("list must be empty after delete, got %d", len(list))
	}
}
