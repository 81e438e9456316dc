// internal/application/usecase/product_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	proddom "petshow/internal/domain/product"
	imgdom "petshow/internal/domain/productimage"
	"petshow/internal/platform/cache"
)

// ProductUsecase owns catalog reads and destructive writes
// (registration goes through the registration package).
type ProductUsecase struct {
	repo    proddom.Repository
	gateway imgdom.Gateway
	cache   *cache.Cache
}

func NewProductUsecase(repo proddom.Repository, gateway imgdom.Gateway, c *cache.Cache) *ProductUsecase {
	return &ProductUsecase{repo: repo, gateway: gateway, cache: c}
}

// ============================================================
// Reads
// ============================================================

// List returns all products, served from the list cache when warm.
// 空コレクションは空スライス（エラーではない）。
func (uc *ProductUsecase) List(ctx context.Context) ([]proddom.Product, error) {
	if uc == nil || uc.repo == nil {
		return nil, errors.New("product usecase/repo is nil")
	}

	if v, ok := uc.cache.Get(cache.ProductsListKey); ok {
		if list, ok := v.([]proddom.Product); ok {
			return list, nil
		}
	}

	list, err := uc.repo.List(ctx)
	if err != nil {
		log.Printf("[product_uc] List error: %v", err)
		return nil, err
	}
	if list == nil {
		list = []proddom.Product{}
	}

	uc.cache.Set(cache.ProductsListKey, list)
	return list, nil
}

func (uc *ProductUsecase) GetByID(ctx context.Context, id string) (proddom.Product, error) {
	if uc == nil || uc.repo == nil {
		return proddom.Product{}, errors.New("product usecase/repo is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return proddom.Product{}, proddom.ErrInvalidID
	}
	return uc.repo.Get(ctx, id)
}

// ============================================================
// Create (used by the registration submit pipeline)
// ============================================================

// Create persists a fully materialized product (image fields must be
// URLs already) and invalidates the list cache.
func (uc *ProductUsecase) Create(ctx context.Context, p proddom.Product) (string, error) {
	if uc == nil || uc.repo == nil {
		return "", errors.New("product usecase/repo is nil")
	}

	id, err := uc.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[product_uc] Create error: %v", err)
		return "", err
	}

	uc.cache.Invalidate(cache.ProductsListKey)
	log.Printf("[product_uc] created product id=%s name=%q variations=%d", id, p.Name, len(p.Variations))
	return id, nil
}

// ============================================================
// Cascade delete
// ============================================================

// ImageFailure is one image deletion that did not succeed during a
// cascade delete.
type ImageFailure struct {
	URL string `json:"url"`
	Err string `json:"error"`
}

// DeleteResult reports the outcome of a cascade delete. It
// distinguishes "record deleted, N images failed" from "record not
// deleted".
type DeleteResult struct {
	RecordDeleted bool           `json:"recordDeleted"`
	DeletedImages int            `json:"deletedImages"`
	FailedImages  []ImageFailure `json:"failedImages,omitempty"`
}

// PartialFailure reports whether the record is gone but image objects
// were left behind.
func (r DeleteResult) PartialFailure() bool {
	return r.RecordDeleted && len(r.FailedImages) > 0
}

// Delete removes a product with cascading image deletion.
//
// 方針: 画像削除は全件試行する。存在しないオブジェクトは許容し、
// それ以外の失敗は収集する。画像の結果に関わらずレコードは削除し、
// 部分失敗は結果に載せて呼び出し側へ報告する。
func (uc *ProductUsecase) Delete(ctx context.Context, id string) (DeleteResult, error) {
	if uc == nil || uc.repo == nil || uc.gateway == nil {
		return DeleteResult{}, errors.New("product usecase/repo/gateway is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return DeleteResult{}, proddom.ErrInvalidID
	}

	p, err := uc.repo.Get(ctx, id)
	if err != nil {
		log.Printf("[product_uc] Delete: fetch before cascade failed id=%s err=%v", id, err)
		return DeleteResult{}, err
	}

	var res DeleteResult
	for _, u := range p.ImageURLs() {
		if err := uc.gateway.Remove(ctx, u); err != nil {
			if imgdom.IsNotFound(err) {
				// already gone: fine for a cascading delete
				res.DeletedImages++
				continue
			}
			log.Printf("[product_uc] Delete: image delete failed id=%s url=%s err=%v", id, u, err)
			res.FailedImages = append(res.FailedImages, ImageFailure{URL: u, Err: err.Error()})
			continue
		}
		res.DeletedImages++
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		log.Printf("[product_uc] Delete: record delete failed id=%s err=%v", id, err)
		return res, err
	}
	res.RecordDeleted = true

	uc.cache.Invalidate(cache.ProductsListKey)

	if res.PartialFailure() {
		log.Printf("[product_uc] deleted product id=%s with %d orphaned image(s)", id, len(res.FailedImages))
		return res, fmt.Errorf("%w: record deleted, %d image(s) failed", proddom.ErrDelete, len(res.FailedImages))
	}

	log.Printf("[product_uc] deleted product id=%s images=%d", id, res.DeletedImages)
	return res, nil
}
