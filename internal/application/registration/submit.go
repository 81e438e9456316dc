// internal/application/registration/submit.go
// Responsibility: ドラフト送信パイプライン（validate → upload → persist）を駆動する。
package registration

import (
	"context"
	"errors"
	"fmt"
	"log"

	proddom "petshow/internal/domain/product"
	imgdom "petshow/internal/domain/productimage"
)

var (
	ErrSubmitInFlight   = errors.New("registration: submit already in flight")
	ErrAlreadySubmitted = errors.New("registration: draft already submitted")
)

// MsgMainImageRequired is reported per variation row when no main
// image file has been attached.
const MsgMainImageRequired = "Main image is required"

// Creator persists the finished product. Satisfied by
// usecase.ProductUsecase.
type Creator interface {
	Create(ctx context.Context, p proddom.Product) (string, error)
}

// Notifier is an optional post-registration hook (e.g. the SendGrid
// mailer). A nil Notifier disables notification.
type Notifier interface {
	SendProductRegistered(ctx context.Context, p proddom.Product) error
}

// Submitter runs the registration pipeline:
//
//	Editing → Validating → Uploading → Submitting → Succeeded
//	                └──────────┴───────────┴──────→ Failed
//
// Uploads run sequentially (row order, main image before secondaries)
// and the pipeline aborts on the first upload failure. Already-uploaded
// objects are NOT rolled back; the draft stays re-submittable and the
// product record is never created from a partial upload.
type Submitter struct {
	store    *DraftStore
	gateway  imgdom.Gateway
	products Creator
	notifier Notifier
}

func NewSubmitter(store *DraftStore, gateway imgdom.Gateway, products Creator, notifier Notifier) *Submitter {
	return &Submitter{store: store, gateway: gateway, products: products, notifier: notifier}
}

// Submit drives the draft through the pipeline and returns a snapshot
// of its final state. Any phase failure leaves the draft in Failed
// with the phase recorded; validation failures additionally carry the
// field errors. A Failed draft stays editable and re-submittable.
func (s *Submitter) Submit(ctx context.Context, draftID string) (*Draft, error) {
	if s == nil || s.gateway == nil || s.products == nil {
		return nil, errors.New("registration submitter is not wired")
	}

	// ---- claim the draft -------------------------------------------------
	// The pipeline works on a private snapshot taken under the store
	// lock; the stored draft is only touched again through settle, so
	// concurrent GETs never observe it mid-write.
	var d *Draft
	err := s.store.Update(draftID, func(cur *Draft) error {
		if cur.State.InFlight() {
			return ErrSubmitInFlight
		}
		if cur.State == StateSucceeded {
			return ErrAlreadySubmitted
		}
		cur.State = StateValidating
		cur.Errors = nil
		cur.FailedAt = ""
		d = cur.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	// ---- validate --------------------------------------------------------
	candidate, fe := proddom.Validate(d.toProduct())
	for i, r := range d.Rows {
		if r.MainFile == nil || !r.MainFile.Valid() {
			fe[fmt.Sprintf("variations[%d].mainImage", i)] = MsgMainImageRequired
		}
	}
	if len(fe) > 0 {
		d.State = StateFailed
		d.FailedAt = "validating"
		d.Errors = fe
		s.settle(d)
		return d, proddom.WrapInvalid(fe, "registration rejected")
	}

	// ---- upload ----------------------------------------------------------
	d.State = StateUploading
	s.settle(d)

	for i := range d.Rows {
		r := &d.Rows[i]

		mainURL, err := s.gateway.Upload(ctx, *r.MainFile, imgdom.MainImageFolder)
		if err != nil {
			return s.fail(d, "uploading", fmt.Errorf("row %d main image: %w", i, err))
		}
		candidate.Variations[i].MainImage = mainURL

		for j, f := range r.SecondaryFiles {
			u, err := s.gateway.Upload(ctx, f, imgdom.SecondaryImageFolder)
			if err != nil {
				return s.fail(d, "uploading", fmt.Errorf("row %d secondary image %d: %w", i, j, err))
			}
			candidate.Variations[i].SecondaryImages = append(candidate.Variations[i].SecondaryImages, u)
		}
	}

	// ---- persist ---------------------------------------------------------
	d.State = StateSubmitting
	s.settle(d)

	id, err := s.products.Create(ctx, candidate)
	if err != nil {
		return s.fail(d, "submitting", err)
	}
	candidate.ID = id

	d.State = StateSucceeded
	d.ProductID = id
	s.settle(d)

	if s.notifier != nil {
		// best effort: registration already succeeded
		if err := s.notifier.SendProductRegistered(ctx, candidate); err != nil {
			log.Printf("[registration] notify failed product=%s err=%v", id, err)
		}
	}

	return d, nil
}

// settle mirrors the pipeline outcome fields of the private snapshot d
// onto the stored draft, under the store lock.
func (s *Submitter) settle(d *Draft) {
	_ = s.store.Update(d.ID, func(cur *Draft) error {
		cur.State = d.State
		cur.ProductID = d.ProductID
		cur.Errors = d.Errors
		cur.FailedAt = d.FailedAt
		return nil
	})
}

func (s *Submitter) fail(d *Draft, phase string, err error) (*Draft, error) {
	log.Printf("[registration] submit failed draft=%s phase=%s err=%v", d.ID, phase, err)
	d.State = StateFailed
	d.FailedAt = phase
	s.settle(d)
	return d, err
}
