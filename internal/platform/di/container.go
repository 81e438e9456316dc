// internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"log"

	fsproduct "petshow/internal/adapters/out/firestore/product"
	gcso "petshow/internal/adapters/out/gcs"
	"petshow/internal/adapters/out/mail"
	"petshow/internal/adapters/out/rtdb"

	"petshow/internal/application/query/catalog"
	"petshow/internal/application/registration"
	"petshow/internal/application/usecase"

	proddom "petshow/internal/domain/product"
	"petshow/internal/platform/cache"
	shared "petshow/internal/platform/di/shared"
)

// Container is the application DI container.
// Pure DI: build deps only. No routing branching, no reflection tricks.
type Container struct {
	Infra *shared.Infra

	// Outbound
	ProductRepo  proddom.Repository
	ImageGateway *gcso.ProductImageGatewayGCS
	Mailer       *mail.RegistrationMailer

	// Application
	Cache      *cache.Cache
	ProductUC  *usecase.ProductUsecase
	CatalogQ   *catalog.Query
	DraftStore *registration.DraftStore
	Submitter  *registration.Submitter
}

// NewContainer builds the container on top of shared infra.
// PRODUCTS_DB selects the record store: Firestore (default) or the
// Firebase Realtime Database.
func NewContainer(ctx context.Context, inf *shared.Infra) (*Container, error) {
	if inf == nil {
		return nil, errors.New("di: shared infra is nil")
	}

	cont := &Container{Infra: inf}

	// ------------------------------------------------------------
	// Outbound adapters
	// ------------------------------------------------------------
	if inf.Settings.UseRealtimeDB() {
		if inf.RTDB == nil {
			return nil, errors.New("di: PRODUCTS_DB=realtime but RTDB client is nil")
		}
		cont.ProductRepo = &rtdb.ProductRepositoryRTDB{Client: inf.RTDB}
		log.Printf("[di] product records: Firebase Realtime Database")
	} else {
		cont.ProductRepo = &fsproduct.ProductRepositoryFS{Client: inf.Firestore}
		log.Printf("[di] product records: Firestore")
	}

	cont.ImageGateway = &gcso.ProductImageGatewayGCS{
		Client:        inf.GCS,
		Bucket:        inf.ProductImageBucket,
		PublicBaseURL: inf.StoragePublicBaseURL,
	}

	// Mailer is optional: nil when the SendGrid key is unresolved.
	cont.Mailer = mail.NewRegistrationMailerWithSendGrid(inf.SendGridAPIKey)

	// ------------------------------------------------------------
	// Application layer
	// ------------------------------------------------------------
	cont.Cache = cache.New()
	cont.ProductUC = usecase.NewProductUsecase(cont.ProductRepo, cont.ImageGateway, cont.Cache)
	cont.CatalogQ = catalog.NewQuery(cont.ProductUC)
	cont.DraftStore = registration.NewDraftStore()

	var notifier registration.Notifier
	if cont.Mailer != nil {
		notifier = cont.Mailer
	}
	cont.Submitter = registration.NewSubmitter(cont.DraftStore, cont.ImageGateway, cont.ProductUC, notifier)

	return cont, nil
}
