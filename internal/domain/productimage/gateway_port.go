// internal/domain/productimage/gateway_port.go
package productimage

import "context"

// Gateway is the outbound port wrapping the external object storage.
//
// Upload stores file under folder and returns the durable retrieval
// URL; it does not retry — retries, if desired, belong to the calling
// workflow. Remove deletes the object addressed by a previously
// returned URL; callers decide whether ErrNotFound is tolerable (e.g.
// during best-effort cascading delete) or fatal. ResolveURL resolves
// the retrieval URL of an already-uploaded object.
type Gateway interface {
	Upload(ctx context.Context, file File, folder string) (string, error)
	Remove(ctx context.Context, url string) error
	ResolveURL(ctx context.Context, folder, fileName string) (string, error)
}
