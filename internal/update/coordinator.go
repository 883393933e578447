package update

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"blushhush.app/internal/attach"
	"blushhush.app/internal/obs"
	"blushhush.app/internal/storage"
)

// Coordinator uploads staged assets to object storage, one at a time, in
// stager order. Sequential upload keeps the reference ordering
// deterministic; on the first failure it aborts and leaves earlier
// objects in place (counted as orphans, never cleaned up here).
type Coordinator struct {
	store   storage.ObjectStorage
	reader  attach.Reader
	bucket  string
	limiter *rate.Limiter
	now     func() time.Time
}

// CoordinatorOption configures Coordinator behavior.
type CoordinatorOption func(*Coordinator)

// WithBucket overrides the destination bucket.
func WithBucket(bucket string) CoordinatorOption {
	return func(c *Coordinator) {
		if bucket != "" {
			c.bucket = bucket
		}
	}
}

// WithUploadRate paces uploads at n per second; mobile uplinks choke
// when attachments are fired back-to-back.
func WithUploadRate(n int) CoordinatorOption {
	return func(c *Coordinator) {
		if n > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(n), 1)
		}
	}
}

// WithUploadClock overrides the time source used in object names.
func WithUploadClock(fn func() time.Time) CoordinatorOption {
	return func(c *Coordinator) {
		if fn != nil {
			c.now = fn
		}
	}
}

// NewCoordinator constructs an upload coordinator.
func NewCoordinator(store storage.ObjectStorage, reader attach.Reader, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		store:   store,
		reader:  reader,
		bucket:  storage.DefaultBucket,
		limiter: rate.NewLimiter(rate.Inf, 1),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UploadAll uploads every asset and returns durable references in input
// order. On the Nth asset failing it returns an error immediately;
// assets 1..N-1 stay in storage.
func (c *Coordinator) UploadAll(ctx context.Context, projectID string, assets []attach.Asset) ([]string, error) {
	refs := make([]string, 0, len(assets))
	for i, asset := range assets {
		if err := c.limiter.Wait(ctx); err != nil {
			c.abort(len(refs))
			return nil, fmt.Errorf("upload %d/%d: %w", i+1, len(assets), err)
		}

		data, err := c.reader.ReadAsset(ctx, asset.URI)
		if err != nil {
			c.abort(len(refs))
			return nil, fmt.Errorf("read asset %d/%d (%s): %w", i+1, len(assets), asset.Name, err)
		}

		object := storage.ObjectName(projectID, c.now(), objectExt(asset))
		if err := c.store.Upload(ctx, c.bucket, object, data, asset.ContentType); err != nil {
			c.abort(len(refs))
			return nil, fmt.Errorf("upload asset %d/%d (%s): %w", i+1, len(assets), asset.Name, err)
		}

		obs.UploadedBytes(len(data))
		refs = append(refs, c.store.PublicURL(c.bucket, object))
	}
	return refs, nil
}

func (c *Coordinator) abort(uploaded int) {
	if uploaded > 0 {
		obs.UploadOrphans(uploaded)
	}
}

func objectExt(asset attach.Asset) string {
	if ext := filepath.Ext(asset.Name); ext != "" {
		return ext
	}
	if ext := filepath.Ext(asset.URI); ext != "" {
		return ext
	}
	return ".bin"
}
