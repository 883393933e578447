// Package storage wraps the remote object store that holds update
// attachments. Durability and access policy belong to the provider; this
// package only uploads bytes and derives public URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
)

// DefaultBucket is where update attachments live.
const DefaultBucket = "project-updates"

var (
	ErrUploadFailed = errors.New("storage: upload failed")
	ErrNotFound     = errors.New("storage: object not found")
)

// ObjectStorage is the consumed interface of the remote object store.
type ObjectStorage interface {
	Upload(ctx context.Context, bucket, object string, data []byte, contentType string) error
	PublicURL(bucket, object string) string
}

// ObjectName builds a fresh, collision-resistant object name for an
// attachment: owning project id, UTC timestamp and a random component,
// so concurrent managers can never collide.
func ObjectName(projectID string, now time.Time, ext string) string {
	if ext == "" {
		ext = ".bin"
	}
	return path.Join(
		projectID,
		fmt.Sprintf("%s-%s%s", now.UTC().Format("20060102T150405"), uuid.NewString(), ext),
	)
}
