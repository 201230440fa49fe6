package driven

import (
	"context"
	"io"
)

// BlobStore is the remote binary storage used for profile avatars.
// Unlike the document operations, these helpers fail by returning the
// error directly with no result wrapper.
type BlobStore interface {
	// Upload writes the blob at owners/{ownerID}/{path} and returns its
	// public download URL.
	Upload(ctx context.Context, ownerID, path string, r io.Reader) (string, error)

	// DeleteByURL removes the blob behind a download URL.
	// A missing object is ignored.
	DeleteByURL(ctx context.Context, url string) error
}
