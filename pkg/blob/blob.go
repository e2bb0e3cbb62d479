package blob

import (
	"context"
	"io"
)

// Storage persists generated artifacts (CSV exports, report files) and
// returns a URL the artifact can be fetched from.
type Storage interface {
	// Upload writes the object under key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)

	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
