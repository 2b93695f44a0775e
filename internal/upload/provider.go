package upload

import (
	"context"
	"io"
)

// Provider is implemented by storage backends that receive QA report files.
type Provider interface {
	// Upload streams size bytes from reader to the remote path. A negative
	// size means the length is unknown and the provider must stream.
	Upload(ctx context.Context, reader io.Reader, size int64, contentType, remotePath string) error

	// Configure sets up the provider with the given configuration
	Configure(config map[string]any) error

	// Name returns the provider name
	Name() string
}
