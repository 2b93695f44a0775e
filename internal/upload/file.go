// Package upload sends QA report files to remote storage providers.
package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// UploadFile streams a local report file to the provider under remotePath.
func UploadFile(ctx context.Context, p Provider, localPath, remotePath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open report %s: %w", localPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat report %s: %w", localPath, err)
	}

	return p.Upload(ctx, f, info.Size(), contentTypeFor(localPath), remotePath)
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return "application/xml"
	case ".json":
		return "application/json"
	case ".html":
		return "text/html"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
