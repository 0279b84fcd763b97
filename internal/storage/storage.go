// Package storage stores uploaded attachments under opaque paths.
package storage

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ryanuber/go-glob"
)

var (
	ErrContentTypeNotAllowed = errors.New("the content type of the uploaded file is not allowed")
	ErrNotFound              = errors.New("there is no stored file matching this path")
)

// AllowedContentTypes are glob patterns for upload content types.
var AllowedContentTypes = []string{
	"image/*",
	"application/pdf",
}

// ContentTypeAllowed reports whether an upload content type matches the
// allowlist.
func ContentTypeAllowed(contentType string) bool {
	for _, pattern := range AllowedContentTypes {
		if glob.Glob(pattern, contentType) {
			return true
		}
	}

	return false
}

// Service stores blobs by opaque path. Paths are only ever produced by Save,
// callers persist them verbatim.
type Service interface {
	// Save stores the content and returns the opaque path for it.
	Save(content io.Reader, originalName string) (string, error)

	// Open returns a reader for a stored file.
	Open(path string) (io.ReadCloser, error)

	// Delete removes a stored file. Deleting a path that does not exist
	// is not an error.
	Delete(path string) error
}

// LocalService stores files in a directory on the local disk.
type LocalService struct {
	root string
}

// NewLocalService creates the storage directory if needed.
func NewLocalService(root string) (*LocalService, error) {
	err := os.MkdirAll(root, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalService{root: root}, nil
}

// Save stores the content under a name derived from the SHA256 hash of the
// content, keeping the original file extension.
func (s *LocalService) Save(content io.Reader, originalName string) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("%x%s", sha256.Sum256(data), filepath.Ext(originalName))
	err = os.WriteFile(filepath.Join(s.root, path), data, 0o644)
	if err != nil {
		return "", err
	}

	return path, nil
}

func (s *LocalService) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.root, filepath.Base(path)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}

	return f, err
}

func (s *LocalService) Delete(path string) error {
	err := os.Remove(filepath.Join(s.root, filepath.Base(path)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}
