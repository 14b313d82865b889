package api

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileUpload is an Upload backed by an open file. Close it after the
// request has been sent.
type FileUpload struct {
	Upload Upload
	file   *os.File
}

// OpenUpload opens path for streaming as a multipart file part
func OpenUpload(path string) (*FileUpload, error) {
	f, err := os.Open(path) // #nosec G304 - callers validate paths via the upload form
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	return &FileUpload{
		Upload: Upload{Name: filepath.Base(path), Content: f},
		file:   f,
	}, nil
}

func (u *FileUpload) Close() error {
	return u.file.Close()
}

// OpenUploads opens every path, closing already-open files on failure
func OpenUploads(paths []string) ([]*FileUpload, error) {
	uploads := make([]*FileUpload, 0, len(paths))
	for _, path := range paths {
		upload, err := OpenUpload(path)
		if err != nil {
			for _, open := range uploads {
				_ = open.Close()
			}
			return nil, err
		}
		uploads = append(uploads, upload)
	}
	return uploads, nil
}

// CloseUploads closes a batch, keeping the first error
func CloseUploads(uploads []*FileUpload) error {
	var first error
	for _, upload := range uploads {
		if err := upload.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
