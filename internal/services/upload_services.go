package services

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadStore writes uploaded images to local disk and hands back the
// public URL stored on the entity row. Files are served statically under
// /uploads.
type UploadStore struct {
	baseDir string
}

func NewUploadStore(baseDir string) (*UploadStore, error) {
	if baseDir == "" {
		return nil, errors.New("upload directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}
	return &UploadStore{baseDir: baseDir}, nil
}

// Save stores the content under subdir with a UUID-prefixed filename and
// returns the public URL.
func (u *UploadStore) Save(subdir, originalName string, content io.Reader) (string, error) {
	dir := filepath.Join(u.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	fileName := uuid.NewString() + "_" + filepath.Base(originalName)
	dst, err := os.Create(filepath.Join(dir, fileName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, content); err != nil {
		return "", err
	}
	return "/uploads/" + subdir + "/" + fileName, nil
}

// Delete removes the file behind a public URL previously returned by Save.
// Missing files are not an error.
func (u *UploadStore) Delete(imageURL string) error {
	rel, ok := strings.CutPrefix(imageURL, "/uploads/")
	if !ok {
		return nil
	}
	// reject traversal outside the upload root
	rel = filepath.Clean(rel)
	if strings.HasPrefix(rel, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(u.baseDir, rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the root directory uploads are written to.
func (u *UploadStore) Dir() string {
	return u.baseDir
}
