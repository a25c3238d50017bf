package storage

import (
	"context"
	"errors"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
)

const (
	defaultDirPermissions  = 0o755
	defaultFilePermissions = 0o644
)

// LocalStore keeps blobs on the local filesystem under root.
type LocalStore struct {
	root      string
	publicURL string
}

// NewLocalStore creates a LocalStore. publicURL is the URL root serves at.
func NewLocalStore(root, publicURL string) *LocalStore {
	return &LocalStore{root: root, publicURL: publicURL}
}

// Root is the directory blobs are written to.
func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) Save(_ context.Context, namespace string, file *multipart.FileHeader) (string, error) {
	rel := objectName(namespace, file)
	dst := filepath.Join(s.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(dst), defaultDirPermissions); err != nil {
		return "", err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, defaultFilePermissions)
	if err != nil {
		return "", err
	}
	if err := copyUpload(out, file); err != nil {
		out.Close()
		os.Remove(dst)
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return rel, nil
}

func (s *LocalStore) Delete(_ context.Context, relPath string) error {
	rel, err := cleanRelPath(relPath)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStore) URL(relPath string) string {
	return joinURL(s.publicURL, relPath)
}
