// Package storage keeps uploaded news thumbnails in a public blob area.
// Records only ever hold the relative path returned by Save.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kvnochieng52/flight-distance/config"
)

// NewsThumbnails is the namespace news thumbnails are stored under.
const NewsThumbnails = "news_thumbnails"

var (
	ErrFileTooLarge      = errors.New("file too large")
	ErrUnsupportedType   = errors.New("unsupported file type")
	ErrIllegalFileName   = errors.New("illegal file name")
	ErrObjectPathInvalid = errors.New("object path outside storage namespace")
)

var (
	imageExtensions = []string{".jpeg", ".jpg", ".png", ".gif"}
	imageMIMETypes  = []string{"image/jpeg", "image/png", "image/gif"}
)

// Store saves and deletes public blobs.
type Store interface {
	// Save writes file under namespace and returns its relative path.
	Save(ctx context.Context, namespace string, file *multipart.FileHeader) (string, error)
	// Delete removes the blob at the relative path. Missing blobs are not an error.
	Delete(ctx context.Context, relPath string) error
	// URL returns the public URL for a relative path.
	URL(relPath string) string
}

// New builds the Store selected by storage.driver.
func New(cfg *config.StorageConfig, logger *zap.Logger) (Store, error) {
	local := NewLocalStore(cfg.LocalPath, cfg.PublicURL)
	switch cfg.Driver {
	case "", "local":
		return local, nil
	case "oss":
		return NewOSSStore(cfg, logger), nil
	case "cos":
		return NewCOSStore(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// ValidateImage checks a thumbnail upload: jpeg/png/gif by extension and by content,
// at most maxSize bytes.
func ValidateImage(file *multipart.FileHeader, maxSize int64) error {
	if strings.ContainsAny(file.Filename, `/\`) {
		return ErrIllegalFileName
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !slices.Contains(imageExtensions, ext) {
		return ErrUnsupportedType
	}
	if maxSize > 0 && file.Size > maxSize {
		return ErrFileTooLarge
	}

	f, err := file.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return err
	}
	if !slices.Contains(imageMIMETypes, mt.String()) {
		return ErrUnsupportedType
	}
	return nil
}

// objectName generates a collision-free relative path for file under namespace.
func objectName(namespace string, file *multipart.FileHeader) string {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	return path.Join(namespace, uuid.NewString()+ext)
}

// cleanRelPath rejects paths escaping the storage root.
func cleanRelPath(relPath string) (string, error) {
	p := path.Clean("/" + strings.ReplaceAll(relPath, `\`, "/"))
	p = strings.TrimPrefix(p, "/")
	if p == "" || p == "." {
		return "", ErrObjectPathInvalid
	}
	return p, nil
}

func joinURL(base, relPath string) string {
	if base == "" {
		return relPath
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(relPath, "/")
}

func copyUpload(dst io.Writer, file *multipart.FileHeader) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()
	_, err = io.Copy(dst, src)
	return err
}
