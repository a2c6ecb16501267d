// Package storage saves uploaded files either on local disk or in S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/config"
	"github.com/google/uuid"
)

var ErrUnsupportedType = errors.New("only jpg, jpeg, png, gif and webp images are accepted")

var allowedExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Stored describes a saved object.
type Stored struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

type Storage interface {
	Save(ctx context.Context, fh *multipart.FileHeader) (*Stored, error)
}

// New picks S3 when a bucket is configured and the local directory otherwise.
func New(ctx context.Context, cfg *config.Config) (Storage, error) {
	if cfg.S3Bucket != "" {
		return NewS3(ctx, cfg)
	}
	return NewLocal(cfg.UploadDir, cfg.PublicBaseURL)
}

// objectName returns a collision-free name that keeps the original extension.
func objectName(original string) (name, contentType string, err error) {
	ext := strings.ToLower(filepath.Ext(original))
	contentType, ok := allowedExt[ext]
	if !ok {
		return "", "", ErrUnsupportedType
	}
	return fmt.Sprintf("%s%s", uuid.NewString(), ext), contentType, nil
}
