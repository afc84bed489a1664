package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"marketplace_service/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type diskImageStore struct {
	dir       string
	urlPrefix string
	now       func() time.Time
	log       *logrus.Logger
}

// NewDiskImageStore writes uploads under dir and reports them as urlPrefix/<name>.
// The directory is created when missing.
func NewDiskImageStore(dir, urlPrefix string, logger *logrus.Logger) (domain.ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create uploads directory %s: %w", dir, err)
	}
	return &diskImageStore{
		dir:       dir,
		urlPrefix: urlPrefix,
		now:       time.Now,
		log:       logger,
	}, nil
}

func (s *diskImageStore) Store(ctx context.Context, r io.Reader, fieldName, originalFilename string) (string, error) {
	if r == nil {
		return "", domain.ErrImageRequired
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.log.Errorf("Failed to create uploads directory %s: %v", s.dir, err)
		return "", fmt.Errorf("could not create uploads directory: %w", err)
	}

	name := s.uniqueName(fieldName, originalFilename)
	target := filepath.Join(s.dir, name)

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		s.log.Errorf("Failed to create image file %s: %v", target, err)
		return "", fmt.Errorf("could not create image file: %w", err)
	}
	written, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(target)
		s.log.Errorf("Failed to write image file %s: %v", target, err)
		return "", fmt.Errorf("could not write image file: %w", err)
	}

	s.log.Infof("Stored image %s (%d bytes)", name, written)
	return path.Join(s.urlPrefix, name), nil
}

// uniqueName builds <field>-<unix millis>-<random><ext>, the extension taken from the
// client's file name.
func (s *diskImageStore) uniqueName(fieldName, originalFilename string) string {
	if fieldName == "" {
		fieldName = "image"
	}
	ext := filepath.Ext(filepath.Base(originalFilename))
	return fmt.Sprintf("%s-%d-%d%s", fieldName, s.now().UnixMilli(), uuid.New().ID(), ext)
}
