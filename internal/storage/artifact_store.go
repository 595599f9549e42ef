package storage

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrInvalidArtifactName is returned for names that would escape the store
var ErrInvalidArtifactName = errors.New("invalid artifact name")

// ArtifactStore persists rendered sheet images. The image format follows the
// name's extension. Writing an existing name replaces it.
type ArtifactStore interface {
	SaveImage(ctx context.Context, name string, img image.Image) (string, error)
}

type localArtifactStore struct {
	dir string
}

// NewLocalArtifactStore creates a store that writes into dir, creating it if needed
func NewLocalArtifactStore(dir string) (ArtifactStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("output directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &localArtifactStore{dir: dir}, nil
}

// SaveImage encodes img to dir/name and returns that path
func (s *localArtifactStore) SaveImage(ctx context.Context, name string, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := checkArtifactName(name); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, name)
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

func checkArtifactName(name string) error {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidArtifactName, name)
	}
	return nil
}
