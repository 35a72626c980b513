package services

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageService stores review images on local disk under uploads/ and
// returns stable relative references ("reviews/<uuid>.jpg") for the DB.
type ImageService struct {
	BaseDir string
}

func NewImageService(baseDir string) *ImageService {
	if baseDir == "" {
		baseDir = "uploads"
	}
	return &ImageService{BaseDir: baseDir}
}

// SaveBase64 decodes a (possibly data-URL prefixed) base64 image and
// writes it under BaseDir/subdir.
func (s *ImageService) SaveBase64(b64 string, subdir string) (string, error) {
	if idx := strings.Index(b64, "base64,"); idx >= 0 {
		b64 = b64[idx+7:]
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	dir := filepath.Join(s.BaseDir, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}

	filename := uuid.NewString() + ".jpg"
	fullpath := filepath.Join(dir, filename)

	if err := os.WriteFile(fullpath, data, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return filepath.ToSlash(filepath.Join(subdir, filename)), nil
}

// Delete removes a previously stored reference. A missing file is not an
// error; the reference may already be gone.
func (s *ImageService) Delete(ref string) error {
	ref = filepath.Clean(ref)
	if ref == "." || strings.HasPrefix(ref, "..") || filepath.IsAbs(ref) {
		return fmt.Errorf("invalid image reference: %q", ref)
	}
	err := os.Remove(filepath.Join(s.BaseDir, ref))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
