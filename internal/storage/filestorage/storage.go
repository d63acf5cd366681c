package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrNotDataURI = errors.New("not a base64 data URI")

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// LocalFileStorage keeps generated hero images on local disk and serves them
// under baseURL.
type LocalFileStorage struct {
	baseDir string // e.g. "./uploads"
	baseURL string // e.g. "http://localhost:8080/uploads"
}

func NewLocalFileStorage(baseDir, baseURL string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save writes r to subPath/name and returns the relative path and size.
func (s *LocalFileStorage) Save(ctx context.Context, r io.Reader, subPath, name string) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	rel := filepath.Join(subPath, filepath.Base(name))
	filePath := filepath.Join(s.baseDir, rel)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create directories: %w", err)
	}

	dst, err := os.Create(filePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	done := make(chan struct{})
	var size int64
	var copyErr error

	go func() {
		size, copyErr = io.Copy(dst, r)
		close(done)
	}()

	select {
	case <-done:
		if copyErr != nil {
			_ = os.Remove(filePath)
			return "", 0, fmt.Errorf("failed to copy file: %w", copyErr)
		}
	case <-ctx.Done():
		<-done
		_ = os.Remove(filePath)
		return "", 0, ctx.Err()
	}

	return rel, size, nil
}

// SaveDataURI decodes a "data:<mime>;base64,..." image and stores it as
// subPath/<name><ext>. It returns the public URL of the stored file.
func (s *LocalFileStorage) SaveDataURI(ctx context.Context, dataURI, subPath, name string) (string, error) {
	const op = "filestorage.SaveDataURI"

	mime, payload, ok := splitDataURI(dataURI)
	if !ok {
		return "", fmt.Errorf("%s: %w", op, ErrNotDataURI)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	ext, ok := imageExtensions[mime]
	if !ok {
		ext = ".bin"
	}

	rel, _, err := s.Save(ctx, bytes.NewReader(data), subPath, name+ext)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return s.URL(rel), nil
}

func splitDataURI(s string) (mime, payload string, ok bool) {
	rest, found := strings.CutPrefix(s, "data:")
	if !found {
		return "", "", false
	}

	meta, payload, found := strings.Cut(rest, ",")
	if !found {
		return "", "", false
	}

	mime, found = strings.CutSuffix(meta, ";base64")
	if !found {
		return "", "", false
	}

	return mime, payload, true
}

func (s *LocalFileStorage) Delete(ctx context.Context, relativePath string) error {
	return os.Remove(filepath.Join(s.baseDir, relativePath))
}

// URL returns the public address of a stored file.
func (s *LocalFileStorage) URL(relativePath string) string {
	return s.baseURL + "/" + path.Clean(filepath.ToSlash(relativePath))
}

func (s *LocalFileStorage) GetBaseDir() string {
	return s.baseDir
}
