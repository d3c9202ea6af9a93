package services

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const scratchPrefix = "resume_"

// StorageService manages the scratch directory uploads are written to while
// a request is being processed.
type StorageService interface {
	Save(file *multipart.FileHeader) (string, error)
	Remove(path string) error
	EnsureDir() error
	PurgeStale(olderThan time.Duration) (int, error)
}

type storageService struct {
	scratchPath string
}

func NewStorageService(scratchPath string) StorageService {
	return &storageService{
		scratchPath: scratchPath,
	}
}

func (s *storageService) EnsureDir() error {
	if err := os.MkdirAll(s.scratchPath, 0755); err != nil {
		return fmt.Errorf("failed to create scratch directory: %w", err)
	}

	return nil
}

// Save copies the upload to a name unique to this call and returns its path.
func (s *storageService) Save(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	uniqueFilename := fmt.Sprintf("%s%s%s", scratchPrefix, uuid.New().String(), ext)
	filePath := filepath.Join(s.scratchPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create scratch file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(filePath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return filePath, nil
}

// Remove deletes a scratch file. A file that is already gone is not an error.
func (s *storageService) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// PurgeStale removes scratch files left behind by a previous process.
func (s *storageService) PurgeStale(olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(s.scratchPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read scratch directory: %w", err)
	}

	cutoff := time.Now().Add(-olderThan)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), scratchPrefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		if err := s.Remove(filepath.Join(s.scratchPath, entry.Name())); err != nil {
			return removed, err
		}
		removed++
	}

	return removed, nil
}
