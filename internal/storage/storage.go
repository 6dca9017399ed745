package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ridgeline-exteriors/deal-api/internal/config"
)

// Storage defines the interface for file storage operations
type Storage interface {
	Upload(ctx context.Context, filename string, contentType string, data io.Reader) (string, int64, error)
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)
	Delete(ctx context.Context, storagePath string) error
	// SignedURL returns a time-limited download URL for a stored file.
	// Clients never see raw storage keys.
	SignedURL(ctx context.Context, storagePath string, expiry time.Duration) (string, error)
}

// NewStorage creates a new storage instance based on configuration.
// For local mode, files are stored on the local filesystem.
// For cloud/azure mode, files are stored in Azure Blob Storage.
func NewStorage(cfg *config.StorageConfig, logger *zap.Logger) (Storage, error) {
	switch cfg.Mode {
	case "local":
		if cfg.LocalSignSecret == "" {
			return nil, fmt.Errorf("storage sign secret required for local storage")
		}
		return NewLocalStorage(cfg.LocalBasePath, cfg.LocalPublicBaseURL, cfg.LocalSignSecret)
	case "cloud", "azure":
		if cfg.CloudConnectionString == "" {
			return nil, fmt.Errorf("cloud connection string required for azure storage")
		}
		return NewAzureBlobStorage(cfg.CloudConnectionString, cfg.CloudContainer, logger)
	default:
		return nil, fmt.Errorf("unsupported storage mode: %s", cfg.Mode)
	}
}

// LocalStorage implements Storage interface for local filesystem. Download
// URLs are signed with an HMAC so the file route can verify them without
// database lookups.
type LocalStorage struct {
	basePath      string
	publicBaseURL string
	signSecret    []byte
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath, publicBaseURL, signSecret string) (*LocalStorage, error) {
	// Create base path if it doesn't exist
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath:      basePath,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		signSecret:    []byte(signSecret),
	}, nil
}

// Upload uploads a file to local storage
func (s *LocalStorage) Upload(ctx context.Context, filename string, contentType string, data io.Reader) (string, int64, error) {
	// Generate unique storage path
	fileID := uuid.New().String()
	ext := filepath.Ext(filename)
	storagePath := filepath.Join(fileID[:2], fileID[2:4], fileID+ext)
	fullPath := filepath.Join(s.basePath, storagePath)

	// Create directory structure
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create directory: %w", err)
	}

	// Create file
	file, err := os.Create(fullPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	// Copy data
	size, err := io.Copy(file, data)
	if err != nil {
		os.Remove(fullPath) // Cleanup on error
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	return storagePath, size, nil
}

// Download downloads a file from local storage
func (s *LocalStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	fullPath := filepath.Join(s.basePath, storagePath)

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", storagePath)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete deletes a file from local storage
func (s *LocalStorage) Delete(ctx context.Context, storagePath string) error {
	fullPath := filepath.Join(s.basePath, storagePath)

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// SignedURL returns an expiring download URL served by this API's file
// route. The signature covers the storage path and expiry timestamp.
func (s *LocalStorage) SignedURL(ctx context.Context, storagePath string, expiry time.Duration) (string, error) {
	expires := time.Now().UTC().Add(expiry).Unix()
	sig := s.sign(storagePath, expires)

	return fmt.Sprintf("%s/api/v1/files/download?path=%s&expires=%d&sig=%s",
		s.publicBaseURL, url.QueryEscape(storagePath), expires, sig), nil
}

// VerifySignedPath checks a download request's signature and expiry.
func (s *LocalStorage) VerifySignedPath(storagePath string, expires int64, sig string) bool {
	if time.Now().UTC().Unix() > expires {
		return false
	}
	expected := s.sign(storagePath, expires)
	return hmac.Equal([]byte(expected), []byte(sig))
}

func (s *LocalStorage) sign(storagePath string, expires int64) string {
	mac := hmac.New(sha256.New, s.signSecret)
	fmt.Fprintf(mac, "%s:%d", storagePath, expires)
	return hex.EncodeToString(mac.Sum(nil))
}
