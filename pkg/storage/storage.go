// Package storage persists rendered guide artifacts in Azure Blob Storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/brandforge/giftguide/pkg/lifecycle"
)

// System is the artifact store. Keys are slash-delimited paths scoped to a
// single container.
type System interface {
	// Start registers a startup hook that ensures the container exists.
	Start(lc *lifecycle.Coordinator) error
	// Upload streams an artifact to the given key, tagging it with contentType.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Download opens a read stream for the artifact at key. The caller owns
	// the returned reader. Missing artifacts yield ErrNotFound.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the artifact at key, or returns ErrNotFound.
	Delete(ctx context.Context, key string) error
	// Exists reports whether an artifact is present at key.
	Exists(ctx context.Context, key string) (bool, error)
}

type blobStore struct {
	client    *azblob.Client
	container string
	logger    *slog.Logger
}

// New builds the store from configuration. The connection string is parsed
// eagerly; no network traffic happens until Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &blobStore{
		client:    client,
		container: cfg.ContainerName,
		logger:    logger.With("system", "storage"),
	}, nil
}

func (s *blobStore) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting storage system")

	lc.OnStartup(func() {
		if _, err := s.client.CreateContainer(lc.Context(), s.container, nil); err != nil {
			if !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
				s.logger.Error("storage container initialization failed", "error", err)
				return
			}
		}

		s.logger.Info("storage container ready", "container", s.container)
	})

	return nil
}

func (s *blobStore) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	opts := &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: &contentType,
		},
	}

	if _, err := s.client.UploadStream(ctx, s.container, key, reader, opts); err != nil {
		return fmt.Errorf("upload artifact %s: %w", key, err)
	}

	return nil
}

func (s *blobStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}

	resp, err := s.client.DownloadStream(ctx, s.container, key, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download artifact %s: %w", key, err)
	}

	return resp.Body, nil
}

func (s *blobStore) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	if _, err := s.client.DeleteBlob(ctx, s.container, key, nil); err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete artifact %s: %w", key, err)
	}

	return nil
}

func (s *blobStore) Exists(ctx context.Context, key string) (bool, error) {
	if err := checkKey(key); err != nil {
		return false, err
	}

	blobClient := s.client.
		ServiceClient().
		NewContainerClient(s.container).
		NewBlobClient(key)

	if _, err := blobClient.GetProperties(ctx, nil); err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check artifact %s: %w", key, err)
	}

	return true, nil
}

// checkKey rejects empty keys and path traversal segments.
func checkKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
