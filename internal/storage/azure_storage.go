package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/disintegration/imaging"
)

type azureArtifactStore struct {
	client    *azblob.Client
	container string
}

// NewAzureArtifactStore creates a store that uploads artifacts as block blobs.
// The container must already exist.
func NewAzureArtifactStore(accountName, accountKey, container string) (ArtifactStore, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("invalid azure credentials: %w", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create blob client: %w", err)
	}

	return &azureArtifactStore{client: client, container: container}, nil
}

// SaveImage encodes img in memory, uploads it and returns the blob URL
func (s *azureArtifactStore) SaveImage(ctx context.Context, name string, img image.Image) (string, error) {
	if err := checkArtifactName(name); err != nil {
		return "", err
	}

	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		return "", fmt.Errorf("artifact %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}

	contentType := "image/" + strings.ToLower(format.String())
	_, err = s.client.UploadBuffer(ctx, s.container, name, buf.Bytes(), &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}

	return s.blobURL(name)
}

func (s *azureArtifactStore) blobURL(name string) (string, error) {
	return url.JoinPath(s.client.URL(), s.container, name)
}
