// Package storage provides the durable blob store used for rehosted images.
package storage

import (
	"bytes"
	"context"
	"fmt"

	storage_go "github.com/supabase-community/storage-go"
)

// Uploader writes a blob to public durable storage and returns the URL it
// will be served from.
type Uploader interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

// SupabaseStorage uploads to a public Supabase storage bucket.
type SupabaseStorage struct {
	client *storage_go.Client
	bucket string
}

// NewSupabaseStorage builds an uploader for the given project URL, service
// key and bucket. The bucket must exist and be public.
func NewSupabaseStorage(projectURL, serviceKey, bucket string) *SupabaseStorage {
	return &SupabaseStorage{
		client: storage_go.NewClient(projectURL+"/storage/v1", serviceKey, nil),
		bucket: bucket,
	}
}

func (s *SupabaseStorage) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	upsert := false
	_, err := s.client.UploadFile(s.bucket, path, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}

	res := s.client.GetPublicUrl(s.bucket, path)
	if res.SignedURL == "" {
		return "", fmt.Errorf("upload %s: no public URL returned", path)
	}
	return res.SignedURL, nil
}
