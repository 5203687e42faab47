package storage

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeStore struct{}

func (fakeStore) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	return objectName, nil
}

func (fakeStore) Remove(ctx context.Context, objectName string) error { return nil }

func (fakeStore) PublicURL(path string) string {
	return "http://store.example/job-photos/" + path
}

func TestResolvePhotoURL(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"empty reference", "", ""},
		{"transient blob marker", "blob:http://localhost:3000/abc-123", ""},
		{"absolute http", "http://cdn.example.com/a.jpg", "http://cdn.example.com/a.jpg"},
		{"absolute https", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"storage path", "1714000000000-abc.jpg", "http://store.example/job-photos/1714000000000-abc.jpg"},
		{"bucket-prefixed legacy path", "job-photos/1714000000000-abc.jpg", "http://store.example/job-photos/1714000000000-abc.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePhotoURL(fakeStore{}, tt.ref))
		})
	}
}
