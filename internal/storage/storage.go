// Package storage provides the object-store collaborator used for post and
// profile images. Blobs are keyed deterministically ("Post {imageID}",
// "Profile {userID}") so deleting an entity can delete its blob without a
// lookup table.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ObjectStore is the minimal contract the content services need.
type ObjectStore interface {
	// Upload stores data under key, replacing any existing object, and
	// returns the public URL of the stored object.
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	// Remove deletes the object under key; removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// PostImageKey returns the deterministic object key for a post image.
func PostImageKey(imageID string) string {
	return "Post " + imageID
}

// ProfileImageKey returns the deterministic object key for a profile picture.
func ProfileImageKey(userID uint) string {
	return fmt.Sprintf("Profile %d", userID)
}

// FileStore is a filesystem-backed ObjectStore serving objects from a media
// directory under a public base URL.
type FileStore struct {
	dir     string
	baseURL string
}

// NewFileStore creates the media directory if needed and returns a store.
func NewFileStore(dir, baseURL string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &FileStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// filename flattens an object key into a safe single path element.
func filename(key string) string {
	return strings.ReplaceAll(key, " ", "_")
}

func (s *FileStore) Upload(_ context.Context, key, _ string, data []byte) (string, error) {
	name := filename(key)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store object %q: %w", key, err)
	}
	return s.baseURL + "/" + name, nil
}

func (s *FileStore) Remove(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(s.dir, filename(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove object %q: %w", key, err)
	}
	return nil
}

// Dir returns the backing media directory, used for static file serving.
func (s *FileStore) Dir() string {
	return s.dir
}

// MemStore is an in-memory ObjectStore for tests.
type MemStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{Objects: make(map[string][]byte)}
}

func (s *MemStore) Upload(_ context.Context, key, _ string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Objects[key] = data
	return "mem://" + filename(key), nil
}

func (s *MemStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Objects, key)
	return nil
}
