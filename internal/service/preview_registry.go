package service

import (
	"strings"
	"sync"

	"hospital-admin/internal/domain/entity"

	"github.com/google/uuid"
)

// DefaultPreviewPrefix is the path under which previews are served
const DefaultPreviewPrefix = "/admin/previews/"

// PreviewRegistry keeps staged photos reachable by a local URL until the
// reference is revoked
type PreviewRegistry struct {
	mu      sync.RWMutex
	prefix  string
	entries map[string]*entity.StagedFile
}

func NewPreviewRegistry(prefix string) *PreviewRegistry {
	if prefix == "" {
		prefix = DefaultPreviewPrefix
	}
	return &PreviewRegistry{
		prefix:  prefix,
		entries: make(map[string]*entity.StagedFile),
	}
}

// Create registers file and returns its preview URL
func (r *PreviewRegistry) Create(file *entity.StagedFile) string {
	id := uuid.New().String()

	r.mu.Lock()
	r.entries[id] = file
	r.mu.Unlock()

	return r.prefix + id
}

// Open looks up a preview by id
func (r *PreviewRegistry) Open(id string) (*entity.StagedFile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	file, ok := r.entries[id]
	return file, ok
}

// Revoke releases a preview URL. Unknown URLs are ignored.
func (r *PreviewRegistry) Revoke(url string) {
	id := strings.TrimPrefix(url, r.prefix)

	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
}

// Len reports how many previews are live
func (r *PreviewRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
