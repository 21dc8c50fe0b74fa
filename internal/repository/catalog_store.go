package repository

import (
	"sync"
	"time"

	"github.com/unicourse/planner-api/internal/catalog"
	"github.com/unicourse/planner-api/internal/models"
)

// CatalogEntry is one loaded dataset with its normalized catalog.
type CatalogEntry struct {
	Dataset  models.Dataset
	Result   *catalog.Result
	LoadedAt time.Time
}

// CatalogStore keeps normalized catalogs in memory for the request path.
// With persistence enabled it acts as a cache over the dataset tables;
// without it, it is the only copy. A non-positive TTL disables expiry.
type CatalogStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]CatalogEntry
}

// NewCatalogStore constructs the store.
func NewCatalogStore(ttl time.Duration) *CatalogStore {
	return &CatalogStore{
		ttl:   ttl,
		items: make(map[string]CatalogEntry),
	}
}

// Save stores the entry under its dataset ID.
func (s *CatalogStore) Save(entry CatalogEntry) {
	if entry.LoadedAt.IsZero() {
		entry.LoadedAt = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[entry.Dataset.ID] = entry
}

// Get returns the entry for a dataset ID, evicting it when expired.
func (s *CatalogStore) Get(id string) (CatalogEntry, bool) {
	s.mu.RLock()
	entry, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return CatalogEntry{}, false
	}
	if s.ttl > 0 && time.Since(entry.LoadedAt) > s.ttl {
		s.Delete(id)
		return CatalogEntry{}, false
	}
	return entry, true
}

// GetByHash returns the newest entry whose dataset carries the hash.
func (s *CatalogStore) GetByHash(hash string) (CatalogEntry, bool) {
	s.mu.RLock()
	var (
		found bool
		best  CatalogEntry
	)
	for _, entry := range s.items {
		if entry.Dataset.Hash != hash {
			continue
		}
		if !found || entry.Dataset.UploadedAt.After(best.Dataset.UploadedAt) {
			best = entry
			found = true
		}
	}
	s.mu.RUnlock()
	if !found {
		return CatalogEntry{}, false
	}
	if s.ttl > 0 && time.Since(best.LoadedAt) > s.ttl {
		s.Delete(best.Dataset.ID)
		return CatalogEntry{}, false
	}
	return best, true
}

// List returns the headers of every live entry, newest first not
// guaranteed; callers sort as needed.
func (s *CatalogStore) List() []models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	datasets := make([]models.Dataset, 0, len(s.items))
	for _, entry := range s.items {
		if s.ttl > 0 && time.Since(entry.LoadedAt) > s.ttl {
			continue
		}
		datasets = append(datasets, entry.Dataset)
	}
	return datasets
}

// Delete removes the entry for a dataset ID.
func (s *CatalogStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}
