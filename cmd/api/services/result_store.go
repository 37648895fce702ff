package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// StoredSummary is a finished summary kept only so the UI's download
// button can serve it. Nothing here is persisted.
type StoredSummary struct {
	VideoID   string
	Title     string
	Summary   string
	CreatedAt time.Time
}

// ResultStore is the in-memory, TTL-evicted holder for finished summaries.
type ResultStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]StoredSummary
}

// NewResultStore builds a store with the given entry lifetime. A TTL of 0
// or less falls back to 30 minutes.
func NewResultStore(ttl time.Duration) *ResultStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &ResultStore{
		ttl:     ttl,
		entries: make(map[string]StoredSummary),
	}
}

// Put stores a summary and returns its download id.
func (s *ResultStore) Put(videoID, title, summary string) string {
	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	s.entries[id] = StoredSummary{
		VideoID:   videoID,
		Title:     title,
		Summary:   summary,
		CreatedAt: time.Now(),
	}
	return id
}

// Get looks up a summary by download id.
func (s *ResultStore) Get(id string) (StoredSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	entry, ok := s.entries[id]
	return entry, ok
}

func (s *ResultStore) evictLocked() {
	cutoff := time.Now().Add(-s.ttl)
	for id, entry := range s.entries {
		if entry.CreatedAt.Before(cutoff) {
			delete(s.entries, id)
		}
	}
}
