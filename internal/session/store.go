package session

import (
	"sync"
	"time"

	"github.com/Ayash-Bera/highlights/internal/chat"
	gocache "github.com/patrickmn/go-cache"
)

// Store keeps one controller per browser session. Entries expire after ttl
// of inactivity; nothing outlives the process.
type Store struct {
	cache *gocache.Cache
	ttl   time.Duration
	asker chat.Asker
	mu    sync.Mutex
}

func NewStore(asker chat.Asker, ttl time.Duration, cleanupInterval time.Duration) *Store {
	return &Store{
		cache: gocache.New(ttl, cleanupInterval),
		ttl:   ttl,
		asker: asker,
	}
}

// Get returns the controller for id and refreshes its expiry.
func (s *Store) Get(id string) (*chat.Controller, bool) {
	val, found := s.cache.Get(id)
	if !found {
		return nil, false
	}
	ctrl := val.(*chat.Controller)
	s.cache.Set(id, ctrl, s.ttl)
	return ctrl, true
}

// GetOrCreate returns the controller for id, creating a fresh one if the
// session is new or expired.
func (s *Store) GetOrCreate(id string) *chat.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctrl, ok := s.Get(id); ok {
		return ctrl
	}
	ctrl := chat.NewController(s.asker)
	s.cache.Set(id, ctrl, s.ttl)
	return ctrl
}

func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

func (s *Store) Len() int {
	return s.cache.ItemCount()
}
