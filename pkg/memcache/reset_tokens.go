package mem

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type ResetTokenStore interface {
	Set(token string, accountEmail string, ttl time.Duration)

	// Consume returns the email for token if not expired,
	// and removes the token (single-use). Returns "" if missing/expired.
	Consume(token string) string
}

type ResetTokens struct {
	// guards Get+Delete in Consume so a token cannot be used twice
	mu    sync.Mutex
	cache *gocache.Cache
}

func NewResetTokens(cleanupInterval time.Duration) *ResetTokens {
	return &ResetTokens{
		cache: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

func (s *ResetTokens) Set(token string, accountEmail string, ttl time.Duration) {
	s.cache.Set(token, accountEmail, ttl)
}

func (s *ResetTokens) Consume(token string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.cache.Get(token)
	if !ok {
		return ""
	}
	s.cache.Delete(token)
	return v.(string)
}
