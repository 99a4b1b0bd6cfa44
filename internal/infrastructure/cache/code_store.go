package cache

import (
	"sync"
	"time"
)

// CodeStore holds one-time password-reset codes with a bounded lifetime.
// Codes are keyed by email, overwritten on re-request, and removed on
// first successful consume.
type CodeStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	codes map[string]entry
	now   func() time.Time
}

type entry struct {
	code      string
	expiresAt time.Time
}

func NewCodeStore(ttl time.Duration) *CodeStore {
	return &CodeStore{
		ttl:   ttl,
		codes: make(map[string]entry),
		now:   time.Now,
	}
}

func (s *CodeStore) Put(key, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.codes[key] = entry{code: code, expiresAt: s.now().Add(s.ttl)}
}

// Consume removes and validates the code in one step, so a code can only
// ever be used once even under concurrent confirm attempts.
func (s *CodeStore) Consume(key, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.codes[key]
	if !ok {
		return false
	}
	if s.now().After(e.expiresAt) {
		delete(s.codes, key)
		return false
	}
	if e.code != code {
		return false
	}
	delete(s.codes, key)
	return true
}

// Sweep drops expired entries. Put runs it on every insert, so stale codes
// never outlive the next reset request.
func (s *CodeStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
}

func (s *CodeStore) sweepLocked() {
	now := s.now()
	for k, e := range s.codes {
		if now.After(e.expiresAt) {
			delete(s.codes, k)
		}
	}
}
