// Package memstore provides an in-process TTL store for registration
// sessions, used when no Redis URL is configured. Entries expire passively:
// a read past the deadline behaves as a miss, and a background sweep
// reclaims memory.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/codeedexprojects/poky-backend/internal/domain"
)

const (
	pendingPrefix = "pending:"
	resetPrefix   = "reset:"
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// RegistrationStore is a mutex-guarded expiring map keyed by prefixed email.
type RegistrationStore struct {
	mu      sync.Mutex
	entries map[string]entry
}

func NewRegistrationStore() *RegistrationStore {
	s := &RegistrationStore{entries: make(map[string]entry)}
	go s.sweep()
	return s
}

// sweep removes expired entries every minute.
func (s *RegistrationStore) sweep() {
	for {
		time.Sleep(time.Minute)
		now := time.Now()
		s.mu.Lock()
		for k, e := range s.entries {
			if now.After(e.expiresAt) {
				delete(s.entries, k)
			}
		}
		s.mu.Unlock()
	}
}

func (s *RegistrationStore) set(key string, value interface{}, ttl time.Duration) {
	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
}

func (s *RegistrationStore) get(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		delete(s.entries, key)
		return nil, false
	}
	return e.value, true
}

// del removes the key and reports whether a live entry was removed.
func (s *RegistrationStore) del(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	delete(s.entries, key)
	return ok && !time.Now().After(e.expiresAt)
}

func (s *RegistrationStore) PutPending(_ context.Context, p *domain.PendingRegistration, ttl time.Duration) error {
	cp := *p
	s.set(pendingPrefix+p.Email, &cp, ttl)
	return nil
}

func (s *RegistrationStore) GetPending(_ context.Context, email string) (*domain.PendingRegistration, error) {
	v, ok := s.get(pendingPrefix + email)
	if !ok {
		return nil, fmt.Errorf("pending registration: %w", domain.ErrNotFound)
	}
	cp := *v.(*domain.PendingRegistration)
	return &cp, nil
}

func (s *RegistrationStore) DeletePending(_ context.Context, email string) (bool, error) {
	return s.del(pendingPrefix + email), nil
}

func (s *RegistrationStore) PutReset(_ context.Context, r *domain.PasswordResetSession, ttl time.Duration) error {
	cp := *r
	s.set(resetPrefix+r.Email, &cp, ttl)
	return nil
}

func (s *RegistrationStore) GetReset(_ context.Context, email string) (*domain.PasswordResetSession, error) {
	v, ok := s.get(resetPrefix + email)
	if !ok {
		return nil, fmt.Errorf("reset session: %w", domain.ErrNotFound)
	}
	cp := *v.(*domain.PasswordResetSession)
	return &cp, nil
}

func (s *RegistrationStore) DeleteReset(_ context.Context, email string) (bool, error) {
	return s.del(resetPrefix + email), nil
}
