package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/codeedexprojects/poky-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Key prefixes keep pending registrations and password-reset sessions in
// disjoint key spaces, so both can be active for the same email.
const (
	pendingPrefix = "pending:"
	resetPrefix   = "reset:"
)

// RegistrationStore holds pending registrations and password-reset sessions
// in Redis, relying on native key TTLs for passive expiry.
type RegistrationStore struct {
	client *redis.Client
}

func NewRegistrationStore(client *redis.Client) *RegistrationStore {
	return &RegistrationStore{client: client}
}

// PutPending stages a registration under the email key, replacing any prior
// entry and resetting the TTL.
func (s *RegistrationStore) PutPending(ctx context.Context, p *domain.PendingRegistration, ttl time.Duration) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal pending registration: %w", err)
	}
	if err := s.client.Set(ctx, pendingPrefix+p.Email, data, ttl).Err(); err != nil {
		return fmt.Errorf("set pending registration: %w", err)
	}
	return nil
}

func (s *RegistrationStore) GetPending(ctx context.Context, email string) (*domain.PendingRegistration, error) {
	data, err := s.client.Get(ctx, pendingPrefix+email).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("pending registration: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get pending registration: %w", err)
	}
	var p domain.PendingRegistration
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal pending registration: %w", err)
	}
	return &p, nil
}

// DeletePending removes the entry and reports whether this call removed it.
// A false return means the entry expired or was already consumed by a
// concurrent verification.
func (s *RegistrationStore) DeletePending(ctx context.Context, email string) (bool, error) {
	n, err := s.client.Del(ctx, pendingPrefix+email).Result()
	if err != nil {
		return false, fmt.Errorf("delete pending registration: %w", err)
	}
	return n > 0, nil
}

func (s *RegistrationStore) PutReset(ctx context.Context, r *domain.PasswordResetSession, ttl time.Duration) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal reset session: %w", err)
	}
	if err := s.client.Set(ctx, resetPrefix+r.Email, data, ttl).Err(); err != nil {
		return fmt.Errorf("set reset session: %w", err)
	}
	return nil
}

func (s *RegistrationStore) GetReset(ctx context.Context, email string) (*domain.PasswordResetSession, error) {
	data, err := s.client.Get(ctx, resetPrefix+email).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("reset session: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get reset session: %w", err)
	}
	var r domain.PasswordResetSession
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal reset session: %w", err)
	}
	return &r, nil
}

func (s *RegistrationStore) DeleteReset(ctx context.Context, email string) (bool, error) {
	n, err := s.client.Del(ctx, resetPrefix+email).Result()
	if err != nil {
		return false, fmt.Errorf("delete reset session: %w", err)
	}
	return n > 0, nil
}
