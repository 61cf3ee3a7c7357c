package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/salat-sync-engine/internal/core/domain"
)

var _ domain.UserRepository = (*KVUserRepository)(nil)

const (
	userKeyPrefix  = "users:id:"
	emailKeyPrefix = "users:email:"
)

// storedUser keeps the password hash, which domain.User never serializes.
type storedUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// KVUserRepository keeps users in the same key-value store as the prayer
// records, for backends without a relational schema. The email index key is
// claimed atomically so two registrations cannot share an address.
type KVUserRepository struct {
	kv domain.KeyValueStore
}

func NewKVUserRepository(kv domain.KeyValueStore) *KVUserRepository {
	return &KVUserRepository{kv: kv}
}

func (r *KVUserRepository) Create(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(storedUser{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("repository: encode user: %w", err)
	}

	if err := r.claimEmail(ctx, user); err != nil {
		return err
	}

	if err := r.kv.Set(ctx, userKeyPrefix+user.ID, string(data)); err != nil {
		return fmt.Errorf("repository: create user failed: %w", err)
	}

	return nil
}

// claimEmail points the email index at user.ID. The user record is written
// only after the claim succeeds, so a rejected registration stores nothing.
// A claim whose user record was never written is stale and may be taken over.
func (r *KVUserRepository) claimEmail(ctx context.Context, user *domain.User) error {
	key := emailKeyPrefix + user.Email

	var owner string
	err := r.kv.Update(ctx, key, func(current string, exists bool) (string, error) {
		if exists && current != user.ID {
			owner = current
			return "", domain.ErrEmailAlreadyExists
		}
		return user.ID, nil
	})
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		if _, getErr := r.GetByID(ctx, owner); !errors.Is(getErr, domain.ErrUserNotFound) {
			return domain.ErrEmailAlreadyExists
		}
		err = r.kv.Update(ctx, key, func(current string, exists bool) (string, error) {
			if exists && current != owner && current != user.ID {
				return "", domain.ErrEmailAlreadyExists
			}
			return user.ID, nil
		})
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return domain.ErrEmailAlreadyExists
		}
	}
	if err != nil {
		return fmt.Errorf("repository: index user email failed: %w", err)
	}
	return nil
}

func (r *KVUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	id, err := r.kv.Get(ctx, emailKeyPrefix+domain.NormalizeEmail(email))
	if errors.Is(err, domain.ErrKeyNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("repository: get user by email failed: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *KVUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	raw, err := r.kv.Get(ctx, userKeyPrefix+id)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("repository: get user by id failed: %w", err)
	}

	var stored storedUser
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("repository: decode user %s: %w", id, err)
	}

	return &domain.User{
		ID:           stored.ID,
		Email:        stored.Email,
		PasswordHash: stored.PasswordHash,
		CreatedAt:    stored.CreatedAt,
		UpdatedAt:    stored.UpdatedAt,
	}, nil
}
