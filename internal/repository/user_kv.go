package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dayoung-lee/taskboard/internal/model"
	"github.com/dayoung-lee/taskboard/internal/storage"
)

// usersKey holds the entire user table as one value.
const usersKey = "mockUsers"

// KVUserRepository keeps the global user table under a single key in the
// durable store.
type KVUserRepository struct {
	store    storage.Store
	seedDemo bool
}

func NewKVUser(store storage.Store, seedDemo bool) *KVUserRepository {
	return &KVUserRepository{store: store, seedDemo: seedDemo}
}

func (r *KVUserRepository) load(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.store.Get(ctx, usersKey, &users)
	if err == nil {
		return users, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to load user table: %w", err)
	}

	// First-ever access: seed the built-in demo account.
	if r.seedDemo {
		users = demoUsers()
	} else {
		users = []model.User{}
	}
	if err := r.store.Put(ctx, usersKey, users); err != nil {
		return nil, fmt.Errorf("failed to initialize user table: %w", err)
	}
	return users, nil
}

func (r *KVUserRepository) GetByID(ctx context.Context, id string) (model.User, error) {
	return r.find(ctx, func(u model.User) bool { return u.ID == id })
}

func (r *KVUserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.find(ctx, func(u model.User) bool { return u.Username == username })
}

func (r *KVUserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.find(ctx, func(u model.User) bool { return u.Email == email })
}

func (r *KVUserRepository) find(ctx context.Context, match func(model.User) bool) (model.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if match(u) {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

func (r *KVUserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return model.User{}, err
	}

	user.ID = nextUserID(users)
	users = append(users, user)

	if err := r.store.Put(ctx, usersKey, users); err != nil {
		return model.User{}, fmt.Errorf("failed to persist user table: %w", err)
	}
	return user, nil
}

// nextUserID assigns a millisecond-timestamp id, bumped past any collision
// so registrations within the same millisecond stay distinct. Ids stay
// numeric because the prefix token scheme encodes them as a digit suffix.
func nextUserID(users []model.User) string {
	taken := make(map[string]bool, len(users))
	for _, u := range users {
		taken[u.ID] = true
	}

	id := time.Now().UnixMilli()
	for taken[strconv.FormatInt(id, 10)] {
		id++
	}
	return strconv.FormatInt(id, 10)
}

var _ UserRepository = (*KVUserRepository)(nil)
