// Package memory provides in-process implementations of the user and order
// repositories. They back the "memory" storage driver and the tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/shiptrack/api/pkg/auth"
	"github.com/shiptrack/api/pkg/order"
)

// Store holds users and orders behind one lock, so order creation sees a
// consistent view of the owner.
type Store struct {
	mu        sync.RWMutex
	users     map[uuid.UUID]auth.User
	usernames map[string]uuid.UUID
	orders    map[uuid.UUID]order.Order
}

func NewStore() *Store {
	return &Store{
		users:     make(map[uuid.UUID]auth.User),
		usernames: make(map[string]uuid.UUID),
		orders:    make(map[uuid.UUID]order.Order),
	}
}

// Users returns the store as an auth.UserRepository.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Orders returns the store as an order.Repository.
func (s *Store) Orders() *OrderRepository { return &OrderRepository{s: s} }

// Reset drops every user and order.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[uuid.UUID]auth.User)
	s.usernames = make(map[string]uuid.UUID)
	s.orders = make(map[uuid.UUID]order.Order)
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user auth.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, taken := r.s.usernames[user.Username]; taken {
		return auth.ErrUserAlreadyExists
	}
	if _, taken := r.s.users[user.ID]; taken {
		return auth.ErrUserAlreadyExists
	}
	r.s.users[user.ID] = user
	r.s.usernames[user.Username] = user.ID
	return nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (auth.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.usernames[username]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return r.s.users[id], nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (auth.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return u, nil
}

func (r *UserRepository) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.users[id]
	return ok, nil
}

// Count returns the number of stored users.
func (r *UserRepository) Count() int {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.users)
}

type OrderRepository struct{ s *Store }

func (r *OrderRepository) Create(_ context.Context, o order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[o.OwnerID]; !ok {
		return order.ErrOwnerNotFound
	}
	r.s.orders[o.ID] = o
	return nil
}

func (r *OrderRepository) GetByID(_ context.Context, id uuid.UUID) (order.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	return o, nil
}

func (r *OrderRepository) ListByOwner(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]order.Order, error) {
	r.s.mu.RLock()
	out := make([]order.Order, 0)
	for _, o := range r.s.orders {
		if o.OwnerID == ownerID {
			out = append(out, o)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	if offset >= len(out) {
		return []order.Order{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *OrderRepository) Update(_ context.Context, o order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.orders[o.ID]
	if !ok {
		return order.ErrNotFound
	}
	// Ownership and creation time are immutable.
	o.OwnerID = cur.OwnerID
	o.CreatedAt = cur.CreatedAt
	r.s.orders[o.ID] = o
	return nil
}

func (r *OrderRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[id]; !ok {
		return order.ErrNotFound
	}
	delete(r.s.orders, id)
	return nil
}
