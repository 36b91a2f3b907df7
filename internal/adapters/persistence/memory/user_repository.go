package memory

import (
	"context"

	"smartchama/internal/adapters/persistence/repositories"
	"smartchama/internal/core/domain"
)

// userRepository implements repositories.UserRepository over the shared store
type userRepository struct {
	store *Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(store *Store) repositories.UserRepository {
	return &userRepository{store: store}
}

// List lists users in insertion order
func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		u := s.users[id]
		users = append(users, &u)
	}
	return users, nil
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

// GetByEmail gets a user by email, scanning in insertion order
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.userOrder {
		if u := s.users[id]; u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create inserts a new user, assigning the ID and creation timestamp.
// The role defaults to "user". Password is expected to be hashed already.
func (r *userRepository) Create(ctx context.Context, in *domain.InsertUser) (*domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	u := domain.User{
		ID:        s.ids.Next(),
		Name:      in.Name,
		Email:     in.Email,
		Password:  in.Password,
		Role:      role,
		Phone:     in.Phone,
		CreatedAt: s.now(),
	}
	s.users[u.ID] = u
	s.userOrder = append(s.userOrder, u.ID)
	return &u, nil
}

// Update merges the non-nil fields into the existing record
func (r *userRepository) Update(ctx context.Context, id int, in *domain.UpdateUser) (*domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Password != nil {
		u.Password = *in.Password
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	s.users[id] = u
	return &u, nil
}

// Delete removes the user; the second delete of an ID reports false
func (r *userRepository) Delete(ctx context.Context, id int) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	s.userOrder = removeID(s.userOrder, id)
	return true, nil
}
