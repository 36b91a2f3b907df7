package memory

import (
	"context"

	"smartchama/internal/adapters/persistence/repositories"
	"smartchama/internal/core/domain"
)

// chamaRepository implements repositories.ChamaRepository over the shared store
type chamaRepository struct {
	store *Store
}

// NewChamaRepository creates a new chama repository
func NewChamaRepository(store *Store) repositories.ChamaRepository {
	return &chamaRepository{store: store}
}

// List lists chamas in insertion order
func (r *chamaRepository) List(ctx context.Context) ([]*domain.Chama, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	chamas := make([]*domain.Chama, 0, len(s.chamaOrder))
	for _, id := range s.chamaOrder {
		c := s.chamas[id]
		chamas = append(chamas, &c)
	}
	return chamas, nil
}

// GetByID gets a chama by ID
func (r *chamaRepository) GetByID(ctx context.Context, id int) (*domain.Chama, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.chamas[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

// Create inserts a new chama, assigning the ID and creation timestamp
func (r *chamaRepository) Create(ctx context.Context, in *domain.InsertChama) (*domain.Chama, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	c := domain.Chama{
		ID:                 s.ids.Next(),
		Name:               in.Name,
		Description:        in.Description,
		ContributionAmount: in.ContributionAmount,
		MeetingSchedule:    in.MeetingSchedule,
		CreatedAt:          s.now(),
		CreatedBy:          in.CreatedBy,
	}
	s.chamas[c.ID] = c
	s.chamaOrder = append(s.chamaOrder, c.ID)
	return &c, nil
}

// Update merges the non-nil fields into the existing record
func (r *chamaRepository) Update(ctx context.Context, id int, in *domain.UpdateChama) (*domain.Chama, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chamas[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.ContributionAmount != nil {
		c.ContributionAmount = *in.ContributionAmount
	}
	if in.MeetingSchedule != nil {
		c.MeetingSchedule = *in.MeetingSchedule
	}
	if in.CreatedBy != nil {
		c.CreatedBy = *in.CreatedBy
	}
	s.chamas[id] = c
	return &c, nil
}

// Delete removes the chama. Members and contributions pointing at it are NOT
// cascaded; composed reads over them will fail with MissingParentError.
func (r *chamaRepository) Delete(ctx context.Context, id int) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chamas[id]; !ok {
		return false, nil
	}
	delete(s.chamas, id)
	s.chamaOrder = removeID(s.chamaOrder, id)
	return true, nil
}
