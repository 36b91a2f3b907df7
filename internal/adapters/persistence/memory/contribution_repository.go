package memory

import (
	"context"

	"smartchama/internal/adapters/persistence/repositories"
	"smartchama/internal/core/domain"
)

// contributionRepository implements repositories.ContributionRepository over
// the shared store
type contributionRepository struct {
	store *Store
}

// NewContributionRepository creates a new contribution repository
func NewContributionRepository(store *Store) repositories.ContributionRepository {
	return &contributionRepository{store: store}
}

// List lists contributions in insertion order with member (and its user) and
// chama embedded
func (r *contributionRepository) List(ctx context.Context) ([]*domain.ContributionView, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]*domain.ContributionView, 0, len(s.contributionOrder))
	for _, id := range s.contributionOrder {
		view, err := s.contributionViewLocked(id)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// ListByChama lists one chama's contributions, composed like List
func (r *contributionRepository) ListByChama(ctx context.Context, chamaID int) ([]*domain.ContributionView, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]*domain.ContributionView, 0)
	for _, id := range s.contributionOrder {
		if s.contributions[id].ChamaID != chamaID {
			continue
		}
		view, err := s.contributionViewLocked(id)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// ListByMember lists one member's contributions without joins
func (r *contributionRepository) ListByMember(ctx context.Context, memberID int) ([]*domain.Contribution, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	contributions := make([]*domain.Contribution, 0)
	for _, id := range s.contributionOrder {
		c := s.contributions[id]
		if c.MemberID == memberID {
			contributions = append(contributions, &c)
		}
	}
	return contributions, nil
}

// contributionViewLocked composes one contribution. Caller holds s.mu.
func (s *Store) contributionViewLocked(id int) (*domain.ContributionView, error) {
	c := s.contributions[id]
	member, err := s.memberWithUserLocked("contribution", c.ID, c.MemberID)
	if err != nil {
		return nil, err
	}
	chama, err := s.chamaLocked("contribution", c.ID, c.ChamaID)
	if err != nil {
		return nil, err
	}
	return &domain.ContributionView{Contribution: c, Member: member, Chama: chama}, nil
}

// GetByID gets a contribution by ID
func (r *contributionRepository) GetByID(ctx context.Context, id int) (*domain.Contribution, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contributions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

// Create inserts a new contribution, stamping the contribution date.
// Status defaults to completed: manual records are entered after the money
// has moved, and the overdue check only counts completed contributions.
func (r *contributionRepository) Create(ctx context.Context, in *domain.InsertContribution) (*domain.Contribution, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	status := in.Status
	if status == "" {
		status = domain.ContributionCompleted
	}
	c := domain.Contribution{
		ID:               s.ids.Next(),
		MemberID:         in.MemberID,
		ChamaID:          in.ChamaID,
		Amount:           in.Amount,
		ContributionDate: s.now(),
		Status:           status,
	}
	s.contributions[c.ID] = c
	s.contributionOrder = append(s.contributionOrder, c.ID)
	return &c, nil
}

// Update merges the non-nil fields into the existing record
func (r *contributionRepository) Update(ctx context.Context, id int, in *domain.UpdateContribution) (*domain.Contribution, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contributions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.MemberID != nil {
		c.MemberID = *in.MemberID
	}
	if in.ChamaID != nil {
		c.ChamaID = *in.ChamaID
	}
	if in.Amount != nil {
		c.Amount = *in.Amount
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	s.contributions[id] = c
	return &c, nil
}

// Delete removes the contribution
func (r *contributionRepository) Delete(ctx context.Context, id int) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contributions[id]; !ok {
		return false, nil
	}
	delete(s.contributions, id)
	s.contributionOrder = removeID(s.contributionOrder, id)
	return true, nil
}
