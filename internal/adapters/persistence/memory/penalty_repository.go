package memory

import (
	"context"

	"smartchama/internal/adapters/persistence/repositories"
	"smartchama/internal/core/domain"
)

// penaltyRepository implements repositories.PenaltyRepository over the shared store
type penaltyRepository struct {
	store *Store
}

// NewPenaltyRepository creates a new penalty repository
func NewPenaltyRepository(store *Store) repositories.PenaltyRepository {
	return &penaltyRepository{store: store}
}

// List lists penalties in insertion order with member (and its user) and
// chama embedded
func (r *penaltyRepository) List(ctx context.Context) ([]*domain.PenaltyView, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]*domain.PenaltyView, 0, len(s.penaltyOrder))
	for _, id := range s.penaltyOrder {
		p := s.penalties[id]
		member, err := s.memberWithUserLocked("penalty", p.ID, p.MemberID)
		if err != nil {
			return nil, err
		}
		chama, err := s.chamaLocked("penalty", p.ID, p.ChamaID)
		if err != nil {
			return nil, err
		}
		views = append(views, &domain.PenaltyView{Penalty: p, Member: member, Chama: chama})
	}
	return views, nil
}

// GetByID gets a penalty by ID
func (r *penaltyRepository) GetByID(ctx context.Context, id int) (*domain.Penalty, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.penalties[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// Create inserts a new penalty, stamping the penalty date. Status defaults
// to pending.
func (r *penaltyRepository) Create(ctx context.Context, in *domain.InsertPenalty) (*domain.Penalty, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	status := in.Status
	if status == "" {
		status = domain.PenaltyPending
	}
	p := domain.Penalty{
		ID:          s.ids.Next(),
		MemberID:    in.MemberID,
		ChamaID:     in.ChamaID,
		Amount:      in.Amount,
		Reason:      in.Reason,
		PenaltyDate: s.now(),
		Status:      status,
	}
	s.penalties[p.ID] = p
	s.penaltyOrder = append(s.penaltyOrder, p.ID)
	return &p, nil
}

// Update merges the non-nil fields into the existing record
func (r *penaltyRepository) Update(ctx context.Context, id int, in *domain.UpdatePenalty) (*domain.Penalty, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.penalties[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.MemberID != nil {
		p.MemberID = *in.MemberID
	}
	if in.ChamaID != nil {
		p.ChamaID = *in.ChamaID
	}
	if in.Amount != nil {
		p.Amount = *in.Amount
	}
	if in.Reason != nil {
		p.Reason = *in.Reason
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	s.penalties[id] = p
	return &p, nil
}

// Delete removes the penalty
func (r *penaltyRepository) Delete(ctx context.Context, id int) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.penalties[id]; !ok {
		return false, nil
	}
	delete(s.penalties, id)
	s.penaltyOrder = removeID(s.penaltyOrder, id)
	return true, nil
}
