package memory

import (
	"context"

	"smartchama/internal/adapters/persistence/repositories"
	"smartchama/internal/core/domain"
)

// payoutRepository implements repositories.PayoutRepository over the shared store
type payoutRepository struct {
	store *Store
}

// NewPayoutRepository creates a new payout repository
func NewPayoutRepository(store *Store) repositories.PayoutRepository {
	return &payoutRepository{store: store}
}

// List lists payouts in insertion order with member (and its user) and chama
// embedded
func (r *payoutRepository) List(ctx context.Context) ([]*domain.PayoutView, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]*domain.PayoutView, 0, len(s.payoutOrder))
	for _, id := range s.payoutOrder {
		p := s.payouts[id]
		member, err := s.memberWithUserLocked("payout", p.ID, p.MemberID)
		if err != nil {
			return nil, err
		}
		chama, err := s.chamaLocked("payout", p.ID, p.ChamaID)
		if err != nil {
			return nil, err
		}
		views = append(views, &domain.PayoutView{Payout: p, Member: member, Chama: chama})
	}
	return views, nil
}

// GetByID gets a payout by ID
func (r *payoutRepository) GetByID(ctx context.Context, id int) (*domain.Payout, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.payouts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// Create inserts a new payout. Status defaults to scheduled; the payout date
// comes from the client, it is not server-stamped.
func (r *payoutRepository) Create(ctx context.Context, in *domain.InsertPayout) (*domain.Payout, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	status := in.Status
	if status == "" {
		status = domain.PayoutScheduled
	}
	p := domain.Payout{
		ID:         s.ids.Next(),
		ChamaID:    in.ChamaID,
		MemberID:   in.MemberID,
		Amount:     in.Amount,
		PayoutDate: in.PayoutDate,
		Status:     status,
		Notes:      in.Notes,
	}
	s.payouts[p.ID] = p
	s.payoutOrder = append(s.payoutOrder, p.ID)
	return &p, nil
}

// Update merges the non-nil fields into the existing record
func (r *payoutRepository) Update(ctx context.Context, id int, in *domain.UpdatePayout) (*domain.Payout, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payouts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.ChamaID != nil {
		p.ChamaID = *in.ChamaID
	}
	if in.MemberID != nil {
		p.MemberID = *in.MemberID
	}
	if in.Amount != nil {
		p.Amount = *in.Amount
	}
	if in.PayoutDate != nil {
		p.PayoutDate = *in.PayoutDate
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}
	s.payouts[id] = p
	return &p, nil
}

// Delete removes the payout
func (r *payoutRepository) Delete(ctx context.Context, id int) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.payouts[id]; !ok {
		return false, nil
	}
	delete(s.payouts, id)
	s.payoutOrder = removeID(s.payoutOrder, id)
	return true, nil
}
