package memory

import (
	"context"

	"smartchama/internal/adapters/persistence/repositories"
	"smartchama/internal/core/domain"
)

// memberRepository implements repositories.MemberRepository over the shared store
type memberRepository struct {
	store *Store
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(store *Store) repositories.MemberRepository {
	return &memberRepository{store: store}
}

// List lists memberships in insertion order with user and chama embedded
func (r *memberRepository) List(ctx context.Context) ([]*domain.MemberView, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]*domain.MemberView, 0, len(s.memberOrder))
	for _, id := range s.memberOrder {
		m := s.members[id]
		u, err := s.userLocked("member", m.ID, m.UserID)
		if err != nil {
			return nil, err
		}
		c, err := s.chamaLocked("member", m.ID, m.ChamaID)
		if err != nil {
			return nil, err
		}
		views = append(views, &domain.MemberView{Member: m, User: u, Chama: c})
	}
	return views, nil
}

// ListByChama lists one chama's memberships with the user embedded
func (r *memberRepository) ListByChama(ctx context.Context, chamaID int) ([]*domain.MemberWithUser, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]*domain.MemberWithUser, 0)
	for _, id := range s.memberOrder {
		m := s.members[id]
		if m.ChamaID != chamaID {
			continue
		}
		u, err := s.userLocked("member", m.ID, m.UserID)
		if err != nil {
			return nil, err
		}
		views = append(views, &domain.MemberWithUser{Member: m, User: u})
	}
	return views, nil
}

// ListByUser lists a user's memberships across all chamas, without joins
func (r *memberRepository) ListByUser(ctx context.Context, userID int) ([]*domain.Member, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	members := make([]*domain.Member, 0)
	for _, id := range s.memberOrder {
		m := s.members[id]
		if m.UserID == userID {
			members = append(members, &m)
		}
	}
	return members, nil
}

// GetByID gets a membership by ID
func (r *memberRepository) GetByID(ctx context.Context, id int) (*domain.Member, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

// Create inserts a new membership. isActive defaults to true when absent.
func (r *memberRepository) Create(ctx context.Context, in *domain.InsertMember) (*domain.Member, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	m := domain.Member{
		ID:       s.ids.Next(),
		UserID:   in.UserID,
		ChamaID:  in.ChamaID,
		JoinedAt: s.now(),
		IsActive: active,
	}
	s.members[m.ID] = m
	s.memberOrder = append(s.memberOrder, m.ID)
	return &m, nil
}

// Update merges the non-nil fields into the existing record. userId/chamaId
// are mergeable for shape parity but nothing relies on changing them.
func (r *memberRepository) Update(ctx context.Context, id int, in *domain.UpdateMember) (*domain.Member, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.UserID != nil {
		m.UserID = *in.UserID
	}
	if in.ChamaID != nil {
		m.ChamaID = *in.ChamaID
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	s.members[id] = m
	return &m, nil
}

// Delete removes the membership without cascading to its contributions
func (r *memberRepository) Delete(ctx context.Context, id int) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[id]; !ok {
		return false, nil
	}
	delete(s.members, id)
	s.memberOrder = removeID(s.memberOrder, id)
	return true, nil
}
