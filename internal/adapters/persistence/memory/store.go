package memory

import (
	"sync"
	"time"

	"smartchama/internal/core/domain"
	"smartchama/internal/pkg/idgen"
)

// Store is the in-memory backend: one map per entity type keyed by ID, plus
// per-entity ID slices so list reads preserve insertion order. A single
// injected sequence assigns IDs across all entity types.
//
// The mutex makes individual operations atomic. There is deliberately no
// cross-request transaction boundary: a delete interleaved between two
// requests can still leave a later composed read looking at a dangling
// foreign key, which composers surface as *domain.MissingParentError.
type Store struct {
	mu  sync.RWMutex
	ids idgen.Sequence
	now func() time.Time

	users     map[int]domain.User
	userOrder []int

	chamas     map[int]domain.Chama
	chamaOrder []int

	members     map[int]domain.Member
	memberOrder []int

	contributions     map[int]domain.Contribution
	contributionOrder []int

	payouts     map[int]domain.Payout
	payoutOrder []int

	penalties     map[int]domain.Penalty
	penaltyOrder []int

	notifications     map[int]domain.Notification
	notificationOrder []int

	payments     map[int]domain.PaymentRequest
	paymentOrder []int
}

// NewStore creates an empty store drawing IDs from seq.
func NewStore(seq idgen.Sequence) *Store {
	return &Store{
		ids:           seq,
		now:           time.Now,
		users:         make(map[int]domain.User),
		chamas:        make(map[int]domain.Chama),
		members:       make(map[int]domain.Member),
		contributions: make(map[int]domain.Contribution),
		payouts:       make(map[int]domain.Payout),
		penalties:     make(map[int]domain.Penalty),
		notifications: make(map[int]domain.Notification),
		payments:      make(map[int]domain.PaymentRequest),
	}
}

// removeID drops id from an order slice, preserving the relative order of
// the remaining IDs.
func removeID(order []int, id int) []int {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

// ============================================================
// Composer helpers. Callers must hold s.mu (read or write).
// ============================================================

// userLocked resolves a user foreign key into a copy of the record.
func (s *Store) userLocked(entity string, id, userID int) (*domain.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, &domain.MissingParentError{Entity: entity, ID: id, Parent: "user", ParentID: userID}
	}
	return &u, nil
}

// chamaLocked resolves a chama foreign key into a copy of the record.
func (s *Store) chamaLocked(entity string, id, chamaID int) (*domain.Chama, error) {
	c, ok := s.chamas[chamaID]
	if !ok {
		return nil, &domain.MissingParentError{Entity: entity, ID: id, Parent: "chama", ParentID: chamaID}
	}
	return &c, nil
}

// memberWithUserLocked resolves a member foreign key and, transitively, the
// member's user.
func (s *Store) memberWithUserLocked(entity string, id, memberID int) (*domain.MemberWithUser, error) {
	m, ok := s.members[memberID]
	if !ok {
		return nil, &domain.MissingParentError{Entity: entity, ID: id, Parent: "member", ParentID: memberID}
	}
	u, err := s.userLocked("member", m.ID, m.UserID)
	if err != nil {
		return nil, err
	}
	return &domain.MemberWithUser{Member: m, User: u}, nil
}
