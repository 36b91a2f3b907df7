package memory

import (
	"context"
	"time"

	"smartchama/internal/adapters/persistence/repositories"
	"smartchama/internal/core/domain"
)

// paymentRequestRepository implements repositories.PaymentRequestRepository
// over the shared store
type paymentRequestRepository struct {
	store *Store
}

// NewPaymentRequestRepository creates a new payment request repository
func NewPaymentRequestRepository(store *Store) repositories.PaymentRequestRepository {
	return &paymentRequestRepository{store: store}
}

// Create inserts a new tracking record for an initiated STK push
func (r *paymentRequestRepository) Create(ctx context.Context, req *domain.PaymentRequest) (*domain.PaymentRequest, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := *req
	rec.ID = s.ids.Next()
	rec.CreatedAt = s.now()
	if rec.Status == "" {
		rec.Status = domain.PaymentPending
	}
	s.payments[rec.ID] = rec
	s.paymentOrder = append(s.paymentOrder, rec.ID)
	return &rec, nil
}

// GetByCheckoutID finds the tracking record for a gateway callback
func (r *paymentRequestRepository) GetByCheckoutID(ctx context.Context, checkoutRequestID string) (*domain.PaymentRequest, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.paymentOrder {
		if p := s.payments[id]; p.CheckoutRequestID == checkoutRequestID {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

// SetStatus transitions the payment request state
func (r *paymentRequestRepository) SetStatus(ctx context.Context, id int, status string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	s.payments[id] = p
	return nil
}

// ListPendingBefore lists pending requests created before the cutoff, for
// the expiry sweep
func (r *paymentRequestRepository) ListPendingBefore(ctx context.Context, cutoff time.Time) ([]*domain.PaymentRequest, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	stale := make([]*domain.PaymentRequest, 0)
	for _, id := range s.paymentOrder {
		p := s.payments[id]
		if p.Status == domain.PaymentPending && p.CreatedAt.Before(cutoff) {
			stale = append(stale, &p)
		}
	}
	return stale, nil
}
