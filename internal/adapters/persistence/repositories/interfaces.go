package repositories

import (
	"context"
	"time"

	"smartchama/internal/core/domain"
)

// Every entity shares the same operation shape: List, GetByID, Create,
// Update (partial merge), Delete. List methods on member-owned entities
// return denormalized views with foreign keys hydrated into embedded
// objects. Any backend can satisfy these; the in-memory store is one.

// UserRepository defines user repository interface
type UserRepository interface {
	List(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id int) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, in *domain.InsertUser) (*domain.User, error)
	Update(ctx context.Context, id int, in *domain.UpdateUser) (*domain.User, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// ChamaRepository defines chama repository interface
type ChamaRepository interface {
	List(ctx context.Context) ([]*domain.Chama, error)
	GetByID(ctx context.Context, id int) (*domain.Chama, error)
	Create(ctx context.Context, in *domain.InsertChama) (*domain.Chama, error)
	Update(ctx context.Context, id int, in *domain.UpdateChama) (*domain.Chama, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// MemberRepository defines membership repository interface
type MemberRepository interface {
	List(ctx context.Context) ([]*domain.MemberView, error)
	ListByChama(ctx context.Context, chamaID int) ([]*domain.MemberWithUser, error)
	ListByUser(ctx context.Context, userID int) ([]*domain.Member, error)
	GetByID(ctx context.Context, id int) (*domain.Member, error)
	Create(ctx context.Context, in *domain.InsertMember) (*domain.Member, error)
	Update(ctx context.Context, id int, in *domain.UpdateMember) (*domain.Member, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// ContributionRepository defines contribution repository interface
type ContributionRepository interface {
	List(ctx context.Context) ([]*domain.ContributionView, error)
	ListByChama(ctx context.Context, chamaID int) ([]*domain.ContributionView, error)
	ListByMember(ctx context.Context, memberID int) ([]*domain.Contribution, error)
	GetByID(ctx context.Context, id int) (*domain.Contribution, error)
	Create(ctx context.Context, in *domain.InsertContribution) (*domain.Contribution, error)
	Update(ctx context.Context, id int, in *domain.UpdateContribution) (*domain.Contribution, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// PayoutRepository defines payout repository interface
type PayoutRepository interface {
	List(ctx context.Context) ([]*domain.PayoutView, error)
	GetByID(ctx context.Context, id int) (*domain.Payout, error)
	Create(ctx context.Context, in *domain.InsertPayout) (*domain.Payout, error)
	Update(ctx context.Context, id int, in *domain.UpdatePayout) (*domain.Payout, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// PenaltyRepository defines penalty repository interface
type PenaltyRepository interface {
	List(ctx context.Context) ([]*domain.PenaltyView, error)
	GetByID(ctx context.Context, id int) (*domain.Penalty, error)
	Create(ctx context.Context, in *domain.InsertPenalty) (*domain.Penalty, error)
	Update(ctx context.Context, id int, in *domain.UpdatePenalty) (*domain.Penalty, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// NotificationRepository defines notification repository interface
type NotificationRepository interface {
	// ListByUser returns the user's notifications ordered by createdAt descending
	ListByUser(ctx context.Context, userID int) ([]*domain.Notification, error)
	Create(ctx context.Context, in *domain.InsertNotification) (*domain.Notification, error)
	MarkRead(ctx context.Context, id int) (bool, error)
}

// PaymentRequestRepository tracks STK pushes awaiting their gateway callback
type PaymentRequestRepository interface {
	Create(ctx context.Context, req *domain.PaymentRequest) (*domain.PaymentRequest, error)
	GetByCheckoutID(ctx context.Context, checkoutRequestID string) (*domain.PaymentRequest, error)
	SetStatus(ctx context.Context, id int, status string) error
	ListPendingBefore(ctx context.Context, cutoff time.Time) ([]*domain.PaymentRequest, error)
}

// StatsRepository computes the dashboard aggregate in one shot
type StatsRepository interface {
	GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}
