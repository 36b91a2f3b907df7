package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"smartchama/internal/adapters/persistence/repositories"
	"smartchama/internal/core/domain"
)

// statsRepository implements repositories.StatsRepository over the shared store
type statsRepository struct {
	store *Store
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(store *Store) repositories.StatsRepository {
	return &statsRepository{store: store}
}

// GetDashboardStats counts chamas and members, sums every contribution
// amount with decimal arithmetic (all statuses included; pending and failed
// rows are deliberately not excluded, see DESIGN.md), and reports the
// earliest scheduled payout as the next payout date.
func (r *statsRepository) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, id := range s.contributionOrder {
		amount, err := decimal.NewFromString(s.contributions[id].Amount)
		if err != nil {
			return nil, err
		}
		total = total.Add(amount)
	}

	var next time.Time
	for _, id := range s.payoutOrder {
		p := s.payouts[id]
		if p.Status != domain.PayoutScheduled {
			continue
		}
		if next.IsZero() || p.PayoutDate.Before(next) {
			next = p.PayoutDate
		}
	}
	nextPayout := ""
	if !next.IsZero() {
		nextPayout = next.Format("Jan 2, 2006")
	}

	return &domain.DashboardStats{
		TotalChamas:        len(s.chamas),
		TotalMembers:       len(s.members),
		TotalContributions: total.StringFixed(2),
		NextPayout:         nextPayout,
	}, nil
}
