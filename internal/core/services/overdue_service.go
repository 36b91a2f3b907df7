package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"smartchama/internal/adapters/persistence/repositories"
	"smartchama/internal/core/domain"
)

// overdueAfter is how long a member may go without a completed contribution
// before they are considered overdue.
const overdueAfter = 30 * 24 * time.Hour

// OverdueService decides whether a user is behind on contributions and
// nudges them with a warning notification when they are.
type OverdueService struct {
	members       repositories.MemberRepository
	contributions repositories.ContributionRepository
	notifications repositories.NotificationRepository
	log           *logrus.Logger
	now           func() time.Time
}

// NewOverdueService creates a new overdue service
func NewOverdueService(
	members repositories.MemberRepository,
	contributions repositories.ContributionRepository,
	notifications repositories.NotificationRepository,
	log *logrus.Logger,
) *OverdueService {
	return &OverdueService{
		members:       members,
		contributions: contributions,
		notifications: notifications,
		log:           log,
		now:           time.Now,
	}
}

// Check reports whether the user's most recent completed contribution across
// all memberships is strictly older than 30 days (or absent entirely). A
// contribution exactly 30 days old is not yet overdue. When overdue, exactly
// one warning notification is created per call; there is no deduplication
// against earlier reminders.
func (s *OverdueService) Check(ctx context.Context, userID int) (bool, error) {
	memberships, err := s.members.ListByUser(ctx, userID)
	if err != nil {
		return false, err
	}

	var latest time.Time
	for _, m := range memberships {
		contributions, err := s.contributions.ListByMember(ctx, m.ID)
		if err != nil {
			return false, err
		}
		for _, c := range contributions {
			if c.Status != domain.ContributionCompleted {
				continue
			}
			if c.ContributionDate.After(latest) {
				latest = c.ContributionDate
			}
		}
	}

	threshold := s.now().Add(-overdueAfter)
	overdue := latest.IsZero() || latest.Before(threshold)
	if !overdue {
		return false, nil
	}

	_, err = s.notifications.Create(ctx, &domain.InsertNotification{
		UserID:  userID,
		Title:   "Contribution Reminder",
		Message: "Reminder: Please make your monthly contribution.",
		Type:    domain.NotificationWarning,
	})
	if err != nil {
		return true, err
	}

	s.log.WithField("user_id", userID).Debug("overdue contribution reminder created")
	return true, nil
}
