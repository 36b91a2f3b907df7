package config

import (
	"context"

	"github.com/sirupsen/logrus"

	"smartchama/internal/adapters/persistence/repositories"
	"smartchama/internal/core/domain"
	"smartchama/internal/pkg/password"
)

// Seeder inserts the fixed development dataset at startup: one admin, two
// regular users, one chama, two memberships and one completed contribution.
// The store is process-memory only, so this runs on every boot.
type Seeder struct {
	users         repositories.UserRepository
	chamas        repositories.ChamaRepository
	members       repositories.MemberRepository
	contributions repositories.ContributionRepository
	log           *logrus.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(
	users repositories.UserRepository,
	chamas repositories.ChamaRepository,
	members repositories.MemberRepository,
	contributions repositories.ContributionRepository,
	log *logrus.Logger,
) *Seeder {
	return &Seeder{
		users:         users,
		chamas:        chamas,
		members:       members,
		contributions: contributions,
		log:           log,
	}
}

// Run executes the seeder
func (s *Seeder) Run(ctx context.Context) error {
	hashed, err := password.Hash("password123")
	if err != nil {
		return err
	}

	admin, err := s.users.Create(ctx, &domain.InsertUser{
		Name:     "Admin User",
		Email:    "admin@smartchama.co.ke",
		Password: hashed,
		Role:     domain.RoleAdmin,
		Phone:    "+254700123456",
	})
	if err != nil {
		return err
	}

	mary, err := s.users.Create(ctx, &domain.InsertUser{
		Name:     "Mary Wanjiku",
		Email:    "mary@example.com",
		Password: hashed,
		Role:     domain.RoleUser,
		Phone:    "+254700123457",
	})
	if err != nil {
		return err
	}

	john, err := s.users.Create(ctx, &domain.InsertUser{
		Name:     "John Kariuki",
		Email:    "john@example.com",
		Password: hashed,
		Role:     domain.RoleUser,
		Phone:    "+254700123458",
	})
	if err != nil {
		return err
	}

	chama, err := s.chamas.Create(ctx, &domain.InsertChama{
		Name:               "Jua Kali Chama",
		Description:        "A savings group for small business owners",
		ContributionAmount: "5000.00",
		MeetingSchedule:    "Monthly",
		CreatedBy:          admin.ID,
	})
	if err != nil {
		return err
	}

	member1, err := s.members.Create(ctx, &domain.InsertMember{UserID: mary.ID, ChamaID: chama.ID})
	if err != nil {
		return err
	}
	if _, err := s.members.Create(ctx, &domain.InsertMember{UserID: john.ID, ChamaID: chama.ID}); err != nil {
		return err
	}

	if _, err := s.contributions.Create(ctx, &domain.InsertContribution{
		MemberID: member1.ID,
		ChamaID:  chama.ID,
		Amount:   "5000.00",
		Status:   domain.ContributionCompleted,
	}); err != nil {
		return err
	}

	s.log.WithField("chama", chama.Name).Info("seed data loaded")
	return nil
}
