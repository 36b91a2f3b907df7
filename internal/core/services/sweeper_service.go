package services

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"smartchama/internal/adapters/persistence/repositories"
	"smartchama/internal/config"
)

// SweeperService runs the scheduled background jobs: a daily overdue
// contribution sweep over every user, and a periodic expiry pass over
// payment requests that never received a gateway callback.
type SweeperService struct {
	cfg     config.SweepConfig
	cron    *cron.Cron
	users   repositories.UserRepository
	overdue *OverdueService
	mpesa   *MpesaService
	log     *logrus.Logger
}

// NewSweeperService creates a new sweeper service
func NewSweeperService(
	cfg config.SweepConfig,
	users repositories.UserRepository,
	overdue *OverdueService,
	mpesa *MpesaService,
	log *logrus.Logger,
) *SweeperService {
	return &SweeperService{
		cfg:     cfg,
		cron:    cron.New(),
		users:   users,
		overdue: overdue,
		mpesa:   mpesa,
		log:     log,
	}
}

// Start registers the jobs and begins the schedule
func (s *SweeperService) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.OverdueSpec, s.runOverdueSweep); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.cfg.ExpirySpec, s.runExpirySweep); err != nil {
		return err
	}
	s.cron.Start()
	s.log.WithFields(logrus.Fields{
		"overdue_spec": s.cfg.OverdueSpec,
		"expiry_spec":  s.cfg.ExpirySpec,
	}).Info("background sweeper started")
	return nil
}

// Stop halts the schedule and waits for any running job to finish
func (s *SweeperService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("background sweeper stopped")
}

// runOverdueSweep checks every user's contribution recency and issues
// reminder notifications to those who have fallen behind
func (s *SweeperService) runOverdueSweep() {
	ctx := context.Background()

	users, err := s.users.List(ctx)
	if err != nil {
		s.log.WithError(err).Error("overdue sweep: listing users failed")
		return
	}

	flagged := 0
	for _, u := range users {
		isOverdue, err := s.overdue.Check(ctx, u.ID)
		if err != nil {
			s.log.WithError(err).WithField("user_id", u.ID).Error("overdue sweep: check failed")
			continue
		}
		if isOverdue {
			flagged++
		}
	}

	s.log.WithFields(logrus.Fields{
		"users":   len(users),
		"flagged": flagged,
	}).Info("overdue sweep complete")
}

// runExpirySweep fails out STK pushes whose callbacks never arrived
func (s *SweeperService) runExpirySweep() {
	expired, err := s.mpesa.ExpirePending(context.Background(), s.cfg.PaymentTTL)
	if err != nil {
		s.log.WithError(err).Error("payment expiry sweep failed")
		return
	}
	if expired > 0 {
		s.log.WithField("expired", expired).Info("payment expiry sweep complete")
	}
}
