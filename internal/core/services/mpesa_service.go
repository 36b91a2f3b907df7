package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"smartchama/internal/adapters/persistence/repositories"
	"smartchama/internal/config"
	"smartchama/internal/core/domain"
)

// MpesaService talks to the Daraja payment gateway and owns the STK push
// lifecycle: initiation creates a pending contribution plus a tracking
// record, the callback (or the expiry sweep) resolves it.
type MpesaService struct {
	cfg           config.MpesaConfig
	client        *http.Client
	members       repositories.MemberRepository
	contributions repositories.ContributionRepository
	notifications repositories.NotificationRepository
	payments      repositories.PaymentRequestRepository
	log           *logrus.Logger
}

// NewMpesaService creates a new M-Pesa service
func NewMpesaService(
	cfg config.MpesaConfig,
	members repositories.MemberRepository,
	contributions repositories.ContributionRepository,
	notifications repositories.NotificationRepository,
	payments repositories.PaymentRequestRepository,
	log *logrus.Logger,
) *MpesaService {
	return &MpesaService{
		cfg:           cfg,
		client:        &http.Client{Timeout: cfg.Timeout},
		members:       members,
		contributions: contributions,
		notifications: notifications,
		payments:      payments,
		log:           log,
	}
}

// STKPushInput represents a push-payment initiation request
type STKPushInput struct {
	Amount      string
	PhoneNumber string
	MemberID    int
	ChamaID     int
}

// STKPushResponse is the gateway's acknowledgement, passed through to the
// client verbatim
type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

// tokenResponse is the gateway's OAuth response
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// STKCallback is the payment confirmation the gateway posts back
type STKCallback struct {
	MerchantRequestID string `json:"MerchantRequestID"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
	ResultCode        int    `json:"ResultCode"`
	ResultDesc        string `json:"ResultDesc"`
}

// InitiatePush sends an STK push to the subscriber's phone. On gateway
// acceptance it records a pending contribution, a payment tracking record
// and an informational notification for the member's user.
func (s *MpesaService) InitiatePush(ctx context.Context, input *STKPushInput) (*STKPushResponse, error) {
	member, err := s.members.GetByID(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}

	token, err := s.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	timestamp := time.Now().Format("20060102150405")
	gatewayPassword := base64.StdEncoding.EncodeToString(
		[]byte(s.cfg.ShortCode + s.cfg.Passkey + timestamp))

	payload := map[string]interface{}{
		"BusinessShortCode": s.cfg.ShortCode,
		"Password":          gatewayPassword,
		"Timestamp":         timestamp,
		"TransactionType":   "CustomerPayBillOnline",
		"Amount":            input.Amount,
		"PartyA":            input.PhoneNumber,
		"PartyB":            s.cfg.ShortCode,
		"PhoneNumber":       input.PhoneNumber,
		"CallBackURL":       s.cfg.CallbackURL,
		"AccountReference":  fmt.Sprintf("CHAMA-%d-%s", input.ChamaID, uuid.NewString()[:8]),
		"TransactionDesc":   "Chama Contribution",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.cfg.BaseURL+"/mpesa/stkpush/v1/processrequest", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, s.transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", domain.ErrGatewayRejected, string(body))
	}

	var pushResp STKPushResponse
	if err := json.Unmarshal(body, &pushResp); err != nil {
		return nil, fmt.Errorf("%w: malformed gateway response", domain.ErrGatewayRejected)
	}
	if pushResp.ResponseCode != "0" {
		return nil, fmt.Errorf("%w: %s", domain.ErrGatewayRejected, pushResp.ResponseDescription)
	}

	contribution, err := s.contributions.Create(ctx, &domain.InsertContribution{
		MemberID: input.MemberID,
		ChamaID:  input.ChamaID,
		Amount:   input.Amount,
		Status:   domain.ContributionPending,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.payments.Create(ctx, &domain.PaymentRequest{
		CheckoutRequestID: pushResp.CheckoutRequestID,
		MerchantRequestID: pushResp.MerchantRequestID,
		ContributionID:    contribution.ID,
	}); err != nil {
		return nil, err
	}

	if _, err := s.notifications.Create(ctx, &domain.InsertNotification{
		UserID:  member.UserID,
		Title:   "M-Pesa Payment Initiated",
		Message: fmt.Sprintf("Payment request for KSh %s has been sent to your phone.", input.Amount),
		Type:    domain.NotificationInfo,
	}); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"checkout_request_id": pushResp.CheckoutRequestID,
		"contribution_id":     contribution.ID,
	}).Info("stk push initiated")

	return &pushResp, nil
}

// HandleCallback resolves a pending payment from the gateway's confirmation.
// ResultCode 0 completes the contribution, anything else fails it. Callbacks
// for already-resolved payments are ignored.
func (s *MpesaService) HandleCallback(ctx context.Context, cb *STKCallback) error {
	payment, err := s.payments.GetByCheckoutID(ctx, cb.CheckoutRequestID)
	if err != nil {
		return err
	}
	if payment.Status != domain.PaymentPending {
		return nil
	}

	member, userID := s.contributionUser(ctx, payment.ContributionID)

	if cb.ResultCode == 0 {
		if err := s.resolve(ctx, payment, domain.PaymentCompleted, domain.ContributionCompleted); err != nil {
			return err
		}
		if member {
			_, _ = s.notifications.Create(ctx, &domain.InsertNotification{
				UserID:  userID,
				Title:   "Payment Received",
				Message: "Your M-Pesa contribution has been confirmed.",
				Type:    domain.NotificationSuccess,
			})
		}
		return nil
	}

	if err := s.resolve(ctx, payment, domain.PaymentFailed, domain.ContributionFailed); err != nil {
		return err
	}
	if member {
		_, _ = s.notifications.Create(ctx, &domain.InsertNotification{
			UserID:  userID,
			Title:   "Payment Failed",
			Message: fmt.Sprintf("Your M-Pesa payment was not completed: %s", cb.ResultDesc),
			Type:    domain.NotificationError,
		})
	}
	return nil
}

// ExpirePending marks payments pending longer than ttl as expired and fails
// their contributions. Called by the background sweeper.
func (s *MpesaService) ExpirePending(ctx context.Context, ttl time.Duration) (int, error) {
	stale, err := s.payments.ListPendingBefore(ctx, time.Now().Add(-ttl))
	if err != nil {
		return 0, err
	}
	for _, p := range stale {
		if err := s.resolve(ctx, p, domain.PaymentExpired, domain.ContributionFailed); err != nil {
			return 0, err
		}
		s.log.WithField("checkout_request_id", p.CheckoutRequestID).Warn("stk push expired without callback")
	}
	return len(stale), nil
}

// resolve transitions a payment request and its contribution together
func (s *MpesaService) resolve(ctx context.Context, p *domain.PaymentRequest, paymentStatus, contributionStatus string) error {
	if err := s.payments.SetStatus(ctx, p.ID, paymentStatus); err != nil {
		return err
	}
	_, err := s.contributions.Update(ctx, p.ContributionID, &domain.UpdateContribution{
		Status: &contributionStatus,
	})
	return err
}

// contributionUser resolves the user behind a contribution's member, for
// notification targeting. Missing rows just suppress the notification.
func (s *MpesaService) contributionUser(ctx context.Context, contributionID int) (bool, int) {
	c, err := s.contributions.GetByID(ctx, contributionID)
	if err != nil {
		return false, 0
	}
	m, err := s.members.GetByID(ctx, c.MemberID)
	if err != nil {
		return false, 0
	}
	return true, m.UserID
}

// accessToken fetches an OAuth bearer token with client credentials
func (s *MpesaService) accessToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.cfg.BaseURL+"/oauth/v1/generate?grant_type=client_credentials", nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(s.cfg.ConsumerKey, s.cfg.ConsumerSecret)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", s.transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s", domain.ErrGatewayRejected, string(body))
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("%w: malformed token response", domain.ErrGatewayRejected)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", domain.ErrGatewayRejected)
	}
	return tok.AccessToken, nil
}

// transportError classifies a client error: deadline overruns get their own
// error kind so operators can tell a slow gateway from a rejecting one.
func (s *MpesaService) transportError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Errorf("%w: %v", domain.ErrGatewayTimeout, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrGatewayRejected, err)
}
