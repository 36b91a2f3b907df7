package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartchama/internal/adapters/persistence/memory"
	"smartchama/internal/adapters/persistence/repositories"
	"smartchama/internal/config"
	"smartchama/internal/core/domain"
	"smartchama/internal/logger"
	"smartchama/internal/pkg/idgen"
)

type mpesaFixture struct {
	svc           *MpesaService
	member        *domain.Member
	user          *domain.User
	chama         *domain.Chama
	contributions repositories.ContributionRepository
	notifications repositories.NotificationRepository
	payments      repositories.PaymentRequestRepository
}

// newGateway fakes the Daraja OAuth and STK push endpoints
func newGateway(t *testing.T, stkStatus int, stkBody string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/v1/generate":
			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "ck", user)
			assert.Equal(t, "cs", pass)
			_, _ = w.Write([]byte(`{"access_token":"tok","expires_in":"3599"}`))
		case "/mpesa/stkpush/v1/processrequest":
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			var payload map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "174379", payload["BusinessShortCode"])
			assert.NotEmpty(t, payload["Password"])
			w.WriteHeader(stkStatus)
			_, _ = w.Write([]byte(stkBody))
		default:
			t.Fatalf("unexpected gateway path %s", r.URL.Path)
		}
	}))
}

func newMpesaFixture(t *testing.T, baseURL string, timeout time.Duration) *mpesaFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore(idgen.NewCounter(1))

	users := memory.NewUserRepository(store)
	chamas := memory.NewChamaRepository(store)
	members := memory.NewMemberRepository(store)
	contributions := memory.NewContributionRepository(store)
	notifications := memory.NewNotificationRepository(store)
	payments := memory.NewPaymentRequestRepository(store)

	user, err := users.Create(ctx, &domain.InsertUser{Name: "Mary", Email: "mary@example.com", Password: "x"})
	require.NoError(t, err)
	chama, err := chamas.Create(ctx, &domain.InsertChama{Name: "Jua Kali", ContributionAmount: "5000.00"})
	require.NoError(t, err)
	member, err := members.Create(ctx, &domain.InsertMember{UserID: user.ID, ChamaID: chama.ID})
	require.NoError(t, err)

	cfg := config.MpesaConfig{
		BaseURL:        baseURL,
		ShortCode:      "174379",
		Passkey:        "passkey",
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
		CallbackURL:    "https://example.com/api/mpesa/callback",
		Timeout:        timeout,
	}
	svc := NewMpesaService(cfg, members, contributions, notifications, payments, logger.New(io.Discard, false))

	return &mpesaFixture{
		svc:           svc,
		member:        member,
		user:          user,
		chama:         chama,
		contributions: contributions,
		notifications: notifications,
		payments:      payments,
	}
}

func TestInitiatePushSuccess(t *testing.T) {
	gateway := newGateway(t, http.StatusOK,
		`{"MerchantRequestID":"mr-1","CheckoutRequestID":"ws_CO_1","ResponseCode":"0","ResponseDescription":"Success","CustomerMessage":"ok"}`)
	defer gateway.Close()

	f := newMpesaFixture(t, gateway.URL, 2*time.Second)
	ctx := context.Background()

	resp, err := f.svc.InitiatePush(ctx, &STKPushInput{
		Amount:      "5000.00",
		PhoneNumber: "254712345678",
		MemberID:    f.member.ID,
		ChamaID:     f.chama.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "ws_CO_1", resp.CheckoutRequestID)

	// a pending contribution was recorded
	contributions, err := f.contributions.ListByMember(ctx, f.member.ID)
	require.NoError(t, err)
	require.Len(t, contributions, 1)
	assert.Equal(t, domain.ContributionPending, contributions[0].Status)
	assert.Equal(t, "5000.00", contributions[0].Amount)

	// with a pending tracking record keyed by the checkout id
	payment, err := f.payments.GetByCheckoutID(ctx, "ws_CO_1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, payment.Status)
	assert.Equal(t, contributions[0].ID, payment.ContributionID)

	// and the member's user was notified
	notifications, err := f.notifications.ListByUser(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, domain.NotificationInfo, notifications[0].Type)
}

func TestInitiatePushUnknownMember(t *testing.T) {
	gateway := newGateway(t, http.StatusOK, `{}`)
	defer gateway.Close()

	f := newMpesaFixture(t, gateway.URL, 2*time.Second)

	_, err := f.svc.InitiatePush(context.Background(), &STKPushInput{
		Amount: "100.00", PhoneNumber: "254700000000", MemberID: 999, ChamaID: f.chama.ID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInitiatePushGatewayRejected(t *testing.T) {
	gateway := newGateway(t, http.StatusOK,
		`{"ResponseCode":"1","ResponseDescription":"Insufficient funds"}`)
	defer gateway.Close()

	f := newMpesaFixture(t, gateway.URL, 2*time.Second)
	ctx := context.Background()

	_, err := f.svc.InitiatePush(ctx, &STKPushInput{
		Amount: "100.00", PhoneNumber: "254700000000", MemberID: f.member.ID, ChamaID: f.chama.ID,
	})
	assert.ErrorIs(t, err, domain.ErrGatewayRejected)

	// nothing recorded on rejection
	contributions, err := f.contributions.ListByMember(ctx, f.member.ID)
	require.NoError(t, err)
	assert.Empty(t, contributions)
}

func TestInitiatePushGatewayTimeout(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer gateway.Close()

	f := newMpesaFixture(t, gateway.URL, 50*time.Millisecond)

	_, err := f.svc.InitiatePush(context.Background(), &STKPushInput{
		Amount: "100.00", PhoneNumber: "254700000000", MemberID: f.member.ID, ChamaID: f.chama.ID,
	})
	assert.ErrorIs(t, err, domain.ErrGatewayTimeout)
}

func pushFixture(t *testing.T) *mpesaFixture {
	t.Helper()
	gateway := newGateway(t, http.StatusOK,
		`{"MerchantRequestID":"mr-1","CheckoutRequestID":"ws_CO_1","ResponseCode":"0","ResponseDescription":"Success"}`)
	t.Cleanup(gateway.Close)

	f := newMpesaFixture(t, gateway.URL, 2*time.Second)
	_, err := f.svc.InitiatePush(context.Background(), &STKPushInput{
		Amount: "5000.00", PhoneNumber: "254712345678", MemberID: f.member.ID, ChamaID: f.chama.ID,
	})
	require.NoError(t, err)
	return f
}

func TestCallbackCompletesPayment(t *testing.T) {
	f := pushFixture(t)
	ctx := context.Background()

	err := f.svc.HandleCallback(ctx, &STKCallback{
		CheckoutRequestID: "ws_CO_1", ResultCode: 0, ResultDesc: "Success",
	})
	require.NoError(t, err)

	payment, err := f.payments.GetByCheckoutID(ctx, "ws_CO_1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, payment.Status)

	contribution, err := f.contributions.GetByID(ctx, payment.ContributionID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContributionCompleted, contribution.Status)

	notifications, err := f.notifications.ListByUser(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 2) // initiation + confirmation
	assert.Equal(t, domain.NotificationSuccess, notifications[0].Type)
}

func TestCallbackFailsPayment(t *testing.T) {
	f := pushFixture(t)
	ctx := context.Background()

	err := f.svc.HandleCallback(ctx, &STKCallback{
		CheckoutRequestID: "ws_CO_1", ResultCode: 1032, ResultDesc: "Request cancelled by user",
	})
	require.NoError(t, err)

	payment, err := f.payments.GetByCheckoutID(ctx, "ws_CO_1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, payment.Status)

	contribution, err := f.contributions.GetByID(ctx, payment.ContributionID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContributionFailed, contribution.Status)
}

func TestCallbackUnknownCheckoutID(t *testing.T) {
	f := pushFixture(t)

	err := f.svc.HandleCallback(context.Background(), &STKCallback{
		CheckoutRequestID: "no-such-push", ResultCode: 0,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCallbackIsIdempotent(t *testing.T) {
	f := pushFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.HandleCallback(ctx, &STKCallback{CheckoutRequestID: "ws_CO_1", ResultCode: 0}))
	// a late duplicate with a different verdict must not flip the state
	require.NoError(t, f.svc.HandleCallback(ctx, &STKCallback{CheckoutRequestID: "ws_CO_1", ResultCode: 1}))

	payment, err := f.payments.GetByCheckoutID(ctx, "ws_CO_1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, payment.Status)
}

func TestExpirePending(t *testing.T) {
	f := pushFixture(t)
	ctx := context.Background()

	// a negative ttl puts the cutoff in the future, so the fresh push is stale
	expired, err := f.svc.ExpirePending(ctx, -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	payment, err := f.payments.GetByCheckoutID(ctx, "ws_CO_1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentExpired, payment.Status)

	contribution, err := f.contributions.GetByID(ctx, payment.ContributionID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContributionFailed, contribution.Status)

	// already resolved, nothing further to expire
	expired, err = f.svc.ExpirePending(ctx, -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 0, expired)
}
