package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartchama/internal/adapters/http/middleware"
	"smartchama/internal/adapters/http/routes"
	"smartchama/internal/adapters/persistence/memory"
	"smartchama/internal/config"
	"smartchama/internal/logger"
	"smartchama/internal/pkg/idgen"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		AppMode: "dev",
		Port:    "3000",
		JWT: config.JWTConfig{
			Secret:          "test-secret",
			AccessTokenMins: 15,
		},
		Cookie: config.CookieConfig{SameSite: "lax"},
		Sweep: config.SweepConfig{
			OverdueSpec: "30 8 * * *",
			ExpirySpec:  "*/15 * * * *",
			PaymentTTL:  2 * time.Hour,
		},
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	store := memory.NewStore(idgen.NewCounter(1))
	routes.Setup(app, store, cfg, logger.New(io.Discard, false))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestSignupLoginAndMe(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/signup", fiber.Map{
		"name":     "Mary Wanjiku",
		"email":    "mary@example.com",
		"password": "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created map[string]interface{}
	decode(t, resp, &created)
	assert.Equal(t, "Mary Wanjiku", created["name"])
	assert.Equal(t, "user", created["role"])
	assert.NotContains(t, created, "password")

	// duplicate signup
	resp = doJSON(t, app, fiber.MethodPost, "/api/auth/signup", fiber.Map{
		"name": "Mary Again", "email": "mary@example.com", "password": "password456",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// wrong role
	resp = doJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email": "mary@example.com", "password": "password123", "role": "admin",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// wrong password
	resp = doJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email": "mary@example.com", "password": "nope",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// success sets the auth cookie
	resp = doJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email": "mary@example.com", "password": "password123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var token string
	for _, c := range resp.Cookies() {
		if c.Name == "access_token" {
			token = c.Value
		}
	}
	require.NotEmpty(t, token)

	// the cookie authenticates /api/auth/me
	req := httptest.NewRequest(fiber.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	meResp, err := app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, meResp.StatusCode)

	var me map[string]interface{}
	decode(t, meResp, &me)
	assert.Equal(t, "mary@example.com", me["email"])

	// no cookie, no access
	resp = doJSON(t, app, fiber.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestChamaCRUD(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/chamas", fiber.Map{
		"name":               "Test",
		"contributionAmount": "1000.00",
		"description":        "Weekly savers",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var chama map[string]interface{}
	decode(t, resp, &chama)
	id := int(chama["id"].(float64))
	require.Positive(t, id)

	// list preserves insertion order and is never null
	resp = doJSON(t, app, fiber.MethodGet, "/api/chamas", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []map[string]interface{}
	decode(t, resp, &list)
	require.Len(t, list, 1)

	// partial update leaves other fields alone
	resp = doJSON(t, app, fiber.MethodPut, fmt.Sprintf("/api/chamas/%d", id), fiber.Map{
		"name": "Renamed",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var updated map[string]interface{}
	decode(t, resp, &updated)
	assert.Equal(t, "Renamed", updated["name"])
	assert.Equal(t, "1000.00", updated["contributionAmount"])
	assert.Equal(t, "Weekly savers", updated["description"])

	// bad amount rejected
	resp = doJSON(t, app, fiber.MethodPut, fmt.Sprintf("/api/chamas/%d", id), fiber.Map{
		"contributionAmount": "not-a-number",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/chamas/%d", id), nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	// second delete and reads of the gone record 404
	resp = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/chamas/%d", id), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/chamas/%d", id), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// validation: name and amount are required
	resp = doJSON(t, app, fiber.MethodPost, "/api/chamas", fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// createScenario signs up a user and builds chama -> member, returning ids
func createScenario(t *testing.T, app *fiber.App) (userID, chamaID, memberID int) {
	t.Helper()

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/signup", fiber.Map{
		"name": "John Kariuki", "email": "john@example.com", "password": "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var user map[string]interface{}
	decode(t, resp, &user)
	userID = int(user["id"].(float64))

	resp = doJSON(t, app, fiber.MethodPost, "/api/chamas", fiber.Map{
		"name": "Test", "contributionAmount": "1000.00",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var chama map[string]interface{}
	decode(t, resp, &chama)
	chamaID = int(chama["id"].(float64))

	resp = doJSON(t, app, fiber.MethodPost, "/api/members", fiber.Map{
		"userId": userID, "chamaId": chamaID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var member map[string]interface{}
	decode(t, resp, &member)
	memberID = int(member["id"].(float64))
	assert.Equal(t, true, member["isActive"])

	return userID, chamaID, memberID
}

func TestContributionComposedView(t *testing.T) {
	app := newTestApp(t)
	_, chamaID, memberID := createScenario(t, app)

	resp := doJSON(t, app, fiber.MethodPost, "/api/contributions", fiber.Map{
		"memberId": memberID, "chamaId": chamaID, "amount": "1000.00", "status": "completed",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/contributions", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var views []map[string]interface{}
	decode(t, resp, &views)
	require.Len(t, views, 1)

	member := views[0]["member"].(map[string]interface{})
	user := member["user"].(map[string]interface{})
	chama := views[0]["chama"].(map[string]interface{})

	assert.Equal(t, "John Kariuki", user["name"])
	assert.Equal(t, "Test", chama["name"])
	assert.Equal(t, "completed", views[0]["status"])
	assert.NotContains(t, user, "password")
}

func TestContributionWithoutStatusIsCompleted(t *testing.T) {
	app := newTestApp(t)
	userID, chamaID, memberID := createScenario(t, app)

	resp := doJSON(t, app, fiber.MethodPost, "/api/contributions", fiber.Map{
		"memberId": memberID, "chamaId": chamaID, "amount": "1000.00",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var c map[string]interface{}
	decode(t, resp, &c)
	require.Equal(t, "completed", c["status"])

	// a manual record counts for the recency check straight away
	resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/contributions/overdue/%d", userID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var overdue map[string]bool
	decode(t, resp, &overdue)
	assert.False(t, overdue["isOverdue"])
}

func TestOrphanedMembersReturn500(t *testing.T) {
	app := newTestApp(t)
	_, chamaID, _ := createScenario(t, app)

	resp := doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/chamas/%d", chamaID), nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/members", nil)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Contains(t, body["message"], "missing chama")
}

func TestChamaScopedLists(t *testing.T) {
	app := newTestApp(t)
	_, chamaID, memberID := createScenario(t, app)

	resp := doJSON(t, app, fiber.MethodPost, "/api/contributions", fiber.Map{
		"memberId": memberID, "chamaId": chamaID, "amount": "500.00",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/chamas/%d/members", chamaID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var members []map[string]interface{}
	decode(t, resp, &members)
	require.Len(t, members, 1)
	assert.Equal(t, "John Kariuki", members[0]["user"].(map[string]interface{})["name"])

	resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/chamas/%d/contributions", chamaID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var contributions []map[string]interface{}
	decode(t, resp, &contributions)
	require.Len(t, contributions, 1)
	assert.Equal(t, "500.00", contributions[0]["amount"])

	resp = doJSON(t, app, fiber.MethodGet, "/api/chamas/999/members", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPayoutAndPenaltyCRUD(t *testing.T) {
	app := newTestApp(t)
	_, chamaID, memberID := createScenario(t, app)

	resp := doJSON(t, app, fiber.MethodPost, "/api/payouts", fiber.Map{
		"chamaId": chamaID, "memberId": memberID, "amount": "12000.00",
		"payoutDate": "2026-12-15T00:00:00Z",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var payout map[string]interface{}
	decode(t, resp, &payout)
	assert.Equal(t, "scheduled", payout["status"])

	// payoutDate is required
	resp = doJSON(t, app, fiber.MethodPost, "/api/payouts", fiber.Map{
		"chamaId": chamaID, "memberId": memberID, "amount": "12000.00",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/penalties", fiber.Map{
		"memberId": memberID, "chamaId": chamaID, "amount": "200.00", "reason": "Late contribution",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var penalty map[string]interface{}
	decode(t, resp, &penalty)
	assert.Equal(t, "pending", penalty["status"])

	penaltyID := int(penalty["id"].(float64))
	resp = doJSON(t, app, fiber.MethodPut, fmt.Sprintf("/api/penalties/%d", penaltyID), fiber.Map{
		"status": "paid",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &penalty)
	assert.Equal(t, "paid", penalty["status"])
	assert.Equal(t, "Late contribution", penalty["reason"])

	// composed list views
	resp = doJSON(t, app, fiber.MethodGet, "/api/payouts", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var payouts []map[string]interface{}
	decode(t, resp, &payouts)
	require.Len(t, payouts, 1)
	assert.Equal(t, "Test", payouts[0]["chama"].(map[string]interface{})["name"])
}

func TestNotificationRoutes(t *testing.T) {
	app := newTestApp(t)
	userID, _, _ := createScenario(t, app)

	resp := doJSON(t, app, fiber.MethodPost, "/api/notifications", fiber.Map{
		"userId": userID, "title": "Welcome", "message": "Karibu!",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var notification map[string]interface{}
	decode(t, resp, &notification)
	assert.Equal(t, "info", notification["type"])
	assert.Equal(t, false, notification["isRead"])

	notificationID := int(notification["id"].(float64))

	resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/notifications/%d", userID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []map[string]interface{}
	decode(t, resp, &list)
	require.Len(t, list, 1)

	resp = doJSON(t, app, fiber.MethodPut, fmt.Sprintf("/api/notifications/%d/read", notificationID), nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPut, "/api/notifications/999/read", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestOverdueEndpoint(t *testing.T) {
	app := newTestApp(t)
	userID, chamaID, memberID := createScenario(t, app)

	// no completed contributions yet: overdue, and a warning lands
	resp := doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/contributions/overdue/%d", userID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var verdict map[string]bool
	decode(t, resp, &verdict)
	assert.True(t, verdict["isOverdue"])

	resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/notifications/%d", userID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var notifications []map[string]interface{}
	decode(t, resp, &notifications)
	require.Len(t, notifications, 1)
	assert.Equal(t, "warning", notifications[0]["type"])

	// a fresh completed contribution clears the flag
	resp = doJSON(t, app, fiber.MethodPost, "/api/contributions", fiber.Map{
		"memberId": memberID, "chamaId": chamaID, "amount": "1000.00", "status": "completed",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/contributions/overdue/%d", userID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &verdict)
	assert.False(t, verdict["isOverdue"])
}

func TestDashboardStatsEndpoint(t *testing.T) {
	app := newTestApp(t)
	_, chamaID, memberID := createScenario(t, app)

	resp := doJSON(t, app, fiber.MethodPost, "/api/contributions", fiber.Map{
		"memberId": memberID, "chamaId": chamaID, "amount": "1000.10", "status": "completed",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = doJSON(t, app, fiber.MethodPost, "/api/contributions", fiber.Map{
		"memberId": memberID, "chamaId": chamaID, "amount": "2000.20",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "private, max-age=30", resp.Header.Get("Cache-Control"))

	var stats map[string]interface{}
	decode(t, resp, &stats)
	assert.Equal(t, float64(1), stats["totalChamas"])
	assert.Equal(t, float64(1), stats["totalMembers"])
	assert.Equal(t, "3000.30", stats["totalContributions"])
	assert.Equal(t, "", stats["nextPayout"])
}

func TestSTKPushValidation(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/mpesa/stkpush", fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/mpesa/stkpush", fiber.Map{
		"amount": "100.00", "phoneNumber": "254700000000",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// callback for an unknown push
	resp = doJSON(t, app, fiber.MethodPost, "/api/mpesa/callback", fiber.Map{
		"Body": fiber.Map{"stkCallback": fiber.Map{
			"CheckoutRequestID": "no-such-push", "ResultCode": 0,
		}},
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/health", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var health map[string]interface{}
	decode(t, resp, &health)
	assert.Equal(t, "ok", health["status"])

	resp = doJSON(t, app, fiber.MethodGet, "/", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
