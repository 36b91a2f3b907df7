package handlers

import (
	"encoding/json"

	"smartchama/internal/core/services"
	"smartchama/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MpesaHandler handles payment gateway endpoints
type MpesaHandler struct {
	mpesaService *services.MpesaService
}

// NewMpesaHandler creates a new mpesa handler
func NewMpesaHandler(mpesaService *services.MpesaService) *MpesaHandler {
	return &MpesaHandler{mpesaService: mpesaService}
}

// STKPushRequest represents a push-payment request body. Amount tolerates
// both string and numeric JSON encodings.
type STKPushRequest struct {
	Amount      json.Number `json:"amount"`
	PhoneNumber string      `json:"phoneNumber"`
	MemberID    int         `json:"memberId"`
	ChamaID     int         `json:"chamaId"`
}

// STKPush initiates a push payment on the subscriber's phone
// @Summary Initiate M-Pesa STK push
// @Tags Mpesa
// @Accept json
// @Produce json
// @Param body body STKPushRequest true "Payment data"
// @Success 200 {object} services.STKPushResponse
// @Failure 400 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /mpesa/stkpush [post]
func (h *MpesaHandler) STKPush(c *fiber.Ctx) error {
	var req STKPushRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Amount.String() == "" || req.PhoneNumber == "" || req.MemberID <= 0 || req.ChamaID <= 0 {
		return response.BadRequest(c, "amount, phoneNumber, memberId and chamaId are required")
	}

	result, err := h.mpesaService.InitiatePush(c.Context(), &services.STKPushInput{
		Amount:      req.Amount.String(),
		PhoneNumber: req.PhoneNumber,
		MemberID:    req.MemberID,
		ChamaID:     req.ChamaID,
	})
	if err != nil {
		return handleError(c, err)
	}
	return response.JSON(c, result)
}

// callbackEnvelope mirrors the gateway's nested callback body
type callbackEnvelope struct {
	Body struct {
		StkCallback services.STKCallback `json:"stkCallback"`
	} `json:"Body"`
}

// Callback receives the gateway's payment confirmation webhook
// @Summary M-Pesa payment callback
// @Tags Mpesa
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Message
// @Router /mpesa/callback [post]
func (h *MpesaHandler) Callback(c *fiber.Ctx) error {
	var envelope callbackEnvelope
	if err := c.BodyParser(&envelope); err != nil {
		return response.BadRequest(c, "Invalid callback body")
	}
	cb := envelope.Body.StkCallback
	if cb.CheckoutRequestID == "" {
		return response.BadRequest(c, "CheckoutRequestID is required")
	}

	if err := h.mpesaService.HandleCallback(c.Context(), &cb); err != nil {
		return handleError(c, err)
	}

	// Daraja expects this acknowledgement shape
	return c.JSON(fiber.Map{
		"ResultCode": 0,
		"ResultDesc": "Accepted",
	})
}
