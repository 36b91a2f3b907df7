package handlers

import (
	"smartchama/internal/adapters/persistence/repositories"
	"smartchama/internal/core/domain"
	"smartchama/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PayoutHandler handles payout CRUD endpoints
type PayoutHandler struct {
	payouts repositories.PayoutRepository
}

// NewPayoutHandler creates a new payout handler
func NewPayoutHandler(payouts repositories.PayoutRepository) *PayoutHandler {
	return &PayoutHandler{payouts: payouts}
}

// List returns all payouts with member, user and chama hydrated
// @Summary List payouts
// @Tags Payouts
// @Produce json
// @Success 200 {array} domain.PayoutView
// @Failure 500 {object} response.Message
// @Router /payouts [get]
func (h *PayoutHandler) List(c *fiber.Ctx) error {
	payouts, err := h.payouts.List(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return response.JSON(c, payouts)
}

// Get returns one payout by id
// @Summary Get payout
// @Tags Payouts
// @Produce json
// @Param id path int true "Payout ID"
// @Success 200 {object} domain.Payout
// @Failure 404 {object} response.Message
// @Router /payouts/{id} [get]
func (h *PayoutHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid payout id")
	}

	payout, err := h.payouts.GetByID(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.JSON(c, payout)
}

// Create creates a payout
// @Summary Create payout
// @Tags Payouts
// @Accept json
// @Produce json
// @Param body body domain.InsertPayout true "Payout data"
// @Success 201 {object} domain.Payout
// @Failure 400 {object} response.Message
// @Router /payouts [post]
func (h *PayoutHandler) Create(c *fiber.Ctx) error {
	var req domain.InsertPayout
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.BadRequest(c, "Invalid payout data")
	}

	payout, err := h.payouts.Create(c.Context(), &req)
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, payout)
}

// Update partially updates a payout
// @Summary Update payout
// @Tags Payouts
// @Accept json
// @Produce json
// @Param id path int true "Payout ID"
// @Param body body domain.UpdatePayout true "Fields to update"
// @Success 200 {object} domain.Payout
// @Failure 404 {object} response.Message
// @Router /payouts/{id} [put]
func (h *PayoutHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid payout id")
	}

	var req domain.UpdatePayout
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.BadRequest(c, "Invalid payout data")
	}

	payout, err := h.payouts.Update(c.Context(), id, &req)
	if err != nil {
		return handleError(c, err)
	}
	return response.JSON(c, payout)
}

// Delete deletes a payout
// @Summary Delete payout
// @Tags Payouts
// @Param id path int true "Payout ID"
// @Success 204
// @Failure 404 {object} response.Message
// @Router /payouts/{id} [delete]
func (h *PayoutHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid payout id")
	}

	deleted, err := h.payouts.Delete(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	if !deleted {
		return response.NotFound(c, "Payout not found")
	}
	return response.NoContent(c)
}
