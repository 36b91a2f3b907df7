package handlers

import (
	"smartchama/internal/adapters/persistence/repositories"
	"smartchama/internal/core/domain"
	"smartchama/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PenaltyHandler handles penalty CRUD endpoints
type PenaltyHandler struct {
	penalties repositories.PenaltyRepository
}

// NewPenaltyHandler creates a new penalty handler
func NewPenaltyHandler(penalties repositories.PenaltyRepository) *PenaltyHandler {
	return &PenaltyHandler{penalties: penalties}
}

// List returns all penalties with member, user and chama hydrated
// @Summary List penalties
// @Tags Penalties
// @Produce json
// @Success 200 {array} domain.PenaltyView
// @Failure 500 {object} response.Message
// @Router /penalties [get]
func (h *PenaltyHandler) List(c *fiber.Ctx) error {
	penalties, err := h.penalties.List(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return response.JSON(c, penalties)
}

// Get returns one penalty by id
// @Summary Get penalty
// @Tags Penalties
// @Produce json
// @Param id path int true "Penalty ID"
// @Success 200 {object} domain.Penalty
// @Failure 404 {object} response.Message
// @Router /penalties/{id} [get]
func (h *PenaltyHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid penalty id")
	}

	penalty, err := h.penalties.GetByID(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.JSON(c, penalty)
}

// Create creates a penalty
// @Summary Create penalty
// @Tags Penalties
// @Accept json
// @Produce json
// @Param body body domain.InsertPenalty true "Penalty data"
// @Success 201 {object} domain.Penalty
// @Failure 400 {object} response.Message
// @Router /penalties [post]
func (h *PenaltyHandler) Create(c *fiber.Ctx) error {
	var req domain.InsertPenalty
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.BadRequest(c, "Invalid penalty data")
	}

	penalty, err := h.penalties.Create(c.Context(), &req)
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, penalty)
}

// Update partially updates a penalty
// @Summary Update penalty
// @Tags Penalties
// @Accept json
// @Produce json
// @Param id path int true "Penalty ID"
// @Param body body domain.UpdatePenalty true "Fields to update"
// @Success 200 {object} domain.Penalty
// @Failure 404 {object} response.Message
// @Router /penalties/{id} [put]
func (h *PenaltyHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid penalty id")
	}

	var req domain.UpdatePenalty
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.BadRequest(c, "Invalid penalty data")
	}

	penalty, err := h.penalties.Update(c.Context(), id, &req)
	if err != nil {
		return handleError(c, err)
	}
	return response.JSON(c, penalty)
}

// Delete deletes a penalty
// @Summary Delete penalty
// @Tags Penalties
// @Param id path int true "Penalty ID"
// @Success 204
// @Failure 404 {object} response.Message
// @Router /penalties/{id} [delete]
func (h *PenaltyHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid penalty id")
	}

	deleted, err := h.penalties.Delete(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	if !deleted {
		return response.NotFound(c, "Penalty not found")
	}
	return response.NoContent(c)
}
