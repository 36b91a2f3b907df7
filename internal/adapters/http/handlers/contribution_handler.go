package handlers

import (
	"smartchama/internal/adapters/persistence/repositories"
	"smartchama/internal/core/domain"
	"smartchama/internal/core/services"
	"smartchama/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ContributionHandler handles contribution CRUD and the overdue check
type ContributionHandler struct {
	contributions repositories.ContributionRepository
	overdue       *services.OverdueService
}

// NewContributionHandler creates a new contribution handler
func NewContributionHandler(
	contributions repositories.ContributionRepository,
	overdue *services.OverdueService,
) *ContributionHandler {
	return &ContributionHandler{
		contributions: contributions,
		overdue:       overdue,
	}
}

// List returns all contributions with member, user and chama hydrated
// @Summary List contributions
// @Tags Contributions
// @Produce json
// @Success 200 {array} domain.ContributionView
// @Failure 500 {object} response.Message
// @Router /contributions [get]
func (h *ContributionHandler) List(c *fiber.Ctx) error {
	contributions, err := h.contributions.List(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return response.JSON(c, contributions)
}

// Get returns one contribution by id
// @Summary Get contribution
// @Tags Contributions
// @Produce json
// @Param id path int true "Contribution ID"
// @Success 200 {object} domain.Contribution
// @Failure 404 {object} response.Message
// @Router /contributions/{id} [get]
func (h *ContributionHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid contribution id")
	}

	contribution, err := h.contributions.GetByID(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.JSON(c, contribution)
}

// Create creates a contribution
// @Summary Create contribution
// @Tags Contributions
// @Accept json
// @Produce json
// @Param body body domain.InsertContribution true "Contribution data"
// @Success 201 {object} domain.Contribution
// @Failure 400 {object} response.Message
// @Router /contributions [post]
func (h *ContributionHandler) Create(c *fiber.Ctx) error {
	var req domain.InsertContribution
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.BadRequest(c, "Invalid contribution data")
	}

	contribution, err := h.contributions.Create(c.Context(), &req)
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, contribution)
}

// Update partially updates a contribution
// @Summary Update contribution
// @Tags Contributions
// @Accept json
// @Produce json
// @Param id path int true "Contribution ID"
// @Param body body domain.UpdateContribution true "Fields to update"
// @Success 200 {object} domain.Contribution
// @Failure 404 {object} response.Message
// @Router /contributions/{id} [put]
func (h *ContributionHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid contribution id")
	}

	var req domain.UpdateContribution
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.BadRequest(c, "Invalid contribution data")
	}

	contribution, err := h.contributions.Update(c.Context(), id, &req)
	if err != nil {
		return handleError(c, err)
	}
	return response.JSON(c, contribution)
}

// Delete deletes a contribution
// @Summary Delete contribution
// @Tags Contributions
// @Param id path int true "Contribution ID"
// @Success 204
// @Failure 404 {object} response.Message
// @Router /contributions/{id} [delete]
func (h *ContributionHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid contribution id")
	}

	deleted, err := h.contributions.Delete(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	if !deleted {
		return response.NotFound(c, "Contribution not found")
	}
	return response.NoContent(c)
}

// CheckOverdue reports whether the user's latest completed contribution is
// more than thirty days old. Checking also notifies the user when overdue.
// @Summary Check overdue contributions
// @Tags Contributions
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} map[string]bool
// @Failure 500 {object} response.Message
// @Router /contributions/overdue/{userId} [get]
func (h *ContributionHandler) CheckOverdue(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	isOverdue, err := h.overdue.Check(c.Context(), userID)
	if err != nil {
		return handleError(c, err)
	}
	return response.JSON(c, fiber.Map{"isOverdue": isOverdue})
}
