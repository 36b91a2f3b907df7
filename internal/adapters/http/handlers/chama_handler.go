package handlers

import (
	"smartchama/internal/adapters/persistence/repositories"
	"smartchama/internal/core/domain"
	"smartchama/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ChamaHandler handles chama CRUD endpoints
type ChamaHandler struct {
	chamas        repositories.ChamaRepository
	members       repositories.MemberRepository
	contributions repositories.ContributionRepository
}

// NewChamaHandler creates a new chama handler
func NewChamaHandler(
	chamas repositories.ChamaRepository,
	members repositories.MemberRepository,
	contributions repositories.ContributionRepository,
) *ChamaHandler {
	return &ChamaHandler{
		chamas:        chamas,
		members:       members,
		contributions: contributions,
	}
}

// List returns all chamas in insertion order
// @Summary List chamas
// @Tags Chamas
// @Produce json
// @Success 200 {array} domain.Chama
// @Router /chamas [get]
func (h *ChamaHandler) List(c *fiber.Ctx) error {
	chamas, err := h.chamas.List(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return response.JSON(c, chamas)
}

// Get returns one chama by id
// @Summary Get chama
// @Tags Chamas
// @Produce json
// @Param id path int true "Chama ID"
// @Success 200 {object} domain.Chama
// @Failure 404 {object} response.Message
// @Router /chamas/{id} [get]
func (h *ChamaHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid chama id")
	}

	chama, err := h.chamas.GetByID(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.JSON(c, chama)
}

// Create creates a chama
// @Summary Create chama
// @Tags Chamas
// @Accept json
// @Produce json
// @Param body body domain.InsertChama true "Chama data"
// @Success 201 {object} domain.Chama
// @Failure 400 {object} response.Message
// @Router /chamas [post]
func (h *ChamaHandler) Create(c *fiber.Ctx) error {
	var req domain.InsertChama
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.BadRequest(c, "Invalid chama data")
	}

	chama, err := h.chamas.Create(c.Context(), &req)
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, chama)
}

// Update partially updates a chama
// @Summary Update chama
// @Tags Chamas
// @Accept json
// @Produce json
// @Param id path int true "Chama ID"
// @Param body body domain.UpdateChama true "Fields to update"
// @Success 200 {object} domain.Chama
// @Failure 404 {object} response.Message
// @Router /chamas/{id} [put]
func (h *ChamaHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid chama id")
	}

	var req domain.UpdateChama
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.BadRequest(c, "Invalid chama data")
	}

	chama, err := h.chamas.Update(c.Context(), id, &req)
	if err != nil {
		return handleError(c, err)
	}
	return response.JSON(c, chama)
}

// Delete deletes a chama. Memberships pointing at it are left behind;
// the composer reports them as integrity errors on later reads.
// @Summary Delete chama
// @Tags Chamas
// @Param id path int true "Chama ID"
// @Success 204
// @Failure 404 {object} response.Message
// @Router /chamas/{id} [delete]
func (h *ChamaHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid chama id")
	}

	deleted, err := h.chamas.Delete(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	if !deleted {
		return response.NotFound(c, "Chama not found")
	}
	return response.NoContent(c)
}

// ListMembers returns a chama's members with their user records
// @Summary List chama members
// @Tags Chamas
// @Produce json
// @Param id path int true "Chama ID"
// @Success 200 {array} domain.MemberWithUser
// @Failure 404 {object} response.Message
// @Router /chamas/{id}/members [get]
func (h *ChamaHandler) ListMembers(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid chama id")
	}
	if _, err := h.chamas.GetByID(c.Context(), id); err != nil {
		return handleError(c, err)
	}

	members, err := h.members.ListByChama(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.JSON(c, members)
}

// ListContributions returns a chama's contributions as composed views
// @Summary List chama contributions
// @Tags Chamas
// @Produce json
// @Param id path int true "Chama ID"
// @Success 200 {array} domain.ContributionView
// @Failure 404 {object} response.Message
// @Router /chamas/{id}/contributions [get]
func (h *ChamaHandler) ListContributions(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid chama id")
	}
	if _, err := h.chamas.GetByID(c.Context(), id); err != nil {
		return handleError(c, err)
	}

	contributions, err := h.contributions.ListByChama(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.JSON(c, contributions)
}
