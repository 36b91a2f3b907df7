package handlers

import (
	"smartchama/internal/adapters/persistence/repositories"
	"smartchama/internal/core/domain"
	"smartchama/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles membership CRUD endpoints
type MemberHandler struct {
	members repositories.MemberRepository
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(members repositories.MemberRepository) *MemberHandler {
	return &MemberHandler{members: members}
}

// List returns all memberships with user and chama hydrated
// @Summary List members
// @Tags Members
// @Produce json
// @Success 200 {array} domain.MemberView
// @Failure 500 {object} response.Message
// @Router /members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	members, err := h.members.List(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return response.JSON(c, members)
}

// Get returns one membership by id
// @Summary Get member
// @Tags Members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} domain.Member
// @Failure 404 {object} response.Message
// @Router /members/{id} [get]
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid member id")
	}

	member, err := h.members.GetByID(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.JSON(c, member)
}

// Create creates a membership
// @Summary Create member
// @Tags Members
// @Accept json
// @Produce json
// @Param body body domain.InsertMember true "Member data"
// @Success 201 {object} domain.Member
// @Failure 400 {object} response.Message
// @Router /members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var req domain.InsertMember
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.BadRequest(c, "Invalid member data")
	}

	member, err := h.members.Create(c.Context(), &req)
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, member)
}

// Update partially updates a membership
// @Summary Update member
// @Tags Members
// @Accept json
// @Produce json
// @Param id path int true "Member ID"
// @Param body body domain.UpdateMember true "Fields to update"
// @Success 200 {object} domain.Member
// @Failure 404 {object} response.Message
// @Router /members/{id} [put]
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid member id")
	}

	var req domain.UpdateMember
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.members.Update(c.Context(), id, &req)
	if err != nil {
		return handleError(c, err)
	}
	return response.JSON(c, member)
}

// Delete deletes a membership
// @Summary Delete member
// @Tags Members
// @Param id path int true "Member ID"
// @Success 204
// @Failure 404 {object} response.Message
// @Router /members/{id} [delete]
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid member id")
	}

	deleted, err := h.members.Delete(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	if !deleted {
		return response.NotFound(c, "Member not found")
	}
	return response.NoContent(c)
}
