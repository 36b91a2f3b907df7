package handlers

import (
	"errors"

	"smartchama/internal/core/domain"
	"smartchama/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// handleError maps domain errors to HTTP responses. Dangling foreign keys
// found by the read-model composer are a data integrity failure, not a
// client error, so they surface as 500 with the offending reference.
func handleError(c *fiber.Ctx, err error) error {
	var missingParent *domain.MissingParentError

	switch {
	case errors.As(err, &missingParent):
		return response.InternalServerError(c, missingParent.Error())
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrGatewayTimeout), errors.Is(err, domain.ErrGatewayRejected):
		return response.InternalServerError(c, err.Error())
	default:
		return response.InternalServerError(c, "Internal Server Error")
	}
}
