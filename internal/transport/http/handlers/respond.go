package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jumush/backend/internal/domain"
)

// statusForError maps the core's typed failures onto transport codes.
// Conflicts (lost races) are 409; they are expected under concurrency.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrTaskInvalidInput),
		errors.Is(err, domain.ErrAccountInvalidInput),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrSubregionMismatch):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrWrongPassword),
		errors.Is(err, domain.ErrInvalidResetCode):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrInsufficientFunds):
		return fiber.StatusPaymentRequired
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrRegionNotFound),
		errors.Is(err, domain.ErrSubregionNotFound),
		errors.Is(err, domain.ErrCategoryNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrTaskAlreadyPaid),
		errors.Is(err, domain.ErrTaskNotPaid),
		errors.Is(err, domain.ErrTaskAlreadyClaimed),
		errors.Is(err, domain.ErrEmailTaken):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	payload := fiber.Map{"error": err.Error()}

	var funds *domain.InsufficientFundsError
	if errors.As(err, &funds) {
		payload["required"] = funds.Required
		payload["available"] = funds.Available
	}

	return c.Status(statusForError(err)).JSON(payload)
}
