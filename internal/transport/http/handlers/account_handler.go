package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jumush/backend/internal/core/ports"
	"github.com/jumush/backend/internal/infrastructure/logger"
	"github.com/jumush/backend/internal/transport/http/dto"
	"github.com/jumush/backend/internal/transport/http/middleware"
)

type AccountHandler struct {
	accounts ports.AccountService
	ledger   ports.LedgerService
	logger   *logger.Logger
}

func NewAccountHandler(accounts ports.AccountService, ledger ports.LedgerService, logger *logger.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, ledger: ledger, logger: logger}
}

func (h *AccountHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if errs := req.Validate(); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	result, err := h.accounts.Register(c.Context(), req.ToInput())
	if err != nil {
		h.logger.Warnw("register_failed", "email", req.Email, "error", err)
		return respondError(c, err)
	}

	h.logger.Infow("register_success", "id", result.Account.ID, "role", result.Account.Role)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"account": result.Account,
		"token":   result.Token,
	})
}

func (h *AccountHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	result, err := h.accounts.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"account": result.Account,
		"token":   result.Token,
	})
}

func (h *AccountHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if err := h.accounts.ChangePassword(c.Context(), middleware.Principal(c), req.OldPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"detail": "password changed"})
}

func (h *AccountHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	// The code goes to the notification collaborator, not the response;
	// the answer is the same whether or not the email exists.
	if _, err := h.accounts.RequestPasswordReset(c.Context(), req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"detail": "if the email is registered, a reset code has been sent"})
}

func (h *AccountHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.ConfirmResetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if err := h.accounts.ConfirmPasswordReset(c.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"detail": "password reset"})
}

func (h *AccountHandler) Profile(c *fiber.Ctx) error {
	account, err := h.accounts.Profile(c.Context(), middleware.Principal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(account)
}

func (h *AccountHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	account, err := h.accounts.UpdateProfile(c.Context(), middleware.Principal(c), ports.UpdateProfileInput{
		Phone:       req.Phone,
		SubregionID: req.SubregionID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(account)
}

func (h *AccountHandler) LedgerHistory(c *fiber.Ctx) error {
	principal := middleware.Principal(c)
	entries, err := h.ledger.History(c.Context(), principal.AccountID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}

func (h *AccountHandler) DeleteAccount(c *fiber.Ctx) error {
	if err := h.accounts.Delete(c.Context(), middleware.Principal(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TopUp is admin-gated: the wallet funding channel sits outside the core
// ledger's debit-only surface.
func (h *AccountHandler) TopUp(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var req dto.TopUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if errs := req.Validate(); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	balance, err := h.accounts.TopUp(c.Context(), uint(id), req.Amount)
	if err != nil {
		return respondError(c, err)
	}

	h.logger.Infow("topup_success", "account_id", id, "amount", req.Amount, "balance", balance)
	return c.JSON(fiber.Map{"account_id": id, "balance": balance})
}

func (h *AccountHandler) Verify(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	if err := h.accounts.Verify(c.Context(), uint(id)); err != nil {
		return respondError(c, err)
	}

	h.logger.Infow("verify_success", "account_id", id)
	return c.JSON(fiber.Map{"account_id": id, "verified": true})
}
