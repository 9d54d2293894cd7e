package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/adapter/middleware"
	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/core/domain"
	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/core/ledger"
	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/core/security"
)

// OwnerStore is what the account handler needs from persistence for
// registration and key minting.
type OwnerStore interface {
	CreateOwner(ctx context.Context, fullName string) (*domain.Owner, error)
	SaveAPIKey(ctx context.Context, ownerID uuid.UUID, keyHash, keyPrefix string) error
}

type AccountHandler struct {
	Ledger *ledger.Service
	Owners OwnerStore
}

type RegisterOwnerRequest struct {
	FullName string `json:"full_name"`
}

func (h *AccountHandler) RegisterOwner(c *fiber.Ctx) error {
	var req RegisterOwnerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.FullName == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Full name is required"})
	}

	owner, err := h.Owners.CreateOwner(c.Context(), req.FullName)
	if err != nil {
		slog.Error("failed to register owner", "error", err)
		return fail(c, err)
	}

	slog.Info("owner registered", "id", owner.ID)
	return c.Status(http.StatusCreated).JSON(owner)
}

// GenerateKey mints an API key for an owner and returns it once. Only the
// hash is kept.
func (h *AccountHandler) GenerateKey(c *fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid owner ID format"})
	}

	realKey, keyHash, err := security.GenerateAPIKey()
	if err != nil {
		slog.Error("crypto error generating key", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Crypto error"})
	}

	if err := h.Owners.SaveAPIKey(c.Context(), ownerID, keyHash, security.KeyPrefix); err != nil {
		slog.Error("failed to save API key", "error", err, "owner_id", ownerID)
		return fail(c, err)
	}

	slog.Info("API key generated", "owner_id", ownerID)
	return c.JSON(fiber.Map{
		"api_key": realKey,
		"warning": "Save this now! We won't show it again.",
	})
}

type CreateAccountRequest struct {
	AccountType string `json:"account_type"`
}

func (h *AccountHandler) CreateAccount(c *fiber.Ctx) error {
	var req CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	acc, err := h.Ledger.CreateAccount(c.Context(), middleware.OwnerID(c), domain.AccountType(req.AccountType))
	if err != nil {
		return fail(c, err)
	}

	slog.Info("account created", "account_id", acc.ID, "owner_id", acc.OwnerID, "type", acc.Type)
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":    "Account created successfully",
		"account_id": acc.ID,
	})
}

type accountView struct {
	AccountID   int64  `json:"account_id"`
	AccountType string `json:"account_type"`
	Balance     string `json:"balance"`
	Status      string `json:"status"`
}

func (h *AccountHandler) ListAccounts(c *fiber.Ctx) error {
	accounts, err := h.Ledger.ListAccounts(c.Context(), middleware.OwnerID(c))
	if err != nil {
		return fail(c, err)
	}

	views := make([]accountView, 0, len(accounts))
	for _, acc := range accounts {
		views = append(views, accountView{
			AccountID:   acc.ID,
			AccountType: string(acc.Type),
			Balance:     domain.FormatAmount(acc.Balance),
			Status:      string(acc.Status),
		})
	}
	return c.JSON(fiber.Map{"accounts": views})
}

func (h *AccountHandler) Deactivate(c *fiber.Ctx) error {
	accountID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid account ID"})
	}

	if err := h.Ledger.Deactivate(c.Context(), middleware.OwnerID(c), accountID); err != nil {
		return fail(c, err)
	}

	slog.Info("account deactivated", "account_id", accountID)
	return c.JSON(fiber.Map{"message": "Account deactivated successfully"})
}
