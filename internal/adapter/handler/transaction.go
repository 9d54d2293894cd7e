package handler

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/adapter/middleware"
	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/core/domain"
	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/core/ledger"
)

type TransactionHandler struct {
	Ledger *ledger.Service
}

// Amounts are decimal strings on the wire ("40.00"); floats would silently
// lose cents.
type DepositRequest struct {
	AccountID int64  `json:"account_id"`
	Amount    string `json:"amount"`
}

type TransferRequest struct {
	FromAccount int64  `json:"from_account"`
	ToAccount   int64  `json:"to_account"`
	Amount      string `json:"amount"`
}

func (h *TransactionHandler) Deposit(c *fiber.Ctx) error {
	var req DepositRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return fail(c, err)
	}

	if _, err := h.Ledger.Deposit(c.Context(), middleware.OwnerID(c), req.AccountID, amount); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Deposit successful"})
}

func (h *TransactionHandler) Transfer(c *fiber.Ctx) error {
	var req TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return fail(c, err)
	}

	if _, err := h.Ledger.Transfer(c.Context(), middleware.OwnerID(c), req.FromAccount, req.ToAccount, amount); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Transfer successful"})
}

type transactionView struct {
	TransactionID   int64  `json:"transaction_id"`
	TransactionType string `json:"transaction_type"`
	FromAccount     *int64 `json:"from_account"`
	ToAccount       *int64 `json:"to_account"`
	Amount          string `json:"amount"`
	CreatedAt       string `json:"created_at"`
}

// GetHistory lists every movement touching the account, newest first, with
// timestamps rendered like "28-02-2026 04:05 PM".
func (h *TransactionHandler) GetHistory(c *fiber.Ctx) error {
	accountID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid account ID"})
	}

	txns, err := h.Ledger.ListTransactions(c.Context(), middleware.OwnerID(c), accountID)
	if err != nil {
		return fail(c, err)
	}

	views := make([]transactionView, 0, len(txns))
	for _, txn := range txns {
		views = append(views, transactionView{
			TransactionID:   txn.ID,
			TransactionType: string(txn.Type),
			FromAccount:     txn.FromAccount,
			ToAccount:       txn.ToAccount,
			Amount:          domain.FormatAmount(txn.Amount),
			CreatedAt:       txn.CreatedAt.Format(domain.TimestampLayout),
		})
	}
	return c.JSON(fiber.Map{"transactions": views})
}
