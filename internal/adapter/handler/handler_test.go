package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/adapter/handler"
	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/adapter/middleware"
	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/adapter/storage"
	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/core/domain"
	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/core/ledger"
)

type fakeOwners struct{}

func (fakeOwners) CreateOwner(ctx context.Context, fullName string) (*domain.Owner, error) {
	return &domain.Owner{ID: uuid.New(), FullName: fullName, CreatedAt: time.Now()}, nil
}

func (fakeOwners) SaveAPIKey(ctx context.Context, ownerID uuid.UUID, keyHash, keyPrefix string) error {
	return nil
}

// newTestApp wires the handlers behind a stub auth gateway that attaches
// ownerID to every request, mirroring the route layout of cmd/api.
func newTestApp(svc *ledger.Service, ownerID uuid.UUID) *fiber.App {
	app := fiber.New()

	accountHandler := &handler.AccountHandler{Ledger: svc, Owners: fakeOwners{}}
	transactionHandler := &handler.TransactionHandler{Ledger: svc}

	api := app.Group("/v1")
	api.Post("/users", accountHandler.RegisterOwner)

	private := api.Use(func(c *fiber.Ctx) error {
		if ownerID != uuid.Nil {
			c.Locals(middleware.OwnerIDKey, ownerID)
		}
		return c.Next()
	})
	private.Post("/accounts", accountHandler.CreateAccount)
	private.Get("/accounts", accountHandler.ListAccounts)
	private.Post("/accounts/:id/deactivate", accountHandler.Deactivate)
	private.Post("/deposit", transactionHandler.Deposit)
	private.Post("/transfer", transactionHandler.Transfer)
	private.Get("/accounts/:id/transactions", transactionHandler.GetHistory)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	resp.Body.Close()
	return resp, raw
}

func createAccount(t *testing.T, app *fiber.App) int64 {
	t.Helper()
	resp, raw := doJSON(t, app, http.MethodPost, "/v1/accounts", fiber.Map{"account_type": "Savings"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create account status = %d, body %s", resp.StatusCode, raw)
	}
	var out struct {
		AccountID int64 `json:"account_id"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	return out.AccountID
}

func TestCreateAccountEndpoint(t *testing.T) {
	svc := ledger.NewService(storage.NewMemoryStore(), domain.TransferPolicy{AllowSelfTransfer: true})
	app := newTestApp(svc, uuid.New())

	id := createAccount(t, app)
	if id == 0 {
		t.Fatalf("created account id is zero")
	}

	resp, raw := doJSON(t, app, http.MethodPost, "/v1/accounts", fiber.Map{"account_type": "Checking"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid type status = %d, want 400, body %s", resp.StatusCode, raw)
	}
}

func TestDepositAndTransferFlow(t *testing.T) {
	svc := ledger.NewService(storage.NewMemoryStore(), domain.TransferPolicy{AllowSelfTransfer: true})
	owner := uuid.New()
	app := newTestApp(svc, owner)

	a := createAccount(t, app)
	b := createAccount(t, app)

	resp, raw := doJSON(t, app, http.MethodPost, "/v1/deposit", fiber.Map{"account_id": a, "amount": "100.00"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("deposit status = %d, body %s", resp.StatusCode, raw)
	}

	resp, raw = doJSON(t, app, http.MethodPost, "/v1/transfer", fiber.Map{"from_account": a, "to_account": b, "amount": "40.00"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("transfer status = %d, body %s", resp.StatusCode, raw)
	}

	resp, raw = doJSON(t, app, http.MethodGet, "/v1/accounts", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list accounts status = %d", resp.StatusCode)
	}
	var listed struct {
		Accounts []struct {
			AccountID int64  `json:"account_id"`
			Balance   string `json:"balance"`
			Status    string `json:"status"`
		} `json:"accounts"`
	}
	if err := json.Unmarshal(raw, &listed); err != nil {
		t.Fatalf("decode accounts: %v", err)
	}
	if len(listed.Accounts) != 2 {
		t.Fatalf("listed %d accounts, want 2", len(listed.Accounts))
	}
	if listed.Accounts[0].Balance != "60.00" || listed.Accounts[1].Balance != "40.00" {
		t.Errorf("balances = %s, %s, want 60.00, 40.00", listed.Accounts[0].Balance, listed.Accounts[1].Balance)
	}

	// Overdraw attempt: client error, balances untouched.
	resp, raw = doJSON(t, app, http.MethodPost, "/v1/transfer", fiber.Map{"from_account": a, "to_account": b, "amount": "200.00"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("overdraw status = %d, want 400, body %s", resp.StatusCode, raw)
	}
	var failBody struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &failBody); err != nil || failBody.Error == "" {
		t.Errorf("overdraw response missing error field: %s", raw)
	}

	// Float-hostile amounts are rejected outright.
	resp, _ = doJSON(t, app, http.MethodPost, "/v1/deposit", fiber.Map{"account_id": a, "amount": "-5.00"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("negative amount status = %d, want 400", resp.StatusCode)
	}
}

func TestDeactivateEndpoint(t *testing.T) {
	svc := ledger.NewService(storage.NewMemoryStore(), domain.TransferPolicy{AllowSelfTransfer: true})
	app := newTestApp(svc, uuid.New())
	a := createAccount(t, app)

	resp, raw := doJSON(t, app, http.MethodPost, fmt.Sprintf("/v1/accounts/%d/deactivate", a), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("deactivate status = %d, body %s", resp.StatusCode, raw)
	}

	resp, _ = doJSON(t, app, http.MethodPost, "/v1/deposit", fiber.Map{"account_id": a, "amount": "10.00"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("deposit into blocked account status = %d, want 400", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodPost, "/v1/accounts/424242/deactivate", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown account deactivate status = %d, want 404", resp.StatusCode)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := ledger.NewService(store, domain.TransferPolicy{AllowSelfTransfer: true})
	owner := uuid.New()
	app := newTestApp(svc, owner)

	a := createAccount(t, app)
	b := createAccount(t, app)
	doJSON(t, app, http.MethodPost, "/v1/deposit", fiber.Map{"account_id": a, "amount": "100.00"})
	doJSON(t, app, http.MethodPost, "/v1/transfer", fiber.Map{"from_account": a, "to_account": b, "amount": "40.00"})

	resp, raw := doJSON(t, app, http.MethodGet, fmt.Sprintf("/v1/accounts/%d/transactions", a), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history status = %d, body %s", resp.StatusCode, raw)
	}
	var out struct {
		Transactions []struct {
			TransactionType string `json:"transaction_type"`
			Amount          string `json:"amount"`
			FromAccount     *int64 `json:"from_account"`
			ToAccount       *int64 `json:"to_account"`
			CreatedAt       string `json:"created_at"`
		} `json:"transactions"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(out.Transactions) != 2 {
		t.Fatalf("history rows = %d, want 2", len(out.Transactions))
	}
	if out.Transactions[0].TransactionType != "transfer" || out.Transactions[1].TransactionType != "deposit" {
		t.Errorf("history not newest-first: %s, %s", out.Transactions[0].TransactionType, out.Transactions[1].TransactionType)
	}
	if out.Transactions[0].Amount != "40.00" {
		t.Errorf("transfer amount = %s, want 40.00", out.Transactions[0].Amount)
	}
	if out.Transactions[1].FromAccount != nil {
		t.Errorf("deposit row has from_account set")
	}

	tsFormat := regexp.MustCompile(`^\d{2}-\d{2}-\d{4} \d{2}:\d{2} (AM|PM)$`)
	for _, txn := range out.Transactions {
		if !tsFormat.MatchString(txn.CreatedAt) {
			t.Errorf("timestamp %q does not match DD-MM-YYYY hh:mm AM/PM", txn.CreatedAt)
		}
	}

	// Someone else's account: the resource exists but is off limits.
	strangerApp := newTestApp(svc, uuid.New())
	resp, _ = doJSON(t, strangerApp, http.MethodGet, fmt.Sprintf("/v1/accounts/%d/transactions", a), nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("foreign history status = %d, want 403", resp.StatusCode)
	}

	// Pure read: asking twice changes nothing.
	_, raw2 := doJSON(t, app, http.MethodGet, fmt.Sprintf("/v1/accounts/%d/transactions", a), nil)
	if !bytes.Equal(raw, raw2) {
		t.Errorf("repeated history listing differed")
	}
}

func TestMissingIdentityIsUnauthorized(t *testing.T) {
	svc := ledger.NewService(storage.NewMemoryStore(), domain.TransferPolicy{AllowSelfTransfer: true})
	app := newTestApp(svc, uuid.Nil)

	resp, _ := doJSON(t, app, http.MethodPost, "/v1/deposit", fiber.Map{"account_id": 1, "amount": "10.00"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("deposit without identity status = %d, want 401", resp.StatusCode)
	}
	resp, _ = doJSON(t, app, http.MethodPost, "/v1/accounts", fiber.Map{"account_type": "Savings"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("create without identity status = %d, want 401", resp.StatusCode)
	}
}

func TestRegisterOwnerEndpoint(t *testing.T) {
	svc := ledger.NewService(storage.NewMemoryStore(), domain.TransferPolicy{AllowSelfTransfer: true})
	app := newTestApp(svc, uuid.Nil)

	resp, raw := doJSON(t, app, http.MethodPost, "/v1/users", fiber.Map{"full_name": "Asha Rao"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", resp.StatusCode, raw)
	}
	var owner struct {
		ID       uuid.UUID `json:"id"`
		FullName string    `json:"full_name"`
	}
	if err := json.Unmarshal(raw, &owner); err != nil {
		t.Fatalf("decode owner: %v", err)
	}
	if owner.ID == uuid.Nil || owner.FullName != "Asha Rao" {
		t.Errorf("owner = %+v", owner)
	}

	resp, _ = doJSON(t, app, http.MethodPost, "/v1/users", fiber.Map{"full_name": ""})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty name status = %d, want 400", resp.StatusCode)
	}
}
