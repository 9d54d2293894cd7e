package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OwnerIDKey is where Protected stores the resolved caller identity in the
// request locals. Handlers read it back with OwnerID.
const OwnerIDKey = "owner_id"

// Protected is the auth gateway adapter: it turns a bearer API key into an
// owner id before any ledger call runs. We never compare or store plain
// keys, only SHA-256 hashes.
func Protected(db *pgxpool.Pool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Missing API Key"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid Header Format"})
		}

		hash := sha256.Sum256([]byte(parts[1]))
		hashedKey := hex.EncodeToString(hash[:])

		var ownerID uuid.UUID
		err := db.QueryRow(c.Context(), "SELECT user_id FROM api_keys WHERE key_hash = $1", hashedKey).Scan(&ownerID)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid API Key"})
		}

		c.Locals(OwnerIDKey, ownerID)
		return c.Next()
	}
}

// OwnerID extracts the authenticated caller from the request. The zero UUID
// means no identity was attached; the ledger rejects that as unauthorized.
func OwnerID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(OwnerIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
