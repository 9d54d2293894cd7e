package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/core/notifications"
)

const maxAttempts = 5

// StartWebhookWorker delivers queued transaction notifications in the
// background until ctx is cancelled. Jobs are claimed with FOR UPDATE SKIP
// LOCKED so multiple instances never fight over the same row.
func StartWebhookWorker(ctx context.Context, db *pgxpool.Pool, secret string) {
	go func() {
		slog.Info("webhook worker started")
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				slog.Info("webhook worker stopped")
				return
			case <-ticker.C:
				processJobs(ctx, db, secret)
			}
		}
	}()
}

func processJobs(ctx context.Context, db *pgxpool.Pool, secret string) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return
	}
	defer tx.Rollback(ctx)

	query := `
		SELECT id, url, payload, attempts
		FROM webhook_jobs
		WHERE status = 'PENDING' AND next_run_at <= NOW()
		ORDER BY created_at ASC
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	`

	var id string
	var url string
	var payloadBytes []byte
	var attempts int
	if err := tx.QueryRow(ctx, query).Scan(&id, &url, &payloadBytes, &attempts); err != nil {
		return
	}

	var payload interface{}
	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		slog.Error("worker: failed to parse payload", "error", err, "job_id", id)
		tx.Exec(ctx, "UPDATE webhook_jobs SET status = 'FAILED' WHERE id = $1", id)
		tx.Commit(ctx)
		return
	}

	slog.Info("worker: processing job", "url", url, "job_id", id)

	if sendErr := notifications.SendWebhook(url, payload, secret); sendErr != nil {
		slog.Error("worker: webhook failed", "error", sendErr, "attempts", attempts)
		if attempts+1 >= maxAttempts {
			tx.Exec(ctx, "UPDATE webhook_jobs SET status = 'FAILED' WHERE id = $1", id)
			slog.Error("worker: job marked as FAILED, max attempts reached", "job_id", id)
		} else {
			nextRun := time.Now().Add(time.Duration(attempts*10+10) * time.Second)
			tx.Exec(ctx, "UPDATE webhook_jobs SET attempts = attempts + 1, next_run_at = $2 WHERE id = $1", id, nextRun)
			slog.Info("worker: scheduled retry", "next_run", nextRun)
		}
	} else {
		tx.Exec(ctx, "UPDATE webhook_jobs SET status = 'COMPLETED' WHERE id = $1", id)
		slog.Info("worker: webhook delivered", "job_id", id)
	}

	tx.Commit(ctx)
}
