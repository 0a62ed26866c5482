package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/tienmou/line-roster-bot/internal/infra/storage"
)

// Cron lambda: drops webhook dedup keys old enough that the platform will
// never redeliver them. The leave log itself is append-only and never pruned.

func handler(ctx context.Context) (string, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return "no DATABASE_URL", nil
	}

	db, err := storage.Open(ctx, dsn, storage.WithMaxConns(2, 1))
	if err != nil {
		return fmt.Sprintf("open: %v", err), nil
	}
	defer db.Close()

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := storage.NewDedupRepo(db).PruneBefore(cctx, time.Now().Add(-7*24*time.Hour))
	if err != nil {
		return fmt.Sprintf("prune: %v", err), nil
	}
	return fmt.Sprintf("ok, pruned %d", n), nil
}

func main() { lambda.Start(handler) }
