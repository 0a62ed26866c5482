package storage

import (
	"context"
	"database/sql"
	"time"
)

type DedupRepo struct{ db *sql.DB }

func NewDedupRepo(db *sql.DB) *DedupRepo { return &DedupRepo{db: db} }

// Insert records a webhook delivery key. Returns false when the key was
// already seen (a platform redelivery).
func (r *DedupRepo) Insert(ctx context.Context, key string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO webhook_dedup (dedup_key) VALUES ($1)
ON CONFLICT DO NOTHING
`, key)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// PruneBefore drops dedup keys received before the cutoff.
func (r *DedupRepo) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM webhook_dedup WHERE received_at < $1
`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
