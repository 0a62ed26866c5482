package storage

import (
	"context"
	"database/sql"
)

type LeaveLogRepo struct{ db *sql.DB }

func NewLeaveLogRepo(db *sql.DB) *LeaveLogRepo { return &LeaveLogRepo{db: db} }

// LatestDeparture returns the display name of the most recent departure and
// every game name logged under it (a member may have held several accounts).
// Returns ErrNotFound when the log is empty.
func (r *LeaveLogRepo) LatestDeparture(ctx context.Context) (string, []string, error) {
	var userName string
	err := r.db.QueryRowContext(ctx, `
SELECT user_name
  FROM leave_log
 ORDER BY left_at DESC, id DESC
 LIMIT 1
`).Scan(&userName)
	if err == sql.ErrNoRows {
		return "", nil, ErrNotFound
	}
	if err != nil {
		return "", nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT game_name
  FROM leave_log
 WHERE user_name = $1
 ORDER BY id
`, userName)
	if err != nil {
		return "", nil, err
	}
	defer rows.Close()

	var games []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return "", nil, err
		}
		games = append(games, g)
	}
	return userName, games, rows.Err()
}
