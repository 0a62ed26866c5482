package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	pq "github.com/lib/pq"
)

type PlayerRepo struct{ db *sql.DB }

func NewPlayerRepo(db *sql.DB) *PlayerRepo { return &PlayerRepo{db: db} }

var ErrNotFound = errors.New("not found")

const playerColumns = `id, user_id, user_name, game_name, league, camp, created_at`

func scanPlayers(rows *sql.Rows) ([]Player, error) {
	var out []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.UserID, &p.UserName, &p.GameName, &p.League, &p.Camp, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PlayerRepo) queryPlayers(ctx context.Context, query string, args ...any) ([]Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlayers(rows)
}

// FindByUserID returns every game account registered under one LINE user id.
func (r *PlayerRepo) FindByUserID(ctx context.Context, userID string) ([]Player, error) {
	return r.queryPlayers(ctx, `
SELECT `+playerColumns+`
  FROM player
 WHERE user_id = $1
 ORDER BY id
`, userID)
}

// FilterRegistered returns which of the given LINE user ids have at least one
// registered account. Callers batch the input to keep the ANY() list bounded.
func (r *PlayerRepo) FilterRegistered(ctx context.Context, ids []string) (map[string]struct{}, error) {
	out := map[string]struct{}{}
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT DISTINCT user_id
  FROM player
 WHERE user_id = ANY($1)
`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	return out, rows.Err()
}

// likePattern wraps term for a substring match, escaping LIKE metacharacters
// so user input can never widen the pattern.
func likePattern(term string) string {
	esc := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + esc + "%"
}

// SearchUserName matches term as a case-sensitive substring of the LINE name.
func (r *PlayerRepo) SearchUserName(ctx context.Context, term string) ([]Player, error) {
	return r.queryPlayers(ctx, `
SELECT `+playerColumns+`
  FROM player
 WHERE user_name LIKE $1
 ORDER BY id
`, likePattern(term))
}

// SearchGameName matches term as a case-sensitive substring of the game name.
func (r *PlayerRepo) SearchGameName(ctx context.Context, term string) ([]Player, error) {
	return r.queryPlayers(ctx, `
SELECT `+playerColumns+`
  FROM player
 WHERE game_name LIKE $1
 ORDER BY id
`, likePattern(term))
}

// GetByUserName is the exact-match lookup behind bot/以Line名稱查詢.
func (r *PlayerRepo) GetByUserName(ctx context.Context, name string) ([]Player, error) {
	return r.queryPlayers(ctx, `
SELECT `+playerColumns+`
  FROM player
 WHERE user_name = $1
 ORDER BY id
`, name)
}

// GetByGameName is the exact-match lookup behind bot/以遊戲名稱查詢.
func (r *PlayerRepo) GetByGameName(ctx context.Context, name string) ([]Player, error) {
	return r.queryPlayers(ctx, `
SELECT `+playerColumns+`
  FROM player
 WHERE game_name = $1
 ORDER BY id
`, name)
}

func (r *PlayerRepo) ListAll(ctx context.Context) ([]Player, error) {
	return r.queryPlayers(ctx, `
SELECT `+playerColumns+`
  FROM player
 ORDER BY id
`)
}

// ArchiveDeparture moves every account of a departed member into leave_log and
// deletes the roster rows, in one transaction. When the member had nothing
// registered it still logs a sentinel row, so the log keeps one trace per
// departure. Returns the archived roster rows (empty for the sentinel case).
func (r *PlayerRepo) ArchiveDeparture(ctx context.Context, userID string, leftAt time.Time) ([]Player, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `
SELECT `+playerColumns+`
  FROM player
 WHERE user_id = $1
 ORDER BY id
`, userID)
	if err != nil {
		return nil, err
	}
	players, err := scanPlayers(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	if len(players) == 0 {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO leave_log (user_name, game_name, left_at) VALUES ($1, $2, $3)
`, UnknownUserName, NoAccountLogged, leftAt); err != nil {
			return nil, err
		}
		return nil, tx.Commit()
	}

	for _, p := range players {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO leave_log (user_name, game_name, left_at) VALUES ($1, $2, $3)
`, p.UserName, p.GameName, leftAt); err != nil {
			return nil, err
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM player WHERE user_id = $1`, userID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return players, nil
}
