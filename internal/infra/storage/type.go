package storage

import "time"

// Player is one registered game account. A LINE user may hold several rows,
// one per game account; UserID is the stable key shared between them.
type Player struct {
	ID        int64
	UserID    string // LINE user id
	UserName  string // LINE display name at registration time
	GameName  string
	League    string
	Camp      string
	CreatedAt time.Time
}

// LeaveLogEntry is one archived game account of a departed member.
// Rows are append-only.
type LeaveLogEntry struct {
	ID       int64
	UserName string
	GameName string
	LeftAt   time.Time
}

// Sentinel values logged when a departing member had nothing registered,
// so every departure still leaves a trace.
const (
	UnknownUserName = "未知使用者"
	NoAccountLogged = "未登錄帳號"
)
