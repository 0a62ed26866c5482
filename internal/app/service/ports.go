package service

import (
	"context"
	"time"

	"github.com/tienmou/line-roster-bot/internal/domain"
	"github.com/tienmou/line-roster-bot/internal/infra/storage"
)

// Implemented by internal/adapters/line.Client
type LineAPI interface {
	GetGroupMemberIDs(ctx context.Context, groupID string) ([]string, error)
	GetGroupMemberProfile(ctx context.Context, groupID, userID string) (*domain.Profile, error)
	PushText(ctx context.Context, to, text string) error
}

// Implemented by internal/infra/storage.PlayerRepo
type PlayerRepo interface {
	FilterRegistered(ctx context.Context, ids []string) (map[string]struct{}, error)
	SearchUserName(ctx context.Context, term string) ([]storage.Player, error)
	SearchGameName(ctx context.Context, term string) ([]storage.Player, error)
	GetByUserName(ctx context.Context, name string) ([]storage.Player, error)
	GetByGameName(ctx context.Context, name string) ([]storage.Player, error)
	ListAll(ctx context.Context) ([]storage.Player, error)
	ArchiveDeparture(ctx context.Context, userID string, leftAt time.Time) ([]storage.Player, error)
}

// Implemented by internal/infra/storage.LeaveLogRepo
type LeaveLogRepo interface {
	LatestDeparture(ctx context.Context) (string, []string, error)
}
