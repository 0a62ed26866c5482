package service

import (
	"context"
	"time"

	"github.com/tienmou/line-roster-bot/internal/domain"
	"github.com/tienmou/line-roster-bot/internal/infra/storage"
)

// Func-field fakes so each test overrides only what it needs.

type FakePlayerRepo struct {
	FilterRegisteredFunc func(ctx context.Context, ids []string) (map[string]struct{}, error)
	SearchUserNameFunc   func(ctx context.Context, term string) ([]storage.Player, error)
	SearchGameNameFunc   func(ctx context.Context, term string) ([]storage.Player, error)
	GetByUserNameFunc    func(ctx context.Context, name string) ([]storage.Player, error)
	GetByGameNameFunc    func(ctx context.Context, name string) ([]storage.Player, error)
	ListAllFunc          func(ctx context.Context) ([]storage.Player, error)
	ArchiveDepartureFunc func(ctx context.Context, userID string, leftAt time.Time) ([]storage.Player, error)
}

func (f *FakePlayerRepo) FilterRegistered(ctx context.Context, ids []string) (map[string]struct{}, error) {
	if f.FilterRegisteredFunc != nil {
		return f.FilterRegisteredFunc(ctx, ids)
	}
	return map[string]struct{}{}, nil
}

func (f *FakePlayerRepo) SearchUserName(ctx context.Context, term string) ([]storage.Player, error) {
	if f.SearchUserNameFunc != nil {
		return f.SearchUserNameFunc(ctx, term)
	}
	return nil, nil
}

func (f *FakePlayerRepo) SearchGameName(ctx context.Context, term string) ([]storage.Player, error) {
	if f.SearchGameNameFunc != nil {
		return f.SearchGameNameFunc(ctx, term)
	}
	return nil, nil
}

func (f *FakePlayerRepo) GetByUserName(ctx context.Context, name string) ([]storage.Player, error) {
	if f.GetByUserNameFunc != nil {
		return f.GetByUserNameFunc(ctx, name)
	}
	return nil, nil
}

func (f *FakePlayerRepo) GetByGameName(ctx context.Context, name string) ([]storage.Player, error) {
	if f.GetByGameNameFunc != nil {
		return f.GetByGameNameFunc(ctx, name)
	}
	return nil, nil
}

func (f *FakePlayerRepo) ListAll(ctx context.Context) ([]storage.Player, error) {
	if f.ListAllFunc != nil {
		return f.ListAllFunc(ctx)
	}
	return nil, nil
}

func (f *FakePlayerRepo) ArchiveDeparture(ctx context.Context, userID string, leftAt time.Time) ([]storage.Player, error) {
	if f.ArchiveDepartureFunc != nil {
		return f.ArchiveDepartureFunc(ctx, userID, leftAt)
	}
	return nil, nil
}

type FakeLeaveLogRepo struct {
	LatestDepartureFunc func(ctx context.Context) (string, []string, error)
}

func (f *FakeLeaveLogRepo) LatestDeparture(ctx context.Context) (string, []string, error) {
	if f.LatestDepartureFunc != nil {
		return f.LatestDepartureFunc(ctx)
	}
	return "", nil, storage.ErrNotFound
}

type FakeLineAPI struct {
	GetGroupMemberIDsFunc     func(ctx context.Context, groupID string) ([]string, error)
	GetGroupMemberProfileFunc func(ctx context.Context, groupID, userID string) (*domain.Profile, error)
	PushTextFunc              func(ctx context.Context, to, text string) error

	Pushed []string // texts sent through PushText
}

func (f *FakeLineAPI) GetGroupMemberIDs(ctx context.Context, groupID string) ([]string, error) {
	if f.GetGroupMemberIDsFunc != nil {
		return f.GetGroupMemberIDsFunc(ctx, groupID)
	}
	return nil, nil
}

func (f *FakeLineAPI) GetGroupMemberProfile(ctx context.Context, groupID, userID string) (*domain.Profile, error) {
	if f.GetGroupMemberProfileFunc != nil {
		return f.GetGroupMemberProfileFunc(ctx, groupID, userID)
	}
	return &domain.Profile{UserID: userID, DisplayName: "member " + userID}, nil
}

func (f *FakeLineAPI) PushText(ctx context.Context, to, text string) error {
	f.Pushed = append(f.Pushed, text)
	if f.PushTextFunc != nil {
		return f.PushTextFunc(ctx, to, text)
	}
	return nil
}
