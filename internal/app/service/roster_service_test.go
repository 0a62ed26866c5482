package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tienmou/line-roster-bot/internal/infra/storage"
)

const testLIFF = "https://liff.line.me/test"

func TestSearchAlwaysRendersTwoSections(t *testing.T) {
	roster := NewRosterService(&FakePlayerRepo{}, &FakeLeaveLogRepo{}, testLIFF)

	reply, err := roster.Search(context.Background(), "Alice")
	require.NoError(t, err)

	parts := strings.Split(reply, sectionSeparator)
	require.Len(t, parts, 2, "reply must keep both sections")
	assert.Contains(t, parts[0], "找不到Line名稱包含「Alice」的紀錄")
	assert.Contains(t, parts[1], "找不到遊戲名稱包含「Alice」的紀錄")
}

func TestSearchMixedSections(t *testing.T) {
	players := &FakePlayerRepo{
		SearchUserNameFunc: func(ctx context.Context, term string) ([]storage.Player, error) {
			return []storage.Player{
				{UserName: "小明", GameName: "Hunter01", League: "甲", Camp: "東"},
				{UserName: "小明二號", GameName: "Hunter02", League: "乙", Camp: "西"},
			}, nil
		},
	}
	roster := NewRosterService(players, &FakeLeaveLogRepo{}, testLIFF)

	reply, err := roster.Search(context.Background(), "小明")
	require.NoError(t, err)

	parts := strings.Split(reply, sectionSeparator)
	require.Len(t, parts, 2)
	assert.Contains(t, parts[0], "1. 小明｜Hunter01｜甲｜東")
	assert.Contains(t, parts[0], "2. 小明二號｜Hunter02｜乙｜西")
	// the game-name half found nothing and must say so on its own
	assert.Contains(t, parts[1], "找不到遊戲名稱包含「小明」的紀錄")
}

func TestSearchPropagatesStoreErrors(t *testing.T) {
	dbErr := errors.New("connection refused")
	players := &FakePlayerRepo{
		SearchUserNameFunc: func(ctx context.Context, term string) ([]storage.Player, error) {
			return nil, dbErr
		},
	}
	roster := NewRosterService(players, &FakeLeaveLogRepo{}, testLIFF)

	_, err := roster.Search(context.Background(), "x")
	assert.ErrorIs(t, err, dbErr)
}

func TestListAll(t *testing.T) {
	tests := []struct {
		name    string
		rows    []storage.Player
		want    []string
		exactly string
	}{
		{
			name:    "empty roster",
			exactly: "目前尚無資料。",
		},
		{
			name: "single row",
			rows: []storage.Player{{UserName: "U", GameName: "G", League: "L", Camp: "C"}},
			want: []string{"目前名單如下：", "1. U｜G", "1. U｜G｜L｜C"},
		},
		{
			name: "rows keep insertion order",
			rows: []storage.Player{
				{UserName: "甲", GameName: "g1"},
				{UserName: "乙", GameName: "g2"},
			},
			want: []string{"1. 甲｜g1", "2. 乙｜g2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := &FakePlayerRepo{
				ListAllFunc: func(ctx context.Context) ([]storage.Player, error) {
					return tt.rows, nil
				},
			}
			roster := NewRosterService(players, &FakeLeaveLogRepo{}, testLIFF)

			reply, err := roster.ListAll(context.Background())
			require.NoError(t, err)
			if tt.exactly != "" {
				assert.Equal(t, tt.exactly, reply)
			}
			for _, w := range tt.want {
				assert.Contains(t, reply, w)
			}
		})
	}
}

func TestSearchExactMatches(t *testing.T) {
	players := &FakePlayerRepo{
		GetByUserNameFunc: func(ctx context.Context, name string) ([]storage.Player, error) {
			if name == "小明" {
				return []storage.Player{
					{UserName: "小明", GameName: "Hunter01"},
					{UserName: "小明", GameName: "Hunter02"},
				}, nil
			}
			return nil, nil
		},
		GetByGameNameFunc: func(ctx context.Context, name string) ([]storage.Player, error) {
			if name == "Hunter01" {
				return []storage.Player{{UserName: "小明", GameName: "Hunter01"}}, nil
			}
			return nil, nil
		},
	}
	roster := NewRosterService(players, &FakeLeaveLogRepo{}, testLIFF)

	reply, err := roster.SearchUserNameExact(context.Background(), "小明")
	require.NoError(t, err)
	assert.Contains(t, reply, "Line名稱 小明 查詢結果：")
	assert.Contains(t, reply, "遊戲名稱：Hunter01")
	assert.Contains(t, reply, "遊戲名稱：Hunter02")

	reply, err = roster.SearchUserNameExact(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, "找不到 Line名稱 nobody 的紀錄", reply)

	reply, err = roster.SearchGameNameExact(context.Background(), "Hunter01")
	require.NoError(t, err)
	assert.Equal(t, "遊戲名稱 Hunter01 查詢結果：\nLine名稱：小明", reply)

	reply, err = roster.SearchGameNameExact(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, "找不到 遊戲名稱 nobody 的紀錄", reply)
}

func TestHelpListsEveryCommand(t *testing.T) {
	roster := NewRosterService(&FakePlayerRepo{}, &FakeLeaveLogRepo{}, testLIFF)

	help := roster.Help()
	for _, w := range []string{
		"bot/查詢/",
		"bot/以Line名稱查詢/",
		"bot/以遊戲名稱查詢/",
		"bot/名單",
		"bot/最新退群成員",
		"bot/查詢未登錄成員",
		testLIFF,
	} {
		assert.Contains(t, help, w)
	}
}

func TestLatestDeparture(t *testing.T) {
	t.Run("empty log", func(t *testing.T) {
		roster := NewRosterService(&FakePlayerRepo{}, &FakeLeaveLogRepo{}, testLIFF)
		reply, err := roster.LatestDeparture(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "目前沒有退群紀錄。", reply)
	})

	t.Run("member with two accounts", func(t *testing.T) {
		leaveLog := &FakeLeaveLogRepo{
			LatestDepartureFunc: func(ctx context.Context) (string, []string, error) {
				return "小明", []string{"Hunter01", "Hunter02"}, nil
			},
		}
		roster := NewRosterService(&FakePlayerRepo{}, leaveLog, testLIFF)
		reply, err := roster.LatestDeparture(context.Background())
		require.NoError(t, err)
		assert.Contains(t, reply, "最近退群成員：小明")
		assert.Contains(t, reply, "1. Hunter01")
		assert.Contains(t, reply, "2. Hunter02")
	})

	t.Run("store error", func(t *testing.T) {
		dbErr := errors.New("timeout")
		leaveLog := &FakeLeaveLogRepo{
			LatestDepartureFunc: func(ctx context.Context) (string, []string, error) {
				return "", nil, dbErr
			},
		}
		roster := NewRosterService(&FakePlayerRepo{}, leaveLog, testLIFF)
		_, err := roster.LatestDeparture(context.Background())
		assert.ErrorIs(t, err, dbErr)
	})
}
