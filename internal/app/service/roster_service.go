package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tienmou/line-roster-bot/internal/infra/storage"
)

const sectionSeparator = "——————————"

type RosterService struct {
	players  PlayerRepo
	leaveLog LeaveLogRepo
	liffURL  string
}

func NewRosterService(players PlayerRepo, leaveLog LeaveLogRepo, liffURL string) *RosterService {
	return &RosterService{players: players, leaveLog: leaveLog, liffURL: liffURL}
}

func playerLine(i int, p storage.Player) string {
	return fmt.Sprintf("%d. %s｜%s｜%s｜%s", i+1, p.UserName, p.GameName, p.League, p.Camp)
}

func writeSearchSection(b *strings.Builder, field, term string, players []storage.Player) {
	if len(players) == 0 {
		fmt.Fprintf(b, "找不到%s包含「%s」的紀錄", field, term)
		return
	}
	fmt.Fprintf(b, "%s包含「%s」的查詢結果：", field, term)
	for i, p := range players {
		b.WriteString("\n" + playerLine(i, p))
	}
}

// Search runs the substring lookup over both name fields and always renders
// two sections, each with its own rows or its own not-found line.
func (s *RosterService) Search(ctx context.Context, term string) (string, error) {
	byUser, err := s.players.SearchUserName(ctx, term)
	if err != nil {
		return "", err
	}
	byGame, err := s.players.SearchGameName(ctx, term)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	writeSearchSection(&b, "Line名稱", term, byUser)
	b.WriteString("\n" + sectionSeparator + "\n")
	writeSearchSection(&b, "遊戲名稱", term, byGame)
	return b.String(), nil
}

// SearchUserNameExact keeps the older exact-match command alive.
func (s *RosterService) SearchUserNameExact(ctx context.Context, name string) (string, error) {
	players, err := s.players.GetByUserName(ctx, name)
	if err != nil {
		return "", err
	}
	if len(players) == 0 {
		return fmt.Sprintf("找不到 Line名稱 %s 的紀錄", name), nil
	}
	lines := make([]string, 0, len(players)+1)
	lines = append(lines, fmt.Sprintf("Line名稱 %s 查詢結果：", name))
	for _, p := range players {
		lines = append(lines, "遊戲名稱："+p.GameName)
	}
	return strings.Join(lines, "\n"), nil
}

// SearchGameNameExact keeps the older exact-match command alive.
func (s *RosterService) SearchGameNameExact(ctx context.Context, name string) (string, error) {
	players, err := s.players.GetByGameName(ctx, name)
	if err != nil {
		return "", err
	}
	if len(players) == 0 {
		return fmt.Sprintf("找不到 遊戲名稱 %s 的紀錄", name), nil
	}
	return fmt.Sprintf("遊戲名稱 %s 查詢結果：\nLine名稱：%s", name, players[0].UserName), nil
}

func (s *RosterService) ListAll(ctx context.Context) (string, error) {
	players, err := s.players.ListAll(ctx)
	if err != nil {
		return "", err
	}
	if len(players) == 0 {
		return "目前尚無資料。", nil
	}
	lines := make([]string, 0, len(players)+1)
	lines = append(lines, "目前名單如下：")
	for i, p := range players {
		lines = append(lines, playerLine(i, p))
	}
	return strings.Join(lines, "\n"), nil
}

// cheatSheet is shared by bot/功能查詢 and the member-joined welcome push.
func cheatSheet(liffURL string) string {
	return strings.Join([]string{
		"bot/查詢/oooo（Line名稱與遊戲名稱模糊查詢）",
		"bot/以Line名稱查詢/oooo",
		"bot/以遊戲名稱查詢/oooo",
		"bot/名單",
		"bot/最新退群成員",
		"bot/查詢未登錄成員（限群組內使用）",
		"創建帳號：" + liffURL,
	}, "\n")
}

func (s *RosterService) Help() string {
	return "本群機器人指令：\n" + cheatSheet(s.liffURL)
}

// LatestDeparture reports the most recent departure and every game account
// logged under that name.
func (s *RosterService) LatestDeparture(ctx context.Context) (string, error) {
	userName, games, err := s.leaveLog.LatestDeparture(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return "目前沒有退群紀錄。", nil
	}
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(games)+2)
	lines = append(lines, "最近退群成員："+userName, "退群前登錄的遊戲帳號：")
	for i, g := range games {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, g))
	}
	return strings.Join(lines, "\n"), nil
}
