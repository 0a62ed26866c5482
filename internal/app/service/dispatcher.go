package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tienmou/line-roster-bot/internal/domain"
)

type Dispatcher struct {
	roster  *RosterService
	members *MemberService
}

func NewDispatcher(roster *RosterService, members *MemberService) *Dispatcher {
	return &Dispatcher{roster: roster, members: members}
}

// Dispatch parses text and runs the matching roster operation. The second
// result is false when no reply must be sent at all (text was not a bot
// command). Transport and persistence failures propagate as errors so the
// webhook layer can answer 500 and let the platform redeliver.
func (d *Dispatcher) Dispatch(ctx context.Context, text string, src domain.Source) (string, bool, error) {
	cmd, ok := ParseCommand(text)
	if !ok {
		return "", false, nil
	}

	var reply string
	var err error
	switch c := cmd.(type) {
	case SearchCommand:
		reply, err = d.roster.Search(ctx, c.Term)
	case SearchUserNameCommand:
		reply, err = d.roster.SearchUserNameExact(ctx, c.Name)
	case SearchGameNameCommand:
		reply, err = d.roster.SearchGameNameExact(ctx, c.Name)
	case ListCommand:
		reply, err = d.roster.ListAll(ctx)
	case HelpCommand:
		reply = d.roster.Help()
	case LatestDepartureCommand:
		reply, err = d.roster.LatestDeparture(ctx)
	case UnregisteredCommand:
		reply, err = d.unregistered(ctx, src)
	case UnknownCommand:
		reply = "請輸入正確格式的指令喔！\n輸入 bot/功能查詢 查看可用指令。"
	}
	if err != nil {
		return "", false, err
	}
	return reply, true, nil
}

func (d *Dispatcher) unregistered(ctx context.Context, src domain.Source) (string, error) {
	if src.Kind != domain.SourceGroup {
		return "請在群組中使用此指令。", nil
	}
	report, err := d.members.Unregistered(ctx, src.GroupID)
	if err != nil {
		return "", err
	}
	if report.Unavailable {
		return "⚠️ 無法取得群組成員 ID，請確認 BOT 已加入群組", nil
	}
	if len(report.Names) == 0 {
		return "所有成員都已經完成登錄", nil
	}
	lines := make([]string, 0, len(report.Names)+1)
	lines = append(lines, "以下成員尚未登錄遊戲帳號：")
	for i, name := range report.Names {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, name))
	}
	return strings.Join(lines, "\n"), nil
}
