package service

import "strings"

// Command is one parsed bot instruction. Parsing happens once at the dispatch
// boundary; everything downstream works with typed variants instead of raw
// slash segments.
type Command interface{ isCommand() }

type SearchCommand struct{ Term string }         // bot/查詢/<term>, substring on both name fields
type SearchUserNameCommand struct{ Name string } // bot/以Line名稱查詢/<name>, exact
type SearchGameNameCommand struct{ Name string } // bot/以遊戲名稱查詢/<name>, exact
type ListCommand struct{}                        // bot/名單
type HelpCommand struct{}                        // bot/功能查詢
type LatestDepartureCommand struct{}             // bot/最新退群成員
type UnregisteredCommand struct{}                // bot/查詢未登錄成員, group only
type UnknownCommand struct{ Raw string }         // bot/... that matches nothing

func (SearchCommand) isCommand()          {}
func (SearchUserNameCommand) isCommand()  {}
func (SearchGameNameCommand) isCommand()  {}
func (ListCommand) isCommand()            {}
func (HelpCommand) isCommand()            {}
func (LatestDepartureCommand) isCommand() {}
func (UnregisteredCommand) isCommand()    {}
func (UnknownCommand) isCommand()         {}

// ParseCommand maps inbound text onto a Command. The second result is false
// when text does not carry the bot/ prefix at all; such messages get no reply.
// The leading token is matched case-insensitively (bot/ and Bot/ both count).
func ParseCommand(text string) (Command, bool) {
	parts := strings.SplitN(text, "/", 3)
	if len(parts) < 2 || !strings.EqualFold(parts[0], "bot") {
		return nil, false
	}

	arg := ""
	if len(parts) == 3 {
		arg = parts[2]
	}

	switch parts[1] {
	case "查詢":
		if arg != "" {
			return SearchCommand{Term: arg}, true
		}
	case "以Line名稱查詢":
		if arg != "" {
			return SearchUserNameCommand{Name: arg}, true
		}
	case "以遊戲名稱查詢":
		if arg != "" {
			return SearchGameNameCommand{Name: arg}, true
		}
	case "名單":
		if arg == "" {
			return ListCommand{}, true
		}
	case "功能查詢":
		if arg == "" {
			return HelpCommand{}, true
		}
	case "最新退群成員":
		if arg == "" {
			return LatestDepartureCommand{}, true
		}
	case "查詢未登錄成員":
		if arg == "" {
			return UnregisteredCommand{}, true
		}
	}
	return UnknownCommand{Raw: text}, true
}
