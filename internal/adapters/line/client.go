package line

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tienmou/line-roster-bot/internal/domain"
)

// GetGroupMemberIDs walks the paginated member-id listing and returns the
// concatenation of all pages in page order. The continuation token from page
// N feeds the request for page N+1; an empty token ends the walk. Any page
// failure fails the whole call — a partial roster diff would misreport
// registered members as unregistered.
func (c *Client) GetGroupMemberIDs(ctx context.Context, groupID string) ([]string, error) {
	var all []string
	start := ""
	for {
		q := url.Values{}
		if start != "" {
			q.Set("start", start)
		}

		var dto memberIDsDTO
		if err := c.doJSON(ctx, "GET", fmt.Sprintf("/v2/bot/group/%s/members/ids", groupID), q, nil, &dto); err != nil {
			return nil, err
		}
		all = append(all, dto.MemberIDs...)

		if dto.Next == "" {
			return all, nil
		}
		start = dto.Next
	}
}

// GetGroupMemberProfile fetches one member's profile. Fails with ErrNotFound
// when the member already left the group.
func (c *Client) GetGroupMemberProfile(ctx context.Context, groupID, userID string) (*domain.Profile, error) {
	var dto profileDTO
	if err := c.doJSON(ctx, "GET", fmt.Sprintf("/v2/bot/group/%s/member/%s", groupID, userID), nil, nil, &dto); err != nil {
		return nil, err
	}
	return &domain.Profile{UserID: dto.UserID, DisplayName: dto.DisplayName}, nil
}

// ReplyText answers the event that carried replyToken with one text message.
func (c *Client) ReplyText(ctx context.Context, replyToken, text string) error {
	req := replyRequest{
		ReplyToken: replyToken,
		Messages:   []textMessage{{Type: "text", Text: text}},
	}
	return c.doJSON(ctx, "POST", "/v2/bot/message/reply", nil, req, nil)
}

// PushText sends one text message to a group or user id.
func (c *Client) PushText(ctx context.Context, to, text string) error {
	req := pushRequest{
		To:       to,
		Messages: []textMessage{{Type: "text", Text: text}},
	}
	return c.doJSON(ctx, "POST", "/v2/bot/message/push", nil, req, nil)
}
