package line

import "github.com/tienmou/line-roster-bot/internal/domain"

// Webhook payload shapes, decoded from the callback body.

type WebhookPayload struct {
	Destination string  `json:"destination"`
	Events      []Event `json:"events"`
}

type Event struct {
	Type           string        `json:"type"`
	WebhookEventID string        `json:"webhookEventId"`
	ReplyToken     string        `json:"replyToken"`
	Source         EventSource   `json:"source"`
	Message        *EventMessage `json:"message"`
	Joined         *MemberList   `json:"joined"`
	Left           *MemberList   `json:"left"`
}

type EventSource struct {
	Type    string `json:"type"` // user | group | room
	GroupID string `json:"groupId"`
	RoomID  string `json:"roomId"`
	UserID  string `json:"userId"`
}

type EventMessage struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}

type MemberList struct {
	Members []EventSource `json:"members"`
}

// Domain maps the wire source onto the domain type the services consume.
func (s EventSource) Domain() domain.Source {
	return domain.Source{
		Kind:    domain.SourceKind(s.Type),
		GroupID: s.GroupID,
		UserID:  s.UserID,
	}
}
