package service

import (
	"context"
	"log"
	"time"
)

type EventsService struct {
	api     LineAPI
	players PlayerRepo
	liffURL string
}

func NewEventsService(api LineAPI, players PlayerRepo, liffURL string) *EventsService {
	return &EventsService{api: api, players: players, liffURL: liffURL}
}

// HandleMemberJoined pushes the static welcome message with the command
// cheat-sheet to the group. No roster access.
func (s *EventsService) HandleMemberJoined(ctx context.Context, groupID string) error {
	welcome := "歡迎加入天謀雲雨群組\n以下為本群機器人功能：\n" + cheatSheet(s.liffURL)
	return s.api.PushText(ctx, groupID, welcome)
}

// HandleMemberLeft archives every roster row of the departed member into the
// leave log and removes them, as one transaction. The group gets no
// notification; the log is the only record of the departure.
func (s *EventsService) HandleMemberLeft(ctx context.Context, userID string) error {
	archived, err := s.players.ArchiveDeparture(ctx, userID, time.Now())
	if err != nil {
		return err
	}
	log.Printf("member left: user=%s archived=%d", userID, len(archived))
	return nil
}
