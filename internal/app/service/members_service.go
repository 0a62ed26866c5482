package service

import (
	"context"
	"fmt"
)

// memberBatchSize bounds the parameter count of one ANY(...) roster query.
// Any positive value yields the same result set.
const memberBatchSize = 100

type MemberService struct {
	api       LineAPI
	players   PlayerRepo
	batchSize int
}

func NewMemberService(api LineAPI, players PlayerRepo) *MemberService {
	return &MemberService{api: api, players: players, batchSize: memberBatchSize}
}

// UnregisteredReport distinguishes "member ids could not be retrieved" from
// "every member is registered"; callers must not infer either from an empty
// name list alone.
type UnregisteredReport struct {
	Unavailable bool
	Names       []string // display names in group-enumeration order
}

// Unregistered diffs the live group membership against the roster and names
// the members with no registered account.
func (s *MemberService) Unregistered(ctx context.Context, groupID string) (UnregisteredReport, error) {
	memberIDs, err := s.api.GetGroupMemberIDs(ctx, groupID)
	if err != nil {
		return UnregisteredReport{}, err
	}
	if len(memberIDs) == 0 {
		return UnregisteredReport{Unavailable: true}, nil
	}

	registered := map[string]struct{}{}
	for i := 0; i < len(memberIDs); i += s.batchSize {
		end := i + s.batchSize
		if end > len(memberIDs) {
			end = len(memberIDs)
		}
		batch, err := s.players.FilterRegistered(ctx, memberIDs[i:end])
		if err != nil {
			return UnregisteredReport{}, err
		}
		for id := range batch {
			registered[id] = struct{}{}
		}
	}

	var names []string
	for _, id := range memberIDs {
		if _, ok := registered[id]; ok {
			continue
		}
		// A failed profile lookup (member left in the meantime, transient
		// error) must not abort the whole report.
		profile, err := s.api.GetGroupMemberProfile(ctx, groupID, id)
		if err != nil {
			names = append(names, fmt.Sprintf("無法取得名稱 (%s)", shortID(id)))
			continue
		}
		names = append(names, profile.DisplayName)
	}
	return UnregisteredReport{Names: names}, nil
}

func shortID(id string) string {
	if len(id) > 6 {
		return id[:6]
	}
	return id
}
