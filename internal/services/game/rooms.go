package game

import (
	"context"
	"strings"

	gamedomain "github.com/KirkDiggler/pbta-bot-discord/internal/domain/game"
	boterr "github.com/KirkDiggler/pbta-bot-discord/internal/errors"
)

// SetGame selects a game for a room. Once a room has an active game a
// later SetGame never overwrites it; the output reports the conflict so
// an in-progress campaign cannot be clobbered.
func (s *service) SetGame(ctx context.Context, input *SetGameInput) (*SetGameOutput, error) {
	if input == nil {
		return nil, boterr.InvalidArgument("input cannot be nil")
	}

	def, ok := gamedomain.Find(input.Name)
	if !ok {
		return nil, boterr.InvalidArgumentf("unknown game %q", strings.TrimSpace(input.Name)).
			WithMeta("options", gamedomain.Names())
	}

	defer s.lockRoom(input.RoomID).Unlock()

	if _, err := s.sheetRepo.GetStatNames(ctx, input.RoomID); err == nil {
		return &SetGameOutput{Game: def, AlreadyActive: true}, nil
	} else if !boterr.IsNotFound(err) {
		return nil, err
	}

	if err := s.sheetRepo.SetStatNames(ctx, input.RoomID, def.StatNames); err != nil {
		return nil, err
	}
	s.grammars.invalidate(input.RoomID)

	return &SetGameOutput{Game: def}, nil
}
