package game

import (
	"context"

	gamedomain "github.com/KirkDiggler/pbta-bot-discord/internal/domain/game"
	boterr "github.com/KirkDiggler/pbta-bot-discord/internal/errors"
)

// Roll resolves a 2d6+stat+modifier check for the actor. A Failure
// band records exactly one experience mark for the actor, never for
// the keeper who rolled on their behalf.
func (s *service) Roll(ctx context.Context, input *RollInput) (*RollOutput, error) {
	if input == nil {
		return nil, boterr.InvalidArgument("input cannot be nil")
	}

	actor, err := s.resolveActor(ctx, input.GuildID, input.SpeakerID, input.SpeakerName, input.Nick)
	if err != nil {
		return nil, err
	}

	defer s.lockRoom(input.RoomID).Unlock()

	grammar, err := s.Grammar(ctx, input.RoomID)
	if err != nil {
		if boterr.IsNotFound(err) {
			return nil, boterr.NotFound("no game selected").WithMeta("missing", "game")
		}
		return nil, err
	}

	stat, ok := grammar.MatchStat(input.Stat)
	if !ok {
		return nil, boterr.NotFoundf("%s is not a stat of the active game", input.Stat).
			WithMeta("missing", "game")
	}

	sheet, err := s.sheetRepo.GetSheet(ctx, input.RoomID, actor.ID)
	if err != nil {
		if boterr.IsNotFound(err) {
			return nil, boterr.NotFoundf("no stats found for %s", actor.Name).
				WithMeta("missing", "sheet").
				WithMeta("user", actor.Name).
				WithMeta("stat", stat)
		}
		return nil, err
	}

	value, ok := sheet[stat]
	if !ok {
		return nil, boterr.NotFoundf("%s has not set %s", actor.Name, stat).
			WithMeta("missing", "stat").
			WithMeta("user", actor.Name).
			WithMeta("stat", stat)
	}

	rolled, err := s.roller.Roll(2, 6, 0)
	if err != nil {
		return nil, boterr.Wrap(err, "failed to roll dice")
	}

	check := gamedomain.ResolveCheck(rolled.Rolls[0], rolled.Rolls[1], value, input.Modifier)
	out := &RollOutput{Actor: actor, Check: check}

	if check.Band == gamedomain.BandFailure {
		mark, err := s.mark(ctx, input.RoomID, actor)
		if err != nil {
			return nil, err
		}
		out.Experience = mark
	}

	return out, nil
}
