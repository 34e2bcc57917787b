package game

import (
	"context"

	boterr "github.com/KirkDiggler/pbta-bot-discord/internal/errors"
)

// SetStats extracts every stat clause from the message and merges them
// into the actor's sheet. Validation happens before any write: a single
// unknown stat word rejects the whole batch.
func (s *service) SetStats(ctx context.Context, input *SetStatsInput) (*SetStatsOutput, error) {
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

	clauses, invalid := grammar.FindSetClauses(input.Text)
	if len(invalid) > 0 {
		return nil, boterr.Validation("message references unknown stats").
			WithMeta("invalid", invalid).
			WithMeta("valid", grammar.StatNames())
	}
	if len(clauses) == 0 {
		return nil, boterr.NotFound("no stat clauses in message").WithMeta("missing", "clauses")
	}

	sheet, err := s.sheetRepo.GetSheet(ctx, input.RoomID, actor.ID)
	if err != nil {
		if !boterr.IsNotFound(err) {
			return nil, err
		}
		sheet = map[string]int{}
	}

	// Merge in message order so the last clause for a stat wins
	for _, clause := range clauses {
		sheet[clause.Stat] = clause.Value
	}

	if err := s.sheetRepo.SetSheet(ctx, input.RoomID, actor.ID, sheet); err != nil {
		return nil, err
	}

	return &SetStatsOutput{Actor: actor, Stats: sheet}, nil
}

// GetSheet reads the actor's full stat mapping
func (s *service) GetSheet(ctx context.Context, input *GetSheetInput) (*GetSheetOutput, error) {
	if input == nil {
		return nil, boterr.InvalidArgument("input cannot be nil")
	}

	actor, err := s.resolveActor(ctx, input.GuildID, input.SpeakerID, input.SpeakerName, input.Nick)
	if err != nil {
		return nil, err
	}

	defer s.lockRoom(input.RoomID).Unlock()

	sheet, err := s.sheetRepo.GetSheet(ctx, input.RoomID, actor.ID)
	if err != nil {
		if boterr.IsNotFound(err) {
			return nil, boterr.NotFoundf("no stats found for %s", actor.Name).
				WithMeta("missing", "sheet").
				WithMeta("user", actor.Name)
		}
		return nil, err
	}

	return &GetSheetOutput{Actor: actor, Stats: sheet}, nil
}
