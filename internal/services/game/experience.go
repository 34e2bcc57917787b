package game

import (
	"context"

	boterr "github.com/KirkDiggler/pbta-bot-discord/internal/errors"
)

// mark records one experience for the actor. Callers must hold the
// room lock.
func (s *service) mark(ctx context.Context, roomID string, actor Actor) (*MarkExperienceOutput, error) {
	count, err := s.experienceRepo.Get(ctx, roomID, actor.ID)
	if err != nil {
		return nil, err
	}

	count++
	if err := s.experienceRepo.Set(ctx, roomID, actor.ID, count); err != nil {
		return nil, err
	}

	return &MarkExperienceOutput{
		Actor:      actor,
		Total:      count,
		CanLevelUp: count >= levelUpThreshold,
	}, nil
}

// MarkExperience increments the actor's experience by one
func (s *service) MarkExperience(ctx context.Context, input *MarkExperienceInput) (*MarkExperienceOutput, error) {
	if input == nil {
		return nil, boterr.InvalidArgument("input cannot be nil")
	}

	actor, err := s.resolveActor(ctx, input.GuildID, input.SpeakerID, input.SpeakerName, input.Nick)
	if err != nil {
		return nil, err
	}

	defer s.lockRoom(input.RoomID).Unlock()

	return s.mark(ctx, input.RoomID, actor)
}

// GetExperience reads the actor's experience count. An absent record
// reads as 0.
func (s *service) GetExperience(ctx context.Context, input *GetExperienceInput) (*GetExperienceOutput, error) {
	if input == nil {
		return nil, boterr.InvalidArgument("input cannot be nil")
	}

	actor, err := s.resolveActor(ctx, input.GuildID, input.SpeakerID, input.SpeakerName, input.Nick)
	if err != nil {
		return nil, err
	}

	defer s.lockRoom(input.RoomID).Unlock()

	count, err := s.experienceRepo.Get(ctx, input.RoomID, actor.ID)
	if err != nil {
		return nil, err
	}

	return &GetExperienceOutput{Actor: actor, Total: count}, nil
}

// LevelUp spends levelUpCost experience. Banked marks beyond the cost
// remain, so several level-ups can be stored up.
func (s *service) LevelUp(ctx context.Context, input *LevelUpInput) (*LevelUpOutput, error) {
	if input == nil {
		return nil, boterr.InvalidArgument("input cannot be nil")
	}

	actor, err := s.resolveActor(ctx, input.GuildID, input.SpeakerID, input.SpeakerName, input.Nick)
	if err != nil {
		return nil, err
	}

	defer s.lockRoom(input.RoomID).Unlock()

	count, err := s.experienceRepo.Get(ctx, input.RoomID, actor.ID)
	if err != nil {
		return nil, err
	}

	if count < levelUpThreshold {
		return nil, boterr.Validationf("%s does not have enough experience to level up", actor.Name).
			WithMeta("user", actor.Name).
			WithMeta("count", count)
	}

	remaining := count - levelUpCost
	if err := s.experienceRepo.Set(ctx, input.RoomID, actor.ID, remaining); err != nil {
		return nil, err
	}

	return &LevelUpOutput{Actor: actor, Remaining: remaining}, nil
}
