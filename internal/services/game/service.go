package game

//go:generate mockgen -destination=mock/mock_service.go -package=mockgame -source=service.go

import (
	"context"
	"sync"

	"github.com/KirkDiggler/pbta-bot-discord/internal/dice"
	gamedomain "github.com/KirkDiggler/pbta-bot-discord/internal/domain/game"
	boterr "github.com/KirkDiggler/pbta-bot-discord/internal/errors"
	"github.com/KirkDiggler/pbta-bot-discord/internal/members"
	"github.com/KirkDiggler/pbta-bot-discord/internal/repositories/experience"
	"github.com/KirkDiggler/pbta-bot-discord/internal/repositories/sheets"
)

// Experience needed to level up, and the amount spent doing so.
// Marks past the threshold bank toward further level-ups.
const (
	levelUpThreshold = 5
	levelUpCost      = 5
)

// Actor is the participant a command acts on: the speaker, or the
// player a keeper named
type Actor struct {
	ID   string
	Name string
}

// Service drives the per-room game state: game selection, character
// sheets, check resolution and the experience state machine
type Service interface {
	// MigrateLegacyKeys rewrites pre-namespacing ledger keys. Run once
	// at startup.
	MigrateLegacyKeys(ctx context.Context) error

	// Grammar returns the compiled stat vocabulary for a room
	Grammar(ctx context.Context, roomID string) (*gamedomain.Grammar, error)

	// SetGame selects a game for a room. A room with an active game
	// keeps it; the output reports the conflict.
	SetGame(ctx context.Context, input *SetGameInput) (*SetGameOutput, error)

	// SetStats applies every stat clause in a message to the actor's
	// sheet, all-or-nothing
	SetStats(ctx context.Context, input *SetStatsInput) (*SetStatsOutput, error)

	// GetSheet returns the actor's full stat mapping
	GetSheet(ctx context.Context, input *GetSheetInput) (*GetSheetOutput, error)

	// Roll resolves a 2d6+stat+modifier check. A Failure band marks
	// experience for the actor.
	Roll(ctx context.Context, input *RollInput) (*RollOutput, error)

	// MarkExperience increments the actor's experience by one
	MarkExperience(ctx context.Context, input *MarkExperienceInput) (*MarkExperienceOutput, error)

	// GetExperience reads the actor's experience count
	GetExperience(ctx context.Context, input *GetExperienceInput) (*GetExperienceOutput, error)

	// LevelUp spends experience for a level, requiring the threshold
	LevelUp(ctx context.Context, input *LevelUpInput) (*LevelUpOutput, error)
}

// SetGameInput names the game to run in a room
type SetGameInput struct {
	RoomID string
	Name   string
}

// SetGameOutput reports the selected game, or that one was already active
type SetGameOutput struct {
	Game          *gamedomain.Definition
	AlreadyActive bool
}

// SetStatsInput carries the raw message text; the room grammar extracts
// the clauses so multi-clause messages parse against the live vocabulary
type SetStatsInput struct {
	RoomID      string
	GuildID     string
	SpeakerID   string
	SpeakerName string
	Nick        string
	Text        string
}

// SetStatsOutput returns the merged sheet after the write
type SetStatsOutput struct {
	Actor Actor
	Stats map[string]int
}

// GetSheetInput identifies whose sheet to read
type GetSheetInput struct {
	RoomID      string
	GuildID     string
	SpeakerID   string
	SpeakerName string
	Nick        string
}

// GetSheetOutput returns the actor's current sheet
type GetSheetOutput struct {
	Actor Actor
	Stats map[string]int
}

// RollInput resolves a check against one stat with an optional modifier
type RollInput struct {
	RoomID      string
	GuildID     string
	SpeakerID   string
	SpeakerName string
	Nick        string
	Stat        string
	Modifier    int
}

// RollOutput carries the resolved check. Experience is set when the
// roll failed and a mark was recorded.
type RollOutput struct {
	Actor      Actor
	Check      *gamedomain.CheckResult
	Experience *MarkExperienceOutput
}

// MarkExperienceInput identifies who earns the mark
type MarkExperienceInput struct {
	RoomID      string
	GuildID     string
	SpeakerID   string
	SpeakerName string
	Nick        string
}

// MarkExperienceOutput reports the new count and whether a level-up is
// available
type MarkExperienceOutput struct {
	Actor      Actor
	Total      int
	CanLevelUp bool
}

// GetExperienceInput identifies whose count to read
type GetExperienceInput struct {
	RoomID      string
	GuildID     string
	SpeakerID   string
	SpeakerName string
	Nick        string
}

// GetExperienceOutput returns the current count
type GetExperienceOutput struct {
	Actor Actor
	Total int
}

// LevelUpInput identifies who levels up
type LevelUpInput struct {
	RoomID      string
	GuildID     string
	SpeakerID   string
	SpeakerName string
	Nick        string
}

// LevelUpOutput returns the experience left after spending the cost
type LevelUpOutput struct {
	Actor     Actor
	Remaining int
}

// service implements the Service interface
type service struct {
	sheetRepo      sheets.Repository
	experienceRepo experience.Repository
	members        members.Provider
	roller         dice.Roller
	keeperID       string

	// One exclusive critical section per room spans each command's
	// full read-modify-persist cycle
	mu       sync.Mutex
	roomLock map[string]*sync.Mutex

	grammars grammarCache
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	SheetRepository      sheets.Repository     // Required
	ExperienceRepository experience.Repository // Required
	Members              members.Provider      // Required
	Roller               dice.Roller           // Optional, random dice if nil
	KeeperID             string                // Optional, disables keeper commands if empty
}

// NewService creates a new game service
func NewService(cfg *ServiceConfig) Service {
	if cfg.SheetRepository == nil {
		panic("sheet repository is required")
	}
	if cfg.ExperienceRepository == nil {
		panic("experience repository is required")
	}
	if cfg.Members == nil {
		panic("members provider is required")
	}

	svc := &service{
		sheetRepo:      cfg.SheetRepository,
		experienceRepo: cfg.ExperienceRepository,
		members:        cfg.Members,
		roller:         cfg.Roller,
		keeperID:       cfg.KeeperID,
		roomLock:       make(map[string]*sync.Mutex),
	}
	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}

	return svc
}

// lockRoom returns the held mutex for a room; callers defer Unlock
func (s *service) lockRoom(roomID string) *sync.Mutex {
	s.mu.Lock()
	l, ok := s.roomLock[roomID]
	if !ok {
		l = &sync.Mutex{}
		s.roomLock[roomID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l
}

// resolveActor applies the keeper rule: a nickname is honored only when
// a keeper is configured and the speaker is that keeper; otherwise the
// speaker acts for themselves. An absent nickname always resolves to
// the speaker.
func (s *service) resolveActor(ctx context.Context, guildID, speakerID, speakerName, nick string) (Actor, error) {
	if nick == "" || s.keeperID == "" || speakerID != s.keeperID {
		return Actor{ID: speakerID, Name: speakerName}, nil
	}

	id, err := s.members.ResolveDisplayName(ctx, guildID, nick)
	if err != nil {
		if boterr.IsNotFound(err) {
			return Actor{}, boterr.NotFoundf("could not find the user %s", nick).
				WithMeta("missing", "member").
				WithMeta("user", nick)
		}
		return Actor{}, boterr.Wrap(err, "failed to resolve nickname")
	}

	return Actor{ID: id, Name: nick}, nil
}
