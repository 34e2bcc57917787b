package game_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mockdice "github.com/KirkDiggler/pbta-bot-discord/internal/dice/mock"
	gamedomain "github.com/KirkDiggler/pbta-bot-discord/internal/domain/game"
	boterr "github.com/KirkDiggler/pbta-bot-discord/internal/errors"
	mockmembers "github.com/KirkDiggler/pbta-bot-discord/internal/members/mocks"
	mockexperience "github.com/KirkDiggler/pbta-bot-discord/internal/repositories/experience/mocks"
	mocksheets "github.com/KirkDiggler/pbta-bot-discord/internal/repositories/sheets/mocks"
	gamesvc "github.com/KirkDiggler/pbta-bot-discord/internal/services/game"
)

const (
	testRoom   = "room-1"
	testGuild  = "guild-1"
	keeperID   = "keeper-id"
	playerID   = "player-id"
	playerName = "Dana"
)

var motwStats = []string{"cool", "tough", "sharp", "charm", "weird"}

type fixture struct {
	ctrl       *gomock.Controller
	sheets     *mocksheets.MockRepository
	experience *mockexperience.MockRepository
	members    *mockmembers.MockProvider
	roller     *mockdice.ManualMockRoller
	svc        gamesvc.Service
	ctx        context.Context
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		ctrl:       ctrl,
		sheets:     mocksheets.NewMockRepository(ctrl),
		experience: mockexperience.NewMockRepository(ctrl),
		members:    mockmembers.NewMockProvider(ctrl),
		roller:     mockdice.NewManualMockRoller(),
		ctx:        context.Background(),
	}
	f.svc = gamesvc.NewService(&gamesvc.ServiceConfig{
		SheetRepository:      f.sheets,
		ExperienceRepository: f.experience,
		Members:              f.members,
		Roller:               f.roller,
		KeeperID:             keeperID,
	})
	return f
}

func (f *fixture) expectGrammar() {
	f.sheets.EXPECT().GetStatNames(gomock.Any(), testRoom).Return(motwStats, nil)
}

func TestSetGame(t *testing.T) {
	t.Run("selects a game for a fresh room", func(t *testing.T) {
		f := newFixture(t)
		f.sheets.EXPECT().GetStatNames(gomock.Any(), testRoom).
			Return(nil, boterr.NotFound("no game selected for room room-1"))
		f.sheets.EXPECT().SetStatNames(gomock.Any(), testRoom, motwStats).Return(nil)

		out, err := f.svc.SetGame(f.ctx, &gamesvc.SetGameInput{RoomID: testRoom, Name: "MotW"})
		require.NoError(t, err)
		assert.False(t, out.AlreadyActive)
		assert.Equal(t, "motw", out.Game.ID)
	})

	t.Run("unknown game lists the options", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.SetGame(f.ctx, &gamesvc.SetGameInput{RoomID: testRoom, Name: "dnd5e"})
		require.Error(t, err)
		assert.True(t, boterr.IsInvalidArgument(err))
		assert.Equal(t, []string{"motw", "pbtastartrek"}, boterr.GetMeta(err)["options"])
	})

	t.Run("second setgame never changes the vocabulary", func(t *testing.T) {
		f := newFixture(t)
		f.sheets.EXPECT().GetStatNames(gomock.Any(), testRoom).Return(motwStats, nil)
		// No SetStatNames expectation: a write would fail the test

		out, err := f.svc.SetGame(f.ctx, &gamesvc.SetGameInput{RoomID: testRoom, Name: "pbtastartrek"})
		require.NoError(t, err)
		assert.True(t, out.AlreadyActive)
	})
}

func TestSetStats(t *testing.T) {
	t.Run("merges clauses into the sheet", func(t *testing.T) {
		f := newFixture(t)
		f.expectGrammar()
		f.sheets.EXPECT().GetSheet(gomock.Any(), testRoom, playerID).
			Return(map[string]int{"cool": 1, "weird": -1}, nil)
		f.sheets.EXPECT().SetSheet(gomock.Any(), testRoom, playerID,
			map[string]int{"cool": 2, "sharp": 1, "weird": -1}).Return(nil)

		out, err := f.svc.SetStats(f.ctx, &gamesvc.SetStatsInput{
			RoomID:      testRoom,
			GuildID:     testGuild,
			SpeakerID:   playerID,
			SpeakerName: playerName,
			Text:        "!cool +2 !sharp +1",
		})
		require.NoError(t, err)
		assert.Equal(t, playerID, out.Actor.ID)
		assert.Equal(t, map[string]int{"cool": 2, "sharp": 1, "weird": -1}, out.Stats)
	})

	t.Run("last clause for the same stat wins", func(t *testing.T) {
		f := newFixture(t)
		f.expectGrammar()
		f.sheets.EXPECT().GetSheet(gomock.Any(), testRoom, playerID).
			Return(nil, boterr.NotFound("no stats"))
		f.sheets.EXPECT().SetSheet(gomock.Any(), testRoom, playerID,
			map[string]int{"cool": -2}).Return(nil)

		out, err := f.svc.SetStats(f.ctx, &gamesvc.SetStatsInput{
			RoomID:      testRoom,
			GuildID:     testGuild,
			SpeakerID:   playerID,
			SpeakerName: playerName,
			Text:        "!cool +1 !cool -2",
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"cool": -2}, out.Stats)
	})

	t.Run("one invalid stat rejects the whole batch", func(t *testing.T) {
		f := newFixture(t)
		f.expectGrammar()
		// No GetSheet/SetSheet expectations: nothing may be written

		_, err := f.svc.SetStats(f.ctx, &gamesvc.SetStatsInput{
			RoomID:      testRoom,
			GuildID:     testGuild,
			SpeakerID:   playerID,
			SpeakerName: playerName,
			Text:        "!cool +1 !tough +1 !shields +2",
		})
		require.Error(t, err)
		assert.True(t, boterr.IsValidation(err))
		meta := boterr.GetMeta(err)
		assert.Equal(t, []string{"shields"}, meta["invalid"])
		assert.Equal(t, motwStats, meta["valid"])
	})

	t.Run("stat word with no clauses reports missing clauses", func(t *testing.T) {
		f := newFixture(t)
		f.expectGrammar()

		_, err := f.svc.SetStats(f.ctx, &gamesvc.SetStatsInput{
			RoomID:      testRoom,
			GuildID:     testGuild,
			SpeakerID:   playerID,
			SpeakerName: playerName,
			Text:        "!cool",
		})
		require.Error(t, err)
		assert.True(t, boterr.IsNotFound(err))
		assert.Equal(t, "clauses", boterr.GetMeta(err)["missing"])
	})

	t.Run("no active game reports missing game", func(t *testing.T) {
		f := newFixture(t)
		f.sheets.EXPECT().GetStatNames(gomock.Any(), testRoom).
			Return(nil, boterr.NotFound("no game selected for room room-1"))

		_, err := f.svc.SetStats(f.ctx, &gamesvc.SetStatsInput{
			RoomID:      testRoom,
			GuildID:     testGuild,
			SpeakerID:   playerID,
			SpeakerName: playerName,
			Text:        "!cool +1",
		})
		require.Error(t, err)
		assert.Equal(t, "game", boterr.GetMeta(err)["missing"])
	})

	t.Run("keeper sets stats for a named player", func(t *testing.T) {
		f := newFixture(t)
		f.members.EXPECT().ResolveDisplayName(gomock.Any(), testGuild, "Morgan").
			Return("morgan-id", nil)
		f.expectGrammar()
		f.sheets.EXPECT().GetSheet(gomock.Any(), testRoom, "morgan-id").
			Return(nil, boterr.NotFound("no stats"))
		f.sheets.EXPECT().SetSheet(gomock.Any(), testRoom, "morgan-id",
			map[string]int{"charm": 1}).Return(nil)

		out, err := f.svc.SetStats(f.ctx, &gamesvc.SetStatsInput{
			RoomID:      testRoom,
			GuildID:     testGuild,
			SpeakerID:   keeperID,
			SpeakerName: "The Keeper",
			Nick:        "Morgan",
			Text:        "!charm +1",
		})
		require.NoError(t, err)
		assert.Equal(t, "morgan-id", out.Actor.ID)
		assert.Equal(t, "Morgan", out.Actor.Name)
	})

	t.Run("non-keeper nickname is ignored", func(t *testing.T) {
		f := newFixture(t)
		f.expectGrammar()
		f.sheets.EXPECT().GetSheet(gomock.Any(), testRoom, playerID).
			Return(nil, boterr.NotFound("no stats"))
		f.sheets.EXPECT().SetSheet(gomock.Any(), testRoom, playerID,
			map[string]int{"cool": 1}).Return(nil)

		out, err := f.svc.SetStats(f.ctx, &gamesvc.SetStatsInput{
			RoomID:      testRoom,
			GuildID:     testGuild,
			SpeakerID:   playerID,
			SpeakerName: playerName,
			Nick:        "Morgan",
			Text:        "!cool +1",
		})
		require.NoError(t, err)
		assert.Equal(t, playerID, out.Actor.ID)
	})

	t.Run("unresolved nickname aborts before any read or write", func(t *testing.T) {
		f := newFixture(t)
		f.members.EXPECT().ResolveDisplayName(gomock.Any(), testGuild, "Ghost").
			Return("", boterr.NotFound("no member named Ghost"))

		_, err := f.svc.SetStats(f.ctx, &gamesvc.SetStatsInput{
			RoomID:      testRoom,
			GuildID:     testGuild,
			SpeakerID:   keeperID,
			SpeakerName: "The Keeper",
			Nick:        "Ghost",
			Text:        "!cool +1",
		})
		require.Error(t, err)
		assert.Equal(t, "member", boterr.GetMeta(err)["missing"])
		assert.Equal(t, "Ghost", boterr.GetMeta(err)["user"])
	})

	t.Run("persistence failure propagates", func(t *testing.T) {
		f := newFixture(t)
		f.expectGrammar()
		f.sheets.EXPECT().GetSheet(gomock.Any(), testRoom, playerID).
			Return(nil, boterr.NotFound("no stats"))
		f.sheets.EXPECT().SetSheet(gomock.Any(), testRoom, playerID, gomock.Any()).
			Return(boterr.Internal("failed to set stats in Redis"))

		_, err := f.svc.SetStats(f.ctx, &gamesvc.SetStatsInput{
			RoomID:      testRoom,
			GuildID:     testGuild,
			SpeakerID:   playerID,
			SpeakerName: playerName,
			Text:        "!cool +1",
		})
		require.Error(t, err)
		assert.True(t, boterr.IsInternal(err))
	})
}

func TestRoll(t *testing.T) {
	t.Run("mixed success renders the equation", func(t *testing.T) {
		f := newFixture(t)
		f.expectGrammar()
		f.sheets.EXPECT().GetSheet(gomock.Any(), testRoom, playerID).
			Return(map[string]int{"cool": 1}, nil)
		f.roller.SetRolls([]int{3, 4})

		out, err := f.svc.Roll(f.ctx, &gamesvc.RollInput{
			RoomID:      testRoom,
			GuildID:     testGuild,
			SpeakerID:   playerID,
			SpeakerName: playerName,
			Stat:        "cool",
		})
		require.NoError(t, err)
		assert.Equal(t, 8, out.Check.Total)
		assert.Equal(t, gamedomain.BandMixed, out.Check.Band)
		assert.Equal(t, "3 + 4 + 1", out.Check.Equation())
		assert.Nil(t, out.Experience, "a mixed success must not mark experience")
	})

	t.Run("failure marks experience for the roller", func(t *testing.T) {
		f := newFixture(t)
		f.expectGrammar()
		f.sheets.EXPECT().GetSheet(gomock.Any(), testRoom, playerID).
			Return(map[string]int{"cool": 0}, nil)
		f.roller.SetRolls([]int{2, 3})
		f.experience.EXPECT().Get(gomock.Any(), testRoom, playerID).Return(0, nil)
		f.experience.EXPECT().Set(gomock.Any(), testRoom, playerID, 1).Return(nil)

		out, err := f.svc.Roll(f.ctx, &gamesvc.RollInput{
			RoomID:      testRoom,
			GuildID:     testGuild,
			SpeakerID:   playerID,
			SpeakerName: playerName,
			Stat:        "cool",
		})
		require.NoError(t, err)
		assert.Equal(t, gamedomain.BandFailure, out.Check.Band)
		require.NotNil(t, out.Experience)
		assert.Equal(t, 1, out.Experience.Total)
		assert.False(t, out.Experience.CanLevelUp)
	})

	t.Run("keeper rolling for a player marks the player", func(t *testing.T) {
		f := newFixture(t)
		f.members.EXPECT().ResolveDisplayName(gomock.Any(), testGuild, "Morgan").
			Return("morgan-id", nil)
		f.expectGrammar()
		f.sheets.EXPECT().GetSheet(gomock.Any(), testRoom, "morgan-id").
			Return(map[string]int{"weird": -1}, nil)
		f.roller.SetRolls([]int{1, 2})
		f.experience.EXPECT().Get(gomock.Any(), testRoom, "morgan-id").Return(4, nil)
		f.experience.EXPECT().Set(gomock.Any(), testRoom, "morgan-id", 5).Return(nil)

		out, err := f.svc.Roll(f.ctx, &gamesvc.RollInput{
			RoomID:      testRoom,
			GuildID:     testGuild,
			SpeakerID:   keeperID,
			SpeakerName: "The Keeper",
			Nick:        "Morgan",
			Stat:        "weird",
		})
		require.NoError(t, err)
		require.NotNil(t, out.Experience)
		assert.Equal(t, "morgan-id", out.Experience.Actor.ID)
		assert.True(t, out.Experience.CanLevelUp)
	})

	t.Run("modifier feeds the total and the equation", func(t *testing.T) {
		f := newFixture(t)
		f.expectGrammar()
		f.sheets.EXPECT().GetSheet(gomock.Any(), testRoom, playerID).
			Return(map[string]int{"sharp": 2}, nil)
		f.roller.SetRolls([]int{5, 4})

		out, err := f.svc.Roll(f.ctx, &gamesvc.RollInput{
			RoomID:      testRoom,
			GuildID:     testGuild,
			SpeakerID:   playerID,
			SpeakerName: playerName,
			Stat:        "sharp",
			Modifier:    -1,
		})
		require.NoError(t, err)
		assert.Equal(t, 10, out.Check.Total)
		assert.Equal(t, gamedomain.BandFullSuccess, out.Check.Band)
		assert.Equal(t, "5 + 4 + 2 = 11 - 1", out.Check.Equation())
	})

	t.Run("no sheet reports which command to run", func(t *testing.T) {
		f := newFixture(t)
		f.expectGrammar()
		f.sheets.EXPECT().GetSheet(gomock.Any(), testRoom, playerID).
			Return(nil, boterr.NotFound("no stats"))

		_, err := f.svc.Roll(f.ctx, &gamesvc.RollInput{
			RoomID:      testRoom,
			GuildID:     testGuild,
			SpeakerID:   playerID,
			SpeakerName: playerName,
			Stat:        "cool",
		})
		require.Error(t, err)
		meta := boterr.GetMeta(err)
		assert.Equal(t, "sheet", meta["missing"])
		assert.Equal(t, playerName, meta["user"])
		assert.Equal(t, "cool", meta["stat"])
	})

	t.Run("unset stat reports the stat", func(t *testing.T) {
		f := newFixture(t)
		f.expectGrammar()
		f.sheets.EXPECT().GetSheet(gomock.Any(), testRoom, playerID).
			Return(map[string]int{"tough": 1}, nil)

		_, err := f.svc.Roll(f.ctx, &gamesvc.RollInput{
			RoomID:      testRoom,
			GuildID:     testGuild,
			SpeakerID:   playerID,
			SpeakerName: playerName,
			Stat:        "weird",
		})
		require.Error(t, err)
		assert.Equal(t, "stat", boterr.GetMeta(err)["missing"])
		assert.Equal(t, "weird", boterr.GetMeta(err)["stat"])
	})
}

func TestExperience(t *testing.T) {
	markInput := &gamesvc.MarkExperienceInput{
		RoomID:      testRoom,
		GuildID:     testGuild,
		SpeakerID:   playerID,
		SpeakerName: playerName,
	}

	t.Run("mark increments by one", func(t *testing.T) {
		f := newFixture(t)
		f.experience.EXPECT().Get(gomock.Any(), testRoom, playerID).Return(2, nil)
		f.experience.EXPECT().Set(gomock.Any(), testRoom, playerID, 3).Return(nil)

		out, err := f.svc.MarkExperience(f.ctx, markInput)
		require.NoError(t, err)
		assert.Equal(t, 3, out.Total)
		assert.False(t, out.CanLevelUp)
	})

	t.Run("every mark at or past the threshold notifies again", func(t *testing.T) {
		f := newFixture(t)
		f.experience.EXPECT().Get(gomock.Any(), testRoom, playerID).Return(4, nil)
		f.experience.EXPECT().Set(gomock.Any(), testRoom, playerID, 5).Return(nil)
		f.experience.EXPECT().Get(gomock.Any(), testRoom, playerID).Return(5, nil)
		f.experience.EXPECT().Set(gomock.Any(), testRoom, playerID, 6).Return(nil)

		out, err := f.svc.MarkExperience(f.ctx, markInput)
		require.NoError(t, err)
		assert.True(t, out.CanLevelUp)

		out, err = f.svc.MarkExperience(f.ctx, markInput)
		require.NoError(t, err)
		assert.True(t, out.CanLevelUp)
	})

	t.Run("query reads absent as zero", func(t *testing.T) {
		f := newFixture(t)
		f.experience.EXPECT().Get(gomock.Any(), testRoom, playerID).Return(0, nil)

		out, err := f.svc.GetExperience(f.ctx, &gamesvc.GetExperienceInput{
			RoomID:      testRoom,
			GuildID:     testGuild,
			SpeakerID:   playerID,
			SpeakerName: playerName,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, out.Total)
	})
}

func TestLevelUp(t *testing.T) {
	input := &gamesvc.LevelUpInput{
		RoomID:      testRoom,
		GuildID:     testGuild,
		SpeakerID:   playerID,
		SpeakerName: playerName,
	}

	t.Run("at exactly five spends down to zero", func(t *testing.T) {
		f := newFixture(t)
		f.experience.EXPECT().Get(gomock.Any(), testRoom, playerID).Return(5, nil)
		f.experience.EXPECT().Set(gomock.Any(), testRoom, playerID, 0).Return(nil)

		out, err := f.svc.LevelUp(f.ctx, input)
		require.NoError(t, err)
		assert.Equal(t, 0, out.Remaining)
	})

	t.Run("banked marks beyond the cost remain", func(t *testing.T) {
		f := newFixture(t)
		f.experience.EXPECT().Get(gomock.Any(), testRoom, playerID).Return(11, nil)
		f.experience.EXPECT().Set(gomock.Any(), testRoom, playerID, 6).Return(nil)

		out, err := f.svc.LevelUp(f.ctx, input)
		require.NoError(t, err)
		assert.Equal(t, 6, out.Remaining)
	})

	t.Run("below the threshold fails and leaves the count unchanged", func(t *testing.T) {
		f := newFixture(t)
		f.experience.EXPECT().Get(gomock.Any(), testRoom, playerID).Return(4, nil)
		// No Set expectation: a write would fail the test

		_, err := f.svc.LevelUp(f.ctx, input)
		require.Error(t, err)
		assert.True(t, boterr.IsValidation(err))
		assert.Equal(t, 4, boterr.GetMeta(err)["count"])
	})
}

func TestGrammarCache(t *testing.T) {
	t.Run("built once per room until invalidated", func(t *testing.T) {
		f := newFixture(t)
		f.sheets.EXPECT().GetStatNames(gomock.Any(), testRoom).Return(motwStats, nil).Times(1)

		g1, err := f.svc.Grammar(f.ctx, testRoom)
		require.NoError(t, err)
		g2, err := f.svc.Grammar(f.ctx, testRoom)
		require.NoError(t, err)
		assert.Same(t, g1, g2)
	})

	t.Run("rebuilt after the room's game changes", func(t *testing.T) {
		f := newFixture(t)

		f.sheets.EXPECT().GetStatNames(gomock.Any(), testRoom).Return(motwStats, nil).Times(1)
		g1, err := f.svc.Grammar(f.ctx, testRoom)
		require.NoError(t, err)
		_, ok := g1.MatchStat("cool")
		assert.True(t, ok)

		// A fresh room in a second service: selecting a game must
		// invalidate whatever grammar was cached for that room
		other := newFixture(t)
		other.sheets.EXPECT().GetStatNames(gomock.Any(), testRoom).Return(motwStats, nil).Times(1)
		_, err = other.svc.Grammar(f.ctx, testRoom)
		require.NoError(t, err)

		other.sheets.EXPECT().GetStatNames(gomock.Any(), testRoom).
			Return(nil, boterr.NotFound("no game selected"))
		other.sheets.EXPECT().SetStatNames(gomock.Any(), testRoom,
			[]string{"aggressive", "bold", "talk", "tech", "morale", "shields"}).Return(nil)
		_, err = other.svc.SetGame(f.ctx, &gamesvc.SetGameInput{RoomID: testRoom, Name: "pbtastartrek"})
		require.NoError(t, err)

		other.sheets.EXPECT().GetStatNames(gomock.Any(), testRoom).
			Return([]string{"aggressive", "bold", "talk", "tech", "morale", "shields"}, nil).Times(1)
		g2, err := other.svc.Grammar(f.ctx, testRoom)
		require.NoError(t, err)
		_, ok = g2.MatchStat("shields")
		assert.True(t, ok)
		_, ok = g2.MatchStat("cool")
		assert.False(t, ok)
	})
}
