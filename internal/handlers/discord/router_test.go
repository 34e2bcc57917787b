package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"

	gamedomain "github.com/KirkDiggler/pbta-bot-discord/internal/domain/game"
)

func TestParseMessage(t *testing.T) {
	grammar := gamedomain.NewGrammar([]string{"cool", "tough", "sharp", "charm", "weird"})

	tests := []struct {
		name    string
		text    string
		grammar *gamedomain.Grammar
		want    Command
	}{
		{
			name:    "ordinary chat is not a command",
			text:    "we should split the party",
			grammar: grammar,
			want:    Command{Kind: KindNone},
		},
		{
			name:    "help",
			text:    "!help",
			grammar: grammar,
			want:    Command{Kind: KindHelp},
		},
		{
			name:    "show stats",
			text:    "!stats",
			grammar: grammar,
			want:    Command{Kind: KindShowStats},
		},
		{
			name:    "show stats for a named player",
			text:    "!stats Morgan",
			grammar: grammar,
			want:    Command{Kind: KindShowStats, Nick: "Morgan"},
		},
		{
			name:    "show experience for a named player",
			text:    "!experience Morgan",
			grammar: grammar,
			want:    Command{Kind: KindShowExperience, Nick: "Morgan"},
		},
		{
			name:    "bang-command nick drops the @ prefix",
			text:    "!stats @Morgan",
			grammar: grammar,
			want:    Command{Kind: KindShowStats, Nick: "Morgan"},
		},
		{
			name:    "level up for an @-named player",
			text:    "!levelup @Morgan",
			grammar: grammar,
			want:    Command{Kind: KindLevelUp, Nick: "Morgan"},
		},
		{
			name:    "level up",
			text:    "!levelup",
			grammar: grammar,
			want:    Command{Kind: KindLevelUp},
		},
		{
			name:    "set game",
			text:    "!setgame motw",
			grammar: nil,
			want:    Command{Kind: KindSetGame, Game: "motw"},
		},
		{
			name:    "set game with the older two-word form",
			text:    "!set game motw",
			grammar: nil,
			want:    Command{Kind: KindSetGame, Game: "motw"},
		},
		{
			name:    "single stat clause",
			text:    "!cool +1",
			grammar: grammar,
			want:    Command{Kind: KindStatSet, Text: "!cool +1"},
		},
		{
			name:    "multiple stat clauses stay in one command",
			text:    "!cool +1 !sharp -1",
			grammar: grammar,
			want:    Command{Kind: KindStatSet, Text: "!cool +1 !sharp -1"},
		},
		{
			name:    "leading nickname clause on a stat set",
			text:    "Morgan !cool +1",
			grammar: grammar,
			want:    Command{Kind: KindStatSet, Nick: "Morgan", Text: "!cool +1"},
		},
		{
			name:    "leading nickname clause drops the @ prefix",
			text:    "@Morgan !cool +1",
			grammar: grammar,
			want:    Command{Kind: KindStatSet, Nick: "Morgan", Text: "!cool +1"},
		},
		{
			name:    "unknown bang word",
			text:    "!frobnicate",
			grammar: grammar,
			want:    Command{Kind: KindUnknown, Word: "frobnicate"},
		},
		{
			name:    "stat word is unknown without a grammar",
			text:    "!cool +1",
			grammar: nil,
			want:    Command{Kind: KindUnknown, Word: "cool"},
		},
		{
			name:    "bare roll",
			text:    "+cool",
			grammar: grammar,
			want:    Command{Kind: KindRoll, Stat: "cool"},
		},
		{
			name:    "roll with modifier",
			text:    "+cool +1",
			grammar: grammar,
			want:    Command{Kind: KindRoll, Stat: "cool", Modifier: 1},
		},
		{
			name:    "roll is case-insensitive and takes negative modifiers",
			text:    "+Weird -1",
			grammar: grammar,
			want:    Command{Kind: KindRoll, Stat: "weird", Modifier: -1},
		},
		{
			name:    "roll modifier may be glued to the stat word",
			text:    "+cool-1",
			grammar: grammar,
			want:    Command{Kind: KindRoll, Stat: "cool", Modifier: -1},
		},
		{
			name:    "roll for a named player",
			text:    "+cool +1 @Morgan",
			grammar: grammar,
			want:    Command{Kind: KindRoll, Stat: "cool", Modifier: 1, Nick: "Morgan"},
		},
		{
			name:    "mark experience",
			text:    "+experience",
			grammar: grammar,
			want:    Command{Kind: KindMarkExperience},
		},
		{
			name:    "mark experience for a named player",
			text:    "+experience Morgan",
			grammar: grammar,
			want:    Command{Kind: KindMarkExperience, Nick: "Morgan"},
		},
		{
			name:    "plus word outside the vocabulary is chat",
			text:    "that was +awesome",
			grammar: grammar,
			want:    Command{Kind: KindNone},
		},
		{
			name:    "plus stat without a grammar is chat",
			text:    "+cool",
			grammar: nil,
			want:    Command{Kind: KindNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMessage(tt.text, tt.grammar))
		})
	}
}
