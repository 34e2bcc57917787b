package discord

import (
	"regexp"
	"strconv"
	"strings"

	gamedomain "github.com/KirkDiggler/pbta-bot-discord/internal/domain/game"
)

// CommandKind tags the parsed command variant
type CommandKind int

const (
	// KindNone is ordinary chat, ignored silently
	KindNone CommandKind = iota
	KindHelp
	KindSetGame
	KindShowStats
	KindShowExperience
	KindLevelUp
	KindMarkExperience
	KindStatSet
	KindRoll
	KindUnknown
)

// Command is the parsed form of an inbound message
type Command struct {
	Kind CommandKind

	// Word is the unrecognized command word for KindUnknown
	Word string

	// Game is the argument of KindSetGame
	Game string

	// Nick is the nickname clause, honored only for the keeper
	Nick string

	// Text is the clause-bearing message body for KindStatSet
	Text string

	// Stat and Modifier describe a KindRoll
	Stat     string
	Modifier int
}

var (
	bangWordPattern = regexp.MustCompile(`^!([a-zA-Z]+)\s*(.*)$`)
	// The modifier may be glued to the stat word ("+cool-1")
	rollPattern     = regexp.MustCompile(`(?i)^\+([a-zA-Z]+)(?:\s*([+-]?[0-3]))?\b`)
	rollNickPattern = regexp.MustCompile(`@(.+?)\s*$`)
)

// trimNick normalizes a nickname clause: surrounding whitespace and an
// optional @ prefix are dropped
func trimNick(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "@"))
}

// ParseMessage turns raw chat text into a Command. The grammar may be
// nil when the room has no active game; stat words are then unknown.
func ParseMessage(text string, grammar *gamedomain.Grammar) Command {
	trimmed := strings.TrimSpace(text)

	// A command starts at the first prefix token. Text before it is a
	// nickname clause (the service discards it for non-keepers).
	idx := strings.IndexAny(trimmed, "!+")
	if idx < 0 {
		return Command{Kind: KindNone}
	}
	lead := trimNick(trimmed[:idx])
	rest := trimmed[idx:]

	if strings.HasPrefix(rest, "!") {
		return parseBang(lead, rest, grammar)
	}
	return parsePlus(lead, rest, grammar)
}

func parseBang(lead, rest string, grammar *gamedomain.Grammar) Command {
	match := bangWordPattern.FindStringSubmatch(rest)
	if match == nil {
		return Command{Kind: KindNone}
	}
	word := strings.ToLower(match[1])
	arg := strings.TrimSpace(match[2])

	switch word {
	case "help":
		return Command{Kind: KindHelp}
	case "stats":
		return Command{Kind: KindShowStats, Nick: trimNick(arg)}
	case "experience":
		return Command{Kind: KindShowExperience, Nick: trimNick(arg)}
	case "levelup":
		return Command{Kind: KindLevelUp, Nick: trimNick(arg)}
	case "setgame":
		return Command{Kind: KindSetGame, Game: arg}
	case "set":
		// Older deployments used "!set game <name>"
		if name, ok := strings.CutPrefix(arg, "game"); ok {
			return Command{Kind: KindSetGame, Game: strings.TrimSpace(name)}
		}
	}

	if grammar != nil {
		if _, ok := grammar.MatchStat(word); ok {
			// The whole message is a stat-set: it may hold several
			// "!stat n" clauses
			return Command{Kind: KindStatSet, Nick: lead, Text: rest}
		}
	}

	return Command{Kind: KindUnknown, Word: word}
}

func parsePlus(lead, rest string, grammar *gamedomain.Grammar) Command {
	match := rollPattern.FindStringSubmatch(rest)
	if match == nil {
		return Command{Kind: KindNone}
	}
	word := strings.ToLower(match[1])

	nick := lead
	if nickMatch := rollNickPattern.FindStringSubmatch(rest); nickMatch != nil {
		nick = strings.TrimSpace(nickMatch[1])
	}

	// +experience is reserved; it is never a stat
	if word == "experience" {
		if nick == lead {
			// Trailing free text also names the player
			if tail := trimNick(rest[len("+experience"):]); tail != "" {
				nick = tail
			}
		}
		return Command{Kind: KindMarkExperience, Nick: nick}
	}

	if grammar == nil {
		return Command{Kind: KindNone}
	}
	if _, ok := grammar.MatchStat(word); !ok {
		// Not every +word is a command
		return Command{Kind: KindNone}
	}

	modifier := 0
	if match[2] != "" {
		modifier, _ = strconv.Atoi(match[2])
	}

	return Command{Kind: KindRoll, Nick: nick, Stat: word, Modifier: modifier}
}
