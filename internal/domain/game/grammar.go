package game

import (
	"regexp"
	"strconv"
	"strings"
)

// setClausePattern matches any "!word n" token so that unknown stat
// words can be reported instead of silently dropped
var setClausePattern = regexp.MustCompile(`(?i)!([a-z]+) ([+-]?\d)\b`)

// StatClause is one "!stat n" token extracted from a message
type StatClause struct {
	Stat  string
	Value int
}

// Grammar is the compiled text-matching vocabulary for one room's
// active game. It is a pure cache derived from the stat-name list and
// must be rebuilt whenever the room's game changes.
type Grammar struct {
	statNames []string
	stats     map[string]string // lowercase -> canonical
}

// NewGrammar compiles a grammar from a stat-name list
func NewGrammar(statNames []string) *Grammar {
	g := &Grammar{
		statNames: append([]string(nil), statNames...),
		stats:     make(map[string]string, len(statNames)),
	}
	for _, name := range statNames {
		g.stats[strings.ToLower(name)] = name
	}
	return g
}

// StatNames returns the stat vocabulary in game order
func (g *Grammar) StatNames() []string {
	return append([]string(nil), g.statNames...)
}

// MatchStat resolves a word to its canonical stat name, case-insensitively
func (g *Grammar) MatchStat(word string) (string, bool) {
	name, ok := g.stats[strings.ToLower(word)]
	return name, ok
}

// FindSetClauses extracts every "!stat n" token from a message. Clauses
// are returned in message order; words that are not part of the stat
// vocabulary come back in invalid so the caller can reject the batch.
func (g *Grammar) FindSetClauses(text string) (clauses []StatClause, invalid []string) {
	for _, match := range setClausePattern.FindAllStringSubmatch(text, -1) {
		word := match[1]
		name, ok := g.MatchStat(word)
		if !ok {
			invalid = append(invalid, strings.ToLower(word))
			continue
		}

		value, err := strconv.Atoi(match[2])
		if err != nil {
			// Single optionally signed digit, cannot fail
			continue
		}

		clauses = append(clauses, StatClause{Stat: name, Value: value})
	}
	return clauses, invalid
}
