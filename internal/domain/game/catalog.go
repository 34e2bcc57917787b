package game

import (
	"sort"
	"strings"
)

// Definition describes a playable game: its identifier and the ordered
// list of stats a character sheet can hold.
type Definition struct {
	ID        string
	StatNames []string
}

// catalog is the fixed registry of games the bot knows how to run.
// Stat names are stored lowercase; lookups are case-insensitive.
var catalog = map[string]*Definition{
	"motw": {
		ID:        "motw",
		StatNames: []string{"cool", "tough", "sharp", "charm", "weird"},
	},
	"pbtastartrek": {
		ID:        "pbtastartrek",
		StatNames: []string{"aggressive", "bold", "talk", "tech", "morale", "shields"},
	},
}

// Find resolves a game name against the catalog, case-insensitively
func Find(name string) (*Definition, bool) {
	def, ok := catalog[strings.ToLower(strings.TrimSpace(name))]
	return def, ok
}

// Names returns the sorted game identifiers, for "available options" messages
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
