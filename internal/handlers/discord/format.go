package discord

import (
	"fmt"
	"sort"
	"strings"
)

// prettyStats renders a sheet in game order, e.g. "Cool +1, Sharp -1".
// Stats no longer in the vocabulary (a retired game's leftovers) sort
// alphabetically at the end.
func prettyStats(stats map[string]int, order []string) string {
	seen := make(map[string]bool, len(order))
	parts := make([]string, 0, len(stats))

	for _, name := range order {
		seen[name] = true
		if value, ok := stats[name]; ok {
			parts = append(parts, fmt.Sprintf("%s %+d", capitalize(name), value))
		}
	}

	var leftovers []string
	for name := range stats {
		if !seen[name] {
			leftovers = append(leftovers, name)
		}
	}
	sort.Strings(leftovers)
	for _, name := range leftovers {
		parts = append(parts, fmt.Sprintf("%s %+d", capitalize(name), stats[name]))
	}

	return strings.Join(parts, ", ")
}

// prettyNames renders a stat vocabulary as "Cool, Tough, Sharp"
func prettyNames(names []string) string {
	pretty := make([]string, len(names))
	for i, name := range names {
		pretty[i] = capitalize(name)
	}
	return strings.Join(pretty, ", ")
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

// helpText builds the !help response. With an active game the room's
// own stat words are listed; otherwise the reader is pointed at
// !setgame first.
func helpText(statNames []string) string {
	var b strings.Builder

	b.WriteString("This bot makes checks against your stats and tracks your experience.\n\n")

	b.WriteString("**Making Checks**\n")
	if len(statNames) > 0 {
		b.WriteString("The stats for this game are:\n")
		for _, name := range statNames {
			fmt.Fprintf(&b, "• %s\n", capitalize(name))
		}
		first := statNames[0]
		fmt.Fprintf(&b, "Roll against a stat with `+stat`, e.g. `+%s`.\n", first)
		fmt.Fprintf(&b, "Append a single modifier with `+stat x`, e.g. `+%s -1`.\n", first)
		fmt.Fprintf(&b, "Set your stats with `!stat number`, e.g. `!%s +1`. "+
			"Several can be set at once: `!%s +1 !%s -1`.\n", first, first, statNames[len(statNames)-1])
	} else {
		b.WriteString("No game is set for this room yet. Pick one with `!setgame <name>`.\n")
		b.WriteString("Roll against a stat with `+stat`, set stats with `!stat number`.\n")
	}
	b.WriteString("Retrieve your stats with `!stats`.\n\n")

	b.WriteString("**Experience**\n")
	b.WriteString("When you roll a failure an experience is stored for you.\n")
	b.WriteString("Mark experience manually with `+experience`.\n")
	b.WriteString("Check your experience with `!experience` and level up with `!levelup`.\n\n")

	b.WriteString("You can set your server nickname to your character name if you desire.")

	return b.String()
}
