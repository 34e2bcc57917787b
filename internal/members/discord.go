package members

import (
	"context"

	"github.com/bwmarrin/discordgo"

	boterr "github.com/KirkDiggler/pbta-bot-discord/internal/errors"
)

const memberPageSize = 1000

type discordProvider struct {
	session *discordgo.Session
}

// NewDiscordProvider creates a Provider backed by the guild member list
func NewDiscordProvider(session *discordgo.Session) Provider {
	return &discordProvider{session: session}
}

// ResolveDisplayName walks the guild member list looking for a matching
// server nickname first, then the account name
func (p *discordProvider) ResolveDisplayName(ctx context.Context, guildID, displayName string) (string, error) {
	after := ""
	for {
		page, err := p.session.GuildMembers(guildID, after, memberPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return "", boterr.WrapWithCode(err, boterr.CodeInternal, "failed to list guild members")
		}
		if len(page) == 0 {
			break
		}

		for _, member := range page {
			if member.Nick == displayName ||
				member.User.GlobalName == displayName ||
				member.User.Username == displayName {
				return member.User.ID, nil
			}
		}

		if len(page) < memberPageSize {
			break
		}
		after = page[len(page)-1].User.ID
	}

	return "", boterr.NotFoundf("no member named %s", displayName).WithMeta("display_name", displayName)
}
