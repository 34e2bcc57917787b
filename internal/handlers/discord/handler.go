package discord

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	gamedomain "github.com/KirkDiggler/pbta-bot-discord/internal/domain/game"
	boterr "github.com/KirkDiggler/pbta-bot-discord/internal/errors"
	gamesvc "github.com/KirkDiggler/pbta-bot-discord/internal/services/game"
)

// Handler routes chat messages into the game service and renders the
// replies
type Handler struct {
	service gamesvc.Service
}

// HandlerConfig holds configuration for the handler
type HandlerConfig struct {
	Service gamesvc.Service // Required
}

// NewHandler creates a new message handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg.Service == nil {
		panic("game service is required")
	}

	return &Handler{service: cfg.Service}
}

// inbound carries the fields of a chat message the handler acts on
type inbound struct {
	RoomID      string
	GuildID     string
	SpeakerID   string
	SpeakerName string
	Text        string
}

// HandleMessageCreate is the discordgo MessageCreate callback
func (h *Handler) HandleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	msg := &inbound{
		RoomID:      m.ChannelID,
		GuildID:     m.GuildID,
		SpeakerID:   m.Author.ID,
		SpeakerName: displayName(m),
		Text:        m.Content,
	}

	for _, reply := range h.Respond(context.Background(), msg) {
		if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
			log.Printf("Error sending message to channel %s: %v", m.ChannelID, err)
		}
	}
}

// displayName prefers the per-guild nickname, then the global display
// name, then the account name
func displayName(m *discordgo.MessageCreate) string {
	if m.Member != nil && m.Member.Nick != "" {
		return m.Member.Nick
	}
	if m.Author.GlobalName != "" {
		return m.Author.GlobalName
	}
	return m.Author.Username
}

// Respond parses one message and returns the replies to send, in
// order. Ordinary chat returns nothing.
func (h *Handler) Respond(ctx context.Context, msg *inbound) []string {
	grammar, err := h.service.Grammar(ctx, msg.RoomID)
	if err != nil && !boterr.IsNotFound(err) {
		// Ordinary chat stays silent even when the vocabulary cannot
		// be loaded; only an attempted command reports the failure
		if cmd := ParseMessage(msg.Text, nil); cmd.Kind == KindNone {
			return nil
		}
		log.Printf("Error loading grammar for room %s: %v", msg.RoomID, err)
		return []string{"Something went wrong, please try again."}
	}

	cmd := ParseMessage(msg.Text, grammar)

	switch cmd.Kind {
	case KindNone:
		return nil
	case KindHelp:
		return h.handleHelp(grammar)
	case KindUnknown:
		return []string{fmt.Sprintf("I don't know the command !%s.", cmd.Word)}
	case KindSetGame:
		return h.handleSetGame(ctx, msg, cmd)
	case KindStatSet:
		return h.handleStatSet(ctx, msg, cmd, grammar)
	case KindShowStats:
		return h.handleShowStats(ctx, msg, cmd, grammar)
	case KindRoll:
		return h.handleRoll(ctx, msg, cmd)
	case KindMarkExperience:
		return h.handleMarkExperience(ctx, msg, cmd)
	case KindShowExperience:
		return h.handleShowExperience(ctx, msg, cmd)
	case KindLevelUp:
		return h.handleLevelUp(ctx, msg, cmd)
	}

	return nil
}

func (h *Handler) handleHelp(grammar *gamedomain.Grammar) []string {
	var names []string
	if grammar != nil {
		names = grammar.StatNames()
	}
	return []string{helpText(names)}
}

func (h *Handler) handleSetGame(ctx context.Context, msg *inbound, cmd Command) []string {
	out, err := h.service.SetGame(ctx, &gamesvc.SetGameInput{
		RoomID: msg.RoomID,
		Name:   cmd.Game,
	})
	if err != nil {
		return h.errorReply(err)
	}

	if out.AlreadyActive {
		return []string{"You already have a game in progress, not setting a new one."}
	}

	return []string{fmt.Sprintf("Now playing %s. The stats are: %s. Set yours with '!%s +number'.",
		out.Game.ID, prettyNames(out.Game.StatNames), out.Game.StatNames[0])}
}

func (h *Handler) handleStatSet(ctx context.Context, msg *inbound, cmd Command, grammar *gamedomain.Grammar) []string {
	out, err := h.service.SetStats(ctx, &gamesvc.SetStatsInput{
		RoomID:      msg.RoomID,
		GuildID:     msg.GuildID,
		SpeakerID:   msg.SpeakerID,
		SpeakerName: msg.SpeakerName,
		Nick:        cmd.Nick,
		Text:        cmd.Text,
	})
	if err != nil {
		return h.errorReply(err)
	}

	return []string{fmt.Sprintf("Setting stats for %s: %s",
		out.Actor.Name, prettyStats(out.Stats, grammar.StatNames()))}
}

func (h *Handler) handleShowStats(ctx context.Context, msg *inbound, cmd Command, grammar *gamedomain.Grammar) []string {
	out, err := h.service.GetSheet(ctx, &gamesvc.GetSheetInput{
		RoomID:      msg.RoomID,
		GuildID:     msg.GuildID,
		SpeakerID:   msg.SpeakerID,
		SpeakerName: msg.SpeakerName,
		Nick:        cmd.Nick,
	})
	if err != nil {
		return h.errorReply(err)
	}

	var order []string
	if grammar != nil {
		order = grammar.StatNames()
	}
	return []string{fmt.Sprintf("Stats for %s: %s", out.Actor.Name, prettyStats(out.Stats, order))}
}

func (h *Handler) handleRoll(ctx context.Context, msg *inbound, cmd Command) []string {
	out, err := h.service.Roll(ctx, &gamesvc.RollInput{
		RoomID:      msg.RoomID,
		GuildID:     msg.GuildID,
		SpeakerID:   msg.SpeakerID,
		SpeakerName: msg.SpeakerName,
		Nick:        cmd.Nick,
		Stat:        cmd.Stat,
		Modifier:    cmd.Modifier,
	})
	if err != nil {
		return h.errorReply(err)
	}

	replies := []string{fmt.Sprintf("%s rolled %s = %d (%s)",
		out.Actor.Name, out.Check.Equation(), out.Check.Total, out.Check.Band)}

	if out.Experience != nil {
		replies = append(replies, experienceReplies(out.Experience)...)
	}

	return replies
}

func (h *Handler) handleMarkExperience(ctx context.Context, msg *inbound, cmd Command) []string {
	out, err := h.service.MarkExperience(ctx, &gamesvc.MarkExperienceInput{
		RoomID:      msg.RoomID,
		GuildID:     msg.GuildID,
		SpeakerID:   msg.SpeakerID,
		SpeakerName: msg.SpeakerName,
		Nick:        cmd.Nick,
	})
	if err != nil {
		return h.errorReply(err)
	}

	return experienceReplies(out)
}

func (h *Handler) handleShowExperience(ctx context.Context, msg *inbound, cmd Command) []string {
	out, err := h.service.GetExperience(ctx, &gamesvc.GetExperienceInput{
		RoomID:      msg.RoomID,
		GuildID:     msg.GuildID,
		SpeakerID:   msg.SpeakerID,
		SpeakerName: msg.SpeakerName,
		Nick:        cmd.Nick,
	})
	if err != nil {
		return h.errorReply(err)
	}

	return []string{fmt.Sprintf("%s has %d experience.", out.Actor.Name, out.Total)}
}

func (h *Handler) handleLevelUp(ctx context.Context, msg *inbound, cmd Command) []string {
	out, err := h.service.LevelUp(ctx, &gamesvc.LevelUpInput{
		RoomID:      msg.RoomID,
		GuildID:     msg.GuildID,
		SpeakerID:   msg.SpeakerID,
		SpeakerName: msg.SpeakerName,
		Nick:        cmd.Nick,
	})
	if err != nil {
		return h.errorReply(err)
	}

	return []string{fmt.Sprintf("%s has levelled up 🎉 (%d experience remaining)",
		out.Actor.Name, out.Remaining)}
}

// experienceReplies renders a recorded mark, with the level-up nudge
// once the threshold is reached
func experienceReplies(mark *gamesvc.MarkExperienceOutput) []string {
	replies := []string{fmt.Sprintf("%s now has %d experience.", mark.Actor.Name, mark.Total)}
	if mark.CanLevelUp {
		replies = append(replies, fmt.Sprintf("You have %d experience, you can level up!", mark.Total))
	}
	return replies
}

// errorReply maps service errors onto chat replies using the error
// code and metadata, so wording stays out of the service layer
func (h *Handler) errorReply(err error) []string {
	meta := boterr.GetMeta(err)

	switch boterr.GetCode(err) {
	case boterr.CodeNotFound:
		switch meta["missing"] {
		case "member":
			return []string{fmt.Sprintf("Could not find the user %v in the room.", meta["user"])}
		case "game", "clauses":
			return []string{"I can't find any stats, are you sure you've told me what game we're playing?"}
		case "sheet":
			if stat, ok := meta["stat"].(string); ok {
				return []string{fmt.Sprintf("No stats found for %v, run '!%s +number'", meta["user"], stat)}
			}
			return []string{fmt.Sprintf("No stats found for %v, set some with '!stat +number'", meta["user"])}
		case "stat":
			return []string{fmt.Sprintf("You have not set %v, run '!%v +number'", meta["stat"], meta["stat"])}
		}
	case boterr.CodeValidation:
		if invalid, ok := meta["invalid"].([]string); ok {
			valid, _ := meta["valid"].([]string)
			return []string{fmt.Sprintf("These aren't stats I know: %s. The stats for this game are: %s.",
				strings.Join(invalid, ", "), prettyNames(valid))}
		}
		if user, ok := meta["user"].(string); ok {
			return []string{fmt.Sprintf("%s does not have enough experience to level up.", user)}
		}
	case boterr.CodeInvalidArgument:
		if options, ok := meta["options"].([]string); ok {
			return []string{fmt.Sprintf("I don't know how to play that. Available options are: %s",
				strings.Join(options, ", "))}
		}
	}

	log.Printf("Error handling command: %v", err)
	return []string{"Something went wrong, please try again."}
}
