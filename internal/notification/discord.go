// Package notification posts an audit trail of moderator actions to a discord channel.
package notification

import (
	"context"
	"errors"
	"strconv"

	"github.com/bwmarrin/discordgo"
	embed "github.com/leighmacdonald/discordgo-embed"
	"github.com/ogsmod/modtool/internal/moderation"
)

var (
	ErrSessionCreate = errors.New("failed to create discord session")
	ErrSendMessage   = errors.New("failed to send discord message")
	ErrChannelID     = errors.New("discord log channel id not set")
)

const (
	ColourSuccess = 302673
	ColourInfo    = 3581519
	ColourWarn    = 14327864
	ColourError   = 13631488

	providerName = "modtool"
	iconURL      = "https://online-go.com/favicon.ico"
)

// AnnulEvent describes a successfully applied annul or restore.
type AnnulEvent struct {
	Engine    moderation.EngineConfig
	Annul     bool
	Note      string
	Moderator string
	Powers    moderation.ModeratorPower
}

// Notifier delivers moderation events.
type Notifier interface {
	SendAnnul(ctx context.Context, event AnnulEvent) error
}

// MessageSender is the subset of *discordgo.Session used to post messages.
type MessageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type Discord struct {
	sender    MessageSender
	channelID string
}

// NewDiscord creates a REST only discord session. No gateway connection is opened.
func NewDiscord(token string, channelID string) (*Discord, error) {
	session, errSession := discordgo.New("Bot " + token)
	if errSession != nil {
		return nil, errors.Join(errSession, ErrSessionCreate)
	}

	return NewDiscordWithSender(session, channelID)
}

func NewDiscordWithSender(sender MessageSender, channelID string) (*Discord, error) {
	if channelID == "" {
		return nil, ErrChannelID
	}

	return &Discord{sender: sender, channelID: channelID}, nil
}

func (d *Discord) SendAnnul(ctx context.Context, event AnnulEvent) error {
	if _, errSend := d.sender.ChannelMessageSendEmbed(d.channelID, AnnulMessage(event), discordgo.WithContext(ctx)); errSend != nil {
		return errors.Join(errSend, ErrSendMessage)
	}

	return nil
}

// NewEmbed constructs a new embed carrying the tool footer.
func NewEmbed(title string) *embed.Embed {
	return embed.NewEmbed().
		SetTitle(title).
		SetFooter(providerName, iconURL)
}

// AnnulMessage renders the audit embed for an annul or restore.
func AnnulMessage(event AnnulEvent) *discordgo.MessageEmbed {
	title := "Game Annulled"
	colour := ColourWarn

	if !event.Annul {
		title = "Game Ranking Restored"
		colour = ColourSuccess
	}

	msgEmbed := NewEmbed(title).
		SetColor(colour).
		SetDescription(event.Note)

	msgEmbed.AddField("Game", strconv.FormatInt(event.Engine.GameID, 10)).MakeFieldInline()

	if player := event.Engine.Players.Black; player.ID > 0 {
		msgEmbed.AddField("Black", playerLabel(player)).MakeFieldInline()
	}

	if player := event.Engine.Players.White; player.ID > 0 {
		msgEmbed.AddField("White", playerLabel(player)).MakeFieldInline()
	}

	if event.Moderator != "" {
		msgEmbed.AddField("Moderator", event.Moderator)
	}

	if event.Powers != moderation.PowerNone {
		msgEmbed.AddField("Powers", event.Powers.String())
	}

	return msgEmbed.Truncate().MessageEmbed
}

func playerLabel(player moderation.Player) string {
	id := strconv.FormatInt(player.ID, 10)
	if player.Username == "" {
		return id
	}

	return player.Username + " (" + id + ")"
}

// Null discards every event.
type Null struct{}

func NewNull() Null {
	return Null{}
}

func (Null) SendAnnul(_ context.Context, _ AnnulEvent) error {
	return nil
}
