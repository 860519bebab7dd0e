// Package bot is the Discord frontend: slash command registration, interaction
// dispatch and embed rendering over the typed command handlers.
package bot

import (
	"context"
	"errors"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"

	"github.com/scrobblyx/crowned/internal/commands"
	"github.com/scrobblyx/crowned/internal/lastfm"
)

// Bot connects the Discord gateway to the command handlers.
type Bot struct {
	client   bot.Client
	handlers *commands.Handlers
	routes   map[string]commandFunc
	logger   *zap.Logger
}

// commandFunc runs one slash command and returns the embed to display.
type commandFunc func(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	data discord.SlashCommandInteractionData,
) (discord.Embed, error)

// New initializes a Bot instance and configures the Discord client with the
// necessary gateway intents and event listeners.
func New(token string, handlers *commands.Handlers, logger *zap.Logger) (*Bot, error) {
	b := &Bot{
		handlers: handlers,
		logger:   logger.Named("bot"),
	}
	b.routes = b.commandRoutes()

	client, err := disgo.New(token,
		bot.WithGatewayConfigOpts(
			gateway.WithIntents(
				gateway.IntentGuilds,
			),
		),
		bot.WithEventListeners(&events.ListenerAdapter{
			OnApplicationCommandInteraction: b.handleApplicationCommandInteraction,
		}),
	)
	if err != nil {
		return nil, err
	}

	b.client = client

	return b, nil
}

// Start registers global commands with Discord and opens the gateway connection.
func (b *Bot) Start() error {
	b.logger.Info("Registering commands")

	_, err := b.client.Rest().SetGlobalCommands(b.client.ApplicationID(), commandDefinitions())
	if err != nil {
		return err
	}

	b.logger.Info("Starting bot")

	return b.client.OpenGateway(context.Background())
}

// Close gracefully shuts down the Discord gateway connection.
func (b *Bot) Close() {
	b.logger.Info("Closing bot")
	b.client.Close(context.Background())
}

// handleApplicationCommandInteraction defers the response, runs the command in
// a goroutine, and edits the deferred response with the result.
func (b *Bot) handleApplicationCommandInteraction(event *events.ApplicationCommandInteractionCreate) {
	go func() {
		// Defer response to prevent Discord timeout while processing
		if err := event.DeferCreateMessage(false); err != nil {
			b.logger.Error("Failed to defer create message", zap.Error(err))
			return
		}

		data := event.SlashCommandInteractionData()
		name := data.CommandName()

		handler, ok := b.routes[name]
		if !ok {
			b.respondError(event, "This command is not available.")
			return
		}

		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("Panic in application command interaction handler", zap.Any("panic", r))
				b.respondError(event, "Internal error. Please report this to an administrator.")
			}

			b.logger.Debug("Application command interaction handled",
				zap.String("command", name),
				zap.Duration("duration", time.Since(start)))
		}()

		ctx := context.Background()

		embed, err := handler(ctx, event, data)
		if err != nil {
			b.respondError(event, userFacingError(err))

			if !isExpectedError(err) {
				b.logger.Error("Command failed",
					zap.String("command", name),
					zap.Error(err))
			}

			return
		}

		_, err = event.Client().Rest().UpdateInteractionResponse(
			event.ApplicationID(), event.Token(),
			discord.NewMessageUpdateBuilder().SetEmbeds(embed).Build(),
		)
		if err != nil {
			b.logger.Error("Failed to update interaction response", zap.Error(err))
		}
	}()
}

// respondError replaces the deferred response with a plain error message.
func (b *Bot) respondError(event *events.ApplicationCommandInteractionCreate, message string) {
	_, err := event.Client().Rest().UpdateInteractionResponse(
		event.ApplicationID(), event.Token(),
		discord.NewMessageUpdateBuilder().SetContent(message).Build(),
	)
	if err != nil {
		b.logger.Error("Failed to send error response", zap.Error(err))
	}
}

// followUp posts an additional message after the main response, used for
// crown theft announcements.
func (b *Bot) followUp(event *events.ApplicationCommandInteractionCreate, message discord.MessageCreate) {
	_, err := event.Client().Rest().CreateFollowupMessage(
		event.ApplicationID(), event.Token(), message,
	)
	if err != nil {
		b.logger.Error("Failed to send followup message", zap.Error(err))
	}
}

// guildMemberIDs pages through the guild member list via the REST API.
func (b *Bot) guildMemberIDs(event *events.ApplicationCommandInteractionCreate, guildID snowflake.ID) ([]uint64, error) {
	var (
		memberIDs []uint64
		after     snowflake.ID
	)

	for {
		chunk, err := event.Client().Rest().GetMembers(guildID, 1000, after)
		if err != nil {
			return nil, err
		}

		for _, member := range chunk {
			memberIDs = append(memberIDs, uint64(member.User.ID))
		}

		// Less than a full page means this was the last one
		if len(chunk) < 1000 {
			break
		}

		after = chunk[len(chunk)-1].User.ID
	}

	return memberIDs, nil
}

// errGuildOnly is returned when a server-wide command runs outside a guild.
var errGuildOnly = errors.New("this command only works in a server")

// userFacingError maps command errors to messages safe to show users.
func userFacingError(err error) string {
	switch {
	case errors.Is(err, commands.ErrNotRegistered):
		return "No Last.fm account linked. Use /setfm to link one."
	case errors.Is(err, commands.ErrNoRegisteredMembers):
		return "Nobody in this server has linked a Last.fm account yet."
	case errors.Is(err, commands.ErrNoQualifyingData):
		return "No listening data matched that query."
	case errors.Is(err, commands.ErrInvalidQuery):
		return "Couldn't parse that query. Use the form `Artist - Title`."
	case errors.Is(err, commands.ErrNoCrown):
		return "Nobody holds a crown for that artist yet. Try /whoknows to claim it."
	case errors.Is(err, errGuildOnly):
		return "This command only works in a server."
	case lastfm.IsNotFound(err):
		return "Last.fm doesn't know that one."
	default:
		return "Something went wrong. Please try again later."
	}
}

// isExpectedError reports whether the error is part of normal command flow
// rather than a fault worth logging at error level.
func isExpectedError(err error) bool {
	return errors.Is(err, commands.ErrNotRegistered) ||
		errors.Is(err, commands.ErrNoRegisteredMembers) ||
		errors.Is(err, commands.ErrNoQualifyingData) ||
		errors.Is(err, commands.ErrInvalidQuery) ||
		errors.Is(err, commands.ErrNoCrown) ||
		errors.Is(err, errGuildOnly) ||
		lastfm.IsNotFound(err)
}
