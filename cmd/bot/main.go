package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scrobblyx/crowned/internal/bot"
	"github.com/scrobblyx/crowned/internal/commands"
	"github.com/scrobblyx/crowned/internal/lastfm/fetcher"
	"github.com/scrobblyx/crowned/internal/setup"
)

const (
	// BotLogDir specifies where bot log files are stored.
	BotLogDir = "logs/bot_logs"

	// DefaultFanOutTimeout bounds one member's lookup during a fan-out when
	// the config does not set one.
	DefaultFanOutTimeout = 10 * time.Second
)

func main() {
	ctx := context.Background()

	// Initialize application with required dependencies
	app, err := setup.InitializeApp(ctx, BotLogDir)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Cleanup(ctx)

	fanOutTimeout := DefaultFanOutTimeout
	if app.Config.Common.LastFM.FanOutTimeout > 0 {
		fanOutTimeout = time.Duration(app.Config.Common.LastFM.FanOutTimeout) * time.Millisecond
	}

	// Wire command handlers over the database models and Last.fm client
	handlers := commands.NewHandlers(
		app.DB.Model().Binding(),
		app.DB.Model().Crown(),
		app.LastFM,
		fetcher.New(app.LastFM, fanOutTimeout, app.Logger),
		app.Logger,
	)

	// Create bot instance
	discordBot, err := bot.New(app.Config.Bot.Discord.Token, handlers, app.Logger)
	if err != nil {
		log.Printf("Failed to create bot: %v", err)
		return
	}

	// Start the bot and connect to Discord
	if err := discordBot.Start(); err != nil {
		log.Printf("Failed to start bot: %v", err)
		return
	}

	log.Println("Bot has been started. Waiting for interrupt signal to gracefully shutdown...")

	// Wait for interrupt signal to gracefully shutdown the bot
	// This ensures all pending events are processed before closing
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Cleanly close down the Discord session
	discordBot.Close()
}
