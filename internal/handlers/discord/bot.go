package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KirkDiggler/blindbag/internal/repositories/pull_ledger"
	"github.com/KirkDiggler/blindbag/internal/services/bag"
	"github.com/KirkDiggler/blindbag/internal/services/session"
	"github.com/bwmarrin/discordgo"
)

// Intents needed to read prefix commands and reactions in guilds
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsGuildMessageReactions |
	discordgo.IntentsMessageContent

// Bot represents the Discord bot instance
type Bot struct {
	session   *discordgo.Session
	router    *Router
	reactions *ReactionHandler
	fallback  *FallbackNotifier
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Prefix starts every command
	Prefix string

	// BagEmoji is added to session status messages
	BagEmoji string

	// FallbackTTL is how long a public "open your DMs" notice stays up
	FallbackTTL time.Duration

	BagService     bag.Service
	SessionService session.Service
	Ledger         pull_ledger.Repository
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	// Create a new Discord session
	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	dg.Identify.Intents = Intents
	// Handle one gateway event at a time
	dg.SyncEvents = true

	messenger := NewMessenger(dg)

	fallback, err := NewFallbackNotifier(&FallbackConfig{
		Messenger: messenger,
		TTL:       cfg.FallbackTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fallback notifier: %w", err)
	}

	router, err := NewRouter(&RouterConfig{
		Prefix:         cfg.Prefix,
		BagEmoji:       cfg.BagEmoji,
		BagService:     cfg.BagService,
		SessionService: cfg.SessionService,
		Ledger:         cfg.Ledger,
		Messenger:      messenger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create command router: %w", err)
	}

	reactions, err := NewReactionHandler(&ReactionHandlerConfig{
		Prefix:         cfg.Prefix,
		BagEmoji:       cfg.BagEmoji,
		SessionService: cfg.SessionService,
		Ledger:         cfg.Ledger,
		Messenger:      messenger,
		Fallback:       fallback,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create reaction handler: %w", err)
	}

	bot := &Bot{
		session:   dg,
		router:    router,
		reactions: reactions,
		fallback:  fallback,
	}

	dg.AddHandler(bot.handleReady)
	dg.AddHandler(bot.handleMessageCreate)
	dg.AddHandler(bot.handleReactionAdd)

	return bot, nil
}

// Start opens the gateway connection
func (b *Bot) Start() error {
	b.fallback.Start()

	if err := b.session.Open(); err != nil {
		b.fallback.Stop()
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	slog.Info("bot is now running")
	return nil
}

// Stop removes pending notices and closes the gateway connection
func (b *Bot) Stop() error {
	b.fallback.Stop()
	return b.session.Close()
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("logged in",
		slog.String("user", r.User.String()),
		slog.Int("guilds", len(r.Guilds)))
}

func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	msg := messageFromEvent(m)
	if msg == nil {
		return
	}

	if err := b.router.HandleMessage(context.Background(), msg); err != nil {
		slog.Error("error handling message",
			slog.String("guild", msg.GuildID),
			slog.String("channel", msg.ChannelID),
			slog.Any("error", err))
	}
}

func (b *Bot) handleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	selfID := ""
	if s.State != nil && s.State.User != nil {
		selfID = s.State.User.ID
	}

	event := reactionFromEvent(r, selfID)
	if event == nil {
		return
	}

	if err := b.reactions.Handle(context.Background(), event); err != nil {
		slog.Error("error handling reaction",
			slog.String("guild", event.GuildID),
			slog.String("message", event.MessageID),
			slog.Any("error", err))
	}
}

// messageFromEvent converts a gateway message into a router message
func messageFromEvent(m *discordgo.MessageCreate) *IncomingMessage {
	if m == nil || m.Message == nil || m.Author == nil {
		return nil
	}

	return &IncomingMessage{
		GuildID:     m.GuildID,
		ChannelID:   m.ChannelID,
		AuthorID:    m.Author.ID,
		AuthorIsBot: m.Author.Bot,
		Content:     m.Content,
	}
}

// reactionFromEvent converts a gateway reaction into a reaction event
func reactionFromEvent(r *discordgo.MessageReactionAdd, selfID string) *ReactionEvent {
	if r == nil || r.MessageReaction == nil {
		return nil
	}

	return &ReactionEvent{
		GuildID:   r.GuildID,
		ChannelID: r.ChannelID,
		MessageID: r.MessageID,
		UserID:    r.UserID,
		Emoji:     r.Emoji.APIName(),
		BotUserID: selfID,
	}
}
