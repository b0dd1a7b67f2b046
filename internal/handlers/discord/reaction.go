package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/blindbag/internal/repositories/pull_ledger"
	"github.com/KirkDiggler/blindbag/internal/services/session"
	"github.com/KirkDiggler/blindbag/internal/telemetry"
)

// ReactionEvent is a reaction added to a message
type ReactionEvent struct {
	GuildID   string
	ChannelID string
	MessageID string
	UserID    string

	// Emoji is in API form, a unicode emoji or name:id for custom ones
	Emoji string

	// BotUserID is the bot's own user, whose reactions never pull
	BotUserID string
}

// ReactionHandler turns reactions on session status messages into pulls
type ReactionHandler struct {
	sessions  session.Service
	ledger    pull_ledger.Repository
	messenger Messenger
	fallback  *FallbackNotifier
	render    renderer
}

// ReactionHandlerConfig holds configuration for the reaction handler
type ReactionHandlerConfig struct {
	Prefix   string
	BagEmoji string

	SessionService session.Service
	Ledger         pull_ledger.Repository
	Messenger      Messenger
	Fallback       *FallbackNotifier
}

// NewReactionHandler creates a new reaction handler
func NewReactionHandler(cfg *ReactionHandlerConfig) (*ReactionHandler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.SessionService == nil {
		return nil, errors.New("session service cannot be nil")
	}

	if cfg.Ledger == nil {
		return nil, errors.New("pull ledger cannot be nil")
	}

	if cfg.Messenger == nil {
		return nil, errors.New("messenger cannot be nil")
	}

	if cfg.Fallback == nil {
		return nil, errors.New("fallback notifier cannot be nil")
	}

	return &ReactionHandler{
		sessions:  cfg.SessionService,
		ledger:    cfg.Ledger,
		messenger: cfg.Messenger,
		fallback:  cfg.Fallback,
		render:    renderer{prefix: cfg.Prefix, emoji: cfg.BagEmoji},
	}, nil
}

// Handle pulls an item for the reacting user. Reactions on other messages
// and the bot's own reactions are ignored. Notification failures are logged
// and never undo the pull.
func (h *ReactionHandler) Handle(ctx context.Context, event *ReactionEvent) error {
	if event == nil || event.MessageID == "" {
		return nil
	}

	found, err := h.sessions.FindSession(ctx, &session.FindSessionInput{MessageID: event.MessageID})
	if errors.Is(err, session.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to find session: %w", err)
	}

	if event.BotUserID != "" && event.UserID == event.BotUserID {
		return nil
	}

	channelID := found.Session.ChannelID
	if channelID == "" {
		channelID = event.ChannelID
	}

	if err := h.messenger.RemoveReaction(channelID, event.MessageID, event.Emoji, event.UserID); err != nil {
		slog.Warn("failed to remove reaction",
			slog.String("message", event.MessageID),
			slog.String("user", event.UserID),
			slog.Any("error", err))
	}

	output, err := h.sessions.PullItem(ctx, &session.PullItemInput{
		MessageID: event.MessageID,
		UserID:    event.UserID,
		BotUserID: event.BotUserID,
	})
	if errors.Is(err, session.ErrSessionNotFound) {
		// Ended between lookup and pull
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to pull item: %w", err)
	}

	telemetry.RecordPull(string(output.Result))

	switch output.Result {
	case session.PullResultItem:
		h.recordPull(ctx, event, output)
		h.deliver(channelID, event.UserID, output.Item)
		h.updateStatus(channelID, event.MessageID, output)
	case session.PullResultEmpty:
		if err := h.messenger.SendDirect(event.UserID, renderPullFromEmpty()); err != nil {
			slog.Warn("failed to send empty bag notice",
				slog.String("user", event.UserID),
				slog.Any("error", err))
		}
	}

	return nil
}

func (h *ReactionHandler) recordPull(ctx context.Context, event *ReactionEvent, output *session.PullItemOutput) {
	_, err := h.ledger.CreatePullRecord(ctx, &pull_ledger.CreatePullRecordInput{
		SessionID: output.Session.ID,
		ServerID:  output.Session.ServerID,
		BagName:   output.Session.BagName,
		UserID:    event.UserID,
		Item:      output.Item,
	})
	if err != nil {
		slog.Warn("failed to record pull",
			slog.String("session", output.Session.ID),
			slog.String("user", event.UserID),
			slog.Any("error", err))
	}
}

// deliver DMs the item, falling back to a public notice once
func (h *ReactionHandler) deliver(channelID, userID, item string) {
	err := h.messenger.SendDirect(userID, renderPulledItem(item))
	if err == nil {
		return
	}

	telemetry.RecordDirectMessageFailure()
	slog.Warn("failed to DM pulled item",
		slog.String("user", userID),
		slog.Any("error", err))

	if _, err := h.fallback.Notify(channelID, userID); err != nil {
		slog.Warn("failed to post fallback notice",
			slog.String("user", userID),
			slog.Any("error", err))
	}
}

func (h *ReactionHandler) updateStatus(channelID, messageID string, output *session.PullItemOutput) {
	content := h.render.sessionActive(output.Session.BagName, output.Remaining)
	if output.Remaining == 0 {
		content = h.render.sessionDepleted(output.Session.BagName)
	}

	if err := h.messenger.Edit(channelID, messageID, content); err != nil {
		slog.Warn("failed to update session status",
			slog.String("message", messageID),
			slog.Any("error", err))
	}
}
