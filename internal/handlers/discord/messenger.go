package discord

//go:generate mockgen -package=mocks -destination=mocks/mock_messenger.go github.com/KirkDiggler/blindbag/internal/handlers/discord Messenger

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Messenger is the outbound chat capability used by the handlers
type Messenger interface {
	// Send posts a message to a channel and returns its ID
	Send(channelID, content string) (string, error)

	// Edit replaces the content of a message
	Edit(channelID, messageID, content string) error

	// Delete removes a message
	Delete(channelID, messageID string) error

	// AddReaction reacts to a message as the bot
	AddReaction(channelID, messageID, emoji string) error

	// RemoveReaction clears one user's reaction from a message
	RemoveReaction(channelID, messageID, emoji, userID string) error

	// SendDirect sends a private message to a user
	SendDirect(userID, content string) error
}

// sessionMessenger implements Messenger on a discordgo session
type sessionMessenger struct {
	session *discordgo.Session
}

// NewMessenger creates a Messenger backed by a discordgo session
func NewMessenger(session *discordgo.Session) Messenger {
	return &sessionMessenger{session: session}
}

// Send posts a message to a channel
func (m *sessionMessenger) Send(channelID, content string) (string, error) {
	msg, err := m.session.ChannelMessageSend(channelID, content)
	if err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}
	return msg.ID, nil
}

// Edit replaces the content of a message
func (m *sessionMessenger) Edit(channelID, messageID, content string) error {
	if _, err := m.session.ChannelMessageEdit(channelID, messageID, content); err != nil {
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

// Delete removes a message
func (m *sessionMessenger) Delete(channelID, messageID string) error {
	if err := m.session.ChannelMessageDelete(channelID, messageID); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// AddReaction reacts to a message as the bot
func (m *sessionMessenger) AddReaction(channelID, messageID, emoji string) error {
	if err := m.session.MessageReactionAdd(channelID, messageID, emoji); err != nil {
		return fmt.Errorf("failed to add reaction: %w", err)
	}
	return nil
}

// RemoveReaction clears one user's reaction from a message
func (m *sessionMessenger) RemoveReaction(channelID, messageID, emoji, userID string) error {
	if err := m.session.MessageReactionRemove(channelID, messageID, emoji, userID); err != nil {
		return fmt.Errorf("failed to remove reaction: %w", err)
	}
	return nil
}

// SendDirect opens a DM channel with the user and posts to it
func (m *sessionMessenger) SendDirect(userID, content string) error {
	channel, err := m.session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}

	if _, err := m.session.ChannelMessageSend(channel.ID, content); err != nil {
		return fmt.Errorf("failed to send DM: %w", err)
	}
	return nil
}
