package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// notice is a public fallback message waiting to expire
type notice struct {
	channelID string
	messageID string
	userID    string
}

// FallbackNotifier posts public "open your DMs" notices when a DM cannot be
// delivered. A user has at most one live notice per channel; it is deleted
// when it expires.
type FallbackNotifier struct {
	messenger Messenger
	notices   *ttlcache.Cache[string, notice]
	unsub     func()
	running   atomic.Bool
}

// FallbackConfig holds configuration for the fallback notifier
type FallbackConfig struct {
	Messenger Messenger

	// TTL is how long a notice stays up and blocks another for the same user
	TTL time.Duration
}

// NewFallbackNotifier creates a new fallback notifier
func NewFallbackNotifier(cfg *FallbackConfig) (*FallbackNotifier, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Messenger == nil {
		return nil, errors.New("messenger cannot be nil")
	}

	if cfg.TTL <= 0 {
		return nil, errors.New("notice TTL must be positive")
	}

	notices := ttlcache.New(
		ttlcache.WithTTL[string, notice](cfg.TTL),
		ttlcache.WithDisableTouchOnHit[string, notice](),
	)

	f := &FallbackNotifier{
		messenger: cfg.Messenger,
		notices:   notices,
	}

	f.unsub = notices.OnEviction(func(ctx context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, notice]) {
		n := item.Value()
		if err := f.messenger.Delete(n.channelID, n.messageID); err != nil {
			slog.Warn("failed to delete fallback notice",
				slog.String("user", n.userID),
				slog.String("message", n.messageID),
				slog.Any("error", err))
		}
	})

	return f, nil
}

// Start runs the expiry loop in the background
func (f *FallbackNotifier) Start() {
	if f.running.CompareAndSwap(false, true) {
		go f.notices.Start()
	}
}

// Stop ends the expiry loop and removes the notices still up
func (f *FallbackNotifier) Stop() {
	if f.running.CompareAndSwap(true, false) {
		f.notices.Stop()
	}
	f.notices.DeleteAll()
	f.unsub()
}

// Notify posts a notice mentioning the user unless one is already up in the
// channel. It reports whether a notice was posted.
func (f *FallbackNotifier) Notify(channelID, userID string) (bool, error) {
	key := noticeKey(channelID, userID)
	if f.notices.Has(key) {
		return false, nil
	}

	messageID, err := f.messenger.Send(channelID, renderDirectMessageFallback(userID))
	if err != nil {
		return false, fmt.Errorf("failed to post fallback notice: %w", err)
	}

	f.notices.Set(key, notice{channelID: channelID, messageID: messageID, userID: userID}, ttlcache.DefaultTTL)
	return true, nil
}

func noticeKey(channelID, userID string) string {
	return channelID + ":" + userID
}
