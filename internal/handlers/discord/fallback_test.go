package discord

import (
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/blindbag/internal/handlers/discord/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type FallbackNotifierTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockMessenger *mocks.MockMessenger

	testChannelID string
}

func (s *FallbackNotifierTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockMessenger = mocks.NewMockMessenger(s.mockCtrl)
	s.testChannelID = "test-channel-id"
}

func (s *FallbackNotifierTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *FallbackNotifierTestSuite) newNotifier(ttl time.Duration) *FallbackNotifier {
	f, err := NewFallbackNotifier(&FallbackConfig{
		Messenger: s.mockMessenger,
		TTL:       ttl,
	})
	s.Require().NoError(err)
	return f
}

// expectDelete returns a channel closed once the notice is deleted
func (s *FallbackNotifierTestSuite) expectDelete(messageID string) chan struct{} {
	deleted := make(chan struct{})
	s.mockMessenger.EXPECT().Delete(s.testChannelID, messageID).
		DoAndReturn(func(channelID, messageID string) error {
			close(deleted)
			return nil
		})
	return deleted
}

func (s *FallbackNotifierTestSuite) waitFor(done chan struct{}) {
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		s.Fail("timed out waiting for notice deletion")
	}
}

func (s *FallbackNotifierTestSuite) TestNotifyOncePerUser() {
	f := s.newNotifier(time.Minute)

	s.mockMessenger.EXPECT().Send(s.testChannelID, renderDirectMessageFallback("user-a")).Return("notice-a", nil)
	s.mockMessenger.EXPECT().Send(s.testChannelID, renderDirectMessageFallback("user-b")).Return("notice-b", nil)

	posted, err := f.Notify(s.testChannelID, "user-a")
	s.Require().NoError(err)
	s.True(posted)

	posted, err = f.Notify(s.testChannelID, "user-a")
	s.Require().NoError(err)
	s.False(posted)

	posted, err = f.Notify(s.testChannelID, "user-b")
	s.Require().NoError(err)
	s.True(posted)
}

func (s *FallbackNotifierTestSuite) TestNotifyOncePerChannel() {
	f := s.newNotifier(time.Minute)

	s.mockMessenger.EXPECT().Send(s.testChannelID, renderDirectMessageFallback("user-a")).Return("notice-a", nil)
	s.mockMessenger.EXPECT().Send("other-channel-id", renderDirectMessageFallback("user-a")).Return("notice-b", nil)

	posted, err := f.Notify(s.testChannelID, "user-a")
	s.Require().NoError(err)
	s.True(posted)

	posted, err = f.Notify("other-channel-id", "user-a")
	s.Require().NoError(err)
	s.True(posted)

	posted, err = f.Notify("other-channel-id", "user-a")
	s.Require().NoError(err)
	s.False(posted)
}

func (s *FallbackNotifierTestSuite) TestExpiredNoticeIsDeleted() {
	f := s.newNotifier(20 * time.Millisecond)

	s.mockMessenger.EXPECT().Send(s.testChannelID, gomock.Any()).Return("notice-a", nil)
	deleted := s.expectDelete("notice-a")

	_, err := f.Notify(s.testChannelID, "user-a")
	s.Require().NoError(err)

	time.Sleep(50 * time.Millisecond)
	f.notices.DeleteExpired()
	s.waitFor(deleted)

	// The user can be notified again once the notice is gone
	s.mockMessenger.EXPECT().Send(s.testChannelID, gomock.Any()).Return("notice-b", nil)
	posted, err := f.Notify(s.testChannelID, "user-a")
	s.Require().NoError(err)
	s.True(posted)
}

func (s *FallbackNotifierTestSuite) TestStopDeletesPendingNotices() {
	f := s.newNotifier(time.Minute)
	f.Start()

	s.mockMessenger.EXPECT().Send(s.testChannelID, gomock.Any()).Return("notice-a", nil)
	deleted := s.expectDelete("notice-a")

	_, err := f.Notify(s.testChannelID, "user-a")
	s.Require().NoError(err)

	f.Stop()
	s.waitFor(deleted)
}

func (s *FallbackNotifierTestSuite) TestSendFailureDoesNotBlockRetry() {
	f := s.newNotifier(time.Minute)

	s.mockMessenger.EXPECT().Send(s.testChannelID, gomock.Any()).Return("", errors.New("missing access"))
	posted, err := f.Notify(s.testChannelID, "user-a")
	s.Error(err)
	s.False(posted)

	s.mockMessenger.EXPECT().Send(s.testChannelID, gomock.Any()).Return("notice-a", nil)
	posted, err = f.Notify(s.testChannelID, "user-a")
	s.Require().NoError(err)
	s.True(posted)
}

func (s *FallbackNotifierTestSuite) TestValidatesConfig() {
	_, err := NewFallbackNotifier(nil)
	s.Error(err)

	_, err = NewFallbackNotifier(&FallbackConfig{TTL: time.Second})
	s.Error(err)

	_, err = NewFallbackNotifier(&FallbackConfig{Messenger: s.mockMessenger})
	s.Error(err)
}

func TestFallbackNotifierTestSuite(t *testing.T) {
	suite.Run(t, new(FallbackNotifierTestSuite))
}
