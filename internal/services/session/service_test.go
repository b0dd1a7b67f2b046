package session

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/blindbag/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/blindbag/internal/common/uuid/mocks"
	"github.com/KirkDiggler/blindbag/internal/services/bag"
	"github.com/KirkDiggler/blindbag/internal/shuffle"
	shuffleMocks "github.com/KirkDiggler/blindbag/internal/shuffle/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionServiceTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockShuffler   *shuffleMocks.MockShuffler
	mockClock      *clockMocks.MockClock
	mockUUID       *uuidMocks.MockUUID
	sessionService Service
	ctx            context.Context

	// Test data
	testTime      time.Time
	testServerID  string
	testChannelID string
	testMessageID string
	testBotID     string
	testSessionID string
	testItems     []string

	startInput *StartSessionInput
}

func (s *SessionServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockShuffler = shuffleMocks.NewMockShuffler(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testServerID = "test-guild-id"
	s.testChannelID = "test-channel-id"
	s.testMessageID = "test-message-id"
	s.testBotID = "test-bot-id"
	s.testSessionID = "test-session-id"
	s.testItems = []string{"apple", "banana", "cherry"}

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().Return(s.testSessionID).AnyTimes()

	s.startInput = &StartSessionInput{
		ServerID:  s.testServerID,
		BagName:   "fruit",
		ChannelID: s.testChannelID,
		MessageID: s.testMessageID,
		Items:     s.testItems,
	}

	svc, err := New(&Config{
		Shuffler:      s.mockShuffler,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.sessionService = svc
}

func (s *SessionServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}

// reverseShuffle makes the shuffler reverse the queue so pull order is known
func (s *SessionServiceTestSuite) reverseShuffle() {
	s.mockShuffler.EXPECT().Shuffle(gomock.Any()).Do(func(items []string) {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}).AnyTimes()
}

func (s *SessionServiceTestSuite) pull(userID string) *PullItemOutput {
	out, err := s.sessionService.PullItem(s.ctx, &PullItemInput{
		MessageID: s.testMessageID,
		UserID:    userID,
		BotUserID: s.testBotID,
	})
	s.Require().NoError(err)
	return out
}

func (s *SessionServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{Clock: s.mockClock, UUIDGenerator: s.mockUUID})
	s.ErrorIs(err, ErrNilShuffler)

	_, err = New(&Config{Shuffler: s.mockShuffler, UUIDGenerator: s.mockUUID})
	s.ErrorIs(err, ErrNilClock)

	_, err = New(&Config{Shuffler: s.mockShuffler, Clock: s.mockClock})
	s.ErrorIs(err, ErrNilUUIDGenerator)
}

func (s *SessionServiceTestSuite) TestStartSession() {
	s.reverseShuffle()

	out, err := s.sessionService.StartSession(s.ctx, s.startInput)
	s.Require().NoError(err)
	s.Require().NotNil(out.Session)

	s.Equal(s.testSessionID, out.Session.ID)
	s.Equal(s.testServerID, out.Session.ServerID)
	s.Equal("fruit", out.Session.BagName)
	s.Equal(s.testChannelID, out.Session.ChannelID)
	s.Equal(s.testMessageID, out.Session.MessageID)
	s.Equal(3, out.Session.Size)
	s.Equal(3, out.Session.Remaining)
	s.Equal(s.testTime, out.Session.StartedAt)
	s.True(s.sessionService.IsLocked(s.testServerID, "fruit"))

	// the caller's snapshot is not shuffled in place
	s.Equal([]string{"apple", "banana", "cherry"}, s.testItems)
}

func (s *SessionServiceTestSuite) TestStartSessionEmptyBag() {
	s.startInput.Items = nil

	_, err := s.sessionService.StartSession(s.ctx, s.startInput)
	s.ErrorIs(err, ErrEmptyBag)
	s.False(s.sessionService.IsLocked(s.testServerID, "fruit"))
}

func (s *SessionServiceTestSuite) TestStartSessionAlreadyRunning() {
	s.reverseShuffle()

	_, err := s.sessionService.StartSession(s.ctx, s.startInput)
	s.Require().NoError(err)

	second := *s.startInput
	second.MessageID = "another-message-id"
	_, err = s.sessionService.StartSession(s.ctx, &second)
	s.ErrorIs(err, ErrAlreadyRunning)

	_, err = s.sessionService.FindSession(s.ctx, &FindSessionInput{MessageID: "another-message-id"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *SessionServiceTestSuite) TestStartSessionMessageInUse() {
	s.reverseShuffle()

	_, err := s.sessionService.StartSession(s.ctx, s.startInput)
	s.Require().NoError(err)

	other := *s.startInput
	other.BagName = "veg"
	_, err = s.sessionService.StartSession(s.ctx, &other)
	s.ErrorIs(err, ErrMessageInUse)
	s.False(s.sessionService.IsLocked(s.testServerID, "veg"))
}

func (s *SessionServiceTestSuite) TestStartSessionInvalidInput() {
	_, err := s.sessionService.StartSession(s.ctx, nil)
	s.ErrorIs(err, ErrInvalidInput)

	s.startInput.MessageID = ""
	_, err = s.sessionService.StartSession(s.ctx, s.startInput)
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *SessionServiceTestSuite) TestPullDrainsQueueInShuffledOrder() {
	s.reverseShuffle()

	_, err := s.sessionService.StartSession(s.ctx, s.startInput)
	s.Require().NoError(err)

	first := s.pull("user-1")
	s.Equal(PullResultItem, first.Result)
	s.Equal("cherry", first.Item)
	s.Equal(2, first.Remaining)

	second := s.pull("user-2")
	s.Equal("banana", second.Item)
	s.Equal(1, second.Remaining)

	third := s.pull("user-3")
	s.Equal("apple", third.Item)
	s.Equal(0, third.Remaining)

	fourth := s.pull("user-4")
	s.Equal(PullResultEmpty, fourth.Result)
	s.Empty(fourth.Item)
	s.Equal(0, fourth.Remaining)

	// depleted sessions stay tracked until ended
	s.True(s.sessionService.IsLocked(s.testServerID, "fruit"))
	found, err := s.sessionService.FindSession(s.ctx, &FindSessionInput{MessageID: s.testMessageID})
	s.Require().NoError(err)
	s.Equal(0, found.Session.Remaining)
}

func (s *SessionServiceTestSuite) TestPullIgnoresBotReactions() {
	s.reverseShuffle()

	_, err := s.sessionService.StartSession(s.ctx, s.startInput)
	s.Require().NoError(err)

	out := s.pull(s.testBotID)
	s.Equal(PullResultIgnored, out.Result)
	s.Equal(3, out.Remaining)

	found, err := s.sessionService.FindSession(s.ctx, &FindSessionInput{MessageID: s.testMessageID})
	s.Require().NoError(err)
	s.Equal(3, found.Session.Remaining)
}

func (s *SessionServiceTestSuite) TestPullUnknownMessage() {
	_, err := s.sessionService.PullItem(s.ctx, &PullItemInput{
		MessageID: "unknown-message-id",
		UserID:    "user-1",
	})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *SessionServiceTestSuite) TestEndSessionReleasesBothIndexes() {
	s.reverseShuffle()

	_, err := s.sessionService.StartSession(s.ctx, s.startInput)
	s.Require().NoError(err)
	s.pull("user-1")

	out, err := s.sessionService.EndSession(s.ctx, &EndSessionInput{
		ServerID: s.testServerID,
		BagName:  "fruit",
	})
	s.Require().NoError(err)
	s.Equal(s.testMessageID, out.Session.MessageID)
	s.Equal(3, out.Session.Size)
	s.Equal(2, out.Session.Remaining)

	s.False(s.sessionService.IsLocked(s.testServerID, "fruit"))
	_, err = s.sessionService.FindSession(s.ctx, &FindSessionInput{MessageID: s.testMessageID})
	s.ErrorIs(err, ErrSessionNotFound)
	_, err = s.sessionService.PullItem(s.ctx, &PullItemInput{MessageID: s.testMessageID, UserID: "user-2"})
	s.ErrorIs(err, ErrSessionNotFound)

	// the same message id and bag can be used again
	_, err = s.sessionService.StartSession(s.ctx, s.startInput)
	s.NoError(err)
}

func (s *SessionServiceTestSuite) TestEndSessionNotRunning() {
	_, err := s.sessionService.EndSession(s.ctx, &EndSessionInput{
		ServerID: s.testServerID,
		BagName:  "fruit",
	})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *SessionServiceTestSuite) TestSessionsArePerServer() {
	s.reverseShuffle()

	_, err := s.sessionService.StartSession(s.ctx, s.startInput)
	s.Require().NoError(err)

	other := *s.startInput
	other.ServerID = "other-guild-id"
	other.MessageID = "other-message-id"
	_, err = s.sessionService.StartSession(s.ctx, &other)
	s.Require().NoError(err)

	_, err = s.sessionService.EndSession(s.ctx, &EndSessionInput{ServerID: "other-guild-id", BagName: "fruit"})
	s.Require().NoError(err)

	s.True(s.sessionService.IsLocked(s.testServerID, "fruit"))
	s.False(s.sessionService.IsLocked("other-guild-id", "fruit"))
}

func (s *SessionServiceTestSuite) TestListSessions() {
	s.reverseShuffle()

	for i, name := range []string{"veg", "fruit"} {
		input := *s.startInput
		input.BagName = name
		input.MessageID = fmt.Sprintf("message-%d", i)
		_, err := s.sessionService.StartSession(s.ctx, &input)
		s.Require().NoError(err)
	}

	out, err := s.sessionService.ListSessions(s.ctx, &ListSessionsInput{ServerID: s.testServerID})
	s.Require().NoError(err)
	s.Require().Len(out.Sessions, 2)
	s.Equal("fruit", out.Sessions[0].BagName)
	s.Equal("veg", out.Sessions[1].BagName)

	out, err = s.sessionService.ListSessions(s.ctx, &ListSessionsInput{ServerID: "other-guild-id"})
	s.Require().NoError(err)
	s.Empty(out.Sessions)
}

func (s *SessionServiceTestSuite) TestConcurrentPullsNeverRepeat() {
	s.reverseShuffle()

	items := make([]string, 200)
	for i := range items {
		items[i] = fmt.Sprintf("item-%d", i)
	}
	s.startInput.Items = items

	_, err := s.sessionService.StartSession(s.ctx, s.startInput)
	s.Require().NoError(err)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		pulled []string
		empty  int
	)
	for i := 0; i < 250; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			out, err := s.sessionService.PullItem(s.ctx, &PullItemInput{
				MessageID: s.testMessageID,
				UserID:    fmt.Sprintf("user-%d", n),
			})
			if err != nil {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if out.Result == PullResultItem {
				pulled = append(pulled, out.Item)
			} else {
				empty++
			}
		}(i)
	}
	wg.Wait()

	s.Len(pulled, 200)
	s.Equal(50, empty)

	sort.Strings(pulled)
	want := append([]string(nil), items...)
	sort.Strings(want)
	s.Equal(want, pulled)
}

// TestPulledItemsArePermutation uses the real shuffler
func (s *SessionServiceTestSuite) TestPulledItemsArePermutation() {
	svc, err := New(&Config{
		Shuffler:      shuffle.New(nil),
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)

	items := []string{"a", "b", "c", "d", "e", "f", "g"}
	s.startInput.Items = items
	out, err := svc.StartSession(s.ctx, s.startInput)
	s.Require().NoError(err)
	s.Equal(len(items), out.Session.Remaining)

	var pulled []string
	for range items {
		p, err := svc.PullItem(s.ctx, &PullItemInput{MessageID: s.testMessageID, UserID: "user"})
		s.Require().NoError(err)
		s.Require().Equal(PullResultItem, p.Result)
		pulled = append(pulled, p.Item)
	}

	sort.Strings(pulled)
	s.Equal(items, pulled)
}

// TestBagLockFollowsSessionLifecycle wires the session service as the bag lock
func (s *SessionServiceTestSuite) TestBagLockFollowsSessionLifecycle() {
	s.reverseShuffle()

	bags, err := bag.New(&bag.Config{Locks: s.sessionService})
	s.Require().NoError(err)

	_, err = bags.CreateBag(s.ctx, &bag.CreateBagInput{ServerID: s.testServerID, Name: "fruit"})
	s.Require().NoError(err)
	_, err = bags.AddItems(s.ctx, &bag.AddItemsInput{ServerID: s.testServerID, Name: "fruit", RawItems: "apple, banana, cherry"})
	s.Require().NoError(err)

	check, err := bags.CheckBag(s.ctx, &bag.CheckBagInput{ServerID: s.testServerID, Name: "fruit"})
	s.Require().NoError(err)
	s.startInput.Items = check.Items

	_, err = s.sessionService.StartSession(s.ctx, s.startInput)
	s.Require().NoError(err)

	_, err = bags.AddItems(s.ctx, &bag.AddItemsInput{ServerID: s.testServerID, Name: "fruit", RawItems: "kiwi"})
	s.ErrorIs(err, bag.ErrActiveSession)
	_, err = bags.RemoveItems(s.ctx, &bag.RemoveItemsInput{ServerID: s.testServerID, Name: "fruit", RawItems: "apple"})
	s.ErrorIs(err, bag.ErrActiveSession)
	_, err = bags.DropItem(s.ctx, &bag.DropItemInput{ServerID: s.testServerID, Name: "fruit", Index: 0})
	s.ErrorIs(err, bag.ErrActiveSession)
	_, err = bags.DeleteBag(s.ctx, &bag.DeleteBagInput{ServerID: s.testServerID, Name: "fruit"})
	s.ErrorIs(err, bag.ErrActiveSession)

	for i := 0; i < 4; i++ {
		s.pull(fmt.Sprintf("user-%d", i))
	}

	// pulls never touch the bag itself
	after, err := bags.CheckBag(s.ctx, &bag.CheckBagInput{ServerID: s.testServerID, Name: "fruit"})
	s.Require().NoError(err)
	s.Equal([]string{"apple", "banana", "cherry"}, after.Items)

	_, err = s.sessionService.EndSession(s.ctx, &EndSessionInput{ServerID: s.testServerID, BagName: "fruit"})
	s.Require().NoError(err)

	_, err = bags.AddItems(s.ctx, &bag.AddItemsInput{ServerID: s.testServerID, Name: "fruit", RawItems: "kiwi"})
	s.NoError(err)

	_, err = s.sessionService.StartSession(s.ctx, s.startInput)
	s.NoError(err)
}
