package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/KirkDiggler/blindbag/internal/repositories/pull_ledger"
	"github.com/KirkDiggler/blindbag/internal/services/bag"
	"github.com/KirkDiggler/blindbag/internal/services/session"
	"github.com/KirkDiggler/blindbag/internal/telemetry"
)

// IncomingMessage is a chat message the router may treat as a command
type IncomingMessage struct {
	GuildID   string
	ChannelID string
	AuthorID  string

	// AuthorIsBot is set for messages written by any bot account
	AuthorIsBot bool

	Content string
}

// commandFunc runs one command and returns the reply and the telemetry outcome
type commandFunc func(ctx context.Context, msg *IncomingMessage, args string) (string, string, error)

// Router dispatches prefix commands to the bag and session services
type Router struct {
	bags      bag.Service
	sessions  session.Service
	ledger    pull_ledger.Repository
	messenger Messenger
	render    renderer
	prefix    string
	commands  map[string]commandFunc
	aliases   map[string]string
}

// RouterConfig holds configuration for the command router
type RouterConfig struct {
	// Prefix starts every command, for example "$"
	Prefix string

	// BagEmoji is the reaction added to session status messages
	BagEmoji string

	BagService     bag.Service
	SessionService session.Service
	Ledger         pull_ledger.Repository
	Messenger      Messenger
}

// NewRouter creates a new command router
func NewRouter(cfg *RouterConfig) (*Router, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Prefix == "" {
		return nil, errors.New("command prefix cannot be empty")
	}

	if cfg.BagEmoji == "" {
		return nil, errors.New("bag emoji cannot be empty")
	}

	if cfg.BagService == nil {
		return nil, errors.New("bag service cannot be nil")
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

	r := &Router{
		bags:      cfg.BagService,
		sessions:  cfg.SessionService,
		ledger:    cfg.Ledger,
		messenger: cfg.Messenger,
		render:    renderer{prefix: cfg.Prefix, emoji: cfg.BagEmoji},
		prefix:    cfg.Prefix,
		aliases:   map[string]string{"bags": "showallbags"},
	}

	r.commands = map[string]commandFunc{
		"create":      r.handleCreate,
		"delete":      r.handleDelete,
		"showallbags": r.handleShowAllBags,
		"add":         r.handleAdd,
		"remove":      r.handleRemove,
		"drop":        r.handleDrop,
		"check":       r.handleCheck,
		"start":       r.handleStart,
		"end":         r.handleEnd,
		"sessions":    r.handleSessions,
		"help":        r.handleHelp,
	}

	return r, nil
}

// HandleMessage runs the command in a guild message. Messages from bots,
// direct messages and unknown commands are ignored.
func (r *Router) HandleMessage(ctx context.Context, msg *IncomingMessage) error {
	if msg == nil || msg.AuthorIsBot || msg.GuildID == "" {
		return nil
	}

	if !strings.HasPrefix(msg.Content, r.prefix) {
		return nil
	}

	name, args := splitArg(strings.TrimPrefix(msg.Content, r.prefix))
	if alias, ok := r.aliases[name]; ok {
		name = alias
	}

	handler, ok := r.commands[name]
	if !ok {
		return nil
	}

	reply, outcome, err := handler(ctx, msg, args)
	if err != nil {
		slog.Error("command failed",
			slog.String("command", name),
			slog.String("guild", msg.GuildID),
			slog.String("user", msg.AuthorID),
			slog.Any("error", err))
		outcome = telemetry.OutcomeError
		reply = r.render.failure()
	}

	telemetry.RecordCommand(name, outcome)

	if reply == "" {
		return nil
	}

	if _, err := r.messenger.Send(msg.ChannelID, reply); err != nil {
		return fmt.Errorf("failed to reply to %s: %w", name, err)
	}

	return nil
}

func (r *Router) handleCreate(ctx context.Context, msg *IncomingMessage, args string) (string, string, error) {
	name, _ := splitArg(args)
	if name == "" {
		return r.render.usage("create"), telemetry.OutcomeRejected, nil
	}

	output, err := r.bags.CreateBag(ctx, &bag.CreateBagInput{
		ServerID: msg.GuildID,
		Name:     name,
	})
	if err != nil {
		return r.reject("create", name, err)
	}

	return r.render.bagCreated(output.Name), telemetry.OutcomeOK, nil
}

func (r *Router) handleDelete(ctx context.Context, msg *IncomingMessage, args string) (string, string, error) {
	name, _ := splitArg(args)
	if name == "" {
		return r.render.usage("delete"), telemetry.OutcomeRejected, nil
	}

	output, err := r.bags.DeleteBag(ctx, &bag.DeleteBagInput{
		ServerID: msg.GuildID,
		Name:     name,
	})
	if err != nil {
		return r.reject("delete", name, err)
	}

	return r.render.bagDeleted(output), telemetry.OutcomeOK, nil
}

func (r *Router) handleShowAllBags(ctx context.Context, msg *IncomingMessage, args string) (string, string, error) {
	bags, err := r.bags.ListBags(ctx, &bag.ListBagsInput{ServerID: msg.GuildID})
	if err != nil {
		return "", "", fmt.Errorf("failed to list bags: %w", err)
	}

	sessions, err := r.sessions.ListSessions(ctx, &session.ListSessionsInput{ServerID: msg.GuildID})
	if err != nil {
		return "", "", fmt.Errorf("failed to list sessions: %w", err)
	}

	running := make(map[string]bool, len(sessions.Sessions))
	for _, s := range sessions.Sessions {
		running[s.BagName] = true
	}

	return r.render.bagList(bags.Names, running), telemetry.OutcomeOK, nil
}

func (r *Router) handleAdd(ctx context.Context, msg *IncomingMessage, args string) (string, string, error) {
	name, items := splitArg(args)
	if name == "" || items == "" {
		return r.render.usage("add"), telemetry.OutcomeRejected, nil
	}

	output, err := r.bags.AddItems(ctx, &bag.AddItemsInput{
		ServerID: msg.GuildID,
		Name:     name,
		RawItems: items,
	})
	if err != nil {
		return r.reject("add", name, err)
	}

	return r.render.itemsAdded(bag.NormalizeName(name), output), telemetry.OutcomeOK, nil
}

func (r *Router) handleRemove(ctx context.Context, msg *IncomingMessage, args string) (string, string, error) {
	name, items := splitArg(args)
	if name == "" || items == "" {
		return r.render.usage("remove"), telemetry.OutcomeRejected, nil
	}

	output, err := r.bags.RemoveItems(ctx, &bag.RemoveItemsInput{
		ServerID: msg.GuildID,
		Name:     name,
		RawItems: items,
	})
	if err != nil {
		return r.reject("remove", name, err)
	}

	return r.render.itemsRemoved(bag.NormalizeName(name), output), telemetry.OutcomeOK, nil
}

func (r *Router) handleDrop(ctx context.Context, msg *IncomingMessage, args string) (string, string, error) {
	name, rest := splitArg(args)
	index, err := strconv.Atoi(strings.TrimSpace(rest))
	if name == "" || err != nil {
		return r.render.usage("drop"), telemetry.OutcomeRejected, nil
	}

	output, err := r.bags.DropItem(ctx, &bag.DropItemInput{
		ServerID: msg.GuildID,
		Name:     name,
		Index:    index,
	})
	if errors.Is(err, bag.ErrIndexOutOfRange) {
		check, checkErr := r.bags.CheckBag(ctx, &bag.CheckBagInput{ServerID: msg.GuildID, Name: name})
		if checkErr != nil {
			return r.reject("drop", name, checkErr)
		}
		return r.render.indexOutOfRange(check.Name, len(check.Items)), telemetry.OutcomeRejected, nil
	}
	if err != nil {
		return r.reject("drop", name, err)
	}

	return r.render.itemDropped(bag.NormalizeName(name), output), telemetry.OutcomeOK, nil
}

func (r *Router) handleCheck(ctx context.Context, msg *IncomingMessage, args string) (string, string, error) {
	name, _ := splitArg(args)
	if name == "" {
		return r.render.usage("check"), telemetry.OutcomeRejected, nil
	}

	output, err := r.bags.CheckBag(ctx, &bag.CheckBagInput{
		ServerID: msg.GuildID,
		Name:     name,
	})
	if err != nil {
		return r.reject("check", name, err)
	}

	return r.render.bagContents(output), telemetry.OutcomeOK, nil
}

// handleStart posts the status message and starts a session tracked by it.
// The status message is removed again when the session cannot start.
func (r *Router) handleStart(ctx context.Context, msg *IncomingMessage, args string) (string, string, error) {
	name, _ := splitArg(args)
	name = bag.NormalizeName(name)
	if name == "" {
		return r.render.usage("start"), telemetry.OutcomeRejected, nil
	}

	contents, err := r.bags.CheckBag(ctx, &bag.CheckBagInput{
		ServerID: msg.GuildID,
		Name:     name,
	})
	if errors.Is(err, bag.ErrBagNotFound) {
		return r.render.cannotStart(name), telemetry.OutcomeRejected, nil
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to check bag: %w", err)
	}

	if len(contents.Items) == 0 {
		return r.render.cannotStart(name), telemetry.OutcomeRejected, nil
	}

	if r.sessions.IsLocked(msg.GuildID, name) {
		return r.render.alreadyRunning(name), telemetry.OutcomeRejected, nil
	}

	statusID, err := r.messenger.Send(msg.ChannelID, r.render.sessionStarted(name, len(contents.Items)))
	if err != nil {
		return "", "", fmt.Errorf("failed to post session status: %w", err)
	}

	if err := r.messenger.AddReaction(msg.ChannelID, statusID, r.render.emoji); err != nil {
		slog.Warn("failed to add session reaction",
			slog.String("guild", msg.GuildID),
			slog.String("message", statusID),
			slog.Any("error", err))
	}

	_, err = r.sessions.StartSession(ctx, &session.StartSessionInput{
		ServerID:  msg.GuildID,
		BagName:   name,
		ChannelID: msg.ChannelID,
		MessageID: statusID,
		Items:     contents.Items,
	})
	if err != nil {
		if delErr := r.messenger.Delete(msg.ChannelID, statusID); delErr != nil {
			slog.Warn("failed to delete orphaned status message",
				slog.String("message", statusID),
				slog.Any("error", delErr))
		}
		return r.reject("start", name, err)
	}

	telemetry.SessionStarted()

	return "", telemetry.OutcomeOK, nil
}

// handleEnd stops a session, reports its pulls and clears them from the ledger
func (r *Router) handleEnd(ctx context.Context, msg *IncomingMessage, args string) (string, string, error) {
	name, _ := splitArg(args)
	name = bag.NormalizeName(name)
	if name == "" {
		return r.render.usage("end"), telemetry.OutcomeRejected, nil
	}

	output, err := r.sessions.EndSession(ctx, &session.EndSessionInput{
		ServerID: msg.GuildID,
		BagName:  name,
	})
	if err != nil {
		return r.reject("end", name, err)
	}

	telemetry.SessionEnded()
	ended := output.Session

	// The session counts its own pulls; the ledger only adds who pulled
	ledgerRead := true
	pulls, err := r.ledger.GetPullsForSession(ctx, &pull_ledger.GetPullsForSessionInput{
		SessionID: ended.ID,
	})
	if err != nil {
		slog.Warn("failed to read session pulls",
			slog.String("session", ended.ID),
			slog.Any("error", err))
		ledgerRead = false
		pulls = &pull_ledger.GetPullsForSessionOutput{}
	}

	if err := r.ledger.DeleteSessionPulls(ctx, &pull_ledger.DeleteSessionPullsInput{
		SessionID: ended.ID,
	}); err != nil {
		slog.Warn("failed to delete session pulls",
			slog.String("session", ended.ID),
			slog.Any("error", err))
	}

	if err := r.messenger.Edit(ended.ChannelID, ended.MessageID, r.render.sessionClosed(name)); err != nil {
		slog.Warn("failed to close session status",
			slog.String("message", ended.MessageID),
			slog.Any("error", err))
	}

	return r.render.sessionEnded(ended, pulls.Records, ledgerRead), telemetry.OutcomeOK, nil
}

func (r *Router) handleSessions(ctx context.Context, msg *IncomingMessage, args string) (string, string, error) {
	output, err := r.sessions.ListSessions(ctx, &session.ListSessionsInput{ServerID: msg.GuildID})
	if err != nil {
		return "", "", fmt.Errorf("failed to list sessions: %w", err)
	}

	return r.render.sessionList(output.Sessions), telemetry.OutcomeOK, nil
}

func (r *Router) handleHelp(ctx context.Context, msg *IncomingMessage, args string) (string, string, error) {
	return r.render.help(), telemetry.OutcomeOK, nil
}

// reject renders an expected domain error. Anything else is returned.
func (r *Router) reject(command, name string, err error) (string, string, error) {
	name = bag.NormalizeName(name)

	var reply string
	switch {
	case errors.Is(err, bag.ErrBagNotFound):
		reply = r.render.bagNotFound(name)
	case errors.Is(err, bag.ErrBagAlreadyExists):
		reply = r.render.bagExists(name)
	case errors.Is(err, bag.ErrActiveSession):
		reply = r.render.bagLocked(name)
	case errors.Is(err, bag.ErrNoValidItems):
		reply = r.render.noValidItems()
	case errors.Is(err, bag.ErrBagEmpty):
		reply = r.render.bagEmpty(name)
	case errors.Is(err, bag.ErrInvalidName):
		reply = r.render.usage(command)
	case errors.Is(err, session.ErrSessionNotFound):
		reply = r.render.noSession(name)
	case errors.Is(err, session.ErrAlreadyRunning), errors.Is(err, session.ErrMessageInUse):
		reply = r.render.alreadyRunning(name)
	case errors.Is(err, session.ErrEmptyBag):
		reply = r.render.cannotStart(name)
	default:
		return "", "", fmt.Errorf("%s %q: %w", command, name, err)
	}

	return reply, telemetry.OutcomeRejected, nil
}

// splitArg splits off the first argument. A leading double-quoted argument
// may contain spaces.
func splitArg(args string) (string, string) {
	args = strings.TrimSpace(args)
	if args == "" {
		return "", ""
	}

	if args[0] == '"' {
		if end := strings.IndexByte(args[1:], '"'); end >= 0 {
			return args[1 : end+1], strings.TrimSpace(args[end+2:])
		}
	}

	i := strings.IndexFunc(args, unicode.IsSpace)
	if i < 0 {
		return args, ""
	}
	return args[:i], strings.TrimSpace(args[i:])
}
