package discord

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/KirkDiggler/blindbag/internal/models"
	"github.com/KirkDiggler/blindbag/internal/services/bag"
)

// renderer builds the chat text of the bot
type renderer struct {
	prefix string
	emoji  string
}

func (r renderer) cmd(name string) string {
	return "`" + r.prefix + name + "`"
}

// Bag commands

func (r renderer) bagCreated(name string) string {
	return fmt.Sprintf("Created a new empty bag named: **%s**", name)
}

func (r renderer) bagExists(name string) string {
	return fmt.Sprintf("A bag named '%s' already exists!", name)
}

func (r renderer) bagNotFound(name string) string {
	return fmt.Sprintf("Bag '%s' does not exist. Create it first with `%screate %s`.", name, r.prefix, name)
}

func (r renderer) bagLocked(name string) string {
	return fmt.Sprintf("A session for **%s** is currently running. Use `%send %s` first.", name, r.prefix, name)
}

func (r renderer) bagDeleted(out *bag.DeleteBagOutput) string {
	return fmt.Sprintf("Deleted: **%s** (%d items)", out.Name, out.ItemCount)
}

func (r renderer) noValidItems() string {
	return "I couldn't find any items. Make sure to separate them with commas!"
}

func (r renderer) bagList(names []string, running map[string]bool) string {
	if len(names) == 0 {
		return fmt.Sprintf("There are not yet any bags, use %s to create one.", r.cmd("create <bag>"))
	}

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = name
		if running[name] {
			lines[i] += " (session running)"
		}
	}

	head := fmt.Sprintf("There are **%d** total bags.\n**Current Bags:**\n- ", len(names))
	return joinLimited(head, "\n- ", lines)
}

func (r renderer) itemsAdded(name string, out *bag.AddItemsOutput) string {
	msg := fmt.Sprintf("✅ Added %d items to **%s**. Total items: %d", len(out.Added), name, out.Total)
	if len(out.Duplicates) > 0 {
		msg += fmt.Sprintf("\nSkipped duplicates: %s", strings.Join(out.Duplicates, ", "))
	}
	return msg
}

func (r renderer) itemsRemoved(name string, out *bag.RemoveItemsOutput) string {
	msg := fmt.Sprintf("❌ Removed %d items from **%s**. Total items: %d", len(out.Removed), name, out.Total)
	if len(out.Missing) > 0 {
		msg += fmt.Sprintf("\nNot in the bag: %s", strings.Join(out.Missing, ", "))
	}
	return msg
}

func (r renderer) itemDropped(name string, out *bag.DropItemOutput) string {
	return fmt.Sprintf("Successfully dropped item at index `%d`: **%s** from **%s**.", out.Index, out.Item, name)
}

func (r renderer) bagEmpty(name string) string {
	return fmt.Sprintf("'%s' is empty.", name)
}

func (r renderer) indexOutOfRange(name string, size int) string {
	return fmt.Sprintf("Invalid index! **%s** has indices `0` through `%d`. Please try again.", name, size-1)
}

func (r renderer) bagContents(out *bag.CheckBagOutput) string {
	if len(out.Items) == 0 {
		return r.bagEmpty(out.Name)
	}
	return joinLimited(fmt.Sprintf("**%s** contains: ", out.Name), ", ", out.Items)
}

// Sessions

func (r renderer) cannotStart(name string) string {
	return fmt.Sprintf("Bag '%s' does not exist or is empty!", name)
}

func (r renderer) alreadyRunning(name string) string {
	return fmt.Sprintf("A session for **%s** is already running! Use `%send %s` first.", name, r.prefix, name)
}

func (r renderer) sessionStarted(name string, remaining int) string {
	return fmt.Sprintf("**BLIND BAG SESSION STARTED: %s**\nReact with %s to grab an item! (%d items left)", name, r.emoji, remaining)
}

func (r renderer) sessionActive(name string, remaining int) string {
	return fmt.Sprintf("**BLIND BAG SESSION ACTIVE: %s**\nReact with %s to grab an item! (%d items left)", name, r.emoji, remaining)
}

func (r renderer) sessionDepleted(name string) string {
	return fmt.Sprintf("**BLIND BAG SESSION ACTIVE: %s** The bag is now empty! Use `%send %s` to close the session.", name, r.prefix, name)
}

func (r renderer) sessionClosed(name string) string {
	return fmt.Sprintf("**BLIND BAG SESSION ENDED: %s**", name)
}

func (r renderer) noSession(name string) string {
	return fmt.Sprintf("There is no active session for bag '%s'.", name)
}

// sessionEnded reports the pulls of an ended session. The puller count comes
// from the ledger and is left out when the ledger could not be read.
func (r renderer) sessionEnded(session *models.Session, pulls []*models.PullRecord, ledgerRead bool) string {
	msg := fmt.Sprintf("Session for **%s** has ended. The bag has been returned to its original state.\n%d of %d items were pulled",
		session.BagName, session.Size-session.Remaining, session.Size)
	if !ledgerRead {
		return msg + "."
	}

	pullers := make(map[string]struct{}, len(pulls))
	for _, p := range pulls {
		pullers[p.UserID] = struct{}{}
	}
	return fmt.Sprintf("%s by %d people.", msg, len(pullers))
}

func (r renderer) sessionList(sessions []*models.Session) string {
	if len(sessions) == 0 {
		return "There are no active sessions."
	}

	lines := make([]string, len(sessions))
	for i, s := range sessions {
		lines[i] = fmt.Sprintf("%s: %d of %d items left", s.BagName, s.Remaining, s.Size)
	}
	return joinLimited("**Active sessions:**\n- ", "\n- ", lines)
}

// messageLimit is the most characters Discord accepts in one message
const messageLimit = 2000

// joinLimited appends items to head, separated by sep. Once the next item
// would not fit in one message the rest are counted as "+N more".
func joinLimited(head, sep string, items []string) string {
	var b strings.Builder
	b.WriteString(head)
	size := utf8.RuneCountInString(head)

	for i, item := range items {
		piece := item
		if i > 0 {
			piece = sep + item
		}

		need := utf8.RuneCountInString(piece)
		if left := len(items) - i - 1; left > 0 {
			need += utf8.RuneCountInString(moreSuffix(sep, left))
		}

		if size+need > messageLimit {
			if i == 0 {
				sep = ""
			}
			b.WriteString(moreSuffix(sep, len(items)-i))
			return b.String()
		}

		b.WriteString(piece)
		size += utf8.RuneCountInString(piece)
	}

	return b.String()
}

func moreSuffix(sep string, n int) string {
	return fmt.Sprintf("%s+%d more", sep, n)
}

// Pulls

func renderPulledItem(item string) string {
	return fmt.Sprintf("👜 You pulled: **%s** from the bag!", item)
}

func renderPullFromEmpty() string {
	return "The bag is empty!"
}

func renderDirectMessageFallback(userID string) string {
	return fmt.Sprintf("<@%s>, I couldn't DM you! Please open your DMs to receive your item.", userID)
}

// Help and usage

var usages = map[string]string{
	"create":      "create <bag>",
	"delete":      "delete <bag>",
	"showallbags": "showallbags",
	"add":         "add <bag> <item, item, ...>",
	"remove":      "remove <bag> <item, item, ...>",
	"drop":        "drop <bag> <index>",
	"check":       "check <bag>",
	"start":       "start <bag>",
	"end":         "end <bag>",
	"sessions":    "sessions",
	"help":        "help",
}

var helpOrder = []string{"create", "delete", "showallbags", "add", "remove", "drop", "check", "start", "end", "sessions", "help"}

func (r renderer) usage(command string) string {
	return "Usage: " + r.cmd(usages[command])
}

func (r renderer) help() string {
	var b strings.Builder
	b.WriteString("**Blind bag commands:**")
	for _, name := range helpOrder {
		b.WriteString("\n")
		b.WriteString(r.cmd(usages[name]))
	}
	fmt.Fprintf(&b, "\nDuring a session, react with %s on the session message to pull an item. Items are sent by DM.", r.emoji)
	return b.String()
}

func (r renderer) failure() string {
	return "Something went wrong, please try again."
}
