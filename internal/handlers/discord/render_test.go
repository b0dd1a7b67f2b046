package discord

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/KirkDiggler/blindbag/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinLimitedFits(t *testing.T) {
	assert.Equal(t, "contains: a, b, c", joinLimited("contains: ", ", ", []string{"a", "b", "c"}))
	assert.Equal(t, "contains: ", joinLimited("contains: ", ", ", nil))
}

func TestJoinLimitedCountsTheRest(t *testing.T) {
	items := make([]string, 500)
	for i := range items {
		items[i] = fmt.Sprintf("item-%03d", i)
	}

	out := joinLimited("**big** contains: ", ", ", items)
	require.LessOrEqual(t, utf8.RuneCountInString(out), messageLimit)

	pieces := strings.Split(strings.TrimPrefix(out, "**big** contains: "), ", ")
	last := pieces[len(pieces)-1]
	require.True(t, strings.HasPrefix(last, "+") && strings.HasSuffix(last, " more"), "last piece %q", last)

	more, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(last, "+"), " more"))
	require.NoError(t, err)

	shown := pieces[:len(pieces)-1]
	assert.Equal(t, len(items), len(shown)+more)
	assert.Equal(t, items[:len(shown)], shown)
}

func TestJoinLimitedCountsRunes(t *testing.T) {
	// Multi-byte items must not be cut early because of byte length
	items := make([]string, 100)
	for i := range items {
		items[i] = "🍎🍌🍒🍎🍌🍒"
	}

	out := joinLimited("", ", ", items)
	assert.Equal(t, strings.Join(items, ", "), out)
}

func TestJoinLimitedOversizedFirstItem(t *testing.T) {
	out := joinLimited("head: ", ", ", []string{strings.Repeat("x", messageLimit), "y"})
	assert.Equal(t, "head: +2 more", out)
}

func TestBagListFitsOneMessage(t *testing.T) {
	r := renderer{prefix: "$", emoji: "👜"}

	names := make([]string, 300)
	for i := range names {
		names[i] = fmt.Sprintf("bag-number-%03d", i)
	}

	out := r.bagList(names, map[string]bool{"bag-number-000": true})
	assert.LessOrEqual(t, utf8.RuneCountInString(out), messageLimit)
	assert.True(t, strings.HasPrefix(out, "There are **300** total bags.\n**Current Bags:**\n- bag-number-000 (session running)\n- bag-number-001"))
	assert.Regexp(t, `\n- \+\d+ more$`, out)
}

func TestSessionEnded(t *testing.T) {
	r := renderer{prefix: "$", emoji: "👜"}
	session := &models.Session{BagName: "fruit", Size: 3, Remaining: 1}
	pulls := []*models.PullRecord{{UserID: "user-a"}, {UserID: "user-a"}}

	assert.Equal(t,
		"Session for **fruit** has ended. The bag has been returned to its original state.\n2 of 3 items were pulled by 1 people.",
		r.sessionEnded(session, pulls, true))
	assert.Equal(t,
		"Session for **fruit** has ended. The bag has been returned to its original state.\n2 of 3 items were pulled.",
		r.sessionEnded(session, nil, false))
}
