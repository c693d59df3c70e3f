// Package chat maintains the conversation transcript and turns assistant
// replies into view updates, including enrollment results embedded in a
// reply.
package chat

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"classdesk/internal/api"
	"classdesk/internal/filter"
	"classdesk/pkg/models"
)

// Identity is the fixed member identity sent with every context snapshot.
type Identity struct {
	MemberID  string
	UserGroup string
}

// Delegation tells the caller what an applied reply asks for beyond the
// transcript: an embedded enrollment to run through the enrollment
// coordinator, and the session to re-select.
type Delegation struct {
	EnrollResult    *models.EnrollResult
	SelectSessionID string
}

// Coordinator owns the transcript and the suggested-sessions slot. The
// transcript is append-only: turns are never reordered or deleted, and the
// user's utterance is appended before its reply can arrive.
type Coordinator struct {
	conversationID string
	identity       Identity
	filters        *filter.State

	transcript  []models.Turn
	suggestions []models.SuggestedSession
}

// New starts a conversation under a freshly generated id, seeded with the
// canonical greeting as the first transcript entry.
func New(filters *filter.State, identity Identity) *Coordinator {
	return &Coordinator{
		conversationID: uuid.New().String(),
		identity:       identity,
		filters:        filters,
		transcript: []models.Turn{
			{Role: models.RoleAssistant, Text: Greeting},
		},
	}
}

// ConversationID is the generated id shared by every turn of this session.
func (c *Coordinator) ConversationID() string {
	return c.conversationID
}

// Transcript is the ordered turn sequence.
func (c *Coordinator) Transcript() []models.Turn {
	return c.transcript
}

// Suggestions is the list attached to the latest assistant reply.
func (c *Coordinator) Suggestions() []models.SuggestedSession {
	return c.suggestions
}

// Send appends the utterance as a user turn immediately, before any network
// activity, and returns the request to issue. The context snapshot reflects
// the filter state at call time; later filter changes do not alter a
// request already built.
func (c *Coordinator) Send(utterance string) api.ChatRequest {
	c.transcript = append(c.transcript, models.Turn{Role: models.RoleUser, Text: utterance})

	sel := c.filters.Snapshot()
	return api.ChatRequest{
		SessionID: c.conversationID,
		Message:   utterance,
		UIContext: api.UIContext{
			SelectedBranchIDs: sel.BranchIDs,
			SelectedBuckets:   sel.Buckets,
			OnlyHasSpots:      sel.OnlyOpenSpots,
			MemberID:          c.identity.MemberID,
			UserGroup:         c.identity.UserGroup,
		},
	}
}

// ApplyReply appends the assistant's answer to the transcript and replaces
// the suggestion slot. On transport or backend failure a single
// assistant-role error turn is appended instead; no retry, and the previous
// suggestions stay.
func (c *Coordinator) ApplyReply(reply api.ChatReply, err error) Delegation {
	if err != nil {
		c.transcript = append(c.transcript, models.Turn{
			Role: models.RoleAssistant,
			Text: fmt.Sprintf("Sorry, something went wrong: %v", err),
		})
		return Delegation{}
	}

	text := strings.TrimSpace(reply.AssistantMessage)
	if text == "" {
		text = Greeting
	} else {
		text = StripGreeting(c.transcript[0].Text, text)
	}
	if q := strings.TrimSpace(reply.FollowUpQuestion); q != "" && !strings.Contains(text, q) {
		text = text + "\n\n" + q
	}
	c.transcript = append(c.transcript, models.Turn{Role: models.RoleAssistant, Text: text})

	c.suggestions = reply.SuggestedSessions

	var d Delegation
	if reply.EnrollResult != nil && reply.EnrollResult.SessionID != "" {
		d.EnrollResult = reply.EnrollResult
		d.SelectSessionID = reply.EnrollResult.SessionID
	}
	return d
}

// OptionUtterance synthesizes the message for enrolling via conversation
// into the Nth suggested option, matching the phrasing the backend's
// enrollment intent understands.
func OptionUtterance(ordinal int) string {
	return fmt.Sprintf("Sign me up for option %d", ordinal)
}
