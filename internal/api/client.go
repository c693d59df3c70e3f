// Package api is the typed JSON client for the scheduling service. It owns
// no view state; callers decide what to do with results and errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"classdesk/pkg/models"
)

// Client talks to the backend over its REST surface.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// New returns a client for the given base URL, e.g. "http://127.0.0.1:8000".
func New(baseURL string, logger zerolog.Logger) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Logger:     logger,
	}
}

// CalendarQuery selects the event window. Empty BranchIDs or Buckets mean
// "all" and are omitted from the request entirely.
type CalendarQuery struct {
	Start     string // inclusive, YYYY-MM-DD
	End       string // inclusive, YYYY-MM-DD
	BranchIDs []string
	Buckets   []string
	HasSpots  bool
}

// UIContext is the filter/identity snapshot sent alongside a chat message.
type UIContext struct {
	SelectedBranchIDs []string `json:"selected_branch_ids"`
	SelectedBuckets   []string `json:"selected_buckets"`
	OnlyHasSpots      bool     `json:"only_has_spots"`
	MemberID          string   `json:"member_id"`
	UserGroup         string   `json:"user_group"`
}

// ChatRequest is one conversational turn sent to the backend.
type ChatRequest struct {
	SessionID string    `json:"session_id"`
	Message   string    `json:"message"`
	UIContext UIContext `json:"ui_context"`
}

// ChatReply is the assistant's structured answer.
type ChatReply struct {
	AssistantMessage  string                    `json:"assistant_message"`
	FollowUpQuestion  string                    `json:"follow_up_question"`
	IntentName        string                    `json:"intent_name"`
	SuggestedSessions []models.SuggestedSession `json:"suggested_sessions"`
	EnrollResult      *models.EnrollResult      `json:"enroll_result"`
}

// Branches lists all facility branches.
func (c *Client) Branches(ctx context.Context) ([]models.Branch, error) {
	var out struct {
		Branches []models.Branch `json:"branches"`
	}
	if err := c.get(ctx, "/api/v1/branches", nil, &out); err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return out.Branches, nil
}

// Hours returns a branch's opening hours on the given date (YYYY-MM-DD).
func (c *Client) Hours(ctx context.Context, branchID, date string) (models.Hours, error) {
	var out models.Hours
	q := url.Values{"branch_id": {branchID}, "date": {date}}
	if err := c.get(ctx, "/api/v1/hours", q, &out); err != nil {
		return models.Hours{}, fmt.Errorf("get hours: %w", err)
	}
	return out, nil
}

// OpenNow reports whether a branch is currently open.
func (c *Client) OpenNow(ctx context.Context, branchID string) (models.OpenNow, error) {
	var out models.OpenNow
	q := url.Values{"branch_id": {branchID}}
	if err := c.get(ctx, "/api/v1/hours/open-now", q, &out); err != nil {
		return models.OpenNow{}, fmt.Errorf("open-now check: %w", err)
	}
	return out, nil
}

// calendarEvent mirrors the grid-oriented wire shape of /calendar, with
// session fields nested under extendedProps and the class name as title.
type calendarEvent struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	ExtendedProps struct {
		SessionID         string   `json:"session_id"`
		BranchID          string   `json:"branch_id"`
		BranchName        string   `json:"branch_name"`
		ClassID           string   `json:"class_id"`
		Bucket            string   `json:"bucket"`
		Tags              []string `json:"tags"`
		Location          string   `json:"location"`
		Instructor        string   `json:"instructor"`
		Capacity          int      `json:"capacity"`
		Enrolled          int      `json:"enrolled"`
		AvailabilityColor string   `json:"availability_color"`
	} `json:"extendedProps"`
}

// Calendar fetches the sessions whose start falls inside the query window.
func (c *Client) Calendar(ctx context.Context, query CalendarQuery) ([]models.Session, error) {
	q := url.Values{
		"start":     {query.Start},
		"end":       {query.End},
		"has_spots": {fmt.Sprintf("%t", query.HasSpots)},
	}
	if len(query.BranchIDs) > 0 {
		q.Set("branch_ids", strings.Join(query.BranchIDs, ","))
	}
	if len(query.Buckets) > 0 {
		q.Set("buckets", strings.Join(query.Buckets, ","))
	}

	var out struct {
		Events []calendarEvent `json:"events"`
	}
	if err := c.get(ctx, "/api/v1/calendar", q, &out); err != nil {
		return nil, fmt.Errorf("load calendar: %w", err)
	}

	sessions := make([]models.Session, 0, len(out.Events))
	for _, ev := range out.Events {
		p := ev.ExtendedProps
		sessions = append(sessions, models.Session{
			SessionID:         p.SessionID,
			ClassID:           p.ClassID,
			ClassName:         ev.Title,
			Bucket:            p.Bucket,
			Tags:              p.Tags,
			BranchID:          p.BranchID,
			BranchName:        p.BranchName,
			Start:             ev.Start,
			End:               ev.End,
			Location:          p.Location,
			Instructor:        p.Instructor,
			Capacity:          p.Capacity,
			Enrolled:          p.Enrolled,
			AvailabilityColor: p.AvailabilityColor,
		})
	}
	return sessions, nil
}

// SessionDetail fetches the full record for one session. Returns
// ErrNotFound when the id is unknown to the backend.
func (c *Client) SessionDetail(ctx context.Context, sessionID string) (models.Session, error) {
	var out models.Session
	if err := c.get(ctx, "/api/v1/sessions/"+url.PathEscape(sessionID), nil, &out); err != nil {
		return models.Session{}, fmt.Errorf("session detail: %w", err)
	}
	return out, nil
}

// Enroll enrolls memberID into sessionID. A second call for the same pair
// succeeds with AlreadyEnrolled set; a full session comes back as a
// RejectedError carrying the backend's reason.
func (c *Client) Enroll(ctx context.Context, sessionID, memberID string) (models.EnrollResult, error) {
	body := struct {
		SessionID string `json:"session_id"`
		MemberID  string `json:"member_id"`
	}{sessionID, memberID}

	var out models.EnrollResult
	if err := c.post(ctx, "/api/v1/enroll", body, &out); err != nil {
		return models.EnrollResult{}, fmt.Errorf("enroll: %w", err)
	}
	return out, nil
}

// Chat sends one conversational turn and returns the assistant's reply.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (ChatReply, error) {
	var out ChatReply
	if err := c.post(ctx, "/api/v1/chat", req, &out); err != nil {
		return ChatReply{}, fmt.Errorf("chat: %w", err)
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Error().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Err(err).
			Msg("request failed")
		return err
	}
	defer resp.Body.Close()

	c.Logger.Info().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, decodeDetail(resp.Body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeDetail pulls the backend's {"detail": "..."} error text, tolerating
// any other body shape.
func decodeDetail(r io.Reader) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}
	return body.Detail
}
