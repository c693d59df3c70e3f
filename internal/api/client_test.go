package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, zerolog.Nop())
}

func TestBranches(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/branches" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"branches":[{"id":"blue_ash","name":"Blue Ash YMCA","aliases":["blue ash"]}]}`))
	})

	branches, err := c.Branches(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(branches) != 1 || branches[0].ID != "blue_ash" {
		t.Fatalf("unexpected branches: %+v", branches)
	}
}

func TestCalendarQueryEncoding(t *testing.T) {
	var gotQuery map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"events":[]}`))
	})

	_, err := c.Calendar(context.Background(), CalendarQuery{
		Start:     "2026-09-01",
		End:       "2026-09-07",
		BranchIDs: []string{"blue_ash", "campbell_county"},
		HasSpots:  true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := gotQuery["branch_ids"]; len(got) != 1 || got[0] != "blue_ash,campbell_county" {
		t.Errorf("branch_ids = %v", got)
	}
	if got := gotQuery["has_spots"]; len(got) != 1 || got[0] != "true" {
		t.Errorf("has_spots = %v", got)
	}
	// Empty bucket set means "all" and must be omitted entirely.
	if _, ok := gotQuery["buckets"]; ok {
		t.Error("buckets should be omitted when empty")
	}
}

func TestCalendarEventMapping(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"events":[{
			"id":"s_1","title":"Lap Swim",
			"start":"2026-09-01T06:00:00-04:00","end":"2026-09-01T07:00:00-04:00",
			"extendedProps":{
				"session_id":"s_1","branch_id":"blue_ash","branch_name":"Blue Ash YMCA",
				"class_id":"lap_swim","bucket":"swim","tags":["swim"],
				"location":"Pool","instructor":"Sarah C.",
				"capacity":10,"enrolled":8,"remaining":2,
				"percent_full":0.8,"availability_color":"amber"}}]}`))
	})

	sessions, err := c.Calendar(context.Background(), CalendarQuery{Start: "2026-09-01", End: "2026-09-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	s := sessions[0]
	if s.ClassName != "Lap Swim" {
		t.Errorf("title should map to class name, got %q", s.ClassName)
	}
	if s.Remaining() != 2 {
		t.Errorf("remaining = %d, want 2", s.Remaining())
	}
	if s.AvailabilityColor != "amber" {
		t.Errorf("availability color = %q", s.AvailabilityColor)
	}
}

func TestSessionDetailNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		w.Write([]byte(`{"detail":"session not found"}`))
	})

	_, err := c.SessionDetail(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEnrollRejectedCarriesReason(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(409)
		w.Write([]byte(`{"detail":"class is full"}`))
	})

	_, err := c.Enroll(context.Background(), "s_1", "demo_member")
	reason, ok := IsRejected(err)
	if !ok {
		t.Fatalf("expected RejectedError, got %v", err)
	}
	if reason != "class is full" {
		t.Errorf("reason = %q, want backend text verbatim", reason)
	}
}

func TestEnrollAlreadyEnrolled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true,"already_enrolled":true,"session_id":"s_1","capacity":5,"enrolled":4,"remaining":1,"availability_color":"amber"}`))
	})

	res, err := c.Enroll(context.Background(), "s_1", "demo_member")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.AlreadyEnrolled {
		t.Error("already_enrolled should be true")
	}
}

func TestChatRoundTrip(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/chat" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{
			"assistant_message":"Here are the top options:",
			"intent_name":"find_sessions",
			"suggested_sessions":[{"session_id":"s_2","class_name":"HIIT","capacity":12,"enrolled":3,"suggestion_tier":"primary"}],
			"enroll_result":null}`))
	})

	reply, err := c.Chat(context.Background(), ChatRequest{
		SessionID: "conv-1",
		Message:   "any HIIT this week?",
		UIContext: UIContext{MemberID: "demo_member", UserGroup: "member"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reply.SuggestedSessions) != 1 || reply.SuggestedSessions[0].SessionID != "s_2" {
		t.Fatalf("unexpected suggestions: %+v", reply.SuggestedSessions)
	}
	if reply.EnrollResult != nil {
		t.Error("enroll result should be nil")
	}
}

func TestTransportFailure(t *testing.T) {
	c := New("http://127.0.0.1:1", zerolog.Nop())
	if _, err := c.Branches(context.Background()); err == nil {
		t.Fatal("expected transport error")
	}
}
