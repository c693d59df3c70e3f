package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"classdesk/internal/api"
	"classdesk/internal/ics"
	"classdesk/internal/schedule"
	"classdesk/pkg/models"
)

// Message types for async operations. Calendar and detail results carry the
// generation token they were issued with; the Update loop hands them to the
// owning slot, which discards anything stale.
type (
	// BranchesLoadedMsg carries the startup branch list.
	BranchesLoadedMsg struct {
		Branches []models.Branch
		Error    error
	}

	// CalendarLoadedMsg is the result of one calendar window load.
	CalendarLoadedMsg struct {
		Token    uint64
		Sessions []models.Session
		Error    error
	}

	// DetailLoadedMsg is the result of one session-detail fetch.
	DetailLoadedMsg struct {
		Token   uint64
		Session models.Session
		Error   error
	}

	// EnrollDoneMsg carries an interpreted enrollment outcome.
	EnrollDoneMsg struct {
		Outcome schedule.Outcome
	}

	// ChatReplyMsg is the assistant's answer, or the transport failure.
	ChatReplyMsg struct {
		Reply api.ChatReply
		Error error
	}

	// HoursMsg is an on-demand branch-hours lookup result.
	HoursMsg struct {
		Hours models.Hours
		Error error
	}

	// ICSExportedMsg reports where a session was exported.
	ICSExportedMsg struct {
		File  string
		Error error
	}

	// NoticeExpiredMsg clears the transient notice; Seq guards against a
	// stale timer clearing a newer notice.
	NoticeExpiredMsg struct {
		Seq int
	}

	// TickMsg drives the spinner animation.
	TickMsg time.Time
)

func loadBranchesCmd(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		branches, err := c.Branches(context.Background())
		return BranchesLoadedMsg{Branches: branches, Error: err}
	}
}

func loadCalendarCmd(c *api.Client, token uint64, query api.CalendarQuery) tea.Cmd {
	return func() tea.Msg {
		sessions, err := c.Calendar(context.Background(), query)
		return CalendarLoadedMsg{Token: token, Sessions: sessions, Error: err}
	}
}

func loadDetailCmd(c *api.Client, token uint64, sessionID string) tea.Cmd {
	return func() tea.Msg {
		session, err := c.SessionDetail(context.Background(), sessionID)
		return DetailLoadedMsg{Token: token, Session: session, Error: err}
	}
}

func enrollCmd(e *schedule.Enroller, sessionID string) tea.Cmd {
	return func() tea.Msg {
		return EnrollDoneMsg{Outcome: e.Enroll(context.Background(), sessionID)}
	}
}

func chatCmd(c *api.Client, req api.ChatRequest) tea.Cmd {
	return func() tea.Msg {
		reply, err := c.Chat(context.Background(), req)
		return ChatReplyMsg{Reply: reply, Error: err}
	}
}

func hoursCmd(c *api.Client, branchID, date string) tea.Cmd {
	return func() tea.Msg {
		hours, err := c.Hours(context.Background(), branchID, date)
		return HoursMsg{Hours: hours, Error: err}
	}
}

func exportICSCmd(s models.Session) tea.Cmd {
	return func() tea.Msg {
		file, err := ics.ExportFile(s)
		return ICSExportedMsg{File: file, Error: err}
	}
}

func noticeExpireCmd(seq int) tea.Cmd {
	return tea.Tick(schedule.NoticeDuration, func(time.Time) tea.Msg {
		return NoticeExpiredMsg{Seq: seq}
	})
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
