// Package tui wires the synchronization core into a bubbletea program: a
// filter bar, the calendar grid, the selected-session panel and the chat
// pane, kept consistent by one single-threaded Update loop.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"classdesk/internal/api"
	"classdesk/internal/chat"
	"classdesk/internal/filter"
	"classdesk/internal/schedule"
	"classdesk/pkg/models"
)

type pane int

const (
	calendarPane pane = iota
	chatPane
	suggestionPane
)

// buckets is the fixed activity-category list used for filtering.
var buckets = []string{"swim", "gym", "sports", "kids", "run"}

var bucketKeys = map[string]string{
	"w": "swim",
	"g": "gym",
	"s": "sports",
	"k": "kids",
	"r": "run",
}

// reloadFlag is shared between the model and the filter subscription so the
// flag survives bubbletea's by-value model copies.
type reloadFlag struct {
	dirty bool
}

// Model is the application state. All mutation happens in Update.
type Model struct {
	client   *api.Client
	logger   zerolog.Logger
	enroller *schedule.Enroller

	filters *filter.State
	reload  *reloadFlag
	window  schedule.Window

	calendar schedule.Calendar
	detail   schedule.DetailSlot
	conv     *chat.Coordinator

	branches []models.Branch

	focus            pane
	cursor           int
	suggestionCursor int

	input        textinput.Model
	chatView     viewport.Model
	waitingReply bool

	// detailMsg is the persistent detail-panel message from the last
	// enrollment attempt; notice is the transient auto-clearing line.
	detailMsg string
	notice    string
	noticeSeq int

	spinner *Spinner
	width   int
	height  int
	ready   bool

	// The first window load is begun in NewModel so its generation bump
	// lives in the stored model; Init only issues the command. Init runs on
	// a copy, so it must not mutate state itself.
	initialToken uint64
	initialQuery api.CalendarQuery
}

// NewModel builds the initial application state.
func NewModel(client *api.Client, logger zerolog.Logger, identity chat.Identity) Model {
	filters := filter.New()
	reload := &reloadFlag{}
	filters.Subscribe(func() { reload.dirty = true })

	input := textinput.New()
	input.Placeholder = "Ask about classes, hours, or enrollment..."
	input.CharLimit = 300

	m := Model{
		client:   client,
		logger:   logger,
		enroller: &schedule.Enroller{API: client, MemberID: identity.MemberID},
		filters:  filters,
		reload:   reload,
		window:   schedule.WeekOf(time.Now()),
		conv:     chat.New(filters, identity),
		input:    input,
		spinner:  NewSpinner(),
	}
	m.initialToken, m.initialQuery = m.calendar.Begin(m.window, m.filters.Snapshot())
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadBranchesCmd(m.client),
		loadCalendarCmd(m.client, m.initialToken, m.initialQuery),
		tickCmd(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chatHeight := m.chatPaneHeight()
		if !m.ready {
			m.chatView = viewport.New(msg.Width-2, chatHeight)
			m.ready = true
		} else {
			m.chatView.Width = msg.Width - 2
			m.chatView.Height = chatHeight
		}
		m.syncChatView()

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg)...)

	case BranchesLoadedMsg:
		if msg.Error != nil {
			m.logger.Error().Err(msg.Error).Msg("branch load failed")
			cmds = append(cmds, m.setNotice("Could not load branches."))
			break
		}
		m.branches = msg.Branches

	case CalendarLoadedMsg:
		if m.calendar.Apply(msg.Token, msg.Sessions, msg.Error) {
			m.clampCursor()
		}

	case DetailLoadedMsg:
		m.detail.Apply(msg.Token, msg.Session, msg.Error)

	case EnrollDoneMsg:
		cmds = append(cmds, m.applyOutcome(msg.Outcome)...)

	case ChatReplyMsg:
		m.waitingReply = false
		delegation := m.conv.ApplyReply(msg.Reply, msg.Error)
		m.suggestionCursor = 0
		if delegation.EnrollResult != nil {
			// A chat-embedded enrollment behaves exactly like a direct
			// success: refresh, notify, re-select the affected session.
			outcome := m.enroller.Interpret(delegation.SelectSessionID, *delegation.EnrollResult)
			if token, fetch := m.detail.Select(delegation.SelectSessionID); fetch {
				cmds = append(cmds, loadDetailCmd(m.client, token, delegation.SelectSessionID))
			}
			m.detailMsg = outcome.Message
			cmds = append(cmds, m.setNotice(outcome.Notice))
			if outcome.RefreshCalendar {
				cmds = append(cmds, m.reloadCalendar())
			}
		}
		m.syncChatView()

	case HoursMsg:
		if msg.Error != nil {
			cmds = append(cmds, m.setNotice("Could not look up hours."))
			break
		}
		cmds = append(cmds, m.setNotice(FormatHours(msg.Hours)))

	case ICSExportedMsg:
		if msg.Error != nil {
			cmds = append(cmds, m.setNotice("Export failed."))
			break
		}
		cmds = append(cmds, m.setNotice("Saved "+msg.File))

	case NoticeExpiredMsg:
		// A stale timer must not clear a newer notice.
		if msg.Seq == m.noticeSeq {
			m.notice = ""
		}

	case TickMsg:
		m.spinner.Next()
		cmds = append(cmds, tickCmd())
	}

	// Filter mutations request a calendar reload through the subscription.
	if m.reload.dirty {
		m.reload.dirty = false
		cmds = append(cmds, m.reloadCalendar())
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) []tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return []tea.Cmd{tea.Quit}
	}

	switch m.focus {
	case chatPane:
		return m.handleChatKey(msg)
	case suggestionPane:
		return m.handleSuggestionKey(msg)
	default:
		return m.handleCalendarKey(msg)
	}
}

func (m *Model) handleCalendarKey(msg tea.KeyMsg) []tea.Cmd {
	var cmds []tea.Cmd

	switch key := msg.String(); key {
	case "q":
		return []tea.Cmd{tea.Quit}

	case "tab":
		m.focus = chatPane
		m.input.Focus()
		return []tea.Cmd{textinput.Blink}

	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down":
		if m.cursor < len(m.calendar.Sessions())-1 {
			m.cursor++
		}

	case "left":
		m.window = m.window.Shift(-7)
		cmds = append(cmds, m.reloadCalendar())
	case "right":
		m.window = m.window.Shift(7)
		cmds = append(cmds, m.reloadCalendar())

	case "enter":
		if s, ok := m.cursorSession(); ok {
			cmds = append(cmds, m.selectSession(s.SessionID)...)
		}
	case "esc":
		m.detail.Select("")
		m.detailMsg = ""

	case "e":
		cmds = append(cmds, m.enrollSelected()...)

	case "o":
		m.filters.SetOnlyOpenSpots(!m.filters.OnlyOpenSpots())

	case "h":
		if s := m.inspected(); s != nil {
			cmds = append(cmds, hoursCmd(m.client, s.BranchID, s.Start.Format("2006-01-02")))
		}

	case "x":
		if s := m.inspected(); s != nil {
			cmds = append(cmds, exportICSCmd(*s))
		}

	default:
		if bucket, ok := bucketKeys[key]; ok {
			m.filters.ToggleBucket(bucket)
			break
		}
		if idx := branchIndex(key); idx >= 0 && idx < len(m.branches) {
			m.filters.ToggleBranch(m.branches[idx].ID)
		}
	}
	return cmds
}

func (m *Model) handleChatKey(msg tea.KeyMsg) []tea.Cmd {
	switch msg.String() {
	case "esc":
		m.focus = calendarPane
		m.input.Blur()
		return nil
	case "tab":
		m.input.Blur()
		if len(m.conv.Suggestions()) > 0 {
			m.focus = suggestionPane
		} else {
			m.focus = calendarPane
		}
		return nil
	case "enter":
		text := m.input.Value()
		if text == "" || m.waitingReply {
			return nil
		}
		m.input.Reset()
		return []tea.Cmd{m.sendChat(text)}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return []tea.Cmd{cmd}
}

func (m *Model) handleSuggestionKey(msg tea.KeyMsg) []tea.Cmd {
	suggestions := m.conv.Suggestions()

	switch msg.String() {
	case "esc":
		m.focus = chatPane
		m.input.Focus()
		return []tea.Cmd{textinput.Blink}
	case "tab":
		m.focus = calendarPane
		return nil

	case "up", "k":
		if m.suggestionCursor > 0 {
			m.suggestionCursor--
		}
	case "down", "j":
		if m.suggestionCursor < len(suggestions)-1 {
			m.suggestionCursor++
		}

	case "enter":
		if m.suggestionCursor < len(suggestions) {
			return m.selectSession(suggestions[m.suggestionCursor].SessionID)
		}

	case "e":
		if m.suggestionCursor < len(suggestions) {
			id := suggestions[m.suggestionCursor].SessionID
			cmds := m.selectSession(id)
			return append(cmds, enrollCmd(m.enroller, id))
		}

	case "c":
		// Enrollment through the conversation itself: the backend's own
		// option handling resolves the ordinal.
		if m.suggestionCursor < len(suggestions) {
			return []tea.Cmd{m.sendChat(chat.OptionUtterance(m.suggestionCursor + 1))}
		}
	}
	return nil
}

// reloadCalendar invalidates any in-flight window load and issues a fresh
// one for the current window and filters.
func (m *Model) reloadCalendar() tea.Cmd {
	token, query := m.calendar.Begin(m.window, m.filters.Snapshot())
	return loadCalendarCmd(m.client, token, query)
}

func (m *Model) selectSession(sessionID string) []tea.Cmd {
	m.detailMsg = ""
	token, fetch := m.detail.Select(sessionID)
	if !fetch {
		return nil
	}
	return []tea.Cmd{loadDetailCmd(m.client, token, sessionID)}
}

func (m *Model) enrollSelected() []tea.Cmd {
	s := m.inspected()
	if s == nil {
		return nil
	}
	if s.Remaining() <= 0 {
		// Full sessions keep the enroll action disabled.
		return []tea.Cmd{m.setNotice("This session is full.")}
	}
	return []tea.Cmd{enrollCmd(m.enroller, s.SessionID)}
}

// applyOutcome runs the post-enrollment reconciliation: the refreshes are
// issued here, strictly after the enroll call resolved.
func (m *Model) applyOutcome(out schedule.Outcome) []tea.Cmd {
	var cmds []tea.Cmd
	m.detailMsg = out.Message
	cmds = append(cmds, m.setNotice(out.Notice))

	if out.RefreshDetail && m.detail.SelectedID() == out.SessionID {
		if token, fetch := m.detail.Refresh(); fetch {
			cmds = append(cmds, loadDetailCmd(m.client, token, out.SessionID))
		}
	}
	if out.RefreshCalendar {
		cmds = append(cmds, m.reloadCalendar())
	}
	return cmds
}

func (m *Model) sendChat(text string) tea.Cmd {
	req := m.conv.Send(text)
	m.waitingReply = true
	m.syncChatView()
	return chatCmd(m.client, req)
}

// setNotice shows a transient notification and (re)starts its auto-clear
// timer. Re-triggering resets the timer rather than stacking clears.
func (m *Model) setNotice(text string) tea.Cmd {
	m.notice = text
	m.noticeSeq++
	return noticeExpireCmd(m.noticeSeq)
}

func (m *Model) cursorSession() (models.Session, bool) {
	sessions := m.calendar.Sessions()
	if m.cursor < 0 || m.cursor >= len(sessions) {
		return models.Session{}, false
	}
	return sessions[m.cursor], true
}

// inspected is the session shown in the detail panel, falling back to the
// calendar's copy while the detail fetch is in flight.
func (m *Model) inspected() *models.Session {
	if d := m.detail.Detail(); d != nil {
		return d
	}
	if id := m.detail.SelectedID(); id != "" {
		if s, ok := m.calendar.Find(id); ok {
			return &s
		}
	}
	return nil
}

func (m *Model) clampCursor() {
	if n := len(m.calendar.Sessions()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func branchIndex(key string) int {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return -1
	}
	return int(key[0] - '1')
}

// Run starts the program.
func Run(client *api.Client, logger zerolog.Logger, identity chat.Identity) error {
	p := tea.NewProgram(
		NewModel(client, logger, identity),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
