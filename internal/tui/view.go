package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"classdesk/internal/availability"
	"classdesk/pkg/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("63"))

	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	faintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)

	tierStyles = map[models.Tier]lipgloss.Style{
		models.TierGreen: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		models.TierAmber: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.TierRed:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

// FormatHours renders an hours lookup the way the detail line shows it.
func FormatHours(h models.Hours) string {
	if h.IsClosed || h.OpenTime == "" || h.CloseTime == "" {
		return fmt.Sprintf("Closed on %s.", h.Date)
	}
	return fmt.Sprintf("Hours on %s: %s–%s.", h.Date, h.OpenTime, h.CloseTime)
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	sections := []string{
		m.renderHeader(),
		m.renderFilterBar(),
		m.renderBody(),
		m.renderChatPane(),
		m.renderFooter(),
	}
	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := fmt.Sprintf(" classdesk — %s to %s ", m.window.StartDate(), m.window.EndDate())
	line := headerStyle.Render(title)
	if m.notice != "" {
		line += "  " + noticeStyle.Render(m.notice)
	}
	return line
}

func (m Model) renderFilterBar() string {
	var parts []string
	for i, b := range m.branches {
		label := fmt.Sprintf("%d:%s", i+1, b.Name)
		if m.filters.BranchSelected(b.ID) {
			parts = append(parts, selectedStyle.Render("["+label+"]"))
		} else {
			parts = append(parts, dimStyle.Render(label))
		}
	}
	for _, bucket := range buckets {
		if m.filters.BucketSelected(bucket) {
			parts = append(parts, selectedStyle.Render("["+bucket+"]"))
		} else {
			parts = append(parts, dimStyle.Render(bucket))
		}
	}
	open := "open spots: off"
	if m.filters.OnlyOpenSpots() {
		open = "open spots: on"
	}
	parts = append(parts, dimStyle.Render(open))
	return strings.Join(parts, " ")
}

func (m Model) renderBody() string {
	left := m.renderSessions()
	right := m.renderDetail()

	leftWidth := m.width/2 - 1
	rightWidth := m.width - leftWidth - 1
	height := m.bodyHeight()

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Width(leftWidth).Height(height).Render(left),
		faintStyle.Height(height).Render(verticalDivider(height)),
		lipgloss.NewStyle().Width(rightWidth).Height(height).Render(right),
	)
}

func (m Model) renderSessions() string {
	sessions := m.calendar.Sessions()

	var s strings.Builder
	switch {
	case m.calendar.Loading() && !m.calendar.Loaded():
		return m.spinner.View() + " Loading calendar..."
	case m.calendar.Err() != nil:
		s.WriteString(errorStyle.Render("Calendar load failed: "+m.calendar.Err().Error()) + "\n")
		if len(sessions) > 0 {
			s.WriteString(dimStyle.Render("Showing the last loaded schedule.") + "\n\n")
		}
	case len(sessions) == 0:
		return dimStyle.Render("No matching sessions in this window.")
	}

	maxRows := m.bodyHeight() - 1
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}

	for i := start; i < len(sessions) && i < start+maxRows; i++ {
		sess := sessions[i]
		tier := availability.ForSession(sess)

		cursor := "  "
		rowStyle := lipgloss.NewStyle()
		if i == m.cursor && m.focus == calendarPane {
			cursor = "> "
			rowStyle = cursorStyle
		}

		line := fmt.Sprintf("%s%s %-18s %s",
			cursor,
			sess.Start.Format("Mon 01-02 15:04"),
			truncate(sess.ClassName, 18),
			sess.BranchName)
		s.WriteString(rowStyle.Render(line))
		s.WriteString(" " + tierStyles[tier].Render(fmt.Sprintf("%d left", sess.Remaining())))
		s.WriteString("\n")
	}
	return s.String()
}

func (m Model) renderDetail() string {
	if m.detail.SelectedID() == "" {
		return dimStyle.Render("Select a session for details.")
	}
	if m.detail.Loading() && m.detail.Detail() == nil {
		return m.spinner.View() + " Loading session..."
	}
	if err := m.detail.Err(); err != nil && m.detail.Detail() == nil {
		return errorStyle.Render("Could not load session: " + err.Error())
	}

	d := m.detail.Detail()
	if d == nil {
		return ""
	}
	tier := availability.ForSession(*d)

	var s strings.Builder
	s.WriteString(selectedStyle.Render(d.ClassName) + "\n")
	s.WriteString(fmt.Sprintf("%s — %s\n", d.BranchName, d.Location))
	s.WriteString(fmt.Sprintf("%s to %s\n", d.Start.Format("Mon Jan 2 15:04"), d.End.Format("15:04")))
	s.WriteString(fmt.Sprintf("Instructor: %s\n", d.Instructor))
	s.WriteString(fmt.Sprintf("Bucket: %s", d.Bucket))
	if len(d.Tags) > 0 {
		s.WriteString(dimStyle.Render("  " + strings.Join(d.Tags, ", ")))
	}
	s.WriteString("\n\n")

	capLine := fmt.Sprintf("%d/%d enrolled, %d remaining", d.Enrolled, d.Capacity, d.Remaining())
	s.WriteString(tierStyles[tier].Render(capLine) + "\n")

	if d.Remaining() <= 0 {
		s.WriteString(dimStyle.Render("Session full — enrollment disabled.") + "\n")
	} else {
		s.WriteString(dimStyle.Render("Press e to enroll, x to export, h for branch hours.") + "\n")
	}

	if m.detailMsg != "" {
		s.WriteString("\n" + noticeStyle.Render(m.detailMsg) + "\n")
	}
	return s.String()
}

func (m Model) renderChatPane() string {
	var s strings.Builder
	s.WriteString(m.chatView.View() + "\n")

	if suggestions := m.conv.Suggestions(); len(suggestions) > 0 {
		s.WriteString(m.renderSuggestions(suggestions) + "\n")
	}

	prompt := "> "
	if m.waitingReply {
		prompt = m.spinner.View() + " "
	}
	s.WriteString(prompt + m.input.View())
	return s.String()
}

func (m Model) renderSuggestions(suggestions []models.SuggestedSession) string {
	var s strings.Builder
	s.WriteString(dimStyle.Render("Suggested:") + "\n")
	for i, sg := range suggestions {
		cursor := "  "
		rowStyle := lipgloss.NewStyle()
		if m.focus == suggestionPane && i == m.suggestionCursor {
			cursor = "> "
			rowStyle = cursorStyle
		}
		tier := availability.ForSession(sg.Session)
		line := fmt.Sprintf("%s%d) %s @ %s %s",
			cursor, i+1, sg.ClassName, sg.BranchName, sg.Start.Format("Mon 15:04"))
		if sg.DriveMinutes > 0 {
			line += fmt.Sprintf(" (~%d min drive)", sg.DriveMinutes)
		}
		s.WriteString(rowStyle.Render(line))
		s.WriteString(" " + tierStyles[tier].Render(fmt.Sprintf("%d left", sg.Remaining())))
		s.WriteString("\n")
	}
	return strings.TrimRight(s.String(), "\n")
}

func (m Model) renderFooter() string {
	info := "tab: chat • arrows: move/week • enter: select • e: enroll • o: open spots • 1-9/w,g,s,k,r: filters • q: quit"
	switch m.focus {
	case chatPane:
		info = "enter: send • tab: suggestions • esc: back to calendar"
	case suggestionPane:
		info = "enter: select • e: enroll • c: enroll via chat • esc: back"
	}
	return dimStyle.Render(info)
}

// syncChatView re-renders the transcript into the viewport and keeps it
// pinned to the latest turn.
func (m *Model) syncChatView() {
	if !m.ready {
		return
	}
	var s strings.Builder
	for _, turn := range m.conv.Transcript() {
		label := "you"
		style := selectedStyle
		if turn.Role == models.RoleAssistant {
			label = "olivia"
			style = noticeStyle
		}
		s.WriteString(style.Render(label+":") + " " + turn.Text + "\n")
	}
	m.chatView.SetContent(s.String())
	m.chatView.GotoBottom()
}

func (m Model) chatPaneHeight() int {
	h := m.height / 3
	if h < 4 {
		h = 4
	}
	return h
}

func (m Model) bodyHeight() int {
	h := m.height - m.chatPaneHeight() - 5
	if h < 3 {
		h = 3
	}
	return h
}

func verticalDivider(height int) string {
	var s strings.Builder
	for i := 0; i < height; i++ {
		s.WriteString("│")
		if i < height-1 {
			s.WriteString("\n")
		}
	}
	return s.String()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
