// Package ics writes a session to an iCalendar file so an enrollment can
// land on a personal calendar.
package ics

import (
	"fmt"
	"os"
	"strings"

	ical "github.com/arran4/golang-ical"

	"classdesk/pkg/models"
)

// Render serializes one session as a single-event VCALENDAR.
func Render(s models.Session) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)

	ev := cal.AddEvent(s.SessionID)
	ev.SetSummary(s.ClassName)
	ev.SetStartAt(s.Start)
	ev.SetEndAt(s.End)
	ev.SetLocation(fmt.Sprintf("%s — %s", s.BranchName, s.Location))
	ev.SetDescription(fmt.Sprintf("Instructor: %s", s.Instructor))

	return cal.Serialize()
}

// ExportFile writes the session's calendar entry next to the working
// directory and returns the file name.
func ExportFile(s models.Session) (string, error) {
	name := fmt.Sprintf("%s.ics", sanitizeName(s))
	if err := os.WriteFile(name, []byte(Render(s)), 0o644); err != nil {
		return "", fmt.Errorf("write ics: %w", err)
	}
	return name, nil
}

func sanitizeName(s models.Session) string {
	base := s.ClassName
	if base == "" {
		base = s.SessionID
	}
	base = strings.ToLower(base)
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, base)
	return strings.Trim(base, "-") + "-" + s.Start.Format("20060102-1504")
}
