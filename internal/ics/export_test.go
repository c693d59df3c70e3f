package ics

import (
	"strings"
	"testing"
	"time"

	"classdesk/pkg/models"
)

func TestRenderContainsEventFields(t *testing.T) {
	s := models.Session{
		SessionID:  "s_blue_ash_20260901_0600_lap_swim",
		ClassName:  "Lap Swim",
		BranchName: "Blue Ash YMCA",
		Location:   "Pool",
		Instructor: "Sarah C.",
		Start:      time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC),
		End:        time.Date(2026, 9, 1, 7, 0, 0, 0, time.UTC),
	}

	out := Render(s)
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"UID:s_blue_ash_20260901_0600_lap_swim",
		"SUMMARY:Lap Swim",
		"DTSTART:20260901T060000Z",
		"DTEND:20260901T070000Z",
		"END:VCALENDAR",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("serialized calendar missing %q:\n%s", want, out)
		}
	}
}

func TestSanitizeName(t *testing.T) {
	s := models.Session{
		ClassName: "HIIT & Core!",
		Start:     time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC),
	}
	got := sanitizeName(s)
	if got != "hiit---core-20260901-0600" {
		t.Errorf("got %q", got)
	}
}
