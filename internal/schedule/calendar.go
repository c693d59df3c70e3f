// Package schedule is the client-side synchronization core: it keeps the
// calendar event set, the selected-session detail and enrollment effects
// consistent while responses arrive out of order. Each logical slot carries
// a monotonic generation token; a response is applied only when its token
// still matches the slot's current generation, so a superseded request can
// never overwrite newer state. Correctness does not depend on cancelling
// the underlying network calls.
package schedule

import (
	"classdesk/internal/api"
	"classdesk/internal/filter"
	"classdesk/pkg/models"
)

// Calendar owns the displayed event set. Results replace the set wholesale;
// a failed load keeps the previous set so the grid never goes blank on a
// network error.
type Calendar struct {
	gen      uint64
	sessions []models.Session
	loaded   bool
	loading  bool
	lastErr  error
}

// Begin invalidates any in-flight load and returns the token the eventual
// response must present, plus the query to issue for the given window and
// filter selection.
func (c *Calendar) Begin(w Window, sel filter.Selection) (uint64, api.CalendarQuery) {
	c.gen++
	c.loading = true
	return c.gen, api.CalendarQuery{
		Start:     w.StartDate(),
		End:       w.EndDate(),
		BranchIDs: sel.BranchIDs,
		Buckets:   sel.Buckets,
		HasSpots:  sel.OnlyOpenSpots,
	}
}

// Apply installs a load result. Stale tokens are discarded and the method
// reports whether the result was applied. An error for the current token
// surfaces but leaves the previously displayed set unchanged.
func (c *Calendar) Apply(token uint64, sessions []models.Session, err error) bool {
	if token != c.gen {
		return false
	}
	c.loading = false
	if err != nil {
		c.lastErr = err
		return true
	}
	c.sessions = sessions
	c.loaded = true
	c.lastErr = nil
	return true
}

// Sessions is the currently displayed event set.
func (c *Calendar) Sessions() []models.Session {
	return c.sessions
}

// Loaded reports whether at least one load has succeeded, distinguishing an
// empty result ("no matching sessions") from a grid that never loaded.
func (c *Calendar) Loaded() bool {
	return c.loaded
}

// Loading reports whether a load for the current generation is in flight.
func (c *Calendar) Loading() bool {
	return c.loading
}

// Err is the error of the most recent applied load, nil after a success.
func (c *Calendar) Err() error {
	return c.lastErr
}

// Find returns the displayed session with the given id, if present.
func (c *Calendar) Find(sessionID string) (models.Session, bool) {
	for _, s := range c.sessions {
		if s.SessionID == sessionID {
			return s, true
		}
	}
	return models.Session{}, false
}
