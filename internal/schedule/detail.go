package schedule

import (
	"errors"

	"classdesk/internal/api"
	"classdesk/pkg/models"
)

// DetailSlot owns the "currently inspected session". At most one response
// is ever applied per selection: selecting a new id bumps the generation,
// and late responses for a superseded id are discarded.
type DetailSlot struct {
	gen        uint64
	selectedID string
	detail     *models.Session
	loading    bool
	lastErr    error
}

// Select sets the inspected session and returns the token a detail fetch
// for it must present. Selecting the empty id clears the panel synchronously
// and cancels interest in any in-flight fetch; fetch is false in that case.
func (d *DetailSlot) Select(sessionID string) (token uint64, fetch bool) {
	d.gen++
	d.selectedID = sessionID
	d.detail = nil
	d.lastErr = nil
	if sessionID == "" {
		d.loading = false
		return d.gen, false
	}
	d.loading = true
	return d.gen, true
}

// Refresh re-fetches the current selection without clearing the displayed
// detail, for post-enrollment reconciliation. fetch is false when nothing
// is selected.
func (d *DetailSlot) Refresh() (token uint64, fetch bool) {
	if d.selectedID == "" {
		return d.gen, false
	}
	d.gen++
	d.loading = true
	return d.gen, true
}

// Apply installs a detail response. Only a response matching the current
// generation may land; everything else is discarded. A NotFound clears the
// panel rather than leaving stale data.
func (d *DetailSlot) Apply(token uint64, detail models.Session, err error) bool {
	if token != d.gen {
		return false
	}
	d.loading = false
	if err != nil {
		d.lastErr = err
		if errors.Is(err, api.ErrNotFound) {
			d.detail = nil
		}
		return true
	}
	d.detail = &detail
	d.lastErr = nil
	return true
}

// SelectedID is the currently inspected session id, empty when none.
func (d *DetailSlot) SelectedID() string {
	return d.selectedID
}

// Detail is the applied detail record, nil while empty, cleared or loading
// a fresh selection.
func (d *DetailSlot) Detail() *models.Session {
	return d.detail
}

// Loading reports whether a fetch for the current selection is in flight.
func (d *DetailSlot) Loading() bool {
	return d.loading
}

// Err is the error of the most recent applied response for the current
// selection.
func (d *DetailSlot) Err() error {
	return d.lastErr
}
