package schedule

import (
	"errors"
	"testing"

	"classdesk/internal/api"
	"classdesk/pkg/models"
)

func TestSelectionRaceLateResponseDiscarded(t *testing.T) {
	var d DetailSlot

	tokenA, _ := d.Select("A")
	tokenB, _ := d.Select("B")

	if !d.Apply(tokenB, models.Session{SessionID: "B", Capacity: 10, Enrolled: 3}, nil) {
		t.Fatal("response for current selection should apply")
	}
	// A's response arrives after B's and must be discarded.
	if d.Apply(tokenA, models.Session{SessionID: "A"}, nil) {
		t.Fatal("late response for superseded selection should be discarded")
	}

	if d.Detail() == nil || d.Detail().SessionID != "B" {
		t.Fatalf("displayed detail = %+v, want B", d.Detail())
	}
}

func TestSelectNilClearsSynchronously(t *testing.T) {
	var d DetailSlot
	token, _ := d.Select("A")
	d.Apply(token, models.Session{SessionID: "A"}, nil)

	_, fetch := d.Select("")
	if fetch {
		t.Error("clearing the selection must not trigger a fetch")
	}
	if d.Detail() != nil {
		t.Error("detail should clear synchronously")
	}
	if d.Loading() {
		t.Error("clearing cancels interest in any in-flight fetch")
	}

	// The old fetch resolving afterwards changes nothing.
	if d.Apply(token, models.Session{SessionID: "A"}, nil) {
		t.Error("in-flight response after clear should be discarded")
	}
}

func TestNotFoundClearsDetail(t *testing.T) {
	var d DetailSlot
	token, _ := d.Select("A")
	d.Apply(token, models.Session{SessionID: "A"}, nil)

	token2, fetch := d.Refresh()
	if !fetch {
		t.Fatal("refresh of a selected session should fetch")
	}
	d.Apply(token2, models.Session{}, api.ErrNotFound)

	if d.Detail() != nil {
		t.Error("NotFound must clear the detail rather than show stale data")
	}
	if !errors.Is(d.Err(), api.ErrNotFound) {
		t.Errorf("err = %v", d.Err())
	}
}

func TestTransportErrorKeepsSelection(t *testing.T) {
	var d DetailSlot
	token, _ := d.Select("A")
	d.Apply(token, models.Session{}, errors.New("timeout"))

	if d.SelectedID() != "A" {
		t.Error("selection survives a failed fetch")
	}
	if d.Err() == nil {
		t.Error("failure must be surfaced")
	}
}

func TestRefreshWithoutSelectionIsNoop(t *testing.T) {
	var d DetailSlot
	if _, fetch := d.Refresh(); fetch {
		t.Error("refresh with nothing selected should not fetch")
	}
}

func TestRefreshKeepsDisplayedDetailWhileLoading(t *testing.T) {
	var d DetailSlot
	token, _ := d.Select("A")
	d.Apply(token, models.Session{SessionID: "A", Enrolled: 3}, nil)

	token2, _ := d.Refresh()
	if d.Detail() == nil {
		t.Fatal("refresh must not blank the panel while the fetch is pending")
	}

	d.Apply(token2, models.Session{SessionID: "A", Enrolled: 4}, nil)
	if d.Detail().Enrolled != 4 {
		t.Errorf("refreshed detail not applied: %+v", d.Detail())
	}
}
