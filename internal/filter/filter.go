// Package filter holds the active branch/bucket selection and the
// open-spots toggle. Changes are observable: the calendar loader subscribes
// and re-fetches whenever the selection mutates.
package filter

import "sort"

// Selection is an immutable snapshot of the filter state. An empty branch
// or bucket set means "all", not "none".
type Selection struct {
	BranchIDs     []string
	Buckets       []string
	OnlyOpenSpots bool
}

// State owns the filter selection. It is mutated only through its toggle
// operations and read through Snapshot.
type State struct {
	branches map[string]struct{}
	buckets  map[string]struct{}
	onlyOpen bool

	subscribers []func()
}

// New returns an empty filter state: all branches, all buckets, full
// sessions included.
func New() *State {
	return &State{
		branches: make(map[string]struct{}),
		buckets:  make(map[string]struct{}),
	}
}

// Subscribe registers fn to run after every successful mutation.
func (s *State) Subscribe(fn func()) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *State) notify() {
	for _, fn := range s.subscribers {
		fn()
	}
}

// ToggleBranch adds id to the selected branch set if absent, removes it if
// present. Unknown ids are not validated here; they are harmless no-ops
// downstream.
func (s *State) ToggleBranch(id string) {
	if _, ok := s.branches[id]; ok {
		delete(s.branches, id)
	} else {
		s.branches[id] = struct{}{}
	}
	s.notify()
}

// ToggleBucket is symmetric to ToggleBranch for activity buckets.
func (s *State) ToggleBucket(id string) {
	if _, ok := s.buckets[id]; ok {
		delete(s.buckets, id)
	} else {
		s.buckets[id] = struct{}{}
	}
	s.notify()
}

// SetOnlyOpenSpots sets the "only sessions with remaining spots" toggle.
func (s *State) SetOnlyOpenSpots(v bool) {
	s.onlyOpen = v
	s.notify()
}

// BranchSelected reports whether id is in the selected branch set.
func (s *State) BranchSelected(id string) bool {
	_, ok := s.branches[id]
	return ok
}

// BucketSelected reports whether id is in the selected bucket set.
func (s *State) BucketSelected(id string) bool {
	_, ok := s.buckets[id]
	return ok
}

// OnlyOpenSpots reports the open-spots toggle.
func (s *State) OnlyOpenSpots() bool {
	return s.onlyOpen
}

// Snapshot returns the current selection with sorted id slices. The
// snapshot does not alias internal state, so later toggles cannot
// retroactively alter a snapshot already handed out.
func (s *State) Snapshot() Selection {
	return Selection{
		BranchIDs:     sortedKeys(s.branches),
		Buckets:       sortedKeys(s.buckets),
		OnlyOpenSpots: s.onlyOpen,
	}
}

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
