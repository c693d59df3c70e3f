package models

import "time"

// Tier is the availability classification of a session.
type Tier string

const (
	TierGreen Tier = "green"
	TierAmber Tier = "amber"
	TierRed   Tier = "red"
)

// Branch is a facility location. Loaded once at startup and never mutated.
type Branch struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// Session is one scheduled occurrence of a class, as returned by the
// calendar and session-detail endpoints. The client never mutates a
// Session; a refresh replaces the whole record.
type Session struct {
	SessionID  string    `json:"session_id"`
	ClassID    string    `json:"class_id"`
	ClassName  string    `json:"class_name"`
	Bucket     string    `json:"bucket"`
	Tags       []string  `json:"tags"`
	BranchID   string    `json:"branch_id"`
	BranchName string    `json:"branch_name"`
	Start      time.Time `json:"start_time"`
	End        time.Time `json:"end_time"`
	Location   string    `json:"location"`
	Instructor string    `json:"instructor"`
	Capacity   int       `json:"capacity"`
	Enrolled   int       `json:"enrolled"`
	// Color as supplied by the backend; may be empty on malformed data,
	// in which case the client classifier decides.
	AvailabilityColor string `json:"availability_color"`
}

// Remaining is capacity minus enrolled. Always derived, never trusted from
// the wire.
func (s Session) Remaining() int {
	return s.Capacity - s.Enrolled
}

// PercentFull is enrolled over capacity, 0 when capacity is 0.
func (s Session) PercentFull() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Enrolled) / float64(s.Capacity)
}

// Role tags a transcript turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry in the conversation transcript.
type Turn struct {
	Role Role
	Text string
}

// SuggestedSession is a session summary attached to an assistant reply.
// Tier metadata comes from the backend's suggestion policy.
type SuggestedSession struct {
	Session
	SuggestionTier string `json:"suggestion_tier"`
	DriveMinutes   int    `json:"drive_minutes"`
}

// EnrollResult is the outcome of an enrollment, either requested directly
// or embedded in a chat reply.
type EnrollResult struct {
	OK                bool   `json:"ok"`
	AlreadyEnrolled   bool   `json:"already_enrolled"`
	SessionID         string `json:"session_id"`
	Capacity          int    `json:"capacity"`
	Enrolled          int    `json:"enrolled"`
	Remaining         int    `json:"remaining"`
	AvailabilityColor string `json:"availability_color"`
}

// Hours is a branch's opening hours for one date.
type Hours struct {
	BranchID  string `json:"branch_id"`
	Date      string `json:"date"`
	IsClosed  bool   `json:"is_closed"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

// OpenNow reports whether a branch is open at the time of the call.
type OpenNow struct {
	BranchID string `json:"branch_id"`
	Open     bool   `json:"open_now"`
	Now      string `json:"now"`
}
