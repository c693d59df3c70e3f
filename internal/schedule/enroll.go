package schedule

import (
	"context"
	"fmt"
	"time"

	"classdesk/internal/api"
	"classdesk/pkg/models"
)

// NoticeDuration is how long a transient enrollment notice stays on screen.
// Re-triggering resets the timer instead of stacking clears.
const NoticeDuration = 2500 * time.Millisecond

// EnrollAPI is the slice of the backend the enroller needs.
type EnrollAPI interface {
	Enroll(ctx context.Context, sessionID, memberID string) (models.EnrollResult, error)
}

// Outcome is an interpreted enrollment result plus the refreshes required
// to keep displayed capacity numbers correct. The refreshes must be issued
// after Outcome is produced, never concurrently with the enroll call.
type Outcome struct {
	SessionID       string
	Enrolled        bool
	AlreadyEnrolled bool
	// Notice is the transient auto-clearing notification; Message is the
	// persistent detail-panel text.
	Notice  string
	Message string
	// Both are set on success (new or repeated); neither on failure,
	// since a declined enrollment changes no backend state.
	RefreshDetail   bool
	RefreshCalendar bool
}

// Enroller executes enroll actions for a fixed member identity and turns
// results into outcomes. It holds no view state and is safe to call from a
// background command.
type Enroller struct {
	API      EnrollAPI
	MemberID string
}

// Enroll performs the enrollment and interprets the result. A repeated
// enrollment is not an error: the backend answers already_enrolled and the
// refresh behavior matches the first-success path.
func (e *Enroller) Enroll(ctx context.Context, sessionID string) Outcome {
	res, err := e.API.Enroll(ctx, sessionID, e.MemberID)
	if err != nil {
		if reason, ok := api.IsRejected(err); ok {
			return Outcome{
				SessionID: sessionID,
				Notice:    reason,
				Message:   reason,
			}
		}
		msg := fmt.Sprintf("Enrollment failed: %v", err)
		return Outcome{SessionID: sessionID, Notice: msg, Message: msg}
	}
	return e.Interpret(sessionID, res)
}

// Interpret maps a successful enroll response to an outcome. It is also
// the path for enrollment results embedded in chat replies, which must
// behave exactly like a direct success.
func (e *Enroller) Interpret(sessionID string, res models.EnrollResult) Outcome {
	if res.SessionID != "" {
		sessionID = res.SessionID
	}
	out := Outcome{
		SessionID:       sessionID,
		Enrolled:        true,
		AlreadyEnrolled: res.AlreadyEnrolled,
		RefreshDetail:   true,
		RefreshCalendar: true,
	}
	if res.AlreadyEnrolled {
		out.Notice = "You're already enrolled in this session."
		out.Message = out.Notice
	} else {
		out.Notice = "Enrolled!"
		// Remaining is always derived; the wire field is not trusted.
		out.Message = fmt.Sprintf("Enrolled. Remaining spots: %d.", res.Capacity-res.Enrolled)
	}
	return out
}
