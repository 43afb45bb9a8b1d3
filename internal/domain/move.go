package domain

// MoveOutcome classifies what happened when an activity was dropped on a day.
type MoveOutcome string

const (
	// MoveNotMoved means the gesture ended outside any day cell.
	MoveNotMoved MoveOutcome = "not_moved"
	// MoveUnchanged means the activity was dropped on its current date.
	MoveUnchanged MoveOutcome = "unchanged"
	// MoveRejected means the target date failed validation.
	MoveRejected MoveOutcome = "rejected"
	// MoveMoved means the new schedule was persisted.
	MoveMoved MoveOutcome = "moved"
	// MoveFailed means persistence was attempted and failed.
	MoveFailed MoveOutcome = "failed"
	// MovePending means persistence was dispatched and has not settled yet.
	MovePending MoveOutcome = "pending"
)

// MoveResult is returned by the server-side move operation.
// Activity is set only when Outcome is MoveMoved.
type MoveResult struct {
	Outcome      MoveOutcome   `json:"outcome"`
	Activity     *Activity     `json:"activity,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
}
