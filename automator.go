package followdiff

import "context"

// Automator replays account actions against a live, logged-in web session.
type Automator interface {
	// CheckLogin reports whether the browser session is logged in.
	CheckLogin(ctx context.Context) (bool, error)

	// Unfollow stops following the user.
	// Returns ENOTFOUND if the profile offers no "Following" button.
	Unfollow(ctx context.Context, username string) error

	// RemoveRequest removes a follow request received from the user.
	// Returns ENOTFOUND if the profile offers no "Remove" option.
	RemoveRequest(ctx context.Context, username string) error

	// Open shows the URL in a new tab and leaves it open.
	Open(ctx context.Context, url string) error

	// Close releases browser resources.
	Close() error
}

// Action identifies a bulk account action.
type Action string

// Supported bulk actions.
const (
	ActionUnfollow      Action = "unfollow"
	ActionRemoveRequest Action = "remove_request"
)

// Outcome is the result of applying an Action to one user.
type Outcome struct {
	Username  string
	Action    Action
	Simulated bool
	Err       error
}

// ActionProgress reports progress during a bulk action.
type ActionProgress struct {
	Outcome   Outcome
	Completed int
	Total     int
}

// ActionProgressFunc is called after each user is processed.
type ActionProgressFunc func(ActionProgress)
