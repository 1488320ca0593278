// Package action replays bulk account actions one user at a time.
package action

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/followdiff"
	"golang.org/x/time/rate"
)

// DefaultInterval is the default pause between two live actions.
const DefaultInterval = 3 * time.Second

// NewLimiter returns a limiter that lets one action through per interval.
// The first action is never delayed.
func NewLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// Runner applies an action to a list of users, strictly one at a time.
//
// A failure for one user is recorded in its Outcome and the run moves on.
// Once ctx is done every remaining user is reported with the context error.
type Runner struct {
	Automator followdiff.Automator
	Limiter   *rate.Limiter
	// Simulate reports every user as handled without touching the browser.
	Simulate bool
	Logger   *slog.Logger
}

// Run applies action to each username in order. The returned outcomes are
// index-aligned with usernames. Progress, if provided, is called after each
// user.
func (r *Runner) Run(ctx context.Context, action followdiff.Action, usernames []string, progress followdiff.ActionProgressFunc) ([]followdiff.Outcome, error) {
	do, err := r.operation(action)
	if err != nil {
		return nil, err
	}

	outcomes := make([]followdiff.Outcome, len(usernames))
	for i, username := range usernames {
		o := followdiff.Outcome{
			Username:  username,
			Action:    action,
			Simulated: r.Simulate,
		}

		switch {
		case ctx.Err() != nil:
			o.Err = ctx.Err()
		case r.Simulate:
			r.logger().Info("simulated action", "action", action, "username", username)
		default:
			if err := r.wait(ctx); err != nil {
				o.Err = err
				break
			}
			o.Err = do(ctx, username)
		}

		outcomes[i] = o
		if progress != nil {
			progress(followdiff.ActionProgress{
				Outcome:   o,
				Completed: i + 1,
				Total:     len(usernames),
			})
		}
	}

	return outcomes, nil
}

// operation resolves action to the matching Automator method.
func (r *Runner) operation(action followdiff.Action) (func(context.Context, string) error, error) {
	if !r.Simulate && r.Automator == nil {
		return nil, followdiff.Errorf(followdiff.EINVALID, "automator required unless simulating")
	}
	switch action {
	case followdiff.ActionUnfollow:
		if r.Simulate {
			return nil, nil
		}
		return r.Automator.Unfollow, nil
	case followdiff.ActionRemoveRequest:
		if r.Simulate {
			return nil, nil
		}
		return r.Automator.RemoveRequest, nil
	default:
		return nil, followdiff.Errorf(followdiff.EINVALID, "unknown action %q", action)
	}
}

func (r *Runner) wait(ctx context.Context) error {
	if r.Limiter == nil {
		return ctx.Err()
	}
	if err := r.Limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// Wait fails early when the deadline would pass before a token is free.
		if _, ok := ctx.Deadline(); ok {
			return context.DeadlineExceeded
		}
		return err
	}
	return nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

// Tally counts outcomes by result.
type Tally struct {
	Succeeded int
	Simulated int
	Failed    int
	Cancelled int
}

// Count tallies outcomes. Context errors count as cancelled, not failed.
func Count(outcomes []followdiff.Outcome) Tally {
	var t Tally
	for _, o := range outcomes {
		switch {
		case o.Err == nil && o.Simulated:
			t.Simulated++
		case o.Err == nil:
			t.Succeeded++
		case isContextErr(o.Err):
			t.Cancelled++
		default:
			t.Failed++
		}
	}
	return t
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
