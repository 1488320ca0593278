package mock

import (
	"context"

	"github.com/fwojciec/followdiff"
)

var _ followdiff.Automator = (*Automator)(nil)

// Automator is a mock implementation of followdiff.Automator.
type Automator struct {
	CheckLoginFn    func(ctx context.Context) (bool, error)
	UnfollowFn      func(ctx context.Context, username string) error
	RemoveRequestFn func(ctx context.Context, username string) error
	OpenFn          func(ctx context.Context, url string) error
	CloseFn         func() error
}

func (a *Automator) CheckLogin(ctx context.Context) (bool, error) {
	return a.CheckLoginFn(ctx)
}

func (a *Automator) Unfollow(ctx context.Context, username string) error {
	return a.UnfollowFn(ctx, username)
}

func (a *Automator) RemoveRequest(ctx context.Context, username string) error {
	return a.RemoveRequestFn(ctx, username)
}

func (a *Automator) Open(ctx context.Context, url string) error {
	return a.OpenFn(ctx, url)
}

func (a *Automator) Close() error {
	return a.CloseFn()
}
