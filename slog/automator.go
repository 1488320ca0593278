// Package slog decorates followdiff services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/followdiff"
)

// Ensure LoggingAutomator implements followdiff.Automator.
var _ followdiff.Automator = (*LoggingAutomator)(nil)

// LoggingAutomator wraps an Automator with logging of every browser action.
type LoggingAutomator struct {
	next   followdiff.Automator
	logger *slog.Logger
}

// NewLoggingAutomator creates a new LoggingAutomator.
func NewLoggingAutomator(next followdiff.Automator, logger *slog.Logger) *LoggingAutomator {
	return &LoggingAutomator{next: next, logger: logger}
}

// CheckLogin delegates to the wrapped automator and logs the session state.
func (a *LoggingAutomator) CheckLogin(ctx context.Context) (ok bool, err error) {
	defer func(begin time.Time) {
		a.logger.Info("check login",
			"logged_in", ok,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.CheckLogin(ctx)
}

// Unfollow delegates to the wrapped automator and logs the outcome.
func (a *LoggingAutomator) Unfollow(ctx context.Context, username string) (err error) {
	defer a.logAction(followdiff.ActionUnfollow, username, time.Now(), &err)
	return a.next.Unfollow(ctx, username)
}

// RemoveRequest delegates to the wrapped automator and logs the outcome.
func (a *LoggingAutomator) RemoveRequest(ctx context.Context, username string) (err error) {
	defer a.logAction(followdiff.ActionRemoveRequest, username, time.Now(), &err)
	return a.next.RemoveRequest(ctx, username)
}

// Open delegates to the wrapped automator.
func (a *LoggingAutomator) Open(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		a.logger.Info("open",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Open(ctx, url)
}

// Close delegates to the wrapped automator.
func (a *LoggingAutomator) Close() error {
	return a.next.Close()
}

func (a *LoggingAutomator) logAction(action followdiff.Action, username string, begin time.Time, errp *error) {
	level := slog.LevelInfo
	if *errp != nil {
		level = slog.LevelError
	}
	a.logger.Log(context.Background(), level, string(action),
		"username", username,
		"duration", time.Since(begin),
		"err", *errp,
	)
}
