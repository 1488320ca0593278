package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/followdiff/mock"
	fdslog "github.com/fwojciec/followdiff/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingAutomator_CheckLogin(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Automator{
		CheckLoginFn: func(ctx context.Context) (bool, error) {
			return true, nil
		},
	}

	a := fdslog.NewLoggingAutomator(inner, logger)
	ok, err := a.CheckLogin(context.Background())

	require.NoError(t, err)
	assert.True(t, ok)
	output := buf.String()
	assert.Contains(t, output, `msg="check login"`)
	assert.Contains(t, output, "logged_in=true")
	assert.Contains(t, output, "duration=")
}

func TestLoggingAutomator_Unfollow(t *testing.T) {
	t.Parallel()

	t.Run("logs username at info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		var got string
		inner := &mock.Automator{
			UnfollowFn: func(ctx context.Context, username string) error {
				got = username
				return nil
			},
		}

		a := fdslog.NewLoggingAutomator(inner, logger)
		err := a.Unfollow(context.Background(), "alice")

		require.NoError(t, err)
		assert.Equal(t, "alice", got)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "msg=unfollow")
		assert.Contains(t, output, "username=alice")
	})

	t.Run("logs failure at error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Automator{
			UnfollowFn: func(ctx context.Context, username string) error {
				return errors.New("button missing")
			},
		}

		a := fdslog.NewLoggingAutomator(inner, logger)
		err := a.Unfollow(context.Background(), "alice")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=ERROR")
		assert.Contains(t, output, `err="button missing"`)
	})
}

func TestLoggingAutomator_RemoveRequest(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Automator{
		RemoveRequestFn: func(ctx context.Context, username string) error {
			return nil
		},
	}

	a := fdslog.NewLoggingAutomator(inner, logger)
	err := a.RemoveRequest(context.Background(), "bob")

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "msg=remove_request")
	assert.Contains(t, output, "username=bob")
}

func TestLoggingAutomator_Open(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Automator{
		OpenFn: func(ctx context.Context, url string) error {
			return nil
		},
	}

	a := fdslog.NewLoggingAutomator(inner, logger)
	err := a.Open(context.Background(), "https://www.instagram.com/alice/")

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "url=https://www.instagram.com/alice/")
}

func TestLoggingAutomator_Close(t *testing.T) {
	t.Parallel()

	t.Run("delegates to inner automator", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		closeCalled := false
		inner := &mock.Automator{
			CloseFn: func() error {
				closeCalled = true
				return nil
			},
		}

		a := fdslog.NewLoggingAutomator(inner, logger)
		err := a.Close()

		require.NoError(t, err)
		assert.True(t, closeCalled)
	})
}
