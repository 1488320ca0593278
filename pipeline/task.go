package pipeline

import (
	"context"

	"github.com/fwojciec/followdiff"
)

// Task is an import running in the background. The presentation layer
// reads progress from Events and collects the result with Wait.
type Task struct {
	events chan followdiff.Event
	done   chan struct{}
	result *followdiff.RunResult
	err    error
}

// Start runs the import in a new goroutine and returns immediately.
func (im *Importer) Start(ctx context.Context, req followdiff.ImportRequest) *Task {
	// A run emits at most len(ListKinds())+4 events.
	t := &Task{
		events: make(chan followdiff.Event, len(followdiff.ListKinds())+4),
		done:   make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		defer close(t.events)
		t.result, t.err = im.Run(ctx, req, func(ev followdiff.Event) {
			t.events <- ev
		})
	}()

	return t
}

// Events returns progress events. The channel is closed when the run ends.
func (t *Task) Events() <-chan followdiff.Event {
	return t.events
}

// Done is closed when the run has ended.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the run ends and returns its result.
func (t *Task) Wait() (*followdiff.RunResult, error) {
	<-t.done
	return t.result, t.err
}
