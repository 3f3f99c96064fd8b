package watcher

import (
	"context"
	"time"

	"github.com/ritzau/trailgraph/pkg/logging"
)

// Debouncer coalesces bursts of change events (editors often write a file
// several times in a row) into a single event
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan ChangeEvent
	quietPeriod time.Duration
	maxWait     time.Duration
}

// NewDebouncer creates a new event debouncer
func NewDebouncer(input <-chan ChangeEvent, quietPeriod, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		input:       input,
		output:      make(chan ChangeEvent, 4),
		quietPeriod: quietPeriod,
		maxWait:     maxWait,
	}
}

// Start begins processing events with debouncing
func (d *Debouncer) Start(ctx context.Context) {
	go d.run(ctx)
}

// run emits the latest accumulated event once the input has been quiet for
// quietPeriod, or maxWait after the first event of a burst
func (d *Debouncer) run(ctx context.Context) {
	defer close(d.output)

	var (
		pending      *ChangeEvent
		quietTimer   *time.Timer
		maxWaitTimer *time.Timer
	)

	timerC := func(t *time.Timer) <-chan time.Time {
		if t != nil {
			return t.C
		}
		return nil
	}

	flush := func() {
		if quietTimer != nil {
			quietTimer.Stop()
			quietTimer = nil
		}
		if maxWaitTimer != nil {
			maxWaitTimer.Stop()
			maxWaitTimer = nil
		}
		if pending == nil {
			return
		}

		logging.Debug("flushing accumulated events", "count", pending.Count, "type", pending.Type.String())
		select {
		case d.output <- *pending:
		case <-ctx.Done():
		}
		pending = nil
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-d.input:
			if !ok {
				flush()
				return
			}

			if pending == nil {
				pending = &event
				maxWaitTimer = time.NewTimer(d.maxWait)
			} else {
				count := pending.Count + event.Count
				pending = &event
				pending.Count = count
			}

			if quietTimer != nil {
				quietTimer.Stop()
			}
			quietTimer = time.NewTimer(d.quietPeriod)

		case <-timerC(quietTimer):
			flush()

		case <-timerC(maxWaitTimer):
			flush()
		}
	}
}

// Output returns the channel of debounced events
func (d *Debouncer) Output() <-chan ChangeEvent {
	return d.output
}
