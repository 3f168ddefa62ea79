// Package upload drives a pitch-deck PDF from local file through backend
// parsing and AI extraction: upload, poll until terminal, trigger extraction.
package upload

import (
	"context"
	"errors"
	"time"
)

// ErrPollTimeout is returned when the attempt budget is exhausted without a
// terminal state.
var ErrPollTimeout = errors.New("document processing timed out")

// Poller repeatedly evaluates a terminal-state predicate at a fixed interval
// with a fixed attempt budget. Sleep is injectable so tests can simulate time.
type Poller struct {
	Interval    time.Duration
	MaxAttempts int

	// Sleep waits for d or until ctx is done. Nil means real time.
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewPoller returns the production poller: 2s interval, 60 attempts (a
// two-minute ceiling).
func NewPoller() Poller {
	return Poller{Interval: 2 * time.Second, MaxAttempts: 60}
}

// Wait calls check until it reports done, the attempt budget runs out
// (ErrPollTimeout), check fails, or ctx is cancelled. Between attempts it
// sleeps one interval; there is no backoff.
func (p Poller) Wait(ctx context.Context, check func(ctx context.Context) (done bool, err error)) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = realSleep
	}
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		done, err := check(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if attempt == p.MaxAttempts-1 {
			break
		}
		if err := sleep(ctx, p.Interval); err != nil {
			return err
		}
	}
	return ErrPollTimeout
}

func realSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
