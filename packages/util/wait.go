package util

import (
	"context"
	"time"

	"github.com/iotaledger/hive.go/ierrors"
)

const (
	defaultWaitInterval = 1 * time.Second
	defaultTimeoutMsg   = "waiting timed out"
)

type WaitAction bool

const (
	WaitActionDone        = WaitAction(true)
	WaitActionKeepWaiting = WaitAction(false)
)

type WaitOpts struct {
	RetryInterval time.Duration
	TimeoutMsg    string
}

// WaitUntil calls f every RetryInterval until it reports WaitActionDone, and returns
// the error of that call. The first attempt is made immediately. If ctx is done first,
// the last error f returned is wrapped into the timeout error.
func WaitUntil(ctx context.Context, f func() (WaitAction, error), waitOpts ...WaitOpts) error {
	opts := WaitOpts{
		RetryInterval: defaultWaitInterval,
		TimeoutMsg:    defaultTimeoutMsg,
	}
	if len(waitOpts) > 0 {
		if waitOpts[0].RetryInterval != 0 {
			opts.RetryInterval = waitOpts[0].RetryInterval
		}
		if waitOpts[0].TimeoutMsg != "" {
			opts.TimeoutMsg = waitOpts[0].TimeoutMsg
		}
	}

	var lastErr error
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			if lastErr != nil {
				return ierrors.Wrap(lastErr, opts.TimeoutMsg)
			}
			return ierrors.New(opts.TimeoutMsg)
		case <-timer.C:
			action, err := f()
			if action == WaitActionDone {
				return err
			}
			lastErr = err
			timer.Reset(opts.RetryInterval)
		}
	}
}
