// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package retry provides a function for retrying an operation.
package retry

import (
	"context"
	"errors"
	"time"

	"zombiezen.com/go/log"
)

// A BackoffStrategy can be called repeatedly to obtain (presumably) increasing
// durations to wait between retries. A negative duration means to stop
// retrying.
type BackoffStrategy interface {
	Duration() time.Duration
}

// Exponential is a BackoffStrategy that doubles its wait after every attempt.
type Exponential struct {
	// Initial is the first duration returned.
	Initial time.Duration
	// Max caps the duration. Zero means no cap.
	Max time.Duration
	// Retries is the number of durations returned before giving up.
	// Zero means retry forever.
	Retries int

	n    int
	curr time.Duration
}

// Duration returns the next wait.
func (e *Exponential) Duration() time.Duration {
	if e.Retries > 0 && e.n >= e.Retries {
		return -1
	}
	e.n++
	if e.curr == 0 {
		e.curr = e.Initial
	} else {
		e.curr *= 2
	}
	if e.Max > 0 && e.curr > e.Max {
		e.curr = e.Max
	}
	return e.curr
}

type permanentError struct {
	err error
}

func (p permanentError) Error() string { return p.err.Error() }
func (p permanentError) Unwrap() error { return p.err }

// Permanent wraps err so that Do returns it without retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err}
}

// Do calls a function repeatedly with backoff until it returns a nil error.
// Do returns the function's last error if the Context is Done, the strategy
// gives up, or the function returns an error wrapped with Permanent. The
// function is guaranteed to be called at least once.
//
// The operation should be a verb phrase like "saving app.ini" for logging.
func Do(ctx context.Context, operation string, strategy BackoffStrategy, f func() error) error {
	var t *time.Timer
	for {
		err := f()
		if err == nil {
			return nil
		}
		var perm permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		d := strategy.Duration()
		if d < 0 {
			return err
		}
		if d > 0 {
			log.Warnf(ctx, "Error %s (will retry in %v): %v", operation, d, err)
			if t == nil {
				t = time.NewTimer(d)
				defer t.Stop()
			} else {
				t.Reset(d)
			}
			select {
			case <-t.C:
			case <-ctx.Done():
				return err
			}
		} else {
			log.Warnf(ctx, "Error %s (will retry): %v", operation, err)
			select {
			case <-ctx.Done():
				return err
			default:
			}
		}
	}
}
