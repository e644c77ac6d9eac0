// Package page holds the browser-session boundary, the HTML table parser,
// and the stabilization poller that waits for the rendered course table to
// stop updating.
package page

import (
	"context"
	"errors"
)

// Session is one live browser page, driven by an external automation
// backend. Implementations wrap whatever driver the deployment uses; tests
// use fakes.
type Session interface {
	// Navigate loads url in the session.
	Navigate(ctx context.Context, url string) error

	// Fill types value into the form field with the given name.
	Fill(ctx context.Context, field, value string) error

	// Submit clicks the element with the given name.
	Submit(ctx context.Context, field string) error

	// SwitchFrame moves the session into the named frame.
	SwitchFrame(ctx context.Context, name string) error

	// PageSource returns the current rendered HTML.
	PageSource(ctx context.Context) (string, error)

	// Close releases the session. Safe to call once per session.
	Close() error
}

// Opener opens fresh sessions, one per query.
type Opener interface {
	Open(ctx context.Context) (Session, error)
}

// WithSession opens a session scoped to fn and guarantees Close on every
// exit path, including panics in fn. Close errors are joined onto fn's
// error so a failed release is never silent.
func WithSession(ctx context.Context, opener Opener, fn func(Session) error) (err error) {
	s, err := opener.Open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return fn(s)
}
