package xlgrid

import (
	"io"
	"log/slog"
)

// Options holds configuration for a Controller.
type Options struct {
	writeBack Aggregate
	logger    *slog.Logger
	listeners []CommitListener
}

func defaultOptions() *Options {
	return &Options{
		writeBack: AggregateSum,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option configures a Controller.
type Option func(*Options)

// WithWriteBack sets the aggregate written into the sink when a drag ends (default: sum).
func WithWriteBack(a Aggregate) Option {
	return func(o *Options) { o.writeBack = a }
}

// WithLogger sets the logger used for gesture and commit events (default: discard).
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCommitListener adds a listener notified after each successful write-back.
func WithCommitListener(l CommitListener) Option {
	return func(o *Options) { o.listeners = append(o.listeners, l) }
}

// CommitListener is notified after a drag's result has been written into the grid.
type CommitListener interface {
	AfterCommit(c Commit, s State)
}

// CommitListenerFunc adapts a function to CommitListener.
type CommitListenerFunc func(c Commit, s State)

// AfterCommit calls f(c, s).
func (f CommitListenerFunc) AfterCommit(c Commit, s State) { f(c, s) }
