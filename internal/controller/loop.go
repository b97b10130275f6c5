package controller

import (
	"context"
	"errors"
	"io"

	"rds-restore/internal/selection"
	"rds-restore/pkg/storage"

	"github.com/sirupsen/logrus"
)

// ErrStopped is returned by Loop calls made after Stop
var ErrStopped = errors.New("event loop stopped")

// Loop runs every call against a Controller on a single goroutine, so callers on
// other goroutines (HTTP handlers) never run two events at once.
type Loop struct {
	controller *Controller
	requests   chan func()
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
	logger     *logrus.Logger
}

// NewLoop creates a loop around controller. It does nothing until Start.
func NewLoop(controller *Controller, logger *logrus.Logger) *Loop {
	ctx, cancel := context.WithCancel(context.Background())

	if logger == nil {
		logger = controller.logger
	}

	return &Loop{
		controller: controller,
		requests:   make(chan func()),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Start begins processing calls
func (l *Loop) Start() {
	l.logger.Info("Starting event loop")
	go l.run()
}

// Stop stops the loop. Calls in progress finish; later calls return ErrStopped.
func (l *Loop) Stop() {
	l.logger.Info("Stopping event loop")
	l.cancel()
}

// Done is closed once the loop goroutine has exited
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) run() {
	defer close(l.done)

	for {
		select {
		case <-l.ctx.Done():
			l.logger.Debug("Event loop stopped")
			return
		case fn := <-l.requests:
			fn()
		}
	}
}

// submit runs fn on the loop goroutine and waits for it to return
func (l *Loop) submit(fn func()) error {
	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		fn()
	}

	select {
	case l.requests <- wrapped:
	case <-l.ctx.Done():
		return ErrStopped
	}

	<-finished
	return nil
}

// Open runs Controller.Open on the loop
func (l *Loop) Open() (Outcome, error) {
	var out Outcome
	err := l.submit(func() { out = l.controller.Open() })
	return out, err
}

// Dispatch runs Controller.Dispatch on the loop
func (l *Loop) Dispatch(ev Event) (Outcome, error) {
	var out Outcome
	err := l.submit(func() { out = l.controller.Dispatch(ev) })
	return out, err
}

// DispatchView runs Controller.Dispatch and reads the resulting view in the same loop
// turn, so no other event can run in between
func (l *Loop) DispatchView(ev Event) (Outcome, selection.View, error) {
	var (
		out Outcome
		v   selection.View
	)
	err := l.submit(func() {
		out = l.controller.Dispatch(ev)
		v = l.controller.View()
	})
	return out, v, err
}

// View reads a render copy of the selection state on the loop
func (l *Loop) View() (selection.View, error) {
	var v selection.View
	err := l.submit(func() { v = l.controller.View() })
	return v, err
}

// Activity returns the activity log. The log is safe for concurrent use.
func (l *Loop) Activity() []storage.Entry {
	return l.controller.Activity().Entries()
}

// WriteActivity writes the activity log to w as JSON
func (l *Loop) WriteActivity(w io.Writer) error {
	return l.controller.Activity().WriteJSON(w)
}
