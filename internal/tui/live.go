// Package tui renders a live status view of a hook run.
//
// Live subscribes to the executor's event bus and forwards each lifecycle
// event to a Bubbletea program. The program exits on its own when the run
// completes.
package tui

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/hookrun/internal/event"
)

// Live wraps the Bubbletea program for one run.
type Live struct {
	bus     *event.Bus
	program *tea.Program
	subID   string

	done chan struct{}
	once sync.Once
	err  error
}

// Option configures a Live view.
type Option func(*liveOptions)

type liveOptions struct {
	output    io.Writer
	noInput   bool
	interrupt func()
}

// WithOutput renders to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(o *liveOptions) { o.output = w }
}

// WithoutInput disables keyboard handling.
func WithoutInput() Option {
	return func(o *liveOptions) { o.noInput = true }
}

// WithInterrupt is called when the user presses ctrl+c. The terminal is in
// raw mode while the view runs, so this replaces SIGINT.
func WithInterrupt(fn func()) Option {
	return func(o *liveOptions) { o.interrupt = fn }
}

// NewLive creates a live view for the hooks in order. Call Start before the
// run begins and Wait after it returns.
func NewLive(bus *event.Bus, order []string, opts ...Option) *Live {
	var o liveOptions
	for _, opt := range opts {
		opt(&o)
	}

	model := NewModel(order)
	model.interrupt = o.interrupt

	var progOpts []tea.ProgramOption
	if o.output != nil {
		progOpts = append(progOpts, tea.WithOutput(o.output))
	}
	if o.noInput {
		progOpts = append(progOpts, tea.WithInput(nil))
	}

	return &Live{
		bus:     bus,
		program: tea.NewProgram(model, progOpts...),
		done:    make(chan struct{}),
	}
}

// Start subscribes to the bus and runs the program in the background.
func (l *Live) Start() {
	l.subID = l.bus.SubscribeAll(func(e event.Event) {
		if msg := toMsg(e); msg != nil {
			l.program.Send(msg)
		}
	})

	go func() {
		defer close(l.done)
		_, l.err = l.program.Run()
	}()
}

// Wait blocks until the program has exited and restores the terminal.
func (l *Live) Wait() error {
	<-l.done
	l.unsubscribe()
	return l.err
}

// Stop ends the program if it is still running and waits for it. It is
// safe to call after Wait.
func (l *Live) Stop() {
	l.program.Quit()
	_ = l.Wait()
}

func (l *Live) unsubscribe() {
	l.once.Do(func() {
		if l.subID != "" {
			l.bus.Unsubscribe(l.subID)
		}
	})
}
