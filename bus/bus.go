package bus

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const (
	notificationQueueCapacity = 64
	commandQueueCapacity      = 64
)

// Logger is the minimal logging seam the bus writes diagnostics
// through (overflow drops, nothing more severe ever crosses it).
type Logger interface {
	Printf(format string, v ...any)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}

// Handler processes one notification in delivery order.
type Handler func(Notification)

// Bus is the Event Bus (C6): an inbound notification stream dispatched
// to a single handler in host-delivered order, and an outbound
// buffered command queue with a non-blocking, drop-oldest-and-log
// overflow policy. One notification-dispatch goroutine and one
// buffered command-post queue — see DESIGN.md for the channel-pair
// precedent this generalizes.
type Bus struct {
	handler  Handler
	incoming chan Notification
	commands chan Command
	logger   Logger
}

// New creates a Bus that dispatches delivered notifications to
// handler.
func New(handler Handler) *Bus {
	return &Bus{
		handler:  handler,
		incoming: make(chan Notification, notificationQueueCapacity),
		commands: make(chan Command, commandQueueCapacity),
		logger:   noopLogger{},
	}
}

// SetLogger overrides the bus's diagnostic logger. A nil logger resets
// to a no-op.
func (b *Bus) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	b.logger = logger
}

// Dispatch enqueues a notification for delivery, blocking only if the
// inbound queue is saturated (which would mean the dispatch loop has
// stalled). Unlike commands, notifications have no overflow allowance
// here: spec.md §4.6 requires host-delivered order to be preserved
// without drops.
func (b *Bus) Dispatch(ctx context.Context, n Notification) error {
	select {
	case b.incoming <- n:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run starts the single notification-dispatch loop and blocks until
// ctx is cancelled, returning ctx's error. Shutdown coordination uses
// errgroup rather than a bare sync.WaitGroup so a future second
// goroutine's error would propagate out of Wait instead of being
// silently dropped.
func (b *Bus) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case n := <-b.incoming:
				b.handler(n)
			}
		}
	})
	return g.Wait()
}

// PostCommand enqueues a command for the host, never blocking. When
// the queue is full the oldest pending command is dropped (and
// logged) to make room: commands are control signals where the
// latest intent matters more than guaranteed delivery of every one.
func (b *Bus) PostCommand(cmd Command) {
	select {
	case b.commands <- cmd:
		return
	default:
	}

	select {
	case old := <-b.commands:
		b.logger.Printf("bus: command queue full, dropping oldest command %q", old.Kind)
	default:
	}

	select {
	case b.commands <- cmd:
	default:
		b.logger.Printf("bus: command queue full, dropping command %q", cmd.Kind)
	}
}

// Commands returns the outbound channel the host-side transport reads
// from.
func (b *Bus) Commands() <-chan Command {
	return b.commands
}
