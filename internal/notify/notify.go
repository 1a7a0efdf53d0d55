// Package notify fans product-creation events out to notification sinks.
// The fan-out runs after the storage commit and outside of it: a failing sink
// is logged and never rolls back or fails the request.
package notify

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Bjornanger/webshop/internal/domain/product"
)

// Sink delivers a single product-creation notification over one channel
// (push, SMS, email).
type Sink interface {
	// Name identifies the channel in logs.
	Name() string
	// Deliver sends the notification. Errors are reported to the caller for
	// logging only.
	Deliver(ctx context.Context, p product.Product) error
}

// Notifier holds an explicit list of sinks and fans events out to all of
// them concurrently.
type Notifier struct {
	sinks []Sink
}

// NewNotifier creates a Notifier over the given sinks.
func NewNotifier(sinks ...Sink) *Notifier {
	return &Notifier{sinks: sinks}
}

// ProductCreated delivers the event to every sink. Each sink runs in its own
// goroutine; failures are logged per sink and swallowed.
func (n *Notifier) ProductCreated(ctx context.Context, p product.Product) {
	if len(n.sinks) == 0 {
		return
	}

	lg := zctx.From(ctx)

	g, ctx := errgroup.WithContext(ctx)
	for _, sink := range n.sinks {
		g.Go(func() error {
			if err := sink.Deliver(ctx, p); err != nil {
				lg.Warn("Notification delivery failed",
					zap.String("sink", sink.Name()),
					zap.Int64("product_id", p.ID),
					zap.Error(err),
				)
			}
			return nil
		})
	}
	// Sinks never propagate errors, so Wait only synchronizes the fan-out.
	_ = g.Wait()
}

// LogSink is a stand-in delivery channel that records the notification in
// the log. Real push/SMS transports slot in behind the same interface.
type LogSink struct {
	channel string
}

// NewLogSink creates a LogSink for the named channel.
func NewLogSink(channel string) *LogSink {
	return &LogSink{channel: channel}
}

func (s *LogSink) Name() string { return s.channel }

func (s *LogSink) Deliver(ctx context.Context, p product.Product) error {
	if s.channel == "" {
		return errors.New("sink channel not configured")
	}
	zctx.From(ctx).Info("Product added",
		zap.String("channel", s.channel),
		zap.Int64("product_id", p.ID),
		zap.String("name", p.Name),
	)
	return nil
}
