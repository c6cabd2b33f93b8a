package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/octorelay/pkg/domain/interfaces"
	"github.com/secmon-lab/octorelay/pkg/domain/model"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

const defaultDispatchConcurrency = 4

// Dispatcher sends messages to chat channels. A failed send never affects
// the other messages and is never retried.
type Dispatcher struct {
	sender      interfaces.MessageSender
	concurrency int
}

type DispatcherOption func(*Dispatcher)

func WithConcurrency(n int) DispatcherOption {
	return func(x *Dispatcher) {
		if n > 0 {
			x.concurrency = n
		}
	}
}

func NewDispatcher(sender interfaces.MessageSender, options ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		sender:      sender,
		concurrency: defaultDispatchConcurrency,
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

// Dispatch attempts every message and returns the failed ones in input order.
func (x *Dispatcher) Dispatch(ctx context.Context, msgs []model.Message) []model.DeliveryFailure {
	if len(msgs) == 0 {
		return nil
	}

	results := make([]error, len(msgs))

	var eg errgroup.Group
	eg.SetLimit(x.concurrency)
	for i, msg := range msgs {
		eg.Go(func() error {
			results[i] = x.send(ctx, msg)
			return nil
		})
	}
	_ = eg.Wait()

	var failures []model.DeliveryFailure
	for i, err := range results {
		if err == nil {
			continue
		}
		logging.From(ctx).Warn("failed to deliver message",
			"channelID", msgs[i].ChannelID,
			"error", err,
		)
		failures = append(failures, model.DeliveryFailure{
			ChannelID: msgs[i].ChannelID,
			Err:       err,
		})
	}

	return failures
}

func (x *Dispatcher) send(ctx context.Context, msg model.Message) error {
	if x.sender == nil {
		return goerr.Wrap(types.ErrDeliveryFailed, "message sender is not configured",
			goerr.V("channelID", msg.ChannelID),
		)
	}

	if err := x.sender.SendMessage(ctx, msg.ChannelID, msg.Text); err != nil {
		return goerr.Wrap(errors.Join(types.ErrDeliveryFailed, err), "failed to send message",
			goerr.V("channelID", msg.ChannelID),
		)
	}
	return nil
}
