package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/octorelay/pkg/domain/mock"
	"github.com/secmon-lab/octorelay/pkg/domain/model"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/usecase"
)

func TestDispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("every message is attempted even if some fail", func(t *testing.T) {
		sender := &mock.MessageSenderMock{
			SendMessageFunc: func(ctx context.Context, channelID types.ChannelID, text string) error {
				if channelID == "C2" || channelID == "C4" {
					return errors.New("rate limited")
				}
				return nil
			},
		}
		d := usecase.NewDispatcher(sender)

		var msgs []model.Message
		for i := 1; i <= 5; i++ {
			msgs = append(msgs, model.Message{
				ChannelID: types.ChannelID(fmt.Sprintf("C%d", i)),
				Text:      "hello",
			})
		}

		failures := d.Dispatch(ctx, msgs)
		gt.V(t, len(sender.SendMessageCalls())).Equal(5)
		gt.V(t, len(failures)).Equal(2)
		gt.V(t, failures[0].ChannelID).Equal(types.ChannelID("C2"))
		gt.V(t, failures[1].ChannelID).Equal(types.ChannelID("C4"))
		for _, f := range failures {
			gt.True(t, errors.Is(f.Err, types.ErrDeliveryFailed))
		}
	})

	t.Run("no messages", func(t *testing.T) {
		sender := &mock.MessageSenderMock{}
		d := usecase.NewDispatcher(sender)
		gt.V(t, len(d.Dispatch(ctx, nil))).Equal(0)
		gt.V(t, len(sender.SendMessageCalls())).Equal(0)
	})

	t.Run("missing sender fails every message", func(t *testing.T) {
		d := usecase.NewDispatcher(nil)
		failures := d.Dispatch(ctx, []model.Message{{ChannelID: "C1", Text: "x"}})
		gt.V(t, len(failures)).Equal(1)
		gt.True(t, errors.Is(failures[0].Err, types.ErrDeliveryFailed))
	})

	t.Run("concurrency is bounded", func(t *testing.T) {
		var running, peak atomic.Int32
		sender := &mock.MessageSenderMock{
			SendMessageFunc: func(ctx context.Context, channelID types.ChannelID, text string) error {
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				running.Add(-1)
				return nil
			},
		}
		d := usecase.NewDispatcher(sender, usecase.WithConcurrency(2))

		msgs := make([]model.Message, 8)
		for i := range msgs {
			msgs[i] = model.Message{ChannelID: types.ChannelID(fmt.Sprintf("C%d", i)), Text: "x"}
		}

		gt.V(t, len(d.Dispatch(ctx, msgs))).Equal(0)
		gt.V(t, len(sender.SendMessageCalls())).Equal(8)
		gt.True(t, peak.Load() <= 2)
	})
}
