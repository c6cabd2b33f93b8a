package slack_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/infra/slack"
	"github.com/secmon-lab/octorelay/pkg/utils/testutil"
)

type postedMessage struct {
	token   string
	channel string
	text    string
}

func newSlackServer(t *testing.T) (*httptest.Server, func() []postedMessage) {
	t.Helper()
	var (
		mu     sync.Mutex
		posted []postedMessage
	)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat.postMessage", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		channel := r.PostForm.Get("channel")
		w.Header().Set("Content-Type", "application/json")
		if channel == "C-missing" {
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "channel_not_found"})
			return
		}

		mu.Lock()
		posted = append(posted, postedMessage{
			token:   r.Header.Get("Authorization"),
			channel: channel,
			text:    r.PostForm.Get("text"),
		})
		mu.Unlock()

		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "channel": channel, "ts": "1700000000.000100"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, func() []postedMessage {
		mu.Lock()
		defer mu.Unlock()
		return append([]postedMessage{}, posted...)
	}
}

func TestNew(t *testing.T) {
	_, err := slack.New("")
	gt.Error(t, err)

	client, err := slack.New("xoxb-test")
	gt.NoError(t, err)
	gt.True(t, client != nil)
}

func TestSendMessage(t *testing.T) {
	srv, posted := newSlackServer(t)
	client, err := slack.New("xoxb-test", slack.WithAPIURL(srv.URL+"/"))
	gt.NoError(t, err)

	ctx := context.Background()

	t.Run("posts text to channel", func(t *testing.T) {
		gt.NoError(t, client.SendMessage(ctx, "C123", "✅ GitHub App installed for octo/repo!"))

		msgs := posted()
		gt.V(t, len(msgs)).Equal(1)
		gt.V(t, msgs[0].channel).Equal("C123")
		gt.V(t, msgs[0].text).Equal("✅ GitHub App installed for octo/repo!")
		gt.V(t, msgs[0].token).Equal("Bearer xoxb-test")
	})

	t.Run("API error is returned", func(t *testing.T) {
		err := client.SendMessage(ctx, "C-missing", "hello")
		gt.Error(t, err)
	})
}

func TestSendMessage_Integration(t *testing.T) {
	token := testutil.GetEnvOrSkip(t, "TEST_SLACK_TOKEN")
	channel := testutil.GetEnvOrSkip(t, "TEST_SLACK_CHANNEL_ID")

	client, err := slack.New(types.SlackToken(token))
	gt.NoError(t, err)
	gt.NoError(t, client.SendMessage(context.Background(), types.ChannelID(channel), "octorelay integration test"))
}
