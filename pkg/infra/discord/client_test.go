package discord_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/infra/discord"
	"github.com/secmon-lab/octorelay/pkg/utils/testutil"
)

// rewriteTransport sends every request to the test server regardless of host.
type rewriteTransport struct {
	target *url.URL
}

func (x *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = x.target.Scheme
	req.URL.Host = x.target.Host
	req.Host = x.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

type sentMessage struct {
	auth    string
	channel string
	content string
}

func newDiscordServer(t *testing.T) (*http.Client, func() []sentMessage) {
	t.Helper()
	var (
		mu   sync.Mutex
		sent []sentMessage
	)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v9/channels/{channelID}/messages", func(w http.ResponseWriter, r *http.Request) {
		channelID := r.PathValue("channelID")
		w.Header().Set("Content-Type", "application/json")

		if channelID == "missing" {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{"message": "Unknown Channel", "code": 10003})
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var req struct {
			Content string `json:"content"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		mu.Lock()
		sent = append(sent, sentMessage{
			auth:    r.Header.Get("Authorization"),
			channel: channelID,
			content: req.Content,
		})
		mu.Unlock()

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":         "1000",
			"channel_id": channelID,
			"content":    req.Content,
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	target, err := url.Parse(srv.URL)
	gt.NoError(t, err)

	return &http.Client{Transport: &rewriteTransport{target: target}}, func() []sentMessage {
		mu.Lock()
		defer mu.Unlock()
		return append([]sentMessage{}, sent...)
	}
}

func TestNew(t *testing.T) {
	_, err := discord.New("")
	gt.Error(t, err)

	client, err := discord.New("bot-token")
	gt.NoError(t, err)
	gt.True(t, client != nil)
}

func TestSendMessage(t *testing.T) {
	httpClient, sent := newDiscordServer(t)
	client, err := discord.New("bot-token", discord.WithHTTPClient(httpClient))
	gt.NoError(t, err)

	ctx := context.Background()

	t.Run("sends content to channel", func(t *testing.T) {
		gt.NoError(t, client.SendMessage(ctx, "123456", "⚠️ GitHub App uninstalled for octo/repo."))

		msgs := sent()
		gt.V(t, len(msgs)).Equal(1)
		gt.V(t, msgs[0].channel).Equal("123456")
		gt.V(t, msgs[0].content).Equal("⚠️ GitHub App uninstalled for octo/repo.")
		gt.V(t, msgs[0].auth).Equal("Bot bot-token")
	})

	t.Run("API error is returned", func(t *testing.T) {
		err := client.SendMessage(ctx, "missing", "hello")
		gt.Error(t, err)
	})
}

func TestSendMessage_Integration(t *testing.T) {
	token := testutil.GetEnvOrSkip(t, "TEST_DISCORD_TOKEN")
	channel := testutil.GetEnvOrSkip(t, "TEST_DISCORD_CHANNEL_ID")

	client, err := discord.New(types.DiscordToken(token))
	gt.NoError(t, err)
	gt.NoError(t, client.SendMessage(context.Background(), types.ChannelID(channel), "octorelay integration test"))
}
