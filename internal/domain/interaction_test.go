package domain

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/model"
	"github.com/stretchr/testify/require"
)

type signedClient struct {
	handler    http.Handler
	privateKey ed25519.PrivateKey
}

func (c *signedClient) do(ctx context.Context, body string, sign bool) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/interactions", strings.NewReader(body)).WithContext(ctx)
	timestamp := "1700000000"
	r.Header.Set("X-Signature-Timestamp", timestamp)
	if sign {
		r.Header.Set("X-Signature-Ed25519",
			hex.EncodeToString(ed25519.Sign(c.privateKey, []byte(timestamp+body))))
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, r)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) model.InteractionResponse {
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.InteractionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestInteractionHandler(t *testing.T) {
	publicKey, privateKey, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	ctx, d := newTestQuestLifecycleDomain(t)
	client := &signedClient{handler: NewInteractionHandler(publicKey, d), privateKey: privateKey}

	t.Run("unsigned", func(t *testing.T) {
		w := client.do(ctx, `{"type":1}`, false)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("ping", func(t *testing.T) {
		resp := decodeResponse(t, client.do(ctx, `{"type":1}`, true))
		require.Equal(t, model.InteractionResponsePong, resp.Type)
		require.Nil(t, resp.Data)
	})

	t.Run("accept button", func(t *testing.T) {
		body := `{"type":3,"data":{"custom_id":"` + AcceptButtonID("QD001") + `","component_type":2},` +
			`"member":{"nick":"Ali","user":{"id":"user1","username":"alice"}}}`

		resp := decodeResponse(t, client.do(ctx, body, true))
		require.Equal(t, model.InteractionResponseChannelMessage, resp.Type)
		require.Equal(t, model.MessageFlagEphemeral, resp.Data.Flags)
		require.Contains(t, resp.Data.Content, "Saluer la lune")

		resp = decodeResponse(t, client.do(ctx, body, true))
		require.Contains(t, resp.Data.Content, "déjà accepté")
	})

	t.Run("unknown quest button", func(t *testing.T) {
		body := `{"type":3,"data":{"custom_id":"accept:QX999"},"user":{"id":"user1","username":"alice"}}`
		resp := decodeResponse(t, client.do(ctx, body, true))
		require.Equal(t, QuestNotFoundMessage("QX999"), resp.Data.Content)
	})

	t.Run("status command", func(t *testing.T) {
		body := `{"type":2,"data":{"name":"quests"},"user":{"id":"user1","username":"alice"}}`
		resp := decodeResponse(t, client.do(ctx, body, true))
		require.Contains(t, resp.Data.Content, "QD001 · Saluer la lune")
	})

	t.Run("balance command", func(t *testing.T) {
		react(t, ctx, d, "user1", "🌙")

		body := `{"type":2,"data":{"name":"lumes"},"user":{"id":"user1","username":"alice"}}`
		resp := decodeResponse(t, client.do(ctx, body, true))
		require.Equal(t, BalanceMessage(ctx, 10), resp.Data.Content)
	})

	t.Run("unknown command", func(t *testing.T) {
		body := `{"type":2,"data":{"name":"dance"},"user":{"id":"user1"}}`
		resp := decodeResponse(t, client.do(ctx, body, true))
		require.Equal(t, internalErrorMessage, resp.Data.Content)
	})

	t.Run("method", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/interactions", nil)
		w := httptest.NewRecorder()
		client.handler.ServeHTTP(w, r)
		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestInteraction_Invoker(t *testing.T) {
	user, name := model.Interaction{
		Member: &model.InteractionMember{User: model.InteractionUser{ID: "1", Username: "alice", GlobalName: "Alice"}},
	}.Invoker()
	require.Equal(t, "1", user.ID)
	require.Equal(t, "Alice", name)

	user, name = model.Interaction{User: &model.InteractionUser{ID: "2", Username: "bob"}}.Invoker()
	require.Equal(t, "2", user.ID)
	require.Equal(t, "bob", name)
}
