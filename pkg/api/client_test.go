package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_POST(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/channels/c1/messages", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "Bot token", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "hello", body["content"])

		w.Write([]byte(`{"id": "m1", "author": {"id": "bot"}}`))
	}))
	defer server.Close()

	resp, err := NewGenerator(server.URL).New("/channels/%s/messages", "c1").
		Body(JSON{"content": "hello"}).
		POST(context.Background(), OAuth2("Bot", "token"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Code)

	body, ok := resp.Body.(JSON)
	require.True(t, ok)

	id, err := body.GetString("id")
	require.NoError(t, err)
	require.Equal(t, "m1", id)

	authorID, err := body.GetString("author.id")
	require.NoError(t, err)
	require.Equal(t, "bot", authorID)
}

func TestClient_GETArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "limit=2", r.URL.RawQuery)
		w.Write([]byte(`[{"id": "a"}, {"id": "b"}]`))
	}))
	defer server.Close()

	resp, err := NewGenerator(server.URL).New("/items").
		Query(Parameter{"limit": "2"}).
		GET(context.Background())
	require.NoError(t, err)

	array, ok := resp.Body.(Array)
	require.True(t, ok)
	require.Len(t, array, 2)
}

func TestClient_AllDomainsDown(t *testing.T) {
	_, err := NewGenerator("http://127.0.0.1:1").New("/").GET(context.Background())
	require.Error(t, err)
}

func TestClient_POSTParameter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Equal(t, "name=Saluer%20la%20lune&reward=10%2B5", string(body))

		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	resp, err := NewGenerator(server.URL).New("/form").
		Body(Parameter{"reward": "10+5", "name": "Saluer la lune"}).
		POST(context.Background())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestPercentEncode(t *testing.T) {
	require.Equal(t, "a%20b", PercentEncode("a b"))
	require.Equal(t, "%C3%A9nigme%26co", PercentEncode("énigme&co"))
}
