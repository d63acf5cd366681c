package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-test", req["model"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{\"title\":\"Hi\"}"},"finish_reason":"stop"}]}`))
	})
	mux.HandleFunc("/v1/images/generations", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"created":1,"data":[{"b64_json":"aGVsbG8="}]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func TestClient_Complete(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient("sk-test", srv.URL+"/v1", "gpt-test", "image-test")

	out, err := client.Complete(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Hi"}`, out)
}

func TestClient_GenerateImage(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient("sk-test", srv.URL+"/v1", "gpt-test", "image-test")

	out, err := client.GenerateImage(context.Background(), "a calm office")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", out)
}

func TestClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	client := NewClient("sk-bad", srv.URL+"/v1", "gpt-test", "image-test")

	_, err := client.Complete(context.Background(), "system", "user")
	assert.Error(t, err)
}
