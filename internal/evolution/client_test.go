package evolution_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfcruz/gestor/internal/evolution"
)

func TestClient_SendText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		assert.Equal(t, "/message/sendText/obra", r.URL.Path)

		var payload struct {
			Number string `json:"number"`
			Text   struct {
				Text string `json:"text"`
			} `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "5511999999999", payload.Number)
		assert.Equal(t, "Olá!", payload.Text.Text)

		msg := evolution.Message{MessageTimestamp: 1700000000}
		msg.Key.ID = "msg1"
		msg.Key.FromMe = true
		json.NewEncoder(w).Encode(msg)
	}))
	defer ts.Close()

	c := evolution.New(ts.URL, "key", "obra")

	msg, err := c.SendText(context.Background(), "5511999999999", "Olá!")
	require.NoError(t, err)
	assert.Equal(t, "msg1", msg.Key.ID)
	assert.True(t, msg.Key.FromMe)
}

func TestClient_SendDocument(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/message/sendDocument/obra", r.URL.Path)

		var payload struct {
			Document struct {
				URL      string `json:"url"`
				FileName string `json:"fileName"`
			} `json:"document"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "laudo.pdf", payload.Document.FileName)

		json.NewEncoder(w).Encode(evolution.Message{})
	}))
	defer ts.Close()

	c := evolution.New(ts.URL, "key", "obra")

	_, err := c.SendDocument(context.Background(), "5511999999999", "https://files.example/laudo.pdf", "laudo.pdf")
	assert.NoError(t, err)
}

func TestClient_Status(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/instance/status/obra", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)

		json.NewEncoder(w).Encode(evolution.InstanceStatus{Instance: "obra", State: "open"})
	}))
	defer ts.Close()

	c := evolution.New(ts.URL, "key", "obra")

	status, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "open", status.State)
}
