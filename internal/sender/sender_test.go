package sender

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSenderSendSuccess(t *testing.T) {
	var received string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received = string(body)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		io.WriteString(w, `{"statusCode": 200, "message": "Message Successfully Delivered"}`)
	}))
	defer srv.Close()

	s := NewSender(srv.URL, nil, discardLogger())
	require.NoError(t, s.Send(context.Background(), `{"x":1}`))
	assert.Equal(t, `{"x":1}`, received)
}

func TestSenderSendInnerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"statusCode": 500, "message": "Failed to deliver"}`)
	}))
	defer srv.Close()

	err := NewSender(srv.URL, srv.Client(), discardLogger()).Send(context.Background(), "{}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to deliver")
}

func TestSenderSendTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusMethodNotAllowed)
	}))
	defer srv.Close()

	assert.Error(t, NewSender(srv.URL, nil, discardLogger()).Send(context.Background(), "{}"))
}

func TestSenderSendUndecodableResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "OK")
	}))
	defer srv.Close()

	assert.Error(t, NewSender(srv.URL, nil, discardLogger()).Send(context.Background(), "{}"))
}

func TestGeneratorNext(t *testing.T) {
	g := NewGenerator([]string{"alpha", "beta"})

	for i := 1; i <= 3; i++ {
		payload, err := g.Next()
		require.NoError(t, err)

		var decoded struct {
			Seq     int    `json:"seq"`
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal([]byte(payload), &decoded))
		assert.Equal(t, i, decoded.Seq)

		words := strings.Split(decoded.Message, " ")
		assert.Len(t, words, 2)
		for _, w := range words {
			assert.Contains(t, []string{"alpha", "beta"}, w)
		}
	}
}
