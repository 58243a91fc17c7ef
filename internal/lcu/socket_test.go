package lcu

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{}

// fakeEventServer upgrades one connection, checks the handshake, then
// plays back the given frames. With hold set it keeps the connection open
// until the client drops it; otherwise it hangs up after playback.
func fakeEventServer(t *testing.T, frames []string, hold bool) *httptest.Server {
	t.Helper()

	return httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Basic cmlvdDpzZWNyZXQ=", r.Header.Get("Authorization"))

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		_, frame, err := conn.ReadMessage()
		if err != nil {
			return
		}
		assert.Equal(t, `[5,"OnJsonApiEvent"]`, string(frame))

		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}

		for hold {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func TestDialSocket_DeliversEventsInOrder(t *testing.T) {
	srv := fakeEventServer(t, []string{
		`[]`,
		`[8,"OnJsonApiEvent",{"uri":"/first","eventType":"Update","data":1}]`,
		`this frame is noise`,
		`[8,"OnJsonApiEvent",{"uri":"/second","eventType":"Delete","data":2}]`,
	}, false)
	defer srv.Close()

	sock, err := DialSocket(credsForServer(t, srv), zap.NewNop())
	require.NoError(t, err)
	defer sock.Close()

	first, ok := <-sock.Events()
	require.True(t, ok)
	assert.Equal(t, "/first", first.URI)
	assert.Equal(t, "Update", first.EventType)

	second, ok := <-sock.Events()
	require.True(t, ok)
	assert.Equal(t, "/second", second.URI)

	// Server hung up: the stream ends by closing the channel.
	select {
	case _, ok := <-sock.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed after server hangup")
	}
}

func TestSocket_CloseIsIdempotent(t *testing.T) {
	srv := fakeEventServer(t, nil, true)
	defer srv.Close()

	sock, err := DialSocket(credsForServer(t, srv), zap.NewNop())
	require.NoError(t, err)

	sock.Close()
	sock.Close()

	select {
	case _, ok := <-sock.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed after Close")
	}
}

func TestDialSocket_NoServer(t *testing.T) {
	t.Parallel()

	_, err := DialSocket(Credentials{Port: 1, Token: "secret"}, zap.NewNop())
	assert.Error(t, err)
}
