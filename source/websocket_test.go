package source

import (
	"net/http"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petkey/petkey/internal/log"
)

func TestWebSocketQueuesMessageBytes(t *testing.T) {
	ws, err := NewWebSocket(WebSocketConfig{Addr: "127.0.0.1:0", Path: "/ws"}, log.Discard())
	require.NoError(t, err)
	defer ws.Close()

	url := "ws://" + ws.Addr().String() + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0x93, 0x11}))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("run\r")))

	got, err := collect(t, ws, 6)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x93, 0x11, 'r', 'u', 'n', 0x0d}, got)

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	assert.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestWebSocketClose(t *testing.T) {
	ws, err := NewWebSocket(WebSocketConfig{Addr: "127.0.0.1:0"}, log.Discard())
	require.NoError(t, err)

	require.NoError(t, ws.Close())
	_, ok, err := ws.TryReadByte()
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrClosed)
}
