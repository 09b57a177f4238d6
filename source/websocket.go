package source

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocketConfig configures the WebSocket byte endpoint.
type WebSocketConfig struct {
	Addr string `help:"Listen address for the WebSocket source" default:":8765" env:"PETKEY_WS_ADDR"`
	Path string `help:"URL path of the WebSocket endpoint" default:"/ws" env:"PETKEY_WS_PATH"`
}

// WebSocket accepts one client at a time and queues every byte of every
// message it sends, text or binary.
type WebSocket struct {
	*queue
	ln       net.Listener
	srv      *http.Server
	upgrader websocket.Upgrader
	active   atomic.Bool
	logger   *slog.Logger
}

// NewWebSocket starts listening on cfg.Addr.
func NewWebSocket(cfg WebSocketConfig, logger *slog.Logger) (*WebSocket, error) {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, err
	}
	ws := &WebSocket{
		queue:  newQueue(),
		ln:     ln,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	path := cfg.Path
	if path == "" {
		path = "/"
	}
	mux := http.NewServeMux()
	mux.HandleFunc(path, ws.serve)
	ws.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := ws.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("websocket server stopped", "error", err)
			ws.finish(err)
		}
	}()
	logger.Info("websocket source listening", "addr", ln.Addr().String(), "path", path)
	return ws, nil
}

// Addr is the address actually listened on.
func (ws *WebSocket) Addr() net.Addr { return ws.ln.Addr() }

func (ws *WebSocket) serve(w http.ResponseWriter, r *http.Request) {
	if !ws.active.CompareAndSwap(false, true) {
		http.Error(w, "another client is connected", http.StatusConflict)
		return
	}
	defer ws.active.Store(false)

	conn, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		ws.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()
	ws.logger.Info("websocket client connected", "remote", r.RemoteAddr)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			ws.logger.Info("websocket client disconnected", "remote", r.RemoteAddr, "reason", err)
			return
		}
		for _, b := range data {
			if !ws.push(b) {
				return
			}
		}
	}
}

func (ws *WebSocket) Close() error {
	ws.finish(ErrClosed)
	return ws.srv.Close()
}
