// Package viiper is a minimal client for a VIIPER server's management API
// and device streams. petkey uses it to type into a virtual USB keyboard
// when no USB gadget port is available.
package viiper

import (
	"bytes"
	"context"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultAddr is where a local VIIPER server listens for API requests.
const DefaultAddr = "localhost:3242"

// Config controls timeouts and authentication.
type Config struct {
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Password     string
}

func defaultConfig() Config {
	return Config{
		DialTimeout:  3 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// Client talks to one VIIPER server.
//
// Requests are framed as `<path>[ SP <payload>]\x00`. The server answers
// with one JSON line and closes the connection.
type Client struct {
	addr string
	cfg  Config
}

func New(addr string) *Client { return NewWithConfig(addr, nil) }

func NewWithConfig(addr string, cfg *Config) *Client {
	c := defaultConfig()
	if cfg != nil {
		c = *cfg
	}
	return &Client{addr: addr, cfg: c}
}

func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	d := &net.Dialer{Timeout: c.cfg.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		if err := tcpConn.SetNoDelay(true); err != nil {
			slog.Warn("failed to set TCP_NODELAY", "error", err)
		}
	}
	if c.cfg.Password == "" {
		return conn, nil
	}

	key, err := deriveKey(c.cfg.Password)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if c.cfg.WriteTimeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(c.cfg.WriteTimeout))
	}
	secure, err := authenticate(conn, key)
	if err != nil {
		conn.Close()
		return nil, err
	}
	_ = conn.SetDeadline(time.Time{})
	return secure, nil
}

// Do sends one request and returns the response line without its trailing
// newline.
func (c *Client) Do(ctx context.Context, path string, payload []byte) (string, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	req := []byte(strings.ToLower(path))
	if len(payload) > 0 {
		req = append(req, ' ')
		req = append(req, payload...)
	}
	if c.cfg.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	}
	if _, err := conn.Write(append(req, '\x00')); err != nil {
		return "", fmt.Errorf("write: %w", err)
	}
	if c.cfg.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout))
	}
	resp, err := io.ReadAll(conn)
	if err != nil && len(resp) == 0 {
		return "", fmt.Errorf("read: %w", err)
	}
	return strings.TrimSuffix(string(resp), "\n"), nil
}

func (c *Client) BusList(ctx context.Context) (*BusListResponse, error) {
	raw, err := c.Do(ctx, "bus/list", nil)
	if err != nil {
		return nil, err
	}
	return parse[BusListResponse](raw)
}

// BusCreate creates a bus. A zero busID lets the server pick one.
func (c *Client) BusCreate(ctx context.Context, busID uint32) (*BusCreateResponse, error) {
	var payload []byte
	if busID != 0 {
		payload = []byte(strconv.FormatUint(uint64(busID), 10))
	}
	raw, err := c.Do(ctx, "bus/create", payload)
	if err != nil {
		return nil, err
	}
	return parse[BusCreateResponse](raw)
}

func (c *Client) BusRemove(ctx context.Context, busID uint32) (*BusRemoveResponse, error) {
	raw, err := c.Do(ctx, "bus/remove", []byte(strconv.FormatUint(uint64(busID), 10)))
	if err != nil {
		return nil, err
	}
	return parse[BusRemoveResponse](raw)
}

func (c *Client) DeviceAdd(ctx context.Context, busID uint32, devType string) (*Device, error) {
	payload, err := json.Marshal(DeviceCreateRequest{Type: devType})
	if err != nil {
		return nil, fmt.Errorf("marshal device create request: %w", err)
	}
	raw, err := c.Do(ctx, fmt.Sprintf("bus/%d/add", busID), payload)
	if err != nil {
		return nil, err
	}
	return parse[Device](raw)
}

func (c *Client) DeviceRemove(ctx context.Context, busID uint32, devID string) (*DeviceRemoveResponse, error) {
	raw, err := c.Do(ctx, fmt.Sprintf("bus/%d/remove", busID), []byte(devID))
	if err != nil {
		return nil, err
	}
	return parse[DeviceRemoveResponse](raw)
}

func parse[T any](data string) (*T, error) {
	if data == "" {
		return nil, errors.New("empty response")
	}
	var problem APIError
	if err := json.Unmarshal([]byte(data), &problem); err == nil && (problem.Status != 0 || problem.Title != "") {
		return nil, &problem
	}
	var out T
	if err := json.NewDecoder(bytes.NewReader([]byte(data))).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &out, nil
}

// Stream is an open device stream. Writes go to the virtual device.
type Stream struct {
	conn  net.Conn
	BusID uint32
	DevID string

	mu     sync.Mutex
	closed bool
}

// OpenStream attaches to an existing device on a bus.
func (c *Client) OpenStream(ctx context.Context, busID uint32, devID string) (*Stream, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Write([]byte(fmt.Sprintf("bus/%d/%s\x00", busID, devID))); err != nil {
		conn.Close()
		return nil, fmt.Errorf("write stream path: %w", err)
	}
	s := &Stream{conn: conn, BusID: busID, DevID: devID}
	// Keyboard streams send LED state back; nothing here needs it.
	go func() { _, _ = io.Copy(io.Discard, conn) }()
	return s, nil
}

// WriteBinary marshals v and sends it to the device.
func (s *Stream) WriteBinary(v encoding.BinaryMarshaler) error {
	data, err := v.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return net.ErrClosed
	}
	_, err = s.conn.Write(data)
	return err
}

func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}
