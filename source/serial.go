package source

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// SerialConfig selects the UART the Commodore side is wired to.
type SerialConfig struct {
	Device      string        `help:"Serial device" default:"/dev/ttyACM0" env:"PETKEY_SERIAL_DEVICE"`
	Baud        int           `help:"Baud rate" default:"9600" env:"PETKEY_SERIAL_BAUD"`
	ReadTimeout time.Duration `help:"Serial read timeout" default:"100ms" env:"PETKEY_SERIAL_READ_TIMEOUT"`
}

// OpenSerial opens the configured port and pumps it through a Reader.
func OpenSerial(cfg SerialConfig) (*Reader, error) {
	port, err := openPort(cfg)
	if err != nil {
		return nil, err
	}
	return NewReader(timeoutReader{port}), nil
}

func openPort(cfg SerialConfig) (*serial.Port, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}
	return port, nil
}

// OpenSerialWriter opens the port for sending.
func OpenSerialWriter(cfg SerialConfig) (io.WriteCloser, error) {
	return openPort(cfg)
}

// timeoutReader hides read timeouts, which tarm/serial reports as io.EOF.
type timeoutReader struct{ p io.ReadCloser }

func (t timeoutReader) Read(b []byte) (int, error) {
	n, err := t.p.Read(b)
	if errors.Is(err, io.EOF) {
		return n, nil
	}
	return n, err
}

func (t timeoutReader) Close() error { return t.p.Close() }
