package output

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/petkey/petkey/internal/viiper"
	"github.com/petkey/petkey/keymap"
)

// ViiperConfig selects the VIIPER server the virtual keyboard is created on.
type ViiperConfig struct {
	Addr     string `help:"VIIPER API address" default:"localhost:3242" env:"PETKEY_VIIPER_ADDR"`
	Password string `help:"VIIPER API password (empty for an unauthenticated server)" env:"PETKEY_VIIPER_PASSWORD"`
	Bus      uint32 `help:"Bus to attach to; 0 creates a new bus" default:"0" env:"PETKEY_VIIPER_BUS"`
}

// Viiper types into a keyboard device created on a VIIPER virtual USB bus.
type Viiper struct {
	client  *viiper.Client
	stream  *viiper.Stream
	device  *viiper.Device
	ownsBus bool
	logger  *slog.Logger
	keys    held
}

// OpenViiper creates a keyboard device and attaches to its stream. When
// cfg.Bus is zero a fresh bus is created and removed again on Close.
func OpenViiper(ctx context.Context, cfg ViiperConfig, logger *slog.Logger) (*Viiper, error) {
	client := viiper.NewWithConfig(cfg.Addr, &viiper.Config{
		DialTimeout:  3 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		Password:     cfg.Password,
	})

	v := &Viiper{client: client, logger: logger}
	busID := cfg.Bus
	if busID == 0 {
		bus, err := client.BusCreate(ctx, 0)
		if err != nil {
			return nil, fmt.Errorf("create bus: %w", err)
		}
		busID = bus.BusID
		v.ownsBus = true
	}

	dev, err := client.DeviceAdd(ctx, busID, "keyboard")
	if err != nil {
		v.removeBus(busID)
		return nil, fmt.Errorf("add keyboard: %w", err)
	}
	v.device = dev

	stream, err := client.OpenStream(ctx, dev.BusID, dev.DevID)
	if err != nil {
		v.removeDevice()
		v.removeBus(busID)
		return nil, fmt.Errorf("open stream: %w", err)
	}
	v.stream = stream
	logger.Info("virtual keyboard attached", "bus", dev.BusID, "device", dev.DevID, "vid", dev.Vid, "pid", dev.Pid)
	return v, nil
}

func (v *Viiper) Press(k keymap.KeyCode) error {
	st, err := v.keys.press(k)
	if err != nil {
		return err
	}
	if err := v.stream.WriteBinary(&st); err != nil {
		return fmt.Errorf("%w: %v", ErrSinkUnavailable, err)
	}
	return nil
}

func (v *Viiper) ReleaseAll() error {
	st := v.keys.release()
	if err := v.stream.WriteBinary(&st); err != nil {
		return fmt.Errorf("%w: %v", ErrSinkUnavailable, err)
	}
	return nil
}

// Close detaches the stream and removes the device (and the bus if it was
// created by OpenViiper).
func (v *Viiper) Close() error {
	err := v.stream.Close()
	v.removeDevice()
	if v.ownsBus {
		v.removeBus(v.device.BusID)
	}
	return err
}

func (v *Viiper) removeDevice() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := v.client.DeviceRemove(ctx, v.device.BusID, v.device.DevID); err != nil {
		v.logger.Warn("failed to remove virtual keyboard", "error", err)
	}
}

func (v *Viiper) removeBus(busID uint32) {
	if !v.ownsBus {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := v.client.BusRemove(ctx, busID); err != nil {
		v.logger.Warn("failed to remove bus", "bus", busID, "error", err)
	}
}
