package device

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stupside/autocast/internal/app"
	"github.com/stupside/autocast/internal/media"
)

// ErrNotFound is returned when a requested device name matches nothing in
// the registry. Checked before any resolution work is spent on a cast.
var ErrNotFound = errors.New("device not found")

// Type identifies the kind of playback device.
type Type string

const (
	TypeRoku       Type = "roku"
	TypeChromecast Type = "chromecast"
	TypeDLNA       Type = "dlna"
)

// Info identifies one playback device, configured or discovered.
type Info struct {
	Name    string `json:"name"`
	Address string `json:"ip_address"`
	Type    Type   `json:"type"`
}

// Device is the interface for all playback devices.
type Device interface {
	Connect() error
	Play(ctx context.Context, stream media.Stream, title string) error
	Close() error
}

// Registry is the static device list loaded once at startup. It is never
// mutated afterwards, so concurrent reads need no locking.
type Registry struct {
	devices []Info
}

// NewRegistry builds the registry from configuration, preserving order.
func NewRegistry(cfgs []app.DeviceConfig) *Registry {
	devices := make([]Info, 0, len(cfgs))
	for _, cfg := range cfgs {
		devices = append(devices, Info{
			Name:    cfg.Name,
			Address: cfg.Address,
			Type:    Type(cfg.Type),
		})
	}
	return &Registry{devices: devices}
}

// List returns the configured devices in registry order.
func (r *Registry) List() []Info {
	return r.devices
}

// Find looks a device up by its display name or address, exact match.
func (r *Registry) Find(name string) (Info, error) {
	for _, d := range r.devices {
		if d.Name == name || d.Address == name {
			return d, nil
		}
	}
	return Info{}, fmt.Errorf("%w: %q is not configured", ErrNotFound, name)
}

// RokuPort is the fixed port of Roku's External Control Protocol.
const RokuPort = "8060"

// Endpoint returns the device's HTTP control endpoint, defaulting the ECP
// port for bare addresses.
func (i Info) Endpoint() string {
	if strings.HasPrefix(i.Address, "http://") || strings.HasPrefix(i.Address, "https://") {
		return i.Address
	}
	addr := i.Address
	if !strings.Contains(addr, ":") {
		addr += ":" + RokuPort
	}
	return "http://" + addr
}
