package chromecast

import (
	"context"
	"fmt"

	"github.com/vishen/go-chromecast/application"

	"github.com/stupside/autocast/internal/device"
	"github.com/stupside/autocast/internal/media"
)

// Device implements device.Device for Google Chromecast receivers.
type Device struct {
	port uint
	app  *application.Application
	info device.Info
}

var _ device.Device = (*Device)(nil)

// NewDevice creates a Device for a registry entry.
func NewDevice(info device.Info) *Device {
	return &Device{
		info: info,
		port: 8009,
	}
}

func (c *Device) Connect() error {
	c.app = application.NewApplication(
		application.WithDebug(false),
		application.WithCacheDisabled(true),
	)
	if err := c.app.Start(c.info.Address, int(c.port)); err != nil {
		return fmt.Errorf("connecting to chromecast: %w", err)
	}
	return nil
}

func (c *Device) Play(ctx context.Context, stream media.Stream, title string) error {
	return c.app.Load(stream.URL, 0, media.ContentType(stream.MediaType), false, true, true)
}

func (c *Device) Close() error {
	if c.app != nil {
		return c.app.Close(false)
	}
	return nil
}
