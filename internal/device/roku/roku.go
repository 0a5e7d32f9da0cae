package roku

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/stupside/autocast/internal/device"
	"github.com/stupside/autocast/internal/media"
)

// mediaAssistantChannelID is Media Assistant's channel ID in the Roku
// store. The channel accepts an external URL and plays it.
const mediaAssistantChannelID = "782875"

// Device casts to a Roku TV over its External Control Protocol by
// launching Media Assistant with the stream URL.
type Device struct {
	info   device.Info
	client *http.Client
}

var _ device.Device = (*Device)(nil)

// NewDevice creates a Device for a registry entry. The client's timeout
// bounds the dispatch call.
func NewDevice(info device.Info, client *http.Client) *Device {
	return &Device{
		info:   info,
		client: client,
	}
}

// Connect is a no-op; ECP is connectionless.
func (d *Device) Connect() error {
	return nil
}

func (d *Device) Play(ctx context.Context, stream media.Stream, title string) error {
	if title == "" {
		title = "Movie"
	}

	params := url.Values{}
	params.Set("u", stream.URL)
	params.Set("t", "v")
	params.Set("videoName", title)
	params.Set("videoFormat", stream.MediaType)

	launchURL := fmt.Sprintf("%s/launch/%s?%s", d.info.Endpoint(), mediaAssistantChannelID, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, launchURL, nil)
	if err != nil {
		return fmt.Errorf("building ECP request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("reaching roku %s: %w", d.info.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("roku %s rejected launch with HTTP %d", d.info.Name, resp.StatusCode)
	}

	return nil
}

func (d *Device) Close() error {
	return nil
}
