package device

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/huin/goupnp"
)

// rokuSearchTarget is the SSDP search target Roku devices answer to; their
// reported location is the ECP endpoint itself.
const rokuSearchTarget = "roku:ecp"

// Discover scans the local network for castable devices via SSDP. A
// discovery error on one protocol does not abort the other; partial
// results are returned.
func Discover(ctx context.Context, window time.Duration) ([]Info, error) {
	ctx, cancel := context.WithTimeout(ctx, window)
	defer cancel()

	var devices []Info

	rokus, err := discoverTarget(ctx, rokuSearchTarget, TypeRoku)
	if err != nil {
		slog.Warn("roku discovery error", "error", err)
	}
	devices = append(devices, rokus...)

	renderers, err := discoverTarget(ctx, "urn:schemas-upnp-org:device:MediaRenderer:1", TypeDLNA)
	if err != nil {
		slog.Warn("DLNA discovery error", "error", err)
	}
	devices = append(devices, renderers...)

	return devices, nil
}

func discoverTarget(ctx context.Context, target string, dtype Type) ([]Info, error) {
	results, err := goupnp.DiscoverDevicesCtx(ctx, target)
	if err != nil {
		return nil, err
	}

	var devices []Info
	for _, r := range results {
		if r.Root == nil {
			continue
		}
		devices = append(devices, Info{
			Name:    r.Root.Device.FriendlyName,
			Type:    dtype,
			Address: addressFor(dtype, r.Location),
		})
	}
	return devices, nil
}

// addressFor keeps the full description URL for DLNA renderers (the
// AVTransport client needs it) but reduces Roku locations to the bare
// host, matching how registry entries are written.
func addressFor(dtype Type, location *url.URL) string {
	if dtype == TypeRoku {
		return location.Hostname()
	}
	return location.String()
}
