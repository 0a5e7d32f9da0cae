package device

import (
	"errors"
	"testing"

	"github.com/stupside/autocast/internal/app"
)

func testRegistry() *Registry {
	return NewRegistry([]app.DeviceConfig{
		{Name: "Living Room TV", Address: "192.168.1.100", Type: "roku"},
		{Name: "Bedroom TV", Address: "192.168.1.101", Type: "chromecast"},
	})
}

func TestRegistryFind(t *testing.T) {
	r := testRegistry()

	d, err := r.Find("Living Room TV")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if d.Address != "192.168.1.100" || d.Type != TypeRoku {
		t.Errorf("Find() = %+v", d)
	}
}

func TestRegistryFindByAddress(t *testing.T) {
	r := testRegistry()

	d, err := r.Find("192.168.1.101")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if d.Name != "Bedroom TV" {
		t.Errorf("Find() = %+v", d)
	}
}

func TestRegistryFindUnknown(t *testing.T) {
	r := testRegistry()

	if _, err := r.Find("Unknown Room"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find() error = %v, want ErrNotFound", err)
	}
	// Names match exactly, not case-insensitively.
	if _, err := r.Find("living room tv"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find() error = %v, want ErrNotFound", err)
	}
}

func TestInfoEndpoint(t *testing.T) {
	tests := []struct {
		address string
		want    string
	}{
		{"192.168.1.100", "http://192.168.1.100:8060"},
		{"192.168.1.100:9090", "http://192.168.1.100:9090"},
		{"http://192.168.1.50:49152/desc.xml", "http://192.168.1.50:49152/desc.xml"},
	}
	for _, tc := range tests {
		if got := (Info{Address: tc.address}).Endpoint(); got != tc.want {
			t.Errorf("Endpoint(%q) = %q, want %q", tc.address, got, tc.want)
		}
	}
}
