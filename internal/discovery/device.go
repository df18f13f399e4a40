package discovery

import (
	"fmt"
	"time"

	"github.com/ryanklein/heimdallr/internal/push"
)

// Device represents a NETCONF-capable device discovered on the network
type Device struct {
	// Name is the mDNS instance name
	Name string

	// Hostname is the advertised host name
	Hostname string

	// IP is the resolved address
	IP string

	// Port is the NETCONF-over-SSH port
	Port int

	// Metadata holds any TXT record key/value pairs
	Metadata map[string]string

	// DiscoveredAt records when the device was found
	DiscoveredAt time.Time
}

// String returns a human-readable description of the device
func (d *Device) String() string {
	return fmt.Sprintf("%s (%s:%d)", d.Name, d.IP, d.Port)
}

// Address returns the device's address in "host:port" form
func (d *Device) Address() string {
	return fmt.Sprintf("%s:%d", d.IP, d.Port)
}

// Target converts the discovered device into a push target.
func (d *Device) Target() push.Target {
	return push.Target{Host: d.IP, Port: d.Port}
}

// Vendor returns the advertised vendor TXT record, if any.
func (d *Device) Vendor() string {
	return d.Metadata["vendor"]
}

// Model returns the advertised model TXT record, if any.
func (d *Device) Model() string {
	return d.Metadata["model"]
}
