package discovery

import (
	"net"
	"testing"

	"github.com/grandcat/zeroconf"
)

// TestParseServiceEntry tests converting mDNS entries into devices
func TestParseServiceEntry(t *testing.T) {
	scanner := NewScanner()

	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantIP   string
		wantPort int
	}{
		{
			name: "Valid: IPv4 entry with port",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "edge-fw-01"},
				HostName:      "edge-fw-01.local.",
				Port:          830,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.10")},
				Text:          []string{"vendor=juniper", "model=srx300"},
			},
			wantIP:   "192.168.1.10",
			wantPort: 830,
		},
		{
			name: "Valid: missing port gets the NETCONF default",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "edge-fw-02"},
				HostName:      "edge-fw-02.local.",
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.11")},
			},
			wantIP:   "192.168.1.11",
			wantPort: DefaultPort,
		},
		{
			name: "Invalid: no hostname",
			entry: &zeroconf.ServiceEntry{
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.12")},
			},
			wantNil: true,
		},
		{
			name: "Invalid: no address",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "ghost"},
				HostName:      "ghost.local.",
				Port:          830,
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device := scanner.parseServiceEntry(tt.entry)
			if tt.wantNil {
				if device != nil {
					t.Fatalf("parseServiceEntry() = %v, want nil", device)
				}
				return
			}
			if device == nil {
				t.Fatal("parseServiceEntry() = nil, want device")
			}
			if device.IP != tt.wantIP {
				t.Errorf("IP = %q, want %q", device.IP, tt.wantIP)
			}
			if device.Port != tt.wantPort {
				t.Errorf("Port = %d, want %d", device.Port, tt.wantPort)
			}
			if device.DiscoveredAt.IsZero() {
				t.Error("DiscoveredAt not set")
			}
		})
	}
}

// TestDeviceHelpers tests the address and metadata accessors
func TestDeviceHelpers(t *testing.T) {
	device := &Device{
		Name:     "edge-fw-01",
		Hostname: "edge-fw-01.local.",
		IP:       "192.168.1.10",
		Port:     830,
		Metadata: map[string]string{"vendor": "juniper", "model": "srx300"},
	}

	if got := device.Address(); got != "192.168.1.10:830" {
		t.Errorf("Address() = %q", got)
	}
	if got := device.Vendor(); got != "juniper" {
		t.Errorf("Vendor() = %q", got)
	}
	if got := device.Model(); got != "srx300" {
		t.Errorf("Model() = %q", got)
	}

	target := device.Target()
	if target.Host != "192.168.1.10" || target.Port != 830 {
		t.Errorf("Target() = %+v", target)
	}
}
