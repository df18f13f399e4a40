package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a run configuration file.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates run configuration YAML.
func Parse(data []byte) (*RunConfig, error) {
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Example returns a commented example configuration, used by the CLI to
// bootstrap a new fleet file.
func Example() string {
	return `# Heimdallr run configuration
#
# Security note: passwords are NEVER stored in this file. They are
# prompted interactively or read from HEIMDALLR_PASSWORD.
version: 1

# The named block-list to extend on every device.
list_name: edge-blocklist

# Optional commit-log comment applied on each device.
comment: ""

# Devices to update. A ":port" suffix overrides the default port.
targets:
  - edge-fw-01.example.net
  - edge-fw-02.example.net:2830

# IPv4 addresses/networks to add. More can be given as CLI arguments.
addresses:
  - 198.51.100.7
  - 203.0.113.0/24

# SSH username (can be overridden with --username).
username: automation

# Default NETCONF-over-SSH port.
port: 830

# Concurrent device sessions; below 2 means one device at a time.
workers: 1

# Per-protocol-step timeout in seconds.
step_timeout_seconds: 30
`
}
