package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/ryanklein/heimdallr/internal/push"
)

// RunConfig is the on-disk description of one distribution run: which
// devices to touch, which block-list to extend, and which addresses to add.
// Credentials are deliberately absent: the username comes from the file or
// a flag, but passwords are never stored and always prompted (or supplied
// via environment for scripting).
type RunConfig struct {
	Version int `yaml:"version"`

	// ListName is the named block-list to extend on every device.
	ListName string `yaml:"list_name"`

	// Comment is an optional operator comment for each device's commit log.
	Comment string `yaml:"comment,omitempty"`

	// Targets are device hostnames, optionally with a ":port" suffix.
	Targets []string `yaml:"targets"`

	// Addresses are the IPv4 addresses/networks to add. They may also be
	// given on the command line; the CLI appends those to this list.
	Addresses []string `yaml:"addresses,omitempty"`

	// Username is the default SSH username for the run.
	Username string `yaml:"username,omitempty"`

	// Port is the default NETCONF-over-SSH port (0 means 830).
	Port int `yaml:"port,omitempty"`

	// Workers is the maximum number of concurrent device sessions
	// (values below 2 mean sequential).
	Workers int `yaml:"workers,omitempty"`

	// StepTimeoutSeconds bounds each protocol step per device.
	StepTimeoutSeconds int `yaml:"step_timeout_seconds,omitempty"`
}

// Validate checks the pre-flight invariants that must hold before any
// device is contacted. Violations are reported as invalid-configuration
// errors, fatal to the whole run.
func (c *RunConfig) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("%w: unsupported config version %d (expected 1)", push.ErrInvalidConfiguration, c.Version)
	}
	if strings.TrimSpace(c.ListName) == "" {
		return fmt.Errorf("%w: list_name is required", push.ErrInvalidConfiguration)
	}
	if len(c.Targets) == 0 {
		return fmt.Errorf("%w: at least one target is required", push.ErrInvalidConfiguration)
	}
	for _, t := range c.Targets {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("%w: empty target host", push.ErrInvalidConfiguration)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", push.ErrInvalidConfiguration)
	}
	if c.StepTimeoutSeconds < 0 {
		return fmt.Errorf("%w: step_timeout_seconds must not be negative", push.ErrInvalidConfiguration)
	}
	return nil
}

// PushTargets converts the configured target strings into push targets,
// splitting optional ":port" suffixes.
func (c *RunConfig) PushTargets() ([]push.Target, error) {
	targets := make([]push.Target, 0, len(c.Targets))

	for _, raw := range c.Targets {
		raw = strings.TrimSpace(raw)

		host, portStr, err := net.SplitHostPort(raw)
		if err != nil {
			// No port suffix; the whole string is the host.
			targets = append(targets, push.Target{Host: raw})
			continue
		}

		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("%w: invalid port in target %q", push.ErrInvalidConfiguration, raw)
		}
		targets = append(targets, push.Target{Host: host, Port: port})
	}

	return targets, nil
}

// StepTimeout returns the configured per-step timeout, or zero when unset
// (the coordinator applies its default).
func (c *RunConfig) StepTimeout() time.Duration {
	return time.Duration(c.StepTimeoutSeconds) * time.Second
}
