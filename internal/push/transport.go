package push

import (
	"context"
	"time"

	"github.com/ryanklein/heimdallr/internal/blocklist"
	"github.com/ryanklein/heimdallr/internal/netconf"
)

// Target identifies one device in the distribution run.
type Target struct {
	// Host is the device hostname or address.
	Host string

	// Port optionally overrides the dialer's default NETCONF port.
	Port int
}

// Credentials authenticate every target in a run. There is no per-target
// override: one username/password pair is shared across the fleet, passed
// explicitly rather than held in package state.
type Credentials struct {
	Username string
	Password string
}

// Session is the per-device protocol surface the engine drives. Each method
// is a single blocking network operation; a failed session is closed and
// discarded, never reused.
type Session interface {
	Lock(ctx context.Context) error
	EditConfig(ctx context.Context, fragment *blocklist.Fragment) error
	Validate(ctx context.Context) error
	Commit(ctx context.Context, comment string) error
	Unlock(ctx context.Context) error
	Close() error
}

// Dialer opens a Session to one target. Implementations must be safe for
// concurrent use; the coordinator may dial several targets at once.
type Dialer interface {
	Dial(ctx context.Context, target Target) (Session, error)
}

// NetconfDialer opens real NETCONF-over-SSH sessions.
type NetconfDialer struct {
	// Credentials are used for every target.
	Credentials Credentials

	// Port is the default NETCONF port (0 means netconf.DefaultPort);
	// a target's own Port field takes precedence.
	Port int

	// DialTimeout bounds connection establishment per device.
	DialTimeout time.Duration
}

// Dial implements Dialer.
func (d *NetconfDialer) Dial(ctx context.Context, target Target) (Session, error) {
	port := target.Port
	if port == 0 {
		port = d.Port
	}

	return netconf.Dial(ctx, netconf.Config{
		Host:        target.Host,
		Port:        port,
		Username:    d.Credentials.Username,
		Password:    d.Credentials.Password,
		DialTimeout: d.DialTimeout,
	})
}
