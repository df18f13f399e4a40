package netconf

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"

	"github.com/ryanklein/heimdallr/internal/blocklist"
	"github.com/ryanklein/heimdallr/internal/logging"
)

const (
	// DefaultPort is the IANA-assigned port for NETCONF over SSH.
	DefaultPort = 830

	// DefaultDialTimeout bounds the TCP connect plus SSH handshake.
	DefaultDialTimeout = 15 * time.Second

	// netconfSubsystem is the SSH subsystem name devices expose for NETCONF.
	netconfSubsystem = "netconf"
)

// Config carries everything needed to open one NETCONF session.
type Config struct {
	// Host is the device hostname or address.
	Host string

	// Port is the NETCONF-over-SSH port (0 means DefaultPort).
	Port int

	// Username and Password authenticate the SSH connection. Credentials
	// are shared across a run and passed in explicitly; this package keeps
	// no ambient state.
	Username string
	Password string

	// DialTimeout bounds connection establishment (0 means
	// DefaultDialTimeout).
	DialTimeout time.Duration

	// HostKeyCallback verifies the device host key. When nil the host key
	// is not verified, which matches how fleet tools are typically run
	// against lab inventories; production use should supply a known_hosts
	// callback.
	HostKeyCallback ssh.HostKeyCallback
}

// Session is one NETCONF-over-SSH connection to one device. It owns the
// transport and exposes the protocol operations as sequential blocking
// calls. A Session is not safe for concurrent use; the coordinator drives
// one goroutine per session.
type Session struct {
	host      string
	client    *ssh.Client
	session   *ssh.Session
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	sessionID uint64
	caps      []string
	messageID uint64
}

// Dial opens an SSH connection to the device, requests the NETCONF
// subsystem, and exchanges hello messages. The returned session is in the
// Connected state and ready for Lock.
func Dial(ctx context.Context, cfg Config) (*Session, error) {
	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}
	dialTimeout := cfg.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = DefaultDialTimeout
	}
	hostKeyCallback := cfg.HostKeyCallback
	if hostKeyCallback == nil {
		hostKeyCallback = ssh.InsecureIgnoreHostKey()
	}

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(port))

	sshConfig := &ssh.ClientConfig{
		User: cfg.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(cfg.Password),
		},
		HostKeyCallback: hostKeyCallback,
		Timeout:         dialTimeout,
	}

	dialer := net.Dialer{Timeout: dialTimeout}
	netConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	// Bound the SSH handshake and hello exchange with the context deadline
	// so an unresponsive device cannot hang the session forever.
	if deadline, ok := ctx.Deadline(); ok {
		_ = netConn.SetDeadline(deadline)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(netConn, addr, sshConfig)
	if err != nil {
		_ = netConn.Close()
		return nil, fmt.Errorf("SSH handshake with %s failed: %w", addr, err)
	}
	client := ssh.NewClient(sshConn, chans, reqs)

	session, err := client.NewSession()
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to open SSH session on %s: %w", addr, err)
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		_ = session.Close()
		_ = client.Close()
		return nil, fmt.Errorf("failed to open stdin pipe on %s: %w", addr, err)
	}
	stdout, err := session.StdoutPipe()
	if err != nil {
		_ = session.Close()
		_ = client.Close()
		return nil, fmt.Errorf("failed to open stdout pipe on %s: %w", addr, err)
	}

	if err := session.RequestSubsystem(netconfSubsystem); err != nil {
		_ = session.Close()
		_ = client.Close()
		return nil, fmt.Errorf("device %s does not provide the %q subsystem: %w", addr, netconfSubsystem, err)
	}

	s := &Session{
		host:    cfg.Host,
		client:  client,
		session: session,
		stdin:   stdin,
		stdout:  bufio.NewReader(stdout),
	}

	if err := s.exchangeHello(); err != nil {
		_ = s.Close()
		return nil, err
	}

	// Handshake done; the per-operation context deadlines take over.
	_ = netConn.SetDeadline(time.Time{})

	logging.Debug("NETCONF session established",
		zap.String("host", cfg.Host),
		zap.Uint64("session_id", s.sessionID),
	)

	return s, nil
}

// exchangeHello sends the client hello and reads the device's, recording
// the session-id and capability list.
func (s *Session) exchangeHello() error {
	hello, err := clientHello()
	if err != nil {
		return err
	}
	if err := WriteMessage(s.stdin, hello); err != nil {
		return fmt.Errorf("failed to send hello to %s: %w", s.host, err)
	}

	raw, err := ReadMessage(s.stdout)
	if err != nil {
		return fmt.Errorf("failed to read hello from %s: %w", s.host, err)
	}

	peer, err := parseHello(raw)
	if err != nil {
		return fmt.Errorf("invalid hello from %s: %w", s.host, err)
	}

	s.sessionID = peer.SessionID
	s.caps = peer.Capabilities
	return nil
}

// SessionID returns the device-assigned session identifier.
func (s *Session) SessionID() uint64 {
	return s.sessionID
}

// Capabilities returns the capability URNs the device announced.
func (s *Session) Capabilities() []string {
	caps := make([]string, len(s.caps))
	copy(caps, s.caps)
	return caps
}

// Lock acquires the exclusive edit lock on the candidate datastore.
// The device rejects the request if another session holds the lock.
func (s *Session) Lock(ctx context.Context) error {
	return s.exec(ctx, "lock", lockOperation())
}

// EditConfig stages the fragment as a candidate edit with merge semantics:
// the named list and its entries are added, unrelated configuration is
// untouched.
func (s *Session) EditConfig(ctx context.Context, fragment *blocklist.Fragment) error {
	op, err := editConfigOperation(fragment)
	if err != nil {
		return err
	}
	return s.exec(ctx, "edit-config", op)
}

// Validate asks the device to check the candidate without activating it.
func (s *Session) Validate(ctx context.Context) error {
	return s.exec(ctx, "validate", validateOperation())
}

// Commit activates the candidate configuration. A non-empty comment is
// attached to the device's commit log entry.
func (s *Session) Commit(ctx context.Context, comment string) error {
	op, err := commitOperation(comment)
	if err != nil {
		return err
	}
	return s.exec(ctx, "commit", op)
}

// Unlock releases the candidate lock.
func (s *Session) Unlock(ctx context.Context) error {
	return s.exec(ctx, "unlock", unlockOperation())
}

// Close tears down the SSH session and connection. Safe to call after a
// failed operation; errors from the already-broken transport are ignored.
func (s *Session) Close() error {
	if s.session != nil {
		_ = s.session.Close()
		s.session = nil
	}
	if s.client != nil {
		err := s.client.Close()
		s.client = nil
		return err
	}
	return nil
}

// exec performs one RPC round-trip: envelope, write, read reply, surface
// any device-reported error. The context bounds the whole round-trip; on
// cancellation the session is left unusable and must be closed, which the
// push layer does on every failure path.
func (s *Session) exec(ctx context.Context, operation string, payload []byte) error {
	s.messageID++
	id := s.messageID

	type execResult struct {
		reply *rpcReply
		err   error
	}
	// The round-trip runs in its own goroutine so a context timeout can
	// abandon a stuck transport; the buffered channel lets the goroutine
	// finish after abandonment without leaking a blocked send.
	done := make(chan execResult, 1)

	go func() {
		if err := WriteMessage(s.stdin, rpcEnvelope(id, payload)); err != nil {
			done <- execResult{err: fmt.Errorf("%s: failed to send rpc: %w", operation, err)}
			return
		}
		raw, err := ReadMessage(s.stdout)
		if err != nil {
			done <- execResult{err: fmt.Errorf("%s: failed to read rpc-reply: %w", operation, err)}
			return
		}
		reply, err := parseReply(raw)
		if err != nil {
			done <- execResult{err: fmt.Errorf("%s: %w", operation, err)}
			return
		}
		done <- execResult{reply: reply}
	}()

	select {
	case <-ctx.Done():
		logging.LogRPC(s.host, operation, id, ctx.Err())
		return fmt.Errorf("%s on %s: %w", operation, s.host, ctx.Err())
	case res := <-done:
		if res.err != nil {
			logging.LogRPC(s.host, operation, id, res.err)
			return res.err
		}
		if rpcErr := res.reply.firstError(); rpcErr != nil {
			logging.LogRPC(s.host, operation, id, rpcErr)
			return fmt.Errorf("%s rejected by %s: %w", operation, s.host, rpcErr)
		}
		logging.LogRPC(s.host, operation, id, nil)
		return nil
	}
}
