package netconf

import (
	"strings"
	"testing"

	"github.com/ryanklein/heimdallr/internal/blocklist"
)

// TestParseHello tests hello message decoding
func TestParseHello(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantID  uint64
		wantErr bool
	}{
		{
			name: "Valid: server hello",
			data: `<hello xmlns="urn:ietf:params:xml:ns:netconf:base:1.0">
				<capabilities>
					<capability>urn:ietf:params:netconf:base:1.0</capability>
					<capability>urn:ietf:params:netconf:capability:candidate:1.0</capability>
				</capabilities>
				<session-id>4711</session-id>
			</hello>`,
			wantID: 4711,
		},
		{
			name: "Invalid: missing session-id",
			data: `<hello xmlns="urn:ietf:params:xml:ns:netconf:base:1.0">
				<capabilities>
					<capability>urn:ietf:params:netconf:base:1.0</capability>
				</capabilities>
			</hello>`,
			wantErr: true,
		},
		{
			name:    "Invalid: not XML",
			data:    "garbage",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hello, err := parseHello([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseHello() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if hello.SessionID != tt.wantID {
				t.Errorf("SessionID = %d, want %d", hello.SessionID, tt.wantID)
			}
		})
	}
}

// TestClientHello tests the hello this client sends
func TestClientHello(t *testing.T) {
	data, err := clientHello()
	if err != nil {
		t.Fatalf("clientHello() error: %v", err)
	}
	if !strings.Contains(string(data), BaseCapability) {
		t.Errorf("client hello missing base capability: %s", data)
	}
	if strings.Contains(string(data), "session-id") {
		t.Errorf("client hello must not carry a session-id: %s", data)
	}
}

// TestParseReply tests rpc-reply decoding and error extraction
func TestParseReply(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantErr  bool // parse failure
		wantRPC  bool // device-reported error present
		wantTag  string
		lockDeny bool
	}{
		{
			name: "Valid: ok reply",
			data: `<rpc-reply message-id="3" xmlns="urn:ietf:params:xml:ns:netconf:base:1.0"><ok/></rpc-reply>`,
		},
		{
			name: "Valid: lock-denied error",
			data: `<rpc-reply message-id="2" xmlns="urn:ietf:params:xml:ns:netconf:base:1.0">
				<rpc-error>
					<error-type>protocol</error-type>
					<error-tag>lock-denied</error-tag>
					<error-severity>error</error-severity>
					<error-message>lock held by session 99</error-message>
				</rpc-error>
			</rpc-reply>`,
			wantRPC:  true,
			wantTag:  "lock-denied",
			lockDeny: true,
		},
		{
			name: "Valid: validation failure",
			data: `<rpc-reply message-id="4" xmlns="urn:ietf:params:xml:ns:netconf:base:1.0">
				<rpc-error>
					<error-type>application</error-type>
					<error-tag>operation-failed</error-tag>
					<error-severity>error</error-severity>
					<error-message>candidate configuration is invalid</error-message>
				</rpc-error>
			</rpc-reply>`,
			wantRPC: true,
			wantTag: "operation-failed",
		},
		{
			name: "Valid: warning alone is not an error",
			data: `<rpc-reply message-id="5" xmlns="urn:ietf:params:xml:ns:netconf:base:1.0">
				<rpc-error>
					<error-tag>partial-operation</error-tag>
					<error-severity>warning</error-severity>
				</rpc-error>
				<ok/>
			</rpc-reply>`,
		},
		{
			name:    "Invalid: not XML",
			data:    "garbage",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := parseReply([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseReply() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}

			rpcErr := reply.firstError()
			if (rpcErr != nil) != tt.wantRPC {
				t.Fatalf("firstError() = %v, want present=%v", rpcErr, tt.wantRPC)
			}
			if rpcErr == nil {
				return
			}
			if rpcErr.Tag != tt.wantTag {
				t.Errorf("Tag = %q, want %q", rpcErr.Tag, tt.wantTag)
			}
			if rpcErr.IsLockDenied() != tt.lockDeny {
				t.Errorf("IsLockDenied() = %v, want %v", rpcErr.IsLockDenied(), tt.lockDeny)
			}
			if rpcErr.Error() == "" {
				t.Error("Error() returned empty string")
			}
		})
	}
}

// TestRPCEnvelope tests the rpc wrapper
func TestRPCEnvelope(t *testing.T) {
	data := rpcEnvelope(7, lockOperation())
	s := string(data)

	if !strings.Contains(s, `message-id="7"`) {
		t.Errorf("envelope missing message-id: %s", s)
	}
	if !strings.Contains(s, "<lock><target><candidate/></target></lock>") {
		t.Errorf("envelope missing operation payload: %s", s)
	}
}

// TestCommitOperation tests plain and commented commits
func TestCommitOperation(t *testing.T) {
	plain, err := commitOperation("")
	if err != nil {
		t.Fatalf("commitOperation(\"\") error: %v", err)
	}
	if string(plain) != "<commit/>" {
		t.Errorf("plain commit = %s, want <commit/>", plain)
	}

	commented, err := commitOperation("block scanner <10.0.0.1>")
	if err != nil {
		t.Fatalf("commitOperation(comment) error: %v", err)
	}
	s := string(commented)
	if !strings.Contains(s, "<commit-configuration><log>") {
		t.Errorf("commented commit missing log element: %s", s)
	}
	// The comment body must be escaped, never raw markup
	if strings.Contains(s, "<10.0.0.1>") {
		t.Errorf("comment not XML-escaped: %s", s)
	}
	if !strings.Contains(s, "&lt;10.0.0.1&gt;") {
		t.Errorf("escaped comment missing: %s", s)
	}
}

// TestEditConfigOperation tests the staged configuration payload
func TestEditConfigOperation(t *testing.T) {
	fragment, err := blocklist.Build("edge-blocklist", []blocklist.AddressEntry{
		blocklist.MustEntry("203.0.113.9"),
		blocklist.MustEntry("198.51.100.0/24"),
	}, "")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	data, err := editConfigOperation(fragment)
	if err != nil {
		t.Fatalf("editConfigOperation() error: %v", err)
	}
	s := string(data)

	for _, want := range []string{
		"<edit-config>",
		"<target><candidate/></target>",
		"<default-operation>merge</default-operation>",
		"<name>edge-blocklist</name>",
		"<prefix-list-item><name>203.0.113.9/32</name></prefix-list-item>",
		"<prefix-list-item><name>198.51.100.0/24</name></prefix-list-item>",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("edit-config payload missing %q:\n%s", want, s)
		}
	}

	// Entry order must survive into the payload
	first := strings.Index(s, "203.0.113.9/32")
	second := strings.Index(s, "198.51.100.0/24")
	if first < 0 || second < 0 || first > second {
		t.Errorf("entries out of order in payload:\n%s", s)
	}
}
