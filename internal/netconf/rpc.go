package netconf

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/ryanklein/heimdallr/internal/blocklist"
)

// Capability URNs this client cares about. The base capability is mandatory;
// candidate and validate gate the transactional operations.
const (
	BaseCapability      = "urn:ietf:params:netconf:base:1.0"
	CandidateCapability = "urn:ietf:params:netconf:capability:candidate:1.0"
	ValidateCapability  = "urn:ietf:params:netconf:capability:validate:1.0"
)

// helloMessage is the session-establishment message exchanged by both peers.
type helloMessage struct {
	XMLName      xml.Name `xml:"urn:ietf:params:xml:ns:netconf:base:1.0 hello"`
	Capabilities []string `xml:"capabilities>capability"`
	SessionID    uint64   `xml:"session-id,omitempty"`
}

// clientHello returns the serialized hello message this client sends.
func clientHello() ([]byte, error) {
	hello := helloMessage{
		Capabilities: []string{BaseCapability},
	}
	data, err := xml.Marshal(hello)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal hello: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}

// parseHello decodes the peer's hello message.
func parseHello(data []byte) (*helloMessage, error) {
	var hello helloMessage
	if err := xml.Unmarshal(data, &hello); err != nil {
		return nil, fmt.Errorf("failed to parse hello: %w", err)
	}
	if hello.SessionID == 0 {
		return nil, fmt.Errorf("peer hello carries no session-id")
	}
	return &hello, nil
}

// RPCError is a single <rpc-error> element from an <rpc-reply>. The device
// reports what went wrong (lock held elsewhere, rejected config, failed
// validation) through these; the fields are surfaced verbatim so the
// operator sees the device's own diagnostics.
type RPCError struct {
	Type     string `xml:"error-type"`
	Tag      string `xml:"error-tag"`
	Severity string `xml:"error-severity"`
	Path     string `xml:"error-path"`
	Message  string `xml:"error-message"`
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = e.Tag
	}
	if e.Path != "" {
		return fmt.Sprintf("rpc-error %s (%s) at %s: %s", e.Tag, e.Severity, strings.TrimSpace(e.Path), msg)
	}
	return fmt.Sprintf("rpc-error %s (%s): %s", e.Tag, e.Severity, msg)
}

// IsLockDenied reports whether the device rejected a lock request because
// another session holds the lock.
func (e *RPCError) IsLockDenied() bool {
	return e.Tag == "lock-denied" || e.Tag == "in-use"
}

// rpcReply is the envelope of every operation response.
type rpcReply struct {
	XMLName   xml.Name   `xml:"rpc-reply"`
	MessageID string     `xml:"message-id,attr"`
	OK        *struct{}  `xml:"ok"`
	Errors    []RPCError `xml:"rpc-error"`
}

// firstError returns the first error-severity entry, or nil if the reply
// carries only warnings (or nothing).
func (r *rpcReply) firstError() *RPCError {
	for i := range r.Errors {
		if r.Errors[i].Severity != "warning" {
			return &r.Errors[i]
		}
	}
	return nil
}

// parseReply decodes an <rpc-reply> and returns the device's error, if any.
func parseReply(data []byte) (*rpcReply, error) {
	var reply rpcReply
	if err := xml.Unmarshal(data, &reply); err != nil {
		return nil, fmt.Errorf("failed to parse rpc-reply: %w", err)
	}
	return &reply, nil
}

// rpcEnvelope wraps an operation payload in an <rpc> element with a
// message-id attribute.
func rpcEnvelope(messageID uint64, operation []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	fmt.Fprintf(&buf, `<rpc message-id="%d" xmlns="%s">`, messageID, BaseCapability)
	buf.Write(operation)
	buf.WriteString(`</rpc>`)
	return buf.Bytes()
}

// Operation payload construction. Each helper returns the inner XML of one
// protocol operation; rpcEnvelope adds the outer <rpc> element.

func lockOperation() []byte {
	return []byte(`<lock><target><candidate/></target></lock>`)
}

func unlockOperation() []byte {
	return []byte(`<unlock><target><candidate/></target></unlock>`)
}

func validateOperation() []byte {
	return []byte(`<validate><source><candidate/></source></validate>`)
}

// commitOperation renders a plain <commit/> or, when the operator supplied
// a comment, the vendor commit RPC that attaches a log entry to the device's
// commit history.
func commitOperation(comment string) ([]byte, error) {
	if comment == "" {
		return []byte(`<commit/>`), nil
	}

	var buf bytes.Buffer
	buf.WriteString(`<commit-configuration><log>`)
	if err := xml.EscapeText(&buf, []byte(comment)); err != nil {
		return nil, fmt.Errorf("failed to escape commit comment: %w", err)
	}
	buf.WriteString(`</log></commit-configuration>`)
	return buf.Bytes(), nil
}

// Config subtree types for the edit-config payload. The change is a merge:
// it adds prefix-list items under the named list and touches nothing else.
type prefixListItem struct {
	Name string `xml:"name"`
}

type prefixListElem struct {
	Name  string           `xml:"name"`
	Items []prefixListItem `xml:"prefix-list-item"`
}

type policyOptions struct {
	PrefixLists []prefixListElem `xml:"prefix-list"`
}

type configuration struct {
	XMLName       xml.Name      `xml:"configuration"`
	PolicyOptions policyOptions `xml:"policy-options"`
}

// editConfigOperation renders the candidate edit that adds the fragment's
// entries to the named block-list. default-operation merge preserves all
// unrelated configuration on the device.
func editConfigOperation(fragment *blocklist.Fragment) ([]byte, error) {
	items := make([]prefixListItem, 0, fragment.Len())
	for _, entry := range fragment.Entries() {
		items = append(items, prefixListItem{Name: entry.CIDR()})
	}

	tree := configuration{
		PolicyOptions: policyOptions{
			PrefixLists: []prefixListElem{
				{Name: fragment.Name(), Items: items},
			},
		},
	}

	inner, err := xml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config fragment: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(`<edit-config><target><candidate/></target>`)
	buf.WriteString(`<default-operation>merge</default-operation>`)
	buf.WriteString(`<config>`)
	buf.Write(inner)
	buf.WriteString(`</config></edit-config>`)
	return buf.Bytes(), nil
}
