package blocklist

import (
	"fmt"
	"net/netip"
	"strings"
)

// AddressEntry is a single validated IPv4 address or network in canonical
// string form (e.g. "203.0.113.9" or "203.0.113.0/24"). Entries can only be
// constructed through ParseEntry, so holding one implies it passed IPv4
// syntactic validation. The zero value is invalid and reports IsValid false.
type AddressEntry struct {
	text      string
	prefix    netip.Prefix
	isNetwork bool
}

// ParseEntry validates and canonicalizes a single IPv4 address or network
// string. Plain addresses ("a.b.c.d") and CIDR networks ("a.b.c.d/n") are
// accepted; IPv6, 4-in-6 mapped forms, and malformed input are rejected.
func ParseEntry(s string) (AddressEntry, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return AddressEntry{}, fmt.Errorf("empty address entry")
	}

	if strings.Contains(s, "/") {
		prefix, err := netip.ParsePrefix(s)
		if err != nil {
			return AddressEntry{}, fmt.Errorf("invalid IPv4 network %q: %w", s, err)
		}
		if !prefix.Addr().Is4() {
			return AddressEntry{}, fmt.Errorf("not an IPv4 network: %q", s)
		}
		return AddressEntry{
			text:      prefix.String(),
			prefix:    prefix,
			isNetwork: true,
		}, nil
	}

	addr, err := netip.ParseAddr(s)
	if err != nil {
		return AddressEntry{}, fmt.Errorf("invalid IPv4 address %q: %w", s, err)
	}
	if !addr.Is4() {
		return AddressEntry{}, fmt.Errorf("not an IPv4 address: %q", s)
	}

	return AddressEntry{
		text:   addr.String(),
		prefix: netip.PrefixFrom(addr, addr.BitLen()),
	}, nil
}

// MustEntry is like ParseEntry but panics on invalid input.
// Intended for tests and compile-time-known constants.
func MustEntry(s string) AddressEntry {
	entry, err := ParseEntry(s)
	if err != nil {
		panic(err)
	}
	return entry
}

// InvalidEntry records one input string that failed IPv4 validation,
// together with the reason, so callers can report it without aborting.
type InvalidEntry struct {
	Raw string
	Err error
}

// ParseEntries validates a list of address strings. Valid entries are
// returned in input order; invalid ones are collected separately rather than
// aborting the whole parse, so the caller decides whether to warn or fail.
func ParseEntries(raw []string) ([]AddressEntry, []InvalidEntry) {
	entries := make([]AddressEntry, 0, len(raw))
	var invalid []InvalidEntry

	for _, s := range raw {
		entry, err := ParseEntry(s)
		if err != nil {
			invalid = append(invalid, InvalidEntry{Raw: s, Err: err})
			continue
		}
		entries = append(entries, entry)
	}

	return entries, invalid
}

// String returns the canonical string form of the entry.
func (e AddressEntry) String() string {
	return e.text
}

// Prefix returns the entry as a netip.Prefix. Plain addresses are returned
// as /32 prefixes.
func (e AddressEntry) Prefix() netip.Prefix {
	return e.prefix
}

// IsNetwork reports whether the entry was given in CIDR form.
func (e AddressEntry) IsNetwork() bool {
	return e.isNetwork
}

// IsValid reports whether the entry was produced by ParseEntry.
func (e AddressEntry) IsValid() bool {
	return e.text != ""
}

// CIDR returns the entry in CIDR form regardless of how it was given.
// Plain addresses render as "a.b.c.d/32"; this is the form most devices
// expect in prefix-list items.
func (e AddressEntry) CIDR() string {
	if e.isNetwork {
		return e.text
	}
	return e.prefix.String()
}
