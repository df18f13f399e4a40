package blocklist

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyListName is returned by Build when no list name is given.
// A fragment without a list name can never be applied to a device, so this
// is a pre-flight failure: no network interaction has happened yet.
var ErrEmptyListName = errors.New("block-list name must not be empty")

// Fragment is the in-memory representation of the desired configuration
// change: a named block-list plus the address entries to add to it, with an
// optional operator comment for the device commit log.
//
// A Fragment is immutable once built. It is constructed once per run and
// shared read-only across every device session, so it requires no
// synchronization. Entry order matches the input order given to Build;
// no deduplication or sorting is performed.
type Fragment struct {
	name    string
	entries []AddressEntry
	comment string
}

// Build constructs a Fragment for the named block-list.
// It fails only when listName is empty; an empty entry slice is allowed
// (the push becomes a no-op merge but is still a valid transaction).
// The entries slice is copied, so later mutation of the caller's slice
// does not affect the fragment.
func Build(listName string, entries []AddressEntry, comment string) (*Fragment, error) {
	if strings.TrimSpace(listName) == "" {
		return nil, ErrEmptyListName
	}

	copied := make([]AddressEntry, len(entries))
	copy(copied, entries)

	return &Fragment{
		name:    listName,
		entries: copied,
		comment: comment,
	}, nil
}

// Name returns the target block-list name. Never empty.
func (f *Fragment) Name() string {
	return f.name
}

// Comment returns the operator comment, which may be empty.
func (f *Fragment) Comment() string {
	return f.comment
}

// Entries returns a copy of the address entries in input order.
func (f *Fragment) Entries() []AddressEntry {
	entries := make([]AddressEntry, len(f.entries))
	copy(entries, f.entries)
	return entries
}

// Len returns the number of address entries.
func (f *Fragment) Len() int {
	return len(f.entries)
}

// Duplicates returns the entries that appear more than once, in first-seen
// order. The fragment itself keeps duplicates (the device's merge semantics
// decide what repeated adds mean); this exists so the CLI can warn.
func (f *Fragment) Duplicates() []AddressEntry {
	seen := make(map[string]int, len(f.entries))
	var dupes []AddressEntry

	for _, entry := range f.entries {
		seen[entry.String()]++
		if seen[entry.String()] == 2 {
			dupes = append(dupes, entry)
		}
	}

	return dupes
}

// String returns a human-readable one-line summary of the fragment.
func (f *Fragment) String() string {
	if f.comment == "" {
		return fmt.Sprintf("block-list %q (%d entries)", f.name, len(f.entries))
	}
	return fmt.Sprintf("block-list %q (%d entries, comment: %q)", f.name, len(f.entries), f.comment)
}
