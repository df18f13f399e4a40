// Package blocklist models the configuration change Heimdallr distributes:
// a named block-list and the IPv4 addresses or networks to add to it.
//
// The package does no I/O. It validates and canonicalizes raw address
// strings (ParseEntry, ParseEntries) and assembles them into an immutable
// Fragment (Build) that every device session consumes read-only.
//
// # Usage Example
//
//	entries, invalid := blocklist.ParseEntries([]string{"198.51.100.7", "203.0.113.0/24"})
//	for _, bad := range invalid {
//	    fmt.Printf("skipping %q: %v\n", bad.Raw, bad.Err)
//	}
//
//	fragment, err := blocklist.Build("edge-blocklist", entries, "ticket NET-4211")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Ordering and Duplicates
//
// Entry order is preserved exactly as given; the package never sorts or
// deduplicates. Repeated entries are legal (the device's merge semantics
// make re-adding an existing prefix a no-op) and can be inspected with
// Fragment.Duplicates for warning purposes.
package blocklist
