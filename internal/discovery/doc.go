// Package discovery finds NETCONF-capable devices on the local network
// via mDNS/DNS-SD.
//
// Devices advertising the "_netconf-ssh._tcp" service are collected during
// a bounded browse window and surfaced with their resolved address, port,
// and any TXT metadata (vendor, model). Discovery is a convenience for
// building a fleet file; a distribution run never depends on it.
package discovery
