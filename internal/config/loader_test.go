package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ryanklein/heimdallr/internal/push"
)

const validYAML = `
version: 1
list_name: edge-blocklist
comment: "ticket SEC-1234"
targets:
  - edge-fw-01.example.net
  - edge-fw-02.example.net:2830
addresses:
  - 198.51.100.7
  - 203.0.113.0/24
username: automation
port: 830
workers: 4
step_timeout_seconds: 45
`

// TestParse tests decoding and field binding of a full run configuration
func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if cfg.ListName != "edge-blocklist" {
		t.Errorf("ListName = %q", cfg.ListName)
	}
	if cfg.Comment != "ticket SEC-1234" {
		t.Errorf("Comment = %q", cfg.Comment)
	}
	if len(cfg.Targets) != 2 || len(cfg.Addresses) != 2 {
		t.Errorf("Targets/Addresses = %d/%d, want 2/2", len(cfg.Targets), len(cfg.Addresses))
	}
	if cfg.Username != "automation" || cfg.Port != 830 || cfg.Workers != 4 {
		t.Errorf("run options = %q/%d/%d", cfg.Username, cfg.Port, cfg.Workers)
	}
	if cfg.StepTimeout() != 45*time.Second {
		t.Errorf("StepTimeout() = %v, want 45s", cfg.StepTimeout())
	}
}

// TestParseValidation tests that invalid files are rejected as
// invalid-configuration errors
func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "Missing list_name",
			yaml: "version: 1\ntargets: [fw-01]\n",
		},
		{
			name: "Empty target set",
			yaml: "version: 1\nlist_name: edge\ntargets: []\n",
		},
		{
			name: "Blank target host",
			yaml: "version: 1\nlist_name: edge\ntargets: ['  ']\n",
		},
		{
			name: "Unsupported version",
			yaml: "version: 2\nlist_name: edge\ntargets: [fw-01]\n",
		},
		{
			name: "Negative workers",
			yaml: "version: 1\nlist_name: edge\ntargets: [fw-01]\nworkers: -1\n",
		},
		{
			name: "Negative timeout",
			yaml: "version: 1\nlist_name: edge\ntargets: [fw-01]\nstep_timeout_seconds: -5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() error = nil, want validation failure")
			}
			if !push.IsInvalidConfiguration(err) {
				t.Errorf("Parse() error = %v, want invalid-configuration", err)
			}
			if cfg != nil {
				t.Errorf("Parse() returned config alongside error")
			}
		})
	}
}

// TestParseMalformedYAML tests that broken YAML is rejected
func TestParseMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("{not yaml")); err == nil {
		t.Fatal("Parse() error = nil for malformed YAML")
	}
}

// TestPushTargets tests port-suffix splitting
func TestPushTargets(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	targets, err := cfg.PushTargets()
	if err != nil {
		t.Fatalf("PushTargets() error: %v", err)
	}

	want := []push.Target{
		{Host: "edge-fw-01.example.net"},
		{Host: "edge-fw-02.example.net", Port: 2830},
	}
	if len(targets) != len(want) {
		t.Fatalf("got %d targets, want %d", len(targets), len(want))
	}
	for i := range want {
		if targets[i] != want[i] {
			t.Errorf("targets[%d] = %+v, want %+v", i, targets[i], want[i])
		}
	}
}

// TestPushTargetsBadPort tests rejection of unusable port suffixes
func TestPushTargetsBadPort(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"Non-numeric port", "fw-01:abc"},
		{"Port zero", "fw-01:0"},
		{"Port out of range", "fw-01:70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &RunConfig{
				Version:  1,
				ListName: "edge",
				Targets:  []string{tt.target},
			}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate() error: %v", err)
			}
			if _, err := cfg.PushTargets(); err == nil {
				t.Errorf("PushTargets() error = nil for %q", tt.target)
			} else if !push.IsInvalidConfiguration(err) {
				t.Errorf("PushTargets() error = %v, want invalid-configuration", err)
			}
		})
	}
}

// TestLoad tests reading a configuration from disk
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fleet.yaml")
	if err := os.WriteFile(path, []byte(validYAML), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ListName != "edge-blocklist" {
		t.Errorf("ListName = %q", cfg.ListName)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() error = nil for missing file")
	}
}

// TestExampleParses tests that the bootstrap example is itself valid
func TestExampleParses(t *testing.T) {
	if _, err := Parse([]byte(Example())); err != nil {
		t.Fatalf("example configuration does not validate: %v", err)
	}
}
