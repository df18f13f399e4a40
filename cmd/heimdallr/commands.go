package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ryanklein/heimdallr/internal/blocklist"
	"github.com/ryanklein/heimdallr/internal/config"
	"github.com/ryanklein/heimdallr/internal/discovery"
	"github.com/ryanklein/heimdallr/internal/logging"
	"github.com/ryanklein/heimdallr/internal/netconf"
	"github.com/ryanklein/heimdallr/internal/push"
	"github.com/ryanklein/heimdallr/internal/tui"
	"github.com/ryanklein/heimdallr/internal/ui"
)

// Command flags
var (
	configPath  string
	logLevel    string
	username    string
	comment     string
	listName    string
	defaultPort int
	workers     int
	stepTimeout int
	watch       bool
	scanTimeout int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Run configuration file (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log verbosity (debug, info, warn, error); default silent")

	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(initCmd)
}

// pushCmd distributes block-list entries across the fleet
var pushCmd = &cobra.Command{
	Use:   "push [addresses...]",
	Short: "Add addresses to the block-list on every device",
	Long: `Add IPv4 addresses and networks to the configured block-list on every
target device.

Addresses come from the configuration file's addresses list plus any given
as arguments. Every address is validated before any device is contacted; a
single malformed address aborts the whole run.

Each device gets its own transaction (lock, stage, validate, commit,
unlock). A failed device never affects another, and the command exits
non-zero when any device did not commit.

The SSH password is read from HEIMDALLR_PASSWORD or prompted.`,
	Example: `  # Push the addresses listed in the fleet file
  heimdallr push --config fleet.yaml

  # Add two more addresses on top of the file's list
  heimdallr push --config fleet.yaml 198.51.100.7 203.0.113.0/24

  # Four devices at a time, with a commit comment
  heimdallr push --config fleet.yaml --workers 4 --comment "ticket SEC-1234"

  # Live per-device progress view
  heimdallr push --config fleet.yaml --watch`,
	RunE: runPush,
}

func init() {
	pushCmd.Flags().StringVarP(&username, "username", "u", "", "SSH username (overrides config file)")
	pushCmd.Flags().StringVarP(&comment, "comment", "m", "", "Commit log comment (overrides config file)")
	pushCmd.Flags().StringVar(&listName, "list", "", "Block-list name (overrides config file)")
	pushCmd.Flags().IntVar(&defaultPort, "port", 0, "Default NETCONF-over-SSH port (overrides config file)")
	pushCmd.Flags().IntVar(&workers, "workers", 0, "Concurrent device sessions (overrides config file)")
	pushCmd.Flags().IntVar(&stepTimeout, "timeout", 0, "Per-step timeout in seconds (overrides config file)")
	pushCmd.Flags().BoolVar(&watch, "watch", false, "Show a live per-device progress view")
}

func runPush(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}
	defer logging.Sync()

	run, err := loadRun(cmd, args)
	if err != nil {
		return err
	}

	password, err := ui.ReadPassword(run.username)
	if err != nil {
		return err
	}

	fmt.Println(ui.Banner{
		ListName: run.fragment.Name(),
		Comment:  run.fragment.Comment(),
		Entries:  run.fragment.Len(),
		Targets:  len(run.targets),
		Workers:  run.workers,
	}.Render())
	fmt.Println()

	dialer := &push.NetconfDialer{
		Credentials: push.Credentials{Username: run.username, Password: password},
		Port:        run.port,
	}
	coord := push.NewCoordinator(dialer, run.fragment)
	coord.Workers = run.workers
	coord.StepTimeout = run.stepTimeout

	var results []push.Result
	if watch {
		results, err = tui.Watch(run.targets, func(observe func(push.StepEvent)) ([]push.Result, error) {
			coord.Observer = observe
			return coord.Run(cmd.Context(), run.targets)
		})
	} else {
		results, err = coord.Run(cmd.Context(), run.targets)
	}
	if err != nil {
		return err
	}

	fmt.Println(ui.NewReport(results).Render())

	if _, failed := push.Summary(results); failed > 0 {
		// The report above already explains each failure.
		logging.Sync()
		os.Exit(1)
	}
	return nil
}

// checkCmd validates a run without contacting any device
var checkCmd = &cobra.Command{
	Use:   "check [addresses...]",
	Short: "Validate a run configuration without touching any device",
	Long: `Run the full pre-flight validation for a push: load the configuration
file, validate every address, and build the configuration fragment. No
device is contacted and no password is needed.

This is the same validation a push performs before its first connection,
so a clean check means the run would not be rejected pre-flight.`,
	Example: `  # Validate the fleet file and its addresses
  heimdallr check --config fleet.yaml

  # Validate extra addresses along with the file
  heimdallr check --config fleet.yaml 198.51.100.7`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}
	defer logging.Sync()

	run, err := loadRun(cmd, args)
	if err != nil {
		return err
	}

	fmt.Printf("Configuration OK: %s\n", run.fragment)
	fmt.Printf("  Devices: %d\n", len(run.targets))
	for _, target := range run.targets {
		port := target.Port
		if port == 0 {
			port = run.port
		}
		fmt.Printf("    - %s:%d\n", target.Host, port)
	}
	for _, entry := range run.fragment.Entries() {
		fmt.Printf("  %s\n", entry.CIDR())
	}

	return nil
}

// discoverCmd scans the local network for NETCONF devices
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover NETCONF devices on the local network",
	Long: `Discover NETCONF-capable devices via mDNS/DNS-SD.

This listens for devices advertising the "_netconf-ssh._tcp" service and
prints each one's address, port, and advertised metadata. Useful when
building a fleet file; a push never depends on discovery.`,
	Example: `  # Scan for 10 seconds (default)
  heimdallr discover

  # Quick 3-second scan
  heimdallr discover --timeout 3`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&scanTimeout, "timeout", 10, "Scan timeout in seconds")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}
	defer logging.Sync()

	fmt.Printf("Scanning for NETCONF devices (timeout: %ds)...\n\n", scanTimeout)

	devices, err := discovery.ScanForDevices(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("No devices found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Not all devices advertise NETCONF over mDNS; a fleet file works without discovery")
		fmt.Println("  - Check that you are on the same network segment as the devices")
		fmt.Println("  - Try increasing --timeout for slower networks")
		return nil
	}

	fmt.Printf("Found %d device(s):\n\n", len(devices))

	for i, device := range devices {
		fmt.Printf("%d. %s\n", i+1, device.Hostname)
		fmt.Printf("   Address: %s\n", device.Address())
		if vendor := device.Vendor(); vendor != "" {
			fmt.Printf("   Vendor:  %s\n", vendor)
		}
		if model := device.Model(); model != "" {
			fmt.Printf("   Model:   %s\n", model)
		}
		fmt.Println()
	}

	fmt.Println("Add the addresses to a fleet file and run 'heimdallr check' to validate it")

	return nil
}

// initCmd writes an example run configuration
var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write an example run configuration",
	Long: `Write a commented example run configuration, to stdout or to the given
file. The file is a starting point for a fleet file; it never holds
passwords.`,
	Example: `  # Print the example to stdout
  heimdallr init

  # Bootstrap a fleet file
  heimdallr init fleet.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	example := config.Example()

	if len(args) == 0 {
		fmt.Print(example)
		return nil
	}

	path := args[0]
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists, refusing to overwrite", path)
	}
	if err := os.WriteFile(path, []byte(example), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}

// run holds the fully validated inputs of one distribution run.
type run struct {
	fragment    *blocklist.Fragment
	targets     []push.Target
	username    string
	port        int
	workers     int
	stepTimeout time.Duration
}

// loadRun performs the shared pre-flight for push and check: load the
// configuration file, apply flag overrides, and validate every address.
// Any failure here means no device has been or will be contacted.
func loadRun(cmd *cobra.Command, args []string) (*run, error) {
	if configPath == "" {
		return nil, fmt.Errorf("--config is required (try 'heimdallr init' for a starting point)")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	// Flags override the file only when explicitly set.
	if cmd.Flags().Changed("username") {
		cfg.Username = username
	}
	if cmd.Flags().Changed("comment") {
		cfg.Comment = comment
	}
	if cmd.Flags().Changed("list") {
		cfg.ListName = listName
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = defaultPort
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("timeout") {
		cfg.StepTimeoutSeconds = stepTimeout
	}

	if cfg.Username == "" {
		return nil, fmt.Errorf("no username: set 'username' in %s or pass --username", configPath)
	}

	raw := append(append([]string{}, cfg.Addresses...), args...)
	entries, invalid := blocklist.ParseEntries(raw)
	if len(invalid) > 0 {
		fmt.Fprint(os.Stderr, ui.RenderInvalidEntries(invalid))
		return nil, fmt.Errorf("%d invalid address(es), nothing pushed", len(invalid))
	}

	fragment, err := blocklist.Build(cfg.ListName, entries, cfg.Comment)
	if err != nil {
		return nil, err
	}

	if dupes := fragment.Duplicates(); len(dupes) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d duplicate address(es):", len(dupes))
		for _, d := range dupes {
			fmt.Fprintf(os.Stderr, " %s", d)
		}
		fmt.Fprintln(os.Stderr)
	}

	targets, err := cfg.PushTargets()
	if err != nil {
		return nil, err
	}

	port := cfg.Port
	if port == 0 {
		port = netconf.DefaultPort
	}

	return &run{
		fragment:    fragment,
		targets:     targets,
		username:    cfg.Username,
		port:        port,
		workers:     cfg.Workers,
		stepTimeout: cfg.StepTimeout(),
	}, nil
}
