package ui

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// PasswordEnvVar names the environment variable consulted before any
// interactive prompt. Passwords are never read from configuration files.
const PasswordEnvVar = "HEIMDALLR_PASSWORD"

// ReadPassword obtains the SSH password for a run. The environment
// variable wins (for scripted use); otherwise the terminal is prompted
// with echo disabled. An empty password is rejected.
func ReadPassword(username string) (string, error) {
	if password := os.Getenv(PasswordEnvVar); password != "" {
		return password, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no password: %s is unset and stdin is not a terminal", PasswordEnvVar)
	}

	fmt.Fprintf(os.Stderr, "Password for %s: ", username)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	password := strings.TrimSpace(string(raw))
	if password == "" {
		return "", fmt.Errorf("empty password")
	}
	return password, nil
}
