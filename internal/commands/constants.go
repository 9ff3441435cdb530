package commands

import "time"

// Command execution constants
const (
	// DefaultTimeout is the default timeout for synchronous steps. Long
	// enough for slow scripts, short enough that a hung step does not block
	// the dispatcher forever.
	DefaultTimeout = 30 * time.Second

	// DefaultShell runs every instruction as "sh -c <program>"
	DefaultShell = "/bin/sh"

	// waitDelay bounds how long a killed program may hold its output pipes
	waitDelay = 500 * time.Millisecond
)
