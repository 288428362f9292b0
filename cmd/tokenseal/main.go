// Command tokenseal signs, verifies, seals and opens compact tokens and
// password-encrypted envelopes from the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Config holds the I/O streams for the command.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns a Config wired to the process streams.
func DefaultConfig() Config {
	return Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func run(args []string, cfg Config) error {
	root := newRootCommand(cfg)
	if len(args) > 0 {
		root.SetArgs(args[1:])
	}

	return root.ExecuteContext(context.Background())
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
