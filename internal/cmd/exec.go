// Package cmd provides helpers for executing external commands with proper
// error handling.
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/deanishe/alfred-reminders-demo/internal/log"
)

// Run executes a command and returns stderr in the error message if it fails.
func Run(c *exec.Cmd) error {
	var stderr bytes.Buffer
	c.Stderr = &stderr
	if err := c.Run(); err != nil {
		if errMsg := strings.TrimSpace(stderr.String()); errMsg != "" {
			return fmt.Errorf("%s", errMsg)
		}
		return err
	}
	return nil
}

// Output executes a command and returns stdout, with stderr in error if it fails.
func Output(c *exec.Cmd) ([]byte, error) {
	var stderr bytes.Buffer
	c.Stderr = &stderr
	output, err := c.Output()
	if err != nil {
		if errMsg := strings.TrimSpace(stderr.String()); errMsg != "" {
			return nil, fmt.Errorf("%s", errMsg)
		}
		return nil, err
	}
	return output, nil
}

// RunContext executes a command with context support and debug logging.
// The command is killed when ctx is cancelled or its deadline passes.
func RunContext(ctx context.Context, name string, args ...string) error {
	log.FromContext(ctx).Debug().Str("cmd", name).Strs("args", args).Msg("exec")
	return Run(exec.CommandContext(ctx, name, args...))
}

// OutputContext executes a command with context support and debug logging,
// returning stdout.
func OutputContext(ctx context.Context, name string, args ...string) ([]byte, error) {
	log.FromContext(ctx).Debug().Str("cmd", name).Strs("args", args).Msg("exec")
	return Output(exec.CommandContext(ctx, name, args...))
}
