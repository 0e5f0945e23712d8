// Package command wraps external tool invocation behind a narrow interface
// so provisioning flows can be tested without touching the host.
package command

import (
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes external commands.
type Runner interface {
	// Run executes a command, returning an error that includes combined
	// output on failure.
	Run(name string, args ...string) error

	// Output executes a command and returns its stdout.
	Output(name string, args ...string) ([]byte, error)

	// RunInput executes a command with input via stdin.
	RunInput(input string, name string, args ...string) error
}

// RealRunner executes commands on the host.
type RealRunner struct{}

// NewRunner returns a Runner backed by the host.
func NewRunner() Runner {
	return &RealRunner{}
}

// Run executes a command without capturing output.
func (r *RealRunner) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("command %s failed: %w: %s", name, err, string(out))
	}
	return nil
}

// Output executes a command and returns its output.
func (r *RealRunner) Output(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// RunInput executes a command with input via stdin.
func (r *RealRunner) RunInput(input string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(input)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("command %s failed: %w: %s", name, err, string(out))
	}
	return nil
}
