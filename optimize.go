package iconbake

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/iconbake/iconbake/template"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/exec"
)

// optimize runs the configured optimize command on one generated file.
// The command supports template variables: {{file}}, {{size}} and {{env.XXX}}.
func (g *Generator) optimize(ctx context.Context, e Entry, path string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	store := map[string]any{
		"file": path,
		"size": e.Px,
		"env":  template.EnvironToMap(),
	}
	expandedCmd, err := template.Expand(g.optimizeCmd, store)
	if err != nil {
		return fmt.Errorf("failed to expand optimize command template: %w", err)
	}
	c, args, err := buildCommand(expandedCmd)
	if err != nil {
		return fmt.Errorf("failed to build optimize command: %w", err)
	}
	cmd := exec.CommandContext(ctx, c, args...)
	cmd.Env = os.Environ()

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run optimize command: %w\nstderr: %s", err, stderr.String())
	}
	return nil
}

// buildCommand builds a command and arguments from a command string.
func buildCommand(cmdStr string) (string, []string, error) {
	shell, err := detectShell()
	if err != nil {
		return "", nil, err
	}
	return shell, []string{"-c", cmdStr}, nil
}

// CommandResolvable reports whether the shell can resolve the leading
// executable of cmdStr. Optimize commands run through the shell, so
// builtins, compound commands and environment-prefixed commands must be
// checked the same way they will run.
func CommandResolvable(ctx context.Context, cmdStr string) bool {
	var name string
	for _, f := range strings.Fields(cmdStr) {
		if strings.Contains(f, "=") {
			// leading environment assignments
			continue
		}
		name = f
		break
	}
	if name == "" {
		return false
	}
	if strings.Contains(name, "{{") {
		// template expression, only resolvable at generate time
		return true
	}
	shell, err := detectShell()
	if err != nil {
		return false
	}
	return exec.CommandContext(ctx, shell, "-c", "command -v -- "+name).Run() == nil
}

// detectShell detects the current shell.
func detectShell() (string, error) {
	shells := []string{
		os.Getenv("SHELL"),
		"/bin/bash",
		"/bin/sh",
	}
	for _, shell := range shells {
		if shell == "" {
			continue
		}
		if _, err := os.Stat(shell); err == nil {
			return shell, nil
		}
	}
	return "", fmt.Errorf("failed to detect shell")
}
