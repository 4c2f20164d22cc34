package compile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Preprocessor compiles a LESS file on disk into plain CSS.
type Preprocessor interface {
	Compile(ctx context.Context, path string) (string, error)
}

// Lessc runs the external lessc binary.
type Lessc struct {
	Command string
	Args    []string
	// Timeout bounds a single invocation. Zero means no limit.
	Timeout time.Duration
}

func (l Lessc) Compile(ctx context.Context, path string) (string, error) {
	command := l.Command
	if command == "" {
		command = "lessc"
	}
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, l.Args...), path)
	cmd := exec.CommandContext(ctx, command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%s timed out after %s", command, l.Timeout)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", command, err, msg)
		}
		return "", fmt.Errorf("%s: %w", command, err)
	}
	return stdout.String(), nil
}
