// Package execx runs external setup programs with scoped resource
// acquisition: output is drained into buffers and the process handle is
// released on every exit path, including early failure.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"time"
)

// Result holds the captured outcome of one subprocess invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner abstracts subprocess invocation so step logic can be tested
// against a recording fake.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// Local runs commands on the host.
type Local struct {
	Dir     string        // working directory; empty means inherit
	Timeout time.Duration // per-invocation cap; zero means no cap
}

// Run resolves name on PATH and executes it, capturing stdout and stderr.
// A non-zero exit is not an error: the caller inspects Result.ExitCode.
// An error is returned only when the program cannot be resolved or started.
func (l Local) Run(ctx context.Context, name string, args ...string) (Result, error) {
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("look up %s: %w", name, err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = l.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if runErr == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}

	res.ExitCode = -1
	return res, fmt.Errorf("run %s: %w", name, runErr)
}

// NotFound reports whether err means the executable could not be resolved.
func NotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}
