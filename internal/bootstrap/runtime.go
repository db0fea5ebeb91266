package bootstrap

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/trustlens/trustlens/internal/execx"
)

// Oldest interpreter the backend setup scripts support.
const (
	MinPythonMajor = 3
	MinPythonMinor = 8
)

// DefaultPython is the interpreter used for the backend collaborators.
const DefaultPython = "python3"

// Version is a parsed interpreter version tuple.
type Version struct {
	Major, Minor, Patch int
}

// AtLeast reports whether v meets the given minimum major.minor.
func (v Version) AtLeast(major, minor int) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParsePythonVersion parses `python3 --version` output, e.g.
// "Python 3.10.12\n". The patch component is optional.
func ParsePythonVersion(out string) (Version, error) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) == 0 {
		return Version{}, fmt.Errorf("empty version output")
	}

	parts := strings.Split(fields[len(fields)-1], ".")
	if len(parts) < 2 {
		return Version{}, fmt.Errorf("unrecognized version %q", fields[len(fields)-1])
	}

	var v Version
	var err error
	if v.Major, err = strconv.Atoi(parts[0]); err != nil {
		return Version{}, fmt.Errorf("parse major %q: %w", parts[0], err)
	}
	if v.Minor, err = strconv.Atoi(parts[1]); err != nil {
		return Version{}, fmt.Errorf("parse minor %q: %w", parts[1], err)
	}
	if len(parts) > 2 {
		// Pre-release suffixes like "0b1" are tolerated as patch 0.
		v.Patch, _ = strconv.Atoi(parts[2])
	}
	return v, nil
}

// ProbeRuntime runs `<python> --version` and parses the result. No
// logging; callers decide how to report.
func ProbeRuntime(ctx context.Context, r execx.Runner, python string) (Version, error) {
	res, err := r.Run(ctx, python, "--version")
	if err != nil {
		return Version{}, err
	}
	if res.ExitCode != 0 {
		return Version{}, fmt.Errorf("%s --version exited %d", python, res.ExitCode)
	}

	out := res.Stdout
	if strings.TrimSpace(out) == "" {
		// Older interpreters print the version to stderr.
		out = res.Stderr
	}
	return ParsePythonVersion(out)
}

// CheckRuntime probes the configured interpreter and verifies it meets
// the minimum version the backend requires.
func CheckRuntime(ctx context.Context, r execx.Runner, python string) Result {
	const step = "interpreter"

	v, err := ProbeRuntime(ctx, r, python)
	if err != nil {
		if execx.NotFound(err) {
			log.Errorf("%s not found on PATH", python)
			return failed(step, python+" not found")
		}
		log.WithError(err).Errorf("could not determine %s version", python)
		return failed(step, err.Error())
	}

	if !v.AtLeast(MinPythonMajor, MinPythonMinor) {
		log.Errorf("Python %d.%d or higher is required, found %s", MinPythonMajor, MinPythonMinor, v)
		return failed(step, fmt.Sprintf("found %s, need >= %d.%d", v, MinPythonMajor, MinPythonMinor))
	}

	log.Infof("Python version: %s", v)
	return ok(step, "Python "+v.String())
}
