package bootstrap

import (
	"context"
	"os/exec"
	"testing"

	"github.com/trustlens/trustlens/internal/execx"
)

func TestParsePythonVersion(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    Version
		wantErr bool
	}{
		{"full", "Python 3.10.12\n", Version{3, 10, 12}, false},
		{"no patch", "Python 3.8\n", Version{3, 8, 0}, false},
		{"pre-release patch", "Python 3.13.0b1\n", Version{3, 13, 0}, false},
		{"python 2", "Python 2.7.18\n", Version{2, 7, 18}, false},
		{"empty", "", Version{}, true},
		{"garbage", "not a version\n", Version{}, true},
		{"single component", "Python 3\n", Version{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePythonVersion(tt.out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePythonVersion(%q) error = %v, wantErr %v", tt.out, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePythonVersion(%q) = %v, want %v", tt.out, got, tt.want)
			}
		})
	}
}

func TestVersionAtLeast(t *testing.T) {
	tests := []struct {
		v    Version
		want bool
	}{
		{Version{3, 8, 0}, true},
		{Version{3, 9, 1}, true},
		{Version{3, 12, 0}, true},
		{Version{4, 0, 0}, true},
		{Version{3, 7, 17}, false},
		{Version{2, 7, 18}, false},
	}

	for _, tt := range tests {
		if got := tt.v.AtLeast(MinPythonMajor, MinPythonMinor); got != tt.want {
			t.Errorf("%v.AtLeast(%d, %d) = %v, want %v", tt.v, MinPythonMajor, MinPythonMinor, got, tt.want)
		}
	}
}

func TestProbeRuntimeStderrFallback(t *testing.T) {
	// Python 2 printed the version banner to stderr.
	r := &fakeRunner{results: []execx.Result{{Stderr: "Python 2.7.18\n"}}}

	v, err := ProbeRuntime(context.Background(), r, "python")
	if err != nil {
		t.Fatalf("ProbeRuntime: %v", err)
	}
	if (v != Version{2, 7, 18}) {
		t.Errorf("version = %v, want 2.7.18", v)
	}
}

func TestCheckRuntime(t *testing.T) {
	tests := []struct {
		name   string
		runner *fakeRunner
		wantOK bool
	}{
		{
			"modern interpreter",
			&fakeRunner{results: []execx.Result{{Stdout: "Python 3.11.4\n"}}},
			true,
		},
		{
			"too old",
			&fakeRunner{results: []execx.Result{{Stdout: "Python 3.7.9\n"}}},
			false,
		},
		{
			"not installed",
			&fakeRunner{errs: []error{exec.ErrNotFound}},
			false,
		},
		{
			"probe exits nonzero",
			&fakeRunner{results: []execx.Result{{ExitCode: 1}}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckRuntime(context.Background(), tt.runner, "python3")
			if result.OK != tt.wantOK {
				t.Errorf("CheckRuntime OK = %v, want %v (detail: %s)", result.OK, tt.wantOK, result.Detail)
			}
			if result.Step != "interpreter" {
				t.Errorf("step = %q, want %q", result.Step, "interpreter")
			}
		})
	}
}
