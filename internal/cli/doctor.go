package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/trustlens/trustlens/internal/bootstrap"
	"github.com/trustlens/trustlens/internal/config"
	"github.com/trustlens/trustlens/internal/envfile"
	"github.com/trustlens/trustlens/internal/execx"
	"github.com/trustlens/trustlens/internal/runlog"
	"github.com/trustlens/trustlens/internal/store"
)

var doctorWatch bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorWatch, "watch", false, "Re-run checks when the env file changes")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check deployment readiness and diagnose setup issues",
	RunE:  runDoctor,
}

type checkResult struct {
	label  string
	ok     bool
	detail string
	fix    string
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if !doctorWatch {
		return reportChecks(runChecks(ctx, cfg))
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rerun := func() {
		fmt.Println()
		reportChecks(runChecks(ctx, cfg))
	}
	rerun()

	watcher, err := envfile.NewWatcher(cfg.EnvFile, rerun)
	if err != nil {
		return err
	}
	fmt.Printf("\nwatching %s (Ctrl-C to stop)\n", cfg.EnvFile)
	return watcher.Run(ctx)
}

func runChecks(ctx context.Context, cfg *config.Config) []checkResult {
	var checks []checkResult
	layout := bootstrap.Layout{Root: cfg.Root}
	runner := execx.Local{}

	// 1. Binary.
	execPath, _ := os.Executable()
	if execPath != "" {
		checks = append(checks, checkResult{
			label:  "trustlens binary",
			ok:     true,
			detail: fmt.Sprintf("%s (v%s, %s)", execPath, version, runtime.Version()),
		})
	} else {
		checks = append(checks, checkResult{
			label:  "trustlens binary",
			ok:     false,
			detail: "cannot determine executable path",
		})
	}

	// 2. Backend interpreter.
	if v, err := bootstrap.ProbeRuntime(ctx, runner, cfg.Python); err != nil {
		checks = append(checks, checkResult{
			label:  "interpreter",
			ok:     false,
			detail: cfg.Python + " not usable",
			fix:    fmt.Sprintf("install Python %d.%d or higher", bootstrap.MinPythonMajor, bootstrap.MinPythonMinor),
		})
	} else if !v.AtLeast(bootstrap.MinPythonMajor, bootstrap.MinPythonMinor) {
		checks = append(checks, checkResult{
			label:  "interpreter",
			ok:     false,
			detail: fmt.Sprintf("Python %s too old", v),
			fix:    fmt.Sprintf("install Python %d.%d or higher", bootstrap.MinPythonMajor, bootstrap.MinPythonMinor),
		})
	} else {
		checks = append(checks, checkResult{label: "interpreter", ok: true, detail: "Python " + v.String()})
	}

	// 3. Env file and required key.
	if _, err := os.Stat(cfg.EnvFile); err == nil {
		checks = append(checks, checkResult{label: "env file", ok: true, detail: cfg.EnvFile})
	} else {
		checks = append(checks, checkResult{
			label:  "env file",
			ok:     false,
			detail: "missing",
			fix:    "trustlens quickstart",
		})
	}

	// Lookup rather than Load: watch reruns must see edits to the
	// file, and Load never overwrites a key once set.
	if v := envfile.Lookup(cfg.EnvFile, cfg.RequiredKey); v != "" && v != "your_gemini_api_key_here" {
		checks = append(checks, checkResult{label: cfg.RequiredKey, ok: true, detail: "set"})
	} else {
		checks = append(checks, checkResult{
			label:  cfg.RequiredKey,
			ok:     false,
			detail: "not set",
			fix:    "edit " + cfg.EnvFile,
		})
	}

	// 4. Dependency manifest and setup programs.
	if _, err := os.Stat(cfg.Manifest); err == nil {
		checks = append(checks, checkResult{label: "manifest", ok: true, detail: cfg.Manifest})
	} else {
		checks = append(checks, checkResult{label: "manifest", ok: false, detail: cfg.Manifest + " missing"})
	}

	for _, s := range cfg.Setup {
		if script := setupScript(s.Command); script != "" {
			if _, err := os.Stat(script); err == nil {
				checks = append(checks, checkResult{label: s.Label + " setup", ok: true, detail: script})
			} else {
				checks = append(checks, checkResult{label: s.Label + " setup", ok: false, detail: script + " missing"})
			}
		}
	}

	// 5. Directory layout.
	var missing []string
	for _, dir := range layout.Dirs() {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			missing = append(missing, dir)
		}
	}
	if len(missing) == 0 {
		checks = append(checks, checkResult{
			label:  "directories",
			ok:     true,
			detail: fmt.Sprintf("%d present", len(layout.Dirs())),
		})
	} else {
		checks = append(checks, checkResult{
			label:  "directories",
			ok:     false,
			detail: "missing: " + strings.Join(missing, ", "),
			fix:    "trustlens quickstart",
		})
	}

	// 6. Governance database.
	if info, err := store.Probe(layout.GovernanceDBPath()); err == nil {
		detail := fmt.Sprintf("%d tables", info.Tables)
		if info.Systems >= 0 {
			detail += fmt.Sprintf(", %d systems registered", info.Systems)
		}
		checks = append(checks, checkResult{label: "governance db", ok: true, detail: detail})
	} else {
		checks = append(checks, checkResult{
			label:  "governance db",
			ok:     false,
			detail: "not initialized",
			fix:    "trustlens quickstart",
		})
	}

	// 7. Knowledge store directory.
	if info, err := os.Stat(layout.ChromaDir()); err == nil && info.IsDir() {
		checks = append(checks, checkResult{label: "knowledge store", ok: true, detail: layout.ChromaDir()})
	} else {
		checks = append(checks, checkResult{
			label:  "knowledge store",
			ok:     false,
			detail: "not initialized",
			fix:    "trustlens quickstart",
		})
	}

	// 8. Run log chain, when present.
	if _, err := os.Stat(layout.RunLogPath()); err == nil {
		if result := runlog.Verify(layout.RunLogPath()); result.Valid {
			checks = append(checks, checkResult{
				label:  "run log",
				ok:     true,
				detail: fmt.Sprintf("%d entries, chain intact", result.Lines),
			})
		} else {
			checks = append(checks, checkResult{
				label:  "run log",
				ok:     false,
				detail: fmt.Sprintf("chain broken at line %d: %s", result.ErrorLine, result.Error),
			})
		}
	}

	return checks
}

// setupScript returns the script path from a setup command vector, or
// "" when the command does not reference a local script.
func setupScript(argv []string) string {
	for _, arg := range argv {
		if strings.HasSuffix(arg, ".py") || strings.HasSuffix(arg, ".sh") {
			return arg
		}
	}
	return ""
}

func reportChecks(checks []checkResult) error {
	hasFailures := false
	for _, c := range checks {
		mark := "\u2713" // ✓
		if !c.ok {
			mark = "\u2717" // ✗
			hasFailures = true
		}
		line := fmt.Sprintf("%s %-20s %s", mark, c.label+":", c.detail)
		if !c.ok && c.fix != "" {
			line += fmt.Sprintf("  ->  %s", c.fix)
		}
		fmt.Println(line)
	}

	if hasFailures {
		fmt.Println()
		fmt.Println("Some checks failed. Run the suggested commands to fix.")
		return fmt.Errorf("doctor found issues")
	}

	fmt.Println()
	fmt.Println("All checks passed.")
	return nil
}
