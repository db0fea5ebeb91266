package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/trustlens/trustlens/internal/bootstrap"
	"github.com/trustlens/trustlens/internal/config"
	"github.com/trustlens/trustlens/internal/envfile"
	"github.com/trustlens/trustlens/internal/execx"
	"github.com/trustlens/trustlens/internal/runlog"
)

// setupTimeout caps each external program invocation.
const setupTimeout = 10 * time.Minute

var (
	quickstartEnvFile  string
	quickstartSkipDeps bool
	quickstartNoLog    bool
)

func init() {
	quickstartCmd.Flags().StringVar(&quickstartEnvFile, "env-file", "", "Override the env file path")
	quickstartCmd.Flags().BoolVar(&quickstartSkipDeps, "skip-deps", false, "Skip backend dependency installation")
	quickstartCmd.Flags().BoolVar(&quickstartNoLog, "no-run-log", false, "Do not record steps to the run log")
	rootCmd.AddCommand(quickstartCmd)
}

var quickstartCmd = &cobra.Command{
	Use:   "quickstart",
	Short: "Run the full setup sequence for the governance stack",
	Long: `Runs the setup gates in order: interpreter check, environment
validation, backend dependencies, directory layout, governance database,
knowledge store. Each gate must pass before the next runs.

Step outcomes are appended to a hash-chained run log under logs/
(verify it later with: trustlens audit verify).`,
	RunE: runQuickstart,
}

func runQuickstart(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if quickstartEnvFile != "" {
		cfg.EnvFile = quickstartEnvFile
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runner := execx.Local{Timeout: setupTimeout}
	layout := bootstrap.Layout{Root: cfg.Root}
	runID := time.Now().UTC().Format("20060102T150405Z")

	var results []bootstrap.Result
	record, closeLog := startRunLog(layout, runID)
	defer closeLog()

	gate := func(r bootstrap.Result) bool {
		record(r)
		results = append(results, r)
		return r.OK
	}

	ok := gate(bootstrap.CheckRuntime(ctx, runner, cfg.Python))

	if ok {
		ok = gate(envResult(cfg))
	}

	if ok {
		if quickstartSkipDeps {
			log.Info("skipping backend dependency installation")
		} else {
			ok = gate(bootstrap.InstallDependencies(ctx, runner, cfg.Python, cfg.Manifest))
		}
	}

	if ok {
		r := bootstrap.ProvisionDirectories(layout)
		ok = gate(r)
		if r.Err != nil {
			printSummary(results)
			return fmt.Errorf("provision directories: %w", r.Err)
		}
	}

	if ok {
		for _, r := range bootstrap.InitializeDatabases(ctx, runner, setupCommands(cfg)) {
			if !gate(r) {
				break
			}
		}
		ok = results[len(results)-1].OK
	}

	printSummary(results)

	if !ok {
		closeLog()
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Setup complete. Next steps:")
	fmt.Println("  trustlens doctor")
	fmt.Printf("  trustlens audit verify %s\n", layout.RunLogPath())
	return nil
}

// envResult wraps the environment validator into a step result.
func envResult(cfg *config.Config) bootstrap.Result {
	if envfile.Validate(cfg.EnvFile, cfg.RequiredKey) {
		return bootstrap.Result{Step: "environment", OK: true, Detail: cfg.RequiredKey + " configured"}
	}
	return bootstrap.Result{Step: "environment", Detail: cfg.RequiredKey + " missing; edit " + cfg.EnvFile + " and re-run"}
}

func setupCommands(cfg *config.Config) []bootstrap.SetupCommand {
	if len(cfg.Setup) == 0 {
		return bootstrap.DefaultSetupCommands(cfg.Python)
	}
	cmds := make([]bootstrap.SetupCommand, 0, len(cfg.Setup))
	for _, s := range cfg.Setup {
		cmds = append(cmds, bootstrap.SetupCommand{Label: s.Label, Argv: s.Command})
	}
	return cmds
}

// startRunLog opens the hash-chained run log and returns a recorder
// plus a closer. The log lives under logs/, which may not exist yet on
// a fresh deployment; Open creates it. A run log failure never fails
// the run.
func startRunLog(layout bootstrap.Layout, runID string) (func(bootstrap.Result), func()) {
	noop := func(bootstrap.Result) {}
	if quickstartNoLog {
		return noop, func() {}
	}

	l, err := runlog.Open(layout.RunLogPath())
	if err != nil {
		log.WithError(err).Warn("run log disabled")
		return noop, func() {}
	}

	record := func(r bootstrap.Result) {
		status := runlog.StatusOK
		if !r.OK {
			status = runlog.StatusFailed
		}
		entry := runlog.Entry{
			RunID:  runID,
			Step:   r.Step,
			Status: status,
			Detail: r.Detail,
		}
		if err := l.Record(entry); err != nil {
			log.WithError(err).Warn("could not record run log entry")
		}
	}
	return record, func() { l.Close() }
}

func printSummary(results []bootstrap.Result) {
	fmt.Println()
	for _, r := range results {
		mark := "\u2713" // ✓
		if !r.OK {
			mark = "\u2717" // ✗
		}
		fmt.Printf("%s %-22s %s\n", mark, r.Step+":", r.Detail)
	}
}
