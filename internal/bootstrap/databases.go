package bootstrap

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/trustlens/trustlens/internal/execx"
)

// SetupCommand is one external initializer invocation. The program
// owns its own schema and data; this tool only checks its exit status.
type SetupCommand struct {
	Label string
	Argv  []string
}

// DefaultSetupCommands returns the relational governance database and
// vector knowledge store initializers, in the order they must run.
func DefaultSetupCommands(python string) []SetupCommand {
	return []SetupCommand{
		{Label: "governance database", Argv: []string{python, "setup_database.py"}},
		{Label: "knowledge store", Argv: []string{python, "setup_chromadb.py"}},
	}
}

// InitializeDatabases runs the setup programs sequentially as separate
// processes, stopping at the first failure: a failed relational setup
// means the knowledge store setup is never attempted. No rollback — a
// completed initializer's effects stay in place.
func InitializeDatabases(ctx context.Context, r execx.Runner, cmds []SetupCommand) []Result {
	log.Info("initializing databases")

	var results []Result
	for _, c := range cmds {
		result := runSetup(ctx, r, c)
		results = append(results, result)
		if !result.OK {
			break
		}
	}
	return results
}

func runSetup(ctx context.Context, r execx.Runner, c SetupCommand) Result {
	log.Infof("setting up %s", c.Label)

	if len(c.Argv) == 0 {
		return failed(c.Label, "empty setup command")
	}

	res, err := r.Run(ctx, c.Argv[0], c.Argv[1:]...)
	if err != nil {
		if execx.NotFound(err) {
			log.Errorf("%s setup failed: %s not found", c.Label, c.Argv[0])
			return failed(c.Label, c.Argv[0]+" not found")
		}
		log.WithError(err).Errorf("%s setup failed", c.Label)
		return failed(c.Label, err.Error())
	}
	if res.ExitCode != 0 {
		log.Errorf("%s setup failed: %s", c.Label, res.Stderr)
		return failed(c.Label, strings.TrimSpace(res.Stderr))
	}

	log.Infof("%s initialized", c.Label)
	return ok(c.Label, strings.Join(c.Argv, " "))
}
