package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// dirPerm is the permission for provisioned directories.
const dirPerm = 0o755

// Layout is the fixed directory set the governance stack expects,
// rooted at the deployment directory.
type Layout struct {
	Root string
}

// DefaultLayout returns the layout for the current working directory.
func DefaultLayout() Layout {
	return Layout{Root: "."}
}

// DataDir holds the governance database and encryption material.
func (l Layout) DataDir() string {
	return filepath.Join(l.Root, "data")
}

// ChromaDir is the knowledge store's persistence directory.
func (l Layout) ChromaDir() string {
	return filepath.Join(l.Root, "data", "chromadb")
}

// SecurityDir holds keys and the backend's security audit log.
func (l Layout) SecurityDir() string {
	return filepath.Join(l.Root, "data", "security")
}

// LogsDir holds run logs.
func (l Layout) LogsDir() string {
	return filepath.Join(l.Root, "logs")
}

// FrontendPublicDir is the frontend's static asset directory.
func (l Layout) FrontendPublicDir() string {
	return filepath.Join(l.Root, "frontend", "public")
}

// FrontendSrcDir is the frontend's source directory.
func (l Layout) FrontendSrcDir() string {
	return filepath.Join(l.Root, "frontend", "src")
}

// GovernanceDBPath is where the relational setup program writes its store.
func (l Layout) GovernanceDBPath() string {
	return filepath.Join(l.Root, "data", "ai_governance.db")
}

// RunLogPath is where quickstart records its hash-chained run log.
func (l Layout) RunLogPath() string {
	return filepath.Join(l.Root, "logs", "bootstrap.jsonl")
}

// Dirs returns the provisioned directories in creation order.
func (l Layout) Dirs() []string {
	return []string{
		l.DataDir(),
		l.ChromaDir(),
		l.SecurityDir(),
		l.LogsDir(),
		l.FrontendPublicDir(),
		l.FrontendSrcDir(),
	}
}

// Ensure creates the full layout, parents included. Idempotent.
func (l Layout) Ensure() error {
	for _, dir := range l.Dirs() {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ProvisionDirectories creates the layout. A failure here is fatal to
// the run and carried in Result.Err.
func ProvisionDirectories(l Layout) Result {
	const step = "directories"

	log.Info("setting up directories")

	if err := l.Ensure(); err != nil {
		return Result{Step: step, Detail: err.Error(), Err: err}
	}

	log.Info("directories created")
	return ok(step, fmt.Sprintf("%d directories", len(l.Dirs())))
}
