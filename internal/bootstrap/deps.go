package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/trustlens/trustlens/internal/execx"
)

// DefaultManifest is the backend dependency manifest installed by pip.
const DefaultManifest = "backend/requirements.txt"

// InstallDependencies runs pip against the manifest. Both failure modes
// are terminal with no retry: a non-zero install reports pip's captured
// stderr, a missing manifest or interpreter reports not-found.
func InstallDependencies(ctx context.Context, r execx.Runner, python, manifest string) Result {
	const step = "dependencies"

	log.Info("installing backend dependencies")

	if _, err := os.Stat(manifest); err != nil {
		log.Errorf("%s not found", manifest)
		return failed(step, manifest+" not found")
	}

	res, err := r.Run(ctx, python, "-m", "pip", "install", "-r", manifest)
	if err != nil {
		if execx.NotFound(err) {
			log.Errorf("%s not found on PATH", python)
			return failed(step, python+" not found")
		}
		log.WithError(err).Error("failed to install dependencies")
		return failed(step, err.Error())
	}
	if res.ExitCode != 0 {
		log.Errorf("failed to install dependencies: %s", res.Stderr)
		return failed(step, strings.TrimSpace(res.Stderr))
	}

	log.Info("backend dependencies installed successfully")
	return ok(step, fmt.Sprintf("pip install -r %s", manifest))
}
