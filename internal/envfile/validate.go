package envfile

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Validate loads the env file at path and checks that key is set in the
// environment. When the key is missing it scaffolds a template env file
// if none exists, and reports failure either way: the operator edits the
// file and re-runs. The existing file is never touched.
func Validate(path, key string) bool {
	log.Info("checking environment variables")

	Load(path)

	if os.Getenv(key) != "" {
		log.Info("environment variables configured")
		return true
	}

	log.Warnf("%s not found in environment", key)
	log.Infof("set %s for AI agent functionality", key)
	log.Info("get your API key from: https://makersuite.google.com/app/apikey")

	wrote, err := WriteTemplate(path)
	switch {
	case err != nil:
		log.WithError(err).Warnf("could not create %s template", path)
	case wrote:
		log.Infof("created %s template file - please update with your API key", path)
	default:
		log.Infof("%s already exists; leaving it unchanged. Update %s in that file.", path, key)
	}

	return false
}
