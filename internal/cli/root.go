package cli

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/trustlens/trustlens/internal/config"
)

var (
	cfgPath string
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "trustlens",
	Short: "Bootstrap utility for the TrustLens AI governance stack",
	Long: "Prepares a working TrustLens deployment: environment configuration,\n" +
		"backend dependencies, directory layout, and the governance data stores.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to trustlens.yaml (optional)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "dir", "", "Deployment root directory (default current directory)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the tool configuration for the current invocation.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if rootDir != "" {
		cfg.Root = rootDir
	}
	return cfg, nil
}
