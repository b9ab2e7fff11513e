// Package cli provides the splookup command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sharepoint-lookup/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sharepoint-lookup/internal/connectors"
	"github.com/custodia-labs/sharepoint-lookup/internal/core/ports/driven"
	"github.com/custodia-labs/sharepoint-lookup/internal/core/ports/driving"
	"github.com/custodia-labs/sharepoint-lookup/internal/core/services"
	"github.com/custodia-labs/sharepoint-lookup/internal/logger"
)

var (
	version   = "dev"
	commit    string
	buildDate string

	// Services are built lazily by ensureServices; tests inject mocks.
	lookupService driving.LookupService
	optionsStore  driven.OptionsStore

	configPath string
	verbose    bool
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "splookup",
	Short: "Search SharePoint for entities",
	Long: `splookup searches a SharePoint site for each value given and groups
the matching pages and documents per value.

Connection options are read from ~/.splookup/config.toml, a .env file in the
working directory, or SPLOOKUP_* environment variables.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.splookup/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to a rotating file instead of stderr")
}

// Execute runs the root command. Long-running commands stop when ctx is done.
func Execute(ctx context.Context) error {
	defer logger.Close() //nolint:errcheck
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBuildInfo sets the commit and build date stamped in at link time.
// Empty values fall back to the VCS metadata embedded by the Go toolchain.
func SetBuildInfo(rev, date string) {
	commit = rev
	buildDate = date
}

func setupLogging(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	logger.SetVerbose(verbose)
	if logFile != "" {
		logger.SetFile(logFile)
	}
	return nil
}

// ensureServices builds the options store and lookup service on first use.
func ensureServices() error {
	if optionsStore == nil {
		var (
			store *file.ConfigStore
			err   error
		)
		if configPath != "" {
			store, err = file.NewConfigStoreAt(configPath)
		} else {
			store, err = file.NewConfigStore("")
		}
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		logger.Debug("Config loaded from %s", store.Path())
		optionsStore = store
	}

	if lookupService == nil {
		svc := services.NewLookupService(connectors.NewFactory())
		svc.SetConcurrency(optionsStore.Concurrency())
		if logFile == "" {
			svc.Startup(rootCmd.ErrOrStderr())
		}
		lookupService = svc
	}
	return nil
}
