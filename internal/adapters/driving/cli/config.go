package cli

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sharepoint-lookup/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sharepoint-lookup/internal/core/ports/driven"
)

// configKeys lists the keys accepted by "config set".
var configKeys = []string{
	file.KeyURL,
	file.KeyUsername,
	file.KeyPassword,
	file.KeyDomain,
	file.KeySubsite,
	file.KeyAccessToken,
	file.KeyExactMatch,
	file.KeyConcurrency,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change connection options",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current options with secrets redacted",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY [VALUE]",
	Short: "Set a configuration value",
	Long: `Set a configuration value and save it to the config file.

Keys:
  sharepoint.url, sharepoint.username, sharepoint.password,
  sharepoint.domain, sharepoint.subsite, sharepoint.access_token,
  search.exact_match (true/false), search.concurrency (integer)

When VALUE is omitted for sharepoint.password or sharepoint.access_token
it is read from the terminal without echo.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	if store, ok := optionsStore.(driven.ConfigStore); ok {
		cmd.Printf("Config file: %s\n\n", store.Path())
	}

	opts := optionsStore.Options().Redacted()
	cmd.Printf("  %-12s %s\n", "URL:", opts.URL.Value)
	cmd.Printf("  %-12s %s\n", "Username:", opts.Username.Value)
	cmd.Printf("  %-12s %s\n", "Password:", opts.Password.Value)
	cmd.Printf("  %-12s %s\n", "Domain:", opts.Domain.Value)
	cmd.Printf("  %-12s %s\n", "Subsite:", opts.Subsite.Value)
	cmd.Printf("  %-12s %s\n", "Token:", opts.AccessToken.Value)
	cmd.Printf("  %-12s %t\n", "Exact match:", opts.ExactMatch)
	cmd.Printf("  %-12s %d\n", "Concurrency:", optionsStore.Concurrency())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	store, ok := optionsStore.(driven.ConfigStore)
	if !ok {
		return errors.New("options store is read-only")
	}

	key := args[0]
	if !slices.Contains(configKeys, key) {
		return fmt.Errorf("unknown key %q", key)
	}

	var raw string
	switch {
	case len(args) == 2:
		raw = args[1]
	case key == file.KeyPassword || key == file.KeyAccessToken:
		cmd.PrintErrf("%s: ", key)
		raw = readPassword()
		cmd.PrintErrln()
	default:
		return fmt.Errorf("a value is required for %s", key)
	}

	value, err := parseConfigValue(key, raw)
	if err != nil {
		return err
	}

	if err := store.Set(key, value); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	cmd.Printf("Saved %s to %s\n", key, store.Path())
	return nil
}

func parseConfigValue(key, raw string) (any, error) {
	switch key {
	case file.KeyExactMatch:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false", key)
		}
		return b, nil
	case file.KeyConcurrency:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%s must be a positive integer", key)
		}
		return int64(n), nil
	default:
		return raw, nil
	}
}
