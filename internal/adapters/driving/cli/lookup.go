package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sharepoint-lookup/internal/core/domain"
)

var (
	lookupType  string
	lookupExact bool
	lookupJSON  bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup VALUE...",
	Short: "Search SharePoint for one or more values",
	Long: `Searches SharePoint for every value given and prints the matching
documents and pages per value. All values are searched concurrently; if any
search fails the whole lookup fails.

Examples:
  splookup lookup acme.com
  splookup lookup --exact "Project Falcon" contoso.com
  splookup lookup --json acme.com`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().StringVarP(&lookupType, "type", "t", "string", "entity type of the values")
	lookupCmd.Flags().BoolVar(&lookupExact, "exact", false, "search for the exact phrase (overrides config)")
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	entities := make([]domain.Entity, 0, len(args))
	for _, arg := range args {
		if v := strings.TrimSpace(arg); v != "" {
			entities = append(entities, domain.Entity{Type: lookupType, Value: v})
		}
	}
	if len(entities) == 0 {
		return fmt.Errorf("%w: no values to look up", domain.ErrInvalidInput)
	}

	opts := optionsStore.Options()
	if cmd.Flags().Changed("exact") {
		opts.ExactMatch = lookupExact
	}
	if needsPassword(opts) && stdinIsTerminal() {
		cmd.PrintErrf("Password for %s\\%s: ", opts.Domain.Value, opts.Username.Value)
		opts.Password.Value = readPassword()
		cmd.PrintErrln()
	}

	results, err := lookupService.Lookup(cmd.Context(), entities, opts)
	if err != nil {
		if lookupJSON {
			_ = outputJSON(cmd, map[string]domain.ErrorPayload{"error": domain.PayloadOf(err)})
		}
		return err
	}

	if lookupJSON {
		return outputJSON(cmd, results)
	}

	renderResults(cmd.OutOrStdout(), results)
	return nil
}

// needsPassword reports whether on-prem credentials lack a password.
func needsPassword(opts domain.ConnectionOptions) bool {
	return opts.AccessToken.IsEmpty() && !opts.Username.IsEmpty() && opts.Password.IsEmpty()
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
