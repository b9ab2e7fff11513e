package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configured connection options",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	errs := lookupService.ValidateOptions(optionsStore.Options())
	if len(errs) == 0 {
		cmd.Println(successStyle.Render("✓ Options are valid"))
		return nil
	}

	for _, e := range errs {
		cmd.Printf("%s %s: %s\n", errorStyle.Render("✗"), e.Key, e.Message)
	}
	return fmt.Errorf("%d option(s) invalid", len(errs))
}
