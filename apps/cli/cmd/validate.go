package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/axotly/packages/core/parser"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file|directory>...",
	Short: "Validate .ax files for syntax errors",
	Long: `Validate .ax files for syntax errors without executing them.

Examples:
  axotly validate api.ax
  axotly validate ./tests/`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return exitWith(ExitUsageError, err)
	}

	if len(files) == 0 {
		err := fmt.Errorf("no %s files found", TestFileExt)
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return exitWith(ExitUsageError, err)
	}

	invalid := 0
	for _, file := range files {
		f, err := parser.ParseFile(file)
		if err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s (%d tests)\n", file, len(f.Tests))
			continue
		}

		invalid++
		var parseErr *parser.ParseError
		if !errors.As(err, &parseErr) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", file, err)
			continue
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Error in %s\n", parseErr.Error())
		if parseErr.Snippet != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "    %s\n", parseErr.Snippet)
		}
	}

	if invalid > 0 {
		return exitWith(ExitParseError, fmt.Errorf("validation failed: %d of %d files invalid", invalid, len(files)))
	}

	return nil
}
