package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/axotly/packages/core/parser"
)

var listCmd = &cobra.Command{
	Use:   "list <file|directory>...",
	Short: "List all tests in .ax files",
	Long: `List all tests defined in .ax files.

Examples:
  axotly list api.ax
  axotly list ./tests/`,
	Args: cobra.MinimumNArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
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

	code := ExitSuccess
	for _, file := range files {
		f, err := parser.ParseFile(file)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error parsing %s: %v\n", file, err)
			code = ExitParseError
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", file)
		for _, test := range f.Tests {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", test.DisplayName())
			if test.Name != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "    %s %s\n", test.Request.Method, test.Request.URL)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "    line %d, %d expectations\n", test.StartLine, len(test.Expectations))
		}
	}

	return exitWith(code, nil)
}
