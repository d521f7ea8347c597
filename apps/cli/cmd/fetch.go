package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/abdul-hamid-achik/axotly/packages/http"
	"github.com/abdul-hamid-achik/axotly/packages/output"
)

// DefaultFetchURL is requested when fetch is called without a URL
const DefaultFetchURL = "http://httpbin.org/get"

var fetchCmd = &cobra.Command{
	Use:   "fetch [URL]",
	Short: "Send a single request and print the response",
	Long: `Send one ad-hoc HTTP request and print the response status line,
headers and body. JSON bodies are pretty printed.

Examples:
  axotly fetch https://api.example.com/users/1
  axotly fetch https://api.example.com/users -m POST -j '{"name": "Ana"}'
  axotly fetch https://api.example.com/items -H 'Authorization: Bearer token'`,
	Args: cobra.MaximumNArgs(1),
	RunE: fetchCommand,
}

var (
	fetchMethodFlag   string
	fetchBodyFlag     string
	fetchJSONFlag     string
	fetchHeadersFlag  []string
	fetchTimeoutFlag  time.Duration
	fetchInsecureFlag bool
	fetchNoColorFlag  bool
	fetchVerboseFlag  bool
)

func init() {
	fetchCmd.Flags().StringVarP(&fetchMethodFlag, "method", "m", "GET", "HTTP method (GET, POST, PUT, PATCH, DELETE)")
	fetchCmd.Flags().StringVarP(&fetchBodyFlag, "body", "b", "", "Raw request body")
	fetchCmd.Flags().StringVarP(&fetchJSONFlag, "json", "j", "", "JSON request body, sent with Content-Type: application/json")
	fetchCmd.Flags().StringArrayVarP(&fetchHeadersFlag, "header", "H", nil, "Request header as 'Key: Value' (repeatable)")
	fetchCmd.Flags().DurationVar(&fetchTimeoutFlag, "timeout", http.DefaultTimeout, "Request timeout")
	fetchCmd.Flags().BoolVarP(&fetchInsecureFlag, "insecure", "k", false, "Disable SSL certificate validation")
	fetchCmd.Flags().BoolVar(&fetchNoColorFlag, "no-color", getEnvBool("AXOTLY_NO_COLOR", false), "Disable colored output (env: AXOTLY_NO_COLOR)")
	fetchCmd.Flags().BoolVarP(&fetchVerboseFlag, "verbose", "v", false, "Print the equivalent curl command")
	fetchCmd.MarkFlagsMutuallyExclusive("body", "json")
}

func fetchCommand(cmd *cobra.Command, args []string) error {
	formatter := output.NewConsoleFormatter(
		output.WithWriter(cmd.ErrOrStderr()),
		output.WithNoColor(fetchNoColorFlag),
	)

	req, err := buildFetchRequest(args)
	if err != nil {
		formatter.FormatError(err)
		return exitWith(ExitUsageError, err)
	}

	if fetchVerboseFlag {
		fmt.Fprintln(cmd.ErrOrStderr(), http.CurlCommand(req))
	}

	client := http.NewClient(
		http.WithTimeout(fetchTimeoutFlag),
		http.WithValidateSSL(!fetchInsecureFlag),
	)
	resp, err := client.Send(cmd.Context(), req)
	if err != nil {
		formatter.FormatError(err)
		var reqErr *http.RequestError
		if errors.As(err, &reqErr) && reqErr.Kind == http.ErrorInvalidRequest {
			return exitWith(ExitUsageError, err)
		}
		return exitWith(ExitNetworkError, err)
	}

	output.FormatResponse(cmd.OutOrStdout(), resp, "")
	return nil
}

func buildFetchRequest(args []string) (*http.Request, error) {
	url := DefaultFetchURL
	if len(args) > 0 {
		url = args[0]
	}

	req := http.NewRequest(strings.ToUpper(fetchMethodFlag), url)

	for _, h := range fetchHeadersFlag {
		key, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid header %q, expected 'Key: Value'", h)
		}
		req.SetHeader(strings.TrimSpace(key), strings.TrimSpace(value))
	}

	switch {
	case fetchJSONFlag != "":
		if !gjson.Valid(fetchJSONFlag) {
			return nil, fmt.Errorf("invalid JSON body: %s", fetchJSONFlag)
		}
		if !req.HasHeader("Content-Type") {
			req.SetHeader("Content-Type", "application/json")
		}
		req.SetBody(fetchJSONFlag)
	case fetchBodyFlag != "":
		req.SetBody(fetchBodyFlag)
	}

	return req, nil
}
