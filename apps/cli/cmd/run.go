package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/axotly/packages/core/config"
	"github.com/abdul-hamid-achik/axotly/packages/core/runner"
	"github.com/abdul-hamid-achik/axotly/packages/http"
	"github.com/abdul-hamid-achik/axotly/packages/logging"
	"github.com/abdul-hamid-achik/axotly/packages/output"
)

var runCmd = &cobra.Command{
	Use:   "run <file|directory>...",
	Short: "Run API tests from .ax files",
	Long: `Run the tests defined in .ax files. Directories are searched
recursively. Tests run concurrently and are reported in file order.

Examples:
  axotly run api.ax
  axotly run ./tests/ --concurrency 8
  axotly run ./tests/ --renderer diff --show-response
  axotly run ./tests/ --rate 20 --timeout 5s
  axotly run ./tests/ --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	configFlag       string
	concurrencyFlag  int
	timeoutFlag      string
	rateFlag         float64
	rendererFlag     string
	showResponseFlag bool
	noColorFlag      bool
	verboseFlag      bool
	quietFlag        bool
	strictFlag       bool
	watchFlag        bool
	proxyFlag        string
	insecureFlag     bool
)

func init() {
	runCmd.Flags().StringVar(&configFlag, "config", getEnvString("AXOTLY_CONFIG", ""), "Path to config file (env: AXOTLY_CONFIG)")

	// Output flags
	runCmd.Flags().StringVarP(&rendererFlag, "renderer", "r", getEnvString("AXOTLY_RENDERER", config.RendererHuman), "Report format: human, diff (env: AXOTLY_RENDERER)")
	runCmd.Flags().BoolVar(&showResponseFlag, "show-response", getEnvBool("AXOTLY_SHOW_RESPONSE", false), "Print request and response of failed tests (env: AXOTLY_SHOW_RESPONSE)")
	runCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("AXOTLY_NO_COLOR", false), "Disable colored output (env: AXOTLY_NO_COLOR)")
	runCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", getEnvBool("AXOTLY_VERBOSE", false), "Verbose output (env: AXOTLY_VERBOSE)")
	runCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", getEnvBool("AXOTLY_QUIET", false), "Suppress everything but the report (env: AXOTLY_QUIET)")

	// Execution flags
	runCmd.Flags().IntVarP(&concurrencyFlag, "concurrency", "c", getEnvInt("AXOTLY_CONCURRENCY", 0), "Number of concurrent requests, 0 for one per CPU (env: AXOTLY_CONCURRENCY)")
	runCmd.Flags().StringVar(&timeoutFlag, "timeout", getEnvString("AXOTLY_TIMEOUT", "30s"), "Request timeout (e.g., 30s, 1m) (env: AXOTLY_TIMEOUT)")
	runCmd.Flags().Float64Var(&rateFlag, "rate", getEnvFloat("AXOTLY_RATE", 0), "Maximum requests started per second, 0 for unlimited (env: AXOTLY_RATE)")
	runCmd.Flags().BoolVar(&strictFlag, "strict", getEnvBool("AXOTLY_STRICT", false), "Abort the whole run if any file fails to parse (env: AXOTLY_STRICT)")
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch files for changes and re-run tests")

	// Network flags
	runCmd.Flags().StringVar(&proxyFlag, "proxy", getEnvString("AXOTLY_PROXY", ""), "Proxy URL for HTTP requests (env: AXOTLY_PROXY)")
	runCmd.Flags().BoolVarP(&insecureFlag, "insecure", "k", getEnvBool("AXOTLY_INSECURE", false), "Disable SSL certificate validation (env: AXOTLY_INSECURE)")
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

// Formatter interface for all output formatters
type Formatter interface {
	FormatSummary(summary *runner.RunSummary)
	FormatError(err error)
	FormatHeader(version string)
}

func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		output.NewConsoleFormatter(output.WithWriter(cmd.ErrOrStderr())).FormatError(err)
		return exitWith(ExitConfigError, err)
	}

	logger := newCLILogger(cmd)
	formatter := newFormatter(cmd, cfg)
	if !quietFlag {
		formatter.FormatHeader(version)
	}

	files, err := collectFiles(args)
	if err != nil {
		formatter.FormatError(err)
		return exitWith(ExitUsageError, err)
	}
	if len(files) == 0 {
		err := fmt.Errorf("no %s files found", TestFileExt)
		formatter.FormatError(err)
		return exitWith(ExitUsageError, err)
	}

	r, err := newRunner(cfg, logger)
	if err != nil {
		formatter.FormatError(err)
		return exitWith(ExitConfigError, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code, err := runFiles(ctx, r, files, formatter, cfg.GetStrict(), logger)
	if err != nil || !watchFlag {
		return exitWith(code, err)
	}

	return watchAndRun(ctx, cmd, args, r, formatter, cfg.GetStrict(), logger, code)
}

// loadRunConfig loads the config file and applies every flag that was set on
// the command line or through its AXOTLY_* variable.
func loadRunConfig(cmd *cobra.Command) (*config.Config, error) {
	fileConfig, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, err
	}

	isSet := func(flag, env string) bool {
		return cmd.Flags().Changed(flag) || os.Getenv(env) != ""
	}

	overrides := &config.Config{}
	if isSet("timeout", "AXOTLY_TIMEOUT") {
		overrides.Timeout = timeoutFlag
	}
	if isSet("renderer", "AXOTLY_RENDERER") {
		overrides.Renderer = rendererFlag
	}
	if isSet("proxy", "AXOTLY_PROXY") {
		overrides.Proxy = proxyFlag
	}
	if isSet("no-color", "AXOTLY_NO_COLOR") {
		overrides.NoColor = config.BoolPtr(noColorFlag)
	}
	if isSet("show-response", "AXOTLY_SHOW_RESPONSE") {
		overrides.ShowResponse = config.BoolPtr(showResponseFlag)
	}
	if isSet("strict", "AXOTLY_STRICT") {
		overrides.Strict = config.BoolPtr(strictFlag)
	}
	if insecureFlag {
		overrides.ValidateSSL = config.BoolPtr(false)
	}

	cfg := fileConfig.Merge(overrides)
	// Merge skips zero values, and 0 is a valid concurrency and rate.
	if isSet("concurrency", "AXOTLY_CONCURRENCY") {
		cfg.Concurrency = concurrencyFlag
	}
	if isSet("rate", "AXOTLY_RATE") {
		cfg.Rate = rateFlag
	}
	if concurrencyFlag < 0 || rateFlag < 0 {
		return nil, fmt.Errorf("--concurrency and --rate must not be negative")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newCLILogger(cmd *cobra.Command) *logging.CLILogger {
	logger := logging.NewCLILogger(cmd.ErrOrStderr())
	if quietFlag {
		logger.Silence()
	}
	if verboseFlag {
		logger.Verbose()
	}
	return logger
}

func newFormatter(cmd *cobra.Command, cfg *config.Config) Formatter {
	if cfg.Renderer == config.RendererDiff {
		return output.NewDiffFormatter(
			output.DiffWithWriter(cmd.OutOrStdout()),
			output.DiffWithNoColor(cfg.GetNoColor()),
			output.DiffWithShowResponse(cfg.GetShowResponse()),
		)
	}
	return output.NewConsoleFormatter(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithVerbose(verboseFlag),
		output.WithNoColor(cfg.GetNoColor()),
		output.WithShowResponse(cfg.GetShowResponse()),
	)
}

func newRunner(cfg *config.Config, logger logging.Logger) (*runner.Runner, error) {
	timeout, err := cfg.GetTimeout()
	if err != nil {
		return nil, err
	}

	clientOpts := []http.ClientOption{
		http.WithTimeout(timeout),
		http.WithFollowRedirects(cfg.GetFollowRedirects()),
		http.WithValidateSSL(cfg.GetValidateSSL()),
		http.WithDefaultHeaders(cfg.Headers),
	}
	if cfg.MaxRedirects > 0 {
		clientOpts = append(clientOpts, http.WithMaxRedirects(cfg.MaxRedirects))
	}
	if cfg.Proxy != "" {
		clientOpts = append(clientOpts, http.WithProxy(cfg.Proxy))
	}

	return runner.NewRunner(&runner.Config{
		Concurrency: cfg.Concurrency,
		Timeout:     timeout,
		RateLimit:   cfg.Rate,
		Transport:   http.NewClient(clientOpts...),
		Logger:      logger,
	}), nil
}

// runFiles loads and runs one suite and prints its report. The returned error
// is only set when the files could not be read at all.
func runFiles(ctx context.Context, r *runner.Runner, files []string, formatter Formatter, strict bool, logger logging.Logger) (int, error) {
	suite, err := runner.LoadSuite(files)
	if err != nil {
		formatter.FormatError(err)
		return ExitUsageError, err
	}

	if strict && len(suite.ParseErrors) > 0 {
		logger.Errorf("%d file(s) failed to parse, not running any tests", len(suite.ParseErrors))
		formatter.FormatSummary(&runner.RunSummary{ParseErrors: suite.ParseErrors})
		return ExitParseError, nil
	}
	for _, perr := range suite.ParseErrors {
		logger.Warnf("skipping %s: %s", perr.File, perr.Message)
	}

	summary := r.RunSuite(ctx, suite)
	if ctx.Err() != nil {
		logger.Warnf("run cancelled, unfinished tests are reported as errored")
	}
	formatter.FormatSummary(summary)
	return summaryExitCode(summary), nil
}

// watchAndRun re-runs the suite whenever an .ax file under args changes,
// until ctx is cancelled. The exit code is the one of the last run, starting
// with code.
func watchAndRun(ctx context.Context, cmd *cobra.Command, args []string, r *runner.Runner, formatter Formatter, strict bool, logger logging.Logger, code int) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		err = fmt.Errorf("failed to create file watcher: %w", err)
		formatter.FormatError(err)
		return exitWith(ExitUsageError, err)
	}
	defer watcher.Close()

	for _, dir := range watchDirs(args) {
		if err := watcher.Add(dir); err != nil {
			formatter.FormatError(fmt.Errorf("failed to watch %s: %w", dir, err))
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")

	debounce := time.NewTimer(WatchDebounceDelay)
	debounce.Stop()
	var changed string

	for {
		select {
		case <-ctx.Done():
			return exitWith(code, nil)

		case event, ok := <-watcher.Events:
			if !ok {
				return exitWith(code, nil)
			}
			if !isTestFile(event.Name) || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
				continue
			}
			changed = event.Name
			debounce.Reset(WatchDebounceDelay)

		case <-debounce.C:
			fmt.Fprintf(cmd.OutOrStdout(), "\n\nFile changed: %s\nRe-running tests...\n", changed)
			files, err := collectFiles(args)
			if err != nil {
				formatter.FormatError(err)
				continue
			}
			code, err = runFiles(ctx, r, files, formatter, strict, logger)
			if err != nil {
				logger.Errorf("%v", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")

		case err, ok := <-watcher.Errors:
			if !ok {
				return exitWith(code, nil)
			}
			formatter.FormatError(fmt.Errorf("watcher error: %w", err))
		}
	}
}
