package cmd

import (
	"bytes"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command with fresh flag values.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	for _, c := range cmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				_ = sv.Replace(nil)
			} else {
				_ = f.Value.Set(f.DefValue)
			}
			f.Changed = false
		})
	}
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newUserServer(t *testing.T) (*httptest.Server, *int64) {
	t.Helper()
	var hits int64
	mux := nethttp.NewServeMux()
	mux.Handle("/users/1", httphelpers.HandlerWithResponse(200,
		nethttp.Header{"Content-Type": {"application/json"}},
		[]byte(`{"id": 1, "name": "Juan", "age": 30.0}`)))
	mux.HandleFunc("/slow", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
		w.WriteHeader(200)
	})
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		atomic.AddInt64(&hits, 1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func TestRunCommand_Passed(t *testing.T) {
	server, _ := newUserServer(t)
	dir := t.TempDir()
	writeTestFile(t, dir, "users.ax", fmt.Sprintf(`TEST Get user
GET %s/users/1
EXPECT status == 200
EXPECT body.name == "Juan"
EXPECT body.age == 30
END
`, server.URL))

	stdout, _, err := executeCommand(t, "run", dir, "--no-color")
	require.NoError(t, err)

	assert.Contains(t, stdout, "axotly dev")
	assert.Contains(t, stdout, "✓ Get user")
	assert.Contains(t, stdout, "Tests:   1 passed, 1 total")
	assert.NotContains(t, stdout, "Failures:")
}

func TestRunCommand_ValueMismatchAndMissingPath(t *testing.T) {
	server, _ := newUserServer(t)
	dir := t.TempDir()
	writeTestFile(t, dir, "users.ax", fmt.Sprintf(`TEST Get user
GET %s/users/1
EXPECT body.name == "Ana"
EXPECT body.role == "admin"
END
`, server.URL))

	stdout, _, err := executeCommand(t, "run", dir, "--no-color")
	require.Error(t, err)
	assert.Equal(t, ExitTestFailure, ExitCode(err))

	assert.Contains(t, stdout, "✗ Get user")
	assert.Contains(t, stdout, "body.name: value mismatch: expected Ana, got Juan")
	assert.Contains(t, stdout, "body.role: path not found")
	assert.Contains(t, stdout, "1 failed, 1 total")
}

func TestRunCommand_TimeoutIsErrored(t *testing.T) {
	server, _ := newUserServer(t)
	dir := t.TempDir()
	writeTestFile(t, dir, "slow.ax", fmt.Sprintf(`TEST Slow
GET %s/slow
EXPECT status == 200
END
`, server.URL))

	stdout, _, err := executeCommand(t, "run", dir, "--no-color", "--timeout", "50ms")
	require.Error(t, err)
	assert.Equal(t, ExitNetworkError, ExitCode(err))

	assert.Contains(t, stdout, "! Slow")
	assert.Contains(t, stdout, "timeout: request timed out after 50ms")
	assert.Contains(t, stdout, "1 errored, 1 total")
	assert.NotContains(t, stdout, "passed")
}

func TestRunCommand_FailedTakesPrecedenceOverErrored(t *testing.T) {
	server, _ := newUserServer(t)
	dir := t.TempDir()
	writeTestFile(t, dir, "mixed.ax", fmt.Sprintf(`TEST Slow
GET %[1]s/slow
EXPECT status == 200
END

TEST Wrong name
GET %[1]s/users/1
EXPECT body.name == "Ana"
END
`, server.URL))

	_, _, err := executeCommand(t, "run", dir, "--no-color", "--timeout", "50ms")
	assert.Equal(t, ExitTestFailure, ExitCode(err))
}

func TestRunCommand_ParseErrorSkipsOnlyItsFile(t *testing.T) {
	server, hits := newUserServer(t)
	dir := t.TempDir()
	writeTestFile(t, dir, "a_broken.ax", "TEST Broken\nGET https://x\nEXPECT status == nope\nEND\n")
	writeTestFile(t, dir, "b_users.ax", fmt.Sprintf(`TEST Get user
GET %s/users/1
EXPECT status == 200
END
`, server.URL))

	stdout, stderr, err := executeCommand(t, "run", dir, "--no-color")
	require.Error(t, err)
	assert.Equal(t, ExitParseError, ExitCode(err))

	assert.Contains(t, stdout, "✓ Get user")
	assert.Contains(t, stdout, "Parse errors:")
	assert.Contains(t, stdout, "a_broken.ax:3:")
	assert.Contains(t, stderr, "skipping")
	assert.EqualValues(t, 1, atomic.LoadInt64(hits))
}

func TestRunCommand_StrictAbortsOnParseError(t *testing.T) {
	server, hits := newUserServer(t)
	dir := t.TempDir()
	writeTestFile(t, dir, "a_broken.ax", "TEST Broken\nGET https://x\nEND\n")
	writeTestFile(t, dir, "b_users.ax", fmt.Sprintf(`TEST Get user
GET %s/users/1
EXPECT status == 200
END
`, server.URL))

	stdout, _, err := executeCommand(t, "run", dir, "--no-color", "--strict")
	require.Error(t, err)
	assert.Equal(t, ExitParseError, ExitCode(err))

	assert.Contains(t, stdout, "Parse errors:")
	assert.Contains(t, stdout, "0 total")
	assert.NotContains(t, stdout, "Get user")
	assert.Zero(t, atomic.LoadInt64(hits))
}

func TestRunCommand_DiffRenderer(t *testing.T) {
	server, _ := newUserServer(t)
	dir := t.TempDir()
	writeTestFile(t, dir, "users.ax", fmt.Sprintf(`TEST Get user
GET %s/users/1
EXPECT body.name == "Ana"
END
`, server.URL))

	stdout, _, err := executeCommand(t, "run", dir, "--no-color", "-r", "diff")
	assert.Equal(t, ExitTestFailure, ExitCode(err))

	assert.Contains(t, stdout, "1) body.name\n      - Ana\n      + Juan\n")
}

func TestRunCommand_ShowResponse(t *testing.T) {
	server, _ := newUserServer(t)
	dir := t.TempDir()
	writeTestFile(t, dir, "users.ax", fmt.Sprintf(`TEST Get user
GET %s/users/1
EXPECT status == 404
END
`, server.URL))

	stdout, _, err := executeCommand(t, "run", dir, "--no-color", "--show-response")
	assert.Equal(t, ExitTestFailure, ExitCode(err))

	assert.Contains(t, stdout, "curl -i -X GET "+server.URL+"/users/1")
	assert.Contains(t, stdout, "HTTP/1.1 200 OK")
	assert.Contains(t, stdout, `"name": "Juan"`)
}

func TestRunCommand_ConfigErrors(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "users.ax", "TEST T\nGET https://x\nEXPECT status == 200\nEND\n")
	badConfig := writeTestFile(t, dir, "bad.yaml", "renderer: html\n")

	tests := []struct {
		name string
		args []string
	}{
		{"invalid timeout", []string{"--timeout", "soon"}},
		{"unknown renderer", []string{"-r", "xml"}},
		{"invalid config file", []string{"--config", badConfig}},
		{"missing config file", []string{"--config", filepath.Join(dir, "missing.yaml")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"run", dir, "--no-color"}, tt.args...)
			_, stderr, err := executeCommand(t, args...)
			require.Error(t, err)
			assert.Equal(t, ExitConfigError, ExitCode(err))
			assert.Contains(t, stderr, "Error:")
		})
	}
}

func TestRunCommand_ConfigFile(t *testing.T) {
	server, _ := newUserServer(t)
	dir := t.TempDir()
	writeTestFile(t, dir, "users.ax", fmt.Sprintf(`TEST Get user
GET %s/users/1
EXPECT body.name == "Ana"
END
`, server.URL))
	cfgPath := writeTestFile(t, dir, "axotly.config.json", `{"renderer": "diff", "noColor": true}`)

	stdout, _, err := executeCommand(t, "run", filepath.Join(dir, "users.ax"), "--config", cfgPath)
	assert.Equal(t, ExitTestFailure, ExitCode(err))
	assert.Contains(t, stdout, "- Ana")
}

func TestRunCommand_NoFiles(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "notes.txt", "nothing to run")

	stdout, _, err := executeCommand(t, "run", dir, "--no-color")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, ExitCode(err))
	assert.Contains(t, stdout, "no .ax files found")
}

func TestRunCommand_NotATestFile(t *testing.T) {
	notes := writeTestFile(t, t.TempDir(), "notes.txt", "nothing to run")

	stdout, _, err := executeCommand(t, "run", notes, "--no-color")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, ExitCode(err))
	assert.Contains(t, stdout, notes+" is not a .ax file")
}

func TestLoadRunConfig_ZeroFlagsOverrideConfigFile(t *testing.T) {
	cfgPath := writeTestFile(t, t.TempDir(), "axotly.yaml", "concurrency: 3\nrate: 5\n")
	t.Cleanup(func() { resetFlags(rootCmd) })

	resetFlags(rootCmd)
	require.NoError(t, runCmd.Flags().Set("config", cfgPath))
	cfg, err := loadRunConfig(runCmd)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, 5.0, cfg.Rate)

	require.NoError(t, runCmd.Flags().Set("concurrency", "0"))
	require.NoError(t, runCmd.Flags().Set("rate", "0"))
	cfg, err = loadRunConfig(runCmd)
	require.NoError(t, err)
	assert.Zero(t, cfg.Concurrency)
	assert.Zero(t, cfg.Rate)
}

func TestRunCommand_MissingPath(t *testing.T) {
	_, _, err := executeCommand(t, "run", filepath.Join(t.TempDir(), "missing"), "--no-color")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, ExitCode(err))
}

func TestRunCommand_UsageErrors(t *testing.T) {
	_, _, err := executeCommand(t, "run")
	assert.Equal(t, ExitUsageError, ExitCode(err))

	_, _, err = executeCommand(t, "run", ".", "--no-such-flag")
	assert.Equal(t, ExitUsageError, ExitCode(err))
}

func TestRunCommand_Quiet(t *testing.T) {
	server, _ := newUserServer(t)
	dir := t.TempDir()
	writeTestFile(t, dir, "users.ax", fmt.Sprintf("TEST T\nGET %s/users/1\nEXPECT status == 200\nEND\n", server.URL))

	stdout, stderr, err := executeCommand(t, "run", dir, "--no-color", "-q")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "axotly dev")
	assert.Contains(t, stdout, "1 passed")
	assert.Empty(t, stderr)
}
