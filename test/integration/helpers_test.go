//go:build integration

package integration_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/cuba-labs/cuba-cli/internal/cli"
	"github.com/cuba-labs/cuba-cli/internal/project/projecttest"
)

// testEnv holds an isolated config home and a fixture project.
type testEnv struct {
	HomeDir    string // CUBA_HOME, holds config.yaml
	ProjectDir string // a generated CUBA project
}

// setupTestEnv creates the sandbox and points CUBA_HOME at it so no user
// configuration leaks into the run.
func setupTestEnv(t *testing.T, opts projecttest.Options) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: projecttest.New(t, opts),
	}
	t.Setenv("CUBA_HOME", env.HomeDir)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return env
}

// result is the outcome of one CLI run.
type result struct {
	Stdout string
	Stderr string
	Err    error
}

// run executes the CLI against the project with input as stdin.
func (e *testEnv) run(t *testing.T, input string, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd(cli.BuildInfo{Version: "test"})
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--project", e.ProjectDir}, args...))
	err := cmd.Execute()
	viper.Reset()
	return result{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// lines joins answers into stdin content.
func lines(answers ...string) string {
	return strings.Join(answers, "\n") + "\n"
}

func (e *testEnv) path(rel string) string {
	return filepath.Join(e.ProjectDir, filepath.FromSlash(rel))
}

func (e *testEnv) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(e.path(rel))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file not to exist: %s", path)
	}
}

func assertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("expected output to contain %q, got:\n%s", substr, s)
	}
}

func assertCount(t *testing.T, s, substr string, want int) {
	t.Helper()
	if got := strings.Count(s, substr); got != want {
		t.Errorf("count of %q = %d, want %d", substr, got, want)
	}
}
