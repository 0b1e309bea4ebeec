package gradle

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeWrapper(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("wrapper scripts are shell scripts in tests")
	}
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "gradlew"), []byte("#!/bin/sh\n"+script), 0755))
	return root
}

func TestRun(t *testing.T) {
	root := fakeWrapper(t, "echo \"tasks: $*\"\necho \"flag: $CUBA_TEST_FLAG\"\necho oops >&2\n")
	var stdout bytes.Buffer
	r := &Runner{Stdout: &stdout, Env: []string{"CUBA_TEST_FLAG=on"}}

	out, err := r.Run(context.Background(), root, "assemble", "--offline")
	require.NoError(t, err)
	assert.Equal(t, 0, out.ExitCode)
	assert.Equal(t, "tasks: assemble --offline\nflag: on\n", out.Stdout)
	assert.Equal(t, "oops\n", out.Stderr)
	assert.Equal(t, out.Stdout, stdout.String())
}

func TestRunExitCode(t *testing.T) {
	root := fakeWrapper(t, "exit 3\n")

	out, err := (&Runner{}).Run(context.Background(), root, "assemble")
	require.NoError(t, err)
	assert.Equal(t, 3, out.ExitCode)
}

func TestRunWithoutWrapper(t *testing.T) {
	_, err := (&Runner{}).Run(context.Background(), t.TempDir(), "assemble")
	assert.True(t, errors.Is(err, ErrNoWrapper))
}

func TestSetEnv(t *testing.T) {
	env := setEnv([]string{"A=1", "B=2"}, "A", "3")
	assert.Equal(t, []string{"A=3", "B=2"}, env)
	env = setEnv(env, "C", "4")
	assert.Equal(t, []string{"A=3", "B=2", "C=4"}, env)
}
