package gradle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNoWrapper is returned when the project has no Gradle wrapper script.
var ErrNoWrapper = errors.New("gradle wrapper not found")

// Output is the result of a Gradle invocation.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes Gradle wrapper tasks.
type Runner struct {
	// Stdout and Stderr receive the live output; nil discards it. The output
	// is captured in Output either way.
	Stdout io.Writer
	Stderr io.Writer
	// Env holds extra KEY=VALUE pairs on top of the process environment.
	Env []string
}

// WrapperName is the wrapper script for the current OS.
func WrapperName() string {
	if runtime.GOOS == "windows" {
		return "gradlew.bat"
	}
	return "gradlew"
}

// Wrapper returns the wrapper script in root.
func Wrapper(root string) (string, error) {
	path := filepath.Join(root, WrapperName())
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w in %s", ErrNoWrapper, root)
	}
	return path, nil
}

// Run executes the wrapper in root with args. A non-zero exit status is
// reported in Output, not as an error.
func (r *Runner) Run(ctx context.Context, root string, args ...string) (*Output, error) {
	wrapper, err := Wrapper(root)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, wrapper, args...)
	cmd.Dir = root
	cmd.Env = os.Environ()
	for _, kv := range r.Env {
		key, value, _ := strings.Cut(kv, "=")
		cmd.Env = setEnv(cmd.Env, key, value)
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(writerOrDiscard(r.Stdout), &stdoutBuf)
	cmd.Stderr = io.MultiWriter(writerOrDiscard(r.Stderr), &stderrBuf)

	err = cmd.Run()
	out := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
			return out, nil
		}
		return out, fmt.Errorf("running %s: %w", filepath.Base(wrapper), err)
	}
	return out, nil
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
