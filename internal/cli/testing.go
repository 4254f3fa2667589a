package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CLI provides a clean interface for running CLI commands in tests.
// It manages a temp directory and environment variables.
type CLI struct {
	t   *testing.T
	Dir string
	Env map[string]string
}

// NewCLI creates a new test CLI with a temp directory. XDG_CONFIG_HOME points
// at an empty temp directory so the user's global config never leaks in.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	return &CLI{
		t:   t,
		Dir: t.TempDir(),
		Env: map[string]string{"XDG_CONFIG_HOME": t.TempDir()},
	}
}

// Run executes the CLI with the given args and returns stdout, stderr, and exit code.
// Args should not include "taskscan" or "--cwd" - those are added automatically.
func (r *CLI) Run(args ...string) (string, string, int) {
	var outBuf, errBuf bytes.Buffer

	fullArgs := append([]string{"taskscan", "--cwd", r.Dir}, args...)
	code := Run(nil, &outBuf, &errBuf, fullArgs, r.Env, nil)

	return outBuf.String(), errBuf.String(), code
}

// MustRun executes the CLI and fails the test if the command returns non-zero.
// Returns trimmed stdout on success.
func (r *CLI) MustRun(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code != 0 {
		r.t.Fatalf("command %v failed with exit code %d\nstderr: %s", args, code, stderr)
	}

	return strings.TrimSpace(stdout)
}

// ProjectsDir returns the path to the default projects root.
func (r *CLI) ProjectsDir() string {
	return filepath.Join(r.Dir, "projects")
}

// OutputPath returns the path to the default backlog file.
func (r *CLI) OutputPath() string {
	return filepath.Join(r.Dir, "state", "backlog.yaml")
}

// WriteTaskFile writes content to projects/{project}/{rel}, creating parents.
// project is "{org}/{repo}".
func (r *CLI) WriteTaskFile(project, rel, content string) string {
	r.t.Helper()

	path := filepath.Join(r.ProjectsDir(), filepath.FromSlash(project), filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.t.Fatalf("failed to create dir for %s: %v", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		r.t.Fatalf("failed to write task file %s: %v", path, err)
	}

	return path
}

// ReadFile reads a file relative to Dir.
func (r *CLI) ReadFile(rel string) string {
	r.t.Helper()

	content, err := os.ReadFile(filepath.Join(r.Dir, filepath.FromSlash(rel)))
	if err != nil {
		r.t.Fatalf("failed to read %s: %v", rel, err)
	}

	return string(content)
}

// AssertContains fails the test if content doesn't contain substr.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(content, substr) {
		t.Errorf("content should contain %q\ncontent:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if content contains substr.
func AssertNotContains(t *testing.T, content, substr string) {
	t.Helper()

	if strings.Contains(content, substr) {
		t.Errorf("content should NOT contain %q\ncontent:\n%s", substr, content)
	}
}
