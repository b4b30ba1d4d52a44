// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testCLI runs inifmt against a temporary working directory with an isolated
// environment.
type testCLI struct {
	t   *testing.T
	Dir string
	Env map[string]string
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	dir := t.TempDir()
	return &testCLI{
		t:   t,
		Dir: dir,
		Env: map[string]string{
			"XDG_CONFIG_HOME": filepath.Join(dir, ".xdg-config"),
		},
	}
}

// Run executes the CLI with the given args and returns stdout, stderr, and
// exit code. Args should not include the program name or "--cwd".
func (c *testCLI) Run(args ...string) (string, string, int) {
	return c.RunWithInput("", args...)
}

// RunWithInput is like Run but supplies stdin.
func (c *testCLI) RunWithInput(stdin string, args ...string) (string, string, int) {
	var in io.Reader = strings.NewReader(stdin)
	var outBuf, errBuf bytes.Buffer
	fullArgs := append([]string{"inifmt", "--cwd", c.Dir}, args...)
	code := Run(context.Background(), in, &outBuf, &errBuf, fullArgs, c.Env)
	return outBuf.String(), errBuf.String(), code
}

// MustRun executes the CLI and fails the test if the command returns non-zero.
func (c *testCLI) MustRun(args ...string) string {
	c.t.Helper()
	stdout, stderr, code := c.Run(args...)
	require.Equal(c.t, 0, code, "command %v failed\nstderr: %s", args, stderr)
	return stdout
}

// MustFail executes the CLI and fails the test if the command succeeds.
// Returns stderr.
func (c *testCLI) MustFail(args ...string) string {
	c.t.Helper()
	stdout, stderr, code := c.Run(args...)
	require.Equal(c.t, 1, code, "command %v should have failed\nstdout: %s", args, stdout)
	return stderr
}

func (c *testCLI) WriteFile(name, content string) string {
	c.t.Helper()
	path := filepath.Join(c.Dir, name)
	require.NoError(c.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(c.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (c *testCLI) ReadFile(name string) string {
	c.t.Helper()
	data, err := os.ReadFile(filepath.Join(c.Dir, name))
	require.NoError(c.t, err)
	return string(data)
}
