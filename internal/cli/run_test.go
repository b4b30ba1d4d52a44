// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUsage(t *testing.T) {
	c := newTestCLI(t)
	stdout := c.MustRun()
	require.Contains(t, stdout, "Usage: inifmt")
	for _, name := range []string{"fmt", "get", "set", "rm", "sections", "export", "edit", "print-config"} {
		require.Contains(t, stdout, "  "+name)
	}
	require.Equal(t, stdout, c.MustRun("help"))
}

func TestGlobalHelp(t *testing.T) {
	c := newTestCLI(t)
	for _, flag := range []string{"--help", "-h"} {
		stdout := c.MustRun(flag)
		require.Contains(t, stdout, "  fmt [-w] <file>...")
		require.Equal(t, c.MustRun(), stdout)
	}
	_, stderr, code := c.Run("--bogus")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "  sections <file>")
}

func TestUnknownCommand(t *testing.T) {
	c := newTestCLI(t)
	stderr := c.MustFail("frobnicate")
	require.Contains(t, stderr, "error: unknown command: frobnicate")
}

func TestUnknownGlobalFlag(t *testing.T) {
	c := newTestCLI(t)
	stderr := c.MustFail("--bogus", "sections", "x.ini")
	require.Contains(t, stderr, "error:")
}

func TestCommandHelp(t *testing.T) {
	c := newTestCLI(t)
	stdout := c.MustRun("get", "--help")
	require.Contains(t, stdout, "Usage: inifmt get [--all] <section> <key> <file>...")
	require.Contains(t, stdout, "--all")
}

func TestCommandBadFlag(t *testing.T) {
	c := newTestCLI(t)
	stdout, stderr, code := c.Run("get", "--nope")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "error: unknown flag: --nope")
	require.Contains(t, stdout, "Usage: inifmt get")
}

func TestCommandArgCount(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"sections"}, "sections needs at least 1, got 0"},
		{[]string{"sections", "a.ini", "b.ini"}, "sections takes at most 1, got 2"},
		{[]string{"rm", "a.ini", "s", "k", "extra"}, "rm takes at most 3, got 4"},
		{[]string{"print-config", "extra"}, "print-config takes at most 0, got 1"},
	}
	for _, test := range tests {
		c := newTestCLI(t)
		_, stderr, code := c.Run(test.args...)
		require.Equal(t, 1, code, "args %q", test.args)
		require.Contains(t, stderr, "wrong number of arguments: "+test.want)
		require.Contains(t, stderr, "Usage: inifmt "+test.args[0])
	}
}

func TestPrintConfig(t *testing.T) {
	c := newTestCLI(t)
	stdout := c.MustRun("print-config")
	require.Contains(t, stdout, `"comment_char": ";"`)
	require.Contains(t, stdout, "(using defaults only)")

	c.WriteFile(".inifmt.json", `{"spacing": true} // project`)
	c.Env["INIFMT_COMMENT_CHAR"] = "#"
	stdout = c.MustRun("print-config")
	require.Contains(t, stdout, `"spacing": true`)
	require.Contains(t, stdout, `"comment_char": "#"`)
	require.Contains(t, stdout, "#   project: "+filepath.Join(c.Dir, ".inifmt.json"))
	require.Contains(t, stdout, "#   env: INIFMT_COMMENT_CHAR")
}

func TestBadConfig(t *testing.T) {
	c := newTestCLI(t)
	c.WriteFile(".inifmt.json", `{"comment_char": "//"}`)
	stderr := c.MustFail("print-config")
	require.Contains(t, stderr, "comment_char must be a single character")
}

func TestExplicitConfig(t *testing.T) {
	c := newTestCLI(t)
	c.WriteFile("conf/style.json", `{"spacing": true}`)
	c.WriteFile("a.ini", "[s]\nk=v\n")
	require.Equal(t, "[s]\nk = v\n\n", c.MustRun("--config", "conf/style.json", "fmt", "a.ini"))

	stderr := c.MustFail("-c", "missing.json", "fmt", "a.ini")
	require.Contains(t, stderr, "config file not found")
}

func TestVerboseLogsSkippedLines(t *testing.T) {
	c := newTestCLI(t)
	c.WriteFile("a.ini", "[s]\nnot a property\nk=v\n")

	_, stderr, code := c.Run("fmt", "a.ini")
	require.Equal(t, 0, code)
	require.Empty(t, stderr)

	_, stderr, code = c.Run("-v", "fmt", "a.ini")
	require.Equal(t, 0, code)
	require.Contains(t, stderr, `inifmt: debug: `+filepath.Join(c.Dir, "a.ini")+`:2: skipped "not a property"`)
}
