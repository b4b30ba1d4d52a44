// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// inifmt reads, edits, and formats INI files.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/yourbase/inifile/envvar"
	"github.com/yourbase/inifile/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	exitCode := cli.Run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args, envvar.FromList(os.Environ()))
	stop()
	os.Exit(exitCode)
}
