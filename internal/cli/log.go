// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"zombiezen.com/go/log"
)

// stderrLogger writes log entries as "inifmt: <level>: <msg>" lines.
// Debug entries are dropped unless verbose is set.
type stderrLogger struct {
	mu      sync.Mutex
	w       io.Writer
	verbose bool
}

func (l *stderrLogger) LogEnabled(entry log.Entry) bool {
	return l.verbose || entry.Level != log.Debug
}

func (l *stderrLogger) Log(ctx context.Context, entry log.Entry) {
	if !l.LogEnabled(entry) {
		return
	}
	msg := strings.TrimSuffix(entry.Msg, "\n")
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "inifmt: %s: %s\n", levelName(entry.Level), msg)
}

func levelName(level log.Level) string {
	switch level {
	case log.Debug:
		return "debug"
	case log.Info:
		return "info"
	case log.Warn:
		return "warning"
	case log.Error:
		return "error"
	default:
		return "log"
	}
}
