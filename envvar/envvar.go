// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package envvar provides functions to read environment variables for
// configuration.
package envvar

import (
	"fmt"
	"strconv"
	"strings"
)

// Env is a set of environment variables. Programs build one from os.Environ
// at startup so that tests can supply their own.
type Env map[string]string

// FromList builds an Env from a list of "key=value" strings in the form
// returned by os.Environ. Entries without an equals sign are ignored. If a
// key appears more than once, the last entry wins.
func FromList(environ []string) Env {
	env := make(Env, len(environ))
	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}
	return env
}

// Get returns the value of the given environment variable. If it is empty or
// unset, it returns the default value.
func (env Env) Get(key string, defaultValue string) string {
	v := env[key]
	if v == "" {
		return defaultValue
	}
	return v
}

// Bool returns the value of a boolean environment variable. If it is unset or
// not one of the strings 1, t, T, TRUE, true, or True, then it returns false.
func (env Env) Bool(key string) bool {
	b, ok, err := env.LookupBool(key)
	return ok && err == nil && b
}

// LookupBool parses a boolean environment variable with strconv.ParseBool.
// ok is false if the variable is empty or unset. A value that is set but
// cannot be parsed returns an error naming the variable.
func (env Env) LookupBool(key string) (b bool, ok bool, err error) {
	v := env[key]
	if v == "" {
		return false, false, nil
	}
	b, err = strconv.ParseBool(v)
	if err != nil {
		return false, true, fmt.Errorf("%s=%q: not a boolean", key, v)
	}
	return b, true, nil
}
