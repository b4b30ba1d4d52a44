// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads inifmt's formatting preferences from JSONC files, the
// environment, and command-line overrides.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/tailscale/hujson"
	"github.com/yourbase/inifile/envvar"
	"github.com/yourbase/inifile/ini"
)

// FileName is the name of the project config file looked up in the working
// directory.
const FileName = ".inifmt.json"

// Environment variables that override config files.
const (
	EnvSpacing      = "INIFMT_SPACING"
	EnvCommentChar  = "INIFMT_COMMENT_CHAR"
	EnvSkipComments = "INIFMT_SKIP_COMMENTS"
)

var (
	ErrFileNotFound = errors.New("config file not found")
	ErrFileRead     = errors.New("cannot read config file")
	ErrInvalid      = errors.New("invalid config file")
	ErrCommentChar  = errors.New("comment_char must be a single character")
	ErrEnvInvalid   = errors.New("invalid environment")
)

// Config holds the resolved formatting preferences.
type Config struct {
	Spacing      bool   `json:"spacing"`
	CommentChar  string `json:"comment_char"`
	SkipComments bool   `json:"skip_comments"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		CommentChar: string(ini.DefaultCommentChar),
	}
}

// Layer is a partial configuration. Nil fields leave the value underneath
// unchanged.
type Layer struct {
	Spacing      *bool   `json:"spacing,omitempty"`
	CommentChar  *string `json:"comment_char,omitempty"`
	SkipComments *bool   `json:"skip_comments,omitempty"`
}

// Apply returns a copy of cfg with every field set in l replaced.
func (cfg Config) Apply(l Layer) Config {
	if l.Spacing != nil {
		cfg.Spacing = *l.Spacing
	}
	if l.CommentChar != nil {
		cfg.CommentChar = *l.CommentChar
	}
	if l.SkipComments != nil {
		cfg.SkipComments = *l.SkipComments
	}
	return cfg
}

// Validate reports whether cfg can be turned into ini options.
func (cfg Config) Validate() error {
	if utf8.RuneCountInString(cfg.CommentChar) != 1 {
		return fmt.Errorf("%w (got %q)", ErrCommentChar, cfg.CommentChar)
	}
	return nil
}

// ParseOptions returns the ini parse options cfg describes.
func (cfg Config) ParseOptions() *ini.ParseOptions {
	return &ini.ParseOptions{SkipComments: cfg.SkipComments}
}

// WriteOptions returns the ini write options cfg describes.
func (cfg Config) WriteOptions() *ini.WriteOptions {
	c, _ := utf8.DecodeRuneInString(cfg.CommentChar)
	return &ini.WriteOptions{
		Spacing:     cfg.Spacing,
		CommentChar: c,
	}
}

// Sources records which config files contributed to a Config.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
	Env     []string
}

// GlobalPath returns the path of the user's config file:
// $XDG_CONFIG_HOME/inifmt/config.json if set, otherwise
// $HOME/.config/inifmt/config.json. It returns the empty string if neither
// variable is set.
func GlobalPath(env envvar.Env) string {
	if dir := env.Get("XDG_CONFIG_HOME", ""); dir != "" {
		return filepath.Join(dir, "inifmt", "config.json")
	}
	if home := env.Get("HOME", ""); home != "" {
		return filepath.Join(home, ".config", "inifmt", "config.json")
	}
	return ""
}

// Load resolves the configuration with the following precedence (highest
// wins):
//
//  1. Defaults
//  2. Global user config (see GlobalPath)
//  3. Project config file in workDir, or configPath if non-empty
//  4. INIFMT_* environment variables
//
// Command-line flags are applied afterward by the caller with Config.Apply.
func Load(workDir, configPath string, env envvar.Env) (Config, Sources, error) {
	cfg := Default()
	var sources Sources

	if p := GlobalPath(env); p != "" {
		l, loaded, err := loadFile(p, false)
		if err != nil {
			return Config{}, Sources{}, err
		}
		if loaded {
			cfg = cfg.Apply(l)
			sources.Global = p
		}
	}

	projectPath := filepath.Join(workDir, FileName)
	mustExist := false
	if configPath != "" {
		projectPath = configPath
		if !filepath.IsAbs(projectPath) {
			projectPath = filepath.Join(workDir, projectPath)
		}
		mustExist = true
	}
	l, loaded, err := loadFile(projectPath, mustExist)
	if err != nil {
		return Config{}, Sources{}, err
	}
	if loaded {
		cfg = cfg.Apply(l)
		sources.Project = projectPath
	}

	envLayer, names, err := FromEnv(env)
	if err != nil {
		return Config{}, Sources{}, err
	}
	cfg = cfg.Apply(envLayer)
	sources.Env = names

	if err := cfg.Validate(); err != nil {
		return Config{}, Sources{}, err
	}
	return cfg, sources, nil
}

// FromEnv reads the INIFMT_* variables into a Layer. It also returns the
// names of the variables that were set.
func FromEnv(env envvar.Env) (Layer, []string, error) {
	var l Layer
	var names []string
	for _, v := range []struct {
		name string
		dst  **bool
	}{
		{EnvSpacing, &l.Spacing},
		{EnvSkipComments, &l.SkipComments},
	} {
		b, ok, err := env.LookupBool(v.name)
		if err != nil {
			return Layer{}, nil, fmt.Errorf("%w: %v", ErrEnvInvalid, err)
		}
		if ok {
			*v.dst = &b
			names = append(names, v.name)
		}
	}
	if c := env.Get(EnvCommentChar, ""); c != "" {
		l.CommentChar = &c
		names = append(names, EnvCommentChar)
	}
	return l, names, nil
}

// loadFile reads a JSONC config file. If mustExist is false, a missing file
// is reported as not loaded instead of an error.
func loadFile(path string, mustExist bool) (_ Layer, loaded bool, _ error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if mustExist {
			return Layer{}, false, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Layer{}, false, nil
	}
	if err != nil {
		return Layer{}, false, fmt.Errorf("%w: %s: %v", ErrFileRead, path, err)
	}
	l, err := Parse(data)
	if err != nil {
		return Layer{}, false, fmt.Errorf("%w %s: %w", ErrInvalid, path, err)
	}
	return l, true, nil
}

// Parse parses a JSONC config document. Comments and trailing commas are
// permitted; unknown fields are not.
func Parse(data []byte) (Layer, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Layer{}, fmt.Errorf("invalid JSONC: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()
	var l Layer
	if err := dec.Decode(&l); err != nil {
		return Layer{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if l.CommentChar != nil {
		if err := (Config{CommentChar: *l.CommentChar}).Validate(); err != nil {
			return Layer{}, err
		}
	}
	return l, nil
}

// Format returns cfg as indented JSON.
func Format(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format config: %w", err)
	}
	return string(data), nil
}
