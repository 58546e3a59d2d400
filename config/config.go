// Package config loads jba.toml. Only keys present in the file override the
// defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Weltraumschaf/jba/classfile"
	"github.com/Weltraumschaf/jba/format"
	"github.com/dustin/go-humanize"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "jba.toml"

type Config struct {
	Format       string
	WideSlots    bool
	ExtendedTags bool
	MaxSize      int64
	NameWidth    int
	Verbosity    int
	LogFile      string
}

type fileConfig struct {
	Format       string `toml:"format"`
	WideSlots    bool   `toml:"wide_slots"`
	ExtendedTags bool   `toml:"extended_tags"`
	MaxSize      any    `toml:"max_size"`
	NameWidth    int    `toml:"name_width"`
	Verbosity    int    `toml:"verbosity"`
	LogFile      string `toml:"log_file"`
}

func Default() Config {
	return Config{
		Format:    "dump",
		MaxSize:   classfile.DefaultMaxSize,
		NameWidth: format.DefaultNameWidth,
	}
}

// Load reads path on top of Default. An empty path falls back to DefaultFile
// and a missing DefaultFile is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("format") {
		cfg.Format = strings.ToLower(strings.TrimSpace(raw.Format))
	}
	if meta.IsDefined("wide_slots") {
		cfg.WideSlots = raw.WideSlots
	}
	if meta.IsDefined("extended_tags") {
		cfg.ExtendedTags = raw.ExtendedTags
	}
	if meta.IsDefined("max_size") {
		n, err := parseSize(raw.MaxSize)
		if err != nil {
			return Config{}, fmt.Errorf("parse max_size: %w", err)
		}
		cfg.MaxSize = n
	}
	if meta.IsDefined("name_width") {
		cfg.NameWidth = raw.NameWidth
	}
	if meta.IsDefined("verbosity") {
		cfg.Verbosity = raw.Verbosity
	}
	if meta.IsDefined("log_file") {
		cfg.LogFile = strings.TrimSpace(raw.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !slices.Contains(format.Names, c.Format) {
		return fmt.Errorf("invalid format %q (expected one of %s)", c.Format, strings.Join(format.Names, ", "))
	}
	if c.MaxSize <= 0 {
		return fmt.Errorf("invalid max_size %d: must be positive", c.MaxSize)
	}
	if c.NameWidth <= 0 {
		return fmt.Errorf("invalid name_width %d: must be positive", c.NameWidth)
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("invalid verbosity %d: must not be negative", c.Verbosity)
	}
	return nil
}

func (c Config) DecodeOptions() []classfile.DecodeOption {
	opts := []classfile.DecodeOption{classfile.WithMaxSize(c.MaxSize)}
	if c.WideSlots {
		opts = append(opts, classfile.WithWideSlots())
	}
	if c.ExtendedTags {
		opts = append(opts, classfile.WithExtendedTags())
	}
	return opts
}

func (c Config) FormatOptions(name string, poolOnly bool) format.Options {
	return format.Options{Name: name, NameWidth: c.NameWidth, PoolOnly: poolOnly}
}

// ParseSize accepts plain byte counts and humanized sizes such as "16MiB".
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	if n > 1<<62 {
		return 0, fmt.Errorf("size %s out of range", s)
	}
	return int64(n), nil
}

func parseSize(v any) (int64, error) {
	switch v := v.(type) {
	case int64:
		return v, nil
	case string:
		return ParseSize(v)
	default:
		return 0, fmt.Errorf("unsupported value %v", v)
	}
}
