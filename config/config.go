// Package config loads an Options value from a TOML document, for host
// layers that want file-based configuration of the closed option set
// (spec.md §6). It is purely additive: Translate and Validate always accept
// an in-process Options struct literal; config.Load is a convenience the
// host MAY use and the core never calls itself.
package config

import (
	"github.com/BurntSushi/toml"

	"github.com/mrchypark/libdplyr"
)

// File is the on-disk shape of a TOML config document, one field per
// Options field (spec.md §6's closed set).
type File struct {
	StrictMode             bool `toml:"strict_mode"`
	PreserveComments       bool `toml:"preserve_comments"`
	DebugTrace             bool `toml:"debug_trace"`
	MaxInputBytes          int  `toml:"max_input_bytes"`
	MaxTranslateDurationMS int  `toml:"max_translate_duration_ms"`
}

// Load reads path as TOML and returns the corresponding Options. Trace is
// always nil on the returned value — wiring a trace.Sink is an in-process
// decision a TOML file cannot express; set opts.Trace yourself afterward
// when DebugTrace is true and you want records.
func Load(path string) (libdplyr.Options, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return libdplyr.Options{}, err
	}
	return toOptions(f), nil
}

// LoadString decodes a TOML document already in memory, for hosts that read
// their config from somewhere other than a file (e.g. an embedded default).
func LoadString(doc string) (libdplyr.Options, error) {
	var f File
	if _, err := toml.Decode(doc, &f); err != nil {
		return libdplyr.Options{}, err
	}
	return toOptions(f), nil
}

func toOptions(f File) libdplyr.Options {
	return libdplyr.Options{
		StrictMode:             f.StrictMode,
		PreserveComments:       f.PreserveComments,
		DebugTrace:             f.DebugTrace,
		MaxInputBytes:          f.MaxInputBytes,
		MaxTranslateDurationMS: f.MaxTranslateDurationMS,
	}
}
