// Package config turns command line values and an optional TOML matcher
// file into removal parameters.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/jurand/java/symbols"
	"github.com/dhamidi/jurand/strict"
)

var log = commonlog.GetLogger("jurand.config")

var (
	ErrNoMatcher    = errors.New("no matcher specified")
	ErrNoInputFiles = errors.New("no input files")
)

// Options holds the raw values given on the command line.
type Options struct {
	Names             []string
	Patterns          []string
	ConfigFile        string
	RemoveAnnotations bool
	InPlace           bool
	Strict            bool

	// Roots are the file roots, reported on in strict mode.
	Roots []string
}

// File is the content of a TOML matcher file:
//
//	names = ["Nullable"]
//	patterns = ["^javax[.]annotation[.]"]
//	remove_annotations = true
type File struct {
	Names             []string `toml:"names"`
	Patterns          []string `toml:"patterns"`
	RemoveAnnotations bool     `toml:"remove_annotations"`
}

// LoadFile decodes the matcher file at path. Unknown keys are an error.
func LoadFile(path string) (File, error) {
	var f File
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return File{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return File{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return f, nil
}

// Merge appends the values of f after the command line values.
func (o Options) Merge(f File) Options {
	o.Names = append(append([]string(nil), o.Names...), f.Names...)
	o.Patterns = append(append([]string(nil), o.Patterns...), f.Patterns...)
	o.RemoveAnnotations = o.RemoveAnnotations || f.RemoveAnnotations
	return o
}

// Build validates opts and returns the parameters for a removal run. When
// opts.ConfigFile is set, its values are merged in first. In strict mode
// the matcher reports to a *strict.Tracker seeded with the final names,
// patterns and roots.
func Build(opts Options) (*symbols.Parameters, error) {
	if opts.ConfigFile != "" {
		f, err := LoadFile(opts.ConfigFile)
		if err != nil {
			return nil, err
		}
		log.Debugf("loaded %d names and %d patterns from %s", len(f.Names), len(f.Patterns), opts.ConfigFile)
		opts = opts.Merge(f)
	}

	names := symbols.NewNameSet(opts.Names...)
	patterns := make([]symbols.Pattern, 0, len(opts.Patterns))
	texts := make([]string, 0, len(opts.Patterns))
	for _, text := range opts.Patterns {
		p, err := symbols.CompilePattern(text)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
		texts = append(texts, text)
	}

	strictMode := opts.Strict
	if strictMode && !opts.InPlace {
		log.Warning("strict mode only applies to in-place rewriting, ignoring it")
		strictMode = false
	}

	var observer strict.Observer = strict.Nop{}
	if strictMode {
		observer = strict.NewTracker(names.Names(), texts, opts.Roots)
	}

	matcher := symbols.NewMatcher(patterns, names, observer)
	if matcher.Empty() {
		return nil, ErrNoMatcher
	}
	if opts.InPlace && len(opts.Roots) == 0 {
		return nil, ErrNoInputFiles
	}
	return &symbols.Parameters{
		Matcher:           matcher,
		RemoveAnnotations: opts.RemoveAnnotations,
		InPlace:           opts.InPlace,
		Strict:            strictMode,
	}, nil
}
