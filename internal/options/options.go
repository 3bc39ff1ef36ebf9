// Package options holds the immutable option set read by the aggregation pipeline.
package options

import (
	"fmt"
	"sort"

	"github.com/scan-io-git/lintmux/pkg/shared/config"
)

// Option identifies a single configuration entry.
type Option int

const (
	IgnoreInfileConfigFor Option = iota // []string of linter names
	Flake8                              // []string of extra flake8 arguments
	Pylint                              // []string of extra pylint arguments
	NoFlake8                            // bool, skip flake8 entirely
	AllowedOnecharNames                 // []string of single-character names accepted by invalid-name
)

var optionNames = map[Option]string{
	IgnoreInfileConfigFor: "ignore-infile-config-for",
	Flake8:                "flake8",
	Pylint:                "pylint",
	NoFlake8:              "no-flake8",
	AllowedOnecharNames:   "allowed-onechar-names",
}

func (o Option) String() string {
	if name, ok := optionNames[o]; ok {
		return name
	}
	return fmt.Sprintf("option(%d)", int(o))
}

// Arg is one option with its value.
type Arg struct {
	Option Option
	Value  any
}

// Config is an immutable set of Args, at most one per Option.
// It is safe for concurrent use.
type Config struct {
	args []Arg
}

// New builds a Config. When an option is given more than once the last value wins.
func New(args ...Arg) *Config {
	byOption := make(map[Option]Arg, len(args))
	for _, arg := range args {
		byOption[arg.Option] = Arg{Option: arg.Option, Value: cloneValue(arg.Value)}
	}

	c := &Config{args: make([]Arg, 0, len(byOption))}
	for _, arg := range byOption {
		c.args = append(c.args, arg)
	}
	sort.Slice(c.args, func(i, j int) bool { return c.args[i].Option < c.args[j].Option })
	return c
}

// FromLint converts the YAML lint section into a Config.
func FromLint(lint config.Lint) *Config {
	return New(
		Arg{Option: IgnoreInfileConfigFor, Value: lint.IgnoreInfileConfigFor},
		Arg{Option: Flake8, Value: lint.Flake8},
		Arg{Option: Pylint, Value: lint.Pylint},
		Arg{Option: NoFlake8, Value: lint.NoFlake8},
		Arg{Option: AllowedOnecharNames, Value: lint.AllowedOnecharNames},
	)
}

// Get returns the raw value of opt.
func (c *Config) Get(opt Option) (any, bool) {
	for _, arg := range c.args {
		if arg.Option == opt {
			return cloneValue(arg.Value), true
		}
	}
	return nil, false
}

// Strings returns the value of opt as a string list; unset options are empty.
func (c *Config) Strings(opt Option) []string {
	v, _ := c.Get(opt)
	switch vv := v.(type) {
	case []string:
		return vv
	case string:
		return []string{vv}
	default:
		return nil
	}
}

// Bool returns the value of opt as a bool; unset options are false.
func (c *Config) Bool(opt Option) bool {
	v, _ := c.Get(opt)
	b, _ := v.(bool)
	return b
}

// Subset returns the entries whose option is in opts, ordered by option.
func (c *Config) Subset(opts []Option) []Arg {
	wanted := make(map[Option]struct{}, len(opts))
	for _, opt := range opts {
		wanted[opt] = struct{}{}
	}

	var out []Arg
	for _, arg := range c.args {
		if _, ok := wanted[arg.Option]; ok {
			out = append(out, Arg{Option: arg.Option, Value: cloneValue(arg.Value)})
		}
	}
	return out
}

// Lookup finds opt in a subset returned by Subset.
func Lookup(args []Arg, opt Option) (any, bool) {
	for _, arg := range args {
		if arg.Option == opt {
			return arg.Value, true
		}
	}
	return nil, false
}

func cloneValue(v any) any {
	if s, ok := v.([]string); ok {
		return append([]string(nil), s...)
	}
	return v
}
