// Package config defines the recognised configuration options and their
// yaml-backed loading, a plain-struct-plus-defaults config generalized to
// functional options for the pieces that are naturally constructor-time
// choices rather than declarative data.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CallGraphMode selects whether and how the frontend computes a
// whole-program call graph.
type CallGraphMode string

const (
	CallGraphNone CallGraphMode = "none"
	CallGraphCHA  CallGraphMode = "CHA"
	CallGraphRTA  CallGraphMode = "RTA"
)

// Config holds every option in the external-interface configuration
// table: package include/exclude filters, call-graph mode, slicer
// bounds, and reachability entry points.
type Config struct {
	IncludePackages []string `yaml:"include_packages,omitempty"`
	ExcludePackages []string `yaml:"exclude_packages,omitempty"`
	BuildCallGraph  CallGraphMode `yaml:"build_call_graph,omitempty"`

	MaxDepth            uint32 `yaml:"max_depth,omitempty"`
	TraverseMethodCalls bool   `yaml:"traverse_method_calls"`
	CollectPaths        bool   `yaml:"collect_paths"`

	EntryPoints []string `yaml:"entry_points,omitempty"`

	// Verbose is the diagnostic sink; nil means diagnostics are discarded.
	// Not yaml-serializable, set programmatically or via WithVerbose.
	Verbose func(msg string) `yaml:"-"`
}

// Default returns the permissive baseline configuration: no package
// filtering, no call-graph construction, unbounded slicer depth,
// following method calls, without path recording, no extra entry points.
func Default() *Config {
	return &Config{
		BuildCallGraph:      CallGraphNone,
		MaxDepth:            ^uint32(0),
		TraverseMethodCalls: true,
		CollectPaths:        false,
	}
}

// Load reads a YAML configuration file, applying it on top of Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Option configures a Config at construction time; used for the
// programmatic (non-YAML) fields such as Verbose and plugin-style hooks.
type Option func(*Config)

// New builds a Config from Default() plus the given options.
func New(opts ...Option) *Config {
	cfg := Default()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithVerbose installs a diagnostic sink.
func WithVerbose(fn func(msg string)) Option {
	return func(c *Config) { c.Verbose = fn }
}

// WithIncludePackages sets the include_packages prefix filter.
func WithIncludePackages(prefixes ...string) Option {
	return func(c *Config) { c.IncludePackages = prefixes }
}

// WithExcludePackages sets the exclude_packages prefix filter.
func WithExcludePackages(prefixes ...string) Option {
	return func(c *Config) { c.ExcludePackages = prefixes }
}

// WithCallGraphMode sets build_call_graph.
func WithCallGraphMode(mode CallGraphMode) Option {
	return func(c *Config) { c.BuildCallGraph = mode }
}

// WithEntryPoints sets the entry_points regex list.
func WithEntryPoints(regexes ...string) Option {
	return func(c *Config) { c.EntryPoints = regexes }
}

// WithSlicerBounds sets the backward-slicer's AnalysisConfig-mirroring fields.
func WithSlicerBounds(maxDepth uint32, traverseMethodCalls, collectPaths bool) Option {
	return func(c *Config) {
		c.MaxDepth = maxDepth
		c.TraverseMethodCalls = traverseMethodCalls
		c.CollectPaths = collectPaths
	}
}

// log emits a diagnostic through Verbose if installed; a no-op otherwise.
// Malformed input is surfaced through this sink, never as a hard error.
func (c *Config) log(format string, args ...interface{}) {
	if c.Verbose == nil {
		return
	}
	c.Verbose(fmt.Sprintf(format, args...))
}

// Log is the exported form of log, used by collaborating packages
// (frontend, query) that hold a *Config but are not part of this package.
func (c *Config) Log(format string, args ...interface{}) { c.log(format, args...) }

// IncludesPackage reports whether a fully qualified class name passes the
// include/exclude package filters (exclude is applied before include).
func (c *Config) IncludesPackage(fqName string) bool {
	for _, prefix := range c.ExcludePackages {
		if hasPrefix(fqName, prefix) {
			return false
		}
	}
	if len(c.IncludePackages) == 0 {
		return true
	}
	for _, prefix := range c.IncludePackages {
		if hasPrefix(fqName, prefix) {
			return true
		}
	}
	return false
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
