package extension

import (
	pyebwa "github.com/pyebwa/pyebwa"
	"github.com/pyebwa/pyebwa/plugin"
	"github.com/pyebwa/pyebwa/store"
)

// Option configures the Pyebwa Forge extension.
type Option func(*Extension)

// WithStore sets the store for the engine.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithEngineOption passes a pyebwa.Option through to the underlying engine.
func WithEngineOption(opt pyebwa.Option) Option {
	return func(e *Extension) {
		e.engineOpts = append(e.engineOpts, opt)
	}
}

// WithPlugin registers an engine plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.engineOpts = append(e.engineOpts, pyebwa.WithPlugin(p))
	}
}

// WithTreasury sets the treasury used for purchase settlement.
func WithTreasury(t pyebwa.Treasury) Option {
	return func(e *Extension) {
		e.engineOpts = append(e.engineOpts, pyebwa.WithTreasury(t))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}
