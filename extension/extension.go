// Package extension provides the Forge extension adapter for Pyebwa.
//
// It implements the forge.Extension interface to integrate the Pyebwa
// engine into a Forge application with DI registration and lifecycle
// management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.pyebwa" or "pyebwa" keys.
package extension

import (
	"context"
	"errors"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	pyebwa "github.com/pyebwa/pyebwa"
	"github.com/pyebwa/pyebwa/store"
	"github.com/pyebwa/pyebwa/store/memory"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "pyebwa"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Reforestation credit ledger engine"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts the Pyebwa engine as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	engine     *pyebwa.Ledger
	store      store.Store
	engineOpts []pyebwa.Option
}

// New creates a new Pyebwa Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Pyebwa ledger instance.
// This is nil until Register is called.
func (e *Extension) Engine() *pyebwa.Ledger { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}

	eng := pyebwa.New(e.store, e.engineOpts...)
	e.engine = eng

	return vessel.Provide(fapp.Container(), func() (*pyebwa.Ledger, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("pyebwa: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.engine.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("pyebwa: store not initialized")
	}
	return e.store.Ping(ctx)
}

// --- Config Loading ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("pyebwa: configuration is required but not found in config files; " +
				"ensure 'extensions.pyebwa' or 'pyebwa' key exists in your config")
		}
		// Programmatic config stands on its own.
	} else {
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("pyebwa: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.pyebwa" first (namespaced pattern).
	if cm.IsSet("extensions.pyebwa") {
		if err := cm.Bind("extensions.pyebwa", &cfg); err == nil {
			e.Logger().Debug("pyebwa: loaded config from file",
				forge.F("key", "extensions.pyebwa"),
			)
			return cfg, true
		}
		e.Logger().Warn("pyebwa: failed to bind extensions.pyebwa config",
			forge.F("error", "bind failed"),
		)
	}

	// Try bare "pyebwa" key.
	if cm.IsSet("pyebwa") {
		if err := cm.Bind("pyebwa", &cfg); err == nil {
			e.Logger().Debug("pyebwa: loaded config from file",
				forge.F("key", "pyebwa"),
			)
			return cfg, true
		}
		e.Logger().Warn("pyebwa: failed to bind pyebwa config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeConfigurations merges YAML config with programmatic options.
// Programmatic bool flags override when true.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}
	return yamlConfig
}
