// Package cli provides the command-line interface for lookup.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lookup/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lookup/internal/adapters/driven/local"
	"github.com/custodia-labs/lookup/internal/adapters/driven/remote"
	"github.com/custodia-labs/lookup/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lookup/internal/adapters/driven/storage/seed"
	"github.com/custodia-labs/lookup/internal/core/domain"
	"github.com/custodia-labs/lookup/internal/core/ports/driven"
	"github.com/custodia-labs/lookup/internal/core/ports/driving"
	"github.com/custodia-labs/lookup/internal/core/services"
	"github.com/custodia-labs/lookup/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// ErrCancelled is returned when the user abandons the picker.
var ErrCancelled = errors.New("cancelled")

// annotationStandalone marks commands that run without the search runtime.
const annotationStandalone = "lookup.standalone"

var (
	verbose    bool
	configPath string
	apiURL     string
	offline    bool
)

// Runtime holds the services shared by commands.
type Runtime struct {
	Config   driven.ConfigStore
	Settings *domain.Settings
	Source   driven.SearchSource
	Cache    *services.ResultCache

	Lookup          driving.LookupService
	Categories      driving.CategoryService
	SettingsService driving.SettingsService
}

// RuntimeOptions are the global flag values that shape the runtime.
type RuntimeOptions struct {
	ConfigPath string
	APIURL     string
	Offline    bool
}

// deps is the runtime for the current invocation. Tests install their own.
var deps *Runtime

// newRuntime builds deps before a command runs.
var newRuntime = buildRuntime

var rootCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Search-as-you-type lookup for cost centers and WBS elements",
	Long: `lookup searches a categorised catalog of codes, such as cost centers
and WBS elements, as you type.

Run "lookup pick" for the interactive picker, "lookup search" for scripted
queries, or "lookup serve" to start the demo search backend.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRuntime,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&configPath, "config", "", "config file (default ~/.lookup/config.toml)")
	flags.StringVar(&apiURL, "api-url", "", "search backend URL (overrides api.url)")
	flags.BoolVar(&offline, "offline", false, "search the built-in catalog instead of the backend")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

func setupRuntime(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[annotationStandalone] == "true" || deps != nil {
		return nil
	}

	rt, err := newRuntime(RuntimeOptions{
		ConfigPath: configPath,
		APIURL:     apiURL,
		Offline:    offline,
	})
	if err != nil {
		return err
	}
	deps = rt
	return nil
}

func buildRuntime(opts RuntimeOptions) (*Runtime, error) {
	logger.Section("Runtime")

	var (
		store *file.ConfigStore
		err   error
	)
	if opts.ConfigPath != "" {
		store, err = file.Open(opts.ConfigPath)
	} else {
		store, err = file.NewConfigStore("")
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("config: %s", store.Path())

	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if opts.APIURL != "" {
		settings.APIURL = opts.APIURL
	}

	return NewRuntime(store, settingsService, settings, newSource(settings, opts.Offline)), nil
}

// NewRuntime wires the shared services around source.
func NewRuntime(
	store driven.ConfigStore,
	settingsService driving.SettingsService,
	settings *domain.Settings,
	source driven.SearchSource,
) *Runtime {
	cache := services.SharedCache()
	return &Runtime{
		Config:          store,
		Settings:        settings,
		Source:          source,
		Cache:           cache,
		Lookup:          services.NewLookupService(source, cache),
		Categories:      services.NewCategoryService(source),
		SettingsService: settingsService,
	}
}

func newSource(settings *domain.Settings, offline bool) driven.SearchSource {
	if offline {
		logger.Debug("source: built-in catalog")
		return local.NewSource(memory.NewCatalogStore(seed.Default()), 0)
	}
	logger.Debug("source: %s", settings.APIURL)
	return remote.NewClient(remote.Config{
		BaseURL:   settings.APIURL,
		RateLimit: settings.RateLimit,
		Timeout:   settings.RequestTimeout,
	})
}

// resolveCategory picks flag, then the configured category, then the catalog default.
func resolveCategory(ctx context.Context, flag string) (string, error) {
	catalog := deps.Categories.Load(ctx)

	id := flag
	if id == "" {
		id = deps.Settings.Category
	}
	if id == "" {
		return catalog.Default(), nil
	}
	if _, ok := catalog.Find(id); !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownCategory, id)
	}
	return id, nil
}
