package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lookup/internal/adapters/driven/local"
	"github.com/custodia-labs/lookup/internal/adapters/driven/remote"
	"github.com/custodia-labs/lookup/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lookup/internal/adapters/driven/storage/seed"
	"github.com/custodia-labs/lookup/internal/core/domain"
	"github.com/custodia-labs/lookup/internal/core/ports/driven"
	"github.com/custodia-labs/lookup/internal/core/services"
)

// unavailableSource fails every request.
type unavailableSource struct{}

func (unavailableSource) Catalog(context.Context) (domain.Catalog, error) {
	return domain.Catalog{}, errors.New("connection refused")
}

func (unavailableSource) Search(context.Context, string, string) ([]domain.ResultItem, error) {
	return nil, errors.New("connection refused")
}

func newTestRuntimeWith(t *testing.T, source driven.SearchSource) *Runtime {
	t.Helper()
	store := memory.NewConfigStore()
	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	require.NoError(t, err)

	rt := NewRuntime(store, settingsService, settings, source)
	rt.Cache = services.NewResultCache(domain.DefaultCacheTTL)
	rt.Lookup = services.NewLookupService(source, rt.Cache)
	return rt
}

func newTestRuntime(t *testing.T) *Runtime {
	t.Helper()
	return newTestRuntimeWith(t, local.NewSource(memory.NewCatalogStore(seed.Default()), 0))
}

// resetFlags restores every flag to its default so package-level flag
// variables do not leak between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// resetContexts drops the contexts cobra kept from earlier runs, so each
// run inherits the context passed to ExecuteContext.
func resetContexts(cmd *cobra.Command) {
	for _, c := range cmd.Commands() {
		c.SetContext(nil) //nolint:staticcheck // nil makes cobra inherit the root context
		resetContexts(c)
	}
}

func executeCommandContext(ctx context.Context, t *testing.T, rt *Runtime, args ...string) (string, error) {
	t.Helper()

	previous := deps
	deps = rt
	resetFlags(rootCmd)
	resetContexts(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		deps = previous
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

func executeCommand(t *testing.T, rt *Runtime, args ...string) (string, error) {
	t.Helper()
	return executeCommandContext(context.Background(), t, rt, args...)
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "lookup", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "config", "api-url", "offline"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"pick", "search", "categories", "settings", "serve", "mcp", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestSetupRuntime_BuildsOnce(t *testing.T) {
	calls := 0
	var got RuntimeOptions
	original := newRuntime
	newRuntime = func(opts RuntimeOptions) (*Runtime, error) {
		calls++
		got = opts
		return newTestRuntime(t), nil
	}
	defer func() { newRuntime = original }()

	_, err := executeCommand(t, nil, "--offline", "--api-url", "http://example.test/api", "categories")

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, got.Offline)
	assert.Equal(t, "http://example.test/api", got.APIURL)
}

func TestSetupRuntime_PropagatesError(t *testing.T) {
	original := newRuntime
	newRuntime = func(RuntimeOptions) (*Runtime, error) {
		return nil, errors.New("broken config")
	}
	defer func() { newRuntime = original }()

	_, err := executeCommand(t, nil, "categories")

	assert.EqualError(t, err, "broken config")
}

func TestSetupRuntime_SkipsStandaloneCommands(t *testing.T) {
	original := newRuntime
	newRuntime = func(RuntimeOptions) (*Runtime, error) {
		t.Fatal("runtime must not be built")
		return nil, nil
	}
	defer func() { newRuntime = original }()

	out, err := executeCommand(t, nil, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "lookup version")
}

func TestBuildRuntime_Offline(t *testing.T) {
	rt, err := buildRuntime(RuntimeOptions{
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		APIURL:     "http://example.test/api",
		Offline:    true,
	})

	require.NoError(t, err)
	assert.IsType(t, &local.Source{}, rt.Source)
	assert.Equal(t, "http://example.test/api", rt.Settings.APIURL)
	assert.Equal(t, domain.DefaultMinSearchLength, rt.Settings.MinSearchLength)
	assert.Same(t, services.SharedCache(), rt.Cache)
}

func TestBuildRuntime_Remote(t *testing.T) {
	rt, err := buildRuntime(RuntimeOptions{
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
	})

	require.NoError(t, err)
	client, ok := rt.Source.(*remote.Client)
	require.True(t, ok)
	assert.Equal(t, domain.DefaultAPIURL, client.BaseURL())
}

func TestBuildRuntime_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0600))

	_, err := buildRuntime(RuntimeOptions{ConfigPath: path})

	assert.ErrorContains(t, err, "loading config")
}

func TestResolveCategory(t *testing.T) {
	rt := newTestRuntime(t)
	previous := deps
	deps = rt
	defer func() { deps = previous }()

	ctx := context.Background()

	id, err := resolveCategory(ctx, "wbs")
	require.NoError(t, err)
	assert.Equal(t, "wbs", id)

	id, err = resolveCategory(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "cc", id)

	rt.Settings.Category = "wbs"
	id, err = resolveCategory(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "wbs", id)

	_, err = resolveCategory(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("")
	assert.Equal(t, original, version)

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)
}

func TestExecute_SubcommandUsesEachRunsContext(t *testing.T) {
	type runKey struct{}
	var seen []string
	cmd := &cobra.Command{
		Use: "ctxcheck",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, _ := cmd.Context().Value(runKey{}).(string)
			seen = append(seen, v)
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
	t.Cleanup(func() { rootCmd.RemoveCommand(cmd) })
	rt := newTestRuntime(t)

	for _, run := range []string{"first", "second"} {
		ctx := context.WithValue(context.Background(), runKey{}, run)
		_, err := executeCommandContext(ctx, t, rt, "ctxcheck")
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"first", "second"}, seen)
}
