package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/lookup/internal/adapters/driven/filewatch"
	"github.com/custodia-labs/lookup/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lookup/internal/adapters/driven/storage/seed"
	"github.com/custodia-labs/lookup/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/lookup/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/lookup/internal/core/domain"
	"github.com/custodia-labs/lookup/internal/core/ports/driven"
	"github.com/custodia-labs/lookup/internal/logger"
)

var (
	serveAddr      string
	serveMemory    bool
	serveDataDir   string
	serveSeed      string
	serveWatch     bool
	serveOrigins   string
	serveRateLimit float64
	serveLimit     int
	serveMinLength int
	serveDebounce  time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the demo search backend",
	Long: `Starts an HTTP server exposing the lookup search API:

  GET /api/config              categories and the default category
  GET /api/search/:category    items matching ?q=
  GET /api/types               category ids
  GET /api/health              liveness

Items are stored in SQLite under ~/.lookup/data unless --memory is given.
An empty store is filled with the built-in cost center and WBS data, or
with the TOML file passed to --seed. With --watch the seed file is
reloaded whenever it changes.

Examples:
  lookup serve
  lookup serve --addr :9000 --seed catalog.toml --watch`,
	Args: cobra.NoArgs,
	Annotations: map[string]string{
		annotationStandalone: "true",
	},
	RunE: runServe,
}

func init() {
	flags := serveCmd.Flags()
	flags.StringVar(&serveAddr, "addr", httpapi.DefaultAddr, "listen address")
	flags.BoolVar(&serveMemory, "memory", false, "keep the catalog in memory instead of SQLite")
	flags.StringVar(&serveDataDir, "data-dir", "", "SQLite data directory (default ~/.lookup/data)")
	flags.StringVar(&serveSeed, "seed", "", "TOML seed file replacing the stored catalog")
	flags.BoolVar(&serveWatch, "watch", false, "reload the seed file when it changes")
	flags.StringVar(&serveOrigins, "origins", "", "comma-separated CORS origins (default any)")
	flags.Float64Var(&serveRateLimit, "rate-limit", 0, "requests per second per client (0 = unlimited)")
	flags.IntVar(&serveLimit, "limit", httpapi.DefaultResultLimit, "maximum items per search response")
	flags.IntVar(&serveMinLength, "min-length", domain.DefaultMinSearchLength, "minimum query length advertised to clients")
	flags.DurationVar(&serveDebounce, "debounce", domain.DefaultDebounceDelay, "debounce delay advertised to clients")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if serveWatch && serveSeed == "" {
		return errors.New("--watch requires --seed")
	}
	if !logger.IsVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := openCatalogStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := seedCatalogStore(ctx, store, serveSeed); err != nil {
		return err
	}

	server := httpapi.NewServer(store, httpapi.Config{
		Addr:            serveAddr,
		AllowedOrigins:  splitList(serveOrigins),
		RateLimit:       serveRateLimit,
		ResultLimit:     serveLimit,
		MinSearchLength: serveMinLength,
		Debounce:        serveDebounce,
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Search API listening on http://%s/api\n", server.Addr())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(gctx)
	})
	if serveWatch {
		g.Go(func() error {
			return filewatch.Watch(gctx, serveSeed, func() {
				reseed(gctx, server, serveSeed)
			})
		})
	}
	return g.Wait()
}

func openCatalogStore() (driven.CatalogStore, error) {
	if serveMemory {
		return memory.NewCatalogStore(seed.Default()), nil
	}
	store, err := sqlite.NewStore(serveDataDir)
	if err != nil {
		return nil, fmt.Errorf("opening catalog store: %w", err)
	}
	logger.Debug("serve: catalog at %s", store.Path())
	return store, nil
}

// seedCatalogStore loads path into store, or the built-in data when path is
// empty and the store holds no categories.
func seedCatalogStore(ctx context.Context, store driven.CatalogStore, path string) error {
	if path != "" {
		s, err := seed.Load(path)
		if err != nil {
			return fmt.Errorf("loading seed: %w", err)
		}
		return store.Replace(ctx, s)
	}

	catalog, err := store.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("reading catalog: %w", err)
	}
	if len(catalog.Categories) > 0 {
		return nil
	}
	logger.Info("serve: store is empty, loading built-in catalog")
	return store.Replace(ctx, seed.Default())
}

// reseed replaces the served catalog, keeping the old one if path is invalid.
func reseed(ctx context.Context, server *httpapi.Server, path string) {
	s, err := seed.Load(path)
	if err != nil {
		logger.Warn("serve: keeping current catalog: %v", err)
		return
	}
	if err := server.Reseed(ctx, s); err != nil {
		logger.Warn("serve: reseed failed: %v", err)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
