package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/akozadaev/findmydorm/internal/config"
	"github.com/akozadaev/findmydorm/internal/logging"
	"github.com/akozadaev/findmydorm/internal/registry"
	"github.com/akozadaev/findmydorm/internal/source"
	"github.com/akozadaev/findmydorm/internal/storage"
	"github.com/akozadaev/findmydorm/migrations"
)

const backendAll = "all"

type options struct {
	backend         string
	universityLimit int
	generate        bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	opts := options{backend: cfg.StoreBackend}

	cmd := &cobra.Command{
		Use:   "indexer",
		Short: "Seed listing stores with hostels for every city and university",
		Long: "Заполняет PostgreSQL и/или Elasticsearch объектами для каждой пары город/университет из справочника.\n" +
			"По умолчанию используется встроенный каталог; с --generate объекты запрашиваются у Gemini.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.backend, "backend", opts.backend, "postgres, elasticsearch or all")
	cmd.Flags().IntVar(&opts.universityLimit, "university-limit", 0, "max universities per city (0 = all)")
	cmd.Flags().BoolVar(&opts.generate, "generate", false, "generate listings with Gemini instead of the built-in catalog")
	return cmd
}

func run(parent context.Context, cfg *config.Config, opts options) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var generator source.Generator
	if opts.generate {
		g, err := source.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return fmt.Errorf("failed to create generator: %w", err)
		}
		generator = g
	}
	fetcher := source.NewAdapter(nil, generator, cfg.GeneratedListings, logger.Named("source"))

	listings := seedListings(ctx, registry.Default(), fetcher, opts.universityLimit)
	logger.Info("prepared listings", zap.Int("count", len(listings)))

	switch opts.backend {
	case config.BackendPostgres:
		return indexPostgres(ctx, cfg, listings, logger)
	case config.BackendElasticsearch:
		return indexElasticsearch(ctx, cfg, listings, logger)
	case backendAll:
		if err := indexPostgres(ctx, cfg, listings, logger); err != nil {
			return err
		}
		return indexElasticsearch(ctx, cfg, listings, logger)
	default:
		return fmt.Errorf("unsupported backend %q", opts.backend)
	}
}

func indexPostgres(ctx context.Context, cfg *config.Config, listings []listingSeed, logger *zap.Logger) error {
	pg, err := storage.NewPostgresStorage(cfg.DSN())
	if err != nil {
		return err
	}
	defer pg.Close()

	if err := pg.EnsureSchema(ctx, migrations.PostgresSchema); err != nil {
		return err
	}

	for _, s := range listings {
		if _, err := pg.InsertListing(ctx, s.Listing); err != nil {
			return fmt.Errorf("failed to insert %s: %w", s.Listing.ID, err)
		}
	}
	logger.Info("PostgreSQL indexing completed", zap.Int("count", len(listings)))
	return nil
}

func indexElasticsearch(ctx context.Context, cfg *config.Config, listings []listingSeed, logger *zap.Logger) error {
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:         []string{cfg.ElasticsearchURL},
		DisableMetaHeader: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	es := storage.NewElasticsearchStorageWithURL(esClient, cfg.ElasticsearchIndex, cfg.ElasticsearchURL)
	listingsIndex, roomsIndex := es.Indices()
	if err := es.CreateIndex(ctx, listingsIndex, migrations.ListingsMapping); err != nil {
		return err
	}
	if err := es.CreateIndex(ctx, roomsIndex, migrations.RoomTypesMapping); err != nil {
		return err
	}

	if err := es.BulkIndexListings(ctx, unwrap(listings)); err != nil {
		return fmt.Errorf("failed to index listings: %w", err)
	}
	logger.Info("Elasticsearch indexing completed", zap.Int("count", len(listings)))
	return nil
}
