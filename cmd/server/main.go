// @title           FindMyDorm API
// @version         1.0
// @description     REST API поиска студенческого жилья рядом с университетами: справочник городов, поиск и фильтрация объектов, отзывы, сообщество и модерация заявок.

// @contact.name   API Support
// @contact.email  akozadaev@inbox.ru
// @contact.url    https://github.com/akozadaev/findmydorm

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @schemes   http https
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/akozadaev/findmydorm/docs" // swagger docs
	"github.com/akozadaev/findmydorm/internal/config"
	"github.com/akozadaev/findmydorm/internal/handlers"
	"github.com/akozadaev/findmydorm/internal/logging"
	"github.com/akozadaev/findmydorm/internal/moderation"
	"github.com/akozadaev/findmydorm/internal/registry"
	"github.com/akozadaev/findmydorm/internal/session"
	"github.com/akozadaev/findmydorm/internal/source"
	"github.com/akozadaev/findmydorm/internal/storage"
	"github.com/akozadaev/findmydorm/migrations"
)

// backends содержит хранилища, выбранные по STORE_BACKEND.
type backends struct {
	listings source.ListingStore
	content  handlers.ContentStore
	writer   moderation.ListingWriter
	users    moderation.UserDirectory
	close    func()
}

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		// Логгер еще не создан
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := openBackends(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer b.close()

	// Генератор используется, только когда хранилище не настроено
	var generator source.Generator
	if !cfg.StoreConfigured() && cfg.GeminiAPIKey != "" {
		g, err := source.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("generative service unavailable, built-in catalog will be used", zap.Error(err))
		} else {
			generator = g
			logger.Info("generative listing service enabled", zap.String("model", g.Name()))
		}
	}

	reg := registry.Default()
	adapter := source.NewAdapter(b.listings, generator, cfg.GeneratedListings, logger.Named("source"))
	sessions := session.NewManager(reg, adapter, logger.Named("session"))
	defer sessions.Close()
	go sessions.Run(ctx, time.Minute, time.Duration(cfg.SessionIdleMinutes)*time.Minute)

	mod := moderation.NewService(b.writer, b.users, cfg.AdminEmail, logger.Named("moderation"))

	// Инициализация handlers
	if cfg.AuthProxySecret == "" {
		logger.Warn("AUTH_PROXY_SECRET is not set, sign-in is disabled")
	}
	h := handlers.NewHandlers(reg, sessions, b.content, mod, cfg.AuthProxySecret, logger.Named("http"))

	// Настройка роутера
	router := mux.NewRouter()
	h.Register(router)

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	router.Use(loggingMiddleware(logger.Named("http")))

	// Настройка сервера
	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      corsMiddleware(router), // Preflight OPTIONS не совпадает с маршрутами mux
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // Поиск с wait=true ждет генеративный сервис
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.AppPort),
			zap.String("backend", cfg.StoreBackend),
			zap.Bool("generator", generator != nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Ожидание сигнала для graceful shutdown
	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

// openBackends подключает хранилище по STORE_BACKEND и создает схему или индексы.
// Без PostgreSQL отзывы, вопросы, сообщество и профили работают в режиме storage.Unconfigured.
func openBackends(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*backends, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pg, err := storage.NewPostgresStorage(cfg.DSN())
		if err != nil {
			return nil, err
		}
		if err := pg.EnsureSchema(ctx, migrations.PostgresSchema); err != nil {
			_ = pg.Close()
			return nil, err
		}
		logger.Info("connected to PostgreSQL", zap.String("host", cfg.PostgresHost))
		return &backends{
			listings: pg,
			content:  pg,
			writer:   pg,
			users:    pg,
			close:    func() { _ = pg.Close() },
		}, nil

	case config.BackendElasticsearch:
		es, err := openElasticsearch(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return &backends{
			listings: es,
			content:  storage.Unconfigured{},
			writer:   es,
			users:    storage.Unconfigured{},
			close:    func() {},
		}, nil

	default:
		logger.Info("no listing store configured")
		return &backends{
			content: storage.Unconfigured{},
			writer:  storage.Unconfigured{},
			users:   storage.Unconfigured{},
			close:   func() {},
		}, nil
	}
}

func openElasticsearch(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*storage.ElasticsearchStorage, error) {
	// Используем кастомный транспорт для обхода проверки типа сервера
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:         []string{cfg.ElasticsearchURL},
		DisableMetaHeader: true,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Elasticsearch/OpenSearch client initialized", zap.String("url", cfg.ElasticsearchURL))

	es := storage.NewElasticsearchStorageWithURL(esClient, cfg.ElasticsearchIndex, cfg.ElasticsearchURL)
	listingsIndex, roomsIndex := es.Indices()
	if err := es.CreateIndex(ctx, listingsIndex, migrations.ListingsMapping); err != nil {
		logger.Warn("could not create index", zap.String("index", listingsIndex), zap.Error(err))
	}
	if err := es.CreateIndex(ctx, roomsIndex, migrations.RoomTypesMapping); err != nil {
		logger.Warn("could not create index", zap.String("index", roomsIndex), zap.Error(err))
	}
	return es, nil
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+handlers.SessionHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("duration", time.Since(start)))
		})
	}
}

// Проверка на этапе компиляции, что хранилища реализуют нужные интерфейсы.
var (
	_ source.ListingStore      = (*storage.PostgresStorage)(nil)
	_ source.ListingStore      = (*storage.ElasticsearchStorage)(nil)
	_ handlers.ContentStore    = (*storage.PostgresStorage)(nil)
	_ handlers.ContentStore    = storage.Unconfigured{}
	_ moderation.ListingWriter = (*storage.ElasticsearchStorage)(nil)
	_ moderation.UserDirectory = (*storage.PostgresStorage)(nil)
)
