package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"folio-backend/internal/admin"
	"folio-backend/internal/auth"
	"folio-backend/internal/bespoke"
	"folio-backend/internal/cache"
	"folio-backend/internal/casestudies"
	"folio-backend/internal/catalog"
	"folio-backend/internal/config"
	"folio-backend/internal/contact"
	"folio-backend/internal/db"
	"folio-backend/internal/middleware"
	"folio-backend/internal/notifications"
	"folio-backend/internal/pages"
	"folio-backend/internal/render"
	"folio-backend/internal/validation"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		client *mongo.Client
		cols   *db.Collections
	)
	if cfg.UsesMongo() {
		client, cols, err = db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			logger.Error("mongo connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("mongo connected", slog.String("db", cfg.MongoDB))
		defer client.Disconnect(context.Background())

		if err := db.EnsureIndexes(ctx, cols); err != nil {
			logger.Error("index creation failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.UsesRedis() {
		var redisCache *cache.RedisCache
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisCache.Close()
		logger.Info("redis connected")
		cacheStore = redisCache
	}

	var (
		repo    catalog.Repository
		purgers []admin.Purger
	)
	switch cfg.CatalogSource {
	case config.SourceMongo:
		cached := catalog.NewCachedRepository(catalog.NewMongoRepository(cols.CaseStudies), cacheStore, cfg.CacheTTL(), logger)
		repo = cached
		purgers = append(purgers, cached)
		logger.Info("catalog source", slog.String("source", "mongo"))
	default:
		static, err := catalog.LoadStatic()
		if err != nil {
			logger.Error("static catalog invalid", slog.String("error", err.Error()))
			os.Exit(1)
		}
		repo = static
		logger.Info("catalog source", slog.String("source", "static"))
	}
	purgers = append(purgers, admin.PurgerFunc(func(ctx context.Context) error {
		return cacheStore.DeletePrefix(ctx, casestudies.PageCachePrefix)
	}))

	registry, err := bespoke.Registry()
	if err != nil {
		logger.Error("bespoke pages invalid", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("bespoke pages loaded", slog.String("slugs", strings.Join(registry.Slugs(), ",")))

	pageRenderer, err := pages.New(pages.Site{Name: cfg.SiteName, Tagline: cfg.SiteTagline})
	if err != nil {
		logger.Error("page templates invalid", slog.String("error", err.Error()))
		os.Exit(1)
	}

	assembler := casestudies.NewAssembler(repo, catalog.NewResolver(repo, registry), render.New(logger), cfg.Timezone, cfg.DefaultYear)
	caseStudiesHandler := casestudies.NewHandler(assembler, pageRenderer, cacheStore, cfg.CacheTTL(), logger)

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager, err = auth.NewManager(cfg.JWTSecret, cfg.AccessTTL(), "folio-backend")
		if err != nil {
			logger.Error("jwt setup failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	mailer := notifications.NewBrevoClient(cfg.BrevoAPIKey, cfg.BrevoSenderEmail, cfg.BrevoSenderName, cfg.OwnerEmail, cfg.SiteName)
	var notifier contact.Notifier
	if mailer == nil {
		logger.Info("brevo mailer disabled")
	} else {
		notifier = mailer
		logger.Info("brevo mailer enabled", slog.String("sender", cfg.BrevoSenderEmail))
	}

	var contactRepo contact.Repository = contact.NewMemoryRepository()
	if cols != nil {
		contactRepo = contact.NewMongoRepository(cols.ContactMessages)
	}

	val := validation.New()
	contactHandler := contact.NewHandler(contact.NewService(contactRepo, cfg.Timezone, notifier), val, logger)
	adminHandler := admin.NewHandler(admin.Credentials{
		User:         cfg.AdminUser,
		PasswordHash: cfg.AdminPasswordHash,
		CookieSecure: cfg.CookieSecure,
	}, jwtManager, val, logger, purgers...)

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler := newRouter(routerDeps{
		Log:             logger,
		CaseStudies:     caseStudiesHandler,
		Contact:         contactHandler,
		Admin:           adminHandler,
		JWT:             jwtManager,
		AdminAPIKey:     cfg.AdminAPIKey,
		FrontendOrigins: cfg.FrontendOrigins,
		ContactLimiter:  middleware.NewRateLimiter(cfg.RateLimitContact, cfg.RateLimitWindow()),
		Registry:        promRegistry,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
	contactHandler.Wait()
	logger.Info("server stopped")
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
