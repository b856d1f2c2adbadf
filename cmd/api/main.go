package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/vidshare/internal/api/handler"
	"github.com/hszk-dev/vidshare/internal/api/middleware"
	"github.com/hszk-dev/vidshare/internal/auth"
	"github.com/hszk-dev/vidshare/internal/background"
	"github.com/hszk-dev/vidshare/internal/config"
	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/infrastructure/cache"
	"github.com/hszk-dev/vidshare/internal/infrastructure/postgres"
	"github.com/hszk-dev/vidshare/internal/infrastructure/queue"
	"github.com/hszk-dev/vidshare/internal/infrastructure/storage"
	"github.com/hszk-dev/vidshare/internal/probe"
	"github.com/hszk-dev/vidshare/internal/usecase"
)

// multipartOverhead is the allowance for form fields and part headers on top of the file limits.
const multipartOverhead = 1 << 20

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(cfg.Upload.TempDir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	verifier, err := auth.NewVerifier(cfg.Auth.AccessTokenSecret, cfg.Auth.Issuer)
	if err != nil {
		return fmt.Errorf("failed to configure token verifier: %w", err)
	}

	// Initialize infrastructure clients
	pgClient, err := postgres.NewClient(ctx, postgres.DefaultClientConfig(cfg.Database.DSN()))
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pgClient.Close()
	logger.Info("connected to PostgreSQL")

	storageClient, err := storage.NewClient(ctx, storage.ClientConfig{
		Endpoint:  cfg.MinIO.Endpoint,
		AccessKey: cfg.MinIO.AccessKey,
		SecretKey: cfg.MinIO.SecretKey,
		Bucket:    cfg.MinIO.Bucket,
		UseSSL:    cfg.MinIO.UseSSL,
		PublicURL: cfg.MinIO.PublicURL,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to MinIO: %w", err)
	}
	logger.Info("connected to MinIO")

	queueClient, err := queue.NewClient(ctx, queue.DefaultClientConfig(cfg.RabbitMQ.URL()))
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer queueClient.Close()
	logger.Info("connected to RabbitMQ")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("connected to Redis")

	runner := background.New(background.Config{
		Workers:     cfg.Background.Workers,
		QueueSize:   cfg.Background.QueueSize,
		MaxAttempts: cfg.Background.MaxAttempts,
		Backoff:     cfg.Background.Backoff,
		TaskTimeout: cfg.Background.TaskTimeout,
	}, logger)
	runner.Start()

	// Repositories
	pool := pgClient.Pool()
	videoRepo := postgres.NewVideoRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	tweetRepo := postgres.NewTweetRepository(pool)
	playlistRepo := postgres.NewPlaylistRepository(pool)
	relationRepo := postgres.NewRelationRepository(pool)
	feedRepo := postgres.NewFeedRepository(pool)
	statsCache := cache.NewRedisStatsCache(redisClient)

	// Services
	videoSvc := usecase.NewVideoService(
		videoRepo,
		userRepo,
		storageClient,
		queueClient,
		probe.NewFFprobe(probe.FFprobeConfig{FFprobePath: cfg.Upload.FFprobePath}),
		runner,
		logger,
		usecase.VideoServiceConfig{
			MaxVideoBytes:     cfg.Upload.MaxVideoBytes,
			MaxThumbnailBytes: cfg.Upload.MaxThumbnailBytes,
		},
	)
	feedSvc := usecase.NewFeedService(feedRepo, videoRepo, userRepo)
	statsSvc := usecase.NewCachedStatsService(
		usecase.NewStatsService(userRepo),
		statsCache,
		usecase.CachedStatsServiceConfig{CacheTTL: cfg.Stats.CacheTTL},
	)

	toggleSvc := usecase.NewToggleService(relationRepo, videoRepo, commentRepo, tweetRepo, userRepo)

	handlers := routeHandlers{
		video: handler.NewVideoHandler(videoSvc, feedSvc, handler.UploadConfig{
			TempDir:         cfg.Upload.TempDir,
			MaxRequestBytes: cfg.Upload.MaxVideoBytes + cfg.Upload.MaxThumbnailBytes + multipartOverhead,
		}),
		comment:      handler.NewCommentHandler(usecase.NewCommentService(commentRepo, videoRepo), feedSvc),
		tweet:        handler.NewTweetHandler(usecase.NewTweetService(tweetRepo), feedSvc),
		playlist:     handler.NewPlaylistHandler(usecase.NewPlaylistService(playlistRepo, videoRepo), feedSvc),
		dashboard:    handler.NewDashboardHandler(statsSvc, feedSvc),
		like:         handler.NewLikeHandler(toggleSvc, feedSvc),
		subscription: handler.NewSubscriptionHandler(toggleSvc, feedSvc),
		user:         handler.NewUserHandler(feedSvc),
		health: handler.NewHealthHandler(map[string]handler.CheckFunc{
			"postgres": pgClient.Ping,
			"minio":    storageClient.Ping,
			"redis":    statsCache.Ping,
			"rabbitmq": func(context.Context) error {
				if !queueClient.Healthy() {
					return handler.ErrUnhealthy
				}
				return nil
			},
		}),
		authn: middleware.NewAuthenticator(verifier, cfg.Auth.CookieName, logger),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      setupRouter(logger, handlers),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	// Drain deferred work (watch history, cleanup dispatch) before the clients close.
	if err := runner.Shutdown(shutdownCtx); err != nil {
		logger.Warn("background tasks did not drain", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
	return nil
}

type routeHandlers struct {
	video        *handler.VideoHandler
	comment      *handler.CommentHandler
	tweet        *handler.TweetHandler
	like         *handler.LikeHandler
	subscription *handler.SubscriptionHandler
	playlist     *handler.PlaylistHandler
	dashboard    *handler.DashboardHandler
	user         *handler.UserHandler
	health       *handler.HealthHandler
	authn        *middleware.Authenticator
}

func setupRouter(logger *slog.Logger, h routeHandlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/health", handler.Health)
	r.Get("/health/ready", h.health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		// Watch history is only recorded for authenticated viewers.
		r.With(h.authn.Optional).Get("/videos/{videoId}", h.video.Get)

		r.Group(func(r chi.Router) {
			r.Use(h.authn.Require)

			r.Get("/videos", h.video.List)
			r.Post("/videos", h.video.Publish)
			r.Patch("/videos/{videoId}", h.video.Update)
			r.Delete("/videos/{videoId}", h.video.Delete)
			r.Patch("/videos/toggle/publish/{videoId}", h.video.TogglePublish)

			r.Get("/comments/{videoId}", h.comment.List)
			r.Post("/comments/{videoId}", h.comment.Add)
			r.Patch("/comments/c/{commentId}", h.comment.Update)
			r.Delete("/comments/c/{commentId}", h.comment.Delete)

			r.Post("/likes/toggle/v/{videoId}", h.like.Toggle(model.TargetVideo, "videoId"))
			r.Post("/likes/toggle/c/{commentId}", h.like.Toggle(model.TargetComment, "commentId"))
			r.Post("/likes/toggle/t/{tweetId}", h.like.Toggle(model.TargetTweet, "tweetId"))
			r.Get("/likes/videos", h.like.LikedVideos)

			r.Get("/users/watch-history", h.user.WatchHistory)

			r.Post("/subscriptions/c/{channelId}", h.subscription.Toggle)
			r.Get("/subscriptions/c/{channelId}", h.subscription.Subscribers)
			r.Get("/subscriptions/u/{subscriberId}", h.subscription.SubscribedChannels)

			r.Post("/tweets", h.tweet.Create)
			r.Get("/tweets/user/{userId}", h.tweet.ListByUser)
			r.Patch("/tweets/{tweetId}", h.tweet.Update)
			r.Delete("/tweets/{tweetId}", h.tweet.Delete)

			r.Post("/playlists", h.playlist.Create)
			r.Get("/playlists/user/{userId}", h.playlist.ListByUser)
			r.Get("/playlists/{playlistId}", h.playlist.Get)
			r.Patch("/playlists/{playlistId}", h.playlist.Update)
			r.Delete("/playlists/{playlistId}", h.playlist.Delete)
			r.Post("/playlists/{playlistId}/{videoId}", h.playlist.AddVideo)
			r.Delete("/playlists/{playlistId}/{videoId}", h.playlist.RemoveVideo)

			r.Get("/dashboard/stats", h.dashboard.Stats)
			r.Get("/dashboard/videos", h.dashboard.Videos)
		})
	})

	return r
}
