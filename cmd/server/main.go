package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"loftly/internal/adapters/postgres"
	"loftly/internal/adapters/redis"
	"loftly/internal/adapters/ws"
	"loftly/internal/config"
	"loftly/internal/core/account"
	"loftly/internal/core/auth"
	"loftly/internal/core/message"
	"loftly/internal/core/rental"
	"loftly/internal/core/user"
	"loftly/internal/event"
	"loftly/internal/logger"
	"loftly/internal/metrics"
	"loftly/internal/storage/local"
	"loftly/internal/token"

	rest "loftly/internal/adapters/http"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.New(cfg)

	if cfg.JWTSecret == "" {
		panic("FATAL: JWT_SECRET is mandatory for Server!")
	}

	dbPool, err := postgres.InitDB(cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to init DB", "error", err)
		return
	}
	defer dbPool.Close()

	var limiter auth.LoginLimiter
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(cfg.RedisURL)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			return
		}
		defer redisClient.Close()
		limiter = redis.NewLoginLimiter(redisClient, cfg.LoginAttemptLimit, cfg.LoginAttemptWindow)
	}

	userRepo := postgres.NewUserRepository(dbPool)
	rentalRepo := postgres.NewRentalRepository(dbPool)
	messageRepo := postgres.NewMessageRepository(dbPool)

	tokens := token.NewService(cfg.JWTSecret, cfg.JWTExpiry)
	files := local.NewStorage(cfg.UploadDir, cfg.BaseURL)
	bus := event.New()
	collector := metrics.NewCollector()

	authService := auth.NewService(userRepo, tokens, limiter)
	userService := user.NewService(userRepo)
	accountService := account.NewService(userRepo)
	rentalService := rental.NewService(rentalRepo, files)
	messageService := message.NewService(messageRepo, rentalRepo, userRepo, bus)

	authHandler := rest.NewAuthHandler(authService, cfg, log)
	userHandler := rest.NewUserHandler(userService, log)
	accountHandler := rest.NewAccountHandler(accountService, log)
	rentalHandler := rest.NewRentalHandler(rentalService, log)
	messageHandler := rest.NewMessageHandler(messageService, log)

	wsHub := ws.NewHub(ctx, log)
	go wsHub.Run()
	wsHandler := ws.NewHandler(wsHub, authService, log, cfg.AllowedOrigins)
	ws.RegisterSubscribers(bus, wsHub)

	router := rest.NewRouter(cfg, &rest.RouterDeps{
		Auth:    authHandler,
		Account: accountHandler,
		User:    userHandler,
		Rental:  rentalHandler,
		Message: messageHandler,
		Ws:      wsHandler,

		AuthService: authService,
		Metrics:     collector,
		UploadDir:   cfg.UploadDir,
		Log:         log,
	})

	srv := rest.NewServer(router, cfg.Address)

	errCh := make(chan error, 1)
	go func() {
		log.Info("http: starting server", "address", cfg.Address)
		errCh <- srv.ListenAndServe()
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		wsHub.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http: server shutdown error", "error", err)
		}

	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Error("http: server error", "error", err)
		}
	}

	log.Info("server stopped")
}
