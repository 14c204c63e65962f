package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tubenotes/infrastructure/cache"
	driveclient "tubenotes/infrastructure/clients/drive"
	"tubenotes/infrastructure/configuration"
	"tubenotes/infrastructure/logger"
	"tubenotes/infrastructure/persistence"
	httpHandler "tubenotes/interfaces/http"
	"tubenotes/server"
	"tubenotes/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App
	if app.SecretKey == "" {
		logger.GetLogger().Error("SECRET_KEY not configured - session tokens cannot be verified")
	}

	mongoDb, err := persistence.NewMongoDb(
		configuration.C.Database.Mongo.Host,
		configuration.C.Database.Mongo.Port,
		configuration.C.Database.Mongo.User,
		configuration.C.Database.Mongo.Password,
		configuration.C.Database.Mongo.Name,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("MongoDB initialization failed")
		os.Exit(1)
	}
	if err := mongoDb.Ping(ctx, nil); err != nil {
		logger.GetLogger().WithField("error", err).Error("MongoDB ping failed")
		os.Exit(1)
	}
	logger.GetLogger().Info("MongoDB connected successfully")

	redisClient, err := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	if err != nil {
		redisClient = nil // listing cache disabled, requests fall through to Mongo
	}

	dbName := configuration.C.Database.Mongo.Name
	userRepository := persistence.NewUserRepository(mongoDb, dbName)
	videoRepository := persistence.NewVideoRepository(mongoDb, dbName)
	videoCache := cache.NewVideoCache(redisClient)
	storage := driveclient.NewDriveClient(configuration.C.Google.ClientID, configuration.C.Google.ClientSecret)

	userUsecase := usecase.NewUserUsecase(userRepository, app.SecretKey)
	bookmarkUsecase := usecase.NewBookmarkUsecaseWithCache(videoRepository, storage, configuration.C.Drive.RootFolder, videoCache)
	videoUsecase := usecase.NewVideoUsecaseWithCache(videoRepository, storage, videoCache)

	bookmarkHandler := httpHandler.NewBookmarkHandler(bookmarkUsecase)
	videoHandler := httpHandler.NewVideoHandler(videoUsecase)

	authHandler, err := httpHandler.NewAuthHandler(userUsecase)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Google OAuth not configured - login routes disabled")
		authHandler = nil
	}

	router := server.InitiateRouter(bookmarkHandler, videoHandler, authHandler, userRepository)

	port := app.Port
	logger.GetLogger().WithField("port", port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}
	if err := mongoDb.Disconnect(shutdownCtx); err != nil {
		logger.GetLogger().WithField("error", err).Warn("MongoDB disconnect failed")
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}
