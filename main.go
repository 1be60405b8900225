package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"restaurante360/config"
	"restaurante360/jobs"
	"restaurante360/middleware"
	"restaurante360/routes"
	"restaurante360/services"
	"restaurante360/services/notification"
	"restaurante360/validator"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

func main() {
	ctx := context.Background()

	app, err := config.InitApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	defer app.Close()

	if err := config.Migrate(app.DB); err != nil {
		app.Logger.Error("Failed to migrate tables: %v", err)
		os.Exit(1)
	}

	validator.RegisterWithGin(validator.Default())

	identity, err := newIdentityProvider(ctx, app)
	if err != nil {
		app.Logger.Error("Failed to initialize identity provider: %v", err)
		os.Exit(1)
	}

	pusher, err := notification.NewPusher(ctx, app.Firebase, app.Logger)
	if err != nil {
		app.Logger.Error("Failed to initialize push notifications: %v", err)
		os.Exit(1)
	}

	var uploader services.Uploader
	if app.Cloudinary != nil {
		uploader = services.NewCloudinaryUploader(app.Cloudinary)
	}

	cache := services.NewCache(app.Redis, app.Logger)
	svc := services.New(services.Options{
		DB:        app.DB,
		Logger:    app.Logger,
		Cache:     cache,
		Publisher: notification.NewMelodyHub(app.Melody),
		Pusher:    pusher,
		Location:  app.Location,
	}, identity, uploader)

	if err := jobs.InitCronJobs(app.Cron, svc, cache, app.Logger); err != nil {
		app.Logger.Error("Failed to initialize cron jobs: %v", err)
		os.Exit(1)
	}

	app.Melody.HandleConnect(func(s *melody.Session) {
		userID, _ := s.Get(notification.KeyUserID)
		app.Logger.Debug("websocket connected: %v", userID)
	})

	app.Router.Use(middleware.RequestID(), middleware.RequestLogger(app.Logger), gin.Recovery())
	routes.SetupRoutes(app.Router, svc, app.Melody, app.Logger)

	serve(app)
}

func newIdentityProvider(ctx context.Context, app *config.App) (services.IdentityProvider, error) {
	if app.Config.Auth.Provider == config.ProviderFirebase {
		return services.NewFirebaseProvider(ctx, app.Firebase)
	}
	return services.NewLocalProvider(app.Config.Auth.JWTSecret, app.Config.Auth.JWTTTL, nil), nil
}

// serve runs the HTTP server until SIGINT or SIGTERM, then drains it.
func serve(app *config.App) {
	server := &http.Server{
		Addr:    net.JoinHostPort("", app.Config.Port),
		Handler: app.Router,
	}

	go func() {
		app.Logger.Info("Server starting on port %s...", app.Config.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Logger.Error("Failed to start server: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Logger.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), app.Config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		app.Logger.Error("failed to shutdown http server: %v", err)
	}
}
