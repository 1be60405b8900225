package config

import (
	"context"
	"fmt"
	"time"

	"restaurante360/services/logger"

	firebase "firebase.google.com/go/v4"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// App holds every infrastructure component the server is built from.
type App struct {
	Config     *Config
	Logger     *logger.ZeroLogger
	Location   *time.Location
	DB         *gorm.DB
	Redis      *redis.Client
	Cloudinary *cloudinary.Cloudinary
	Firebase   *firebase.App
	Router     *gin.Engine
	Melody     *melody.Melody
	Cron       *cron.Cron
}

func InitApp(ctx context.Context) (*App, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.Env, logger.LevelFromEnv(cfg.Env))
	app := &App{
		Config:   cfg,
		Logger:   log,
		Location: cfg.Location(),
	}

	if err := app.initComponents(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize components: %w", err)
	}

	app.Router = NewRouter(cfg)
	app.Melody = melody.New()
	app.Cron = cron.New(cron.WithLocation(app.Location))

	log.Info("All components initialized successfully")
	return app, nil
}

func (a *App) initComponents(ctx context.Context) error {
	var err error

	a.DB, err = ConnectDB(a.Config.DB, a.Config.Env, a.Logger)
	if err != nil {
		return err
	}

	a.Redis, err = ConnectRedis(ctx, a.Config.Redis, a.Logger)
	if err != nil {
		return err
	}

	a.Cloudinary, err = ConnectCloudinary(a.Config.CloudinaryURL, a.Logger)
	if err != nil {
		return err
	}

	a.Firebase, err = ConnectFirebase(ctx, a.Config.Auth.FirebaseCredentials, a.Logger)
	return err
}

// NewRouter builds the gin engine with CORS configured.
func NewRouter(cfg *Config) *gin.Engine {
	if cfg.Env != EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", "X-Request-ID")
	configCors.AddExposeHeaders("X-Request-ID", "Content-Disposition")
	configCors.AllowCredentials = true
	if len(cfg.CORSOrigins) > 0 {
		configCors.AllowOrigins = cfg.CORSOrigins
	} else {
		configCors.AllowOriginFunc = func(origin string) bool {
			return true
		}
	}
	router.Use(cors.New(configCors))

	_ = router.SetTrustedProxies(nil)
	return router
}

// Close releases connections in reverse order of creation.
func (a *App) Close() {
	if a.Cron != nil {
		<-a.Cron.Stop().Done()
	}
	if a.Melody != nil {
		_ = a.Melody.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
