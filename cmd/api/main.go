package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	appcontext "github.com/SeakMengs/certgen/internal/app_context"
	"github.com/SeakMengs/certgen/internal/auth"
	"github.com/SeakMengs/certgen/internal/config"
	"github.com/SeakMengs/certgen/internal/controller"
	"github.com/SeakMengs/certgen/internal/database"
	"github.com/SeakMengs/certgen/internal/env"
	filestorage "github.com/SeakMengs/certgen/internal/file_storage"
	"github.com/SeakMengs/certgen/internal/mailer"
	"github.com/SeakMengs/certgen/internal/metrics"
	"github.com/SeakMengs/certgen/internal/middleware"
	"github.com/SeakMengs/certgen/internal/queue"
	ratelimiter "github.com/SeakMengs/certgen/internal/rate_limiter"
	"github.com/SeakMengs/certgen/internal/reaper"
	"github.com/SeakMengs/certgen/internal/repository"
	"github.com/SeakMengs/certgen/internal/route"
	"github.com/SeakMengs/certgen/internal/util"
	"github.com/SeakMengs/certgen/pkg/autocert"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()

	logger := util.NewLogger(cfg.ENV)
	defer logger.Sync()
	logger.Debugf("Configuration: %+v \n", cfg)

	db, err := database.ConnectReturnGormDB(cfg.DB, cfg.IsProduction())
	if err != nil {
		logger.Panic(err)
	}

	sqlDb, err := db.DB()
	if err != nil {
		logger.Panic(err)
	}
	defer sqlDb.Close()

	// The server still starts when the database is down, store routes answer 503 until it is back.
	if err := database.Ping(context.Background(), db); err != nil {
		logger.Warnf("Database is not reachable yet: %v", err)
	} else {
		logger.Info("Database connected \n")
	}

	// Custom validation
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := util.RegisterCustomValidations(v); err != nil {
			logger.Panicf("Failed to register custom validations: %v", err)
		}
	}

	var rdb *ratelimiter.Redis
	if cfg.Redis.ADDR != "" {
		rdb = ratelimiter.NewRedis(cfg.Redis)
		if !rdb.Healthy(context.Background()) {
			logger.Warnf("Redis at %s is not reachable, rate limiting in memory", cfg.Redis.ADDR)
			rdb.Close()
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}
	rateLimiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, rdb, logger)

	renderer, err := newRenderer(cfg.Certificate)
	if err != nil {
		logger.Panicf("Failed to create certificate renderer: %v", err)
	}

	jwtService := auth.NewJwt(cfg.Auth,
		logger)
	repo := repository.NewRepository(db, logger)
	app := appcontext.Application{
		Config:     &cfg,
		Repository: repo,
		Logger:     logger,
		PingDatabase: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
		Mailer:     newMailer(cfg, logger),
		JWTService: jwtService,
		Renderer:   renderer,
		Metrics:    metrics.New(),
	}

	storage, err := filestorage.NewMinioStorage(cfg.Minio)
	if err != nil {
		logger.Warnf("Object storage disabled: %v", err)
	} else {
		app.Storage = storage
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.GetConnectionString())
	if err != nil {
		logger.Warnf("RabbitMQ not connected, certificate mails are sent directly: %v", err)
	} else {
		logger.Info("RabbitMQ connected \n")
		defer func() {
			if err := rabbitMQ.Close(); err != nil {
				logger.Errorf("Failed to close RabbitMQ connection: %v", err)
			}
		}()
		app.Queue = rabbitMQ
	}

	seedDefaultData(&cfg, db, repo, logger)

	uploadReaper := reaper.New(cfg.Upload, logger)
	uploadReaper.OnReaped = app.Metrics.UploadsReaped
	if err := uploadReaper.Start(); err != nil {
		logger.Errorf("Failed to start upload reaper: %v", err)
	} else {
		defer uploadReaper.Stop()
	}

	_middleware := middleware.NewMiddleware(&app, rateLimiter)

	if cfg.IsProduction() {
		logger.Info("Running in production mode")
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// docs: https://github.com/gin-contrib/cors?tab=readme-ov-file#using-defaultconfig-as-start-point
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Requested-With", "Accept"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", "Retry-After"}
	r.Use(cors.New(corsConfig))
	r.Use(app.Metrics.Middleware())
	r.Use(_middleware.RateLimiterMiddleware)

	r.GET("/metrics", app.Metrics.Handler())

	_controller := controller.NewController(&app)
	route.Register(r, _controller, _middleware)

	if err := r.Run("0.0.0.0:" + app.Config.Port); err != nil {
		logger.Panicf("Error running server: %v \n", err)
	}
}

func newRenderer(cfg config.CertificateConfig) (*autocert.Renderer, error) {
	tmpDir := filepath.Join(os.TempDir(), "certgen", "tmp")
	// 0755 mean owner can read, write and execute
	if err := os.MkdirAll(tmpDir, 0755); err != nil {
		return nil, err
	}

	return autocert.NewRenderer(&autocert.Config{
		FontMetadataPath: cfg.FONT_METADATA_PATH,
		FontName:         cfg.FONT_NAME,
		TmpDir:           tmpDir,
		VerifyURLPattern: cfg.VERIFY_URL_PATTERN,
		Workers:          cfg.WORKERS,
	})
}

// newMailer picks the configured provider. Nil means certificate mails cannot be
// sent without the queue consumer.
func newMailer(cfg config.Config, logger *zap.SugaredLogger) mailer.Client {
	switch cfg.Mail.PROVIDER {
	case "sendgrid":
		if cfg.Mail.SEND_GRID.API_KEY == "" {
			logger.Warn("MAIL_SEND_GRID_API_KEY is empty, mail disabled")
			return nil
		}
		return mailer.NewSendgrid(cfg.Mail.SEND_GRID.API_KEY, cfg.Mail.FROM_EMAIL, cfg.IsProduction(), logger)
	default:
		if cfg.Mail.GMAIL_USERNAME == "" || cfg.Mail.GMAIL_APP_PASSWORD == "" {
			logger.Warn("Gmail credentials are empty, mail disabled")
			return nil
		}
		return mailer.NewGmailMailer(cfg.Mail.GMAIL_USERNAME, cfg.Mail.GMAIL_APP_PASSWORD, logger)
	}
}

// seedDefaultData migrates and seeds when the database is reachable at startup.
func seedDefaultData(cfg *config.Config, db *gorm.DB, repo *repository.Repository, logger *zap.SugaredLogger) {
	if !cfg.SEED_DEFAULT_DATA {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.Ping(ctx, db); err != nil {
		logger.Warn("Skipping default data, database is not reachable")
		return
	}
	if err := db.WithContext(ctx).AutoMigrate(repository.Models()...); err != nil {
		logger.Errorf("Failed to migrate database: %v", err)
		return
	}

	seeded, err := repo.SeedDefaultData(ctx)
	if err != nil {
		logger.Errorf("Failed to seed default data: %v", err)
		return
	}
	if seeded {
		logger.Info("Seeded default colleges, users and students")
	}
}
