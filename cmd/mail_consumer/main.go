package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/SeakMengs/certgen/internal/config"
	"github.com/SeakMengs/certgen/internal/env"
	"github.com/SeakMengs/certgen/internal/mailer"
	"github.com/SeakMengs/certgen/internal/queue"
	"github.com/SeakMengs/certgen/internal/util"
	"github.com/SeakMengs/certgen/pkg/autocert"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

const (
	MAX_WORKER = 3
)

func main() {
	cfg := config.GetConfig()
	logger := util.NewLogger(cfg.ENV)
	defer logger.Sync()

	var mail mailer.Client
	switch cfg.Mail.PROVIDER {
	case "sendgrid":
		mail = mailer.NewSendgrid(cfg.Mail.SEND_GRID.API_KEY, cfg.Mail.FROM_EMAIL, cfg.IsProduction(), logger)
	default:
		mail = mailer.NewGmailMailer(cfg.Mail.GMAIL_USERNAME, cfg.Mail.GMAIL_APP_PASSWORD, logger)
	}

	tmpDir := filepath.Join(os.TempDir(), "certgen", "mail")
	if err := os.MkdirAll(tmpDir, 0755); err != nil {
		logger.Panic(err)
	}
	renderer, err := autocert.NewRenderer(&autocert.Config{
		FontMetadataPath: cfg.Certificate.FONT_METADATA_PATH,
		FontName:         cfg.Certificate.FONT_NAME,
		TmpDir:           tmpDir,
		VerifyURLPattern: cfg.Certificate.VERIFY_URL_PATTERN,
		Workers:          1,
	})
	if err != nil {
		logger.Panicf("Failed to create certificate renderer: %v", err)
	}

	app := queue.MailConsumerContext{
		Config:   &cfg,
		Logger:   logger,
		Mailer:   mail,
		Renderer: renderer,
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.GetConnectionString())
	if err != nil {
		logger.Panic("Error connecting to RabbitMQ: ", err)
	}
	defer func() {
		if err := rabbitMQ.Close(); err != nil {
			logger.Errorf("Failed to close RabbitMQ connection: %v", err)
		}
	}()

	logger.Infof("Connected to RabbitMQ at %s:%s", cfg.RabbitMQ.HOST, cfg.RabbitMQ.PORT)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rabbitMQ.ConsumeMailJob(ctx, queue.HandleCertificateMailJob, MAX_WORKER, &app); err != nil {
		logger.Fatalf("Failed to consume mail job: %v", err)
	}

	logger.Infof("Started consuming mail job")

	<-ctx.Done()
	logger.Info("Shutting down mail consumer")
}
