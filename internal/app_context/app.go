package appcontext

import (
	"context"

	"github.com/SeakMengs/certgen/internal/auth"
	"github.com/SeakMengs/certgen/internal/config"
	filestorage "github.com/SeakMengs/certgen/internal/file_storage"
	"github.com/SeakMengs/certgen/internal/mailer"
	"github.com/SeakMengs/certgen/internal/metrics"
	"github.com/SeakMengs/certgen/internal/queue"
	"github.com/SeakMengs/certgen/internal/repository"
	"github.com/SeakMengs/certgen/pkg/autocert"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Repository provides access to data storage operations.
	Repository *repository.Repository

	// PingDatabase reports whether the store answers. Store backed routes refuse to
	// run while it fails.
	PingDatabase func(ctx context.Context) error

	// Mailer handles email-sending functions. Used directly when no queue is available.
	Mailer mailer.Client

	// JWTService manages JWT operations for authentication such as generate and verify.
	JWTService auth.JWTInterface

	// Storage is nil when object storage is not configured.
	Storage filestorage.ObjectStorage

	// Queue is nil when RabbitMQ is unreachable.
	Queue queue.Publisher

	Renderer *autocert.Renderer

	Metrics *metrics.Metrics
}
