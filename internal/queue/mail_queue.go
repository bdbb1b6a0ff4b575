package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SeakMengs/certgen/internal/config"
	"github.com/SeakMengs/certgen/internal/mailer"
	"github.com/SeakMengs/certgen/internal/util"
	"github.com/SeakMengs/certgen/pkg/autocert"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type MailConsumerContext struct {
	Config   *config.Config
	Logger   *zap.SugaredLogger
	Mailer   mailer.Client
	Renderer *autocert.Renderer
}

type MailJobPayload struct {
	ToEmail      string                  `json:"to_email"`
	ToName       string                  `json:"to_name"`
	TemplateFile mailer.MailTemplateFile `json:"template_file"`
	Data         json.RawMessage         `json:"data"`
	CreatedAt    string                  `json:"created_at"`
	Try          int                     `json:"try" default:"0"`
}

// CertificateMailData is everything a worker needs to render one certificate again.
type CertificateMailData struct {
	Participant autocert.Participant `json:"participant"`
	Template    autocert.Template    `json:"template"`
	// IssuedAt is the default event date, RFC3339.
	IssuedAt string `json:"issued_at"`
}

func NewMailJobPayload[T any](toEmail, toName string, templateFile mailer.MailTemplateFile, data T) (MailJobPayload, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return MailJobPayload{}, fmt.Errorf("failed to marshal data: %w", err)
	}

	return MailJobPayload{
		ToEmail:      toEmail,
		ToName:       toName,
		TemplateFile: templateFile,
		Data:         dataBytes,
		Try:          0,
		CreatedAt:    time.Now().Format(time.RFC3339),
	}, nil
}

func NewCertificateMailJob(p autocert.Participant, t autocert.Template, issuedAt time.Time) (MailJobPayload, error) {
	return NewMailJobPayload(p.Email(), p.DisplayName, mailer.TemplateCertificate, CertificateMailData{
		Participant: p,
		Template:    t,
		IssuedAt:    issuedAt.Format(time.RFC3339),
	})
}

// PublishMailJob queues a job on the mail queue.
func PublishMailJob(p Publisher, job MailJobPayload) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal mail job: %w", err)
	}
	return p.Publish(QueueMail, body)
}

// HandleCertificateMailJob renders the certificate of the job and mails it as a PDF
// attachment. Render failures are dropped, send failures are retried.
func HandleCertificateMailJob(ctx context.Context, jobPayload MailJobPayload, app *MailConsumerContext) (bool, error) {
	if jobPayload.TemplateFile != mailer.TemplateCertificate {
		return false, fmt.Errorf("unsupported mail template: %s", jobPayload.TemplateFile)
	}

	var data CertificateMailData
	if err := json.Unmarshal(jobPayload.Data, &data); err != nil {
		return false, fmt.Errorf("invalid certificate mail data: %w", err)
	}

	issuedAt, err := time.Parse(time.RFC3339, data.IssuedAt)
	if err != nil {
		issuedAt = time.Now()
	}

	certs, err := app.Renderer.RenderAll(ctx, []autocert.Participant{data.Participant}, autocert.ExportOptions{
		Template: data.Template,
		Now:      issuedAt,
	})
	if err != nil {
		return false, fmt.Errorf("failed to render certificate: %w", err)
	}
	cert := certs[0]

	status, err := app.Mailer.Send(mailer.Message{
		TemplateFile: mailer.TemplateCertificate,
		ToName:       jobPayload.ToName,
		ToEmail:      jobPayload.ToEmail,
		Data: mailer.CertificateMailData{
			StudentName: data.Participant.DisplayName,
			EventName:   data.Participant.Event(),
			AppName:     util.GetAppName(),
		},
		Attachments: []mailer.Attachment{{
			FileName:    cert.FileName,
			ContentType: "application/pdf",
			Data:        cert.PDF,
		}},
	})
	if err != nil {
		app.Logger.Errorw("Failed to send certificate mail", "to", jobPayload.ToEmail, "status", status, "error", err)
		return true, err
	}

	return false, nil
}

type MailJobHandler func(ctx context.Context, jobPayload MailJobPayload, app *MailConsumerContext) (bool, error)

func (r *RabbitMQ) ConsumeMailJob(ctx context.Context, handler MailJobHandler, maxWorker int, app *MailConsumerContext) error {
	msgs, err := r.Consume(QueueMail)
	if err != nil {
		return fmt.Errorf("failed to start consuming mail jobs: %w", err)
	}

	for i := range maxWorker {
		go func(workerNumber int) {
			runMailWorker(ctx, r, workerNumber, msgs, handler, app)
		}(i + 1)
	}

	return nil
}

func runMailWorker(ctx context.Context, rabbitMQ *RabbitMQ, workerNumber int, msgs <-chan amqp091.Delivery, handler MailJobHandler, app *MailConsumerContext) {
	for {
		select {
		case <-ctx.Done():
			app.Logger.Infof("[Mail Worker %d] Shutting down", workerNumber)
			return
		case msg, ok := <-msgs:
			if !ok {
				app.Logger.Infof("[Mail Worker %d] Message channel closed", workerNumber)
				return
			}
			processMailJob(ctx, rabbitMQ, workerNumber, msg, handler, app)
		}
	}
}

func processMailJob(ctx context.Context, rabbitMQ *RabbitMQ, workerNumber int, msg amqp091.Delivery, handler MailJobHandler, app *MailConsumerContext) {
	if msg.Body == nil {
		app.Logger.Warnf("[Mail Worker %d] Received empty message body", workerNumber)
		rabbitMQ.Nack(msg, false)
		return
	}

	var jobPayload MailJobPayload
	if err := json.Unmarshal(msg.Body, &jobPayload); err != nil {
		app.Logger.Warnf("[Mail Worker %d] Invalid payload: %v", workerNumber, err)
		rabbitMQ.Nack(msg, false)
		return
	}

	workerPrefix := fmt.Sprintf("[Mail Worker %d: Retry %d]", workerNumber, jobPayload.Try)

	shouldRequeue, err := handler(ctx, jobPayload, app)
	if err != nil {
		app.Logger.Errorf("%s Handler error processing mail job for recipient: %s, template: %s: %v",
			workerPrefix, jobPayload.ToEmail, jobPayload.TemplateFile, err)

		if !shouldRequeue || jobPayload.Try >= MAX_QUEUE_RETRY {
			app.Logger.Warnf("%s Dropping mail job for recipient: %s (retry: %d, shouldRequeue: %v)",
				workerPrefix, jobPayload.ToEmail, jobPayload.Try, shouldRequeue)
			rabbitMQ.Nack(msg, false)
			return
		}

		requeueMailJob(rabbitMQ, app.Logger, workerPrefix, msg, jobPayload)
		return
	}

	app.Logger.Infof("%s Successfully processed mail job for recipient: %s, template: %s",
		workerPrefix, jobPayload.ToEmail, jobPayload.TemplateFile)
	rabbitMQ.Ack(msg)
}

func requeueMailJob(rabbitMQ *RabbitMQ, logger *zap.SugaredLogger, workerPrefix string, msg amqp091.Delivery, jobPayload MailJobPayload) {
	jobPayload.Try++
	if err := PublishMailJob(rabbitMQ, jobPayload); err != nil {
		logger.Errorf("%s Failed to requeue mail job for recipient: %s: %v", workerPrefix, jobPayload.ToEmail, err)
		rabbitMQ.Nack(msg, false)
		return
	}

	logger.Infof("%s Requeued mail job for recipient: %s", workerPrefix, jobPayload.ToEmail)
	rabbitMQ.Ack(msg)
}
