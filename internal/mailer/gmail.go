package mailer

import (
	"fmt"
	"io"
	"net/http"

	"github.com/SeakMengs/certgen/internal/util"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type GmailMailer struct {
	fromEmail string
	fromName  string
	host      string
	port      int
	username  string
	password  string
	logger    *zap.SugaredLogger
}

func NewGmailMailer(username, password string, logger *zap.SugaredLogger) *GmailMailer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &GmailMailer{
		fromEmail: username,
		fromName:  util.GetAppName(),
		host:      "smtp.gmail.com",
		port:      587,
		username:  username,
		password:  password,
		logger:    logger,
	}
}

func (gm *GmailMailer) buildMessage(msg Message) (*gomail.Message, error) {
	subject, body, err := renderTemplate(msg.TemplateFile, msg.Data)
	if err != nil {
		return nil, err
	}

	message := gomail.NewMessage()
	message.SetHeader("From", message.FormatAddress(gm.fromEmail, gm.fromName))
	if msg.ToName != "" {
		message.SetHeader("To", message.FormatAddress(msg.ToEmail, msg.ToName))
	} else {
		message.SetHeader("To", msg.ToEmail)
	}
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", body)

	for _, a := range msg.Attachments {
		data := a.Data
		message.Attach(a.FileName,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}),
		)
	}

	return message, nil
}

func (gm *GmailMailer) Send(msg Message) (int, error) {
	message, err := gm.buildMessage(msg)
	if err != nil {
		gm.logger.Errorw("failed to build email", "error", err, "templateFile", msg.TemplateFile)
		return http.StatusInternalServerError, err
	}

	dialer := gomail.NewDialer(gm.host, gm.port, gm.username, gm.password)

	if err := dialer.DialAndSend(message); err != nil {
		gm.logger.Errorw("failed to send email", "error", err, "toEmail", msg.ToEmail, "templateFile", msg.TemplateFile)
		return http.StatusInternalServerError, fmt.Errorf("failed to send email: %w", err)
	}

	gm.logger.Infow("email sent successfully", "toEmail", msg.ToEmail, "templateFile", msg.TemplateFile)

	return http.StatusOK, nil
}
