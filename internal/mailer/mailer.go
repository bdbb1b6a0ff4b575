package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

const (
	MAX_RETRY = 3
)

type MailTemplateFile string

const (
	TemplateCertificate MailTemplateFile = "templates/certificate.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Attachment struct {
	FileName    string
	ContentType string
	Data        []byte
}

type Message struct {
	TemplateFile MailTemplateFile
	ToName       string
	ToEmail      string
	// Data is passed to the subject and body templates.
	Data        any
	Attachments []Attachment
}

type Client interface {
	Send(msg Message) (int, error)
}

// CertificateMailData feeds templates/certificate.tmpl.
type CertificateMailData struct {
	StudentName string
	EventName   string
	AppName     string
}

// renderTemplate executes the "subject" and "body" blocks of a mail template.
func renderTemplate(templateFile MailTemplateFile, data any) (string, string, error) {
	tmpl, err := template.ParseFS(FS, string(templateFile))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse mail template %s: %w", templateFile, err)
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return "", "", fmt.Errorf("failed to execute subject template: %w", err)
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		return "", "", fmt.Errorf("failed to execute body template: %w", err)
	}

	return subject.String(), body.String(), nil
}
