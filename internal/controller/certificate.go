package controller

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SeakMengs/certgen/internal/queue"
	"github.com/SeakMengs/certgen/internal/util"
	"github.com/SeakMengs/certgen/pkg/autocert"
	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	*baseController
}

const (
	FormatZip    = "zip"
	FormatMerged = "merged"
)

const (
	ErrNoParticipants       = "No participants provided"
	ErrRendererNotAvailable = "Certificate renderer is not available"
)

// certificateRequest carries participants either as parsed records, as CSV text or
// as an uploaded csvFile.
type certificateRequest struct {
	CSV          string                 `json:"csv" form:"csv"`
	Participants []autocert.Participant `json:"participants" form:"-"`
	Template     string                 `json:"template" form:"template"`
	Format       string                 `json:"format" form:"format"`
	Store        bool                   `json:"store" form:"store"`
	// Index picks the participant rendered by the preview.
	Index int `json:"index" form:"index"`
}

type templateInfo struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Palette     autocert.Palette `json:"palette"`
}

func (cc CertificateController) Templates(ctx *gin.Context) {
	templates := autocert.Templates()
	out := make([]templateInfo, len(templates))
	for i, t := range templates {
		out[i] = templateInfo{ID: t.String(), Name: t.Name(), Description: t.Description(), Palette: t.Palette()}
	}
	util.ResponseSuccess(ctx, http.StatusOK, out)
}

func (cc CertificateController) Categories(ctx *gin.Context) {
	util.ResponseSuccess(ctx, http.StatusOK, autocert.BaseCategories())
}

func (cc CertificateController) ParticipantTemplate(ctx *gin.Context) {
	ctx.Header("Content-Disposition", "attachment; filename="+autocert.ParticipantTemplateFileName)
	ctx.Data(http.StatusOK, "text/csv", []byte(autocert.ParticipantTemplateCSV))
}

// normalizeParticipants rebuilds records received as json so the derived fields
// follow the same rules as parsed CSV rows.
func normalizeParticipants(in []autocert.Participant) ([]autocert.Participant, error) {
	out := make([]autocert.Participant, 0, len(in))
	for i, p := range in {
		fields := make(map[string]string, len(p.Fields)+2)
		for k, v := range p.Fields {
			fields[k] = v
		}
		if fields["name"] == "" && p.DisplayName != "" {
			fields["name"] = p.DisplayName
		}
		if p.Category != "" {
			fields["category"] = p.Category
		}

		np, err := autocert.NewParticipant(fields, p.Columns)
		if err != nil {
			return nil, fmt.Errorf("participant %d: %w", i+1, err)
		}
		out = append(out, np)
	}
	return out, nil
}

// bindParticipants reads the request and resolves its participants. It writes the
// error response itself and reports false on failure.
func (cc CertificateController) bindParticipants(ctx *gin.Context) (certificateRequest, []autocert.Participant, bool) {
	var body certificateRequest
	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", err)
		return body, nil, false
	}

	var (
		participants []autocert.Participant
		err          error
	)
	switch {
	case len(body.Participants) > 0:
		participants, err = normalizeParticipants(body.Participants)
	case strings.TrimSpace(body.CSV) != "":
		participants, err = autocert.ParseParticipants(body.CSV)
	default:
		file, ferr := ctx.FormFile("csvFile")
		if ferr != nil {
			util.ResponseFailed(ctx, http.StatusBadRequest, ErrNoParticipants, nil)
			return body, nil, false
		}
		src, oerr := file.Open()
		if oerr != nil {
			util.ResponseFailed(ctx, http.StatusBadRequest, "Failed to read CSV file", oerr)
			return body, nil, false
		}
		defer src.Close()
		participants, err = autocert.ParseParticipantsReader(src)
	}
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid participants", err)
		return body, nil, false
	}

	return body, participants, true
}

// prepareStore loads a participant store and checks it is ready to generate.
func prepareStore(participants []autocert.Participant, template string) (*autocert.ParticipantStore, error) {
	store := autocert.NewParticipantStore()
	store.LoadParticipants(participants)
	if template != "" {
		if err := store.SelectTemplate(template); err != nil {
			return nil, err
		}
	}
	if err := store.ReadyToGenerate(); err != nil {
		return nil, err
	}
	return store, nil
}

func (cc CertificateController) Parse(ctx *gin.Context) {
	_, participants, ok := cc.bindParticipants(ctx)
	if !ok {
		return
	}

	util.ResponseSuccess(ctx, http.StatusOK, gin.H{
		"count":        len(participants),
		"participants": participants,
	})
}

func (cc CertificateController) Preview(ctx *gin.Context) {
	body, participants, ok := cc.bindParticipants(ctx)
	if !ok {
		return
	}

	store, err := prepareStore(participants, body.Template)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Cannot generate certificate", err)
		return
	}
	if body.Index < 0 || body.Index >= store.Len() {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Participant index out of range", nil)
		return
	}
	if cc.app.Renderer == nil {
		util.ResponseFailed(ctx, http.StatusServiceUnavailable, ErrRendererNotAvailable, nil)
		return
	}

	t, _ := store.Template()
	certs, err := cc.app.Renderer.RenderAll(ctx, store.Participants()[body.Index:body.Index+1], autocert.ExportOptions{
		Template: t,
		Now:      time.Now(),
	})
	if err != nil {
		cc.app.Logger.Errorf("Failed to render preview: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to render certificate", err)
		return
	}
	cc.app.Metrics.CertificatesRendered(t.String(), 1)

	ctx.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", certs[0].FileName))
	ctx.Data(http.StatusOK, "application/pdf", certs[0].PDF)
}

func (cc CertificateController) Bulk(ctx *gin.Context) {
	body, participants, ok := cc.bindParticipants(ctx)
	if !ok {
		return
	}
	cc.export(ctx, body, participants)
}

// Students renders certificates for every student of the signed in college.
func (cc CertificateController) Students(ctx *gin.Context) {
	type Request struct {
		Template string `json:"template" form:"template"`
		Format   string `json:"format" form:"format"`
		Store    bool   `json:"store" form:"store"`
		Event    string `json:"event" form:"event"`
		Date     string `json:"date" form:"date"`
	}
	var body Request

	user, err := cc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", err)
		return
	}

	students, err := cc.app.Repository.Student.ListByCollege(ctx, nil, user.College)
	if err != nil {
		cc.app.Logger.Errorf("Failed to list students: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get students", err)
		return
	}

	records := make([]autocert.StudentRecord, len(students))
	for i, s := range students {
		records[i] = autocert.StudentRecord{
			Name:       s.Name,
			RollNumber: s.RollNumber,
			Email:      s.Email,
			Phone:      s.Phone,
			Course:     s.Course,
			Year:       s.Year,
			Section:    s.Section,
			Category:   s.Category,
		}
	}

	participants := autocert.StudentParticipants(records, time.Now())
	for _, p := range participants {
		if e := strings.TrimSpace(body.Event); e != "" {
			p.Fields["event"] = e
		}
		if d := strings.TrimSpace(body.Date); d != "" {
			p.Fields["date"] = d
		}
	}

	cc.export(ctx, certificateRequest{Template: body.Template, Format: body.Format, Store: body.Store}, participants)
}

func (cc CertificateController) export(ctx *gin.Context, body certificateRequest, participants []autocert.Participant) {
	store, err := prepareStore(participants, body.Template)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Cannot generate certificates", err)
		return
	}
	if cc.app.Renderer == nil {
		util.ResponseFailed(ctx, http.StatusServiceUnavailable, ErrRendererNotAvailable, nil)
		return
	}

	t, _ := store.Template()
	opts := autocert.ExportOptions{Template: t, Now: time.Now()}

	var (
		buf         bytes.Buffer
		certs       []autocert.Certificate
		fileName    = autocert.ArchiveName
		contentType = "application/zip"
	)
	switch body.Format {
	case "", FormatZip:
		certs, err = cc.app.Renderer.ExportZip(ctx, store.Participants(), opts, &buf)
	case FormatMerged:
		fileName, contentType = autocert.MergedName, "application/pdf"
		certs, err = cc.app.Renderer.ExportMerged(ctx, store.Participants(), opts, &buf)
	default:
		util.ResponseFailed(ctx, http.StatusBadRequest, fmt.Sprintf("Unknown format %q", body.Format), nil)
		return
	}
	if err != nil {
		cc.app.Logger.Errorf("Failed to export certificates: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to generate certificates", err)
		return
	}
	cc.app.Metrics.CertificatesRendered(t.String(), len(certs))

	if !body.Store {
		ctx.Header("Content-Disposition", "attachment; filename="+fileName)
		ctx.Data(http.StatusOK, contentType, buf.Bytes())
		return
	}

	cc.storeExport(ctx, fileName, contentType, buf.Bytes(), len(certs))
}

// storeExport uploads an export and answers with a time limited download link.
func (cc CertificateController) storeExport(ctx *gin.Context, fileName, contentType string, data []byte, count int) {
	user, err := cc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	if cc.app.Storage == nil {
		util.ResponseFailed(ctx, http.StatusServiceUnavailable, "Object storage is not configured", nil)
		return
	}

	objectName, err := cc.app.Storage.Put(ctx, util.GetExportDirectoryPath(user.College), fileName, contentType, data)
	if err != nil {
		cc.app.Logger.Errorf("Failed to store export: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to store certificates", err)
		return
	}

	url, err := cc.app.Storage.DownloadURL(ctx, objectName, fileName)
	if err != nil {
		cc.app.Logger.Errorf("Failed to presign export: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to store certificates", err)
		return
	}

	util.ResponseSuccess(ctx, http.StatusCreated, gin.H{
		"count":      count,
		"objectName": objectName,
		"url":        url,
		"expiresIn":  int(util.PresignedURLExpiry.Seconds()),
	})
}

// Email mails every participant with an email column their certificate. Jobs go
// through the mail queue, or straight to the mailer when no queue is connected.
func (cc CertificateController) Email(ctx *gin.Context) {
	body, participants, ok := cc.bindParticipants(ctx)
	if !ok {
		return
	}

	store, err := prepareStore(participants, body.Template)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Cannot generate certificates", err)
		return
	}
	if cc.app.Queue == nil && (cc.app.Mailer == nil || cc.app.Renderer == nil) {
		util.ResponseFailed(ctx, http.StatusServiceUnavailable, "Mail delivery is not configured", nil)
		return
	}

	t, _ := store.Template()
	now := time.Now()
	queued, skipped := 0, []string{}
	var failures []error

	for _, p := range store.Participants() {
		if p.Email() == "" {
			skipped = append(skipped, p.DisplayName)
			continue
		}

		job, err := queue.NewCertificateMailJob(p, t, now)
		if err != nil {
			failures = append(failures, err)
			continue
		}

		if cc.app.Queue != nil {
			err = queue.PublishMailJob(cc.app.Queue, job)
		} else {
			_, err = queue.HandleCertificateMailJob(ctx, job, &queue.MailConsumerContext{
				Config:   cc.app.Config,
				Logger:   cc.app.Logger,
				Mailer:   cc.app.Mailer,
				Renderer: cc.app.Renderer,
			})
		}
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", p.Email(), err))
			continue
		}
		queued++
	}

	if queued == 0 && len(failures) > 0 {
		cc.app.Logger.Errorf("Failed to send certificate mails: %v", errors.Join(failures...))
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to send certificates", nil)
		return
	}
	if len(failures) > 0 {
		cc.app.Logger.Warnf("Some certificate mails failed: %v", errors.Join(failures...))
	}

	util.ResponseSuccess(ctx, http.StatusAccepted, gin.H{
		"message": fmt.Sprintf("%d certificates queued for email", queued),
		"queued":  queued,
		"failed":  len(failures),
		"skipped": skipped,
	})
}
