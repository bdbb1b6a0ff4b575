package autocert

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"regexp"
	"runtime"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	ArchiveName       = "certificates.zip"
	MergedName        = "certificates.pdf"
	CertificateSuffix = "_certificate.pdf"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SanitizeFileName replaces every character outside [a-zA-Z0-9] with an underscore.
func SanitizeFileName(name string) string {
	return nonAlphanumeric.ReplaceAllString(name, "_")
}

// CertificateFileName is the archive entry name of one participant's certificate.
func CertificateFileName(displayName string) string {
	return SanitizeFileName(displayName) + CertificateSuffix
}

// ArchiveNames returns one entry name per participant in order. Names that sanitize
// to the same value get a _2, _3, ... suffix so no certificate overwrites another.
func ArchiveNames(participants []Participant) []string {
	names := make([]string, len(participants))
	used := make(map[string]bool, len(participants))

	for i, p := range participants {
		base := SanitizeFileName(p.DisplayName)
		name := base + CertificateSuffix
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s_%d%s", base, n, CertificateSuffix)
		}
		used[name] = true
		names[i] = name
	}
	return names
}

// Certificate is one rendered participant.
type Certificate struct {
	// Number is the 1-based position in the export
	Number            int
	Participant       Participant
	FileName          string
	CertificateNumber string
	PDF               []byte
}

type ExportOptions struct {
	Template Template
	// Now provides the default event date. Zero means time.Now.
	Now time.Time
	// Progress, when set, is called after every rendered certificate. Calls may come
	// from several goroutines but never concurrently.
	Progress func(done, total int)
}

type renderJob struct {
	index    int
	fileName string
}

type renderResult struct {
	index int
	cert  Certificate
	err   error
}

func (r *Renderer) workerCount(jobCount int) int {
	workers := r.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0) * 2
	}
	return max(min(workers, jobCount), 1)
}

// RenderAll renders every participant in parallel and returns the certificates in
// participant order. The first failure aborts the whole run.
func (r *Renderer) RenderAll(ctx context.Context, participants []Participant, opts ExportOptions) ([]Certificate, error) {
	if len(participants) == 0 {
		return nil, fmt.Errorf("%w: no participants to render", ErrValidation)
	}

	names := ArchiveNames(participants)
	jobs := make(chan renderJob, len(participants))
	results := make(chan renderResult, len(participants))

	var wg sync.WaitGroup
	for range r.workerCount(len(participants)) {
		wg.Add(1)
		go r.processRenderJobs(ctx, participants, opts, jobs, results, &wg)
	}

	for i := range participants {
		jobs <- renderJob{index: i, fileName: names[i]}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	return aggregateCertificates(results, len(participants), opts.Progress)
}

func (r *Renderer) processRenderJobs(ctx context.Context, participants []Participant, opts ExportOptions, jobs <-chan renderJob, results chan<- renderResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for job := range jobs {
		if err := ctx.Err(); err != nil {
			results <- renderResult{index: job.index, err: err}
			continue
		}

		cert, err := r.renderJob(participants[job.index], job, opts)
		results <- renderResult{index: job.index, cert: cert, err: err}
	}
}

func (r *Renderer) renderJob(p Participant, job renderJob, opts ExportOptions) (Certificate, error) {
	layoutOpts := LayoutOptions{Now: opts.Now}
	if r.cfg.VerifyURLPattern != "" {
		id, err := gonanoid.New()
		if err != nil {
			return Certificate{}, fmt.Errorf("failed to generate certificate number: %w", err)
		}
		layoutOpts.CertificateNumber = id
	}

	pdf, err := r.Render(p, opts.Template, layoutOpts)
	if err != nil {
		return Certificate{}, fmt.Errorf("failed to render certificate for row %d: %w", job.index, err)
	}

	return Certificate{
		Number:            job.index + 1,
		Participant:       p,
		FileName:          job.fileName,
		CertificateNumber: layoutOpts.CertificateNumber,
		PDF:               pdf,
	}, nil
}

func aggregateCertificates(results <-chan renderResult, totalCount int, progress func(done, total int)) ([]Certificate, error) {
	resultMap := make(map[int]Certificate, totalCount)
	var firstErr error
	done := 0

	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		resultMap[res.index] = res.cert
		done++
		if progress != nil {
			progress(done, totalCount)
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}

	certs := make([]Certificate, 0, totalCount)
	for i := range totalCount {
		cert, ok := resultMap[i]
		if !ok {
			return nil, fmt.Errorf("missing result for row %d", i)
		}
		certs = append(certs, cert)
	}
	return certs, nil
}

// ExportZip renders every participant and writes a zip archive with one PDF entry each.
func (r *Renderer) ExportZip(ctx context.Context, participants []Participant, opts ExportOptions, w io.Writer) ([]Certificate, error) {
	certs, err := r.RenderAll(ctx, participants, opts)
	if err != nil {
		return nil, err
	}
	if err := WriteZip(w, certs); err != nil {
		return nil, err
	}
	return certs, nil
}

// ExportMerged renders every participant into a single multi page PDF.
func (r *Renderer) ExportMerged(ctx context.Context, participants []Participant, opts ExportOptions, w io.Writer) ([]Certificate, error) {
	certs, err := r.RenderAll(ctx, participants, opts)
	if err != nil {
		return nil, err
	}

	pdfs := make([][]byte, len(certs))
	for i, c := range certs {
		pdfs[i] = c.PDF
	}
	if err := MergePdfs(pdfs, w); err != nil {
		return nil, err
	}
	return certs, nil
}

// WriteZip writes certs as deflated entries named by their FileName.
func WriteZip(w io.Writer, certs []Certificate) error {
	archive := zip.NewWriter(w)
	for _, c := range certs {
		if err := addBytesToZip(archive, c.FileName, c.PDF); err != nil {
			archive.Close()
			return fmt.Errorf("%w: failed to add %s to archive: %v", ErrExternalTool, c.FileName, err)
		}
	}
	if err := archive.Close(); err != nil {
		return fmt.Errorf("%w: failed to finalize archive: %v", ErrExternalTool, err)
	}
	return nil
}

func addBytesToZip(archive *zip.Writer, archivePath string, data []byte) error {
	header := &zip.FileHeader{
		Name:     archivePath,
		Method:   zip.Deflate,
		Modified: time.Now(),
	}

	writer, err := archive.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = writer.Write(data)
	return err
}
