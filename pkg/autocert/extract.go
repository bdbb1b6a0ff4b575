package autocert

import (
	"regexp"
	"strings"
)

// ExtractedFields are the values recognised in the text of a scanned certificate.
type ExtractedFields struct {
	Name              string `json:"name"`
	Date              string `json:"date"`
	CertificateNumber string `json:"certificateNumber"`
	Course            string `json:"course"`
	FullText          string `json:"fullText"`
}

// Single line matches only: OCR output puts unrelated text on following lines.
var (
	extractNameRe   = regexp.MustCompile(`(?i)(?:name[: \t]+)([A-Za-z \t]+)|(?:certify that[: \t]+)([A-Za-z \t]+)|(?:awarded to[: \t]+)([A-Za-z \t]+)`)
	extractDateRe   = regexp.MustCompile(`(?i)\b\d{1,2}[-/]\d{1,2}[-/]\d{2,4}\b|\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}\b`)
	extractNumberRe = regexp.MustCompile(`(?i)\b(?:certificate|cert|no)\b[.:#\s-]*(?:no\b|number\b|id\b)?[.:#\s-]*([A-Za-z0-9-]*\d[A-Za-z0-9-]*)`)
	extractCourseRe = regexp.MustCompile(`(?i)(?:course|program|certification in)[: \t]+([A-Za-z0-9 \t]+)`)
)

// ExtractFields pulls the recipient name, date, certificate number and course out of
// OCR text. Fields that are not found are left empty.
func ExtractFields(text string) ExtractedFields {
	fields := ExtractedFields{FullText: strings.TrimSpace(text)}

	if m := extractNameRe.FindStringSubmatch(text); m != nil {
		for _, g := range m[1:] {
			if g != "" {
				fields.Name = strings.TrimSpace(g)
				break
			}
		}
	}

	fields.Date = extractDateRe.FindString(text)

	if m := extractNumberRe.FindStringSubmatch(text); m != nil {
		fields.CertificateNumber = m[1]
	}

	if m := extractCourseRe.FindStringSubmatch(text); m != nil {
		fields.Course = strings.TrimSpace(m[1])
	}

	return fields
}
