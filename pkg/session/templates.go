package session

import (
	"context"
	"net/http"
	"time"

	"github.com/SeakMengs/certgen/pkg/autocert"
	"github.com/SeakMengs/certgen/pkg/designer"
)

// SaveTemplate creates the template when doc has no id and updates it otherwise.
// It lets the client serve as a designer.TemplateStore.
func (c *Client) SaveTemplate(ctx context.Context, doc designer.Document) (designer.Document, error) {
	method, path := http.MethodPost, "/templates"
	if doc.ID != "" {
		method, path = http.MethodPut, "/templates/"+doc.ID
	}

	var out designer.Document
	if err := c.do(ctx, method, path, true, doc, &out); err != nil {
		return designer.Document{}, err
	}
	return out, nil
}

func (c *Client) Templates(ctx context.Context) ([]designer.Document, error) {
	var out []designer.Document
	if err := c.do(ctx, http.MethodGet, "/templates", true, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Template(ctx context.Context, id string) (designer.Document, error) {
	var out designer.Document
	err := c.do(ctx, http.MethodGet, "/templates/"+id, true, nil, &out)
	return out, err
}

func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/templates/"+id, true, nil, nil)
}

// StudentRecords maps API students to certificate records.
func StudentRecords(students []Student) []autocert.StudentRecord {
	out := make([]autocert.StudentRecord, len(students))
	for i, s := range students {
		out[i] = autocert.StudentRecord{
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
	return out
}

// LoadCollegeParticipants fills store with the students of the signed in college.
func (c *Client) LoadCollegeParticipants(ctx context.Context, store *autocert.ParticipantStore, now time.Time) error {
	students, err := c.Students(ctx)
	if err != nil {
		return err
	}
	return store.LoadStudents(StudentRecords(students), now)
}

var _ designer.TemplateStore = (*Client)(nil)
