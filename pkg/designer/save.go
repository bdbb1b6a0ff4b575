package designer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

const AutoSaveKey = "designer:autosave"

// DraftsKey is the device storage key holding the drafts of one college.
func DraftsKey(collegeID string) string {
	return "designer:drafts:" + collegeID
}

var ErrDraftNotFound = errors.New("draft not found")

// KV is device local key/value storage. Get reports false for absent keys.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// TemplateStore persists named templates on the server.
type TemplateStore interface {
	SaveTemplate(ctx context.Context, doc Document) (Document, error)
}

// Drafts are named documents kept on the device, grouped by college.
type Drafts struct {
	kv KV
}

func NewDrafts(kv KV) *Drafts {
	return &Drafts{kv: kv}
}

func (s *Drafts) load(ctx context.Context, collegeID string) (map[string]Document, error) {
	raw, ok, err := s.kv.Get(ctx, DraftsKey(collegeID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]Document{}, nil
	}

	drafts := map[string]Document{}
	if err := json.Unmarshal([]byte(raw), &drafts); err != nil {
		return nil, fmt.Errorf("decoding drafts: %w", err)
	}
	return drafts, nil
}

func (s *Drafts) Save(ctx context.Context, collegeID string, doc Document) error {
	if doc.Name == "" {
		return fmt.Errorf("%w: draft needs a name", ErrInvalidDocument)
	}

	drafts, err := s.load(ctx, collegeID)
	if err != nil {
		return err
	}
	drafts[doc.Name] = doc

	b, err := json.Marshal(drafts)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, DraftsKey(collegeID), string(b))
}

func (s *Drafts) Get(ctx context.Context, collegeID, name string) (Document, error) {
	drafts, err := s.load(ctx, collegeID)
	if err != nil {
		return Document{}, err
	}
	doc, ok := drafts[name]
	if !ok {
		return Document{}, fmt.Errorf("%w: %q", ErrDraftNotFound, name)
	}
	return doc, nil
}

// Names lists the drafts of a college alphabetically.
func (s *Drafts) Names(ctx context.Context, collegeID string) ([]string, error) {
	drafts, err := s.load(ctx, collegeID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(drafts))
	for name := range drafts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// SaveDraft stores the current document as a named draft on the device.
func (d *Designer) SaveDraft(ctx context.Context, drafts *Drafts, collegeID string) error {
	doc := d.Document()
	if err := drafts.Save(ctx, collegeID, doc); err != nil {
		return err
	}
	d.MarkSaved()
	return nil
}

// SaveRemote stores the current document on the server and adopts the id it returns.
func (d *Designer) SaveRemote(ctx context.Context, store TemplateStore) (Document, error) {
	doc := d.Document()
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}

	saved, err := store.SaveTemplate(ctx, doc)
	if err != nil {
		return Document{}, err
	}

	d.mu.Lock()
	d.doc.ID = saved.ID
	d.dirty = false
	d.mu.Unlock()
	return saved, nil
}
