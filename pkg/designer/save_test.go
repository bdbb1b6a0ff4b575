package designer

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
)

type memoryKV struct {
	mu   sync.Mutex
	data map[string]string
	sets int
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string]string{}}
}

func (m *memoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.sets++
	return nil
}

type fakeTemplateStore struct {
	saved []Document
	err   error
}

func (f *fakeTemplateStore) SaveTemplate(_ context.Context, doc Document) (Document, error) {
	if f.err != nil {
		return Document{}, f.err
	}
	doc.ID = "tpl-1"
	f.saved = append(f.saved, doc)
	return doc, nil
}

func TestDrafts(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()
	drafts := NewDrafts(kv)

	d := newTestDesigner()
	d.AddText(0, 0)
	if !d.Dirty() {
		t.Fatal("expected dirty designer")
	}
	if err := d.SaveDraft(ctx, drafts, "college-1"); err != nil {
		t.Fatal(err)
	}
	if d.Dirty() {
		t.Error("expected save to clear dirty flag")
	}

	other := NewDocument("another")
	if err := drafts.Save(ctx, "college-1", other); err != nil {
		t.Fatal(err)
	}
	if err := drafts.Save(ctx, "college-2", NewDocument("elsewhere")); err != nil {
		t.Fatal(err)
	}

	names, err := drafts.Names(ctx, "college-1")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(names, []string{"another", "test"}) {
		t.Errorf("unexpected drafts %v", names)
	}

	got, err := drafts.Get(ctx, "college-1", "test")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, d.Document()) {
		t.Errorf("expected %+v, got %+v", d.Document(), got)
	}
	if _, err := drafts.Get(ctx, "college-2", "test"); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("expected drafts to be scoped by college, got %v", err)
	}
	if err := drafts.Save(ctx, "college-1", Document{}); !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("expected unnamed draft to be rejected, got %v", err)
	}
}

func TestSaveRemote(t *testing.T) {
	ctx := context.Background()
	d := newTestDesigner()
	d.AddShape(0, 0)

	store := &fakeTemplateStore{}
	saved, err := d.SaveRemote(ctx, store)
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID != "tpl-1" || d.Document().ID != "tpl-1" || d.Dirty() {
		t.Errorf("expected saved id to be adopted, got %+v", d.Document())
	}

	d.AddShape(10, 10)
	store.err = errors.New("boom")
	if _, err := d.SaveRemote(ctx, store); err == nil {
		t.Error("expected error")
	}
	if !d.Dirty() {
		t.Error("expected failed save to keep the dirty flag")
	}
}

func TestAutoSaver(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()
	d := newTestDesigner()
	a := NewAutoSaver(d, kv, "")

	saved, err := a.SaveNow(ctx)
	if err != nil || saved {
		t.Fatalf("expected empty document to be skipped, got %v %v", saved, err)
	}

	d.AddText(0, 0)
	if saved, err := a.SaveNow(ctx); err != nil || !saved {
		t.Fatalf("expected save, got %v %v", saved, err)
	}
	if saved, _ := a.SaveNow(ctx); saved {
		t.Error("expected unchanged document to be skipped")
	}
	if kv.sets != 1 {
		t.Errorf("expected one write, got %d", kv.sets)
	}

	doc, ok, err := Restore(ctx, kv)
	if err != nil || !ok {
		t.Fatalf("expected restore, got %v %v", ok, err)
	}
	if !reflect.DeepEqual(doc, d.Document()) {
		t.Errorf("expected %+v, got %+v", d.Document(), doc)
	}

	if _, ok, err := Restore(ctx, newMemoryKV()); ok || err != nil {
		t.Errorf("expected nothing to restore, got %v %v", ok, err)
	}

	if err := a.Start(); err != nil {
		t.Fatal(err)
	}
	a.Stop()
	if err := NewAutoSaver(d, kv, "not a schedule").Start(); err == nil {
		t.Error("expected invalid schedule to fail")
	}
}
