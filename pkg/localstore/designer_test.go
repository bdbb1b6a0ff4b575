package localstore_test

import (
	"context"
	"testing"

	"github.com/SeakMengs/certgen/pkg/designer"
	"github.com/SeakMengs/certgen/pkg/localstore"
)

func TestDesignerDraftsOnDevice(t *testing.T) {
	ctx := context.Background()
	s, err := localstore.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	d := designer.New(designer.NewDocument("Spring Gala"))
	d.AddTool(designer.ToolHeading)

	drafts := designer.NewDrafts(s)
	if err := d.SaveDraft(ctx, drafts, "college-1"); err != nil {
		t.Fatal(err)
	}

	got, err := drafts.Get(ctx, "college-1", "Spring Gala")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Elements) != 1 || got.Elements[0].Properties.Text != "Certificate Title" {
		t.Errorf("unexpected draft %+v", got)
	}

	saver := designer.NewAutoSaver(d, s, "")
	if saved, err := saver.SaveNow(ctx); err != nil || !saved {
		t.Fatalf("expected auto-save, got %v %v", saved, err)
	}
	if _, ok, err := designer.Restore(ctx, s); !ok || err != nil {
		t.Errorf("expected auto-saved document, got %v %v", ok, err)
	}
}
