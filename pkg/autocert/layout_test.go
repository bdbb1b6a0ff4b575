package autocert

import (
	"reflect"
	"testing"
	"time"
)

func TestLayoutEndToEnd(t *testing.T) {
	participants, err := ParseParticipants("name,event\nJohn Doe,Spring Gala\nJane Roe,Spring Gala")
	if err != nil {
		t.Fatal(err)
	}

	now := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	names := []string{"JOHN DOE", "JANE ROE"}
	for i, p := range participants {
		page := Layout(p, LookupTemplate("modern"), LayoutOptions{Now: now})

		expected := []string{
			"CERTIFICATE OF PARTICIPATION",
			"This is to certify that",
			names[i],
			"has successfully participated in the event",
			"Spring Gala",
			"Date: 3/9/2024",
			FooterText,
		}
		if !reflect.DeepEqual(page.Texts(), expected) {
			t.Errorf("participant %d: expected %q, got %q", i, expected, page.Texts())
		}
		if page.Width != PageWidthMM || page.Height != PageHeightMM {
			t.Errorf("expected A4 landscape, got %vx%v", page.Width, page.Height)
		}
	}
}

func TestLayoutBadgeAndExtraInfo(t *testing.T) {
	p, err := NewParticipant(map[string]string{
		"Name":     "Ann Lee",
		"Category": "outstanding",
		"Date":     "2024-01-01",
		"a":        "1",
		"b":        "2",
		"c":        "3",
		"d":        "4",
	}, []string{"name", "category", "date", "a", "b", "c", "d"})
	if err != nil {
		t.Fatal(err)
	}

	page := Layout(p, LookupTemplate("classic"), LayoutOptions{CertificateNumber: "abc123"})
	pal := TemplateClassic.Palette()

	var badge *DrawOp
	var extra []DrawOp
	for i, op := range page.Ops {
		switch {
		case op.Kind == OpFillRoundedRect:
			badge = &page.Ops[i]
		case op.Kind == OpText && op.FontSize == 12 && op.Color == pal.Secondary && op.Text != FooterText:
			extra = append(extra, op)
		}
	}

	if badge == nil || badge.Color != pal.Accent || badge.Y != 155 {
		t.Fatalf("expected accent badge at y 155, got %+v", badge)
	}
	if len(extra) != 3 {
		t.Fatalf("expected 3 extra info lines, got %d", len(extra))
	}
	for i, op := range extra {
		if want := 180 + float64(i)*8; op.Y != want {
			t.Errorf("extra line %d: expected y %v, got %v", i, want, op.Y)
		}
	}

	texts := page.Texts()
	if texts[0] != "CERTIFICATE OF OUTSTANDING PERFORMANCE" {
		t.Errorf("unexpected title %q", texts[0])
	}
	if texts[4] != DefaultEventName || texts[5] != "Date: 2024-01-01" || texts[6] != "Outstanding Performance" {
		t.Errorf("unexpected texts %q", texts)
	}
	if texts[len(texts)-2] != "Certificate No: abc123" {
		t.Errorf("expected certificate number above footer, got %q", texts[len(texts)-2])
	}
}

func TestLayoutUnknownCategory(t *testing.T) {
	p, err := NewParticipant(map[string]string{"participant": "Bo", "category": "Leadership"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	texts := Layout(p, Template(-1), LayoutOptions{}).Texts()

	if texts[0] != "CERTIFICATE OF LEADERSHIP" || texts[3] != LookupCategory(CategoryParticipation).Body {
		t.Errorf("unexpected texts %q", texts)
	}
	if texts[6] != "Leadership" {
		t.Errorf("expected badge label, got %q", texts[6])
	}
}
