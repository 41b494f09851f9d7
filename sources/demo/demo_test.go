package demo

import (
	"context"
	"testing"

	"github.com/tidwall/gjson"

	cardstream "github.com/haowjy/cardstream-go"
)

func TestCardJSON_ValidAndNormalizable(t *testing.T) {
	src := NewSource()
	if src.Name() != "demo" {
		t.Errorf("Name() = %q", src.Name())
	}

	text, err := src.CardJSON(context.Background())
	if err != nil {
		t.Fatalf("CardJSON: %v", err)
	}
	if !gjson.Valid(text) {
		t.Fatalf("generated card is not valid JSON: %q", text)
	}

	doc := cardstream.Normalize(text)
	if doc.CardTitle == cardstream.PlaceholderTitle {
		t.Error("generated card should carry a real title")
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc.Sections))
	}
	for _, s := range doc.Sections {
		if !s.Kind.IsKnown() {
			t.Errorf("section %s has unknown kind %q", s.ID, s.Kind)
		}
		if len(s.Fields) == 0 && len(s.Items) == 0 {
			t.Errorf("section %s generated with no content", s.ID)
		}
	}
}

func TestCardJSON_ContentMatchesKindSlots(t *testing.T) {
	// Enough sections to cycle through the whole kind rotation.
	src := NewSourceWithSections(5)
	text, err := src.CardJSON(context.Background())
	if err != nil {
		t.Fatalf("CardJSON: %v", err)
	}

	doc := cardstream.Normalize(text)
	if len(doc.Sections) != 5 {
		t.Fatalf("expected 5 sections, got %d", len(doc.Sections))
	}
	for _, s := range doc.Sections {
		caps := s.Kind.Capabilities()
		if caps.Fields && len(s.Fields) == 0 {
			t.Errorf("%s section %s has no fields", s.Kind, s.ID)
		}
		if !caps.Fields && len(s.Fields) > 0 {
			t.Errorf("%s section %s should not carry fields", s.Kind, s.ID)
		}
		if caps.Items && len(s.Items) == 0 {
			t.Errorf("%s section %s has no items", s.Kind, s.ID)
		}
		if !caps.Items && len(s.Items) > 0 {
			t.Errorf("%s section %s should not carry items", s.Kind, s.ID)
		}
	}
}

func TestNewSourceWithSections_Minimum(t *testing.T) {
	src := NewSourceWithSections(0)
	text, err := src.CardJSON(context.Background())
	if err != nil {
		t.Fatalf("CardJSON: %v", err)
	}
	if n := len(cardstream.Normalize(text).Sections); n != 1 {
		t.Errorf("expected the 1-section floor, got %d", n)
	}
}

func TestCardJSON_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewSource().CardJSON(ctx); err == nil {
		t.Error("expected a context error")
	}
}

func TestCardJSON_LintClean(t *testing.T) {
	text, err := NewSource().CardJSON(context.Background())
	if err != nil {
		t.Fatalf("CardJSON: %v", err)
	}
	doc := cardstream.Normalize(text)
	warnings := cardstream.FilterWarningsBySeverity(cardstream.LintCard(doc),
		cardstream.SeverityWarning, cardstream.SeverityError)
	if len(warnings) != 0 {
		t.Errorf("generated card should lint clean above info level, got %+v", warnings)
	}
}
