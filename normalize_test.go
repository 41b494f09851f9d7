package cardstream

import (
	"reflect"
	"testing"
)

func TestNormalize_Defaults(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		title    string
		sections int
	}{
		{"empty object", `{}`, PlaceholderTitle, 0},
		{"title only", `{"cardTitle":"Acme"}`, "Acme", 0},
		{"sections not an array", `{"cardTitle":"A","sections":"nope"}`, "A", 0},
		{"null sections", `{"cardTitle":"A","sections":null}`, "A", 0},
		{"non-object root", `[1,2,3]`, PlaceholderTitle, 0},
		{"two sections", `{"cardTitle":"A","sections":[{"title":"S1"},{"title":"S2"}]}`, "A", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Normalize(tt.json)
			if doc.CardTitle != tt.title {
				t.Errorf("CardTitle = %q, want %q", doc.CardTitle, tt.title)
			}
			if doc.Sections == nil {
				t.Fatal("Sections must never be nil")
			}
			if len(doc.Sections) != tt.sections {
				t.Errorf("len(Sections) = %d, want %d", len(doc.Sections), tt.sections)
			}
		})
	}
}

func TestNormalize_SentinelForMissingValues(t *testing.T) {
	doc := Normalize(`{"sections":[{"title":"S","type":"map","fields":[{"label":"x"}],"items":[{}]}]}`)

	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(doc.Sections))
	}
	section := doc.Sections[0]

	if len(section.Fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(section.Fields))
	}
	field := section.Fields[0]
	if field.Label != "x" {
		t.Errorf("Label = %q, want %q", field.Label, "x")
	}
	if !field.IsPending() {
		t.Errorf("missing value should be the streaming sentinel, got %q", field.Value)
	}

	if len(section.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(section.Items))
	}
	if !section.Items[0].IsPending() {
		t.Errorf("missing item text should be the streaming sentinel, got %q", section.Items[0].Text)
	}
}

func TestNormalize_SentinelOverwrittenByRealValue(t *testing.T) {
	early := Normalize(`{"sections":[{"title":"S","fields":[{"label":"x"}]}]}`)
	late := Normalize(`{"sections":[{"title":"S","fields":[{"label":"x","value":"42"}]}]}`)

	if !early.Sections[0].Fields[0].IsPending() {
		t.Error("early field should be pending")
	}
	if late.Sections[0].Fields[0].Value != "42" {
		t.Errorf("late field value = %q, want %q", late.Sections[0].Fields[0].Value, "42")
	}
}

func TestNormalize_DerivedSectionIDs(t *testing.T) {
	doc := Normalize(`{"sections":[{"title":"Alpha"},{"title":"Beta"}]}`)
	again := Normalize(`{"sections":[{"title":"Alpha"},{"title":"Beta"}]}`)

	if doc.Sections[0].ID == "" || doc.Sections[1].ID == "" {
		t.Fatal("derived ids must not be empty")
	}
	if doc.Sections[0].ID == doc.Sections[1].ID {
		t.Error("different sections must get different derived ids")
	}
	if doc.Sections[0].ID != again.Sections[0].ID {
		t.Error("derived id must be stable across ticks")
	}

	explicit := Normalize(`{"sections":[{"id":"mine","title":"Alpha"}]}`)
	if explicit.Sections[0].ID != "mine" {
		t.Errorf("explicit id must win, got %q", explicit.Sections[0].ID)
	}
}

func TestNormalize_PreservesSourceOrder(t *testing.T) {
	doc := Normalize(`{"sections":[` +
		`{"title":"Zulu","fields":[{"label":"z","value":"1"},{"label":"a","value":"2"}]},` +
		`{"title":"Alpha"},` +
		`{"title":"Mike"}]}`)

	var titles []string
	for _, s := range doc.Sections {
		titles = append(titles, s.Title)
	}
	if want := []string{"Zulu", "Alpha", "Mike"}; !reflect.DeepEqual(titles, want) {
		t.Errorf("section order = %v, want %v", titles, want)
	}

	var labels []string
	for _, f := range doc.Sections[0].Fields {
		labels = append(labels, f.Label)
	}
	if want := []string{"z", "a"}; !reflect.DeepEqual(labels, want) {
		t.Errorf("field order = %v, want %v", labels, want)
	}
}

func TestNormalize_ScalarValuesRenderedAsText(t *testing.T) {
	doc := Normalize(`{"sections":[{"type":"financials","fields":[` +
		`{"label":"Revenue","value":-12.5},` +
		`{"label":"Profitable","value":false},` +
		`{"label":"Notes","value":null}]}]}`)

	fields := doc.Sections[0].Fields
	if fields[0].Value != "-12.5" {
		t.Errorf("number value = %q", fields[0].Value)
	}
	if fields[1].Value != "false" {
		t.Errorf("bool value = %q", fields[1].Value)
	}
	// An explicit null arrived; it is not "still streaming".
	if fields[2].IsPending() {
		t.Error("explicit null must not look like pending content")
	}
}

func TestNormalize_StringItems(t *testing.T) {
	doc := Normalize(`{"sections":[{"type":"list","items":["one","two"]}]}`)
	items := doc.Sections[0].Items
	if len(items) != 2 || items[0].Text != "one" || items[1].Text != "two" {
		t.Errorf("unexpected items: %+v", items)
	}
}
