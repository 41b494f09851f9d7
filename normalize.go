package cardstream

import (
	"fmt"
	"hash/fnv"

	"github.com/tidwall/gjson"
)

// Normalize maps a valid JSON value (usually the output of Reconstruct)
// onto the CardDocument shape. Required-but-absent content is filled with
// stable placeholders so the renderer never sees missing values:
//
//   - a missing cardTitle becomes PlaceholderTitle
//   - sections default to an empty sequence when absent or not an array
//   - a section missing an id gets one derived from its position and
//     title, stable across ticks
//   - field/item values that have not arrived yet become StreamingSentinel
//
// Source order of sections, fields and items is preserved exactly.
func Normalize(jsonText string) *CardDocument {
	doc := emptyCard()

	root := gjson.Parse(jsonText)
	if !root.IsObject() {
		return doc
	}

	if title := root.Get("cardTitle"); title.Type == gjson.String && title.Str != "" {
		doc.CardTitle = title.Str
	}

	sections := root.Get("sections")
	if !sections.IsArray() {
		return doc
	}

	position := 0
	sections.ForEach(func(_, raw gjson.Result) bool {
		if !raw.IsObject() {
			// Not a section yet; a later tick will deliver the object form.
			return true
		}
		doc.Sections = append(doc.Sections, normalizeSection(raw, position))
		position++
		return true
	})
	return doc
}

func normalizeSection(raw gjson.Result, position int) CardSection {
	section := CardSection{
		Title: StreamingSentinel,
		Kind:  SectionKind(raw.Get("type").String()),
	}

	if title := raw.Get("title"); title.Type == gjson.String && title.Str != "" {
		section.Title = title.Str
	}

	section.ID = raw.Get("id").String()
	if section.ID == "" {
		section.ID = deriveSectionID(position, section.Title)
	}

	if fields := raw.Get("fields"); fields.IsArray() {
		fields.ForEach(func(_, f gjson.Result) bool {
			if !f.IsObject() {
				return true
			}
			field := CardField{Label: StreamingSentinel, Value: StreamingSentinel}
			if v := f.Get("label"); v.Exists() {
				field.Label = v.String()
			}
			if v := f.Get("value"); v.Exists() {
				field.Value = v.String()
			}
			section.Fields = append(section.Fields, field)
			return true
		})
	}

	if items := raw.Get("items"); items.IsArray() {
		items.ForEach(func(_, it gjson.Result) bool {
			item := CardItem{Text: StreamingSentinel}
			switch {
			case it.Type == gjson.String:
				item.Text = it.Str
			case it.IsObject():
				if v := it.Get("text"); v.Exists() {
					item.Text = v.String()
				}
			default:
				return true
			}
			section.Items = append(section.Items, item)
			return true
		})
	}

	return section
}

// deriveSectionID builds a stable id from a section's position and title,
// so identity does not flicker across ticks when unrelated sections are
// appended later.
func deriveSectionID(position int, title string) string {
	h := fnv.New32a()
	h.Write([]byte(title))
	return fmt.Sprintf("section-%d-%08x", position, h.Sum32())
}
