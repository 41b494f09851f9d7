package cardstream

import "fmt"

// SectionKindRule flags section kinds the renderer layer does not handle
// natively. Unknown kinds still render through the generic fallback, so
// this is informational.
type SectionKindRule struct{}

func (r *SectionKindRule) Name() string {
	return "Section Kind"
}

func (r *SectionKindRule) Check(doc *CardDocument) []CardWarning {
	var warnings []CardWarning

	for _, section := range doc.Sections {
		if !section.Kind.IsKnown() {
			warnings = append(warnings, CardWarning{
				Code:     WarningCodeSectionKindUnknown,
				Category: "section",
				Field:    "type",
				Value:    section.Kind.String(),
				Message:  fmt.Sprintf("Section %s has unrecognized type %q, renderer falls back to generic layout", section.ID, section.Kind),
				Severity: SeverityInfo,
			})
		}
	}

	return warnings
}

// SectionIDRule flags duplicate section ids, which break keyed rendering.
type SectionIDRule struct{}

func (r *SectionIDRule) Name() string {
	return "Section ID"
}

func (r *SectionIDRule) Check(doc *CardDocument) []CardWarning {
	var warnings []CardWarning

	seen := make(map[string]bool)
	for _, section := range doc.Sections {
		if seen[section.ID] {
			warnings = append(warnings, CardWarning{
				Code:     WarningCodeSectionIDDuplicate,
				Category: "section",
				Field:    "id",
				Value:    section.ID,
				Message:  fmt.Sprintf("Section id %q appears more than once", section.ID),
				Severity: SeverityError,
			})
		}
		seen[section.ID] = true
	}

	return warnings
}

// SectionContentRule flags sections with no content at all, and sections
// whose content does not match their kind's capability slots.
type SectionContentRule struct{}

func (r *SectionContentRule) Name() string {
	return "Section Content"
}

func (r *SectionContentRule) Check(doc *CardDocument) []CardWarning {
	var warnings []CardWarning

	for _, section := range doc.Sections {
		if len(section.Fields) == 0 && len(section.Items) == 0 {
			warnings = append(warnings, CardWarning{
				Code:     WarningCodeSectionEmpty,
				Category: "section",
				Field:    "sections",
				Value:    section.ID,
				Message:  fmt.Sprintf("Section %s has no fields or items", section.ID),
				Severity: SeverityInfo,
			})
			continue
		}

		caps := section.Kind.Capabilities()
		if (!caps.Fields && len(section.Fields) > 0) || (!caps.Items && len(section.Items) > 0) {
			warnings = append(warnings, CardWarning{
				Code:     WarningCodeSectionSlotMismatch,
				Category: "section",
				Field:    "type",
				Value:    section.Kind.String(),
				Message:  fmt.Sprintf("Section %s carries content its type %q does not render", section.ID, section.Kind),
				Severity: SeverityWarning,
			})
		}
	}

	return warnings
}

// PendingContentRule flags sentinel values still present in a card. Expected
// mid-stream; on a completed card it means the source itself carried
// placeholder content.
type PendingContentRule struct{}

func (r *PendingContentRule) Name() string {
	return "Pending Content"
}

func (r *PendingContentRule) Check(doc *CardDocument) []CardWarning {
	var warnings []CardWarning

	if doc.CardTitle == PlaceholderTitle {
		warnings = append(warnings, CardWarning{
			Code:     WarningCodeTitlePending,
			Category: "content",
			Field:    "cardTitle",
			Value:    doc.CardTitle,
			Message:  "Card title is still the streaming placeholder",
			Severity: SeverityInfo,
		})
	}

	for _, section := range doc.Sections {
		pending := 0
		for _, f := range section.Fields {
			if f.IsPending() {
				pending++
			}
		}
		for _, it := range section.Items {
			if it.IsPending() {
				pending++
			}
		}
		if pending > 0 {
			warnings = append(warnings, CardWarning{
				Code:     WarningCodeContentPending,
				Category: "content",
				Field:    "sections",
				Value:    section.ID,
				Message:  fmt.Sprintf("Section %s has %d value(s) still streaming", section.ID, pending),
				Severity: SeverityInfo,
			})
		}
	}

	return warnings
}
