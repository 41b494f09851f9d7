package cardstream

// StreamingSentinel is the reserved placeholder standing in for field and
// item content that has not yet arrived in the stream. Renderers compare
// against this value to decide whether to show a loading affordance.
const StreamingSentinel = "…"

// PlaceholderTitle is the stable placeholder used for a card title that has
// not yet arrived. It is the same canonical sentinel used for field values.
const PlaceholderTitle = StreamingSentinel

// Section kind constants. These are the section types the renderer layer
// recognizes natively; unknown kinds degrade to a generic layout rather
// than erroring.
const (
	SectionText       SectionKind = "text"
	SectionList       SectionKind = "list"
	SectionMap        SectionKind = "map"
	SectionFinancials SectionKind = "financials"
	SectionTimeline   SectionKind = "timeline"
)

// SectionKind identifies how a section's content should be rendered.
// Using a typed constant prevents typos and provides compile-time safety.
type SectionKind string

// String returns the string representation of the section kind
func (k SectionKind) String() string {
	return string(k)
}

// IsKnown returns true if the kind is one the renderer layer handles natively
func (k SectionKind) IsKnown() bool {
	switch k {
	case SectionText, SectionList, SectionMap, SectionFinancials, SectionTimeline:
		return true
	default:
		return false
	}
}

// SectionCapabilities describes which content slots a section kind uses.
// This is the renderer fallback contract: a consumer only needs to know
// whether to look at Fields, Items, or both.
type SectionCapabilities struct {
	Fields bool
	Items  bool
}

// Capabilities returns the content slots used by this kind. Unknown kinds
// fall back to both slots so a generic renderer can still show everything
// the stream delivered.
func (k SectionKind) Capabilities() SectionCapabilities {
	switch k {
	case SectionMap, SectionFinancials:
		return SectionCapabilities{Fields: true}
	case SectionText, SectionList, SectionTimeline:
		return SectionCapabilities{Items: true}
	default:
		return SectionCapabilities{Fields: true, Items: true}
	}
}

// CardDocument is the normalized, always-valid output structure handed to
// consumers. Every CardUpdate carries one, even mid-stream: missing content
// is represented by StreamingSentinel, never by absence.
type CardDocument struct {
	// CardTitle is the card's heading. PlaceholderTitle until it arrives.
	CardTitle string `json:"cardTitle"`

	// Sections in source order. Insertion order is display order; the
	// engine never resorts them.
	Sections []CardSection `json:"sections"`
}

// CardSection is one typed block of card content.
type CardSection struct {
	// ID is stable across ticks. When the source omits it, a derived id is
	// assigned from the section's position and title.
	ID string `json:"id"`

	// Title is the section heading. StreamingSentinel until it arrives.
	Title string `json:"title"`

	// Kind selects the renderer. Unknown kinds degrade gracefully, see
	// SectionKind.Capabilities.
	Kind SectionKind `json:"type"`

	// Fields holds labeled key/value content (map, financials kinds).
	Fields []CardField `json:"fields,omitempty"`

	// Items holds ordered list content (text, list, timeline kinds).
	Items []CardItem `json:"items,omitempty"`
}

// CardField is a labeled value within a section.
type CardField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// IsPending returns true while the field's value has not arrived yet
func (f CardField) IsPending() bool {
	return f.Value == StreamingSentinel
}

// CardItem is one entry of a section's ordered list content.
type CardItem struct {
	Text string `json:"text"`
}

// IsPending returns true while the item's text has not arrived yet
func (i CardItem) IsPending() bool {
	return i.Text == StreamingSentinel
}

// Section returns the section with the given id, or nil if absent.
func (d *CardDocument) Section(id string) *CardSection {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return &d.Sections[i]
		}
	}
	return nil
}

// Clone returns a deep copy. Emitted snapshots are clones so the engine
// retains no reference a subscriber could mutate.
func (d *CardDocument) Clone() *CardDocument {
	if d == nil {
		return nil
	}
	out := &CardDocument{
		CardTitle: d.CardTitle,
		Sections:  make([]CardSection, len(d.Sections)),
	}
	for i, s := range d.Sections {
		cs := s
		if s.Fields != nil {
			cs.Fields = append([]CardField(nil), s.Fields...)
		}
		if s.Items != nil {
			cs.Items = append([]CardItem(nil), s.Items...)
		}
		out.Sections[i] = cs
	}
	return out
}

// contentWeight measures completeness as sections plus fields plus items.
// The engine uses it to guarantee a later snapshot is never less complete
// than an earlier one.
func (d *CardDocument) contentWeight() int {
	if d == nil {
		return 0
	}
	w := len(d.Sections)
	for _, s := range d.Sections {
		w += len(s.Fields) + len(s.Items)
	}
	return w
}

// emptyCard returns the initial snapshot: a valid document with no sections.
func emptyCard() *CardDocument {
	return &CardDocument{
		CardTitle: PlaceholderTitle,
		Sections:  []CardSection{},
	}
}
