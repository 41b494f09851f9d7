// Package demo provides a card source that generates random lorem ipsum
// cards. Used for development and documentation pages without requiring
// any real upstream.
package demo

import (
	"context"
	"fmt"
	"strings"

	loremgen "github.com/bozaro/golorem"
	"github.com/tidwall/sjson"

	cardstream "github.com/haowjy/cardstream-go"
)

// sectionPlan is the rotation of section kinds used for generated cards:
// key/value content alternates with list-style content so every renderer
// slot gets exercised.
var sectionPlan = []cardstream.SectionKind{
	cardstream.SectionText,
	cardstream.SectionMap,
	cardstream.SectionList,
	cardstream.SectionFinancials,
	cardstream.SectionTimeline,
}

// Source generates a fresh random card on every CardJSON call.
type Source struct {
	generator *loremgen.Lorem
	sections  int
}

// NewSource creates a demo source generating three-section cards.
func NewSource() *Source {
	return &Source{
		generator: loremgen.New(),
		sections:  3,
	}
}

// NewSourceWithSections creates a demo source generating cards with the
// given number of sections (minimum 1).
func NewSourceWithSections(sections int) *Source {
	if sections < 1 {
		sections = 1
	}
	return &Source{
		generator: loremgen.New(),
		sections:  sections,
	}
}

// Name returns the source identifier.
func (s *Source) Name() string {
	return "demo"
}

// CardJSON builds a random card payload. The output is always valid JSON
// in the CardDocument shape, assembled incrementally field by field.
func (s *Source) CardJSON(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out := "{}"
	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		out, err = sjson.Set(out, path, value)
	}

	set("cardTitle", s.shortTitle())

	for i := 0; i < s.sections; i++ {
		kind := sectionPlan[i%len(sectionPlan)]
		base := fmt.Sprintf("sections.%d", i)

		set(base+".id", fmt.Sprintf("demo-%s-%d", kind, i))
		set(base+".title", s.shortTitle())
		set(base+".type", kind.String())

		caps := kind.Capabilities()
		if caps.Fields {
			for j := 0; j < 3; j++ {
				fieldBase := fmt.Sprintf("%s.fields.%d", base, j)
				set(fieldBase+".label", s.shortTitle())
				set(fieldBase+".value", s.generator.Sentence(3, 8))
			}
		}
		if caps.Items {
			for j := 0; j < 3; j++ {
				itemBase := fmt.Sprintf("%s.items.%d", base, j)
				set(itemBase+".text", s.generator.Sentence(5, 12))
			}
		}
	}

	if err != nil {
		return "", fmt.Errorf("failed to build demo card: %w", err)
	}
	return out, nil
}

// shortTitle derives a 2-4 word heading from a generated sentence.
func (s *Source) shortTitle() string {
	sentence := strings.TrimRight(s.generator.Sentence(2, 4), ".!? ")
	return sentence
}
