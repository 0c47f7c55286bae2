package model

import (
	"github.com/lucasb-eyer/go-colorful"
)

// SubjectColor is the {background, text, border} triple used when rendering
// a subject badge. Text and border are derived from the background at init:
// text flips between near-black and near-white on luminance, border is the
// background darkened a step.
type SubjectColor struct {
	Background string
	Text       string
	Border     string
}

// paletteBackgrounds are the ten fixed badge backgrounds. The count is part
// of the color contract: the subject hash is taken modulo this length.
var paletteBackgrounds = []string{
	"#b3e5fc", // light blue
	"#c8e6c9", // light green
	"#ffe0b2", // light orange
	"#f8bbd0", // pink
	"#d1c4e9", // lavender
	"#fff9c4", // pale yellow
	"#b2dfdb", // teal
	"#ffccbc", // peach
	"#cfd8dc", // blue grey
	"#e1bee7", // violet
}

var palette = buildPalette(paletteBackgrounds)

func buildPalette(backgrounds []string) []SubjectColor {
	out := make([]SubjectColor, 0, len(backgrounds))
	for _, hex := range backgrounds {
		bg, err := colorful.Hex(hex)
		if err != nil {
			out = append(out, SubjectColor{Background: hex, Text: "#1a1a1a", Border: hex})
			continue
		}
		text := "#1a1a1a"
		if _, _, l := bg.Hcl(); l < 0.45 {
			text = "#f5f5f5"
		}
		border := bg.BlendHcl(colorful.Color{}, 0.35).Clamped()
		out = append(out, SubjectColor{
			Background: hex,
			Text:       text,
			Border:     border.Hex(),
		})
	}
	return out
}

// ColorFor deterministically assigns a palette entry to a subject using a
// multiply-by-31 rolling hash over the subject's runes, wrapped at 32 bits
// so the numeric value is stable across platforms and runs.
func ColorFor(subject string) SubjectColor {
	return palette[PaletteIndex(subject)]
}

// PaletteIndex exposes the raw hash-to-index mapping for tests.
func PaletteIndex(subject string) int {
	var h int32
	for _, r := range subject {
		h = h*31 + int32(r)
	}
	idx := int(h) % len(palette)
	if idx < 0 {
		idx += len(palette)
	}
	return idx
}
