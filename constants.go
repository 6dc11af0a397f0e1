package t4atlas

import "github.com/tinne26/t4atlas/internal"

// Default square page dimension, in pixels. 512 is the largest
// texture size that the target runtime can sample from directly.
const DefaultPageSize = 512
const MaxPageSize = 8192

// Default nibble value written for "on" bitmap pixels.
const DefaultInk uint8 = 1

// Codepoint used at runtime for missing glyphs when the description
// doesn't declare one.
const DefaultCodepoint rune = 0x20

// Font descriptions larger than this are rejected before parsing.
const MaxDescriptionSize = (8 << 20)

const MaxPages = internal.MaxPages
const FormatVersion = internal.FormatVersion
const MaxCodepoint rune = 0x10FFFF

// Used in error fields when the error is not tied to a specific glyph.
const NoCodepoint rune = -1
