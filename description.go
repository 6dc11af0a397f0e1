package t4atlas

import "slices"
import "strconv"
import "strings"

import "github.com/pkg/errors"

import "github.com/tinne26/t4atlas/internal"

// A [FontDescription] is the validated in-memory model of a font
// description text file. Every glyph shares the font height, while
// widths can differ per glyph.
//
// Descriptions are usually created with [Parse]() or [ParseFile](),
// but the importer in facefont builds them programmatically too. In
// that case, [FontDescription.Validate]() should be called before
// packing.
type FontDescription struct {
	Name string
	Height int
	RangeStart rune // inclusive
	RangeEnd rune // inclusive
	DefaultCodepoint rune
	Glyphs map[rune]*GlyphDef
}

// A single glyph bitmap. Rows are top to bottom, and each row
// has exactly Width values, true for ink.
type GlyphDef struct {
	Width int
	Rows [][]bool
}

// Returns whether the pixel at the given glyph-local coordinates is
// set. Out of bounds coordinates report false.
func (self *GlyphDef) At(x, y int) bool {
	if y < 0 || y >= len(self.Rows) { return false }
	row := self.Rows[y]
	if x < 0 || x >= len(row) { return false }
	return row[x]
}

// Returns the number of ink pixels in the glyph.
func (self *GlyphDef) InkCount() int {
	var count int
	for _, row := range self.Rows {
		for _, on := range row {
			if on { count += 1 }
		}
	}
	return count
}

// Returns the defined codepoints in ascending order.
func (self *FontDescription) Codepoints() []rune {
	codepoints := make([]rune, 0, len(self.Glyphs))
	for codepoint, _ := range self.Glyphs {
		codepoints = append(codepoints, codepoint)
	}
	slices.Sort(codepoints)
	return codepoints
}

// Returns the widest glyph width, or 1 if the font has no glyphs.
func (self *FontDescription) MaxWidth() int {
	maxWidth := 0
	for _, glyph := range self.Glyphs {
		maxWidth = max(maxWidth, glyph.Width)
	}
	if maxWidth == 0 { return 1 }
	return maxWidth
}

// Returns the number of codepoint slots covered by the range.
func (self *FontDescription) NumSlots() int {
	return int(self.RangeEnd - self.RangeStart) + 1
}

// Returns the defined codepoints that fall outside the declared
// range, in ascending order. These glyphs are not packed.
func (self *FontDescription) OutOfRange() []rune {
	var outside []rune
	for _, codepoint := range self.Codepoints() {
		if codepoint < self.RangeStart || codepoint > self.RangeEnd {
			outside = append(outside, codepoint)
		}
	}
	return outside
}

// Checks all the description invariants. Descriptions returned by the
// parser always pass, but programmatically built ones might not.
func (self *FontDescription) Validate() error {
	err := validateName(self.Name)
	if err != nil {
		return &ValidationError{ Font: self.Name, Codepoint: NoCodepoint, Details: err.Error() }
	}
	if self.Height <= 0 {
		return &ValidationError{
			Font: self.Name, Codepoint: NoCodepoint,
			Details: "height must be positive, got " + strconv.Itoa(self.Height),
		}
	}
	if self.RangeStart < 0 || self.RangeEnd > MaxCodepoint || self.RangeStart > self.RangeEnd {
		return &ValidationError{
			Font: self.Name, Codepoint: NoCodepoint,
			Details: "invalid range " + FormatCodepoint(self.RangeStart) + ".." + FormatCodepoint(self.RangeEnd),
		}
	}
	if self.DefaultCodepoint < 0 || self.DefaultCodepoint > MaxCodepoint {
		return &ValidationError{ Font: self.Name, Codepoint: self.DefaultCodepoint, Details: "invalid default codepoint" }
	}

	for _, codepoint := range self.Codepoints() {
		glyph := self.Glyphs[codepoint]
		if glyph == nil {
			return &ValidationError{ Font: self.Name, Codepoint: codepoint, Details: "nil glyph" }
		}
		err := self.validateGlyph(codepoint, glyph, 0, "")
		if err != nil { return err }
	}
	return nil
}

// The line and content identify the glyph statement, when known.
func (self *FontDescription) validateGlyph(codepoint rune, glyph *GlyphDef, line int, content string) error {
	if glyph.Width <= 0 {
		return &ValidationError{
			Font: self.Name, Line: line, Content: content, Codepoint: codepoint,
			Details: "width must be positive, got " + strconv.Itoa(glyph.Width),
		}
	}
	if len(glyph.Rows) != self.Height {
		return &ValidationError{
			Font: self.Name, Line: line, Content: content, Codepoint: codepoint,
			Details: "expected " + strconv.Itoa(self.Height) + " rows, got " + strconv.Itoa(len(glyph.Rows)),
		}
	}
	for _, row := range glyph.Rows {
		if len(row) != glyph.Width {
			return &ValidationError{
				Font: self.Name, Line: line, Content: content, Codepoint: codepoint,
				Details: "row length " + strconv.Itoa(len(row)) + " != width " + strconv.Itoa(glyph.Width),
			}
		}
	}
	return nil
}

// Names end up in generated identifiers and in the header line,
// so whitespace and '=' can't be part of them.
func validateName(name string) error {
	if name == "" { return errors.New("font name can't be empty") }
	if len(name) > internal.MaxNameLen {
		return errors.New("font name can't exceed " + strconv.Itoa(internal.MaxNameLen) + " bytes")
	}
	if strings.ContainsAny(name, " \t\r\n=") {
		return errors.New("font name '" + name + "' can't contain whitespace or '='")
	}
	return nil
}
