package t4atlas

import "strconv"

import "github.com/pkg/errors"

// An [AtlasDescriptor] is the packed form of a [FontDescription]:
// fixed-size square pages with 4 bits per pixel, and a dense glyph
// table indexed by codepoint - RangeStart.
//
// Atlases are created with [Pack]() or read back from .t4a data with
// [ParseAtlas](), and are not expected to be modified afterwards.
type AtlasDescriptor struct {
	Name string
	CellWidth int
	CellHeight int
	PageSize int
	Pages []Page
	GlyphTable []GlyphEntry
	RangeStart rune
	RangeEnd rune
	DefaultCodepoint rune
}

// A packed page. Data has PageSize*PageSize/2 bytes, see [MergeNibble]()
// for the pixel order within each byte.
type Page struct {
	Data []byte
}

// A glyph table entry, matching the runtime's glyph struct layout
// (u16 x, u16 y, u8 w, u8 h, u8 page). Codepoints without a glyph
// have an all-zero entry.
type GlyphEntry struct {
	X uint16
	Y uint16
	Width uint8
	Height uint8
	Page uint8
}

func (self GlyphEntry) IsSentinel() bool {
	return self == GlyphEntry{}
}

// Grid geometry shared by all the pages of an atlas.
type Layout struct {
	Cols int
	Rows int
	CellsPerPage int
}

func (self *AtlasDescriptor) PageCount() int { return len(self.Pages) }

// Returns the grid geometry derived from the cell and page sizes.
func (self *AtlasDescriptor) Layout() Layout {
	cols, rows := self.PageSize/self.CellWidth, self.PageSize/self.CellHeight
	return Layout{ Cols: cols, Rows: rows, CellsPerPage: cols*rows }
}

// Returns the raw glyph table entry for the given codepoint. The
// second return value is false if the codepoint is out of range or
// the entry is the sentinel. No default codepoint fallback is applied.
func (self *AtlasDescriptor) Entry(codepoint rune) (GlyphEntry, bool) {
	if codepoint < self.RangeStart || codepoint > self.RangeEnd { return GlyphEntry{}, false }
	entry := self.GlyphTable[codepoint - self.RangeStart]
	return entry, !entry.IsSentinel()
}

// Returns the 4-bit value of the given pixel.
func (self *AtlasDescriptor) Pixel(page, x, y int) uint8 {
	return pageView{ data: self.Pages[page].Data, size: self.PageSize }.At(x, y)
}

// Returns the size in bytes of every page buffer.
func (self *AtlasDescriptor) PageBytes() int {
	return (self.PageSize*self.PageSize) >> 1
}

// Checks the structural invariants of the atlas. Atlases created
// by [Pack]() always pass.
func (self *AtlasDescriptor) Validate() error {
	err := validateName(self.Name)
	if err != nil { return err }
	if self.PageSize <= 0 || self.PageSize > MaxPageSize || (self.PageSize*self.PageSize) & 1 != 0 {
		return errors.New("invalid page size " + strconv.Itoa(self.PageSize))
	}
	if self.CellWidth <= 0 || self.CellHeight <= 0 || self.CellWidth > self.PageSize || self.CellHeight > self.PageSize {
		return errors.New("invalid cell size " + strconv.Itoa(self.CellWidth) + "x" + strconv.Itoa(self.CellHeight))
	}
	if self.RangeStart < 0 || self.RangeEnd > MaxCodepoint || self.RangeStart > self.RangeEnd {
		return errors.New("invalid range " + FormatCodepoint(self.RangeStart) + ".." + FormatCodepoint(self.RangeEnd))
	}
	if self.DefaultCodepoint < 0 || self.DefaultCodepoint > MaxCodepoint {
		return errors.New("invalid default codepoint")
	}
	if len(self.Pages) > MaxPages {
		return errors.New("atlas can't have more than " + strconv.Itoa(MaxPages) + " pages")
	}

	pageBytes := self.PageBytes()
	for i, page := range self.Pages {
		if len(page.Data) != pageBytes {
			return errors.New("page " + strconv.Itoa(i) + " has " + strconv.Itoa(len(page.Data)) + " bytes, expected " + strconv.Itoa(pageBytes))
		}
	}

	numSlots := int(self.RangeEnd - self.RangeStart) + 1
	if len(self.GlyphTable) != numSlots {
		return errors.New("glyph table has " + strconv.Itoa(len(self.GlyphTable)) + " entries, expected " + strconv.Itoa(numSlots))
	}
	for i, entry := range self.GlyphTable {
		if entry.IsSentinel() { continue }
		codepoint := FormatCodepoint(self.RangeStart + rune(i))
		if int(entry.Page) >= len(self.Pages) {
			return errors.New(codepoint + " references missing page " + strconv.Itoa(int(entry.Page)))
		}
		if entry.Width == 0 || int(entry.X) + int(entry.Width) > self.PageSize || int(entry.Y) + int(entry.Height) > self.PageSize {
			return errors.New(codepoint + " glyph rectangle exceeds page bounds")
		}
	}
	return nil
}
