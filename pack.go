package t4atlas

import "strconv"

// Packer configuration. Pages are always square.
type PackConfig struct {
	PageSize int // page width and height, in pixels
	Ink uint8 // nibble value written for "on" pixels
}

func DefaultPackConfig() PackConfig {
	return PackConfig{ PageSize: DefaultPageSize, Ink: DefaultInk }
}

// Computes the grid geometry and page count that [Pack]() would use,
// without packing anything.
func ComputeLayout(desc *FontDescription, config PackConfig) (Layout, int, error) {
	layoutErr := func(cellWidth, cellHeight int, details string) error {
		return &LayoutError{
			Font: desc.Name, CellWidth: cellWidth, CellHeight: cellHeight,
			PageSize: config.PageSize, Codepoint: NoCodepoint, Details: details,
		}
	}

	if config.PageSize <= 0 || config.PageSize > MaxPageSize {
		return Layout{}, 0, layoutErr(0, 0, "page size must be in [1, " + strconv.Itoa(MaxPageSize) + "], got " + strconv.Itoa(config.PageSize))
	}
	if (config.PageSize*config.PageSize) & 1 != 0 {
		return Layout{}, 0, layoutErr(0, 0, "page pixel count must be even to pack two pixels per byte")
	}
	if config.Ink > 0x0F {
		return Layout{}, 0, layoutErr(0, 0, "ink value " + strconv.Itoa(int(config.Ink)) + " doesn't fit in a nibble")
	}
	if desc.RangeStart < 0 || desc.RangeEnd > MaxCodepoint || desc.RangeStart > desc.RangeEnd {
		return Layout{}, 0, layoutErr(0, 0, "invalid range " + FormatCodepoint(desc.RangeStart) + ".." + FormatCodepoint(desc.RangeEnd))
	}

	cellWidth, cellHeight := desc.MaxWidth(), desc.Height
	if cellHeight <= 0 {
		return Layout{}, 0, layoutErr(cellWidth, cellHeight, "cell height must be positive")
	}
	cols, rows := config.PageSize/cellWidth, config.PageSize/cellHeight
	if cols == 0 || rows == 0 {
		return Layout{}, 0, layoutErr(cellWidth, cellHeight, "cell doesn't fit in page")
	}
	if cellWidth > 255 || cellHeight > 255 {
		return Layout{}, 0, layoutErr(cellWidth, cellHeight, "glyph table can't store cell dimensions above 255")
	}

	layout := Layout{ Cols: cols, Rows: rows, CellsPerPage: cols*rows }
	numSlots := desc.NumSlots()
	pageCount := (numSlots + layout.CellsPerPage - 1)/layout.CellsPerPage
	if pageCount > MaxPages {
		details := strconv.Itoa(numSlots) + " codepoints need " + strconv.Itoa(pageCount)
		details += " pages, but the glyph table can't reference more than " + strconv.Itoa(MaxPages)
		return Layout{}, 0, layoutErr(cellWidth, cellHeight, details)
	}
	return layout, pageCount, nil
}

// Packs the description into an atlas. Every codepoint in the range
// takes one cell, in ascending order, filling pages row by row. Glyphs
// are drawn at the top-left of their cell, and codepoints without a
// glyph keep an empty cell and get a sentinel table entry. Glyphs
// outside the range are ignored.
//
// The description is expected to be valid (see [FontDescription.Validate]()).
// The only errors returned are of type [*LayoutError], and no partial
// atlas is ever returned.
func Pack(desc *FontDescription, config PackConfig) (*AtlasDescriptor, error) {
	layout, pageCount, err := ComputeLayout(desc, config)
	if err != nil { return nil, err }

	cellWidth, cellHeight := desc.MaxWidth(), desc.Height
	atlas := &AtlasDescriptor{
		Name: desc.Name,
		CellWidth: cellWidth,
		CellHeight: cellHeight,
		PageSize: config.PageSize,
		Pages: make([]Page, pageCount),
		GlyphTable: make([]GlyphEntry, desc.NumSlots()),
		RangeStart: desc.RangeStart,
		RangeEnd: desc.RangeEnd,
		DefaultCodepoint: desc.DefaultCodepoint,
	}
	pageBytes := atlas.PageBytes()
	for i := 0; i < pageCount; i++ {
		atlas.Pages[i].Data = make([]byte, pageBytes)
	}

	for codepoint := desc.RangeStart; codepoint <= desc.RangeEnd; codepoint++ {
		glyph, found := desc.Glyphs[codepoint]
		if !found { continue } // sentinel entries are already zeroed

		index := int(codepoint - desc.RangeStart)
		page := index/layout.CellsPerPage
		cell := index % layout.CellsPerPage
		x0 := (cell % layout.Cols)*cellWidth
		y0 := (cell / layout.Cols)*cellHeight

		if len(glyph.Rows) != cellHeight { panic("glyph row count doesn't match font height") }
		view := pageView{ data: atlas.Pages[page].Data, size: config.PageSize }
		for y, row := range glyph.Rows {
			for x, on := range row {
				if on { view.Set(x0 + x, y0 + y, config.Ink) }
			}
		}

		atlas.GlyphTable[index] = GlyphEntry{
			X: uint16(x0),
			Y: uint16(y0),
			Width: uint8(glyph.Width),
			Height: uint8(cellHeight),
			Page: uint8(page),
		}
	}

	return atlas, nil
}
