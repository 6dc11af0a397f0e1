package t4atlas

import "testing"
import "bytes"
import "errors"
import "reflect"

func mustParse(t *testing.T, lines ...string) *FontDescription {
	t.Helper()
	desc, err := ParseLines(lines, "test")
	if err != nil { t.Fatalf("unexpected ParseLines() error: %s", err) }
	return desc
}

func TestPackSingleGlyph(t *testing.T) {
	desc := mustParse(t,
		"font name=mini height=2",
		"range U+0041..U+0042",
		"glyph U+0041 width=2", "10", "01", "end",
	)

	atlas, err := Pack(desc, PackConfig{ PageSize: 4, Ink: 1 })
	if err != nil { t.Fatalf("unexpected Pack() error: %s", err) }

	if atlas.CellWidth != 2 || atlas.CellHeight != 2 {
		t.Fatalf("expected 2x2 cells, got %dx%d", atlas.CellWidth, atlas.CellHeight)
	}
	layout := atlas.Layout()
	if layout != (Layout{ Cols: 2, Rows: 2, CellsPerPage: 4 }) {
		t.Fatalf("unexpected layout %+v", layout)
	}
	if atlas.PageCount() != 1 { t.Fatalf("expected 1 page, got %d", atlas.PageCount()) }
	if len(atlas.Pages[0].Data) != 8 { t.Fatalf("expected 8 page bytes, got %d", len(atlas.Pages[0].Data)) }

	entry, found := atlas.Entry('A')
	if !found { t.Fatalf("expected entry for U+0041") }
	if entry != (GlyphEntry{ X: 0, Y: 0, Width: 2, Height: 2, Page: 0 }) {
		t.Fatalf("unexpected U+0041 entry %+v", entry)
	}
	expected := [][]uint8{ {1, 0}, {0, 1} }
	for y, row := range expected {
		for x, value := range row {
			if atlas.Pixel(0, x, y) != value {
				t.Fatalf("expected pixel (%d, %d) to be %d, got %d", x, y, value, atlas.Pixel(0, x, y))
			}
		}
	}
	if !bytes.Equal(atlas.Pages[0].Data, []byte{0x01, 0, 0x10, 0, 0, 0, 0, 0}) {
		t.Fatalf("unexpected page bytes %v", atlas.Pages[0].Data)
	}

	if len(atlas.GlyphTable) != 2 { t.Fatalf("expected 2 table entries, got %d", len(atlas.GlyphTable)) }
	if !atlas.GlyphTable[1].IsSentinel() { t.Fatalf("expected sentinel for U+0042, got %+v", atlas.GlyphTable[1]) }
	_, found = atlas.Entry('B')
	if found { t.Fatalf("expected Entry(U+0042) to report a missing glyph") }
	_, found = atlas.Entry('Z')
	if found { t.Fatalf("expected Entry() to report out of range codepoints as missing") }

	err = atlas.Validate()
	if err != nil { t.Fatalf("packed atlas failed validation: %s", err) }
}

func TestPackMultiPage(t *testing.T) {
	desc := mustParse(t,
		"font name=multi height=1",
		"range U+0000..U+0010",
		"glyph U+0000", "1", "end",
		"glyph U+0005", "1", "end",
		"glyph U+0010", "1", "end",
	)

	atlas, err := Pack(desc, PackConfig{ PageSize: 4, Ink: 1 })
	if err != nil { t.Fatalf("unexpected Pack() error: %s", err) }
	if atlas.Layout().CellsPerPage != 16 { t.Fatalf("expected 16 cells per page, got %d", atlas.Layout().CellsPerPage) }
	if atlas.PageCount() != 2 { t.Fatalf("expected 2 pages, got %d", atlas.PageCount()) }
	if len(atlas.GlyphTable) != 17 { t.Fatalf("expected 17 table entries, got %d", len(atlas.GlyphTable)) }

	entry, _ := atlas.Entry(0x10)
	if entry != (GlyphEntry{ X: 0, Y: 0, Width: 1, Height: 1, Page: 1 }) {
		t.Fatalf("expected U+0010 at page 1 cell 0, got %+v", entry)
	}
	entry, _ = atlas.Entry(0x05)
	if entry != (GlyphEntry{ X: 1, Y: 1, Width: 1, Height: 1, Page: 0 }) {
		t.Fatalf("expected U+0005 at (1, 1) on page 0, got %+v", entry)
	}
	if atlas.Pixel(1, 0, 0) != 1 || atlas.Pixel(0, 1, 1) != 1 || atlas.Pixel(0, 2, 1) != 0 {
		t.Fatalf("unexpected pixel values on the packed pages")
	}

	for i, entry := range atlas.GlyphTable {
		if i == 0 || i == 5 || i == 16 { continue }
		if !entry.IsSentinel() { t.Fatalf("expected sentinel at offset %d, got %+v", i, entry) }
	}
}

func TestPackLayoutErrors(t *testing.T) {
	tall := mustParse(t, "font name=tall height=5", "range U+41..U+41", "glyph U+41", "1", "1", "1", "1", "1", "end")
	wide := mustParse(t, "font name=wide height=1", "range U+41..U+41", "glyph U+41", "11111", "end")
	tests := []struct{
		Name string
		Desc *FontDescription
		Config PackConfig
	}{
		{"cell taller than page", tall, PackConfig{ PageSize: 4, Ink: 1 }},
		{"cell wider than page", wide, PackConfig{ PageSize: 4, Ink: 1 }},
		{"zero page size", wide, PackConfig{ PageSize: 0, Ink: 1 }},
		{"odd pixel count", wide, PackConfig{ PageSize: 5, Ink: 1 }},
		{"ink overflow", wide, PackConfig{ PageSize: 8, Ink: 16 }},
	}

	for _, test := range tests {
		atlas, err := Pack(test.Desc, test.Config)
		if atlas != nil { t.Fatalf("test '%s': expected no atlas on failure", test.Name) }
		var layoutErr *LayoutError
		if !errors.As(err, &layoutErr) {
			t.Fatalf("test '%s': expected LayoutError, got '%v'", test.Name, err)
		}
		if layoutErr.Font != test.Desc.Name {
			t.Fatalf("test '%s': expected error font '%s', got '%s'", test.Name, test.Desc.Name, layoutErr.Font)
		}
	}

	// too many pages for the table's page field
	huge := mustParse(t, "font name=huge height=2", "range U+0000..U+FFFF")
	_, pages, err := ComputeLayout(huge, PackConfig{ PageSize: 2, Ink: 1 })
	if err == nil { t.Fatalf("expected page overflow error, got %d pages", pages) }
}

func TestPackDeterminism(t *testing.T) {
	desc, err := ParseLines([]string{
		"font name=det height=3",
		"range U+0020..U+007E",
		"glyph U+0021 width=1", "#", "#", ".", "end",
		"glyph U+0041 width=3", ".#.", "###", "#.#", "end",
		"glyph U+007E width=2", ".#", "#.", "..", "end",
	}, "det")
	if err != nil { t.Fatalf("unexpected ParseLines() error: %s", err) }

	config := PackConfig{ PageSize: 12, Ink: 3 }
	first, err := Pack(desc, config)
	if err != nil { t.Fatalf("unexpected Pack() error: %s", err) }
	second, err := Pack(desc, config)
	if err != nil { t.Fatalf("unexpected Pack() error: %s", err) }
	if !reflect.DeepEqual(first, second) { t.Fatalf("packing the same description twice gave different atlases") }

	// 95 slots, 4x4 cells of 3x3 => 16 cells per page => 6 pages
	_, pageCount, err := ComputeLayout(desc, config)
	if err != nil { t.Fatalf("unexpected ComputeLayout() error: %s", err) }
	if pageCount != 6 || first.PageCount() != 6 {
		t.Fatalf("expected 6 pages, got %d and %d", pageCount, first.PageCount())
	}
	for i, page := range first.Pages {
		if len(page.Data) != 72 { t.Fatalf("page %d has %d bytes, expected 72", i, len(page.Data)) }
	}
	if len(first.GlyphTable) != 95 { t.Fatalf("expected 95 table entries, got %d", len(first.GlyphTable)) }

	// U+0041 is at offset 33 => page 2, cell 1 => (3, 0)
	entry, _ := first.Entry('A')
	if entry != (GlyphEntry{ X: 3, Y: 0, Width: 3, Height: 3, Page: 2 }) {
		t.Fatalf("unexpected U+0041 entry %+v", entry)
	}
	if first.Pixel(2, 4, 0) != 3 || first.Pixel(2, 3, 0) != 0 {
		t.Fatalf("expected configured ink value on U+0041 pixels")
	}

	// cells never overlap, so ink count is preserved
	var totalInk, pixelInk int
	for _, glyph := range desc.Glyphs { totalInk += glyph.InkCount() }
	for page := range first.Pages {
		for y := 0; y < first.PageSize; y++ {
			for x := 0; x < first.PageSize; x++ {
				if first.Pixel(page, x, y) != 0 { pixelInk += 1 }
			}
		}
	}
	if totalInk != pixelInk { t.Fatalf("expected %d ink pixels on pages, got %d", totalInk, pixelInk) }
}

func TestPackEmptyFont(t *testing.T) {
	desc := mustParse(t, "font name=empty height=2", "range U+0030..U+0039")
	atlas, err := Pack(desc, DefaultPackConfig())
	if err != nil { t.Fatalf("unexpected Pack() error: %s", err) }
	if atlas.CellWidth != 1 { t.Fatalf("expected cell width 1 without glyphs, got %d", atlas.CellWidth) }
	if atlas.PageCount() != 1 { t.Fatalf("expected 1 page, got %d", atlas.PageCount()) }
	if len(atlas.Pages[0].Data) != DefaultPageSize*DefaultPageSize/2 {
		t.Fatalf("unexpected page size %d", len(atlas.Pages[0].Data))
	}
	for i, entry := range atlas.GlyphTable {
		if !entry.IsSentinel() { t.Fatalf("expected sentinel at offset %d", i) }
	}
}
