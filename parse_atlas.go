package t4atlas

import "io"
import "io/fs"
import "bytes"

import "github.com/pkg/errors"

import "github.com/tinne26/t4atlas/internal"

// Utility method for parsing a .t4a file from a fs.FS, like when
// using embed.
func ParseAtlasFS(filesys fs.FS, filename string) (*AtlasDescriptor, error) {
	file, err := filesys.Open(filename)
	if err != nil { return nil, err }
	defer file.Close()
	stat, err := file.Stat()
	if err != nil { return nil, err }
	if stat.Size() > internal.MaxAtlasDataSize {
		return nil, errors.New("file size exceeds limit")
	}
	return ParseAtlas(file)
}

// Parses .t4a data created with [AtlasDescriptor.Export](). The
// result is fully validated before being returned.
func ParseAtlas(reader io.Reader) (*AtlasDescriptor, error) {
	var atlas AtlasDescriptor
	var parser internal.ParsingBuffer
	parser.InitBuffers()
	parser.FileType = "t4a"

	// read signature first (this is not gzipped, so it's important)
	_, err := io.ReadFull(reader, parser.TempBuff[0 : len(atlasSignature)])
	if err != nil {
		return nil, parser.NewError("failed to read file signature")
	}
	if !bytes.Equal(parser.TempBuff[0 : len(atlasSignature)], atlasSignature) {
		return nil, parser.NewError("invalid signature")
	}

	err = parser.InitGzipReader(reader)
	if err != nil { return nil, parser.NewError(err.Error()) }

	// --- header ---
	version, err := parser.ReadUint32()
	if err != nil { return nil, err }
	if version != FormatVersion {
		return nil, parser.NewError("unsupported format version")
	}
	atlas.Name, err = parser.ReadShortStr()
	if err != nil { return nil, err }

	// --- geometry ---
	pageSize, err := parser.ReadUint16()
	if err != nil { return nil, err }
	cellWidth, err := parser.ReadUint16()
	if err != nil { return nil, err }
	cellHeight, err := parser.ReadUint16()
	if err != nil { return nil, err }
	atlas.PageSize   = int(pageSize)
	atlas.CellWidth  = int(cellWidth)
	atlas.CellHeight = int(cellHeight)
	if atlas.PageSize == 0 || atlas.PageSize > MaxPageSize {
		return nil, parser.NewError("invalid page size")
	}

	rangeStart, err := parser.ReadUint32()
	if err != nil { return nil, err }
	rangeEnd, err := parser.ReadUint32()
	if err != nil { return nil, err }
	defaultCodepoint, err := parser.ReadUint32()
	if err != nil { return nil, err }
	if rangeEnd > uint32(MaxCodepoint) || rangeStart > rangeEnd || defaultCodepoint > uint32(MaxCodepoint) {
		return nil, parser.NewError("invalid codepoint range")
	}
	atlas.RangeStart = rune(rangeStart)
	atlas.RangeEnd = rune(rangeEnd)
	atlas.DefaultCodepoint = rune(defaultCodepoint)

	// --- pages ---
	numPages, err := parser.ReadUint16()
	if err != nil { return nil, err }
	if int(numPages) > MaxPages {
		return nil, parser.NewError("too many pages")
	}
	pageBytes := atlas.PageBytes()
	atlas.Pages = make([]Page, numPages)
	for i := range atlas.Pages {
		raw, err := parser.ReadBytes(pageBytes)
		if err != nil { return nil, err }
		atlas.Pages[i].Data = bytes.Clone(raw)
	}

	// --- glyph table ---
	numSlots := int(rangeEnd - rangeStart) + 1
	atlas.GlyphTable = make([]GlyphEntry, numSlots)
	for i := range atlas.GlyphTable {
		raw, err := parser.ReadBytes(internal.GlyphEntrySize)
		if err != nil { return nil, err }
		atlas.GlyphTable[i] = GlyphEntry{
			X: internal.DecodeUint16LE(raw[0 : 2]),
			Y: internal.DecodeUint16LE(raw[2 : 4]),
			Width: raw[4],
			Height: raw[5],
			Page: raw[6],
		}
	}

	// --- EOF ---
	err = parser.EnsureEOF()
	if err != nil { return nil, err }

	err = atlas.Validate()
	if err != nil { return nil, parser.NewError(err.Error()) }
	return &atlas, nil
}
