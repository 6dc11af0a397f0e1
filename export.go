package t4atlas

import "io"
import "strconv"
import "compress/gzip"

import "github.com/pkg/errors"

import "github.com/tinne26/t4atlas/internal"

// .t4a files start with this signature, which is not gzipped.
var atlasSignature = []byte{'t', '4', 'a', 't', 'l', 's'}

// Exports the atlas as a .t4a data blob, which can be read back
// with [ParseAtlas](). The blob stores the same pages and glyph
// table that [emit] writes as C source, for tools that want the
// atlas without compiling anything.
//
// [emit]: https://pkg.go.dev/github.com/tinne26/t4atlas/emit
func (self *AtlasDescriptor) Export(writer io.Writer) error {
	err := self.Validate()
	if err != nil { return errors.Wrap(err, "can't export invalid atlas") }

	dataSize := 64 + len(self.Name) + len(self.Pages)*self.PageBytes() + len(self.GlyphTable)*internal.GlyphEntrySize
	if dataSize > internal.MaxAtlasDataSize {
		return errors.New("atlas data exceeds " + strconv.Itoa(internal.MaxAtlasDataSize >> 20) + "MiB")
	}

	_, err = writer.Write(atlasSignature)
	if err != nil { return err }
	compressor, err := gzip.NewWriterLevel(writer, gzip.BestCompression)
	if err != nil { return err }

	// header and geometry
	data := make([]byte, 0, 64 + len(self.Name))
	data = internal.AppendUint32LE(data, FormatVersion)
	data = internal.AppendShortString(data, self.Name)
	data = internal.AppendUint16LE(data, uint16(self.PageSize))
	data = internal.AppendUint16LE(data, uint16(self.CellWidth))
	data = internal.AppendUint16LE(data, uint16(self.CellHeight))
	data = internal.AppendUint32LE(data, uint32(self.RangeStart))
	data = internal.AppendUint32LE(data, uint32(self.RangeEnd))
	data = internal.AppendUint32LE(data, uint32(self.DefaultCodepoint))
	data = internal.AppendUint16LE(data, uint16(len(self.Pages)))
	_, err = compressor.Write(data)
	if err != nil { return err }

	// pages
	for _, page := range self.Pages {
		_, err = compressor.Write(page.Data)
		if err != nil { return err }
	}

	// glyph table
	data = make([]byte, 0, len(self.GlyphTable)*internal.GlyphEntrySize)
	for _, entry := range self.GlyphTable {
		data = internal.AppendUint16LE(data, entry.X)
		data = internal.AppendUint16LE(data, entry.Y)
		data = append(data, entry.Width, entry.Height, entry.Page)
	}
	_, err = compressor.Write(data)
	if err != nil { return err }

	return compressor.Close()
}
