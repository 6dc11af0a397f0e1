// Package emit writes packed atlases as C source for runtimes that
// draw text from 4bpp paletted textures.
//
// Each atlas produces two artifacts: a header declaring a single
// accessor function, and a source file with the page buffers, the
// texture table, the glyph table and the aggregate atlas record.
// The runtime types (FontAtlas, FontGlyph, texture_t) are expected
// to be declared by the header configured in [Options].HeaderName.
package emit

import "io"
import "os"
import "bufio"
import "strconv"
import "path/filepath"

import "github.com/pkg/errors"

import "github.com/tinne26/t4atlas"

type Options struct {
	HeaderName string // runtime types header, included by the generated header
	PixelFormat string // texture format tag
	Palette int // palette index written on every texture row
	Alignment int // page buffer alignment, in bytes. Zero omits the attribute
	LineWidth int // max columns for page data lines, indentation included
}

func DefaultOptions() Options {
	return Options{
		HeaderName: "font_atlas.h",
		PixelFormat: "GU_PSM_T4",
		Palette: 0,
		Alignment: 16,
		LineWidth: 100,
	}
}

const indent = "    "
const byteTokenLen = len("0x00, ")

// Writes the declaration artifact: include guard, the runtime types
// include and the accessor prototype.
func WriteHeader(writer io.Writer, atlas *t4atlas.AtlasDescriptor, opts Options) error {
	names := NewNames(atlas.Name)
	out := bufio.NewWriter(writer)
	out.WriteString("#ifndef " + names.Guard + "\n")
	out.WriteString("#define " + names.Guard + "\n\n")
	out.WriteString("#include \"" + opts.HeaderName + "\"\n\n")
	out.WriteString("const FontAtlas* " + names.Accessor + "(void);\n\n")
	out.WriteString("#endif\n")
	return out.Flush()
}

// Writes the data artifact. Page bytes and table values are written
// exactly as stored in the atlas.
func WriteSource(writer io.Writer, atlas *t4atlas.AtlasDescriptor, opts Options) error {
	err := atlas.Validate()
	if err != nil { return errors.Wrap(err, "can't emit invalid atlas") }
	if opts.LineWidth < len(indent) + byteTokenLen {
		return errors.New("line width " + strconv.Itoa(opts.LineWidth) + " is too small")
	}

	names := NewNames(atlas.Name)
	out := bufio.NewWriter(writer)
	out.WriteString("#include \"" + names.HeaderFile + "\"\n\n")

	// page buffers
	attribute := ""
	if opts.Alignment > 0 {
		attribute = " __attribute__((aligned(" + strconv.Itoa(opts.Alignment) + ")))"
	}
	line := make([]byte, 0, opts.LineWidth + byteTokenLen)
	for i, page := range atlas.Pages {
		out.WriteString("static const unsigned char " + names.Page(i) + "[]" + attribute + " = {\n")
		line = line[ : 0]
		for _, value := range page.Data {
			if len(line) + byteTokenLen > opts.LineWidth {
				writeLine(out, line)
				line = line[ : 0]
			}
			if len(line) == 0 { line = append(line, indent...) }
			line = appendHexByte(line, value)
		}
		if len(line) > 0 { writeLine(out, line) }
		out.WriteString("};\n\n")
	}

	// texture table
	size := strconv.Itoa(atlas.PageSize)
	palette := strconv.Itoa(opts.Palette)
	out.WriteString("static const texture_t " + names.PageTable + "[] = {\n")
	for i := range atlas.Pages {
		out.WriteString(indent + "{ (void*)" + names.Page(i) + ", " + size + ", " + size + ", ")
		out.WriteString(size + ", " + size + ", " + opts.PixelFormat + ", " + palette + " },\n")
	}
	out.WriteString("};\n\n")

	// glyph table
	out.WriteString("static const FontGlyph " + names.Glyphs + "[" + strconv.Itoa(len(atlas.GlyphTable)) + "] = {\n")
	for _, entry := range atlas.GlyphTable {
		line = append(line[ : 0], indent + "{ "...)
		line = strconv.AppendUint(line, uint64(entry.X), 10)
		line = append(line, ", "...)
		line = strconv.AppendUint(line, uint64(entry.Y), 10)
		line = append(line, ", "...)
		line = strconv.AppendUint(line, uint64(entry.Width), 10)
		line = append(line, ", "...)
		line = strconv.AppendUint(line, uint64(entry.Height), 10)
		line = append(line, ", "...)
		line = strconv.AppendUint(line, uint64(entry.Page), 10)
		line = append(line, " },\n"...)
		out.Write(line)
	}
	out.WriteString("};\n\n")

	// aggregate record and accessor
	out.WriteString("static const FontAtlas " + names.Atlas + " = {\n")
	out.WriteString(indent + names.PageTable + ", " + strconv.Itoa(atlas.PageCount()) + ", ")
	out.WriteString(size + ", " + size + ", " + strconv.Itoa(atlas.CellHeight) + ",\n")
	out.WriteString(indent + strconv.Itoa(int(atlas.RangeStart)) + ", " + strconv.Itoa(int(atlas.RangeEnd)) + ", ")
	out.WriteString(strconv.Itoa(int(atlas.DefaultCodepoint)) + ", " + names.Glyphs + "\n")
	out.WriteString("};\n\n")
	out.WriteString("const FontAtlas* " + names.Accessor + "(void) {\n")
	out.WriteString(indent + "return &" + names.Atlas + ";\n")
	out.WriteString("}\n")
	return out.Flush()
}

// Writes the header and source artifacts into the given directory,
// named after [Names].HeaderFile and [Names].SourceFile. Returns the
// paths of the written files.
func WriteFiles(dir string, atlas *t4atlas.AtlasDescriptor, opts Options) ([]string, error) {
	names := NewNames(atlas.Name)
	headerPath := filepath.Join(dir, names.HeaderFile)
	sourcePath := filepath.Join(dir, names.SourceFile)

	err := writeFile(sourcePath, func(w io.Writer) error { return WriteSource(w, atlas, opts) })
	if err != nil { return nil, err }
	err = writeFile(headerPath, func(w io.Writer) error { return WriteHeader(w, atlas, opts) })
	if err != nil { return nil, err }
	return []string{ headerPath, sourcePath }, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil { return errors.Wrap(err, "creating output file") }
	err = write(file)
	if err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return errors.Wrapf(err, "writing %s", path)
	}
	return errors.Wrapf(file.Close(), "closing %s", path)
}

// trailing space is dropped from the last token
func writeLine(out *bufio.Writer, line []byte) {
	out.Write(line[ : len(line) - 1])
	out.WriteByte('\n')
}

func appendHexByte(buffer []byte, value byte) []byte {
	const hexDigits = "0123456789ABCDEF"
	return append(buffer, '0', 'x', hexDigits[value >> 4], hexDigits[value & 0x0F], ',', ' ')
}
