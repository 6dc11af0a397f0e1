package emit

import "strconv"
import "strings"

// Identifiers and file names derived from a font name. Font names are
// used as-is when they are valid C identifiers; otherwise, invalid
// characters are replaced by underscores and names starting with a
// digit get an underscore prefix.
type Names struct {
	Base string // sanitized font name
	Guard string // FONT_ATLAS_<BASE>_H
	Accessor string // <base>_get_atlas
	PageTable string // <base>_pages
	Glyphs string // <base>_glyphs
	Atlas string // <base>_atlas
	HeaderFile string // <base>_atlas.h
	SourceFile string // <base>_atlas.c
}

func NewNames(fontName string) Names {
	base := Identifier(fontName)
	return Names{
		Base: base,
		Guard: "FONT_ATLAS_" + strings.ToUpper(base) + "_H",
		Accessor: base + "_get_atlas",
		PageTable: base + "_pages",
		Glyphs: base + "_glyphs",
		Atlas: base + "_atlas",
		HeaderFile: base + "_atlas.h",
		SourceFile: base + "_atlas.c",
	}
}

// Returns the name of the static array holding the given page.
func (self Names) Page(index int) string {
	return self.Base + "_atlas_page" + strconv.Itoa(index)
}

// Converts an arbitrary name into a valid C identifier.
func Identifier(name string) string {
	if name == "" { return "_" }
	out := make([]byte, 0, len(name) + 1)
	if name[0] >= '0' && name[0] <= '9' { out = append(out, '_') }
	for i := 0; i < len(name); i++ {
		char := name[i]
		switch {
		case char >= 'a' && char <= 'z', char >= 'A' && char <= 'Z':
			out = append(out, char)
		case char >= '0' && char <= '9', char == '_':
			out = append(out, char)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
