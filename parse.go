package t4atlas

import "io"
import "io/fs"
import "os"
import "path/filepath"
import "strconv"
import "strings"

import "github.com/pkg/errors"

// Alphabets accepted in bitmap rows. Both can be mixed freely, even
// within a single row.
type Alphabet struct {
	On byte
	Off byte
}

var AlphabetBinary = Alphabet{ On: '1', Off: '0' }
var AlphabetBlocks = Alphabet{ On: '#', Off: '.' }

const commentMarker = '#'
const endMarker = "end"

// Returns whether the given byte belongs to any accepted alphabet, and
// whether it represents ink.
func bitmapValue(char byte) (on bool, ok bool) {
	switch char {
	case AlphabetBinary.On, AlphabetBlocks.On:
		return true, true
	case AlphabetBinary.Off, AlphabetBlocks.Off:
		return false, true
	default:
		return false, false
	}
}

// Utility method for parsing from a fs.FS, like when using embed.
// The font name defaults to the file name without extension.
func ParseFS(filesys fs.FS, filename string) (*FontDescription, error) {
	file, err := filesys.Open(filename)
	if err != nil { return nil, errors.Wrapf(err, "opening %s", filename) }
	defer file.Close()
	return Parse(file, fileStem(filename))
}

// Parses the font description at the given path. The font name defaults
// to the file name without extension.
func ParseFile(path string) (*FontDescription, error) {
	file, err := os.Open(path)
	if err != nil { return nil, errors.Wrapf(err, "opening %s", path) }
	defer file.Close()
	return Parse(file, fileStem(path))
}

// Parses a font description from the given reader. The fallbackName
// is used when the header line doesn't declare a name.
func Parse(reader io.Reader, fallbackName string) (*FontDescription, error) {
	data, err := io.ReadAll(io.LimitReader(reader, MaxDescriptionSize + 1))
	if err != nil { return nil, errors.Wrap(err, "reading font description") }
	if len(data) > MaxDescriptionSize {
		return nil, errors.New("font description exceeds " + strconv.Itoa(MaxDescriptionSize) + " bytes")
	}
	return ParseLines(strings.Split(string(data), "\n"), fallbackName)
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Parses a font description already split in lines. Trailing '\r' and
// surrounding whitespace are ignored on every line. The fallbackName is
// used when the header line doesn't declare a name.
//
// Errors are always of type [*ParseError] or [*ValidationError].
func ParseLines(lines []string, fallbackName string) (*FontDescription, error) {
	var parser descriptionParser
	parser.lines = lines
	parser.desc = FontDescription{
		Name: fallbackName,
		DefaultCodepoint: DefaultCodepoint,
		Glyphs: make(map[rune]*GlyphDef, 128),
	}

	index := 0
	for index < len(lines) {
		consumed, err := parser.parseStatement(index)
		if err != nil { return nil, err }
		index += consumed
	}

	err := parser.finish()
	if err != nil { return nil, err }
	return &parser.desc, nil
}

type descriptionParser struct {
	lines []string
	desc FontDescription

	hasHeader bool
	hasHeight bool
	hasRange bool
	hasDefault bool
	glyphLines map[rune]int // codepoint to line of the glyph statement
}

func (self *descriptionParser) parseErr(line int, content string, codepoint rune, details string) error {
	return &ParseError{
		Font: self.desc.Name, Line: line, Content: content,
		Codepoint: codepoint, Details: details,
	}
}

func (self *descriptionParser) validationErr(line int, content string, codepoint rune, details string) error {
	return &ValidationError{
		Font: self.desc.Name, Line: line, Content: content,
		Codepoint: codepoint, Details: details,
	}
}

// Parses the statement starting at the given line index and returns
// the number of lines consumed (at least 1).
func (self *descriptionParser) parseStatement(index int) (int, error) {
	line := strings.TrimSpace(self.lines[index])
	lineNum := index + 1
	if line == "" || line[0] == commentMarker { return 1, nil }

	fields := strings.Fields(line)
	switch fields[0] {
	case "font":
		return 1, self.parseHeader(lineNum, line, fields[1 : ])
	case "range":
		return 1, self.parseRange(lineNum, line, fields[1 : ])
	case "default":
		return 1, self.parseDefault(lineNum, line, fields[1 : ])
	case "glyph":
		return self.parseGlyph(index, line, fields[1 : ])
	default:
		return 1, self.parseErr(lineNum, line, NoCodepoint, "unrecognized line")
	}
}

func (self *descriptionParser) parseHeader(lineNum int, line string, tokens []string) error {
	if self.hasHeader {
		return self.parseErr(lineNum, line, NoCodepoint, "duplicated font header")
	}
	self.hasHeader = true

	for _, token := range tokens {
		key, value, found := strings.Cut(token, "=")
		if !found || key == "" {
			return self.parseErr(lineNum, line, NoCodepoint, "expected key=value token, got '" + token + "'")
		}
		switch key {
		case "name":
			err := validateName(value)
			if err != nil { return self.parseErr(lineNum, line, NoCodepoint, err.Error()) }
			self.desc.Name = value
		case "height":
			height, err := strconv.Atoi(value)
			if err != nil || height <= 0 {
				return self.parseErr(lineNum, line, NoCodepoint, "height must be a positive integer")
			}
			self.desc.Height = height
			self.hasHeight = true
		default:
			// unknown keys are ignored for forward compatibility
		}
	}
	return nil
}

func (self *descriptionParser) parseRange(lineNum int, line string, tokens []string) error {
	if self.hasRange {
		return self.parseErr(lineNum, line, NoCodepoint, "duplicated range")
	}
	if len(tokens) != 1 {
		return self.parseErr(lineNum, line, NoCodepoint, "expected 'range U+XXXX..U+YYYY'")
	}
	startToken, endToken, found := strings.Cut(tokens[0], "..")
	if !found {
		return self.parseErr(lineNum, line, NoCodepoint, "expected 'range U+XXXX..U+YYYY'")
	}
	start, err := ParseCodepoint(startToken)
	if err != nil { return self.parseErr(lineNum, line, NoCodepoint, err.Error()) }
	end, err := ParseCodepoint(endToken)
	if err != nil { return self.parseErr(lineNum, line, NoCodepoint, err.Error()) }
	if start > end {
		return self.parseErr(lineNum, line, NoCodepoint, "range start can't exceed range end")
	}

	self.desc.RangeStart, self.desc.RangeEnd = start, end
	self.hasRange = true
	return nil
}

func (self *descriptionParser) parseDefault(lineNum int, line string, tokens []string) error {
	if self.hasDefault {
		return self.parseErr(lineNum, line, NoCodepoint, "duplicated default")
	}
	if len(tokens) != 1 {
		return self.parseErr(lineNum, line, NoCodepoint, "expected 'default U+XXXX'")
	}
	codepoint, err := ParseCodepoint(tokens[0])
	if err != nil { return self.parseErr(lineNum, line, NoCodepoint, err.Error()) }
	self.desc.DefaultCodepoint = codepoint
	self.hasDefault = true
	return nil
}

// Parses a glyph statement and its bitmap block. Returns the number of
// lines consumed, including the glyph line and the end marker.
func (self *descriptionParser) parseGlyph(index int, line string, tokens []string) (int, error) {
	lineNum := index + 1
	if len(tokens) == 0 {
		return 1, self.parseErr(lineNum, line, NoCodepoint, "expected 'glyph U+XXXX [width=N]'")
	}
	codepoint, err := ParseCodepoint(tokens[0])
	if err != nil { return 1, self.parseErr(lineNum, line, NoCodepoint, err.Error()) }

	width := -1
	for _, token := range tokens[1 : ] {
		key, value, found := strings.Cut(token, "=")
		if !found || key != "width" {
			return 1, self.parseErr(lineNum, line, codepoint, "unexpected token '" + token + "'")
		}
		width, err = strconv.Atoi(value)
		if err != nil || width <= 0 {
			return 1, self.parseErr(lineNum, line, codepoint, "width must be a positive integer")
		}
	}

	if prevLine, duplicated := self.glyphLines[codepoint]; duplicated {
		details := "duplicated glyph (first declared at line " + strconv.Itoa(prevLine) + ")"
		return 1, self.validationErr(lineNum, line, codepoint, details)
	}

	rows, consumed, err := self.parseBitmap(index + 1, codepoint, width)
	if err != nil { return 1 + consumed, err }

	// infer width from the longest row if not declared
	if width == -1 {
		width = 0
		for _, row := range rows {
			width = max(width, len(row))
		}
	}

	if self.glyphLines == nil { self.glyphLines = make(map[rune]int, 128) }
	self.glyphLines[codepoint] = lineNum
	self.desc.Glyphs[codepoint] = &GlyphDef{ Width: width, Rows: rows }
	return 1 + consumed, nil
}

// Parses bitmap rows from the given line index up to and including the
// end marker. Returns the rows and the number of lines consumed. The
// width is -1 when the glyph line doesn't declare it.
func (self *descriptionParser) parseBitmap(index int, codepoint rune, width int) ([][]bool, int, error) {
	rows := make([][]bool, 0, 16)
	for i := index; i < len(self.lines); i++ {
		line := strings.TrimSpace(self.lines[i])
		if line == "" { continue }
		if line == endMarker { return rows, i - index + 1, nil }

		row, ok := parseBitmapRow(line)
		if line[0] == commentMarker {
			// '#' is ink in the blocks alphabet, so '#' lines are only
			// comments when they can't be rows of this glyph
			if !ok || (width != -1 && len(row) != width) { continue }
		}
		if !ok {
			return nil, i - index + 1, self.parseErr(i + 1, line, codepoint, "invalid bitmap row character")
		}
		rows = append(rows, row)
	}

	consumed := len(self.lines) - index
	return nil, consumed, self.parseErr(index, "", codepoint, "glyph block is missing '" + endMarker + "'")
}

func parseBitmapRow(line string) ([]bool, bool) {
	row := make([]bool, len(line))
	for i := 0; i < len(line); i++ {
		on, ok := bitmapValue(line[i])
		if !ok { return nil, false }
		row[i] = on
	}
	return row, true
}

// Final checks once all the lines have been processed.
func (self *descriptionParser) finish() error {
	if !self.hasHeight {
		return self.validationErr(0, "", NoCodepoint, "missing font header height")
	}
	err := validateName(self.desc.Name)
	if err != nil { return self.validationErr(0, "", NoCodepoint, err.Error()) }

	for _, codepoint := range self.desc.Codepoints() {
		glyph := self.desc.Glyphs[codepoint]
		lineNum := self.glyphLines[codepoint]
		content := strings.TrimSpace(self.lines[lineNum - 1])
		err := self.desc.validateGlyph(codepoint, glyph, lineNum, content)
		if err != nil { return err }
	}
	return nil
}

// Parses a "U+HHHH" codepoint token. Any number of hex digits
// is accepted, lowercase included, up to U+10FFFF.
func ParseCodepoint(token string) (rune, error) {
	hex, found := strings.CutPrefix(token, "U+")
	if !found || hex == "" {
		return 0, errors.New("bad codepoint token '" + token + "'")
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || value > uint64(MaxCodepoint) {
		return 0, errors.New("bad codepoint token '" + token + "'")
	}
	return rune(value), nil
}
