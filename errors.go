package t4atlas

import "strconv"

// Returned when a line of the description can't be understood:
// malformed header, range, default or glyph lines, unrecognized
// lines and bitmap rows with characters outside the alphabet.
type ParseError struct {
	Font string
	Line int // 1-based, 0 if not tied to a line
	Content string // offending line content, trimmed
	Codepoint rune // NoCodepoint if not tied to a glyph
	Details string
}

func (self *ParseError) Error() string {
	return describeError(self.Font, "parse", self.Line, self.Content, self.Codepoint, self.Details)
}

// Returned when the description is syntactically fine but breaks
// an invariant: wrong row count or row length, duplicated codepoints,
// missing height and similar.
type ValidationError struct {
	Font string
	Line int
	Content string
	Codepoint rune
	Details string
}

func (self *ValidationError) Error() string {
	return describeError(self.Font, "validation", self.Line, self.Content, self.Codepoint, self.Details)
}

// Returned by the packer when the glyph cells can't be laid out on
// the configured pages, or when a value doesn't fit the glyph table.
type LayoutError struct {
	Font string
	CellWidth int
	CellHeight int
	PageSize int
	Codepoint rune
	Details string
}

func (self *LayoutError) Error() string {
	details := self.Details
	if self.CellWidth > 0 || self.CellHeight > 0 {
		details += " (cell " + strconv.Itoa(self.CellWidth) + "x" + strconv.Itoa(self.CellHeight)
		details += ", page " + strconv.Itoa(self.PageSize) + "x" + strconv.Itoa(self.PageSize) + ")"
	}
	return describeError(self.Font, "layout", 0, "", self.Codepoint, details)
}

func describeError(font, kind string, line int, content string, codepoint rune, details string) string {
	str := font
	if str == "" { str = "<unnamed>" }
	str += ": " + kind + " error"
	if line > 0 { str += " at line " + strconv.Itoa(line) }
	if codepoint != NoCodepoint { str += " (" + FormatCodepoint(codepoint) + ")" }
	str += ": " + details
	if content != "" { str += ": " + strconv.Quote(content) }
	return str
}
