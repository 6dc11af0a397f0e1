package t4atlas

import "io"
import "bufio"
import "strconv"

import "github.com/tinne26/t4atlas/internal"

// Formats a codepoint as "U+HHHH", with at least 4 uppercase hex digits.
func FormatCodepoint(codepoint rune) string {
	if codepoint < 0 { return "U+????" }
	return string(internal.AppendCodepointHex([]byte{'U', '+'}, codepoint))
}

// Writes the description in the text format read by [Parse](), using
// the given alphabet for bitmap rows. Glyphs are written in ascending
// codepoint order, always with explicit widths.
func Format(writer io.Writer, desc *FontDescription, alphabet Alphabet) error {
	err := desc.Validate()
	if err != nil { return err }
	if on, ok := bitmapValue(alphabet.On); !ok || !on { panic("invalid alphabet") }
	if on, ok := bitmapValue(alphabet.Off); !ok || on { panic("invalid alphabet") }

	out := bufio.NewWriter(writer)
	line := make([]byte, 0, 128)
	line = append(line, "font name="...)
	line = append(line, desc.Name...)
	line = append(line, " height="...)
	line = strconv.AppendInt(line, int64(desc.Height), 10)
	line = append(line, "\nrange U+"...)
	line = internal.AppendCodepointHex(line, desc.RangeStart)
	line = append(line, "..U+"...)
	line = internal.AppendCodepointHex(line, desc.RangeEnd)
	line = append(line, "\ndefault U+"...)
	line = internal.AppendCodepointHex(line, desc.DefaultCodepoint)
	line = append(line, '\n')
	_, err = out.Write(line)
	if err != nil { return err }

	for _, codepoint := range desc.Codepoints() {
		glyph := desc.Glyphs[codepoint]
		line = append(line[ : 0], "\nglyph U+"...)
		line = internal.AppendCodepointHex(line, codepoint)
		line = append(line, " width="...)
		line = strconv.AppendInt(line, int64(glyph.Width), 10)
		line = append(line, '\n')
		for _, row := range glyph.Rows {
			for _, on := range row {
				if on {
					line = append(line, alphabet.On)
				} else {
					line = append(line, alphabet.Off)
				}
			}
			line = append(line, '\n')
		}
		line = append(line, endMarker...)
		line = append(line, '\n')
		_, err = out.Write(line)
		if err != nil { return err }
	}

	return out.Flush()
}

// Implements io.WriterTo, formatting with [AlphabetBlocks].
func (self *FontDescription) WriteTo(writer io.Writer) (int64, error) {
	counter := countingWriter{ writer: writer }
	err := Format(&counter, self, AlphabetBlocks)
	return counter.n, err
}

type countingWriter struct {
	writer io.Writer
	n int64
}

func (self *countingWriter) Write(data []byte) (int, error) {
	n, err := self.writer.Write(data)
	self.n += int64(n)
	return n, err
}
