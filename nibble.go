package t4atlas

// Pages store two 4-bit pixels per byte. The pixel with the even
// linear index goes in the low nibble, the odd one in the high nibble.
// Writes are read-modify-write merges: the neighbour nibble that
// shares the byte is always preserved.

// Merges the 4-bit value of the pixel at the given linear index
// (y*pageSize + x) into the packed buffer. Values above 15 are
// masked to their low 4 bits.
func MergeNibble(buffer []byte, pixelIndex int, value uint8) {
	byteIndex := pixelIndex >> 1
	if pixelIndex & 1 == 1 {
		buffer[byteIndex] = (buffer[byteIndex] & 0x0F) | ((value & 0x0F) << 4)
	} else {
		buffer[byteIndex] = (buffer[byteIndex] & 0xF0) | (value & 0x0F)
	}
}

// Returns the 4-bit value of the pixel at the given linear index.
func ReadNibble(buffer []byte, pixelIndex int) uint8 {
	packed := buffer[pixelIndex >> 1]
	if pixelIndex & 1 == 1 { return packed >> 4 }
	return packed & 0x0F
}

// A view of a packed page buffer with 2D addressing.
type pageView struct {
	data []byte
	size int // width and height, in pixels
}

func (self pageView) Set(x, y int, value uint8) {
	if x < 0 || y < 0 || x >= self.size || y >= self.size { panic("pixel out of page bounds") }
	MergeNibble(self.data, y*self.size + x, value)
}

func (self pageView) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= self.size || y >= self.size { panic("pixel out of page bounds") }
	return ReadNibble(self.data, y*self.size + x)
}
