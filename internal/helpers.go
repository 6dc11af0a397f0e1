package internal

func GrowSliceByN[T any](buffer []T, increase int) []T {
	newSize := len(buffer) + increase
	if cap(buffer) >= newSize {
		return buffer[ : newSize]
	} else {
		newBuffer := make([]T, newSize, max(newSize, cap(buffer)*2))
		copy(newBuffer, buffer)
		return newBuffer
	}
}

// LE stands for "little endian"

func DecodeUint16LE(buffer []byte) uint16 {
	if len(buffer) < 2 { panic(len(buffer)) }
	return uint16(buffer[0]) | (uint16(buffer[1]) << 8)
}

func DecodeUint32LE(buffer []byte) uint32 {
	if len(buffer) < 4 { panic(len(buffer)) }
	return (uint32(buffer[0]) <<  0) | (uint32(buffer[1]) <<  8) |
	       (uint32(buffer[2]) << 16) | (uint32(buffer[3]) << 24)
}

func AppendUint16LE(buffer []byte, value uint16) []byte {
	return append(buffer, byte(value), byte(value >> 8))
}

func AppendUint32LE(buffer []byte, value uint32) []byte {
	return append(buffer, byte(value), byte(value >> 8), byte(value >> 16), byte(value >> 24))
}

func AppendShortString(buffer []byte, str string) []byte {
	if len(str) > 255 { panic("AppendShortString() can't append string with len() > 255") }
	return append(append(buffer, uint8(len(str))), str...)
}

// Writes the 4-digit minimum uppercase hex form used for codepoints,
// without the "U+" prefix.
func AppendCodepointHex(buffer []byte, codepoint rune) []byte {
	const digits = "0123456789ABCDEF"
	if codepoint < 0 { panic("negative codepoint") }
	var scratch [8]byte
	n := 0
	value := uint32(codepoint)
	for value > 0 || n < 4 {
		scratch[n] = digits[value & 0xF]
		value >>= 4
		n += 1
	}
	for i := n - 1; i >= 0; i-- {
		buffer = append(buffer, scratch[i])
	}
	return buffer
}
