package internal

const BrokenCode = "broken code"

// .t4a container limits, checked on both export and parsing
const MaxAtlasDataSize = (64 << 20) // after uncompressing, without signature
const FormatVersion = 0x0000_0001
const MaxPages = 256
const MaxNameLen = 255

// size of a single glyph table entry: u16 x, u16 y, u8 w, u8 h, u8 page
const GlyphEntrySize = 7
