// Package facefont builds font descriptions out of existing bitmap
// fonts, so they can be packed or written as text and edited by hand.
//
// Any [font.Face] can be used, but only faces that render without
// antialiasing give meaningful results: pixels are either ink or
// background, with nothing in between.
package facefont

import "image"
import "strconv"

import "github.com/pkg/errors"
import "github.com/zachomedia/go-bdf"
import "golang.org/x/image/draw"
import "golang.org/x/image/font"
import "golang.org/x/image/math/fixed"

import "github.com/tinne26/t4atlas"

// Rasterizes every codepoint in [start, end] that the face has a glyph
// for. The font height is the face's ascent plus descent, and each glyph
// width is its advance, widened to the right edge of its ink when the
// glyph overhangs the advance. Pixels at 50% alpha or above are ink.
//
// Codepoints the face doesn't have are skipped, so they end up as
// sentinel entries once packed.
func FromFace(face font.Face, name string, start, end rune) (*t4atlas.FontDescription, error) {
	if start < 0 || end > t4atlas.MaxCodepoint || start > end {
		return nil, errors.New("invalid range " + t4atlas.FormatCodepoint(start) + ".." + t4atlas.FormatCodepoint(end))
	}
	metrics := face.Metrics()
	ascent, descent := metrics.Ascent.Ceil(), metrics.Descent.Ceil()
	height := ascent + descent
	if height <= 0 {
		return nil, errors.New("face has non-positive height " + strconv.Itoa(height))
	}

	desc := &t4atlas.FontDescription{
		Name: name,
		Height: height,
		RangeStart: start,
		RangeEnd: end,
		DefaultCodepoint: t4atlas.DefaultCodepoint,
		Glyphs: make(map[rune]*t4atlas.GlyphDef, int(end - start) + 1),
	}

	dot := fixed.P(0, ascent)
	for codepoint := start; codepoint <= end; codepoint++ {
		dr, mask, maskp, advance, ok := face.Glyph(dot, codepoint)
		if !ok || mask == nil { continue }
		desc.Glyphs[codepoint] = rasterize(dr, mask, maskp, advance, height)
	}

	err := desc.Validate()
	if err != nil { return nil, err }
	return desc, nil
}

func rasterize(dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, height int) *t4atlas.GlyphDef {
	canvasWidth := max(advance.Ceil(), dr.Max.X, 1)
	canvas := image.NewAlpha(image.Rect(0, 0, canvasWidth, height))
	draw.Draw(canvas, dr, mask, maskp, draw.Over)

	// overhanging ink would be lost if cut at the advance
	width := max(advance.Ceil(), inkBounds(canvas).Max.X, 1)

	rows := make([][]bool, height)
	for y := 0; y < height; y++ {
		rows[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			rows[y][x] = isInk(canvas, x, y)
		}
	}
	return &t4atlas.GlyphDef{ Width: width, Rows: rows }
}

// Parses BDF font data and rasterizes it with [FromFace](). The BDF
// default character becomes the default codepoint when it's part of
// the result.
func FromBDF(data []byte, name string, start, end rune) (*t4atlas.FontDescription, error) {
	bdfFont, err := bdf.Parse(data)
	if err != nil { return nil, errors.Wrap(err, "parsing bdf font") }
	face := bdfFont.NewFace()
	metrics := face.Metrics()
	if metrics.Ascent.Ceil() + metrics.Descent.Ceil() <= 0 {
		return nil, errors.Wrap(errors.New("missing font ascent and descent"), "parsing bdf font")
	}

	desc, err := FromFace(face, name, start, end)
	if err != nil { return nil, err }
	if _, found := desc.Glyphs[rune(bdfFont.DefaultChar)]; found {
		desc.DefaultCodepoint = rune(bdfFont.DefaultChar)
	}
	return desc, nil
}
