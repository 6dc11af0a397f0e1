// Package preview renders packed atlas pages as paletted images, for
// checking layouts by eye.
package preview

import "io"
import "image"
import "image/color"
import "image/png"
import "strconv"

import "golang.org/x/image/draw"

import "github.com/tinne26/t4atlas"

// Palette maps 4-bit pixel values to colors. Zero is transparent,
// one is white (the default ink) and the rest form a grey ramp.
var Palette color.Palette = newPalette()

func newPalette() color.Palette {
	palette := make(color.Palette, 16)
	palette[0] = color.RGBA{0, 0, 0, 0}
	palette[1] = color.RGBA{255, 255, 255, 255}
	for i := 2; i < 16; i++ {
		level := uint8(255 - (i - 1)*17)
		palette[i] = color.RGBA{level, level, level, 255}
	}
	return palette
}

// Renders the given atlas page. Each pixel's palette index is the
// stored 4-bit value.
func Page(atlas *t4atlas.AtlasDescriptor, pageIndex int) *image.Paletted {
	if pageIndex < 0 || pageIndex >= atlas.PageCount() {
		panic("page index " + strconv.Itoa(pageIndex) + " out of range")
	}

	size := atlas.PageSize
	img := image.NewPaletted(image.Rect(0, 0, size, size), Palette)
	data := atlas.Pages[pageIndex].Data
	for y := 0; y < size; y++ {
		offset := y*img.Stride
		for x := 0; x < size; x++ {
			img.Pix[offset + x] = t4atlas.ReadNibble(data, y*size + x)
		}
	}
	return img
}

// Returns the image upscaled by an integer factor with nearest
// neighbour interpolation. Factors below 2 return the image as is.
func Scaled(img *image.Paletted, factor int) *image.Paletted {
	if factor < 2 { return img }
	bounds := img.Bounds()
	scaledRect := image.Rect(0, 0, bounds.Dx()*factor, bounds.Dy()*factor)
	scaled := image.NewPaletted(scaledRect, img.Palette)
	draw.NearestNeighbor.Scale(scaled, scaledRect, img, bounds, draw.Src, nil)
	return scaled
}

// Encodes the given page as PNG, upscaled by the given factor.
func WritePNG(writer io.Writer, atlas *t4atlas.AtlasDescriptor, pageIndex int, factor int) error {
	return png.Encode(writer, Scaled(Page(atlas, pageIndex), factor))
}
