package facefont

import "image"

// Alpha values at or above this threshold are considered ink.
const inkThreshold = 128

func isInk(mask *image.Alpha, x, y int) bool {
	return mask.AlphaAt(x, y).A >= inkThreshold
}

// Returns the smallest rectangle containing all the ink pixels of
// the mask, or an empty rectangle if there's no ink at all.
func inkBounds(mask *image.Alpha) image.Rectangle {
	minX := mask.Rect.Max.X + 1
	maxX := mask.Rect.Min.X - 1
	minY := mask.Rect.Max.Y + 1
	maxY := mask.Rect.Min.Y - 1

	empty := true
	for y := mask.Rect.Min.Y; y < mask.Rect.Max.Y; y++ {
		index := (y - mask.Rect.Min.Y)*mask.Stride
		inkInRow := false
		for x := mask.Rect.Min.X; x < mask.Rect.Max.X; x++ {
			if mask.Pix[index] >= inkThreshold {
				inkInRow = true
				if x < minX { minX = x }
				if x > maxX { maxX = x }
			}
			index += 1
		}

		if inkInRow {
			empty = false
			if y < minY { minY = y }
			if y > maxY { maxY = y }
		}
	}

	if empty { return image.Rectangle{} }
	return image.Rect(minX, minY, maxX + 1, maxY + 1)
}
