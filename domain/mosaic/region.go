package mosaic

import "math/rand"

// SnapDown rounds v down to a multiple of unit. Power-of-two units clear the
// low bits; other units fall back to modulo. Units <= 1 leave v unchanged.
func SnapDown(v, unit int) int {
	if unit <= 1 {
		return v
	}
	if unit&(unit-1) == 0 {
		return v &^ (unit - 1)
	}
	return v - v%unit
}

// planSquares draws one pass: a single edge length shared by every square,
// then SquaresPerUpdate grid-snapped origins. Squares that cannot fit are
// counted in skipped and never clamped.
func planSquares(rng *rand.Rand, o Options) (size int, regions []Region, skipped int) {
	size = o.MinSize
	if o.MaxSize > o.MinSize {
		size += rng.Intn(o.MaxSize - o.MinSize + 1)
	}
	regions = make([]Region, 0, o.SquaresPerUpdate)
	for i := 0; i < o.SquaresPerUpdate; i++ {
		if size >= o.Width || size >= o.Height {
			skipped++
			continue
		}
		x := SnapDown(rng.Intn(o.Width-size), o.Alignment)
		y := SnapDown(rng.Intn(o.Height-size), o.Alignment)
		if x+size > o.Width || y+size > o.Height {
			skipped++
			continue
		}
		regions = append(regions, Region{X: x, Y: y, Size: size})
	}
	return size, regions, skipped
}

// copyBlock copies region r from src into dst. Both buffers share the same
// row stride in bytes.
func copyBlock(dst, src []byte, stride int, r Region) {
	rowBytes := r.Size * BytesPerPixel
	for dy := 0; dy < r.Size; dy++ {
		off := (r.Y+dy)*stride + r.X*BytesPerPixel
		copy(dst[off:off+rowBytes], src[off:off+rowBytes])
	}
}
