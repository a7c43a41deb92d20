package dock

import "math"

// falloffScale maps a pointer-to-center distance to a target scale using a
// cosine falloff: maxMagnification at dist=0, easing to exactly 1.0 at
// dist=effectRadius and beyond. The cosine curve is flat near the cursor
// (no jitter while hovering) and meets the boundary with zero slope, so
// there is no visible seam where magnification starts.
//
// effectRadius <= 0 means magnification is disabled and always returns 1.0;
// this also guards the normalization against division by zero.
func falloffScale(dist, effectRadius, maxMagnification float64) float64 {
	if effectRadius <= 0 || dist >= effectRadius {
		return 1.0
	}
	t := dist / effectRadius
	falloff := math.Cos(t * math.Pi / 2)
	return finiteOr(1+falloff*(maxMagnification-1), 1.0)
}

// magnifyScales writes the target scale for each item center into dst.
// When the pointer is absent every target is 1.0. dst and centers must have
// equal length; dst is written in place so per-tick calls do not allocate.
func magnifyScales(dst []float64, pointerX, pointerY float64, present bool, centers []Vec2, effectRadius, maxMagnification float64) {
	if !present || effectRadius <= 0 {
		for i := range dst {
			dst[i] = 1.0
		}
		return
	}
	for i, c := range centers {
		dx := pointerX - c.X
		dy := pointerY - c.Y
		dst[i] = falloffScale(math.Sqrt(dx*dx+dy*dy), effectRadius, maxMagnification)
	}
}

// resolvePositions writes the target position for each item into dst: the
// resting position shifted along the row axis by (scale-1)*itemSize*shiftFactor,
// toward the row start, so magnified neighbors do not visually collide.
// Pure function of its inputs; it does not animate.
func resolvePositions(dst []Vec2, resting []Vec2, scales []float64, itemSize, shiftFactor float64) {
	for i, p := range resting {
		offset := finiteOr((scales[i]-1)*itemSize*shiftFactor, 0)
		dst[i] = Vec2{X: p.X - offset, Y: p.Y}
	}
}
