package dock

// GridPositions computes the resting (unmagnified) top-left position of each
// item in a row-major fixed-column grid. Row r, column c maps to
// (c*(itemSize+spacing), r*(itemSize+spacing)).
//
// count <= 0 yields an empty slice. columns <= 0 is clamped to 1 so a
// malformed layout config degrades to a single column instead of failing.
func GridPositions(count, columns int, itemSize, spacing float64) []Vec2 {
	if count <= 0 {
		return nil
	}
	if columns <= 0 {
		columns = 1
	}
	step := itemSize + spacing
	positions := make([]Vec2, count)
	for i := range positions {
		positions[i] = Vec2{
			X: float64(i%columns) * step,
			Y: float64(i/columns) * step,
		}
	}
	return positions
}

// gridCenters derives item centers from resting positions.
// The center is the magnification reference point.
func gridCenters(resting []Vec2, itemSize float64) []Vec2 {
	centers := make([]Vec2, len(resting))
	half := itemSize / 2
	for i, p := range resting {
		centers[i] = Vec2{X: p.X + half, Y: p.Y + half}
	}
	return centers
}
