package feedback

// Zone maps a coordinate to one of nine screen zones in spoken form. The
// mapping is total: out-of-range coordinates are clamped, and a coordinate
// exactly on a third boundary always falls in the zone to its right/bottom.
func Zone(x, y, w, h int) string {
	if w <= 0 || h <= 0 {
		return "el centro"
	}
	row := third(y, h, "arriba", "centro", "abajo")
	col := third(x, w, "izquierda", "centro", "derecha")
	if row == "centro" && col == "centro" {
		return "el centro"
	}
	return row + " " + col
}

func third(v, size int, low, mid, high string) string {
	if v < 0 {
		v = 0
	}
	if v >= size {
		v = size - 1
	}
	switch {
	case v*3 < size:
		return low
	case v*3 < 2*size:
		return mid
	default:
		return high
	}
}
