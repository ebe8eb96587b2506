package nav

// NormalizePointer converts pixel coordinates inside a width x height
// viewport to normalized device coordinates, +Y up. ok is false for an
// empty viewport.
func NormalizePointer(x, y, width, height float64) (ndcX, ndcY float64, ok bool) {
	if !(width > 0) || !(height > 0) {
		return 0, 0, false
	}
	ndcX = x/width*2 - 1
	ndcY = -(y/height)*2 + 1
	return ndcX, ndcY, true
}
