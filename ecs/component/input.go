package component

// Pointer stores per-tick pointer state for the camera entity.
type Pointer struct {
	X, Y       float64 // pixels
	NDCX, NDCY float64
	// Valid is false while the viewport is empty; NDC is meaningless then.
	Valid bool

	Pressed bool // went down this tick
	Held    bool
	DeltaX  float64
	DeltaY  float64
	Wheel   float64

	// Captured is set once a press selected a panel so the same drag does
	// not also orbit. Cleared on release.
	Captured bool
}

var PointerComponent = NewComponent[Pointer]()
