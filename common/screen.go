package common

// Window size used before the OS reports a real one.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)
