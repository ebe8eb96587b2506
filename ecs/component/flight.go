package component

import "github.com/go-gl/mathgl/mgl64"

// Flight is present on the camera while a flight owns it. Orbit controls
// stay suspended until the flight system marks it Done.
type Flight struct {
	Target   uint64 // panel entity, zero for a home flight
	LookAt   mgl64.Vec3
	Progress float64
	Done     bool
}

var FlightComponent = NewComponent[Flight]()

// SelectRequest asks the flight system to fly the camera to Target.
type SelectRequest struct {
	Target uint64
}

var SelectRequestComponent = NewComponent[SelectRequest]()

// CycleRequest asks for the panel Step places after the current selection.
type CycleRequest struct {
	Step int
}

var CycleRequestComponent = NewComponent[CycleRequest]()

// ResetViewRequest asks the flight system to fly back to CameraHome.
type ResetViewRequest struct{}

var ResetViewRequestComponent = NewComponent[ResetViewRequest]()
