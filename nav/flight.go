package nav

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

var (
	ErrNoTarget    = errors.New("nav: flight target is nil")
	ErrInvalidStep = errors.New("nav: flight step must be in (0, 1]")
)

// DefaultStandoff parks the camera 3 units in front of a +Z facing panel.
var DefaultStandoff = mgl64.Vec3{0, 0, 3}

const DefaultFlightStep = 0.02

type FlightConfig struct {
	// Step is the progress added per Advance call. Progress is counted in
	// ticks, so flight duration is 1/Step ticks of the owning loop.
	Step     float64
	Standoff mgl64.Vec3
	Easing   Easing
}

func DefaultFlightConfig() FlightConfig {
	return FlightConfig{
		Step:     DefaultFlightStep,
		Standoff: DefaultStandoff,
		Easing:   EaseOutCubic,
	}
}

// Flight is the state of one camera flight.
type Flight struct {
	Start  mgl64.Vec3
	End    mgl64.Vec3
	T      float64 // linear progress
	K      float64 // eased progress
	Target Anchor

	ticks int
}

// FlightController moves a camera toward a target over a fixed number of
// ticks. At most one flight exists; Begin replaces it.
type FlightController struct {
	cfg    FlightConfig
	flight *Flight
}

func NewFlightController(cfg FlightConfig) (*FlightController, error) {
	if math.IsNaN(cfg.Step) || cfg.Step <= 0 || cfg.Step > 1 {
		return nil, errors.Wrapf(ErrInvalidStep, "got %v", cfg.Step)
	}
	if cfg.Easing == nil {
		cfg.Easing = EaseOutCubic
	}
	return &FlightController{cfg: cfg}, nil
}

func (c *FlightController) Config() FlightConfig {
	return c.cfg
}

// Begin starts a flight to target.Position + Standoff from wherever cam is
// right now.
func (c *FlightController) Begin(cam Pose, target Anchor) error {
	if isNilAnchor(target) {
		return ErrNoTarget
	}
	return c.BeginTo(cam, target.AnchorPosition().Add(c.cfg.Standoff), target)
}

// BeginTo starts a flight ending at end while aiming at target.
func (c *FlightController) BeginTo(cam Pose, end mgl64.Vec3, target Anchor) error {
	if isNilAnchor(target) {
		return ErrNoTarget
	}
	c.flight = &Flight{
		Start:  cam.Position(),
		End:    end,
		Target: target,
	}
	return nil
}

// Advance moves cam one tick along the active flight and re-aims it at the
// target. It reports whether the flight is still running afterwards.
func (c *FlightController) Advance(cam Pose) bool {
	f := c.flight
	if f == nil {
		return false
	}

	f.ticks++
	f.T = float64(f.ticks) * c.cfg.Step
	if f.T >= 1-1e-9 {
		f.T = 1
	}

	if f.T >= 1 {
		f.K = 1
		cam.SetPosition(f.End)
	} else {
		f.K = c.cfg.Easing(f.T)
		cam.SetPosition(f.Start.Add(f.End.Sub(f.Start).Mul(f.K)))
	}
	cam.LookAt(f.Target.AnchorPosition())

	if f.T >= 1 {
		c.flight = nil
		return false
	}
	return true
}

func (c *FlightController) Active() bool {
	return c.flight != nil
}

// State returns a copy of the active flight.
func (c *FlightController) State() (Flight, bool) {
	if c.flight == nil {
		return Flight{}, false
	}
	return *c.flight, true
}

func isNilAnchor(a Anchor) bool {
	if a == nil {
		return true
	}
	n, ok := a.(*Node)
	return ok && n == nil
}
