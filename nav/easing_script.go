package nav

import (
	"math"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// CompileEasingScript builds an Easing from a tengo script. The script
// reads the global t and assigns the global k, e.g.
//
//	math := import("math")
//	k = 1 - math.pow(1 - t, 3)
//
// Results are clamped to [0, 1]. A script that fails at run time, or leaves
// k without a number, falls back to EaseOutCubic for that call.
func CompileEasingScript(src []byte) (Easing, error) {
	script := tengo.NewScript(src)
	if err := script.Add("t", 0.0); err != nil {
		return nil, errors.Wrap(err, "easing script: declare t")
	}
	if err := script.Add("k", 0.0); err != nil {
		return nil, errors.Wrap(err, "easing script: declare k")
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, errors.Wrap(err, "easing script: compile")
	}

	ease := func(t float64) float64 {
		if err := compiled.Set("t", t); err != nil {
			return EaseOutCubic(t)
		}
		if err := compiled.Run(); err != nil {
			return EaseOutCubic(t)
		}
		k, ok := scriptResult(compiled.Get("k"))
		if !ok {
			return EaseOutCubic(t)
		}
		return mgl64.Clamp(k, 0, 1)
	}

	// catch scripts that only fail once they run
	if err := compiled.Set("t", 1.0); err != nil {
		return nil, errors.Wrap(err, "easing script: set t")
	}
	if err := compiled.Run(); err != nil {
		return nil, errors.Wrap(err, "easing script: run")
	}
	if _, ok := scriptResult(compiled.Get("k")); !ok {
		return nil, errors.Errorf("easing script: k is %s, want a number", compiled.Get("k").ValueType())
	}
	return ease, nil
}

func scriptResult(v *tengo.Variable) (float64, bool) {
	switch v.ValueType() {
	case "float", "int":
	default:
		return 0, false
	}
	k := v.Float()
	if math.IsNaN(k) {
		return 0, false
	}
	return k, true
}
