package nav

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var ErrUnknownEasing = errors.New("nav: unknown easing")

// Easing maps linear progress t in [0, 1] to eased progress k.
type Easing func(t float64) float64

// EaseOutCubic is fast at the start and decelerates into the end.
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

func Linear(t float64) float64 {
	return t
}

var easings = map[string]Easing{
	"ease_out_cubic":    EaseOutCubic,
	"ease_in_out_cubic": EaseInOutCubic,
	"linear":            Linear,
}

// EasingByName looks up a built-in curve. The empty name is ease-out cubic.
func EasingByName(name string) (Easing, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return EaseOutCubic, nil
	}
	if fn, ok := easings[key]; ok {
		return fn, nil
	}
	return nil, errors.Wrapf(ErrUnknownEasing, "%q (have %s)", name, strings.Join(EasingNames(), ", "))
}

func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
