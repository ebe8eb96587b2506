package common

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidColor = errors.New("invalid color")

// ParseHexColor parses "#rrggbb" or "#rrggbbaa" (the '#' is optional).
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, errors.Wrapf(ErrInvalidColor, "%q", s)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(hex[start:start+2], 16, 8)
		return uint8(v), err
	}

	var channels [4]uint8
	channels[3] = 0xff
	for i := 0; i < len(hex)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return color.RGBA{}, errors.Wrapf(ErrInvalidColor, "%q", s)
		}
		channels[i] = v
	}
	// image/color stores premultiplied alpha
	a := uint16(channels[3])
	return color.RGBA{
		R: uint8(uint16(channels[0]) * a / 0xff),
		G: uint8(uint16(channels[1]) * a / 0xff),
		B: uint8(uint16(channels[2]) * a / 0xff),
		A: channels[3],
	}, nil
}
