package extrude

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var ErrInvalidColor = errors.New("invalid color")

// ParseColor parses a hexadecimal colour of the form rgb or rrggbb, with an
// optional leading '#', or a CSS colour name. Surrounding whitespace is
// ignored and names are matched case-insensitively.
func ParseColor(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		fallthrough
	case 6:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			break
		}
		return RGB{
			R: float64((v>>16)&0xff) / 255,
			G: float64((v>>8)&0xff) / 255,
			B: float64(v&0xff) / 255,
		}, nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return RGB{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
		}, nil
	}
	return Black, fmt.Errorf("%q: %w", s, ErrInvalidColor)
}

// ParseColorOrBlack is like [ParseColor] but returns black for malformed
// input.
func ParseColorOrBlack(s string) RGB {
	c, _ := ParseColor(s)
	return c
}

// Hex formats c as #rrggbb.
func (c RGB) Hex() string {
	ch := func(f float64) uint8 {
		return uint8(min(max(f, 0), 1)*255 + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x", ch(c.R), ch(c.G), ch(c.B))
}
