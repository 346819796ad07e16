package gradient

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	icolor "github.com/gogpu/gradient/internal/color"
)

// ErrInvalidColor is returned when a colour string cannot be parsed.
var ErrInvalidColor = errors.New("gradient: invalid color")

// RGBA represents a colour with red, green, blue and alpha components in
// [0, 1]. RGB components are sRGB encoded; alpha is linear and not
// premultiplied.
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque colour from sRGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// Common colours.
var (
	Black = RGB(0, 0, 0)
	White = RGB(1, 1, 1)
)

// cssNames holds CSS Color Module Level 4 names missing from the SVG 1.1
// list in colornames.
var cssNames = map[string]color.RGBA{
	"rebeccapurple": {0x66, 0x33, 0x99, 0xff},
}

// ParseColor parses "#rgb", "#rrggbb" or a CSS colour name such as
// "rebeccapurple" or "mediumpurple".
func ParseColor(s string) (RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return RGBA{}, fmt.Errorf("%w %q: %w", ErrInvalidColor, s, err)
		}
		return RGB(c.R, c.G, c.B), nil
	}
	if named, ok := colornames.Map[s]; ok {
		return FromColor(named), nil
	}
	if named, ok := cssNames[s]; ok {
		return FromColor(named), nil
	}
	return RGBA{}, fmt.Errorf("%w %q", ErrInvalidColor, s)
}

// MustParseColor is like ParseColor but panics on error.
// Use only for colour literals known at compile time.
func MustParseColor(s string) RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the colour as "#rrggbb", ignoring alpha.
func (c RGBA) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// RGBA implements color.Color.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return c.Color().RGBA()
}

// Color converts to a non-premultiplied 8-bit colour.
func (c RGBA) Color() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// Luminance returns the relative luminance (WCAG 2.x) of the colour.
func (c RGBA) Luminance() float64 {
	l := icolor.ToLinear(c.rgb())
	return 0.2126*l.R + 0.7152*l.G + 0.0722*l.B
}

func (c RGBA) rgb() icolor.RGB {
	return icolor.RGB{R: c.R, G: c.G, B: c.B}
}

// linearRGB is a colour decoded to linear light.
type linearRGB = icolor.RGB

func toLinear(c RGBA) linearRGB {
	return icolor.ToLinear(c.rgb())
}

func fromRGB(c icolor.RGB) RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: 1}
}

// to8 clamps to [0,1] and rounds to a byte.
func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// OptionalColor is a colour that may be absent. The zero value is absent.
type OptionalColor struct {
	color RGBA
	valid bool
}

// NoColor is the absent OptionalColor.
var NoColor = OptionalColor{}

// SomeColor wraps a present colour.
func SomeColor(c RGBA) OptionalColor {
	return OptionalColor{color: c, valid: true}
}

// Get returns the colour and whether it is present.
func (o OptionalColor) Get() (RGBA, bool) {
	return o.color, o.valid
}

// IsSet reports whether the colour is present.
func (o OptionalColor) IsSet() bool {
	return o.valid
}

// MarshalText encodes a present colour as "#rrggbb" and an absent one as "".
func (o OptionalColor) MarshalText() ([]byte, error) {
	if !o.valid {
		return []byte{}, nil
	}
	return []byte(o.color.Hex()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (o *OptionalColor) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*o = NoColor
		return nil
	}
	c, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*o = SomeColor(c)
	return nil
}

// MarshalText encodes the colour as "#rrggbb".
func (c RGBA) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText parses any form accepted by ParseColor.
func (c *RGBA) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
