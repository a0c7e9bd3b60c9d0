package spheretracer

// Color is an 8-bit per channel light sample. All arithmetic saturates.
type Color struct {
	R, G, B, A uint8
}

var (
	Red        = Color{255, 0, 0, 0}
	Green      = Color{0, 255, 0, 0}
	Blue       = Color{0, 0, 255, 0}
	White      = Color{255, 255, 255, 0}
	Black      = Color{0, 0, 0, 0}
	Yellow     = Color{255, 255, 0, 0}
	Purple     = Color{255, 0, 255, 0}
	Cyan       = Color{0, 255, 255, 0}
	Grey       = Color{85, 85, 85, 0}
	Background = Grey
)

// Palette maps the names accepted in JSON configs to colours.
var Palette = map[string]Color{
	"red":    Red,
	"green":  Green,
	"blue":   Blue,
	"white":  White,
	"black":  Black,
	"yellow": Yellow,
	"purple": Purple,
	"cyan":   Cyan,
	"grey":   Grey,
	"gray":   Grey,
}

// scale maps one channel to [0,1], multiplies by k, clamps and re-quantizes.
func scale(c uint8, k Real) uint8 {
	v := Real(c) / 255.0 * k
	if v > 1 {
		v = 1
	}
	if v < 0 {
		v = 0
	}
	return uint8(v * 255)
}

func sat(a, b uint8) uint8 {
	s := int(a) + int(b)
	if s > 255 {
		s = 255
	}
	return uint8(s)
}

// Mul scales every channel by k, clamping at full intensity.
func (c Color) Mul(k Real) Color {
	return Color{scale(c.R, k), scale(c.G, k), scale(c.B, k), scale(c.A, k)}
}

// Add sums two colours channel-wise, saturating at 255.
func (c Color) Add(o Color) Color {
	return Color{sat(c.R, o.R), sat(c.G, o.G), sat(c.B, o.B), sat(c.A, o.A)}
}

// RGBA lets Color satisfy image/color.Color. The alpha channel carries light,
// not coverage, so pixels are reported opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}
