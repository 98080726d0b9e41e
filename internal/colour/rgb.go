// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents a colour in 8-bit RGB format.
type RGB struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a lowercase hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Tuple returns the colour formatted as "(r, g, b)".
func (rgb RGB) Tuple() string {
	return fmt.Sprintf("(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Point returns the colour as a point in RGB space.
func (rgb RGB) Point() Point {
	return Point{R: float64(rgb.R), G: float64(rgb.G), B: float64(rgb.B)}
}

// Complement returns the channel-inverted colour (255 - channel).
func Complement(rgb RGB) RGB {
	return RGB{R: 255 - rgb.R, G: 255 - rgb.G, B: 255 - rgb.B}
}

// Distance returns the Euclidean distance between two colours in RGB space.
func Distance(a, b RGB) float64 {
	return math.Sqrt(float64(DistanceSquared(a, b)))
}

// DistanceSquared returns the squared Euclidean distance between two colours.
// It is exact, so it is used wherever distances are compared.
func DistanceSquared(a, b RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// ParseHex parses "#rrggbb" or "#rgb" (case-insensitive, '#' optional).
func ParseHex(s string) (RGB, error) {
	if len(s) > 0 && s[0] != '#' {
		s = "#" + s
	}
	if len(s) == 4 {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	if len(s) != 7 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: want #rrggbb or #rgb", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// RGBToColor converts an RGB value to a color.Color (RGBA).
func RGBToColor(rgb RGB) color.Color {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// Point is a position in continuous RGB space, used for centroids before rounding.
type Point struct {
	R, G, B float64
}

// distance calculates the Euclidean distance between two points in RGB space.
func (p Point) distance(other Point) float64 {
	return math.Sqrt(p.distanceSquared(other))
}

func (p Point) distanceSquared(other Point) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return dr*dr + dg*dg + db*db
}

// RGB rounds the point to the nearest 8-bit colour, clamping each channel.
func (p Point) RGB() RGB {
	return RGB{R: clampChannel(p.R), G: clampChannel(p.G), B: clampChannel(p.B)}
}

func clampChannel(v float64) uint8 {
	v = math.Round(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
