// Package palette holds the tag colors bodies are spawned with and parses "#rrggbb" strings
// without depending on a renderer.
package palette

import "fmt"

const (
	Red   = "#ff0000"
	Blue  = "#0000ff"
	White = "#ffffff"
	Black = "#000000"
)

// RGBA is an 8-bit color.
type RGBA struct {
	R, G, B, A uint8
}

// Fallback is used for tags whose color cannot be parsed.
var Fallback = RGBA{R: 200, G: 200, B: 255, A: 255}

// Parse reads "#rrggbb" or "#rrggbbaa". ok is false for anything else.
func Parse(hex string) (c RGBA, ok bool) {
	c.A = 255
	switch len(hex) {
	case 7:
		if hex[0] != '#' {
			return RGBA{}, false
		}
		n, err := fmt.Sscanf(hex, "#%02x%02x%02x", &c.R, &c.G, &c.B)
		if err != nil || n != 3 {
			return RGBA{}, false
		}
		return c, true
	case 9:
		if hex[0] != '#' {
			return RGBA{}, false
		}
		n, err := fmt.Sscanf(hex, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
		if err != nil || n != 4 {
			return RGBA{}, false
		}
		return c, true
	}
	return RGBA{}, false
}

// ParseOr returns the parsed color or Fallback.
func ParseOr(hex string) RGBA {
	if c, ok := Parse(hex); ok {
		return c
	}
	return Fallback
}

// Contrast returns white for dark backgrounds and black for light ones.
func Contrast(bg RGBA) RGBA {
	luma := 299*int(bg.R) + 587*int(bg.G) + 114*int(bg.B)
	if luma < 128*1000 {
		return RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return RGBA{A: 255}
}
