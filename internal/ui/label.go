package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Label is a line of text at a fixed position.
type Label struct {
	X, Y  int32
	Text  string
	Color rl.Color
	Size  int32
}

// DrawLabels draws labels in order with font, or raylib's default font when font has no texture.
func DrawLabels(font rl.Font, labels ...Label) {
	for _, l := range labels {
		size := l.Size
		if size <= 0 {
			size = defaultFontSize
		}
		if font.Texture.ID != 0 {
			rl.DrawTextEx(font, l.Text, rl.NewVector2(float32(l.X), float32(l.Y)), float32(size), 1, l.Color)
		} else {
			rl.DrawText(l.Text, l.X, l.Y, size, l.Color)
		}
	}
}

// LoadFont loads a TTF font from path. Call after the window exists.
func LoadFont(path string, size int32) (rl.Font, bool) {
	f := rl.LoadFontEx(path, size, nil)
	if f.Texture.ID == 0 {
		return rl.Font{}, false
	}
	return f, true
}
