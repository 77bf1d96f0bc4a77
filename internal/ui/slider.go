package ui

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	defaultFontSize = 20
	knobWidth       = 10
)

var (
	trackColor = rl.NewColor(90, 90, 90, 255)
	knobColor  = rl.NewColor(230, 230, 230, 255)
	fillColor  = rl.NewColor(130, 160, 220, 255)
)

// Slider is a horizontal integer slider with a draggable knob. Value stays in [Min, Max].
type Slider struct {
	Bounds   rl.Rectangle
	Min, Max int
	value    int
	dragging bool
}

// NewSlider returns a slider over [lo, hi] starting at value (clamped).
func NewSlider(bounds rl.Rectangle, lo, hi, value int) *Slider {
	if hi < lo {
		hi = lo
	}
	s := &Slider{Bounds: bounds, Min: lo, Max: hi}
	s.SetValue(value)
	return s
}

func (s *Slider) Value() int { return s.value }

// SetValue clamps v to [Min, Max].
func (s *Slider) SetValue(v int) {
	s.value = min(max(v, s.Min), s.Max)
}

// Step moves the value by delta, clamped.
func (s *Slider) Step(delta int) {
	s.SetValue(s.value + delta)
}

// valueAt maps a screen x coordinate on the track to a value.
func (s *Slider) valueAt(x float32) int {
	if s.Bounds.Width <= 0 || s.Max == s.Min {
		return s.Min
	}
	t := (x - s.Bounds.X) / s.Bounds.Width
	t = min(max(t, 0), 1)
	return s.Min + int(t*float32(s.Max-s.Min)+0.5)
}

// Update handles mouse dragging. It returns true when the value changed this frame.
func (s *Slider) Update() bool {
	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && rl.CheckCollisionPointRec(mouse, s.Bounds) {
		s.dragging = true
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		s.dragging = false
	}
	if !s.dragging {
		return false
	}
	before := s.value
	s.SetValue(s.valueAt(mouse.X))
	return s.value != before
}

// Draw draws the track, the filled part and the knob.
func (s *Slider) Draw() {
	b := s.Bounds
	rl.DrawRectangleRec(b, trackColor)
	frac := float32(0)
	if s.Max > s.Min {
		frac = float32(s.value-s.Min) / float32(s.Max-s.Min)
	}
	fill := b
	fill.Width = b.Width * frac
	rl.DrawRectangleRec(fill, fillColor)
	knobX := b.X + fill.Width - knobWidth/2
	rl.DrawRectangleRec(rl.NewRectangle(knobX, b.Y-4, knobWidth, b.Height+8), knobColor)
}
