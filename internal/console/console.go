package console

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"collision-sim/internal/commands"
	"collision-sim/internal/logger"
)

const (
	BarHeight = 32
	prompt    = "> "
	fontSize  = 18
	padding   = 7
	// Number of log lines drawn above the input bar when the console is open.
	maxLinesOnScreen = 10
	lineHeight       = fontSize + 4
	maxLineLen       = 90
)

var (
	barColor     = rl.NewColor(40, 40, 40, 255)
	lineColor    = rl.NewColor(80, 80, 80, 255)
	historyColor = rl.NewColor(24, 24, 24, 220)
)

// Console is the command input bar at the bottom of the window, toggled with the grave key (`) and closed with ESC.
// Submitted lines are echoed to the log and executed through the command registry; errors are logged.
type Console struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
	font     rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
}

// New returns a closed Console that logs lines and runs them through reg.
func New(log *logger.Logger, reg *commands.Registry) *Console {
	return &Console{log: log, reg: reg}
}

// IsOpen returns true when the console is visible and capturing keyboard input.
func (c *Console) IsOpen() bool {
	return c.open
}

// SetFont sets the font used to draw the console. Zero texture ID = use raylib default.
func (c *Console) SetFont(font rl.Font) {
	c.font = font
}

// Update handles the toggle keys and, when open, typing, paste, backspace and enter. Call once per frame.
func (c *Console) Update() {
	if rl.IsKeyPressed(rl.KeyGrave) {
		c.open = !c.open
		// Drain the ` character queued by the toggle press.
		for rl.GetCharPressed() != 0 {
		}
		return
	}
	if !c.open {
		return
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		c.open = false
		return
	}
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			c.inputBuf += pasted
		}
	} else {
		for {
			ch := rl.GetCharPressed()
			if ch == 0 {
				break
			}
			c.inputBuf += string(rune(ch))
		}
	}
	if (rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace)) && len(c.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(c.inputBuf)
		c.inputBuf = c.inputBuf[:len(c.inputBuf)-size]
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && c.inputBuf != "" {
		line := c.inputBuf
		c.inputBuf = ""
		c.log.Log(prompt + line)
		if err := c.reg.ExecuteLine(line); err != nil {
			c.log.Log(err.Error())
		}
	}
}

// Draw draws the input bar at the bottom and the most recent log lines above it.
func (c *Console) Draw() {
	if !c.open {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	barY := screenH - BarHeight

	historyHeight := int32(maxLinesOnScreen * lineHeight)
	historyY := barY - historyHeight
	if historyY < 0 {
		historyHeight = barY
		historyY = 0
	}
	rl.DrawRectangle(0, historyY, screenW, historyHeight, historyColor)
	for i, line := range c.log.Tail(maxLinesOnScreen) {
		if len(line) > maxLineLen {
			line = line[:maxLineLen-3] + "..."
		}
		c.text(line, padding, historyY+int32(i*lineHeight)+padding, rl.LightGray)
	}

	rl.DrawRectangle(0, barY, screenW, BarHeight, barColor)
	rl.DrawRectangle(0, barY, screenW, 1, lineColor)
	c.text(prompt+c.inputBuf+"|", padding, barY+padding, rl.White)
}

func (c *Console) text(s string, x, y int32, col rl.Color) {
	if c.font.Texture.ID != 0 {
		rl.DrawTextEx(c.font, s, rl.NewVector2(float32(x), float32(y)), fontSize, 1, col)
		return
	}
	rl.DrawText(s, x, y, fontSize, col)
}
