package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the window Run opens.
type Window struct {
	Title     string
	Width     int
	Height    int
	TargetFPS int
}

// Run opens the window and runs the main loop. Each frame it calls update (input and simulation), then clears the
// screen and calls draw. ESC is reserved for closing the console; close the program via the window button.
func Run(win Window, update, draw func()) {
	if win.TargetFPS <= 0 {
		win.TargetFPS = 60
	}
	rl.InitWindow(int32(win.Width), int32(win.Height), win.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(int32(win.TargetFPS))

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}
