package cmd

import (
	"log"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/cobra"
	"github.com/voltember/stormbolt/internal/config"
	"github.com/voltember/stormbolt/internal/draw"
	"github.com/voltember/stormbolt/internal/models"
	"github.com/voltember/stormbolt/internal/opengl"
	"github.com/voltember/stormbolt/internal/spawn"
	"github.com/voltember/stormbolt/internal/update"
	"github.com/voltember/stormbolt/pkg/window"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the render window and run the effect",
	Run:   Run,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runtime.LockOSThread()
}

func Run(cmd *cobra.Command, args []string) {
	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatal("Failed to load settings:", err)
	}

	win, err := window.New(800, 600, "stormbolt")
	if err != nil {
		log.Fatal("Failed to create window:", err)
	}
	defer win.Destroy()

	app := models.NewApp(settings)

	glApp := opengl.New(app)
	if err := glApp.InitGL(); err != nil {
		log.Fatal("Failed to initialize OpenGL:", err)
	}

	gl.ClearColor(0.02, 0.02, 0.05, 1)

	updater := update.New(app)
	drawer := draw.New(app)

	updater.Regenerate()
	spawn.New(app).EmitAlongBolt()

	for range 5 {
		win.PollEvents()
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		win.SwapBuffers()
	}

	lastTime := win.Time()

	for !win.ShouldClose() {
		now := win.Time()
		dt := float32(now - lastTime)
		lastTime = now

		win.PollEvents()
		handleInput(win, app, dt)
		updater.UpdateCamera(win, dt)

		if app.AutoRegenerate || app.WantRegenerate {
			updater.Regenerate()
			app.WantRegenerate = false
		}

		updater.TickEmission(dt)
		updater.UpdateParticles(dt)

		drawer.Draw(win)
		win.SwapBuffers()
	}
}

// handleInput reads the live-tunable parameters off the keyboard: arrows
// for depth and displacement, brackets for branch chance, R to regenerate,
// space to toggle auto-regeneration.
func handleInput(win *window.Window, app *models.App, dt float32) {
	settings := app.Settings

	if win.KeyDown(glfw.KeyEscape) {
		win.Close()
	}
	if win.KeyTapped(glfw.KeyR) {
		app.WantRegenerate = true
	}
	if win.KeyTapped(glfw.KeySpace) {
		app.AutoRegenerate = !app.AutoRegenerate
		if app.AutoRegenerate {
			log.Println("Auto-regenerate on")
		} else {
			log.Println("Auto-regenerate off")
		}
	}

	if win.KeyTapped(glfw.KeyUp) && settings.MaxDepth < config.MaxBoltDepth {
		settings.MaxDepth++
		app.WantRegenerate = true
	}
	if win.KeyTapped(glfw.KeyDown) && settings.MaxDepth > 0 {
		settings.MaxDepth--
		app.WantRegenerate = true
	}
	if win.KeyDown(glfw.KeyRight) {
		settings.Displacement = min(settings.Displacement+0.5*dt, config.MaxDisplacement)
	}
	if win.KeyDown(glfw.KeyLeft) {
		settings.Displacement = max(settings.Displacement-0.5*dt, config.MinScale)
	}
	if win.KeyDown(glfw.KeyRightBracket) {
		settings.BranchChance = min(settings.BranchChance+0.25*dt, 1)
	}
	if win.KeyDown(glfw.KeyLeftBracket) {
		settings.BranchChance = max(settings.BranchChance-0.25*dt, 0)
	}
}
