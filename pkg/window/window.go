package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window wraps a GLFW window with a current OpenGL 4.1 core context.
type Window struct {
	handle *glfw.Window
	prev   map[glfw.Key]bool
}

func New(width, height int, title string) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	handle, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	glfw.SwapInterval(1)

	return &Window{handle: handle, prev: make(map[glfw.Key]bool)}, nil
}

func (w *Window) Destroy() {
	w.handle.Destroy()
	glfw.Terminate()
}

func (w *Window) ShouldClose() bool {
	return w.handle.ShouldClose()
}

func (w *Window) Close() {
	w.handle.SetShouldClose(true)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.handle.SwapBuffers()
}

// Time returns monotonically increasing seconds since GLFW init.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

func (w *Window) GetSize() (int, int) {
	return w.handle.GetFramebufferSize()
}

func (w *Window) GetCursorPos() (float64, float64) {
	return w.handle.GetCursorPos()
}

func (w *Window) MouseDown() bool {
	return w.handle.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press
}

func (w *Window) KeyDown(key glfw.Key) bool {
	return w.handle.GetKey(key) == glfw.Press
}

// KeyTapped reports whether key went down since the previous call for the
// same key, so a held key toggles only once.
func (w *Window) KeyTapped(key glfw.Key) bool {
	down := w.KeyDown(key)
	tapped := down && !w.prev[key]
	w.prev[key] = down
	return tapped
}
