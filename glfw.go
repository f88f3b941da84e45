package main

import (
	"runtime"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const desiredFPS = 30

// fbSize is the framebuffer size in pixels; every display maps pixel
// coordinates to clip space through it.
var fbSize Size

func init() {
	runtime.LockOSThread()
}

type GlfwApp interface {
	Init() error
	IsRunning() bool
	OnKey(key glfw.Key, scancode int, action glfw.Action, modes glfw.ModifierKey)
	OnCursorPos(x, y float64)
	OnFramebufferSize(width, height int)
	BgColor() (r, g, b, a float32)
	Render() error
	Update() error
	Close()
}

// WithGL opens a fixed-size window of width x height screen units and runs
// app in it until app stops running or the window is closed.
func WithGL(windowTitle string, width, height int, app GlfwApp) error {
	err := glfw.Init()
	if err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.Samples, 0)
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	window, err := glfw.CreateWindow(width, height, windowTitle, nil, nil)
	if err != nil {
		return err
	}
	defer window.Destroy()
	framebufferSizeCallback := func(w *glfw.Window, width, height int) {
		fbSize.X = width
		fbSize.Y = height
		gl.Viewport(0, 0, int32(width), int32(height))
		app.OnFramebufferSize(width, height)
	}
	window.SetFramebufferSizeCallback(framebufferSizeCallback)
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		app.OnKey(key, scancode, action, mods)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		// cursor positions arrive in screen units, displays work in pixels
		ww, wh := w.GetSize()
		if ww > 0 && wh > 0 {
			x *= float64(fbSize.X) / float64(ww)
			y *= float64(fbSize.Y) / float64(wh)
		}
		app.OnCursorPos(x, y)
	})
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return err
	}
	fbWidth, fbHeight := window.GetFramebufferSize()
	framebufferSizeCallback(window, fbWidth, fbHeight)
	if err := app.Init(); err != nil {
		return err
	}
	defer app.Close()
	for app.IsRunning() && !window.ShouldClose() {
		start := glfw.GetTime()
		gl.ClearColor(app.BgColor())
		gl.Clear(gl.COLOR_BUFFER_BIT)
		if err := app.Render(); err != nil {
			return err
		}
		window.SwapBuffers()
		elapsedSeconds := glfw.GetTime() - start
		frameSeconds := 1.0 / desiredFPS
		if frameSeconds > elapsedSeconds {
			glfw.WaitEventsTimeout(frameSeconds - elapsedSeconds)
		} else {
			glfw.PollEvents()
		}
		if err := app.Update(); err != nil {
			return err
		}
	}
	return nil
}
