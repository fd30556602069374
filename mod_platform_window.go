package forward

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/forward/forwardrt/rt/gpu"
	"github.com/gekko3d/forward/forwardrt/rt/gpu/glbackend"
)

type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string
}

// DeviceResource is the device every frame is drawn with and the size of
// the framebuffer behind it.
type DeviceResource struct {
	Device   gpu.Device
	Width    int
	Height   int
	Headless bool
}

// Aspect is width over height, 1 for an empty framebuffer.
func (d *DeviceResource) Aspect() float32 {
	if d.Width <= 0 || d.Height <= 0 {
		return 1
	}
	return float32(d.Width) / float32(d.Height)
}

// PlatformWindowModule opens a GLFW window with an OpenGL 4.1 core context
// and provides WindowState and DeviceResource. Install is a no-op when a
// DeviceResource already exists.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

// NewPlatformWindow creates a module that provides a shared WindowState resource.
// If Width/Height are zero, sensible defaults are used.
func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "Forward"
	}
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
	}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[DeviceResource](app); ok {
		return
	}

	ws := createWindowState(m.Width, m.Height, m.Title)
	app.addCleanup(func() {
		ws.windowGlfw.Destroy()
		glfw.Terminate()
	})

	device, err := glbackend.NewDevice()
	if err != nil {
		panic(err)
	}
	cmd.Logger().Infof("OpenGL %s", glbackend.Version())

	fbw, fbh := ws.windowGlfw.GetFramebufferSize()
	device.SetViewport(fbw, fbh)
	cmd.AddResources(ws, &DeviceResource{
		Device: device,
		Width:  fbw,
		Height: fbh,
	})

	app.UseSystem(
		System(framebufferSystem).
			InStage(PreRender),
	)
	app.UseSystem(
		System(swapBuffersSystem).
			InStage(PostRender),
	)
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string) *WindowState {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		glfw.Terminate()
		panic(err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	return &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		windowTitle:  windowTitle,
	}
}

func framebufferSystem(s *WindowState, dev *DeviceResource) {
	s.WindowWidth, s.WindowHeight = s.windowGlfw.GetSize()
	fbw, fbh := s.windowGlfw.GetFramebufferSize()
	if fbw == dev.Width && fbh == dev.Height {
		return
	}
	dev.Width, dev.Height = fbw, fbh
	dev.Device.SetViewport(fbw, fbh)
}

func swapBuffersSystem(s *WindowState) {
	s.windowGlfw.SwapBuffers()
}
