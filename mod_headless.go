package forward

import (
	"github.com/gekko3d/forward/forwardrt/rt/gpu"
)

// HeadlessModule stands in for PlatformWindowModule when there is no display.
// Frames are recorded by a gpu.Recorder that is reset at the start of every
// frame, so after Run it holds the calls of the last frame.
type HeadlessModule struct {
	Width  int
	Height int
}

func (m HeadlessModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[DeviceResource](app); ok {
		return
	}
	if m.Width <= 0 {
		m.Width = 1280
	}
	if m.Height <= 0 {
		m.Height = 720
	}

	recorder := gpu.NewRecorder()
	recorder.SetViewport(m.Width, m.Height)
	cmd.AddResources(&DeviceResource{
		Device:   recorder,
		Width:    m.Width,
		Height:   m.Height,
		Headless: true,
	})
	if _, ok := Resource[Input](app); !ok {
		cmd.AddResources(&Input{})
	}

	app.UseSystem(
		System(headlessFrameStartSystem).
			InStage(Prelude),
	)
	app.UseSystem(
		System(headlessFrameEndSystem).
			InStage(Finale),
	)
}

// Recorder returns the recording device of a headless app.
func (d *DeviceResource) Recorder() (*gpu.Recorder, bool) {
	rec, ok := d.Device.(*gpu.Recorder)
	return rec, ok
}

func headlessFrameStartSystem(dev *DeviceResource) {
	if rec, ok := dev.Recorder(); ok {
		rec.Reset()
	}
}

// Key edges last one frame, as they do when polling a window.
func headlessFrameEndSystem(input *Input) {
	input.clearEdges()
}
