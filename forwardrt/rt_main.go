package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/gekko3d/forward"
	"github.com/gekko3d/forward/forwardrt/rt/pipeline"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	scenePath := flag.String("scene", "", "Scene JSON file (built-in demo scene when empty)")
	atlasPath := flag.String("atlas", "", "Shader atlas file (embedded atlas when empty)")
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")
	headless := flag.Bool("headless", false, "Render into a recording device instead of a window")
	frames := flag.Uint64("frames", 0, "Stop after this many frames (0 runs until closed)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	multipass := flag.Bool("multipass", false, "Start with multi-pass lighting")
	unlit := flag.Bool("unlit", false, "Start with lighting disabled")
	flag.Parse()

	settings := pipeline.DefaultSettings()
	settings.Multipass = *multipass
	settings.UseLighting = !*unlit

	if *headless && *frames == 0 {
		*frames = 1
	}

	builder := forward.NewAppBuilder().
		WithFrameLimit(*frames).
		UseModule(forward.LoggingModule{Prefix: "forward", Debug: *debug}).
		UseModule(forward.TimeModule{})

	if *headless {
		builder.UseModule(forward.HeadlessModule{Width: *width, Height: *height})
	} else {
		builder.UseModule(
			forward.NewPlatformWindow(*width, *height, "Forward"),
			forward.InputModule{},
		)
	}

	builder.UseModule(
		forward.AssetServerModule{},
		forward.SceneModule{Path: *scenePath},
		forward.FlyingCameraModule{},
		forward.RendererModule{AtlasPath: *atlasPath, Settings: &settings},
	)

	app := builder.Build()
	app.Run()

	if state, ok := forward.Resource[forward.RendererState](app); ok && *headless {
		s := state.Last
		app.Logger().Infof("%d frames, last: %d opaque, %d transparent, %d lights, %d draws",
			state.Frames, s.Opaque, s.Transparent, s.Lights, s.Draws)
	}
	os.Exit(app.ExitCode())
}
