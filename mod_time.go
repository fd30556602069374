package forward

import (
	"time"
)

type Time struct {
	Start   time.Time
	Time    time.Time
	Dt      time.Duration
	Elapsed time.Duration
}

// Seconds is the time since start, as fed to shaders.
func (t *Time) Seconds() float32 {
	return float32(t.Elapsed.Seconds())
}

type TimeModule struct {
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := time.Now()
	cmd.AddResources(&Time{
		Start: now,
		Time:  now,
		Dt:    0,
	})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude),
	)
}

func timeSystem(timeResource *Time) {
	now := time.Now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
	timeResource.Elapsed = now.Sub(timeResource.Start)
}
