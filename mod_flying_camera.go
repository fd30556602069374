package forward

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FlyingCameraModule moves the scene camera with WASD, Space and Control.
// Tab captures the mouse for looking around. Requires SceneModule.
type FlyingCameraModule struct {
	Speed       float32
	Sensitivity float32
}

type FlyingCamera struct {
	Speed       float32
	Sensitivity float32
	Yaw         float32
	Pitch       float32
	Move        mgl32.Vec3
	Look        mgl32.Vec2

	synced bool
}

func (m FlyingCameraModule) Install(app *App, cmd *Commands) {
	fly := &FlyingCamera{
		Speed:       m.Speed,
		Sensitivity: m.Sensitivity,
	}
	if fly.Speed == 0 {
		fly.Speed = 5.0
	}
	if fly.Sensitivity == 0 {
		fly.Sensitivity = 0.1
	}
	cmd.AddResources(fly)

	app.UseSystem(
		System(FlyingCameraInputSystem).
			InStage(Update),
	)
	app.UseSystem(
		System(FlyingCameraControlSystem).
			InStage(Update),
	)
}

func FlyingCameraInputSystem(input *Input, fly *FlyingCamera) {
	if input.JustPressed[KeyTab] {
		input.MouseCaptured = !input.MouseCaptured
	}

	fly.Move = mgl32.Vec3{0, 0, 0}
	if input.Pressed[KeyW] {
		fly.Move[2] += 1
	}
	if input.Pressed[KeyS] {
		fly.Move[2] -= 1
	}
	if input.Pressed[KeyA] {
		fly.Move[0] -= 1
	}
	if input.Pressed[KeyD] {
		fly.Move[0] += 1
	}
	if input.Pressed[KeySpace] {
		fly.Move[1] += 1
	}
	if input.Pressed[KeyControl] {
		fly.Move[1] -= 1
	}

	if input.MouseCaptured {
		fly.Look[0] = float32(input.MouseDeltaX)
		fly.Look[1] = float32(input.MouseDeltaY)
	} else {
		fly.Look[0] = 0
		fly.Look[1] = 0
	}
}

func FlyingCameraControlSystem(time *Time, fly *FlyingCamera, scene *SceneResource) {
	cam := scene.Camera
	if cam == nil {
		return
	}
	if !fly.synced {
		f := cam.Forward()
		fly.Yaw = mgl32.RadToDeg(float32(math.Atan2(float64(f.X()), float64(-f.Z()))))
		fly.Pitch = mgl32.RadToDeg(float32(math.Asin(float64(mgl32.Clamp(f.Y(), -1, 1)))))
		fly.synced = true
	}

	dt := float32(time.Dt.Seconds())
	if dt <= 0 {
		return
	}

	fly.Yaw += fly.Look[0] * fly.Sensitivity
	fly.Pitch -= fly.Look[1] * fly.Sensitivity

	// Clamp pitch
	if fly.Pitch > 89.0 {
		fly.Pitch = 89.0
	}
	if fly.Pitch < -89.0 {
		fly.Pitch = -89.0
	}

	yawRad := mgl32.DegToRad(fly.Yaw)
	pitchRad := mgl32.DegToRad(fly.Pitch)

	forward := mgl32.Vec3{
		float32(math.Sin(float64(yawRad)) * math.Cos(float64(pitchRad))),
		float32(math.Sin(float64(pitchRad))),
		float32(-math.Cos(float64(yawRad)) * math.Cos(float64(pitchRad))),
	}.Normalize()

	up := mgl32.Vec3{0, 1, 0}
	right := forward.Cross(up).Normalize()

	moveDir := mgl32.Vec3{0, 0, 0}
	moveDir = moveDir.Add(right.Mul(fly.Move[0]))
	moveDir = moveDir.Add(up.Mul(fly.Move[1]))
	moveDir = moveDir.Add(forward.Mul(fly.Move[2]))

	eye := cam.Eye
	if moveDir.Len() > 0 {
		eye = eye.Add(moveDir.Normalize().Mul(fly.Speed * dt))
	}

	cam.LookAt(eye, eye.Add(forward), up)
}
