package main

import (
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs/component"
)

const (
	stickDeadzone = 0.15
	// degrees per second at full right-stick deflection
	stickLookRate = 180.0
	// degrees per pixel of mouse travel
	mouseLookScale = 0.15
)

// Input binds keyboard, mouse and the first gamepad to a character intent.
// It is both the intent source and the pointer device of the character.
type Input struct {
	intent component.Intent

	// mouse is true when the last look input came from the mouse
	mouse   bool
	lastX   int
	lastY   int
	hasLast bool

	// The Pressed flags are playground commands, not character intent.
	PausePressed bool
	DebugPressed bool
	CopyPressed  bool
}

var (
	_ component.IntentSource  = (*Input)(nil)
	_ component.PointerDevice = (*Input)(nil)
)

func NewInput() *Input {
	return &Input{mouse: true}
}

func (i *Input) Poll() component.Intent {
	return i.intent
}

func (i *Input) HighPrecision() bool {
	return i.mouse
}

// ResetMouse forgets the last cursor position so the next frame produces no
// look delta.
func (i *Input) ResetMouse() {
	i.hasLast = false
}

// Update samples the devices once per frame.
func (i *Input) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		os.Exit(0)
	}
	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	i.DebugPressed = inpututil.IsKeyJustPressed(ebiten.KeyF1)
	i.CopyPressed = inpututil.IsKeyJustPressed(ebiten.KeyC)

	var in component.Intent

	// Keyboard WASD or arrows
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		in.Move.Y += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		in.Move.Y -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		in.Move.X -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		in.Move.X += 1
	}
	in.Jump = ebiten.IsKeyPressed(ebiten.KeySpace)
	in.Sprint = ebiten.IsKeyPressed(ebiten.KeyShiftLeft)
	in.Aim = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	in.Shoot = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	mx, my := ebiten.CursorPosition()
	if i.hasLast {
		in.Look = common.Vec2{
			X: float64(mx-i.lastX) * mouseLookScale,
			Y: float64(my-i.lastY) * mouseLookScale,
		}
	}
	i.lastX, i.lastY = mx, my
	i.hasLast = true
	i.mouse = true

	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		i.applyGamepad(ids[0], &in)
	}

	i.intent = in
}

func (i *Input) applyGamepad(gid ebiten.GamepadID, in *component.Intent) {
	if !ebiten.IsStandardGamepadLayoutAvailable(gid) {
		return
	}
	lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
	ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
	if math.Hypot(lx, ly) > stickDeadzone {
		// stick up is negative
		in.Move = common.Vec2{X: lx, Y: -ly}
		if in.Move.Len() > 1 {
			in.Move = common.Vec2{X: in.Move.X / in.Move.Len(), Y: in.Move.Y / in.Move.Len()}
		}
		in.AnalogMovement = true
	}

	rx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickHorizontal)
	ry := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickVertical)
	if math.Hypot(rx, ry) > stickDeadzone && in.Look.IsZero() {
		// rate input; the camera rig scales it by dt
		in.Look = common.Vec2{X: rx * stickLookRate, Y: ry * stickLookRate}
		i.mouse = false
	}

	in.Jump = in.Jump || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
	in.Sprint = in.Sprint || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftStick)
	in.Aim = in.Aim || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomLeft)
	in.Shoot = in.Shoot || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight)
	i.PausePressed = i.PausePressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
}
