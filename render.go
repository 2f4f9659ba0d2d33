package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/thirdperson/arena"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs/component"
	"golang.org/x/image/colornames"
)

// pixels per metre of the top-down view
const viewScale = 24.0

// toScreen maps world XZ to the screen, centred on focus with +Z up.
func toScreen(p, focus common.Vec3) (float32, float32) {
	x := baseWidth/2 + (p.X-focus.X)*viewScale
	y := baseHeight/2 - (p.Z-focus.Z)*viewScale
	return float32(x), float32(y)
}

func drawArena(screen *ebiten.Image, a *arena.Arena, focus common.Vec3) {
	screen.Fill(colornames.Black)
	for _, b := range a.Blocks() {
		x0, y0 := toScreen(common.Vec3{X: b.Min.X, Z: b.Max.Z}, focus)
		x1, y1 := toScreen(common.Vec3{X: b.Max.X, Z: b.Min.Z}, focus)
		clr := b.Color
		if clr == nil {
			clr = colornames.Slategray
		}
		vector.FillRect(screen, x0, y0, x1-x0, y1-y0, clr, false)
		// taller blocks get a brighter outline
		outline := colornames.Dimgray
		if b.Max.Y-focus.Y > 1 {
			outline = colornames.Lightgrey
		}
		vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1, outline, false)
	}
}

func drawTracers(screen *ebiten.Image, tracers []tracer, focus common.Vec3) {
	for _, t := range tracers {
		x0, y0 := toScreen(t.origin, focus)
		x1, y1 := toScreen(t.target, focus)
		clr := color.Color(colornames.Gold)
		if t.hit {
			clr = colornames.Orangered
		}
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, clr, true)
	}
}

func drawCharacter(screen *ebiten.Image, c *component.Character, cam *FollowCamera) {
	st := c.State
	px, py := toScreen(st.Position, st.Position)

	body := colornames.Cornflowerblue
	if !st.Grounded {
		body = colornames.Lightskyblue
	}
	vector.FillCircle(screen, px, py, float32(arena.DefaultBodyRadius*viewScale), body, true)

	facing := st.Position.Add(common.YawForward(st.BodyYaw).Scale(0.8))
	fx, fy := toScreen(facing, st.Position)
	vector.StrokeLine(screen, px, py, fx, fy, 3, colornames.White, true)

	camPos := cam.Position()
	cx, cy := toScreen(camPos, st.Position)
	vector.StrokeCircle(screen, cx, cy, 4, 1, colornames.Lightgreen, true)
	look := camPos.Add(cam.Forward().Horizontal().Normalize().Scale(2))
	lx, ly := toScreen(look, st.Position)
	vector.StrokeLine(screen, cx, cy, lx, ly, 1, colornames.Lightgreen, true)

	if st.Aim.Aiming() {
		ax, ay := toScreen(st.Aim.LastAimPoint, st.Position)
		clr := colornames.Gold
		if st.Aim.LastHitValid {
			clr = colornames.Orangered
		}
		vector.StrokeCircle(screen, ax, ay, 6, 2, clr, true)
	}
}

func drawHUD(screen *ebiten.Image, c *component.Character, line string) {
	st := c.State
	ebitenutil.DebugPrint(screen, line)
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("phase: %s  aim: %s  yaw: %.1f  pitch: %.1f", st.Vertical, st.Aim.Mode, st.Camera.Yaw, st.Camera.Pitch),
		0, baseHeight-16)
}
