package replay

import (
	"github.com/milk9111/thirdperson/ecs/component"
)

var (
	_ component.IntentSource = (*Recorder)(nil)
	_ component.IntentSource = (*Player)(nil)
)

// Recorder passes intents from an inner source through and keeps a copy of
// each one.
type Recorder struct {
	source component.IntentSource
	dt     float64
	frames []Frame
}

// NewRecorder records source at a fixed tick length.
func NewRecorder(source component.IntentSource, dt float64) *Recorder {
	return &Recorder{source: source, dt: dt}
}

func (r *Recorder) Poll() component.Intent {
	var in component.Intent
	if r.source != nil {
		in = r.source.Poll()
	}
	r.frames = append(r.frames, Frame{DeltaTime: r.dt, Intent: in})
	return in
}

func (r *Recorder) Frames() []Frame {
	return r.frames
}

// Player plays frames back in order, then yields empty intents.
type Player struct {
	frames []Frame
	next   int
}

func NewPlayer(frames []Frame) *Player {
	return &Player{frames: frames}
}

func (p *Player) Poll() component.Intent {
	if p.next >= len(p.frames) {
		return component.Intent{}
	}
	in := p.frames[p.next].Intent
	p.next++
	return in
}

// DeltaTime returns the tick length of the frame the next Poll returns.
func (p *Player) DeltaTime() float64 {
	if p.next >= len(p.frames) {
		return 0
	}
	return p.frames[p.next].DeltaTime
}

func (p *Player) Done() bool {
	return p.next >= len(p.frames)
}
