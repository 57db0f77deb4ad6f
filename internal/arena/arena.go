// Package arena owns the spatial side of the game: the switch and ball
// bodies, gravity, contact detection and the rotation and fade tweens.
// It reports contacts to a handler and never decides game outcomes.
package arena

import (
	"math"

	"github.com/solarlune/resolv"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/colorswitch/internal/colorswitch"
	"github.com/vovakirdan/colorswitch/internal/config"
)

// Config sizes the arena. Physics and layout values are fractions of the
// play area, as in config.ColorSwitchConfig.
type Config struct {
	Width, Height float64
	// Aspect scales vertical sizes; terminal cells are about twice as tall as wide.
	Aspect float64
	// MinBody is the smallest size of a body in world units.
	MinBody float64

	Gravity        float64
	MaxFallSpeed   float64
	SwitchSize     float64
	BallSize       float64
	SwitchOffset   float64
	RotateDuration float64
	FadeDuration   float64
}

// ConfigFrom builds an arena config for a play area of w by h units.
func ConfigFrom(cfg config.ColorSwitchConfig, w, h, aspect float64) Config {
	return Config{
		Width:          w,
		Height:         h,
		Aspect:         aspect,
		MinBody:        1,
		Gravity:        cfg.Physics.Gravity,
		MaxFallSpeed:   cfg.Physics.MaxFallSpeed,
		SwitchSize:     cfg.Layout.SwitchSize,
		BallSize:       cfg.Layout.BallSize,
		SwitchOffset:   cfg.Layout.SwitchOffset,
		RotateDuration: cfg.Animation.RotateDuration,
		FadeDuration:   cfg.Animation.FadeDuration,
	}
}

// ContactHandler receives each new ball/switch overlap once.
type ContactHandler func(colorswitch.Contact)

// Arena is a donburi world plus a resolv space holding one switch and at
// most one ball.
type Arena struct {
	cfg   Config
	world donburi.World
	space *resolv.Space

	sw      donburi.Entity
	ball    donburi.Entity
	hasBall bool

	onContact   ContactHandler
	speedFactor float64
	touching    map[uint64]bool
}

// New creates an arena with the switch at the bottom center.
func New(cfg Config, onContact ContactHandler) *Arena {
	if cfg.Aspect <= 0 {
		cfg.Aspect = 1
	}
	a := &Arena{
		cfg:         cfg,
		world:       donburi.NewWorld(),
		onContact:   onContact,
		speedFactor: 1,
		touching:    make(map[uint64]bool),
	}
	a.space = a.newSpace()

	a.sw = a.world.Create(Body, Spin)
	entry := a.world.Entry(a.sw)
	obj := resolv.NewObject(0, 0, 1, 1, TagSwitch)
	obj.Data = a.sw
	Body.SetValue(entry, BodyData{Object: obj, Category: colorswitch.CategorySwitch})
	a.space.Add(obj)
	a.layoutSwitch()
	return a
}

func (a *Arena) newSpace() *resolv.Space {
	cell := max(1, int(math.Min(a.cfg.Width, a.cfg.Height)/16))
	w := max(1, int(math.Ceil(a.cfg.Width)))
	h := max(1, int(math.Ceil(a.cfg.Height)))
	return resolv.NewSpace(w, h, cell, cell)
}

// SetContactHandler replaces the contact handler.
func (a *Arena) SetContactHandler(h ContactHandler) {
	a.onContact = h
}

// SetSpeedFactor scales gravity and the fall speed cap.
func (a *Arena) SetSpeedFactor(f float64) {
	if f <= 0 {
		f = 1
	}
	a.speedFactor = f
}

// Reset removes the ball and turns the switch back to its initial color.
func (a *Arena) Reset() {
	a.removeBall()
	spin := Spin.Get(a.world.Entry(a.sw))
	*spin = SpinData{}
	clear(a.touching)
}

// Bodies are sized by the play width but never take more than these
// fractions of the play height, so short wide areas still leave a fall.
const (
	maxSwitchHeight = 0.25
	maxBallHeight   = 0.08
)

func (a *Arena) bodySize(frac, maxH float64) (w, h float64) {
	w = math.Min(frac*a.cfg.Width, maxH*a.cfg.Height/a.cfg.Aspect)
	w = math.Max(a.cfg.MinBody, w)
	h = math.Max(a.cfg.MinBody, w*a.cfg.Aspect)
	return w, h
}

func (a *Arena) switchSize() (w, h float64) {
	return a.bodySize(a.cfg.SwitchSize, maxSwitchHeight)
}

func (a *Arena) ballSize() (w, h float64) {
	return a.bodySize(a.cfg.BallSize, maxBallHeight)
}

// layoutSwitch centers the switch near the bottom. Its top stays below a
// freshly spawned ball with at least MinBody of room when the area allows.
func (a *Arena) layoutSwitch() {
	obj := Body.Get(a.world.Entry(a.sw)).Object
	w, h := a.switchSize()
	obj.W, obj.H = w, h
	obj.X = a.cfg.Width/2 - w/2
	obj.Y = a.cfg.Height - a.cfg.SwitchOffset*h - h/2
	if obj.Y+h > a.cfg.Height {
		obj.Y = a.cfg.Height - h
	}
	_, bh := a.ballSize()
	if minY := bh + a.cfg.MinBody; obj.Y < minY {
		obj.Y = math.Max(bh, math.Min(minY, a.cfg.Height-h))
	}
	obj.Update()
}

// Resize re-lays out the arena for a new play area. The ball keeps its
// relative height but never ends up below the top of the switch.
func (a *Arena) Resize(w, h float64) {
	if w == a.cfg.Width && h == a.cfg.Height {
		return
	}
	oldH := a.cfg.Height
	a.cfg.Width, a.cfg.Height = w, h

	a.space = a.newSpace()
	a.space.Add(Body.Get(a.world.Entry(a.sw)).Object)
	a.layoutSwitch()

	if !a.hasBall {
		return
	}
	body := Body.Get(a.world.Entry(a.ball))
	rel := 0.0
	if oldH > 0 {
		rel = body.Object.Y / oldH
	}
	bw, bh := a.ballSize()
	body.Object.W, body.Object.H = bw, bh
	body.Object.X = w/2 - bw/2
	sw := Body.Get(a.world.Entry(a.sw)).Object
	body.Object.Y = math.Min(rel*h, sw.Y-bh)
	a.space.Add(body.Object)
	if a.overlapsSwitch(body.Object) {
		a.settle(body)
	}
	body.Object.Update()
}

// Step advances tweens and physics by dt seconds.
func (a *Arena) Step(dt float64) {
	if dt <= 0 {
		return
	}
	a.stepSpin(dt)
	a.stepFade(dt)
	a.stepBall(dt)
}

func (a *Arena) stepSpin(dt float64) {
	Spin.Each(a.world, func(e *donburi.Entry) {
		spin := Spin.Get(e)
		if spin.Tween == nil {
			return
		}
		cur, done := spin.Tween.Update(float32(dt))
		spin.Turns = float64(cur)
		if done {
			spin.Turns = float64(spin.Target)
			spin.Tween = nil
		}
	})
}

func (a *Arena) stepFade(dt float64) {
	var finished []donburi.Entity
	Fade.Each(a.world, func(e *donburi.Entry) {
		fade := Fade.Get(e)
		cur, done := fade.Tween.Update(float32(dt))
		fade.Alpha = float64(cur)
		if done {
			finished = append(finished, e.Entity())
		}
	})
	for _, ent := range finished {
		if !a.world.Valid(ent) {
			continue
		}
		done := Fade.Get(a.world.Entry(ent)).Done
		if a.hasBall && a.ball == ent {
			a.removeBall()
		} else {
			a.world.Remove(ent)
		}
		if done != nil {
			done()
		}
	}
}

func (a *Arena) stepBall(dt float64) {
	if !a.hasBall {
		return
	}
	entry := a.world.Entry(a.ball)
	if entry.HasComponent(Fade) {
		return
	}
	body := Body.Get(entry)

	g := a.cfg.Gravity * a.cfg.Height * a.speedFactor
	vmax := a.cfg.MaxFallSpeed * a.cfg.Height * a.speedFactor
	body.VY = math.Min(body.VY+g*dt, vmax)
	dy := body.VY * dt

	// resolv narrows the search to the switch's cells; the box test decides.
	check := body.Object.Check(0, dy, TagSwitch)
	prevBottom := body.Object.Y + body.Object.H
	body.Object.Y += dy
	near := check != nil && len(check.ObjectsByTags(TagSwitch)) > 0
	if (near && a.crossedSwitch(body.Object, prevBottom)) || a.pastSwitchTop(body.Object) {
		a.settle(body)
		body.Object.Update()
		a.emitContact(entry)
		return
	}
	body.Object.Update()
}

// overlapsSwitch is the exact box test.
func (a *Arena) overlapsSwitch(ball *resolv.Object) bool {
	sw := Body.Get(a.world.Entry(a.sw)).Object
	return ball.X < sw.X+sw.W && ball.X+ball.W > sw.X &&
		ball.Y+ball.H >= sw.Y && ball.Y < sw.Y+sw.H
}

// crossedSwitch also catches a fall that skipped over the switch in one step.
func (a *Arena) crossedSwitch(ball *resolv.Object, prevBottom float64) bool {
	if a.overlapsSwitch(ball) {
		return true
	}
	sw := Body.Get(a.world.Entry(a.sw)).Object
	return ball.X < sw.X+sw.W && ball.X+ball.W > sw.X &&
		prevBottom <= sw.Y && ball.Y+ball.H >= sw.Y
}

// pastSwitchTop catches a ball whose bottom is below the switch top
// without a crossing, as left behind by a resize.
func (a *Arena) pastSwitchTop(ball *resolv.Object) bool {
	sw := Body.Get(a.world.Entry(a.sw)).Object
	return ball.X < sw.X+sw.W && ball.X+ball.W > sw.X && ball.Y+ball.H > sw.Y
}

// settle rests the ball on top of the switch.
func (a *Arena) settle(body *BodyData) {
	sw := Body.Get(a.world.Entry(a.sw)).Object
	body.Object.Y = sw.Y - body.Object.H
	body.VY = 0
}

// emitContact reports the first contact of a ball; a resting ball does not repeat it.
func (a *Arena) emitContact(ballEntry *donburi.Entry) {
	body := Body.Get(ballEntry)
	if a.touching[body.BallID] {
		return
	}
	a.touching[body.BallID] = true
	if a.onContact == nil {
		return
	}
	a.onContact(colorswitch.Contact{
		A: bodyRef{cat: colorswitch.CategoryBall, color: *Tint.Get(ballEntry), id: body.BallID},
		B: bodyRef{cat: colorswitch.CategorySwitch},
	})
}

func (a *Arena) removeBall() {
	if !a.hasBall {
		return
	}
	if a.world.Valid(a.ball) {
		entry := a.world.Entry(a.ball)
		body := Body.Get(entry)
		a.space.Remove(body.Object)
		delete(a.touching, body.BallID)
		a.world.Remove(a.ball)
	}
	a.hasBall = false
}

// RotateSwitch starts a quarter-turn tween ending with to facing the ball.
func (a *Arena) RotateSwitch(to colorswitch.Color) {
	spin := Spin.Get(a.world.Entry(a.sw))
	target := spin.Target + 1
	for i := 0; i < colorswitch.NumColors && colorFor(target) != to; i++ {
		target++
	}
	spin.Target = target
	if a.cfg.RotateDuration <= 0 {
		spin.Turns = float64(target)
		spin.Tween = nil
		return
	}
	spin.Tween = gween.New(float32(spin.Turns), float32(target), float32(a.cfg.RotateDuration), ease.OutQuad)
}

// SpawnBall replaces any ball with a new one at the top center.
func (a *Arena) SpawnBall(b colorswitch.Ball) {
	a.removeBall()

	w, h := a.ballSize()
	obj := resolv.NewObject(a.cfg.Width/2-w/2, 0, w, h, TagBall)
	a.ball = a.world.Create(Body, Tint)
	a.hasBall = true
	obj.Data = a.ball

	entry := a.world.Entry(a.ball)
	Body.SetValue(entry, BodyData{Object: obj, Category: colorswitch.CategoryBall, BallID: b.ID})
	Tint.SetValue(entry, b.Color)
	a.space.Add(obj)
}

// FadeOutBall fades the current ball, removes it and then calls done.
// A ball that is no longer present completes immediately.
func (a *Arena) FadeOutBall(b colorswitch.Ball, done func()) {
	if !a.hasBall || Body.Get(a.world.Entry(a.ball)).BallID != b.ID {
		done()
		return
	}
	if a.cfg.FadeDuration <= 0 {
		a.removeBall()
		done()
		return
	}
	donburi.Add(a.world.Entry(a.ball), Fade, &FadeData{
		Alpha: 1,
		Tween: gween.New(1, 0, float32(a.cfg.FadeDuration), ease.Linear),
		Done:  done,
	})
}

// colorFor maps a quarter-turn count to the color then facing the ball.
func colorFor(turns int) colorswitch.Color {
	n := colorswitch.NumColors
	return colorswitch.ColorFromIndex(((turns % n) + n) % n)
}
