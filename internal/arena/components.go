package arena

import (
	"github.com/solarlune/resolv"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/colorswitch/internal/colorswitch"
)

// Resolv tags.
const (
	TagSwitch = "switch"
	TagBall   = "ball"
)

// BodyData links an entity to its collision object.
type BodyData struct {
	Object   *resolv.Object
	Category colorswitch.Category
	BallID   uint64
	VY       float64 // world units per second, positive is down
}

// SpinData is the switch's rotation state, measured in quarter turns.
type SpinData struct {
	Turns  float64 // current, possibly mid-tween
	Target int     // quarter turns once the tween completes
	Tween  *gween.Tween
}

// FadeData fades a ball out and fires Done once.
type FadeData struct {
	Alpha float64
	Tween *gween.Tween
	Done  func()
}

var (
	Body = donburi.NewComponentType[BodyData]()
	Tint = donburi.NewComponentType[colorswitch.Color]()
	Spin = donburi.NewComponentType[SpinData]()
	Fade = donburi.NewComponentType[FadeData]()
)

// bodyRef is what the arena reports in a Contact.
type bodyRef struct {
	cat   colorswitch.Category
	color colorswitch.Color
	id    uint64
}

func (b bodyRef) Category() colorswitch.Category { return b.cat }
func (b bodyRef) BallColor() colorswitch.Color   { return b.color }
func (b bodyRef) BallID() uint64                 { return b.id }
