package colorswitch

// Category identifies what kind of participant a physical body is.
type Category int

const (
	CategoryNone Category = iota
	CategoryBall
	CategorySwitch
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryBall:
		return "ball"
	case CategorySwitch:
		return "switch"
	default:
		return "none"
	}
}

// Body is a participant of a contact event.
type Body interface {
	Category() Category
}

// ColoredBody is a body that carries a ball color tag.
type ColoredBody interface {
	Body
	BallColor() Color
}

// Contact is a signal from the physics collaborator that two bodies touched.
// The order of A and B carries no meaning.
type Contact struct {
	A, B Body
}

// MatchPair reports whether the contact is exactly between a body of category x
// and a body of category y, in either order. On success the bodies are returned
// in (x, y) order.
func MatchPair(c Contact, x, y Category) (bx, by Body, ok bool) {
	if c.A == nil || c.B == nil {
		return nil, nil, false
	}
	switch {
	case c.A.Category() == x && c.B.Category() == y:
		return c.A, c.B, true
	case c.B.Category() == x && c.A.Category() == y:
		return c.B, c.A, true
	}
	return nil, nil, false
}

// BallContactColor extracts the ball color from a ball/switch contact.
// It returns false for any other pairing or when the ball body carries no color.
func BallContactColor(c Contact) (Color, bool) {
	ball, _, ok := MatchPair(c, CategoryBall, CategorySwitch)
	if !ok {
		return 0, false
	}
	colored, ok := ball.(ColoredBody)
	if !ok {
		return 0, false
	}
	color := colored.BallColor()
	if !color.Valid() {
		return 0, false
	}
	return color, true
}
