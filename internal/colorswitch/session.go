package colorswitch

import "fmt"

// Persisted keys of the two score fields.
const (
	KeyRecentScore = "RecentScore"
	KeyHighScore   = "Highscore"
)

// Phase is the lifecycle state of a session.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseEnded
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "Playing"
	case PhaseEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// Outcome reports how a contact signal was resolved.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeMatch
	OutcomeMismatch
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeMatch:
		return "Match"
	case OutcomeMismatch:
		return "Mismatch"
	default:
		return "Ignored"
	}
}

// Ball is the falling ball currently in play.
type Ball struct {
	ID    uint64
	Color Color
}

// Result is the summary handed to the presenter when a session ends.
// HighScore is zero when the stored best could not be read.
type Result struct {
	Score        int
	HighScore    int
	RecentScore  int
	NewHighScore bool
}

// ScoreStore persists the two score fields across sessions.
type ScoreStore interface {
	RecentScore() (int, error)
	SetRecentScore(score int) error
	HighScore() (int, error)
	SetHighScore(score int) error
}

// ColorSource draws ball colors. *math/rand.Rand satisfies it.
type ColorSource interface {
	Intn(n int) int
}

// Presenter receives fire-and-forget notifications from the session.
// Calls are made synchronously from the event-processing context and must not block.
type Presenter interface {
	// RotateSwitch starts the visual quarter turn to the given color.
	RotateSwitch(to Color)
	// ScoreChanged is called after every increment.
	ScoreChanged(score int)
	// SpawnBall places a new ball at the top of the play area.
	SpawnBall(b Ball)
	// FadeOutBall fades the ball and calls done once the fade completes.
	// done must be called exactly once.
	FadeOutBall(b Ball, done func())
	// PlayMatchSound plays the match effect.
	PlayMatchSound()
	// SessionEnded requests the transition back to the menu.
	SessionEnded(r Result)
}

// NopPresenter ignores every notification and completes fades immediately.
type NopPresenter struct{}

func (NopPresenter) RotateSwitch(Color)              {}
func (NopPresenter) ScoreChanged(int)                {}
func (NopPresenter) SpawnBall(Ball)                  {}
func (NopPresenter) FadeOutBall(_ Ball, done func()) { done() }
func (NopPresenter) PlayMatchSound()                 {}
func (NopPresenter) SessionEnded(Result)             {}

// Session is one play attempt, from Initialize to the mismatch that ends it.
// It is not safe for concurrent use; all calls come from the update loop.
type Session struct {
	store     ScoreStore
	presenter Presenter
	rng       ColorSource

	switchState Color
	score       int
	phase       Phase

	ball     Ball
	hasBall  bool
	resolved bool // current ball already produced a match
	nextID   uint64

	result   Result
	storeErr error
}

// NewSession creates a session. Call Initialize before use.
// A nil presenter is replaced by NopPresenter.
func NewSession(store ScoreStore, presenter Presenter, rng ColorSource) *Session {
	if presenter == nil {
		presenter = NopPresenter{}
	}
	return &Session{
		store:     store,
		presenter: presenter,
		rng:       rng,
		phase:     PhaseEnded,
	}
}

// Initialize starts a new session: switch on Red, score 0, first ball spawned.
func (s *Session) Initialize() {
	s.switchState = Red
	s.score = 0
	s.phase = PhasePlaying
	s.hasBall = false
	s.resolved = false
	s.result = Result{}
	s.storeErr = nil
	s.presenter.ScoreChanged(0)
	s.spawnBall()
}

// RotateSwitch advances the switch one step in the cyclic order.
// It never triggers a contact check.
func (s *Session) RotateSwitch() {
	if s.phase != PhasePlaying {
		return
	}
	s.switchState = s.switchState.Next()
	s.presenter.RotateSwitch(s.switchState)
}

// OnBallReachesSwitch resolves contact between the current ball and the switch.
// Only the first contact of each ball is counted.
func (s *Session) OnBallReachesSwitch(ballColor Color) Outcome {
	if s.phase != PhasePlaying || !s.hasBall || s.resolved {
		return OutcomeIgnored
	}

	if ballColor != s.switchState {
		// A store failure is kept in StoreErr; the menu transition happens regardless.
		_, _ = s.EndSession()
		return OutcomeMismatch
	}

	s.resolved = true
	s.score++
	s.presenter.ScoreChanged(s.score)
	s.presenter.PlayMatchSound()

	matched := s.ball
	s.presenter.FadeOutBall(matched, func() {
		s.removeAndRespawn(matched.ID)
	})
	return OutcomeMatch
}

// HandleContact filters a raw contact signal for the ball/switch pair and
// forwards the ball color to OnBallReachesSwitch. Other pairings are ignored.
func (s *Session) HandleContact(c Contact) Outcome {
	ball, _, ok := MatchPair(c, CategoryBall, CategorySwitch)
	if !ok {
		return OutcomeIgnored
	}
	if id, ok := ball.(interface{ BallID() uint64 }); ok && s.hasBall && id.BallID() != s.ball.ID {
		return OutcomeIgnored
	}
	color, ok := BallContactColor(c)
	if !ok {
		return OutcomeIgnored
	}
	return s.OnBallReachesSwitch(color)
}

// EndSession persists the score fields, moves to the ended phase and requests
// the transition to the menu. The transition is requested even when the store
// fails; the first store error is returned.
func (s *Session) EndSession() (Result, error) {
	if s.phase == PhaseEnded {
		return s.result, nil
	}
	s.phase = PhaseEnded
	s.hasBall = false

	res := Result{Score: s.score, RecentScore: s.score}
	err := s.persist(&res)

	s.result = res
	s.storeErr = err
	s.presenter.SessionEnded(res)
	return res, err
}

func (s *Session) persist(res *Result) error {
	if s.store == nil {
		res.HighScore = res.Score
		res.NewHighScore = res.Score > 0
		return nil
	}

	var firstErr error
	if err := s.store.SetRecentScore(res.Score); err != nil {
		firstErr = fmt.Errorf("colorswitch: save %s: %w", KeyRecentScore, err)
	}

	prev, err := s.store.HighScore()
	if err != nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("colorswitch: read %s: %w", KeyHighScore, err)
		}
		return firstErr
	}

	res.HighScore = max(prev, res.Score)
	if res.Score > prev {
		res.NewHighScore = true
		if err := s.store.SetHighScore(res.Score); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("colorswitch: save %s: %w", KeyHighScore, err)
		}
	}
	return firstErr
}

// removeAndRespawn is the fade continuation of a matched ball.
// It is a no-op if the session ended or the ball was already replaced.
func (s *Session) removeAndRespawn(id uint64) {
	if s.phase != PhasePlaying || !s.hasBall || s.ball.ID != id {
		return
	}
	s.spawnBall()
}

func (s *Session) spawnBall() {
	s.nextID++
	s.ball = Ball{ID: s.nextID, Color: ColorFromIndex(s.rng.Intn(NumColors))}
	s.hasBall = true
	s.resolved = false
	s.presenter.SpawnBall(s.ball)
}

// Switch returns the color currently facing the ball.
func (s *Session) Switch() Color {
	return s.switchState
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Phase returns the lifecycle state.
func (s *Session) Phase() Phase {
	return s.phase
}

// CurrentBall returns the ball in play, if any.
func (s *Session) CurrentBall() (Ball, bool) {
	return s.ball, s.hasBall
}

// LastResult returns the result of the most recent EndSession.
func (s *Session) LastResult() Result {
	return s.result
}

// StoreErr returns the persistence error of the most recent EndSession, if any.
func (s *Session) StoreErr() error {
	return s.storeErr
}
