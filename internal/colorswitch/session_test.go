package colorswitch

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqColors returns the queued indices in order, then repeats the last one.
type seqColors struct {
	next []int
}

func (s *seqColors) Intn(n int) int {
	if len(s.next) == 0 {
		return 0
	}
	v := s.next[0]
	if len(s.next) > 1 {
		s.next = s.next[1:]
	}
	return v % n
}

type memStore struct {
	recent, high int
	failHigh     bool
	writes       []string
}

func (m *memStore) RecentScore() (int, error) { return m.recent, nil }

func (m *memStore) SetRecentScore(score int) error {
	m.writes = append(m.writes, KeyRecentScore)
	m.recent = score
	return nil
}

func (m *memStore) HighScore() (int, error) {
	if m.failHigh {
		return 0, errors.New("disk on fire")
	}
	return m.high, nil
}

func (m *memStore) SetHighScore(score int) error {
	m.writes = append(m.writes, KeyHighScore)
	m.high = score
	return nil
}

// recorder captures presenter calls. Fades are held until complete() is called.
type recorder struct {
	rotations []Color
	scores    []int
	spawned   []Ball
	faded     []Ball
	sounds    int
	ended     []Result
	pending   []func()
}

func (r *recorder) RotateSwitch(to Color)  { r.rotations = append(r.rotations, to) }
func (r *recorder) ScoreChanged(score int) { r.scores = append(r.scores, score) }
func (r *recorder) SpawnBall(b Ball)       { r.spawned = append(r.spawned, b) }
func (r *recorder) PlayMatchSound()        { r.sounds++ }
func (r *recorder) SessionEnded(res Result) {
	r.ended = append(r.ended, res)
}

func (r *recorder) FadeOutBall(b Ball, done func()) {
	r.faded = append(r.faded, b)
	r.pending = append(r.pending, done)
}

func (r *recorder) complete() {
	pending := r.pending
	r.pending = nil
	for _, done := range pending {
		done()
	}
}

func newTestSession(store ScoreStore, colors ...int) (*Session, *recorder) {
	rec := &recorder{}
	s := NewSession(store, rec, &seqColors{next: colors})
	s.Initialize()
	return s, rec
}

func TestInitialize(t *testing.T) {
	s, rec := newTestSession(&memStore{}, 2)

	assert.Equal(t, Red, s.Switch())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, PhasePlaying, s.Phase())

	ball, ok := s.CurrentBall()
	require.True(t, ok)
	assert.Equal(t, Green, ball.Color)
	require.Len(t, rec.spawned, 1)
	assert.Equal(t, ball, rec.spawned[0])
}

func TestRotationIsCyclic(t *testing.T) {
	for n := 0; n < 13; n++ {
		s, _ := newTestSession(nil)
		for i := 0; i < n; i++ {
			s.RotateSwitch()
		}
		assert.Equal(t, ColorFromIndex(n%NumColors), s.Switch(), "after %d rotations", n)
	}
}

func TestRotateNotifiesPresenterEveryTime(t *testing.T) {
	s, rec := newTestSession(nil)
	for i := 0; i < 5; i++ {
		s.RotateSwitch()
	}
	assert.Equal(t, []Color{Yellow, Green, Blue, Red, Yellow}, rec.rotations)
	// Rotation alone never resolves the ball.
	assert.Equal(t, 0, s.Score())
	assert.Empty(t, rec.faded)
}

// Scenario A: rotate once, a yellow ball matches.
func TestScenarioMatchAfterRotation(t *testing.T) {
	s, rec := newTestSession(&memStore{}, 1, 3)

	s.RotateSwitch()
	require.Equal(t, Yellow, s.Switch())

	out := s.OnBallReachesSwitch(Yellow)
	assert.Equal(t, OutcomeMatch, out)
	assert.Equal(t, 1, s.Score())
	assert.Equal(t, 1, rec.sounds)
	assert.Equal(t, []int{0, 1}, rec.scores)

	rec.complete()
	require.Len(t, rec.spawned, 2)
	ball, ok := s.CurrentBall()
	require.True(t, ok)
	assert.Equal(t, Blue, ball.Color)
	assert.NotEqual(t, rec.spawned[0].ID, ball.ID)
}

// Scenario B: no rotation, blue ball against red switch.
func TestScenarioImmediateMismatch(t *testing.T) {
	store := &memStore{high: 3, recent: 9}
	s, rec := newTestSession(store, 3)

	out := s.OnBallReachesSwitch(Blue)
	assert.Equal(t, OutcomeMismatch, out)
	assert.Equal(t, PhaseEnded, s.Phase())
	assert.Equal(t, 0, store.recent)
	assert.Equal(t, 3, store.high)

	require.Len(t, rec.ended, 1)
	assert.Equal(t, Result{Score: 0, RecentScore: 0, HighScore: 3}, rec.ended[0])
	_, ok := s.CurrentBall()
	assert.False(t, ok)
}

// Scenario C: prior high score 5, session reaches 7 and mismatches.
func TestScenarioNewHighScore(t *testing.T) {
	store := &memStore{high: 5}
	s, rec := newTestSession(store, 0)

	for i := 0; i < 7; i++ {
		require.Equal(t, OutcomeMatch, s.OnBallReachesSwitch(Red))
		rec.complete()
	}
	require.Equal(t, 7, s.Score())

	require.Equal(t, OutcomeMismatch, s.OnBallReachesSwitch(Green))
	assert.Equal(t, 7, store.high)
	assert.Equal(t, 7, store.recent)
	assert.Equal(t, Result{Score: 7, RecentScore: 7, HighScore: 7, NewHighScore: true}, s.LastResult())
}

func TestHighScoreNeverDecreases(t *testing.T) {
	store := &memStore{high: 10}
	s, rec := newTestSession(store, 0)

	s.OnBallReachesSwitch(Red)
	rec.complete()
	s.OnBallReachesSwitch(Blue)

	assert.Equal(t, 10, store.high)
	assert.Equal(t, 1, store.recent)
	assert.Equal(t, []string{KeyRecentScore}, store.writes)
	assert.False(t, s.LastResult().NewHighScore)
}

func TestEndedIsSticky(t *testing.T) {
	s, rec := newTestSession(&memStore{}, 0)
	require.Equal(t, OutcomeMismatch, s.OnBallReachesSwitch(Yellow))

	assert.Equal(t, OutcomeIgnored, s.OnBallReachesSwitch(Red))
	assert.Equal(t, OutcomeIgnored, s.OnBallReachesSwitch(Yellow))
	s.RotateSwitch()
	assert.Equal(t, Red, s.Switch())
	assert.Empty(t, rec.rotations)
	assert.Len(t, rec.ended, 1)

	_, err := s.EndSession()
	require.NoError(t, err)
	assert.Len(t, rec.ended, 1, "ending twice must not request a second transition")

	s.Initialize()
	assert.Equal(t, PhasePlaying, s.Phase())
	assert.Equal(t, 0, s.Score())
}

func TestContactIsCountedOncePerBall(t *testing.T) {
	s, rec := newTestSession(&memStore{}, 0)

	require.Equal(t, OutcomeMatch, s.OnBallReachesSwitch(Red))
	// Still fading: repeated contact of the same ball is ignored.
	assert.Equal(t, OutcomeIgnored, s.OnBallReachesSwitch(Red))
	assert.Equal(t, OutcomeIgnored, s.OnBallReachesSwitch(Blue))
	assert.Equal(t, 1, s.Score())
	assert.Equal(t, PhasePlaying, s.Phase())

	rec.complete()
	assert.Equal(t, OutcomeMatch, s.OnBallReachesSwitch(Red))
	assert.Equal(t, 2, s.Score())
}

func TestFadeCompletionAfterEndDoesNotSpawn(t *testing.T) {
	s, rec := newTestSession(&memStore{}, 0)

	require.Equal(t, OutcomeMatch, s.OnBallReachesSwitch(Red))
	_, err := s.EndSession()
	require.NoError(t, err)

	rec.complete()
	assert.Len(t, rec.spawned, 1)
	_, ok := s.CurrentBall()
	assert.False(t, ok)
}

func TestScoreIsMonotonic(t *testing.T) {
	s, rec := newTestSession(nil, 0)
	prev := s.Score()
	for i := 0; i < 50; i++ {
		if i%3 == 0 {
			s.RotateSwitch()
			s.RotateSwitch()
			s.RotateSwitch()
			s.RotateSwitch()
		}
		s.OnBallReachesSwitch(Red)
		rec.complete()
		assert.GreaterOrEqual(t, s.Score(), prev)
		assert.LessOrEqual(t, s.Score()-prev, 1)
		prev = s.Score()
	}
	assert.Equal(t, 50, s.Score())
}

func TestStoreErrorStillEndsSession(t *testing.T) {
	store := &memStore{failHigh: true}
	s, rec := newTestSession(store, 0)

	assert.Equal(t, OutcomeMismatch, s.OnBallReachesSwitch(Green))
	assert.Equal(t, PhaseEnded, s.Phase())
	assert.Len(t, rec.ended, 1)
	require.Error(t, s.StoreErr())
	assert.Contains(t, s.StoreErr().Error(), KeyHighScore)
}

func TestUnreadableHighScoreIsNotReported(t *testing.T) {
	store := &memStore{failHigh: true}
	s, rec := newTestSession(store, 0)

	require.Equal(t, OutcomeMatch, s.OnBallReachesSwitch(Red))
	rec.complete()
	s.EndSession()

	res := s.LastResult()
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, 1, res.RecentScore)
	assert.Zero(t, res.HighScore)
	assert.False(t, res.NewHighScore)
	assert.Equal(t, res, rec.ended[0])
	assert.Equal(t, []string{KeyRecentScore}, store.writes)
}

func TestNilPresenterCompletesFadesImmediately(t *testing.T) {
	s := NewSession(nil, nil, &seqColors{next: []int{0, 2}})
	s.Initialize()

	require.Equal(t, OutcomeMatch, s.OnBallReachesSwitch(Red))
	ball, ok := s.CurrentBall()
	require.True(t, ok)
	assert.Equal(t, Green, ball.Color)
	assert.Equal(t, uint64(2), ball.ID)
}

func TestBallColorDistribution(t *testing.T) {
	const draws = 40000
	s := NewSession(nil, nil, rand.New(rand.NewSource(7)))
	s.Initialize()

	counts := make(map[Color]int)
	for i := 0; i < draws; i++ {
		ball, ok := s.CurrentBall()
		require.True(t, ok)
		counts[ball.Color]++
		for s.Switch() != ball.Color {
			s.RotateSwitch()
		}
		require.Equal(t, OutcomeMatch, s.OnBallReachesSwitch(ball.Color))
	}

	// Expected 10000 each; sigma is about 87, allow five sigma.
	for _, c := range Colors {
		assert.InDelta(t, draws/NumColors, counts[c], 450, "color %s", c)
	}
}
