package mascot

import (
	"math/rand"
	"sync"
	"time"

	"github.com/aliskhannn/sva-bot/internal/domain/entities"
)

// Expression is the face the mascot is currently making.
type Expression string

const (
	ExpressionHappy    Expression = "happy"
	ExpressionThinking Expression = "thinking"
	ExpressionExcited  Expression = "excited"
	ExpressionSad      Expression = "sad"
	ExpressionTickled  Expression = "tickled"
)

// IdlePrompt is shown when nobody has played with the mascot for a while.
const IdlePrompt = "Tickle me for a grammar tip!"

// Timings controls every animation of the mascot.
type Timings struct {
	BlinkMin           time.Duration
	BlinkMax           time.Duration
	BlinkDuration      time.Duration
	IdleInterval       time.Duration
	IdlePromptDuration time.Duration
	TipDuration        time.Duration
	CelebrateDuration  time.Duration
	CryDuration        time.Duration
	TickleDuration     time.Duration
}

// DefaultTimings returns the stock animation timings.
func DefaultTimings() Timings {
	return Timings{
		BlinkMin:           3 * time.Second,
		BlinkMax:           6 * time.Second,
		BlinkDuration:      150 * time.Millisecond,
		IdleInterval:       15 * time.Second,
		IdlePromptDuration: 5 * time.Second,
		TipDuration:        7 * time.Second,
		CelebrateDuration:  600 * time.Millisecond,
		CryDuration:        time.Second,
		TickleDuration:     400 * time.Millisecond,
	}
}

// Snapshot is a consistent view of the mascot at one instant.
type Snapshot struct {
	Expression Expression
	Blinking   bool
	Bubble     string
	Animating  bool
	Crying     bool
	Tickled    bool
}

// Face renders the snapshot as a single emoji.
func (s Snapshot) Face() string {
	if s.Blinking {
		return "😌"
	}
	switch s.Expression {
	case ExpressionThinking:
		return "🤔"
	case ExpressionExcited:
		return "🤩"
	case ExpressionSad:
		if s.Crying {
			return "😢"
		}
		return "😞"
	case ExpressionTickled:
		return "😆"
	default:
		return "😊"
	}
}

type slot int

const (
	slotBlink slot = iota
	slotBlinkEnd
	slotIdle
	slotBubble
	slotAnimation
	slotTickle
	slotCount
)

// Mascot is a purely cosmetic companion. It reacts to quiz outcomes but never
// influences the quiz itself.
type Mascot struct {
	mu  sync.Mutex
	rng *rand.Rand
	t   Timings

	base       Expression
	expression Expression
	blinking   bool
	bubble     string
	animating  bool
	crying     bool
	tickled    bool
	running    bool
	stopped    bool

	timers [slotCount]*time.Timer
	gens   [slotCount]uint64
}

// New creates an idle mascot. A nil src seeds from the current time.
func New(t Timings, src rand.Source) *Mascot {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Mascot{
		rng:        rand.New(src),
		t:          t,
		base:       ExpressionHappy,
		expression: ExpressionHappy,
	}
}

// Start begins the blink and idle prompt loops. It is a no-op after the
// first call and after Stop.
func (m *Mascot) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running || m.stopped {
		return
	}
	m.running = true
	m.scheduleLocked(slotBlink, m.t.BlinkMin, m.blinkLocked)
	m.scheduleLocked(slotIdle, m.t.IdleInterval, m.idleLocked)
}

// Stop cancels every pending timer. The mascot stays frozen afterwards.
func (m *Mascot) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for s := slot(0); s < slotCount; s++ {
		m.cancelLocked(s)
	}
	m.stopped = true
}

// SetExpression changes the resting expression. It shows immediately unless
// an animation or a tickle is in progress.
func (m *Mascot) SetExpression(e Expression) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.base = e
	if !m.animating && !m.tickled {
		m.expression = e
	}
}

// Observe reacts to a quiz outcome. Outcomes that arrive mid-animation are
// dropped.
func (m *Mascot) Observe(o entities.Outcome) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.animating {
		return
	}

	switch o {
	case entities.OutcomeCorrect:
		m.animating = true
		m.expression = ExpressionHappy
		m.scheduleLocked(slotAnimation, m.t.CelebrateDuration, m.endAnimationLocked)
	case entities.OutcomeIncorrect:
		m.animating = true
		m.crying = true
		m.expression = ExpressionSad
		m.scheduleLocked(slotAnimation, m.t.CryDuration, m.endAnimationLocked)
	}
}

// Tickle shows a random grammar tip. It reports false while the mascot is
// already tickled or busy animating.
func (m *Mascot) Tickle() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tickled || m.animating {
		return "", false
	}

	m.tickled = true
	m.expression = ExpressionTickled
	m.bubble = Tips[m.rng.Intn(len(Tips))]

	m.scheduleLocked(slotTickle, m.t.TickleDuration, func() {
		m.tickled = false
		m.expression = m.base
	})
	m.scheduleLocked(slotBubble, m.t.TipDuration, m.clearBubbleLocked)
	return m.bubble, true
}

// Snapshot returns the current state.
func (m *Mascot) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		Expression: m.expression,
		Blinking:   m.blinking,
		Bubble:     m.bubble,
		Animating:  m.animating,
		Crying:     m.crying,
		Tickled:    m.tickled,
	}
}

func (m *Mascot) blinkLocked() {
	m.blinking = true
	m.scheduleLocked(slotBlinkEnd, m.t.BlinkDuration, func() {
		m.blinking = false
	})
	m.scheduleLocked(slotBlink, m.nextBlinkLocked(), m.blinkLocked)
}

// nextBlinkLocked returns a uniform delay in [BlinkMin, BlinkMax).
func (m *Mascot) nextBlinkLocked() time.Duration {
	span := m.t.BlinkMax - m.t.BlinkMin
	if span <= 0 {
		return m.t.BlinkMin
	}
	return m.t.BlinkMin + time.Duration(m.rng.Int63n(int64(span)))
}

func (m *Mascot) idleLocked() {
	if m.bubble == "" && !m.animating && !m.tickled && !m.crying {
		m.bubble = IdlePrompt
		m.scheduleLocked(slotBubble, m.t.IdlePromptDuration, m.clearBubbleLocked)
	}
	m.scheduleLocked(slotIdle, m.t.IdleInterval, m.idleLocked)
}

func (m *Mascot) endAnimationLocked() {
	m.animating = false
	m.crying = false
	if !m.tickled {
		m.expression = m.base
	}
}

func (m *Mascot) clearBubbleLocked() {
	m.bubble = ""
}

// scheduleLocked runs fn under the lock after d, replacing whatever was
// pending in the same slot.
func (m *Mascot) scheduleLocked(s slot, d time.Duration, fn func()) {
	m.cancelLocked(s)
	if m.stopped {
		return
	}

	gen := m.gens[s]
	m.timers[s] = time.AfterFunc(d, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.stopped || m.gens[s] != gen {
			return
		}
		m.timers[s] = nil
		fn()
	})
}

func (m *Mascot) cancelLocked(s slot) {
	if m.timers[s] != nil {
		m.timers[s].Stop()
		m.timers[s] = nil
	}
	m.gens[s]++
}
