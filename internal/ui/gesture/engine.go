package gesture

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/bnema/stagedock/internal/logging"
)

// Phase identifies where a scroll event sits in its gesture.
type Phase int

const (
	PhaseBegan Phase = iota
	PhaseChanged
	PhaseEnded
	PhaseCancelled
)

// ScrollEvent is one raw trackpad sample. DeltaX is in pixels; positive
// deltas travel toward lower stage indices. Dt is the time since the
// previous sample in seconds (zero on began).
type ScrollEvent struct {
	Phase  Phase
	DeltaX float64
	Dt     float64
}

// State is the engine's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateGesturing
	StateSettling
	StateBubbling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGesturing:
		return "gesturing"
	case StateSettling:
		return "settling"
	case StateBubbling:
		return "bubbling"
	}
	return "unknown"
}

// Delegate receives engine output. Offsets are unitless stage steps
// relative to the committed index; OffsetChanged fires on every visual
// change and carries position only, never velocity. IndexCommitted fires
// once per settle, after the spring snaps to its target.
type Delegate interface {
	OffsetChanged(offset float64)
	IndexCommitted(index int)
	StateChanged(state State)
}

// Commit and velocity-smoothing thresholds.
const (
	DefaultFlickThreshold = 500.0 // px/s
	DefaultDragThreshold  = 0.5   // fraction of a stage step

	// Settling runs 10x slower under the debug slow-motion flag. Raw
	// gesture input is never time-scaled.
	SlowMotionTimeScale = 0.1

	velocityRetain = 0.7
	velocityBlend  = 0.3
)

// Config holds the engine's tunable physics. Zero values are replaced by
// the defaults, so Config{} behaves like DefaultConfig().
type Config struct {
	FlickThreshold        float64
	DragThreshold         float64
	SpringStiffness       float64
	SpringDamping         float64
	SpringMass            float64
	RubberBandDimension   float64
	RubberBandCoefficient float64
	TimeScale             float64
}

// DefaultConfig returns the stock gesture physics.
func DefaultConfig() Config {
	return Config{
		FlickThreshold:        DefaultFlickThreshold,
		DragThreshold:         DefaultDragThreshold,
		SpringStiffness:       DefaultSpringStiffness,
		SpringDamping:         DefaultSpringDamping,
		SpringMass:            DefaultSpringMass,
		RubberBandDimension:   DefaultRubberBandDimension,
		RubberBandCoefficient: DefaultRubberBandCoefficient,
		TimeScale:             1.0,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.FlickThreshold <= 0 {
		c.FlickThreshold = d.FlickThreshold
	}
	if c.DragThreshold <= 0 {
		c.DragThreshold = d.DragThreshold
	}
	if c.SpringStiffness <= 0 {
		c.SpringStiffness = d.SpringStiffness
	}
	if c.SpringDamping <= 0 {
		c.SpringDamping = d.SpringDamping
	}
	if c.SpringMass <= 0 {
		c.SpringMass = d.SpringMass
	}
	if c.RubberBandDimension <= 0 {
		c.RubberBandDimension = d.RubberBandDimension
	}
	if c.RubberBandCoefficient <= 0 {
		c.RubberBandCoefficient = d.RubberBandCoefficient
	}
	if c.TimeScale <= 0 {
		c.TimeScale = d.TimeScale
	}
	return c
}

// Engine turns raw scroll events for one stage host into committed index
// changes. It never mutates the layout tree: the delegate is told about
// offsets and commits and applies them itself.
//
// All methods must be called from the UI thread. Settling is driven by an
// external per-frame clock through Tick; the engine owns no timers.
type Engine struct {
	cfg      Config
	delegate Delegate
	parent   *Engine
	log      zerolog.Logger

	hostWidth   float64
	stageCount  int
	activeIndex int

	state State

	// Gesturing: amount is the accumulated travel in stage steps,
	// positive toward lower indices; velocity is the smoothed pixel
	// velocity, consulted only once, at commit.
	amount   float64
	velocity float64

	// Bubbling: +1 while forwarding past the left edge, -1 past the right.
	bubbleDir int

	// Settling: pendingStep is held until the spring snaps, at which
	// point the index moves and IndexCommitted fires.
	settle      spring
	pendingStep int
}

// NewEngine creates an engine for a single stage host.
func NewEngine(ctx context.Context, cfg Config, delegate Delegate) *Engine {
	return &Engine{
		cfg:      cfg.withDefaults(),
		delegate: delegate,
		log:      logging.FromContext(logging.WithComponent(ctx, "gesture")).With().Logger(),
		state:    StateIdle,
	}
}

// SetParent chains this engine to an enclosing host's engine. Gestures
// that push past an edge are forwarded to the parent while it is set.
func (e *Engine) SetParent(parent *Engine) { e.parent = parent }

// SetHostWidth updates the host's pixel width, the unit of one stage step.
func (e *Engine) SetHostWidth(width float64) { e.hostWidth = width }

// SetStages updates the navigable range. Called by the host whenever the
// stage list or selection changes outside a gesture.
func (e *Engine) SetStages(count, activeIndex int) {
	e.stageCount = count
	e.activeIndex = clampInt(activeIndex, 0, maxInt(count-1, 0))
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// ActiveIndex returns the last committed stage index.
func (e *Engine) ActiveIndex() int { return e.activeIndex }

// Offset returns the current visual offset in stage steps, relative to
// the committed index, with edge resistance applied.
func (e *Engine) Offset() float64 {
	if e.state == StateSettling {
		return float64(e.pendingStep) + e.settle.position/e.width()
	}
	return e.resistedOffset()
}

// HandleScroll feeds one raw scroll sample into the state machine.
func (e *Engine) HandleScroll(ev ScrollEvent) {
	switch ev.Phase {
	case PhaseBegan:
		e.begin()
	case PhaseChanged:
		e.change(ev)
	case PhaseEnded:
		e.end(false)
	case PhaseCancelled:
		e.end(true)
	}
}

// Cancel aborts whatever is in flight, e.g. on window blur. A live
// gesture reverts to the committed index; a settle snaps immediately.
// Either way the engine lands on a previously-committed index.
func (e *Engine) Cancel() {
	switch e.state {
	case StateGesturing, StateBubbling:
		e.end(true)
	case StateSettling:
		e.finishSettle()
	}
}

// Tick advances an active settle by dt seconds of wall time. The frame
// clock calls this at ~60 Hz; dt is scaled by the configured time scale
// so slow motion stretches the animation without touching raw input.
func (e *Engine) Tick(dt float64) {
	if e.state != StateSettling {
		return
	}
	e.settle.step(dt * e.cfg.TimeScale)
	e.delegate.OffsetChanged(float64(e.pendingStep) + e.settle.position/e.width())
	if e.settle.atRest() {
		e.finishSettle()
	}
}

func (e *Engine) begin() {
	switch e.state {
	case StateSettling:
		// Adopt the in-flight settle position as the baseline so there
		// is no visual jump; the pending commit is re-decided at the
		// end of this gesture.
		e.amount = float64(e.pendingStep) + e.settle.position/e.width()
		e.pendingStep = 0
	case StateGesturing, StateBubbling:
		return
	default:
		e.amount = 0
	}
	e.velocity = 0
	e.bubbleDir = 0
	e.setState(StateGesturing)
	e.delegate.OffsetChanged(e.resistedOffset())
}

func (e *Engine) change(ev ScrollEvent) {
	if e.state == StateIdle {
		e.begin()
	}

	if e.state == StateBubbling {
		if e.reversesInward(ev.DeltaX) {
			// Back in bounds: the nested gesture on the parent is over.
			e.parent.HandleScroll(ScrollEvent{Phase: PhaseEnded})
			e.bubbleDir = 0
			e.setState(StateGesturing)
		} else {
			e.parent.HandleScroll(ev)
			return
		}
	}

	if ev.Dt > 0 {
		instantaneous := ev.DeltaX / ev.Dt
		e.velocity = velocityRetain*e.velocity + velocityBlend*instantaneous
	}

	if e.parent != nil && e.pushesPastEdge(ev.DeltaX) {
		// Pin to the edge before forwarding so the motion is not
		// double-counted between the two hosts.
		e.amount = e.edgeAmount(ev.DeltaX)
		e.delegate.OffsetChanged(e.resistedOffset())
		e.bubbleDir = 1
		if ev.DeltaX < 0 {
			e.bubbleDir = -1
		}
		e.setState(StateBubbling)
		e.parent.HandleScroll(ScrollEvent{Phase: PhaseBegan})
		e.parent.HandleScroll(ev)
		return
	}

	e.amount += ev.DeltaX / e.width()
	e.delegate.OffsetChanged(e.resistedOffset())
}

func (e *Engine) end(cancelled bool) {
	if e.state == StateBubbling {
		phase := PhaseEnded
		if cancelled {
			phase = PhaseCancelled
		}
		e.parent.HandleScroll(ScrollEvent{Phase: phase})
		e.bubbleDir = 0
	} else if e.state != StateGesturing {
		return
	}

	step := 0
	if !cancelled {
		step = e.commitStep()
	}
	e.log.Debug().
		Float64("amount", e.amount).
		Float64("velocity", e.velocity).
		Int("step", step).
		Bool("cancelled", cancelled).
		Msg("gesture ended")
	e.beginSettle(step)
}

// commitStep decides the index delta at gesture end. A flick wins by
// velocity sign; otherwise a drag past half a step wins by position sign.
// At most one step per gesture, and never past an edge.
func (e *Engine) commitStep() int {
	step := 0
	switch {
	case math.Abs(e.velocity) > e.cfg.FlickThreshold:
		step = signOf(e.velocity)
	case math.Abs(clampFloat64(e.amount, -1, 1)) >= e.cfg.DragThreshold:
		step = signOf(e.amount)
	}
	if step > 0 && e.activeIndex == 0 {
		step = 0
	}
	if step < 0 && e.activeIndex >= e.stageCount-1 {
		step = 0
	}
	return step
}

func (e *Engine) beginSettle(step int) {
	e.pendingStep = step
	e.settle = spring{
		position:  (e.resistedOffset() - float64(step)) * e.width(),
		velocity:  e.velocity,
		stiffness: e.cfg.SpringStiffness,
		damping:   e.cfg.SpringDamping,
		mass:      e.cfg.SpringMass,
	}
	if e.settle.atRest() {
		e.finishSettle()
		return
	}
	e.setState(StateSettling)
}

func (e *Engine) finishSettle() {
	step := e.pendingStep
	e.pendingStep = 0
	e.amount = 0
	e.velocity = 0
	if step != 0 {
		e.activeIndex = clampInt(e.activeIndex-step, 0, maxInt(e.stageCount-1, 0))
	}
	e.setState(StateIdle)
	e.delegate.OffsetChanged(0)
	e.delegate.IndexCommitted(e.activeIndex)
}

// resistedOffset maps the raw amount to the published visual offset,
// rubber-banding any travel past the navigable range.
func (e *Engine) resistedOffset() float64 {
	maxLeft := float64(e.activeIndex)
	maxRight := float64(maxInt(e.stageCount-1-e.activeIndex, 0))
	switch {
	case e.amount > maxLeft:
		return maxLeft + RubberBand(e.amount-maxLeft, e.cfg.RubberBandDimension, e.cfg.RubberBandCoefficient)
	case e.amount < -maxRight:
		return -maxRight - RubberBand(-maxRight-e.amount, e.cfg.RubberBandDimension, e.cfg.RubberBandCoefficient)
	}
	return e.amount
}

// pushesPastEdge reports whether the delta continues outward from an
// edge the amount already sits at or beyond.
func (e *Engine) pushesPastEdge(deltaX float64) bool {
	maxLeft := float64(e.activeIndex)
	maxRight := float64(maxInt(e.stageCount-1-e.activeIndex, 0))
	if deltaX > 0 {
		return e.amount >= maxLeft
	}
	if deltaX < 0 {
		return e.amount <= -maxRight
	}
	return false
}

func (e *Engine) reversesInward(deltaX float64) bool {
	return (e.bubbleDir > 0 && deltaX < 0) || (e.bubbleDir < 0 && deltaX > 0)
}

func (e *Engine) edgeAmount(deltaX float64) float64 {
	if deltaX > 0 {
		return float64(e.activeIndex)
	}
	return -float64(maxInt(e.stageCount-1-e.activeIndex, 0))
}

func (e *Engine) setState(s State) {
	if e.state == s {
		return
	}
	e.state = s
	e.delegate.StateChanged(s)
}

func (e *Engine) width() float64 {
	if e.hostWidth <= 0 {
		return 1
	}
	return e.hostWidth
}

func signOf(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func clampFloat64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
