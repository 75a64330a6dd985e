package gesture

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Indicator fade timing.
const (
	indicatorFadeIn   = 0.15 // s
	indicatorFadeOut  = 0.40 // s
	indicatorLingerAt = 1.0  // alpha held while a gesture is live
)

// Indicator models the stage-dots overlay shown during navigation. It
// wraps the host's delegate, tracking the visual offset and fading the
// overlay in while a gesture or settle is live and out after the commit.
// Rendering is position-driven only; velocity never reaches it.
type Indicator struct {
	inner Delegate

	offset float64
	index  int
	alpha  float64
	fade   *gween.Tween
}

// NewIndicator wraps inner, which may be nil when the host only wants
// the overlay state.
func NewIndicator(inner Delegate) *Indicator {
	return &Indicator{inner: inner}
}

// Offset returns the latest visual offset in stage steps.
func (in *Indicator) Offset() float64 { return in.offset }

// Index returns the latest committed stage index.
func (in *Indicator) Index() int { return in.index }

// Alpha returns the overlay opacity in [0, 1].
func (in *Indicator) Alpha() float64 { return in.alpha }

// Tick advances the fade animation by dt seconds.
func (in *Indicator) Tick(dt float64) {
	if in.fade == nil {
		return
	}
	current, finished := in.fade.Update(float32(dt))
	in.alpha = float64(current)
	if finished {
		in.fade = nil
	}
}

// OffsetChanged implements Delegate.
func (in *Indicator) OffsetChanged(offset float64) {
	in.offset = offset
	if in.inner != nil {
		in.inner.OffsetChanged(offset)
	}
}

// IndexCommitted implements Delegate.
func (in *Indicator) IndexCommitted(index int) {
	in.index = index
	if in.inner != nil {
		in.inner.IndexCommitted(index)
	}
}

// StateChanged implements Delegate.
func (in *Indicator) StateChanged(state State) {
	switch state {
	case StateGesturing, StateBubbling, StateSettling:
		if in.alpha < indicatorLingerAt {
			in.fade = gween.New(float32(in.alpha), indicatorLingerAt, indicatorFadeIn, ease.OutQuad)
		}
	case StateIdle:
		in.fade = gween.New(float32(in.alpha), 0, indicatorFadeOut, ease.InQuad)
	}
	if in.inner != nil {
		in.inner.StateChanged(state)
	}
}
