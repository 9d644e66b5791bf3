package pullup

import "time"

// DefaultDoubleTapWindow is how close together two taps on the handle must
// land to count as a double tap.
const DefaultDoubleTapWindow = 300 * time.Millisecond

// TrackerConfig wires a drag tracker to its host surface. OnLive fires on
// every pointer move with the raw clamped height so the panel can follow the
// pointer without a store round trip; OnCommit fires once per gesture with
// the settled height.
type TrackerConfig struct {
	Bounds          Config
	Snapping        bool
	DoubleTapWindow time.Duration
	Now             func() time.Time
	OnLive          func(height int)
	OnCommit        func(height int)
}

// Tracker turns pointer press/move/release sequences into panel heights. It
// is a two-state machine: idle until a press on the handle, dragging until
// the matching release. Taps on the handle cycle the snap points when they
// arrive inside the double-tap window.
type Tracker struct {
	cfg      Config
	snaps    SnapPoints
	snapping bool
	window   time.Duration
	now      func() time.Time
	onLive   func(int)
	onCommit func(int)

	dragging bool
	moved    bool
	live     int
	lastTap  time.Time
}

// NewTracker builds a tracker in the idle state.
func NewTracker(tc TrackerConfig) *Tracker {
	cfg := tc.Bounds.normalized()
	window := tc.DoubleTapWindow
	if window <= 0 {
		window = DefaultDoubleTapWindow
	}
	now := tc.Now
	if now == nil {
		now = time.Now
	}
	return &Tracker{
		cfg:      cfg,
		snaps:    cfg.SnapPoints(),
		snapping: tc.Snapping,
		window:   window,
		now:      now,
		onLive:   tc.OnLive,
		onCommit: tc.OnCommit,
		live:     cfg.MinHeight,
	}
}

// SetHeight aligns the tracker with a height committed elsewhere (keyboard
// shortcuts, restored sessions) so tap cycling starts from the right point.
func (t *Tracker) SetHeight(h int) {
	if t.dragging {
		return
	}
	t.live = t.cfg.clampHeight(h)
}

// SetBounds follows a store bounds change so live heights clamp to the same
// range the store will.
func (t *Tracker) SetBounds(cfg Config) {
	t.cfg = cfg.normalized()
	t.snaps = t.cfg.SnapPoints()
	t.live = t.cfg.clampHeight(t.live)
}

// Dragging reports whether a gesture is in flight.
func (t *Tracker) Dragging() bool {
	return t.dragging
}

// Press starts a gesture from a pointer-down on the handle. The initial live
// height comes from the same formula moves use, so a press with no movement
// still has a height to commit.
func (t *Tracker) Press(pointerY, viewportHeight int) {
	t.dragging = true
	t.moved = false
	t.live = t.cfg.clampHeight(viewportHeight - pointerY)
}

// Move recomputes the live height while dragging. No snapping happens here;
// the panel tracks the pointer exactly until release.
func (t *Tracker) Move(pointerY, viewportHeight int) {
	if !t.dragging {
		return
	}
	t.moved = true
	t.live = t.cfg.clampHeight(viewportHeight - pointerY)
	if t.onLive != nil {
		t.onLive(t.live)
	}
}

// Release ends the gesture and commits. A drag commits the live height,
// snapped when snapping is enabled. A release without movement is a tap: it
// still commits, and a second tap inside the window cycles the snap points
// instead.
func (t *Tracker) Release() {
	if !t.dragging {
		return
	}
	t.dragging = false
	if t.moved {
		t.commit(t.settle(t.live))
		return
	}
	t.Tap()
}

// Tap registers a tap on the handle. The first tap of a pair commits the
// current height (a legitimate, possibly snapping commit); a tap landing
// within the double-tap window of the previous one cycles the committed
// height collapsed, half, full and around again. Every tap resets the window
// reference point, so a third quick tap chains a second cycle.
func (t *Tracker) Tap() {
	now := t.now()
	within := !t.lastTap.IsZero() && now.Sub(t.lastTap) <= t.window
	t.lastTap = now
	if within {
		next := t.snaps.next(t.live)
		t.live = next
		t.commit(next)
		return
	}
	t.commit(t.settle(t.live))
}

// Cancel drops any in-flight gesture and pending tap reference without
// committing. Used on teardown.
func (t *Tracker) Cancel() {
	t.dragging = false
	t.moved = false
	t.lastTap = time.Time{}
}

func (t *Tracker) settle(h int) int {
	if t.snapping {
		return Resolve(h, t.snaps)
	}
	return h
}

func (t *Tracker) commit(h int) {
	t.live = h
	if t.onCommit != nil {
		t.onCommit(h)
	}
}
