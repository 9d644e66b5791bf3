// Package pullup implements the state and interaction core of the reader's
// sliding bottom panel: a reducer-driven state store, a snap-point resolver,
// a drag tracker, and a responsive persistence controller.
package pullup

import "sync"

// Tab identifies which content view the panel renders.
type Tab string

const (
	TabNotes    Tab = "notes"
	TabQuotes   Tab = "quotes"
	TabSettings Tab = "settings"
	TabSearch   Tab = "search"
)

// Tabs lists the panel tabs in display order.
var Tabs = []Tab{TabNotes, TabQuotes, TabSettings, TabSearch}

// Config bounds the panel geometry and the persistent-mode breakpoint. The
// zero value picks the defaults; units are whatever the host surface measures
// heights in (pixels on a web canvas, rows in a terminal).
type Config struct {
	MinHeight            int
	MaxHeight            int
	PersistentBreakpoint int
}

const (
	DefaultMinHeight            = 100
	DefaultMaxHeight            = 600
	DefaultPersistentBreakpoint = 1024
)

func (c Config) normalized() Config {
	if c.MinHeight <= 0 {
		c.MinHeight = DefaultMinHeight
	}
	if c.MaxHeight <= 0 {
		c.MaxHeight = DefaultMaxHeight
	}
	if c.MaxHeight < c.MinHeight {
		c.MaxHeight = c.MinHeight
	}
	if c.PersistentBreakpoint <= 0 {
		c.PersistentBreakpoint = DefaultPersistentBreakpoint
	}
	return c
}

// SnapPoints derives the three snap heights from the configured bounds.
func (c Config) SnapPoints() SnapPoints {
	c = c.normalized()
	return SnapPoints{
		Collapsed: c.MinHeight,
		Half:      (c.MinHeight + c.MaxHeight) / 2,
		Full:      c.MaxHeight,
	}
}

func (c Config) clampHeight(h int) int {
	if h < c.MinHeight {
		return c.MinHeight
	}
	if h > c.MaxHeight {
		return c.MaxHeight
	}
	return h
}

// State is the panel's complete UI state. Persistent implies Open at all
// times; the reducer enforces that on every transition.
type State struct {
	Open       bool
	ActiveTab  Tab
	Height     int
	Persistent bool
}

type actionKind int

const (
	actionOpen actionKind = iota
	actionClose
	actionSetActiveTab
	actionSetHeight
	actionSetPersistent
)

// Action is one element of the closed transition set the store reduces over.
// Construct actions through the Store methods rather than by hand.
type Action struct {
	kind       actionKind
	tab        Tab
	height     int
	persistent bool
}

// Store owns the panel state. All mutation goes through Dispatch; every
// transition is synchronous and total, and dispatch order is the only
// ordering guarantee consumers get.
type Store struct {
	mu      sync.Mutex
	cfg     Config
	state   State
	subs    map[int]func(State)
	nextSub int
}

// NewStore returns a closed panel on the notes tab at minimum height.
func NewStore(cfg Config) *Store {
	cfg = cfg.normalized()
	return &Store{
		cfg: cfg,
		state: State{
			ActiveTab: TabNotes,
			Height:    cfg.MinHeight,
		},
		subs: map[int]func(State){},
	}
}

// State returns a snapshot of the current panel state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Config returns the store's normalized configuration.
func (s *Store) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// SnapPoints returns the snap heights for the current bounds.
func (s *Store) SnapPoints() SnapPoints {
	return s.Config().SnapPoints()
}

// SetBounds reconfigures the height range, re-clamping the current height so
// the bounds invariant keeps holding. Snap points derive from the new bounds.
func (s *Store) SetBounds(min, max int) {
	s.mu.Lock()
	s.cfg.MinHeight = min
	s.cfg.MaxHeight = max
	s.cfg = s.cfg.normalized()
	prev := s.state
	s.state.Height = s.cfg.clampHeight(s.state.Height)
	changed := s.state != prev
	state := s.state
	subs := s.subscribers()
	s.mu.Unlock()
	if changed {
		notify(subs, state)
	}
}

// Subscribe registers fn to run after every state change, in dispatch order.
// The returned cancel func removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Dispatch applies a single action. Invalid requests (closing a persistent
// panel) reduce to the unchanged state rather than erroring.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	prev := s.state
	s.state = reduce(prev, a, s.cfg)
	changed := s.state != prev
	state := s.state
	subs := s.subscribers()
	s.mu.Unlock()
	if changed {
		notify(subs, state)
	}
}

func (s *Store) subscribers() []func(State) {
	out := make([]func(State), 0, len(s.subs))
	for id := 0; id < s.nextSub; id++ {
		if fn, ok := s.subs[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(subs []func(State), state State) {
	for _, fn := range subs {
		fn(state)
	}
}

// Open reveals the panel. A non-empty tab also switches the active view.
func (s *Store) Open(tab Tab) {
	s.Dispatch(Action{kind: actionOpen, tab: tab})
}

// Close hides the panel. While persistent this is a silent no-op: close
// requests are dropped by policy, not rejected as errors.
func (s *Store) Close() {
	s.Dispatch(Action{kind: actionClose})
}

// Toggle opens a closed panel and closes an open one, subject to the same
// persistent-mode policy as Close.
func (s *Store) Toggle() {
	if s.State().Open {
		s.Close()
		return
	}
	s.Open("")
}

// SetActiveTab switches the content view. Selecting a tab always reveals the
// panel.
func (s *Store) SetActiveTab(tab Tab) {
	s.Dispatch(Action{kind: actionSetActiveTab, tab: tab})
}

// SetHeight commits a panel height, clamped to the configured bounds.
func (s *Store) SetHeight(h int) {
	s.Dispatch(Action{kind: actionSetHeight, height: h})
}

// SetPersistent flips persistent mode. Entering it forces the panel open;
// leaving it keeps whatever open state the panel had.
func (s *Store) SetPersistent(flag bool) {
	s.Dispatch(Action{kind: actionSetPersistent, persistent: flag})
}

func reduce(state State, a Action, cfg Config) State {
	switch a.kind {
	case actionOpen:
		state.Open = true
		if a.tab != "" {
			state.ActiveTab = a.tab
		}
	case actionClose:
		if !state.Persistent {
			state.Open = false
		}
	case actionSetActiveTab:
		state.ActiveTab = a.tab
		state.Open = true
	case actionSetHeight:
		state.Height = cfg.clampHeight(a.height)
	case actionSetPersistent:
		state.Persistent = a.persistent
	}
	if state.Persistent {
		state.Open = true
	}
	return state
}
