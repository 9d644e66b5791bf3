package pullup

// ViewportSource exposes the host viewport to the persistence controller:
// a current width plus a resize subscription whose cancel func detaches the
// listener. Injecting the source keeps the controller testable without a
// real display surface.
type ViewportSource interface {
	Width() int
	OnResize(fn func(width int)) (cancel func())
}

// Controller forces the panel into persistent mode whenever the viewport is
// at least as wide as the configured breakpoint. It is the sole writer of
// the Persistent flag; everything else only reads it.
type Controller struct {
	breakpoint int
	store      *Store
	cancel     func()
}

// NewController builds a controller around the store's breakpoint. A
// non-positive breakpoint falls back to the store configuration.
func NewController(breakpoint int, store *Store) *Controller {
	if breakpoint <= 0 {
		breakpoint = store.Config().PersistentBreakpoint
	}
	return &Controller{breakpoint: breakpoint, store: store}
}

// Bind observes the current width immediately, then follows every resize
// until Close. Binding twice replaces the previous subscription.
func (c *Controller) Bind(src ViewportSource) {
	c.Close()
	c.Observe(src.Width())
	c.cancel = src.OnResize(c.Observe)
}

// Observe dispatches SET_PERSISTENT when the computed flag differs from the
// current state. Equal flags dispatch nothing, so observers can feed every
// resize event through without churning subscribers.
func (c *Controller) Observe(width int) {
	flag := width >= c.breakpoint
	if flag == c.store.State().Persistent {
		return
	}
	c.store.SetPersistent(flag)
}

// Close detaches the resize listener. Safe to call repeatedly.
func (c *Controller) Close() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
