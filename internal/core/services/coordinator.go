package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
	"github.com/custodia-labs/feedsearch/internal/core/ports/driving"
	"github.com/custodia-labs/feedsearch/internal/logger"
)

// Ensure Coordinator implements the interface.
var _ driving.OverlayService = (*Coordinator)(nil)

// ErrCoordinatorClosed is returned by Resolve after Close.
var ErrCoordinatorClosed = errors.New("coordinator closed")

// CoordinatorConfig tunes the coordinator's timing.
type CoordinatorConfig struct {
	// Debounce is how long input must stay quiet before a query resolves.
	Debounce time.Duration

	// RequestTimeout bounds a single feed request.
	RequestTimeout time.Duration
}

// DefaultCoordinatorConfig returns the default timings.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		Debounce:       domain.DefaultDebounce,
		RequestTimeout: domain.DefaultTimeout,
	}
}

// Coordinator turns keystrokes into at most one committed session per
// quiet period. Every accepted input takes a new token; a resolution
// only commits while its token is still the latest.
type Coordinator struct {
	resolver *Resolver
	cfg      CoordinatorConfig

	mu        sync.Mutex
	token     uint64
	state     domain.SessionState
	timer     *time.Timer
	cancel    context.CancelFunc
	active    *Session
	closed    bool
	listeners map[int]func(driving.QuerySession)
	nextID    int

	// emitMu keeps listener calls serial.
	emitMu sync.Mutex

	base       context.Context
	baseCancel context.CancelFunc
}

// NewCoordinator creates a coordinator resolving through resolver.
// A zero Debounce fires on the next timer tick; a non-positive
// RequestTimeout uses the default.
func NewCoordinator(resolver *Resolver, cfg CoordinatorConfig) *Coordinator {
	if cfg.Debounce < 0 {
		cfg.Debounce = domain.DefaultDebounce
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = domain.DefaultTimeout
	}
	base, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		resolver:   resolver,
		cfg:        cfg,
		state:      domain.StateIdle,
		listeners:  make(map[int]func(driving.QuerySession)),
		base:       base,
		baseCancel: cancel,
	}
}

// OnInput reports the current input text.
// Input shorter than domain.MinQueryLength is ignored and leaves the
// active session in place.
func (c *Coordinator) OnInput(raw string) {
	query, err := domain.ParseQuery(raw)
	if err != nil {
		logger.Debug("Ignoring input %q: %v", raw, err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.token++
	token := c.token
	c.state = domain.StateDebouncing
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.cfg.Debounce, func() {
		ctx, ok := c.begin(c.base, token)
		if !ok {
			logger.Debug("Debounced %q superseded before resolving", query)
			return
		}
		_, _ = c.resolve(ctx, token, query)
	})
}

// Resolve runs query immediately, superseding any pending or in-flight
// session. Returns domain.ErrStaleResult if a newer query won the race.
// Must not be called from a Subscribe listener.
func (c *Coordinator) Resolve(ctx context.Context, raw string) (driving.QuerySession, error) {
	query, err := domain.ParseQuery(raw)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrCoordinatorClosed
	}
	c.token++
	token := c.token
	if c.timer != nil {
		c.timer.Stop()
	}
	c.mu.Unlock()

	rctx, ok := c.begin(ctx, token)
	if !ok {
		return nil, domain.ErrStaleResult
	}
	s, err := c.resolve(rctx, token, query)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// begin moves to StateResolving for token and cancels the previous
// in-flight request. Returns false if token is no longer current.
func (c *Coordinator) begin(parent context.Context, token uint64) (context.Context, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || token != c.token {
		return nil, false
	}
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithTimeout(parent, c.cfg.RequestTimeout)
	c.cancel = cancel
	c.state = domain.StateResolving
	return ctx, true
}

// current reports whether token is still the latest.
func (c *Coordinator) current(token uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed && token == c.token
}

func (c *Coordinator) resolve(ctx context.Context, token uint64, query domain.Query) (*Session, error) {
	res := domain.Resolution{
		Token: token,
		ID:    uuid.NewString(),
		Query: query,
	}
	logger.Debug("Session %s: resolving %q (token %d)", res.ID, query, token)

	if rs, ok := c.resolver.cache.Get(ctx, query); ok {
		res.Results = rs
		res.Status = domain.StatusFor(rs)
		res.FromCache = true
		return c.commit(res)
	}

	rs, err := c.resolver.fetch(ctx, query)
	if !c.current(token) {
		return nil, c.discard(res)
	}
	if err != nil {
		logger.Warn("Search for %q failed: %v", query, err)
		res.Results = domain.ResultSet{}
		res.Status = domain.StatusFailed
		res.Err = err
		return c.commit(res)
	}

	c.resolver.cache.Put(context.WithoutCancel(ctx), query, rs)
	res.Results = rs
	res.Status = domain.StatusFor(rs)
	return c.commit(res)
}

func (c *Coordinator) discard(res domain.Resolution) error {
	logger.Debug("Session %s: discarding %q: %v", res.ID, res.Query, domain.ErrStaleResult)
	return domain.ErrStaleResult
}

// commit makes res the active session if its token is still current.
func (c *Coordinator) commit(res domain.Resolution) (*Session, error) {
	c.mu.Lock()
	if c.closed || res.Token != c.token {
		c.mu.Unlock()
		return nil, c.discard(res)
	}
	s := NewSession(res)
	c.active = s
	c.state = domain.StateResolved
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()

	logger.Info("Session %s: %q %s with %d results", res.ID, res.Query, res.Status, res.Results.Len())
	c.emit(s)
	return s, nil
}

// emit notifies listeners unless s was superseded while waiting its turn.
func (c *Coordinator) emit(s *Session) {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	c.mu.Lock()
	if c.active != s {
		c.mu.Unlock()
		return
	}
	fns := make([]func(driving.QuerySession), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

// Subscribe registers fn to receive committed sessions.
func (c *Coordinator) Subscribe(fn func(driving.QuerySession)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.listeners, id)
		})
	}
}

// Active returns the committed session, or nil before the first commit.
func (c *Coordinator) Active() driving.QuerySession {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return nil
	}
	return c.active
}

// State returns the current state.
func (c *Coordinator) State() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close stops the debounce timer and cancels any in-flight request.
// Results arriving afterwards are discarded.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.baseCancel()
}
