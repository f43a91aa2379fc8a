package server

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/alexanderramin/coach/internal/assistant"
	"github.com/alexanderramin/coach/internal/scheduler"
)

// ClockFunc builds the scheduler for one session. lock is the session mutex;
// scheduled tasks must run while holding it.
type ClockFunc func(lock sync.Locker) scheduler.Scheduler

func realtimeClock(lock sync.Locker) scheduler.Scheduler {
	return scheduler.NewRealtime(lock)
}

// liveSession pairs a session with the mutex that serializes requests and
// deliveries.
type liveSession struct {
	mu    sync.Mutex
	sess  *assistant.Session
	clock scheduler.Scheduler
}

func (l *liveSession) do(fn func(s *assistant.Session) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(l.sess)
}

// stop cancels pending deliveries. It must not be called holding l.mu.
func (l *liveSession) stop() {
	if c, ok := l.clock.(interface{ Close() }); ok {
		c.Close()
	}
}

// Registry holds live sessions with idle expiry.
type Registry struct {
	cache   *cache.Cache
	factory *assistant.Factory
	clock   ClockFunc
	logger  *zap.Logger
}

func NewRegistry(factory *assistant.Factory, ttl time.Duration, clock ClockFunc, logger *zap.Logger) *Registry {
	if clock == nil {
		clock = realtimeClock
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	expiry, cleanup := ttl, 10*time.Minute
	if ttl <= 0 {
		expiry, cleanup = cache.NoExpiration, 0
	} else if ttl < cleanup {
		cleanup = ttl
	}
	r := &Registry{
		cache:   cache.New(expiry, cleanup),
		factory: factory,
		clock:   clock,
		logger:  logger,
	}
	r.cache.OnEvicted(func(id string, v interface{}) {
		v.(*liveSession).stop()
		r.logger.Debug("session evicted", zap.String("session_id", id))
	})
	return r
}

// Create starts a new session and registers it.
func (r *Registry) Create(ctx context.Context) (*liveSession, error) {
	ls := &liveSession{}
	ls.clock = r.clock(&ls.mu)
	sess, err := r.factory.New(ctx, ls.clock)
	if err != nil {
		ls.stop()
		return nil, err
	}
	ls.sess = sess
	r.cache.Set(sess.ID(), ls, cache.DefaultExpiration)
	return ls, nil
}

// Get returns the session and extends its idle expiry.
func (r *Registry) Get(id string) (*liveSession, bool) {
	x, found := r.cache.Get(id)
	if !found {
		return nil, false
	}
	ls := x.(*liveSession)
	r.cache.Set(id, ls, cache.DefaultExpiration)
	return ls, true
}

// Delete stops and removes a session.
func (r *Registry) Delete(id string) bool {
	if _, found := r.cache.Get(id); !found {
		return false
	}
	r.cache.Delete(id)
	return true
}

func (r *Registry) Len() int {
	return r.cache.ItemCount()
}

// Close stops every session.
func (r *Registry) Close() {
	for id := range r.cache.Items() {
		r.cache.Delete(id)
	}
}
