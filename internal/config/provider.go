package config

import "sync"

// Provider exposes the current configuration and change notifications.
// Callbacks may run on any goroutine.
type Provider interface {
	Current() Config
	Subscribe(fn func(Config)) Subscription
}

// Subscription is an owned handle to a change callback.
type Subscription interface {
	Unsubscribe()
}

// subscribers is the callback table shared by Static and Loader.
type subscribers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(Config)
}

func (s *subscribers) add(fn func(Config)) Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = make(map[int]func(Config))
	}
	s.next++
	id := s.next
	s.fns[id] = fn
	return &subscription{owner: s, id: id}
}

func (s *subscribers) notify(cfg Config) {
	s.mu.Lock()
	fns := make([]func(Config), 0, len(s.fns))
	for id := 1; id <= s.next; id++ {
		if fn, ok := s.fns[id]; ok {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(cfg)
	}
}

type subscription struct {
	owner *subscribers
	id    int
	once  sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.owner.mu.Lock()
		delete(s.owner.fns, s.id)
		s.owner.mu.Unlock()
	})
}

// Static is an in-memory Provider. Set replaces the configuration and
// notifies subscribers synchronously.
type Static struct {
	mu   sync.RWMutex
	cfg  Config
	subs subscribers
}

// NewStatic returns a Static provider holding cfg.
func NewStatic(cfg Config) *Static {
	return &Static{cfg: cfg}
}

// Current returns a copy of the configuration.
func (s *Static) Current() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Subscribe registers fn for future changes.
func (s *Static) Subscribe(fn func(Config)) Subscription {
	return s.subs.add(fn)
}

// Set replaces the configuration.
func (s *Static) Set(cfg Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	s.subs.notify(cfg)
}

// Update applies fn to a copy of the configuration and stores the result.
func (s *Static) Update(fn func(*Config)) {
	cfg := s.Current()
	fn(&cfg)
	s.Set(cfg)
}
