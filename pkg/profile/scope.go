package profile

import "sync"

// Scope pairs a Start with a guaranteed Stop. Obtain one from StartScope and
// release it with End, typically via defer, so the stop runs on every exit
// path including panics.
type Scope struct {
	p    *Profiler
	name string
	once sync.Once
}

// StartScope starts timing the named action and returns a scope whose End
// stops it. Fails with ErrAlreadyStarted like Start.
func (p *Profiler) StartScope(name string) (*Scope, error) {
	if err := p.Start(name); err != nil {
		return nil, err
	}
	return &Scope{p: p, name: name}, nil
}

// End stops the scope's action. Only the first call stops; later calls are
// no-ops, so a deferred End after an explicit one is harmless.
func (s *Scope) End() {
	s.once.Do(func() {
		// The action was active when the scope was created and nothing
		// else may stop it, so the error is ignored.
		s.p.Stop(s.name)
	})
}

// Do runs fn with the named action timed around it. The stop is deferred, so
// it runs on normal return, on error, and when fn panics; fn's error or panic
// propagates unchanged.
func (p *Profiler) Do(name string, fn func() error) error {
	scope, err := p.StartScope(name)
	if err != nil {
		return err
	}
	defer scope.End()
	return fn()
}

// Wrap returns fn instrumented under the given action name. Each invocation
// of the returned function is one timed cycle.
func (p *Profiler) Wrap(name string, fn func() error) func() error {
	return func() error {
		return p.Do(name, fn)
	}
}
