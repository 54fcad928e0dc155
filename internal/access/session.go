package access

import (
	"sync"
)

// Session holds the active subscription plan for the running process.
// A plan change replaces the value atomically; readers never observe a
// partially-applied transition.
type Session struct {
	mu   sync.RWMutex
	plan Plan
}

// NewSession creates a Session starting on the given plan.
func NewSession(initial Plan) *Session {
	return &Session{plan: initial}
}

// Current returns the active plan.
func (s *Session) Current() Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plan
}

// Subscribe switches the session to the named plan. Unknown plans are
// rejected and leave the current plan untouched.
func (s *Session) Subscribe(plan string) (Plan, error) {
	p, err := ParsePlan(plan)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.plan = p
	s.mu.Unlock()
	return p, nil
}
