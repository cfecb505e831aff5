package generator

import (
	"context"
	"sync"
)

// Session owns one generator wizard. Collection progress may arrive from worker goroutines.
type Session struct {
	mu        sync.Mutex
	state     State
	collector *Collector

	// OnChange is called after every state change, outside the session lock
	OnChange func(State)
}

func NewSession(state State, lister ArrivalLister, workers int) *Session {
	return &Session{
		state: state,
		collector: &Collector{
			Lister:  lister,
			Workers: workers,
		},
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Session) apply(event Event) []Effect {
	s.mu.Lock()
	var effects []Effect
	s.state, effects = Update(s.state, event)
	state := s.state
	s.mu.Unlock()

	if s.OnChange != nil {
		s.OnChange(state)
	}

	return effects
}

// Dispatch applies event and runs the effects it produces. Collection blocks until every request has finished.
func (s *Session) Dispatch(ctx context.Context, event Event) State {
	for _, effect := range s.apply(event) {
		switch effect := effect.(type) {
		case Collect:
			result := s.collector.Collect(ctx, effect.Group, effect.Days, func(percent int) {
				s.apply(ProgressReported{Percent: percent})
			})

			s.apply(Collected{Result: result})
		}
	}

	return s.State()
}
