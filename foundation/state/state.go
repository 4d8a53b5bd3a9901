// Package state tracks which optional downstream services are still
// healthy. Operations flip a service off after a hard failure so the rest
// of the pipeline keeps running without it.
package state

import "sync"

type Service int

const (
	Animator Service = iota
	Redis
	Emotion
)

type State struct {
	sync.RWMutex

	Animator bool
	Redis    bool
	Emotion  bool
}

func NewState() *State {
	return &State{
		Animator: true,
		Redis:    true,
		Emotion:  true,
	}
}

func (s *State) Get(svc Service) bool {
	s.RLock()
	defer s.RUnlock()
	{
		switch svc {
		case Animator:
			return s.Animator

		case Redis:
			return s.Redis

		case Emotion:
			return s.Emotion
		}
	}
	return false
}

func (s *State) Set(svc Service, state bool) {
	s.Lock()
	defer s.Unlock()
	{
		switch svc {
		case Animator:
			s.Animator = state

		case Redis:
			s.Redis = state

		case Emotion:
			s.Emotion = state
		}
	}
}
