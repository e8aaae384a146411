package server

import (
	"errors"
	"sync"

	"github.com/ftahirops/mtop/engine"
)

var errNoDataset = errors.New("no dataset loaded")

// store holds the single active dataset. A new upload replaces it.
type store struct {
	mu  sync.RWMutex
	eng *engine.Engine
}

func (s *store) set(eng *engine.Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eng = eng
}

func (s *store) get() (*engine.Engine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.eng == nil {
		return nil, errNoDataset
	}
	return s.eng, nil
}
