package param

import (
	"fmt"
	"math"
	"sync"
)

// Listener is called after a parameter value changes. It runs on the
// goroutine that performed the write and must not block.
type Listener func(id string, value float64)

// Store is a fixed set of parameters addressed by ID.
type Store struct {
	params map[string]*Parameter
	order  []string

	mu        sync.RWMutex
	listeners map[int]Listener
	nextID    int
}

// NewStore returns a store holding params in the given order.
func NewStore(params ...*Parameter) (*Store, error) {
	s := &Store{
		params:    make(map[string]*Parameter, len(params)),
		order:     make([]string, 0, len(params)),
		listeners: make(map[int]Listener),
	}

	for _, p := range params {
		if _, exists := s.params[p.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateParameter, p.ID)
		}

		s.params[p.ID] = p
		s.order = append(s.order, p.ID)
	}

	return s, nil
}

// Lookup returns the parameter with the given ID.
func (s *Store) Lookup(id string) (*Parameter, bool) {
	p, ok := s.params[id]
	return p, ok
}

// Params returns the parameters in layout order.
func (s *Store) Params() []*Parameter {
	out := make([]*Parameter, len(s.order))
	for i, id := range s.order {
		out[i] = s.params[id]
	}

	return out
}

// Value returns the plain value of id, or NaN for an unknown ID.
func (s *Store) Value(id string) float64 {
	p, ok := s.params[id]
	if !ok {
		return math.NaN()
	}

	return p.Value()
}

// Set stores a plain value, clamped and quantized, and notifies listeners
// when it changed.
func (s *Store) Set(id string, v float64) error {
	p, ok := s.params[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}

	if math.IsNaN(v) {
		return fmt.Errorf("%w: NaN for %s", ErrInvalidValue, id)
	}

	if stored, changed := p.store(v); changed {
		s.notify(id, stored)
	}

	return nil
}

// SetNormalized stores the plain value corresponding to n in [0, 1]. Values
// outside that range are clamped.
func (s *Store) SetNormalized(id string, n float64) error {
	p, ok := s.params[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}

	if math.IsNaN(n) {
		return fmt.Errorf("%w: NaN for %s", ErrInvalidValue, id)
	}

	return s.Set(id, p.Denormalize(n))
}

// SetString parses text with the parameter's format and stores it.
func (s *Store) SetString(id, text string) error {
	p, ok := s.params[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}

	v, err := p.Parse(text)
	if err != nil {
		return err
	}

	return s.Set(id, v)
}

// Reset restores every parameter to its default.
func (s *Store) Reset() {
	for _, id := range s.order {
		p := s.params[id]
		if stored, changed := p.store(p.Default); changed {
			s.notify(id, stored)
		}
	}
}

// Snapshot returns the current plain values keyed by ID.
func (s *Store) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(s.order))
	for _, id := range s.order {
		out[id] = s.params[id].Value()
	}

	return out
}

// Restore sets every value present in values. Unknown IDs are skipped and
// reported in the returned error after the known ones are applied.
func (s *Store) Restore(values map[string]float64) error {
	var unknown []string

	for id, v := range values {
		if _, ok := s.params[id]; !ok {
			unknown = append(unknown, id)
			continue
		}

		if err := s.Set(id, v); err != nil {
			return err
		}
	}

	if len(unknown) > 0 {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, unknown)
	}

	return nil
}

// Listen registers fn for change notifications. The returned function
// removes it.
func (s *Store) Listen(fn Listener) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(id string, v float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, fn := range s.listeners {
		fn(id, v)
	}
}
