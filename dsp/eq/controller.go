package eq

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cwbudde/algo-eq/dsp/spectrum"
	"github.com/cwbudde/algo-eq/param"
)

const (
	defaultRefreshRate = 60.0
	defaultCurvePoints = 512
)

// CurveFunc receives a freshly sampled response curve. freqs and db are
// reused by the controller and only valid during the call.
type CurveFunc func(freqs, db []float64)

// ControllerOption configures a [Controller].
type ControllerOption func(*controllerConfig) error

type controllerConfig struct {
	logger      *log.Logger
	refreshRate float64
	curvePoints int
	onUpdate    CurveFunc
}

// WithLogger sets the logger for design failures (default log.Default()).
func WithLogger(l *log.Logger) ControllerOption {
	return func(cfg *controllerConfig) error {
		if l != nil {
			cfg.logger = l
		}

		return nil
	}
}

// WithRefreshRate sets how often, in Hz, the controller checks for changes
// (default 60).
func WithRefreshRate(hz float64) ControllerOption {
	return func(cfg *controllerConfig) error {
		if !(hz > 0) || hz > 1000 {
			return fmt.Errorf("eq: refresh rate must be in (0, 1000] Hz: %v", hz)
		}

		cfg.refreshRate = hz

		return nil
	}
}

// WithCurvePoints sets the number of log-spaced points passed to the
// OnUpdate callback (default 512).
func WithCurvePoints(n int) ControllerOption {
	return func(cfg *controllerConfig) error {
		if n < 2 {
			return fmt.Errorf("eq: curve needs at least 2 points: %d", n)
		}

		cfg.curvePoints = n

		return nil
	}
}

// OnUpdate sets a callback that receives the response curve after every
// coefficient update.
func OnUpdate(fn CurveFunc) ControllerOption {
	return func(cfg *controllerConfig) error {
		cfg.onUpdate = fn
		return nil
	}
}

// Controller is the control-rate side of the equalizer. It watches a
// parameter store, and on each tick where something changed it reads a
// settings snapshot and updates the processor.
type Controller struct {
	store    *param.Store
	proc     *Processor
	changed  ChangeFlag
	logger   *log.Logger
	interval time.Duration
	onUpdate CurveFunc

	sampler *Sampler
	freqs   []float64
	curve   []float64
}

// NewController returns a controller that drives proc from store.
func NewController(store *param.Store, proc *Processor, opts ...ControllerOption) (*Controller, error) {
	if store == nil || proc == nil {
		return nil, ErrNilSource
	}

	cfg := controllerConfig{
		logger:      log.Default(),
		refreshRate: defaultRefreshRate,
		curvePoints: defaultCurvePoints,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	c := &Controller{
		store:    store,
		proc:     proc,
		logger:   cfg.logger,
		interval: time.Duration(float64(time.Second) / cfg.refreshRate),
		onUpdate: cfg.onUpdate,
	}

	if c.onUpdate != nil {
		c.sampler = NewSampler(proc.Left())
		c.freqs = spectrum.LogFrequencies(cfg.curvePoints, spectrum.MinDisplayHz, spectrum.MaxDisplayHz)
		c.curve = make([]float64, cfg.curvePoints)
	}

	// The first tick always publishes the store's current values.
	c.changed.Set()

	return c, nil
}

// Changed returns the flag set by parameter changes.
func (c *Controller) Changed() *ChangeFlag {
	return &c.changed
}

// Tick runs one control step: when a change is pending it recomputes the
// coefficients and reports true.
func (c *Controller) Tick() bool {
	if !c.changed.CheckAndClear() {
		return false
	}

	s := SettingsFrom(c.store)
	if err := c.proc.Update(s); err != nil {
		c.logger.Printf("eq: update failed: %v", err)
		return false
	}

	if c.onUpdate != nil && c.proc.Active() {
		sr := c.proc.Config().SampleRate
		c.curve = c.sampler.MagnitudeDBInto(c.curve, c.freqs, sr)
		c.onUpdate(c.freqs, c.curve)
	}

	return true
}

// Run subscribes to the store and ticks at the refresh rate until ctx is
// cancelled.
func (c *Controller) Run(ctx context.Context) error {
	cancel := c.store.Listen(func(string, float64) { c.changed.Set() })
	defer cancel()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.Tick()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.Tick()
		}
	}
}
