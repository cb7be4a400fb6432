package api

import (
	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/bfsim/config"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	cfg       config.RunConfig
	simulate  bool
	freq      sim.Freq
	stepLimit uint64
	monitor   *monitoring.Monitor
}

// NewDriverBuilder creates a builder with the default run configuration.
func NewDriverBuilder() DriverBuilder {
	return DriverBuilder{
		cfg:  config.Default(),
		freq: 1 * sim.GHz,
	}
}

// WithConfig sets the run configuration.
func (b DriverBuilder) WithConfig(cfg config.RunConfig) DriverBuilder {
	b.cfg = cfg
	return b
}

// WithSimulation runs programs on an akita engine, one instruction per cycle
// at the given frequency.
func (b DriverBuilder) WithSimulation(freq sim.Freq) DriverBuilder {
	b.simulate = true
	b.freq = freq
	return b
}

// WithMonitor sets the monitor that watches simulated runs.
func (b DriverBuilder) WithMonitor(monitor *monitoring.Monitor) DriverBuilder {
	b.monitor = monitor
	return b
}

// WithStepLimit stops runs after n instructions. Zero means no limit.
func (b DriverBuilder) WithStepLimit(n uint64) DriverBuilder {
	b.stepLimit = n
	return b
}

// Build validates the configuration and creates a driver.
func (b DriverBuilder) Build() (Driver, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	w, err := b.cfg.Width()
	if err != nil {
		return nil, err
	}

	return &driverImpl{
		cfg:       b.cfg,
		width:     w,
		simulate:  b.simulate,
		freq:      b.freq,
		stepLimit: b.stepLimit,
		monitor:   b.monitor,
	}, nil
}
