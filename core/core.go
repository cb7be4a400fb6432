package core

import (
	"github.com/sarchlab/akita/v4/sim"
)

// Core drives a Machine from an akita engine, one instruction per cycle.
type Core[T Cell] struct {
	*sim.TickingComponent

	machine *Machine[T]
	err     error
}

// Start schedules the first tick.
func (c *Core[T]) Start() {
	c.TickLater()
}

// Tick executes one instruction. The core stops ticking once the machine
// halts or fails.
func (c *Core[T]) Tick() (madeProgress bool) {
	if c.err != nil || c.machine.Halted() {
		return false
	}

	if err := c.machine.Step(); err != nil {
		c.err = err
		Trace("CoreFailed",
			"Core", c.Name(),
			"Time", float64(c.Engine.CurrentTime()*1e9),
			"IP", c.machine.IP(),
			"Err", err,
			"State", RenderState(c.machine, 4),
		)

		return false
	}

	if c.machine.Halted() {
		Trace("CoreHalted",
			"Core", c.Name(),
			"Time", float64(c.Engine.CurrentTime()*1e9),
			"Steps", c.machine.Steps(),
		)

		return false
	}

	return true
}

// Err returns the error that stopped the core, if any.
func (c *Core[T]) Err() error {
	return c.err
}

// Machine returns the machine driven by the core.
func (c *Core[T]) Machine() *Machine[T] {
	return c.machine
}
