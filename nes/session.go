// Package nes wires cartridge, bus, and CPU together into a single
// runnable unit. Session is the exclusive owner of the Bus (and, through
// it, of RAM, the PPU register surface, and the cartridge) and the CPU;
// callers drive emulation one Step at a time.
package nes

import (
	"fmt"

	"nescore/bus"
	"nescore/cartridge"
	"nescore/cpu"
)

// ppuTicksPerCPUCycle is the NES's fixed 3:1 PPU-to-CPU clock ratio.
// Session advances a tick counter at this rate so a future rendering
// pipeline can hook scanline timing off it; this core does no rendering
// of its own.
const ppuTicksPerCPUCycle = 3

// Session owns one emulated machine: a cartridge, its Bus, and a CPU.
type Session struct {
	bus *bus.Bus
	cpu *cpu.CPU

	ppuTicks uint64
}

// New builds a Session from an already-loaded cartridge and resets the
// CPU against it, loading PC from the reset vector.
func New(cart *cartridge.Cartridge) (*Session, error) {
	b := bus.New(cart)
	c := cpu.New()
	if err := c.Reset(b); err != nil {
		return nil, fmt.Errorf("nes: reset: %w", err)
	}
	return &Session{bus: b, cpu: c}, nil
}

// NewFromCartridge loads an iNES file from disk and builds a Session over
// it in one call.
func NewFromCartridge(path string) (*Session, error) {
	cart, err := cartridge.Load(path)
	if err != nil {
		return nil, err
	}
	return New(cart)
}

// Bus returns the owned Bus, for diagnostics and for a rendering pipeline
// that needs direct access to the PPU register surface.
func (s *Session) Bus() *bus.Bus { return s.bus }

// CPU returns the owned CPU, primarily for Snapshot/trace access.
func (s *Session) CPU() *cpu.CPU { return s.cpu }

// SetTrace enables or disables instruction tracing on the underlying CPU.
func (s *Session) SetTrace(on bool) { s.cpu.Trace = on }

// LastTrace returns the most recently emitted trace line, if tracing is
// enabled.
func (s *Session) LastTrace() string { return s.cpu.LastTrace() }

// Reset re-runs the CPU reset sequence against the current Bus.
func (s *Session) Reset() error {
	if err := s.cpu.Reset(s.bus); err != nil {
		return fmt.Errorf("nes: reset: %w", err)
	}
	return nil
}

// Step advances the CPU by one Step call and ticks the PPU-side clock at
// the NES's fixed 3:1 ratio. It does not perform any rendering; Tick is
// the seam a future rendering pipeline hooks scanline timing off of.
func (s *Session) Step() error {
	if err := s.cpu.Step(s.bus); err != nil {
		return fmt.Errorf("nes: step: %w", err)
	}
	for i := 0; i < ppuTicksPerCPUCycle; i++ {
		s.Tick()
	}
	return nil
}

// Tick is a narrow, currently no-op hook called once per PPU dot. The
// out-of-scope rendering pipeline is expected to replace or wrap this to
// drive scanline/sprite timing; this core only counts ticks.
func (s *Session) Tick() {
	s.ppuTicks++
}

// IRQ services a maskable interrupt on the owned CPU.
func (s *Session) IRQ() error {
	if err := s.cpu.IRQ(s.bus); err != nil {
		return fmt.Errorf("nes: irq: %w", err)
	}
	return nil
}

// NMI services a non-maskable interrupt on the owned CPU.
func (s *Session) NMI() error {
	if err := s.cpu.NMI(s.bus); err != nil {
		return fmt.Errorf("nes: nmi: %w", err)
	}
	return nil
}

// Cycles returns the total CPU cycle count since the CPU was created;
// Reset does not clear it.
func (s *Session) Cycles() uint64 { return s.cpu.Cycles }
