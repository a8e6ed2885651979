// Package bus implements the NES CPU address decoder: 2KiB system RAM
// mirrored across 0x0000-0x1FFF, the PPU register window at 0x2000-0x3FFF,
// the OAM DMA port at 0x4014, and the cartridge PRG ROM window at
// 0x8000-0xFFFF. The Bus is the sole owner of RAM, the PPU register
// surface, and the cartridge; the CPU receives it as a parameter on every
// call and never holds a reference of its own.
package bus

import (
	"errors"
	"fmt"

	"nescore/cartridge"
	"nescore/ppu"
)

const ramSize = 2048

// ErrWriteToROM is returned when guest code writes into the PRG ROM
// window; this core implements no mapper registers to catch such a write.
var ErrWriteToROM = errors.New("bus: write to PRG ROM")

// ErrReadWriteOnly is re-exported from ppu so callers only need to import
// bus to check for it.
var ErrReadWriteOnly = ppu.ErrReadWriteOnly

// Bus connects CPU-visible address space to RAM, the PPU register
// surface, and the cartridge.
type Bus struct {
	ram  [ramSize]byte
	ppu  *ppu.Registers
	cart *cartridge.Cartridge
}

// New builds a Bus over an already-loaded cartridge.
func New(cart *cartridge.Cartridge) *Bus {
	return &Bus{
		ppu:  ppu.New(cart.CHR(), cart.Mirroring()),
		cart: cart,
	}
}

// PPU returns the owned PPU register surface, for the driver to tick the
// rendering pipeline against.
func (b *Bus) PPU() *ppu.Registers { return b.ppu }

// Read services a CPU-initiated read. Unmapped regions return 0.
func (b *Bus) Read(addr uint16) (byte, error) {
	switch {
	case addr < 0x2000:
		return b.ram[addr&0x07FF], nil
	case addr < 0x4000:
		v, err := b.ppu.CPURead(uint8(addr & 0x0007))
		if err != nil {
			return 0, fmt.Errorf("bus: read 0x%04X: %w", addr, err)
		}
		return v, nil
	case addr == 0x4014:
		return 0, nil // write-only OAM DMA port
	case addr < 0x8000:
		return 0, nil // expansion/SRAM: not implemented by this core
	default:
		return b.cart.ReadPRG(addr), nil
	}
}

// Write services a CPU-initiated write. Unmapped regions are dropped.
func (b *Bus) Write(addr uint16, v byte) error {
	switch {
	case addr < 0x2000:
		b.ram[addr&0x07FF] = v
		return nil
	case addr < 0x4000:
		if err := b.ppu.CPUWrite(uint8(addr&0x0007), v); err != nil {
			return fmt.Errorf("bus: write 0x%04X: %w", addr, err)
		}
		return nil
	case addr == 0x4014:
		b.ppu.TriggerOAMDMA(v)
		return nil
	case addr < 0x8000:
		return nil // expansion/SRAM: not implemented by this core
	default:
		return fmt.Errorf("bus: write 0x%04X: %w", addr, ErrWriteToROM)
	}
}
