// Package ppu implements the CPU-visible slice of the NES Picture
// Processing Unit: the eight memory-mapped registers at 0x2000-0x2007 plus
// the OAM DMA port at 0x4014, enough to let guest software probe CHR ROM
// and nametable/palette memory through PPUADDR/PPUDATA. Scanline timing,
// sprite evaluation, and background composition belong to the rendering
// pipeline and are not implemented here.
package ppu

import (
	"errors"

	"nescore/cartridge"
)

// ErrReadWriteOnly is returned when the CPU reads a write-only register.
var ErrReadWriteOnly = errors.New("ppu: register is write-only")

// ErrFourScreenUnsupported is returned when a nametable access needs
// FourScreen mirroring, which this core's built-in NROM support does not
// carry cartridge-provided extra VRAM for.
var ErrFourScreenUnsupported = errors.New("ppu: four-screen mirroring unsupported")

const (
	vramSize    = 2048
	paletteSize = 32
	oamSize     = 256

	controlIncrementBit = 0x04 // bit 2: 0 -> +1, 1 -> +32
)

// Register indices into the 8-entry CPU window (addr & 0x0007).
const (
	RegControl = iota // 0x2000, write-only
	RegMask           // 0x2001, write-only
	RegStatus         // 0x2002, read-only
	RegOAMAddr        // 0x2003, write-only
	RegOAMData        // 0x2004, read/write
	RegScroll         // 0x2005, write-only
	RegAddr           // 0x2006, write-only
	RegData           // 0x2007, read/write
)

// Registers is the CPU-facing register file. It is owned by the Bus and
// shared with the (out-of-scope) rendering pipeline, which mutates and
// observes the same VRAM/OAM/palette state from the PPU side.
type Registers struct {
	chr []byte

	vram    [vramSize]byte
	palette [paletteSize]byte
	oam     [oamSize]byte

	mirroring cartridge.Mirroring

	control byte

	addrLatch   uint16
	addrHiNext  bool
	readBuffer  byte
	oamDMAPage  byte
	oamDMAStart bool
}

// New returns a Registers surface backed by the given CHR ROM and
// mirroring mode.
func New(chr []byte, mirroring cartridge.Mirroring) *Registers {
	return &Registers{chr: chr, mirroring: mirroring, addrHiNext: true}
}

// CPURead services a CPU-initiated read of one of the eight registers.
// reg must be addr&0x0007. Write-only registers return ErrReadWriteOnly.
func (r *Registers) CPURead(reg uint8) (byte, error) {
	switch reg {
	case RegStatus:
		return 0, nil // vblank/sprite-0/overflow bits: rendering pipeline's concern
	case RegOAMData:
		return r.oam[0], nil // index tracked by the (out-of-scope) OAMADDR side
	case RegData:
		return r.readData()
	default:
		return 0, ErrReadWriteOnly
	}
}

// CPUWrite services a CPU-initiated write of one of the eight registers.
// All eight addresses accept writes; only RegAddr and RegData have
// state this core must reproduce faithfully.
func (r *Registers) CPUWrite(reg uint8, v byte) error {
	switch reg {
	case RegControl:
		r.control = v
	case RegAddr:
		r.writeAddr(v)
	case RegData:
		return r.writeData(v)
	default:
		// RegMask, RegOAMAddr, RegOAMData, RegScroll: stored state owned
		// by the rendering pipeline, not reproduced by this core.
	}
	return nil
}

// TriggerOAMDMA records the page byte written to 0x4014. Moving the 256
// bytes from CPU RAM into OAM is the Bus/DMA controller's job, not this
// surface's; this core only remembers the strobe happened.
func (r *Registers) TriggerOAMDMA(page byte) {
	r.oamDMAPage = page
	r.oamDMAStart = true
}

// OAMDMAPending reports whether a DMA strobe is outstanding, and clears it.
func (r *Registers) OAMDMAPending() (page byte, pending bool) {
	pending = r.oamDMAStart
	page = r.oamDMAPage
	r.oamDMAStart = false
	return page, pending
}

func (r *Registers) writeAddr(v byte) {
	if r.addrHiNext {
		r.addrLatch = (r.addrLatch & 0x00FF) | (uint16(v) << 8)
	} else {
		r.addrLatch = (r.addrLatch & 0xFF00) | uint16(v)
	}
	r.addrLatch &= 0x3FFF
	r.addrHiNext = !r.addrHiNext
}

func (r *Registers) increment() {
	if r.control&controlIncrementBit != 0 {
		r.addrLatch += 32
	} else {
		r.addrLatch++
	}
	r.addrLatch &= 0x3FFF
}

// readData services a PPUDATA read. Only the CHR ROM range is buffered
// (the returned byte lags one read behind); nametable and palette reads
// both return the current byte directly. 0x3000-0x3EFF mirrors the
// nametables at 0x2000-0x2EFF, matching real hardware, and is folded into
// that range by mirrorNametable's mask rather than handled separately.
func (r *Registers) readData() (byte, error) {
	addr := r.addrLatch
	defer r.increment()

	switch {
	case addr < 0x2000:
		data := r.readBuffer
		r.readBuffer = chrByte(r.chr, addr)
		return data, nil
	case addr < 0x3F00:
		idx, err := r.mirrorNametable(addr)
		if err != nil {
			return 0, err
		}
		return r.vram[idx], nil
	default: // addr >= 0x3F00
		return r.palette[paletteIndex(addr)], nil
	}
}

func (r *Registers) writeData(v byte) error {
	addr := r.addrLatch
	defer r.increment()

	switch {
	case addr < 0x2000:
		// CHR ROM: ignored. CHR-RAM carts are out of this core's scope.
	case addr < 0x3F00:
		idx, err := r.mirrorNametable(addr)
		if err != nil {
			return err
		}
		r.vram[idx] = v
	default: // addr >= 0x3F00
		r.palette[paletteIndex(addr)] = v
	}
	return nil
}

func chrByte(chr []byte, addr uint16) byte {
	if int(addr) >= len(chr) {
		return 0
	}
	return chr[addr]
}

func paletteIndex(addr uint16) uint16 {
	return addr & 0x1F
}

// mirrorNametable masks addr to the 4-table 0x0EFF window and folds it
// down to one of two physical 1KiB tables per the cartridge's mirroring
// mode. FourScreen is not supported by this core's built-in NROM mapper.
func (r *Registers) mirrorNametable(addr uint16) (uint16, error) {
	masked := addr & 0x0EFF
	table := masked / 0x400
	offset := masked % 0x400

	var physical uint16
	switch r.mirroring {
	case cartridge.Horizontal:
		if table == 0 || table == 1 {
			physical = 0
		} else {
			physical = 0x400
		}
	case cartridge.Vertical:
		if table == 0 || table == 2 {
			physical = 0
		} else {
			physical = 0x400
		}
	default:
		return 0, ErrFourScreenUnsupported
	}
	return physical + offset, nil
}
